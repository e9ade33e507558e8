package personnel

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Count(ctx context.Context) (int64, error)
	GetAll(ctx context.Context) ([]Personnel, error)
	GetByID(ctx context.Context, id uuid.UUID) (Personnel, error)
	GetByUnit(ctx context.Context, unitID uuid.UUID) ([]Personnel, error)
	Save(ctx context.Context, p Personnel) error
	Delete(ctx context.Context, id uuid.UUID) error
}
