package dutytype

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Count(ctx context.Context) (int64, error)
	GetAll(ctx context.Context) ([]DutyType, error)
	GetByID(ctx context.Context, id uuid.UUID) (DutyType, error)
	GetByUnit(ctx context.Context, unitID uuid.UUID) ([]DutyType, error)
	Save(ctx context.Context, d DutyType) error
	Delete(ctx context.Context, id uuid.UUID) error
}
