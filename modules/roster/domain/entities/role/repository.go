package role

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Assignment, error)
	GetByPrincipal(ctx context.Context, principalID uuid.UUID) ([]Assignment, error)
	Save(ctx context.Context, a Assignment) error
	DeleteByPrincipal(ctx context.Context, principalID uuid.UUID) error
}
