package orgunit

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Count(ctx context.Context) (int64, error)
	GetAll(ctx context.Context) ([]OrgUnit, error)
	GetByID(ctx context.Context, id uuid.UUID) (OrgUnit, error)
	GetByOrganization(ctx context.Context, organizationID string) ([]OrgUnit, error)
	Save(ctx context.Context, unit OrgUnit) error
	Delete(ctx context.Context, id uuid.UUID) error
}
