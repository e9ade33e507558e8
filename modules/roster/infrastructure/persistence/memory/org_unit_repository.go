// Package memory provides mutex-guarded in-memory repositories. The query
// core only ever reads immutable snapshots; these repositories are the
// mutable system of record the snapshot is rebuilt from.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/orgunit"
)

type OrgUnitRepository struct {
	mu    sync.RWMutex
	units map[uuid.UUID]orgunit.OrgUnit
}

var _ orgunit.Repository = (*OrgUnitRepository)(nil)

func NewOrgUnitRepository() *OrgUnitRepository {
	return &OrgUnitRepository{units: make(map[uuid.UUID]orgunit.OrgUnit)}
}

func (r *OrgUnitRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.units)), nil
}

func (r *OrgUnitRepository) GetAll(_ context.Context) ([]orgunit.OrgUnit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]orgunit.OrgUnit, 0, len(r.units))
	for _, u := range r.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID().String() < out[j].ID().String() })
	return out, nil
}

func (r *OrgUnitRepository) GetByID(_ context.Context, id uuid.UUID) (orgunit.OrgUnit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.units[id]
	if !ok {
		return orgunit.OrgUnit{}, errors.Wrapf(ErrUnitNotFound, "id %s", id)
	}
	return u, nil
}

func (r *OrgUnitRepository) GetByOrganization(_ context.Context, organizationID string) ([]orgunit.OrgUnit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]orgunit.OrgUnit, 0)
	for _, u := range r.units {
		if u.OrganizationID() == organizationID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID().String() < out[j].ID().String() })
	return out, nil
}

func (r *OrgUnitRepository) Save(_ context.Context, unit orgunit.OrgUnit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.units[unit.ID()] = unit
	return nil
}

func (r *OrgUnitRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.units[id]; !ok {
		return errors.Wrapf(ErrUnitNotFound, "id %s", id)
	}
	delete(r.units, id)
	return nil
}
