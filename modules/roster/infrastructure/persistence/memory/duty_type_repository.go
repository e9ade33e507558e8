package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/dutytype"
)

type DutyTypeRepository struct {
	mu    sync.RWMutex
	types map[uuid.UUID]dutytype.DutyType
}

var _ dutytype.Repository = (*DutyTypeRepository)(nil)

func NewDutyTypeRepository() *DutyTypeRepository {
	return &DutyTypeRepository{types: make(map[uuid.UUID]dutytype.DutyType)}
}

func (r *DutyTypeRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.types)), nil
}

func (r *DutyTypeRepository) GetAll(_ context.Context) ([]dutytype.DutyType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]dutytype.DutyType, 0, len(r.types))
	for _, d := range r.types {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID().String() < out[j].ID().String() })
	return out, nil
}

func (r *DutyTypeRepository) GetByID(_ context.Context, id uuid.UUID) (dutytype.DutyType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.types[id]
	if !ok {
		return dutytype.DutyType{}, errors.Wrapf(ErrDutyTypeNotFound, "id %s", id)
	}
	return d, nil
}

func (r *DutyTypeRepository) GetByUnit(_ context.Context, unitID uuid.UUID) ([]dutytype.DutyType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]dutytype.DutyType, 0)
	for _, d := range r.types {
		if d.UnitID() == unitID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID().String() < out[j].ID().String() })
	return out, nil
}

func (r *DutyTypeRepository) Save(_ context.Context, d dutytype.DutyType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[d.ID()] = d
	return nil
}

func (r *DutyTypeRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[id]; !ok {
		return errors.Wrapf(ErrDutyTypeNotFound, "id %s", id)
	}
	delete(r.types, id)
	return nil
}
