package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/personnel"
)

type PersonnelRepository struct {
	mu     sync.RWMutex
	people map[uuid.UUID]personnel.Personnel
}

var _ personnel.Repository = (*PersonnelRepository)(nil)

func NewPersonnelRepository() *PersonnelRepository {
	return &PersonnelRepository{people: make(map[uuid.UUID]personnel.Personnel)}
}

func (r *PersonnelRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.people)), nil
}

func (r *PersonnelRepository) GetAll(_ context.Context) ([]personnel.Personnel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]personnel.Personnel, 0, len(r.people))
	for _, p := range r.people {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID().String() < out[j].ID().String() })
	return out, nil
}

func (r *PersonnelRepository) GetByID(_ context.Context, id uuid.UUID) (personnel.Personnel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.people[id]
	if !ok {
		return personnel.Personnel{}, errors.Wrapf(ErrPersonnelNotFound, "id %s", id)
	}
	return p, nil
}

func (r *PersonnelRepository) GetByUnit(_ context.Context, unitID uuid.UUID) ([]personnel.Personnel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]personnel.Personnel, 0)
	for _, p := range r.people {
		if p.UnitID() == unitID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID().String() < out[j].ID().String() })
	return out, nil
}

func (r *PersonnelRepository) Save(_ context.Context, p personnel.Personnel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.people[p.ID()] = p
	return nil
}

func (r *PersonnelRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.people[id]; !ok {
		return errors.Wrapf(ErrPersonnelNotFound, "id %s", id)
	}
	delete(r.people, id)
	return nil
}
