package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/entities/role"
)

type RoleRepository struct {
	mu          sync.RWMutex
	byPrincipal map[uuid.UUID][]role.Assignment
}

var _ role.Repository = (*RoleRepository)(nil)

func NewRoleRepository() *RoleRepository {
	return &RoleRepository{byPrincipal: make(map[uuid.UUID][]role.Assignment)}
}

func (r *RoleRepository) GetAll(_ context.Context) ([]role.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	principals := make([]uuid.UUID, 0, len(r.byPrincipal))
	for id := range r.byPrincipal {
		principals = append(principals, id)
	}
	sort.Slice(principals, func(i, j int) bool { return principals[i].String() < principals[j].String() })

	out := make([]role.Assignment, 0)
	for _, id := range principals {
		out = append(out, r.byPrincipal[id]...)
	}
	return out, nil
}

func (r *RoleRepository) GetByPrincipal(_ context.Context, principalID uuid.UUID) ([]role.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	assignments := r.byPrincipal[principalID]
	out := make([]role.Assignment, len(assignments))
	copy(out, assignments)
	return out, nil
}

func (r *RoleRepository) Save(_ context.Context, a role.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byPrincipal[a.PrincipalID] = append(r.byPrincipal[a.PrincipalID], a)
	return nil
}

func (r *RoleRepository) DeleteByPrincipal(_ context.Context, principalID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byPrincipal, principalID)
	return nil
}
