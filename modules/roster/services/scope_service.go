package services

import (
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/entities/role"
)

// ScopeResult is the set of units and personnel a role assignment may see.
// Diagnostics carry the non-fatal reasons a scope came out smaller than a
// caller might expect; an empty scope with diagnostics is a valid terminal
// state, not a failure.
type ScopeResult struct {
	unitIDs      map[uuid.UUID]struct{}
	personnelIDs map[uuid.UUID]struct{}
	Diagnostics  []error
}

func emptyScope(diags ...error) ScopeResult {
	return ScopeResult{
		unitIDs:      map[uuid.UUID]struct{}{},
		personnelIDs: map[uuid.UUID]struct{}{},
		Diagnostics:  diags,
	}
}

func (r ScopeResult) ContainsUnit(id uuid.UUID) bool {
	_, ok := r.unitIDs[id]
	return ok
}

func (r ScopeResult) ContainsPersonnel(id uuid.UUID) bool {
	_, ok := r.personnelIDs[id]
	return ok
}

func (r ScopeResult) Empty() bool {
	return len(r.unitIDs) == 0 && len(r.personnelIDs) == 0
}

func (r ScopeResult) UnitCount() int      { return len(r.unitIDs) }
func (r ScopeResult) PersonnelCount() int { return len(r.personnelIDs) }

// UnitIDs returns the unit set in deterministic order.
func (r ScopeResult) UnitIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.unitIDs))
	for id := range r.unitIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// PersonnelIDs returns the personnel set in deterministic order.
func (r ScopeResult) PersonnelIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.personnelIDs))
	for id := range r.personnelIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// ScopeService resolves role assignments against a hierarchy snapshot.
// Resolution is pure: the same assignment against the same snapshot always
// yields the same sets.
type ScopeService struct {
	log *logrus.Logger
}

func NewScopeService(log *logrus.Logger) *ScopeService {
	return &ScopeService{log: log}
}

// ResolveScope computes the exact unit and personnel sets the assignment
// may see.
//
// Global-admin resolves to the universal scope: every unit and every
// person, regardless of hierarchy shape. Every other role needs a scope
// unit and resolves to that unit plus its structurally valid descendants,
// walked iteratively; units flagged during validation never enter the
// visited set. Unknown roles and missing scope units fail closed to the
// empty scope with a diagnostic.
func (s *ScopeService) ResolveScope(snap *Snapshot, a role.Assignment) ScopeResult {
	if !a.Role.Known() {
		s.log.WithField("role", string(a.Role)).Warn("scope: unrecognized role resolves empty")
		return emptyScope(ErrUnknownRole.WithMessage("unrecognized role %q", string(a.Role)))
	}

	if a.Role == role.GlobalAdmin {
		return s.universalScope(snap)
	}

	if a.ScopeUnitID == nil || *a.ScopeUnitID == uuid.Nil {
		s.log.WithField("role", string(a.Role)).Warn("scope: non-global role without scope unit resolves empty")
		return emptyScope(ErrNilScopeUnit.WithMessage("role %q has no scope unit", string(a.Role)))
	}

	root := *a.ScopeUnitID
	if !snap.IsValid(root) {
		s.log.WithFields(logrus.Fields{
			"role": string(a.Role),
			"unit": root,
		}).Warn("scope: scope unit missing or excluded, resolves empty")
		return emptyScope(ErrScopeUnitInvalid.WithMessage("scope unit %s missing or excluded", root))
	}

	result := emptyScope()

	// Iterative queue walk over the snapshot's children index. The index
	// only contains structurally valid units, so cycle-broken or orphaned
	// subtrees cannot be reached from here.
	queue := []uuid.UUID{root}
	result.unitIDs[root] = struct{}{}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range snap.Children(cur) {
			if _, seen := result.unitIDs[child]; seen {
				continue
			}
			result.unitIDs[child] = struct{}{}
			queue = append(queue, child)
		}
	}

	for unitID := range result.unitIDs {
		for _, personID := range snap.PersonnelInUnit(unitID) {
			result.personnelIDs[personID] = struct{}{}
		}
	}

	return result
}

func (s *ScopeService) universalScope(snap *Snapshot) ScopeResult {
	result := emptyScope()
	for _, id := range snap.AllUnitIDs() {
		result.unitIDs[id] = struct{}{}
	}
	for _, id := range snap.AllPersonnelIDs() {
		result.personnelIDs[id] = struct{}{}
	}
	return result
}
