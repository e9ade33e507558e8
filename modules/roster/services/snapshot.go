package services

import (
	"sort"

	"github.com/google/uuid"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/orgunit"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/personnel"
)

// Snapshot is one immutable, fully-indexed view of the hierarchy and the
// personnel standing in it. All query services operate on a snapshot; the
// hierarchy service replaces the current one atomically on rebuild, so a
// reader never observes a partially-built tree.
//
// Structural validation happens at build time. Units with a dangling
// parent, a skipped level, or a parent chain that cycles are recorded in
// errs and left out of the children index, which keeps every traversal
// fail-closed: an invalid subtree simply does not exist for scope
// resolution.
type Snapshot struct {
	units    map[uuid.UUID]orgunit.OrgUnit
	valid    map[uuid.UUID]struct{}
	children map[uuid.UUID][]uuid.UUID
	roots    []uuid.UUID

	people       map[uuid.UUID]personnel.Personnel
	peopleByUnit map[uuid.UUID][]uuid.UUID

	bad      map[uuid.UUID]struct{}
	errs     []HierarchyError
	excluded []uuid.UUID
}

func newSnapshot(units []orgunit.OrgUnit, people []personnel.Personnel) *Snapshot {
	s := &Snapshot{
		units:        make(map[uuid.UUID]orgunit.OrgUnit, len(units)),
		valid:        make(map[uuid.UUID]struct{}, len(units)),
		children:     make(map[uuid.UUID][]uuid.UUID, len(units)),
		people:       make(map[uuid.UUID]personnel.Personnel, len(people)),
		peopleByUnit: make(map[uuid.UUID][]uuid.UUID, len(units)),
	}
	for _, u := range units {
		s.units[u.ID()] = u
	}
	for _, p := range people {
		s.people[p.ID()] = p
		s.peopleByUnit[p.UnitID()] = append(s.peopleByUnit[p.UnitID()], p.ID())
	}
	for unitID := range s.peopleByUnit {
		ids := s.peopleByUnit[unitID]
		sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	}

	s.validate()
	s.index()
	return s
}

func sortedUnitIDs(units map[uuid.UUID]orgunit.OrgUnit) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(units))
	for id := range units {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// validate finds structurally bad units: dangling parents, level skips,
// and parent-chain cycles. It records one HierarchyError per offending
// unit; subtree exclusion falls out of the reachability pass in index.
func (s *Snapshot) validate() {
	bad := make(map[uuid.UUID]struct{})
	ids := sortedUnitIDs(s.units)

	for _, id := range ids {
		u := s.units[id]
		if u.IsRoot() {
			continue
		}
		parentID := *u.ParentID()
		parent, ok := s.units[parentID]
		if !ok {
			s.errs = append(s.errs, HierarchyError{
				Kind:     KindOrphanedParent,
				UnitID:   id,
				ParentID: u.ParentID(),
				Detail:   "parent does not resolve",
			})
			bad[id] = struct{}{}
			continue
		}
		if !u.Level().ChildOf(parent.Level()) {
			s.errs = append(s.errs, HierarchyError{
				Kind:     KindLevelSkip,
				UnitID:   id,
				ParentID: u.ParentID(),
				Detail:   u.Level().String() + " under " + parent.Level().String(),
			})
			bad[id] = struct{}{}
		}
	}

	// Cycle detection over parent chains, iterative. States: 0 unseen,
	// 1 on the chain currently being walked, 2 settled.
	state := make(map[uuid.UUID]int, len(s.units))
	for _, start := range ids {
		if state[start] != 0 {
			continue
		}
		chain := make([]uuid.UUID, 0, 8)
		cur := start
		for {
			if st := state[cur]; st != 0 {
				if st == 1 {
					// cur repeats inside the current chain: everything from
					// its first occurrence onward is on the cycle.
					for i := len(chain) - 1; i >= 0; i-- {
						onCycle := chain[i]
						if _, already := bad[onCycle]; !already {
							s.errs = append(s.errs, HierarchyError{
								Kind:   KindCycle,
								UnitID: onCycle,
								Detail: "parent chain loops",
							})
							bad[onCycle] = struct{}{}
						}
						if chain[i] == cur {
							break
						}
					}
				}
				break
			}
			state[cur] = 1
			chain = append(chain, cur)

			u := s.units[cur]
			if u.IsRoot() {
				break
			}
			next, ok := s.units[*u.ParentID()]
			if !ok {
				break
			}
			cur = next.ID()
		}
		for _, id := range chain {
			state[id] = 2
		}
	}

	s.bad = bad
}

// index builds the children index over structurally valid units only and
// computes the excluded set as everything unreachable from a valid root.
func (s *Snapshot) index() {
	ids := sortedUnitIDs(s.units)

	rawChildren := make(map[uuid.UUID][]uuid.UUID, len(s.units))
	for _, id := range ids {
		u := s.units[id]
		if u.IsRoot() {
			continue
		}
		rawChildren[*u.ParentID()] = append(rawChildren[*u.ParentID()], id)
	}
	for parentID := range rawChildren {
		siblings := rawChildren[parentID]
		sort.SliceStable(siblings, func(i, j int) bool {
			ni, nj := s.units[siblings[i]].Name(), s.units[siblings[j]].Name()
			if ni != nj {
				return ni < nj
			}
			return siblings[i].String() < siblings[j].String()
		})
		rawChildren[parentID] = siblings
	}

	for _, id := range ids {
		u := s.units[id]
		if !u.IsRoot() {
			continue
		}
		if _, isBad := s.bad[id]; isBad {
			continue
		}
		s.roots = append(s.roots, id)
	}
	sort.SliceStable(s.roots, func(i, j int) bool {
		ui, uj := s.units[s.roots[i]], s.units[s.roots[j]]
		if ui.OrganizationID() != uj.OrganizationID() {
			return ui.OrganizationID() < uj.OrganizationID()
		}
		if ui.Name() != uj.Name() {
			return ui.Name() < uj.Name()
		}
		return s.roots[i].String() < s.roots[j].String()
	})

	// Breadth-first reachability from valid roots, refusing to descend
	// into structurally bad units. Explicit queue keeps traversal bounded
	// at any hierarchy depth.
	queue := make([]uuid.UUID, 0, len(s.units))
	queue = append(queue, s.roots...)
	for _, r := range s.roots {
		s.valid[r] = struct{}{}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range rawChildren[cur] {
			if _, isBad := s.bad[child]; isBad {
				continue
			}
			if _, seen := s.valid[child]; seen {
				continue
			}
			s.valid[child] = struct{}{}
			s.children[cur] = append(s.children[cur], child)
			queue = append(queue, child)
		}
	}

	for _, id := range ids {
		if _, ok := s.valid[id]; !ok {
			s.excluded = append(s.excluded, id)
		}
	}
}

// Unit returns the unit by id, whether or not it is structurally valid.
func (s *Snapshot) Unit(id uuid.UUID) (orgunit.OrgUnit, bool) {
	u, ok := s.units[id]
	return u, ok
}

// IsValid reports whether the unit survived structural validation and is
// reachable from a root.
func (s *Snapshot) IsValid(id uuid.UUID) bool {
	_, ok := s.valid[id]
	return ok
}

// Children returns the structurally valid children of id in deterministic
// order. The returned slice must not be mutated.
func (s *Snapshot) Children(id uuid.UUID) []uuid.UUID {
	return s.children[id]
}

// OrganizationOf returns the RUC the unit's tree belongs to.
func (s *Snapshot) OrganizationOf(id uuid.UUID) (string, bool) {
	u, ok := s.units[id]
	if !ok {
		return "", false
	}
	return u.OrganizationID(), true
}

func (s *Snapshot) Roots() []uuid.UUID { return s.roots }

func (s *Snapshot) Errors() []HierarchyError { return s.errs }

// Excluded lists every unit left out of traversal results, offending units
// and their descendants alike, in deterministic order.
func (s *Snapshot) Excluded() []uuid.UUID { return s.excluded }

func (s *Snapshot) UnitCount() int      { return len(s.units) }
func (s *Snapshot) ValidUnitCount() int { return len(s.valid) }
func (s *Snapshot) PersonnelCount() int { return len(s.people) }

// AllUnitIDs returns every loaded unit id, valid or not. Universal scope
// sees everything regardless of hierarchy shape.
func (s *Snapshot) AllUnitIDs() []uuid.UUID {
	return sortedUnitIDs(s.units)
}

func (s *Snapshot) AllPersonnelIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.people))
	for id := range s.people {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// PersonnelInUnit returns ids of personnel assigned directly to the unit.
func (s *Snapshot) PersonnelInUnit(unitID uuid.UUID) []uuid.UUID {
	return s.peopleByUnit[unitID]
}

func (s *Snapshot) Person(id uuid.UUID) (personnel.Personnel, bool) {
	p, ok := s.people[id]
	return p, ok
}
