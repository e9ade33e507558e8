// Package role defines the closed role vocabulary and the scope
// assignments principals hold. Adding a role is a compile-time change:
// every switch over Role is exhaustive with a fail-closed default.
package role

import (
	"strings"

	"github.com/google/uuid"
)

type Role string

const (
	GlobalAdmin      Role = "global-admin"
	OrgAdmin         Role = "org-admin"
	BattalionManager Role = "battalion-manager"
	CompanyManager   Role = "company-manager"
	SectionManager   Role = "section-manager"
	StandardUser     Role = "standard-user"
)

var managerTier = map[Role]int{
	BattalionManager: 0,
	CompanyManager:   1,
	SectionManager:   2,
}

func (r Role) Known() bool {
	switch r {
	case GlobalAdmin, OrgAdmin, BattalionManager, CompanyManager, SectionManager, StandardUser:
		return true
	default:
		return false
	}
}

// IsManagerTier reports whether r belongs to the ordered manager roles, of
// which a principal may hold at most one at a time.
func (r Role) IsManagerTier() bool {
	_, ok := managerTier[r]
	return ok
}

// TierRank orders manager roles from widest (battalion) to narrowest
// (section). Non-manager roles return -1.
func (r Role) TierRank() int {
	if rank, ok := managerTier[r]; ok {
		return rank
	}
	return -1
}

func Parse(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Known()
}

// Assignment binds a principal to a role over a scope unit. ScopeUnitID is
// nil only for GlobalAdmin; any other role with a nil scope resolves to the
// empty scope (fail closed) rather than erroring.
type Assignment struct {
	PrincipalID uuid.UUID
	Role        Role
	ScopeUnitID *uuid.UUID
}

// ReassignManager applies the one-manager-role-at-a-time rule as a pure
// function: given a principal's current assignments and a new assignment,
// it returns the resulting assignment set and the assignments the change
// implicitly retires. Non-manager assignments pass through untouched, and
// assigning a non-manager role retires nothing.
func ReassignManager(current []Assignment, next Assignment) (kept []Assignment, retired []Assignment) {
	kept = make([]Assignment, 0, len(current)+1)
	for _, a := range current {
		if next.Role.IsManagerTier() && a.Role.IsManagerTier() {
			retired = append(retired, a)
			continue
		}
		kept = append(kept, a)
	}
	kept = append(kept, next)
	return kept, retired
}
