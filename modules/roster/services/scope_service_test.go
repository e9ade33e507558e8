package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/orgunit"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/personnel"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/entities/role"
)

// scopeFixture is a battalion with two companies; Alpha carries a section
// and a subsection below it, Bravo is a leaf.
func scopeFixture(t *testing.T) *Snapshot {
	t.Helper()

	units := []orgunit.OrgUnit{
		testUnit(1, "1st Battalion", orgunit.LevelBattalion, nil, "RUC-100"),
		testUnit(2, "Alpha Company", orgunit.LevelCompany, ptr(uid(1)), "RUC-100"),
		testUnit(3, "Bravo Company", orgunit.LevelCompany, ptr(uid(1)), "RUC-100"),
		testUnit(4, "S-3", orgunit.LevelSection, ptr(uid(2)), "RUC-100"),
		testUnit(5, "Fires Cell", orgunit.LevelSubsection, ptr(uid(4)), "RUC-100"),
	}
	people := []personnel.Personnel{
		testPerson(1, uid(1), personnel.RankSgtMaj, 10),
		testPerson(2, uid(2), personnel.RankCpl, 3),
		testPerson(3, uid(3), personnel.RankSgt, 5),
		testPerson(4, uid(4), personnel.RankLCpl, 1),
		testPerson(5, uid(5), personnel.RankPvt, 0),
	}

	snap := newSnapshot(units, people)
	require.Empty(t, snap.Errors())
	return snap
}

func TestResolveScopeCompanyManagerSeesSubtreeOnly(t *testing.T) {
	snap := scopeFixture(t)
	svc := NewScopeService(testLogger())

	got := svc.ResolveScope(snap, role.Assignment{
		PrincipalID: uid(900),
		Role:        role.CompanyManager,
		ScopeUnitID: ptr(uid(2)),
	})

	assert.Empty(t, got.Diagnostics)
	assert.Equal(t, []uuid.UUID{uid(2), uid(4), uid(5)}, got.UnitIDs())
	assert.True(t, got.ContainsPersonnel(uid(1002)))
	assert.True(t, got.ContainsPersonnel(uid(1004)))
	assert.True(t, got.ContainsPersonnel(uid(1005)))
	assert.False(t, got.ContainsUnit(uid(1)), "parent battalion must stay out of scope")
	assert.False(t, got.ContainsUnit(uid(3)), "sibling company must stay out of scope")
	assert.False(t, got.ContainsPersonnel(uid(1003)))
}

func TestResolveScopeGlobalAdminIsUniversal(t *testing.T) {
	snap := scopeFixture(t)
	svc := NewScopeService(testLogger())

	got := svc.ResolveScope(snap, role.Assignment{
		PrincipalID: uid(901),
		Role:        role.GlobalAdmin,
	})

	assert.Empty(t, got.Diagnostics)
	assert.Equal(t, snap.UnitCount(), got.UnitCount())
	assert.Equal(t, snap.PersonnelCount(), got.PersonnelCount())
}

func TestResolveScopeGlobalAdminSeesExcludedUnits(t *testing.T) {
	// An orphaned company drops out of traversal for scoped roles, but
	// global-admin still sees it.
	units := []orgunit.OrgUnit{
		testUnit(1, "1st Battalion", orgunit.LevelBattalion, nil, "RUC-100"),
		testUnit(2, "Ghost Company", orgunit.LevelCompany, ptr(uid(99)), "RUC-100"),
	}
	snap := newSnapshot(units, nil)
	require.Len(t, snap.Errors(), 1)

	svc := NewScopeService(testLogger())
	got := svc.ResolveScope(snap, role.Assignment{Role: role.GlobalAdmin})

	assert.True(t, got.ContainsUnit(uid(2)))
	assert.Equal(t, 2, got.UnitCount())
}

func TestResolveScopeUnknownRoleFailsClosed(t *testing.T) {
	snap := scopeFixture(t)
	svc := NewScopeService(testLogger())

	got := svc.ResolveScope(snap, role.Assignment{
		Role:        role.Role("duty-officer"),
		ScopeUnitID: ptr(uid(1)),
	})

	assert.True(t, got.Empty())
	require.Len(t, got.Diagnostics, 1)
	assert.True(t, errors.Is(got.Diagnostics[0], ErrUnknownRole))
}

func TestResolveScopeNilScopeUnitFailsClosed(t *testing.T) {
	snap := scopeFixture(t)
	svc := NewScopeService(testLogger())

	for name, scope := range map[string]*uuid.UUID{
		"nil pointer": nil,
		"zero uuid":   ptr(uuid.Nil),
	} {
		t.Run(name, func(t *testing.T) {
			got := svc.ResolveScope(snap, role.Assignment{
				Role:        role.BattalionManager,
				ScopeUnitID: scope,
			})

			assert.True(t, got.Empty())
			require.Len(t, got.Diagnostics, 1)
			assert.True(t, errors.Is(got.Diagnostics[0], ErrNilScopeUnit))
		})
	}
}

func TestResolveScopeInvalidScopeUnitFailsClosed(t *testing.T) {
	units := []orgunit.OrgUnit{
		testUnit(1, "1st Battalion", orgunit.LevelBattalion, nil, "RUC-100"),
		testUnit(2, "Ghost Company", orgunit.LevelCompany, ptr(uid(99)), "RUC-100"),
	}
	snap := newSnapshot(units, nil)
	svc := NewScopeService(testLogger())

	t.Run("unknown unit", func(t *testing.T) {
		got := svc.ResolveScope(snap, role.Assignment{
			Role:        role.CompanyManager,
			ScopeUnitID: ptr(uid(42)),
		})
		assert.True(t, got.Empty())
		require.Len(t, got.Diagnostics, 1)
		assert.True(t, errors.Is(got.Diagnostics[0], ErrScopeUnitInvalid))
	})

	t.Run("excluded unit", func(t *testing.T) {
		got := svc.ResolveScope(snap, role.Assignment{
			Role:        role.CompanyManager,
			ScopeUnitID: ptr(uid(2)),
		})
		assert.True(t, got.Empty())
		require.Len(t, got.Diagnostics, 1)
		assert.True(t, errors.Is(got.Diagnostics[0], ErrScopeUnitInvalid))
	})
}

func TestResolveScopeIsDeterministic(t *testing.T) {
	snap := scopeFixture(t)
	svc := NewScopeService(testLogger())
	a := role.Assignment{Role: role.BattalionManager, ScopeUnitID: ptr(uid(1))}

	first := svc.ResolveScope(snap, a)
	second := svc.ResolveScope(snap, a)

	assert.Equal(t, first.UnitIDs(), second.UnitIDs())
	assert.Equal(t, first.PersonnelIDs(), second.PersonnelIDs())
}
