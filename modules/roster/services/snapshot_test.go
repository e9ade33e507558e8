package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/orgunit"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/personnel"
)

func TestSnapshotWellFormedForest(t *testing.T) {
	battalion := testUnit(1, "1st Battalion", orgunit.LevelBattalion, nil, "RUC-100")
	alpha := testUnit(2, "Alpha Company", orgunit.LevelCompany, ptr(uid(1)), "RUC-100")
	bravo := testUnit(3, "Bravo Company", orgunit.LevelCompany, ptr(uid(1)), "RUC-100")
	s1 := testUnit(4, "S-1", orgunit.LevelSection, ptr(uid(2)), "RUC-100")

	snap := newSnapshot([]orgunit.OrgUnit{s1, bravo, alpha, battalion}, nil)

	require.Empty(t, snap.Errors())
	assert.Empty(t, snap.Excluded())
	assert.Equal(t, 4, snap.UnitCount())
	assert.Equal(t, 4, snap.ValidUnitCount())
	assert.Equal(t, []uuid.UUID{uid(1)}, snap.Roots())

	t.Run("children sorted by name", func(t *testing.T) {
		children := snap.Children(uid(1))
		require.Len(t, children, 2)
		assert.Equal(t, uid(2), children[0]) // Alpha before Bravo
		assert.Equal(t, uid(3), children[1])
	})

	t.Run("organization-of", func(t *testing.T) {
		org, ok := snap.OrganizationOf(uid(4))
		require.True(t, ok)
		assert.Equal(t, "RUC-100", org)
	})
}

func TestSnapshotOrphanedParent(t *testing.T) {
	battalion := testUnit(1, "1st Battalion", orgunit.LevelBattalion, nil, "RUC-100")
	lost := testUnit(2, "Lost Company", orgunit.LevelCompany, ptr(uid(99)), "RUC-100")
	child := testUnit(3, "Lost Section", orgunit.LevelSection, ptr(uid(2)), "RUC-100")

	snap := newSnapshot([]orgunit.OrgUnit{battalion, lost, child}, nil)

	require.Len(t, snap.Errors(), 1)
	assert.Equal(t, KindOrphanedParent, snap.Errors()[0].Kind)
	assert.Equal(t, uid(2), snap.Errors()[0].UnitID)

	// The orphan and its whole subtree are excluded, never silently valid.
	assert.False(t, snap.IsValid(uid(2)))
	assert.False(t, snap.IsValid(uid(3)))
	assert.True(t, snap.IsValid(uid(1)))
	assert.ElementsMatch(t, []uuid.UUID{uid(2), uid(3)}, snap.Excluded())
}

func TestSnapshotLevelSkip(t *testing.T) {
	battalion := testUnit(1, "1st Battalion", orgunit.LevelBattalion, nil, "RUC-100")
	// A section directly under a battalion skips the company level.
	skipped := testUnit(2, "Skipped Section", orgunit.LevelSection, ptr(uid(1)), "RUC-100")

	snap := newSnapshot([]orgunit.OrgUnit{battalion, skipped}, nil)

	require.Len(t, snap.Errors(), 1)
	assert.Equal(t, KindLevelSkip, snap.Errors()[0].Kind)
	assert.False(t, snap.IsValid(uid(2)))
	assert.Empty(t, snap.Children(uid(1)))
}

func TestSnapshotCycle(t *testing.T) {
	// A's level relationship with B is legal; B pointing back at A closes
	// the loop and additionally violates the level rule.
	a := testUnit(1, "A Company", orgunit.LevelCompany, ptr(uid(2)), "RUC-100")
	b := testUnit(2, "B Battalion", orgunit.LevelBattalion, ptr(uid(1)), "RUC-100")

	snap := newSnapshot([]orgunit.OrgUnit{a, b}, nil)

	kinds := map[HierarchyErrorKind]bool{}
	for _, e := range snap.Errors() {
		kinds[e.Kind] = true
	}
	assert.True(t, kinds[KindCycle], "expected a cycle error, got %v", snap.Errors())

	assert.False(t, snap.IsValid(uid(1)))
	assert.False(t, snap.IsValid(uid(2)))
	assert.Empty(t, snap.Roots())
	assert.Equal(t, 0, snap.ValidUnitCount())
}

func TestSnapshotRebuildDeterministic(t *testing.T) {
	units := []orgunit.OrgUnit{
		testUnit(1, "1st Battalion", orgunit.LevelBattalion, nil, "RUC-100"),
		testUnit(2, "Alpha Company", orgunit.LevelCompany, ptr(uid(1)), "RUC-100"),
		testUnit(3, "Bravo Company", orgunit.LevelCompany, ptr(uid(1)), "RUC-100"),
		testUnit(4, "S-1", orgunit.LevelSection, ptr(uid(2)), "RUC-100"),
	}
	people := []personnel.Personnel{
		testPerson(1, uid(2), personnel.RankSgt, 10),
		testPerson(2, uid(4), personnel.RankCpl, 5),
	}

	first := newSnapshot(units, people)
	second := newSnapshot(units, people)

	assert.Equal(t, first.AllUnitIDs(), second.AllUnitIDs())
	assert.Equal(t, first.AllPersonnelIDs(), second.AllPersonnelIDs())
	assert.Equal(t, first.Children(uid(1)), second.Children(uid(1)))
	assert.Equal(t, first.Roots(), second.Roots())
}

func TestSnapshotPersonnelIndex(t *testing.T) {
	battalion := testUnit(1, "1st Battalion", orgunit.LevelBattalion, nil, "RUC-100")
	alpha := testUnit(2, "Alpha Company", orgunit.LevelCompany, ptr(uid(1)), "RUC-100")
	people := []personnel.Personnel{
		testPerson(2, uid(2), personnel.RankCpl, 5),
		testPerson(1, uid(2), personnel.RankSgt, 10),
	}

	snap := newSnapshot([]orgunit.OrgUnit{battalion, alpha}, people)

	ids := snap.PersonnelInUnit(uid(2))
	require.Len(t, ids, 2)
	assert.Equal(t, uid(1001), ids[0])
	assert.Equal(t, uid(1002), ids[1])
	assert.Empty(t, snap.PersonnelInUnit(uid(1)))

	p, ok := snap.Person(uid(1001))
	require.True(t, ok)
	assert.Equal(t, personnel.RankSgt, p.Rank())
}
