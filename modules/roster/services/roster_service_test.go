package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/dutytype"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/orgunit"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/personnel"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/entities/role"
	"github.com/jacksonlee411/rosterkit/modules/roster/infrastructure/persistence/memory"
	"github.com/jacksonlee411/rosterkit/pkg/eventbus"
)

type rosterFixture struct {
	svc       *RosterService
	units     *memory.OrgUnitRepository
	people    *memory.PersonnelRepository
	dutyTypes *memory.DutyTypeRepository
	roles     *memory.RoleRepository
	hierarchy *HierarchyService
}

func newRosterFixture(t *testing.T) *rosterFixture {
	t.Helper()
	log := testLogger()

	f := &rosterFixture{
		units:     memory.NewOrgUnitRepository(),
		people:    memory.NewPersonnelRepository(),
		dutyTypes: memory.NewDutyTypeRepository(),
		roles:     memory.NewRoleRepository(),
	}
	f.hierarchy = NewHierarchyService(f.units, f.people, log)

	bus := eventbus.NewEventPublisher(log)
	f.hierarchy.SubscribeTo(bus)

	f.svc = NewRosterService(
		f.units, f.people, f.dutyTypes, f.roles,
		f.hierarchy,
		NewScopeService(log),
		NewEligibilityService(log),
		NewFairnessService(),
		NewStandbyService(),
		bus,
		log,
	)
	return f
}

func (f *rosterFixture) seedForest(t *testing.T, ctx context.Context) {
	t.Helper()
	require.NoError(t, f.svc.CreateUnit(ctx, testUnit(1, "1st Battalion", orgunit.LevelBattalion, nil, "RUC-100")))
	require.NoError(t, f.svc.CreateUnit(ctx, testUnit(2, "Alpha Company", orgunit.LevelCompany, ptr(uid(1)), "RUC-100")))
	require.NoError(t, f.svc.CreateUnit(ctx, testUnit(3, "S-3", orgunit.LevelSection, ptr(uid(2)), "RUC-100")))
}

func TestRosterServiceMutationsRefreshSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newRosterFixture(t)

	f.seedForest(t, ctx)
	assert.Equal(t, 3, f.hierarchy.Snapshot().ValidUnitCount())

	require.NoError(t, f.svc.CreatePersonnel(ctx, testPerson(1, uid(3), personnel.RankSgt, 4)))
	assert.Equal(t, 1, f.hierarchy.Snapshot().PersonnelCount())

	require.NoError(t, f.svc.DeletePersonnel(ctx, uid(1001)))
	assert.Zero(t, f.hierarchy.Snapshot().PersonnelCount())
}

func TestRosterServiceDeleteUnitBlockedWhileChildrenExist(t *testing.T) {
	ctx := context.Background()
	f := newRosterFixture(t)
	f.seedForest(t, ctx)

	err := f.svc.DeleteUnit(ctx, uid(2))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnitHasChildren))
	assert.True(t, f.hierarchy.Snapshot().IsValid(uid(2)))

	// Leaf first, then its emptied parent.
	require.NoError(t, f.svc.DeleteUnit(ctx, uid(3)))
	require.NoError(t, f.svc.DeleteUnit(ctx, uid(2)))
	assert.Equal(t, 1, f.hierarchy.Snapshot().ValidUnitCount())
}

func TestRosterServiceAssignRoleRetiresManagerTier(t *testing.T) {
	ctx := context.Background()
	f := newRosterFixture(t)
	f.seedForest(t, ctx)

	principal := uid(900)
	require.NoError(t, f.svc.AssignRole(ctx, role.Assignment{
		PrincipalID: principal,
		Role:        role.CompanyManager,
		ScopeUnitID: ptr(uid(2)),
	}))
	require.NoError(t, f.svc.AssignRole(ctx, role.Assignment{
		PrincipalID: principal,
		Role:        role.StandardUser,
		ScopeUnitID: ptr(uid(3)),
	}))

	// A second manager-tier role replaces the first but leaves the
	// non-manager assignment alone.
	require.NoError(t, f.svc.AssignRole(ctx, role.Assignment{
		PrincipalID: principal,
		Role:        role.BattalionManager,
		ScopeUnitID: ptr(uid(1)),
	}))

	got, err := f.roles.GetByPrincipal(ctx, principal)
	require.NoError(t, err)
	require.Len(t, got, 2)

	byRole := map[role.Role]role.Assignment{}
	for _, a := range got {
		byRole[a.Role] = a
	}
	assert.Contains(t, byRole, role.BattalionManager)
	assert.Contains(t, byRole, role.StandardUser)
	assert.NotContains(t, byRole, role.CompanyManager)
}

func TestRosterServiceEligibleForDuty(t *testing.T) {
	ctx := context.Background()
	f := newRosterFixture(t)
	f.seedForest(t, ctx)

	require.NoError(t, f.svc.CreatePersonnel(ctx, testPerson(1, uid(2), personnel.RankSgt, 4)))
	require.NoError(t, f.svc.CreatePersonnel(ctx, testPerson(2, uid(3), personnel.RankPvt, 1)))
	require.NoError(t, f.svc.CreatePersonnel(ctx, testPerson(3, uid(3), personnel.RankCpl, 2)))

	d := dutytype.Hydrate(uid(50), "Duty NCO", uid(1), dutytype.WithRankFilter(&dutytype.RankFilter{
		Mode:   dutytype.ModeExclude,
		Values: []personnel.Rank{personnel.RankPvt},
	}))
	require.NoError(t, f.svc.CreateDutyType(ctx, d))

	got, err := f.svc.EligibleForDuty(ctx, uid(50), role.Assignment{
		Role:        role.CompanyManager,
		ScopeUnitID: ptr(uid(2)),
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uid(1001), got[0].ID())
	assert.Equal(t, uid(1003), got[1].ID())
}

func TestRosterServiceFairnessForRole(t *testing.T) {
	ctx := context.Background()
	f := newRosterFixture(t)
	f.seedForest(t, ctx)

	require.NoError(t, f.svc.CreatePersonnel(ctx, testPerson(1, uid(1), personnel.RankSgtMaj, 9)))
	require.NoError(t, f.svc.CreatePersonnel(ctx, testPerson(2, uid(2), personnel.RankSgt, 4)))
	require.NoError(t, f.svc.CreatePersonnel(ctx, testPerson(3, uid(3), personnel.RankCpl, 4)))

	report := f.svc.FairnessForRole(role.Assignment{
		Role:        role.CompanyManager,
		ScopeUnitID: ptr(uid(2)),
	})

	assert.Equal(t, 2, report.Scope.PersonnelCount())
	assert.InDelta(t, 4.0, report.Result.Mean, 1e-9)
	assert.Equal(t, 100.0, report.Result.FairnessIndex)
	require.Len(t, report.Ranked, 2)
	assert.Equal(t, 1, report.Ranked[0].Position)
	assert.Equal(t, uid(1002), report.Ranked[0].Person.ID())
}
