package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/orgunit"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/events"
	"github.com/jacksonlee411/rosterkit/modules/roster/infrastructure/persistence/memory"
	"github.com/jacksonlee411/rosterkit/pkg/eventbus"
)

func TestHierarchyServiceStartsEmpty(t *testing.T) {
	svc := NewHierarchyService(memory.NewOrgUnitRepository(), memory.NewPersonnelRepository(), testLogger())

	snap := svc.Snapshot()
	require.NotNil(t, snap)
	assert.Zero(t, snap.UnitCount())
	assert.Zero(t, snap.PersonnelCount())
}

func TestHierarchyServiceRebuildSwapsSnapshot(t *testing.T) {
	ctx := context.Background()
	units := memory.NewOrgUnitRepository()
	people := memory.NewPersonnelRepository()
	svc := NewHierarchyService(units, people, testLogger())

	before := svc.Snapshot()

	require.NoError(t, units.Save(ctx, testUnit(1, "1st Battalion", orgunit.LevelBattalion, nil, "RUC-100")))
	require.NoError(t, units.Save(ctx, testUnit(2, "Alpha Company", orgunit.LevelCompany, ptr(uid(1)), "RUC-100")))

	snap, err := svc.Rebuild(ctx)
	require.NoError(t, err)

	assert.Same(t, snap, svc.Snapshot())
	assert.NotSame(t, before, svc.Snapshot())
	assert.Equal(t, 2, snap.ValidUnitCount())

	// The earlier snapshot is untouched: readers holding it keep a
	// consistent view.
	assert.Zero(t, before.UnitCount())
}

func TestHierarchyServiceRebuildsOnBusEvent(t *testing.T) {
	ctx := context.Background()
	units := memory.NewOrgUnitRepository()
	svc := NewHierarchyService(units, memory.NewPersonnelRepository(), testLogger())

	bus := eventbus.NewEventPublisher(testLogger())
	svc.SubscribeTo(bus)

	unit := testUnit(1, "1st Battalion", orgunit.LevelBattalion, nil, "RUC-100")
	require.NoError(t, units.Save(ctx, unit))
	bus.Publish(events.OrgUnitCreated{Unit: unit})

	assert.Equal(t, 1, svc.Snapshot().UnitCount())
}

func TestHierarchyServiceValidateReportsWithoutFailing(t *testing.T) {
	ctx := context.Background()
	units := memory.NewOrgUnitRepository()
	svc := NewHierarchyService(units, memory.NewPersonnelRepository(), testLogger())

	require.NoError(t, units.Save(ctx, testUnit(1, "1st Battalion", orgunit.LevelBattalion, nil, "RUC-100")))
	require.NoError(t, units.Save(ctx, testUnit(2, "Ghost Company", orgunit.LevelCompany, ptr(uid(99)), "RUC-100")))

	errs, err := svc.Validate(ctx)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, KindOrphanedParent, errs[0].Kind)
	assert.Equal(t, uid(2), errs[0].UnitID)

	// The valid part of the forest still serves traversal.
	assert.True(t, svc.Snapshot().IsValid(uid(1)))
	assert.False(t, svc.Snapshot().IsValid(uid(2)))
}
