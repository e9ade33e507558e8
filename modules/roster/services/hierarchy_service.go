package services

import (
	"context"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/orgunit"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/personnel"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/events"
	"github.com/jacksonlee411/rosterkit/pkg/eventbus"
	"github.com/jacksonlee411/rosterkit/pkg/rostermetrics"
)

// HierarchyService owns the current Snapshot. Rebuild constructs a complete
// new snapshot from repository state and publishes it with a single atomic
// store; concurrent readers keep whatever snapshot they loaded, never a
// mix of two.
type HierarchyService struct {
	units   orgunit.Repository
	people  personnel.Repository
	log     *logrus.Logger
	current atomic.Pointer[Snapshot]
}

func NewHierarchyService(units orgunit.Repository, people personnel.Repository, log *logrus.Logger) *HierarchyService {
	s := &HierarchyService{
		units:  units,
		people: people,
		log:    log,
	}
	s.current.Store(newSnapshot(nil, nil))
	return s
}

// SubscribeTo registers the rebuild trigger on the bus: any roster entity
// event invalidates the snapshot.
func (s *HierarchyService) SubscribeTo(bus eventbus.EventBus) {
	bus.Subscribe(func(e events.RosterEvent) {
		if _, err := s.Rebuild(context.Background()); err != nil {
			s.log.WithError(err).WithField("event", e.EventName()).Error("hierarchy: rebuild after event failed")
		}
	})
}

// Rebuild loads all units and personnel, builds a fresh snapshot, and
// swaps it in. Structural violations do not fail the rebuild; they are
// recorded on the snapshot and the offending subtrees are excluded.
func (s *HierarchyService) Rebuild(ctx context.Context) (*Snapshot, error) {
	units, err := s.units.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	people, err := s.people.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	snap := newSnapshot(units, people)
	s.current.Store(snap)

	rostermetrics.RebuildsTotal.Inc()
	rostermetrics.SnapshotUnits.Set(float64(snap.UnitCount()))
	rostermetrics.SnapshotPersonnel.Set(float64(snap.PersonnelCount()))
	rostermetrics.ExcludedUnits.Set(float64(len(snap.Excluded())))
	for _, herr := range snap.Errors() {
		rostermetrics.HierarchyErrorsTotal.WithLabelValues(string(herr.Kind)).Inc()
	}

	for _, herr := range snap.Errors() {
		s.log.WithFields(logrus.Fields{
			"kind": herr.Kind,
			"unit": herr.UnitID,
		}).Warn("hierarchy: unit excluded from snapshot")
	}
	if n := len(snap.Excluded()); n > 0 {
		s.log.WithField("count", n).Warn("hierarchy: units excluded from traversal")
	}

	return snap, nil
}

// Snapshot returns the current snapshot. Always non-nil; before the first
// rebuild it is empty.
func (s *HierarchyService) Snapshot() *Snapshot {
	return s.current.Load()
}

// Validate rebuilds from current repository state and reports every
// structural error found. An empty list means the forest is sound.
func (s *HierarchyService) Validate(ctx context.Context) ([]HierarchyError, error) {
	snap, err := s.Rebuild(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Errors(), nil
}
