package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/dutytype"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/orgunit"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/personnel"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/entities/role"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/events"
	"github.com/jacksonlee411/rosterkit/pkg/eventbus"
)

// RosterService is the facade the presentation layer consumes. It wires
// the repositories, the event bus, and the query services; entity
// mutations publish events, which trigger a snapshot rebuild through the
// bus subscription on HierarchyService.
type RosterService struct {
	units     orgunit.Repository
	people    personnel.Repository
	dutyTypes dutytype.Repository
	roles     role.Repository

	hierarchy   *HierarchyService
	scope       *ScopeService
	eligibility *EligibilityService
	fairness    *FairnessService
	standby     *StandbyService

	publisher eventbus.EventBus
	log       *logrus.Logger
}

func NewRosterService(
	units orgunit.Repository,
	people personnel.Repository,
	dutyTypes dutytype.Repository,
	roles role.Repository,
	hierarchy *HierarchyService,
	scope *ScopeService,
	eligibility *EligibilityService,
	fairness *FairnessService,
	standby *StandbyService,
	publisher eventbus.EventBus,
	log *logrus.Logger,
) *RosterService {
	return &RosterService{
		units:       units,
		people:      people,
		dutyTypes:   dutyTypes,
		roles:       roles,
		hierarchy:   hierarchy,
		scope:       scope,
		eligibility: eligibility,
		fairness:    fairness,
		standby:     standby,
		publisher:   publisher,
		log:         log,
	}
}

func (s *RosterService) CreateUnit(ctx context.Context, unit orgunit.OrgUnit) error {
	if err := s.units.Save(ctx, unit); err != nil {
		return err
	}
	s.publisher.Publish(events.OrgUnitCreated{Unit: unit})
	return nil
}

func (s *RosterService) UpdateUnit(ctx context.Context, unit orgunit.OrgUnit) error {
	if err := s.units.Save(ctx, unit); err != nil {
		return err
	}
	s.publisher.Publish(events.OrgUnitUpdated{Unit: unit})
	return nil
}

// DeleteUnit refuses to delete a unit that still has children in the
// current snapshot. That rule is enforced here at the boundary; the
// snapshot itself fails closed on danglers either way.
func (s *RosterService) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	if len(s.hierarchy.Snapshot().Children(id)) > 0 {
		return ErrUnitHasChildren.WithMessage("unit %s still has children", id)
	}
	if err := s.units.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish(events.OrgUnitDeleted{UnitID: id})
	return nil
}

func (s *RosterService) CreatePersonnel(ctx context.Context, p personnel.Personnel) error {
	if err := s.people.Save(ctx, p); err != nil {
		return err
	}
	s.publisher.Publish(events.PersonnelCreated{Person: p})
	return nil
}

func (s *RosterService) UpdatePersonnel(ctx context.Context, p personnel.Personnel) error {
	if err := s.people.Save(ctx, p); err != nil {
		return err
	}
	s.publisher.Publish(events.PersonnelUpdated{Person: p})
	return nil
}

func (s *RosterService) DeletePersonnel(ctx context.Context, id uuid.UUID) error {
	if err := s.people.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish(events.PersonnelDeleted{PersonID: id})
	return nil
}

func (s *RosterService) CreateDutyType(ctx context.Context, d dutytype.DutyType) error {
	if err := s.dutyTypes.Save(ctx, d); err != nil {
		return err
	}
	s.publisher.Publish(events.DutyTypeCreated{DutyType: d})
	return nil
}

func (s *RosterService) UpdateDutyType(ctx context.Context, d dutytype.DutyType) error {
	if err := s.dutyTypes.Save(ctx, d); err != nil {
		return err
	}
	s.publisher.Publish(events.DutyTypeUpdated{DutyType: d})
	return nil
}

func (s *RosterService) DeleteDutyType(ctx context.Context, id uuid.UUID) error {
	if err := s.dutyTypes.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish(events.DutyTypeDeleted{DutyTypeID: id})
	return nil
}

// AssignRole applies the one-manager-role rule: assigning a manager-tier
// role implicitly retires the principal's previous manager-tier
// assignments. The rule itself lives in role.ReassignManager as a pure
// function; this method applies its outcome to storage.
func (s *RosterService) AssignRole(ctx context.Context, a role.Assignment) error {
	current, err := s.roles.GetByPrincipal(ctx, a.PrincipalID)
	if err != nil {
		return err
	}
	kept, retired := role.ReassignManager(current, a)

	if err := s.roles.DeleteByPrincipal(ctx, a.PrincipalID); err != nil {
		return err
	}
	for _, assignment := range kept {
		if err := s.roles.Save(ctx, assignment); err != nil {
			return err
		}
	}

	for _, r := range retired {
		s.log.WithFields(logrus.Fields{
			"principal": a.PrincipalID,
			"retired":   string(r.Role),
			"assigned":  string(a.Role),
		}).Info("roster: manager-tier role retired by reassignment")
	}
	s.publisher.Publish(events.RoleAssigned{Assignment: a, Retired: retired})
	return nil
}

// ResolveScope resolves the assignment against the current snapshot.
func (s *RosterService) ResolveScope(a role.Assignment) ScopeResult {
	return s.scope.ResolveScope(s.hierarchy.Snapshot(), a)
}

func (s *RosterService) IsEligible(p personnel.Personnel, d dutytype.DutyType) bool {
	return s.eligibility.IsEligible(p, d)
}

func (s *RosterService) ComputeFairness(scores []decimal.Decimal) FairnessResult {
	return s.fairness.Compute(scores)
}

func (s *RosterService) ExpectedStandbySlots(d dutytype.DutyType, start, end time.Time) int {
	return s.standby.ExpectedStandbySlots(d, start, end)
}

func (s *RosterService) ValidateHierarchy(ctx context.Context) ([]HierarchyError, error) {
	return s.hierarchy.Validate(ctx)
}

// EligibleForDuty returns the personnel inside the assignment's scope who
// pass the duty type's filters, in deterministic order.
func (s *RosterService) EligibleForDuty(ctx context.Context, dutyTypeID uuid.UUID, a role.Assignment) ([]personnel.Personnel, error) {
	d, err := s.dutyTypes.GetByID(ctx, dutyTypeID)
	if err != nil {
		return nil, err
	}

	snap := s.hierarchy.Snapshot()
	scope := s.scope.ResolveScope(snap, a)

	people := make([]personnel.Personnel, 0, scope.PersonnelCount())
	for _, id := range scope.PersonnelIDs() {
		if p, ok := snap.Person(id); ok {
			people = append(people, p)
		}
	}
	return s.eligibility.EligiblePersonnel(people, d), nil
}

// FairnessReport bundles the fairness statistics and ranking for exactly
// the population an assignment may see. Every dashboard view is a thin
// consumer of this one computation.
type FairnessReport struct {
	Scope  ScopeResult
	Result FairnessResult
	Ranked []RankedPerson
}

func (s *RosterService) FairnessForRole(a role.Assignment) FairnessReport {
	snap := s.hierarchy.Snapshot()
	scope := s.scope.ResolveScope(snap, a)

	people := make([]personnel.Personnel, 0, scope.PersonnelCount())
	for _, id := range scope.PersonnelIDs() {
		if p, ok := snap.Person(id); ok {
			people = append(people, p)
		}
	}

	return FairnessReport{
		Scope:  scope,
		Result: s.fairness.Compute(Scores(people)),
		Ranked: s.fairness.Rank(people),
	}
}
