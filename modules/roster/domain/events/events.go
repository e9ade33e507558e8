// Package events carries entity lifecycle notifications. The hierarchy
// service subscribes to these to rebuild its snapshot after any mutation;
// that is the whole persistence-notifier contract.
package events

import (
	"github.com/google/uuid"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/dutytype"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/orgunit"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/personnel"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/entities/role"
)

// RosterEvent is implemented by every event that invalidates the current
// hierarchy snapshot.
type RosterEvent interface {
	EventName() string
}

type OrgUnitCreated struct{ Unit orgunit.OrgUnit }
type OrgUnitUpdated struct{ Unit orgunit.OrgUnit }
type OrgUnitDeleted struct{ UnitID uuid.UUID }

func (OrgUnitCreated) EventName() string { return "roster.orgunit.created" }
func (OrgUnitUpdated) EventName() string { return "roster.orgunit.updated" }
func (OrgUnitDeleted) EventName() string { return "roster.orgunit.deleted" }

type PersonnelCreated struct{ Person personnel.Personnel }
type PersonnelUpdated struct{ Person personnel.Personnel }
type PersonnelDeleted struct{ PersonID uuid.UUID }

func (PersonnelCreated) EventName() string { return "roster.personnel.created" }
func (PersonnelUpdated) EventName() string { return "roster.personnel.updated" }
func (PersonnelDeleted) EventName() string { return "roster.personnel.deleted" }

type DutyTypeCreated struct{ DutyType dutytype.DutyType }
type DutyTypeUpdated struct{ DutyType dutytype.DutyType }
type DutyTypeDeleted struct{ DutyTypeID uuid.UUID }

func (DutyTypeCreated) EventName() string { return "roster.dutytype.created" }
func (DutyTypeUpdated) EventName() string { return "roster.dutytype.updated" }
func (DutyTypeDeleted) EventName() string { return "roster.dutytype.deleted" }

type RoleAssigned struct {
	Assignment role.Assignment
	// Retired carries manager-tier assignments implicitly revoked by this
	// assignment, per the one-manager-role rule.
	Retired []role.Assignment
}
type RoleRevoked struct{ PrincipalID uuid.UUID }

func (RoleAssigned) EventName() string { return "roster.role.assigned" }
func (RoleRevoked) EventName() string  { return "roster.role.revoked" }
