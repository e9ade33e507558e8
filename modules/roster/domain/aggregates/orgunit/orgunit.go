package orgunit

import (
	"strings"

	"github.com/google/uuid"
)

// OrgUnit is one node in an organization's hierarchy tree. Units with a nil
// parent are tree roots; OrganizationID identifies which top-level
// organization (RUC) the tree belongs to.
type OrgUnit struct {
	id             uuid.UUID
	name           string
	level          Level
	parentID       *uuid.UUID
	organizationID string
}

func New(name string, level Level, parentID *uuid.UUID, organizationID string) OrgUnit {
	return OrgUnit{
		id:             uuid.New(),
		name:           strings.TrimSpace(name),
		level:          level,
		parentID:       parentID,
		organizationID: strings.TrimSpace(organizationID),
	}
}

func Hydrate(
	id uuid.UUID,
	name string,
	level Level,
	parentID *uuid.UUID,
	organizationID string,
) OrgUnit {
	return OrgUnit{
		id:             id,
		name:           strings.TrimSpace(name),
		level:          level,
		parentID:       parentID,
		organizationID: strings.TrimSpace(organizationID),
	}
}

func (u OrgUnit) ID() uuid.UUID          { return u.id }
func (u OrgUnit) Name() string           { return u.name }
func (u OrgUnit) Level() Level           { return u.level }
func (u OrgUnit) ParentID() *uuid.UUID   { return u.parentID }
func (u OrgUnit) OrganizationID() string { return u.organizationID }
func (u OrgUnit) IsRoot() bool           { return u.parentID == nil || *u.parentID == uuid.Nil }
func (u OrgUnit) IsZero() bool           { return u.id == uuid.Nil && u.name == "" }

// WithName returns a copy with the name replaced.
func (u OrgUnit) WithName(name string) OrgUnit {
	u.name = strings.TrimSpace(name)
	return u
}

// WithParent returns a copy reparented under parentID.
func (u OrgUnit) WithParent(parentID *uuid.UUID) OrgUnit {
	u.parentID = parentID
	return u
}
