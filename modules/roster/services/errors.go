package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jacksonlee411/rosterkit/pkg/serrors"
)

// Coded sentinels for the non-structural error taxonomy. None of these
// abort a request: they travel in diagnostic lists next to a well-defined
// best-effort result.
var (
	ErrUnknownRole       = serrors.NewError("SCOPE_UNKNOWN_ROLE", "unrecognized role name", "scope resolves empty")
	ErrNilScopeUnit      = serrors.NewError("SCOPE_NIL_SCOPE_UNIT", "role has no scope unit", "only global-admin may omit the scope unit")
	ErrScopeUnitInvalid  = serrors.NewError("SCOPE_UNIT_INVALID", "scope unit missing or excluded from hierarchy", "")
	ErrEmptyFilterValues = serrors.NewError("CONFIG_EMPTY_FILTER_VALUES", "filter has an active mode but no values", "include matches nothing, exclude excludes nothing")
	ErrUnitHasChildren   = serrors.NewError("ROSTER_UNIT_HAS_CHILDREN", "unit cannot be deleted while it has children", "")
)

type HierarchyErrorKind string

const (
	KindCycle          HierarchyErrorKind = "cycle"
	KindOrphanedParent HierarchyErrorKind = "orphaned_parent"
	KindLevelSkip      HierarchyErrorKind = "level_skip"
)

// HierarchyError flags one structurally invalid unit found during a
// snapshot rebuild. The unit and its subtree are excluded from traversal
// results until the data is corrected; the rebuild itself never fails.
type HierarchyError struct {
	Kind     HierarchyErrorKind
	UnitID   uuid.UUID
	ParentID *uuid.UUID
	Detail   string
}

func (e HierarchyError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("hierarchy %s: unit %s", e.Kind, e.UnitID)
	}
	return fmt.Sprintf("hierarchy %s: unit %s: %s", e.Kind, e.UnitID, e.Detail)
}
