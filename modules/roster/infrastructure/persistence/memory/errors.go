package memory

import "github.com/pkg/errors"

var (
	ErrUnitNotFound      = errors.New("org unit not found")
	ErrPersonnelNotFound = errors.New("personnel not found")
	ErrDutyTypeNotFound  = errors.New("duty type not found")
)
