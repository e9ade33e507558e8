package services

import (
	"github.com/sirupsen/logrus"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/dutytype"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/personnel"
)

// EligibilityService decides whether a person may stand a duty type. Both
// the rank filter and the section filter must pass; each is evaluated
// independently. The decision is a pure function of the person and the
// duty type.
type EligibilityService struct {
	log *logrus.Logger
}

func NewEligibilityService(log *logrus.Logger) *EligibilityService {
	return &EligibilityService{log: log}
}

func (s *EligibilityService) IsEligible(p personnel.Personnel, d dutytype.DutyType) bool {
	eligible, _ := s.Evaluate(p, d)
	return eligible
}

// Evaluate returns the eligibility decision plus configuration diagnostics.
// A filter with an active mode and an empty value set is a configuration
// error; it is reported, logged, and resolved asymmetrically: an empty
// include admits nobody, an empty exclude excludes nobody.
func (s *EligibilityService) Evaluate(p personnel.Personnel, d dutytype.DutyType) (bool, []error) {
	diags := s.configDiagnostics(d)

	if !d.RankFilter().Allows(p.Rank()) {
		return false, diags
	}
	// Section membership is an exact unit-id match by design: the filter
	// names units, not subtrees.
	if !d.SectionFilter().Allows(p.UnitID()) {
		return false, diags
	}
	return true, diags
}

// EligiblePersonnel filters people down to those eligible for the duty
// type, preserving input order.
func (s *EligibilityService) EligiblePersonnel(people []personnel.Personnel, d dutytype.DutyType) []personnel.Personnel {
	out := make([]personnel.Personnel, 0, len(people))
	for _, p := range people {
		if s.IsEligible(p, d) {
			out = append(out, p)
		}
	}
	return out
}

func (s *EligibilityService) configDiagnostics(d dutytype.DutyType) []error {
	var diags []error
	if f := d.RankFilter(); f != nil && len(f.Values) == 0 {
		diags = append(diags, ErrEmptyFilterValues.WithMessage("duty type %q: rank filter mode %q has no values", d.Name(), f.Mode))
	}
	if f := d.SectionFilter(); f != nil && len(f.Values) == 0 {
		diags = append(diags, ErrEmptyFilterValues.WithMessage("duty type %q: section filter mode %q has no values", d.Name(), f.Mode))
	}
	for _, diag := range diags {
		s.log.WithField("duty_type", d.Name()).Warn(diag.Error())
	}
	return diags
}
