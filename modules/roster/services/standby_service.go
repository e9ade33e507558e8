package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/dutytype"
)

// StandbyService computes supernumerary (standby) slot demand over a
// period.
type StandbyService struct{}

func NewStandbyService() *StandbyService {
	return &StandbyService{}
}

// ExpectedStandbySlots returns the standby slots a duty type consumes over
// [start, end). A partial trailing period still requires a full slot
// allotment: standby coverage is never under-provisioned. Duty types
// without a supernumerary configuration consume nothing.
func (s *StandbyService) ExpectedStandbySlots(d dutytype.DutyType, start, end time.Time) int {
	sup := d.Supernumerary()
	if sup == nil {
		return 0
	}
	if sup.SlotsPerPeriod < 1 || sup.PeriodDays < 1 {
		return 0
	}

	days := periodLengthDays(start, end)
	if days <= 0 {
		return 0
	}

	periods := (days + sup.PeriodDays - 1) / sup.PeriodDays
	return sup.SlotsPerPeriod * periods
}

// StandbyValue returns the scoring credit for an unused standby slot,
// passed through unchanged from the configuration. It is never consumed
// by the accounting here; scoring happens elsewhere.
func (s *StandbyService) StandbyValue(d dutytype.DutyType) decimal.Decimal {
	sup := d.Supernumerary()
	if sup == nil {
		return decimal.Zero
	}
	return sup.StandbyValue
}

// periodLengthDays measures the window in whole days, rounding partial
// days up.
func periodLengthDays(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	hours := end.Sub(start).Hours()
	days := int(hours / 24)
	if float64(days)*24 < hours {
		days++
	}
	return days
}
