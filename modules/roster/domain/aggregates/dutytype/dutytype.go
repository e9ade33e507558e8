package dutytype

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/personnel"
)

// FilterMode selects whether a filter's value set is an allowlist or a
// blocklist.
type FilterMode string

const (
	ModeInclude FilterMode = "include"
	ModeExclude FilterMode = "exclude"
)

func (m FilterMode) Valid() bool {
	return m == ModeInclude || m == ModeExclude
}

func ParseFilterMode(s string) (FilterMode, bool) {
	m := FilterMode(strings.ToLower(strings.TrimSpace(s)))
	return m, m.Valid()
}

// RankFilter restricts a duty type to (or away from) a set of ranks.
//
// An empty value set is a configuration error with asymmetric resolution:
// include-nothing admits nobody, exclude-nothing excludes nobody.
type RankFilter struct {
	Mode   FilterMode
	Values []personnel.Rank
}

func (f *RankFilter) Allows(r personnel.Rank) bool {
	if f == nil {
		return true
	}
	member := false
	for _, v := range f.Values {
		if v == r {
			member = true
			break
		}
	}
	if f.Mode == ModeInclude {
		return member
	}
	return !member
}

// SectionFilter restricts a duty type to (or away from) a set of units.
// Membership is an exact unit-id match, not subtree membership: a filter on
// a company does not cover its sections. This mirrors the product's
// observed behavior; the scope resolver is the only subtree-aware path.
type SectionFilter struct {
	Mode   FilterMode
	Values []uuid.UUID
}

func (f *SectionFilter) Allows(unitID uuid.UUID) bool {
	if f == nil {
		return true
	}
	member := false
	for _, v := range f.Values {
		if v == unitID {
			member = true
			break
		}
	}
	if f.Mode == ModeInclude {
		return member
	}
	return !member
}

// Supernumerary configures standby slots for a duty type. StandbyValue is
// the scoring credit applied elsewhere when a standby slot goes unused; the
// accounting here never consumes it.
type Supernumerary struct {
	SlotsPerPeriod int
	PeriodDays     int
	StandbyValue   decimal.Decimal
}

// DutyType describes one recurring duty and who may stand it.
type DutyType struct {
	id            uuid.UUID
	name          string
	unitID        uuid.UUID
	rankFilter    *RankFilter
	sectionFilter *SectionFilter
	supernumerary *Supernumerary
}

type Option func(*DutyType)

func WithRankFilter(f *RankFilter) Option {
	return func(d *DutyType) { d.rankFilter = f }
}

func WithSectionFilter(f *SectionFilter) Option {
	return func(d *DutyType) { d.sectionFilter = f }
}

func WithSupernumerary(s *Supernumerary) Option {
	return func(d *DutyType) { d.supernumerary = s }
}

func New(name string, unitID uuid.UUID, opts ...Option) DutyType {
	d := DutyType{
		id:     uuid.New(),
		name:   strings.TrimSpace(name),
		unitID: unitID,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func Hydrate(id uuid.UUID, name string, unitID uuid.UUID, opts ...Option) DutyType {
	d := New(name, unitID, opts...)
	d.id = id
	return d
}

func (d DutyType) ID() uuid.UUID                 { return d.id }
func (d DutyType) Name() string                  { return d.name }
func (d DutyType) UnitID() uuid.UUID             { return d.unitID }
func (d DutyType) RankFilter() *RankFilter       { return d.rankFilter }
func (d DutyType) SectionFilter() *SectionFilter { return d.sectionFilter }
func (d DutyType) Supernumerary() *Supernumerary { return d.supernumerary }
func (d DutyType) IsZero() bool                  { return d.id == uuid.Nil && d.name == "" }
