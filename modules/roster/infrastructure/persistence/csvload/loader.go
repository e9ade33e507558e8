// Package csvload is the bulk loader: it reads the full set of org units,
// personnel, duty types, and role assignments from a directory of CSV
// files and fills the repositories. Rows that cannot be parsed are
// reported and skipped, never fatal; referential problems (a person in an
// unknown unit, a dangling parent) are loaded as-is and left to the
// hierarchy validator, which fails closed on them.
package csvload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/dutytype"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/orgunit"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/aggregates/personnel"
	"github.com/jacksonlee411/rosterkit/modules/roster/domain/entities/role"
)

const (
	UnitsFile     = "units.csv"
	PersonnelFile = "personnel.csv"
	DutyTypesFile = "duty_types.csv"
	RolesFile     = "roles.csv"
)

// RowIssue is one skipped CSV row. Line is 1-based and counts the header.
type RowIssue struct {
	File string
	Line int
	Err  error
}

func (i RowIssue) String() string {
	return fmt.Sprintf("%s:%d: %v", i.File, i.Line, i.Err)
}

// LoadReport summarizes a bulk load.
type LoadReport struct {
	Units       int
	Personnel   int
	DutyTypes   int
	Assignments int
	Issues      []RowIssue
}

type Repositories struct {
	Units     orgunit.Repository
	Personnel personnel.Repository
	DutyTypes dutytype.Repository
	Roles     role.Repository
}

type Loader struct {
	dir string
	log *logrus.Logger
}

func NewLoader(dir string, log *logrus.Logger) *Loader {
	return &Loader{dir: dir, log: log}
}

// LoadAll reads every data file present in the directory into the
// repositories. Missing files are skipped silently: a deployment may load
// personnel from CSV and roles from elsewhere.
func (l *Loader) LoadAll(ctx context.Context, repos Repositories) (*LoadReport, error) {
	report := &LoadReport{}

	units, err := l.LoadOrgUnits(report)
	if err != nil {
		return report, err
	}
	for _, u := range units {
		if err := repos.Units.Save(ctx, u); err != nil {
			return report, err
		}
	}

	people, err := l.LoadPersonnel(report)
	if err != nil {
		return report, err
	}
	for _, p := range people {
		if err := repos.Personnel.Save(ctx, p); err != nil {
			return report, err
		}
	}

	types, err := l.LoadDutyTypes(report)
	if err != nil {
		return report, err
	}
	for _, d := range types {
		if err := repos.DutyTypes.Save(ctx, d); err != nil {
			return report, err
		}
	}

	assignments, err := l.LoadRoleAssignments(report)
	if err != nil {
		return report, err
	}
	for _, a := range assignments {
		if err := repos.Roles.Save(ctx, a); err != nil {
			return report, err
		}
	}

	for _, issue := range report.Issues {
		l.log.WithFields(logrus.Fields{
			"file": issue.File,
			"line": issue.Line,
		}).Warn(issue.Err.Error())
	}
	return report, nil
}

func (l *Loader) LoadOrgUnits(report *LoadReport) ([]orgunit.OrgUnit, error) {
	var out []orgunit.OrgUnit
	err := l.eachRow(UnitsFile, []string{"id", "name", "level", "organization_id"}, func(line int, record []string, idx map[string]int) error {
		id, err := uuid.Parse(field(record, idx, "id"))
		if err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}
		level, err := orgunit.ParseLevel(field(record, idx, "level"))
		if err != nil {
			return err
		}
		var parentID *uuid.UUID
		if raw := field(record, idx, "parent_id"); raw != "" {
			pid, err := uuid.Parse(raw)
			if err != nil {
				return fmt.Errorf("invalid parent_id: %w", err)
			}
			parentID = &pid
		}
		out = append(out, orgunit.Hydrate(id, field(record, idx, "name"), level, parentID, field(record, idx, "organization_id")))
		return nil
	}, report)
	if err != nil {
		return nil, err
	}
	report.Units = len(out)
	return out, nil
}

func (l *Loader) LoadPersonnel(report *LoadReport) ([]personnel.Personnel, error) {
	var out []personnel.Personnel
	err := l.eachRow(PersonnelFile, []string{"id", "name", "unit_id", "rank"}, func(line int, record []string, idx map[string]int) error {
		id, err := uuid.Parse(field(record, idx, "id"))
		if err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}
		unitID, err := uuid.Parse(field(record, idx, "unit_id"))
		if err != nil {
			return fmt.Errorf("invalid unit_id: %w", err)
		}
		score := decimal.Zero
		if raw := field(record, idx, "duty_score"); raw != "" {
			score, err = decimal.NewFromString(raw)
			if err != nil {
				return fmt.Errorf("invalid duty_score: %w", err)
			}
			if score.IsNegative() {
				return fmt.Errorf("duty_score must be non-negative, got %s", raw)
			}
		}
		rank := personnel.NormalizeRank(field(record, idx, "rank"))
		out = append(out, personnel.Hydrate(id, field(record, idx, "name"), unitID, rank, score))
		return nil
	}, report)
	if err != nil {
		return nil, err
	}
	report.Personnel = len(out)
	return out, nil
}

func (l *Loader) LoadDutyTypes(report *LoadReport) ([]dutytype.DutyType, error) {
	var out []dutytype.DutyType
	err := l.eachRow(DutyTypesFile, []string{"id", "name", "unit_id"}, func(line int, record []string, idx map[string]int) error {
		id, err := uuid.Parse(field(record, idx, "id"))
		if err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}
		unitID, err := uuid.Parse(field(record, idx, "unit_id"))
		if err != nil {
			return fmt.Errorf("invalid unit_id: %w", err)
		}

		var opts []dutytype.Option

		if raw := field(record, idx, "rank_filter_mode"); raw != "" {
			mode, ok := dutytype.ParseFilterMode(raw)
			if !ok {
				return fmt.Errorf("invalid rank_filter_mode %q", raw)
			}
			values := splitValues(field(record, idx, "rank_filter_values"))
			ranks := make([]personnel.Rank, 0, len(values))
			for _, v := range values {
				ranks = append(ranks, personnel.NormalizeRank(v))
			}
			opts = append(opts, dutytype.WithRankFilter(&dutytype.RankFilter{Mode: mode, Values: ranks}))
		}

		if raw := field(record, idx, "section_filter_mode"); raw != "" {
			mode, ok := dutytype.ParseFilterMode(raw)
			if !ok {
				return fmt.Errorf("invalid section_filter_mode %q", raw)
			}
			values := splitValues(field(record, idx, "section_filter_values"))
			unitIDs := make([]uuid.UUID, 0, len(values))
			for _, v := range values {
				uid, err := uuid.Parse(v)
				if err != nil {
					return fmt.Errorf("invalid section_filter_values entry %q: %w", v, err)
				}
				unitIDs = append(unitIDs, uid)
			}
			opts = append(opts, dutytype.WithSectionFilter(&dutytype.SectionFilter{Mode: mode, Values: unitIDs}))
		}

		if raw := field(record, idx, "slots_per_period"); raw != "" {
			slots, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("invalid slots_per_period %q", raw)
			}
			days, err := strconv.Atoi(field(record, idx, "period_days"))
			if err != nil {
				return fmt.Errorf("invalid period_days %q", field(record, idx, "period_days"))
			}
			if slots < 1 || days < 1 {
				return fmt.Errorf("supernumerary slots_per_period and period_days must be >= 1")
			}
			value := decimal.Zero
			if rawValue := field(record, idx, "standby_value"); rawValue != "" {
				value, err = decimal.NewFromString(rawValue)
				if err != nil {
					return fmt.Errorf("invalid standby_value: %w", err)
				}
				if value.IsNegative() {
					return fmt.Errorf("standby_value must be non-negative, got %s", rawValue)
				}
			}
			opts = append(opts, dutytype.WithSupernumerary(&dutytype.Supernumerary{
				SlotsPerPeriod: slots,
				PeriodDays:     days,
				StandbyValue:   value,
			}))
		}

		out = append(out, dutytype.Hydrate(id, field(record, idx, "name"), unitID, opts...))
		return nil
	}, report)
	if err != nil {
		return nil, err
	}
	report.DutyTypes = len(out)
	return out, nil
}

func (l *Loader) LoadRoleAssignments(report *LoadReport) ([]role.Assignment, error) {
	var out []role.Assignment
	err := l.eachRow(RolesFile, []string{"principal_id", "role"}, func(line int, record []string, idx map[string]int) error {
		principalID, err := uuid.Parse(field(record, idx, "principal_id"))
		if err != nil {
			return fmt.Errorf("invalid principal_id: %w", err)
		}
		// Unknown role names are kept: the scope resolver treats them as
		// empty scope with a diagnostic rather than dropping the record.
		r, _ := role.Parse(field(record, idx, "role"))
		var scopeUnitID *uuid.UUID
		if raw := field(record, idx, "scope_unit_id"); raw != "" {
			uid, err := uuid.Parse(raw)
			if err != nil {
				return fmt.Errorf("invalid scope_unit_id: %w", err)
			}
			scopeUnitID = &uid
		}
		out = append(out, role.Assignment{PrincipalID: principalID, Role: r, ScopeUnitID: scopeUnitID})
		return nil
	}, report)
	if err != nil {
		return nil, err
	}
	report.Assignments = len(out)
	return out, nil
}

// eachRow streams a CSV file, invoking fn per data row. Row errors become
// report issues; only I/O and header problems abort the load.
func (l *Loader) eachRow(name string, required []string, fn func(line int, record []string, idx map[string]int) error, report *LoadReport) error {
	path := filepath.Join(l.dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	r, closeFn, err := openCSV(path)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	idx, err := readHeader(r)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := requireColumns(idx, required...); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		line++
		if err != nil {
			report.Issues = append(report.Issues, RowIssue{File: name, Line: line, Err: err})
			continue
		}
		if err := fn(line, record, idx); err != nil {
			report.Issues = append(report.Issues, RowIssue{File: name, Line: line, Err: err})
		}
	}
}
