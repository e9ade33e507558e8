package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jacksonlee411/rosterkit/modules/roster/domain/entities/role"
)

func newFairnessCmd(opts *rootOptions) *cobra.Command {
	var (
		roleName  string
		scopeUnit string
		topN      int
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "fairness",
		Short: "Report duty-load fairness for the population a role can see",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, _ := role.Parse(roleName)
			assignment := role.Assignment{Role: r}
			if scopeUnit != "" {
				id, err := uuid.Parse(scopeUnit)
				if err != nil {
					return withCode(exitUsage, fmt.Errorf("invalid --scope-unit: %w", err))
				}
				assignment.ScopeUnitID = &id
			}

			a, err := newApp(ctx, opts)
			if err != nil {
				return err
			}

			report := a.roster.FairnessForRole(assignment)

			if asJSON {
				type entry struct {
					Position int    `json:"position"`
					ID       string `json:"id"`
					Name     string `json:"name"`
					Rank     string `json:"rank"`
					Score    string `json:"duty_score"`
				}
				out := struct {
					Population    int     `json:"population"`
					Mean          float64 `json:"mean"`
					StdDev        float64 `json:"std_dev"`
					FairnessIndex float64 `json:"fairness_index"`
					Ranked        []entry `json:"ranked"`
				}{
					Population:    report.Scope.PersonnelCount(),
					Mean:          report.Result.Mean,
					StdDev:        report.Result.StdDev,
					FairnessIndex: report.Result.FairnessIndex,
				}
				limit := len(report.Ranked)
				if topN > 0 && topN < limit {
					limit = topN
				}
				for _, rp := range report.Ranked[:limit] {
					out.Ranked = append(out.Ranked, entry{
						Position: rp.Position,
						ID:       rp.Person.ID().String(),
						Name:     rp.Person.Name(),
						Rank:     string(rp.Person.Rank()),
						Score:    rp.Person.DutyScore().String(),
					})
				}
				return writeJSON(out)
			}

			fmt.Printf("population: %d  mean: %.2f  stddev: %.2f  fairness: %.1f\n",
				report.Scope.PersonnelCount(), report.Result.Mean, report.Result.StdDev, report.Result.FairnessIndex)

			limit := len(report.Ranked)
			if topN > 0 && topN < limit {
				limit = topN
			}
			w := newTable()
			row(w, "#", "NAME", "RANK", "SCORE")
			for _, rp := range report.Ranked[:limit] {
				row(w, rp.Position, rp.Person.Name(), rp.Person.Rank(), rp.Person.DutyScore())
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&roleName, "role", string(role.GlobalAdmin), "Role name")
	cmd.Flags().StringVar(&scopeUnit, "scope-unit", "", "Scope unit UUID (omit only for global-admin)")
	cmd.Flags().IntVar(&topN, "top", 0, "Show only the N highest-loaded personnel")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
