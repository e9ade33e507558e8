package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate hierarchy structure and report excluded subtrees",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, opts)
			if err != nil {
				return err
			}

			errs, err := a.roster.ValidateHierarchy(ctx)
			if err != nil {
				return err
			}
			snap := a.hierarchy.Snapshot()

			if asJSON {
				type issue struct {
					Kind   string `json:"kind"`
					UnitID string `json:"unit_id"`
					Detail string `json:"detail,omitempty"`
				}
				out := struct {
					Units     int     `json:"units"`
					Valid     int     `json:"valid_units"`
					Excluded  int     `json:"excluded_units"`
					Personnel int     `json:"personnel"`
					Issues    []issue `json:"issues"`
				}{
					Units:     snap.UnitCount(),
					Valid:     snap.ValidUnitCount(),
					Excluded:  len(snap.Excluded()),
					Personnel: snap.PersonnelCount(),
					Issues:    make([]issue, 0, len(errs)),
				}
				for _, e := range errs {
					out.Issues = append(out.Issues, issue{Kind: string(e.Kind), UnitID: e.UnitID.String(), Detail: e.Detail})
				}
				if err := writeJSON(out); err != nil {
					return err
				}
			} else {
				w := newTable()
				row(w, "UNITS", "VALID", "EXCLUDED", "PERSONNEL", "ISSUES")
				row(w, snap.UnitCount(), snap.ValidUnitCount(), len(snap.Excluded()), snap.PersonnelCount(), len(errs))
				_ = w.Flush()
				for _, e := range errs {
					fmt.Println(e.Error())
				}
			}

			if len(errs) > 0 {
				return withCode(exitValidation, fmt.Errorf("%d hierarchy issue(s) found", len(errs)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
