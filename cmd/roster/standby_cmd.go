package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newStandbyCmd(opts *rootOptions) *cobra.Command {
	var (
		dutyTypeID string
		start      string
		end        string
	)

	cmd := &cobra.Command{
		Use:   "standby",
		Short: "Compute expected standby slot consumption over a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := uuid.Parse(dutyTypeID)
			if err != nil {
				return withCode(exitUsage, fmt.Errorf("invalid --duty-type: %w", err))
			}
			startAt, err := time.Parse("2006-01-02", start)
			if err != nil {
				return withCode(exitUsage, fmt.Errorf("invalid --start: %w", err))
			}
			endAt, err := time.Parse("2006-01-02", end)
			if err != nil {
				return withCode(exitUsage, fmt.Errorf("invalid --end: %w", err))
			}

			a, err := newApp(ctx, opts)
			if err != nil {
				return err
			}

			d, err := a.dutyType(ctx, id)
			if err != nil {
				return err
			}

			slots := a.roster.ExpectedStandbySlots(d, startAt, endAt)
			fmt.Printf("%s: %d standby slot(s) over %s..%s\n", d.Name(), slots, start, end)
			return nil
		},
	}

	cmd.Flags().StringVar(&dutyTypeID, "duty-type", "", "Duty type UUID (required)")
	cmd.Flags().StringVar(&start, "start", "", "Period start, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&end, "end", "", "Period end, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("duty-type")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
