package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"scrub/internal/runlog"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous remediation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := runlog.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				status := run.Status
				if run.ErrorKind != "" {
					status = fmt.Sprintf("%s (%s)", run.Status, run.ErrorKind)
				}
				rows = append(rows, []string{
					shortID(run.ID),
					run.StartedAt.Local().Format(time.DateTime),
					run.InputPath,
					status,
					strconv.Itoa(run.VideoActions + run.AudioActions),
					strconv.FormatFloat(run.SecondsCut, 'f', 3, 64),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Started", "Input", "Status", "Actions", "Seconds Cut"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	return cmd
}
