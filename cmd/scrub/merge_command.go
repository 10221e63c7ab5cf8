package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scrub/internal/segment"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var gapOverride float64

	cmd := &cobra.Command{
		Use:   "merge <events.json>",
		Short: "Merge detection events into remediation segments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			gap := cfg.Merge.GapThreshold
			if cmd.Flags().Changed("gap") {
				if gapOverride < 0 {
					return fmt.Errorf("gap threshold must not be negative, got %v", gapOverride)
				}
				gap = gapOverride
			}

			events, err := segment.LoadEvents(args[0])
			if err != nil {
				return err
			}
			segments := segment.Merge(events, gap)

			target := strings.TrimSpace(outputPath)
			if target == "" {
				target = deriveSegmentsPath(args[0])
			}
			if err := segment.SaveFile(target, segments); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Merged %d events into %d segments (gap threshold %.3fs)\n", len(events), len(segments), gap)
			fmt.Fprintln(out, renderSegmentTable(segments))
			fmt.Fprintf(out, "Wrote %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Segment file destination (defaults to <events>.segments.json)")
	cmd.Flags().Float64Var(&gapOverride, "gap", 0, "Merge events closer than this many seconds")
	return cmd
}

func deriveSegmentsPath(eventsPath string) string {
	trimmed := strings.TrimSuffix(eventsPath, ".json")
	return trimmed + ".segments.json"
}

func renderSegmentTable(segments []segment.Segment) string {
	rows := make([][]string, 0, len(segments))
	for _, seg := range segments {
		confidence := 0.0
		for _, value := range seg.Confidence {
			if value > confidence {
				confidence = value
			}
		}
		rows = append(rows, []string{
			shortID(seg.ID),
			formatTimestamp(seg.Start),
			formatTimestamp(seg.End),
			strconv.FormatFloat(seg.Duration(), 'f', 3, 64),
			displayLabels(seg.Labels),
			strconv.FormatFloat(confidence, 'f', 2, 64),
		})
	}
	return renderTable(
		[]string{"ID", "Start", "End", "Duration", "Labels", "Confidence"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft, alignRight},
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatTimestamp(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}
