package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"scrub/internal/logging"
	"scrub/internal/media/ffprobe"
	"scrub/internal/remediate"
	"scrub/internal/segment"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var durationOverride float64

	cmd := &cobra.Command{
		Use:   "plan <segments.json> <media-file>",
		Short: "Resolve remediation modes and print the action timeline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, planInfo, err := buildPlanForInput(ctx, cmd, args[0], args[1], durationOverride)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if planInfo.probe != nil {
				fmt.Fprintf(out, "Input: %d bytes, %d audio stream(s)\n",
					planInfo.probe.SizeBytes(), planInfo.probe.AudioStreamCount())
			}
			fmt.Fprintf(out, "Timeline: %.3fs, %.3fs cut\n", plan.Duration, plan.SecondsCut())
			fmt.Fprintln(out, "Video:")
			fmt.Fprintln(out, renderActionTable(plan.VideoActions))
			fmt.Fprintln(out, "Audio:")
			fmt.Fprintln(out, renderActionTable(plan.AudioActions))
			return nil
		},
	}

	cmd.Flags().Float64Var(&durationOverride, "duration", 0, "Timeline duration in seconds (skips ffprobe)")
	return cmd
}

// buildPlanForInput is shared by the plan and run commands: load segments,
// determine the timeline duration, and lay out both tracks.
func buildPlanForInput(ctx *commandContext, cmd *cobra.Command, segmentsPath, mediaPath string, durationOverride float64) (remediate.Plan, *planContext, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return remediate.Plan{}, nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return remediate.Plan{}, nil, err
	}

	segments, err := segment.LoadFile(segmentsPath)
	if err != nil {
		return remediate.Plan{}, nil, err
	}

	duration := durationOverride
	var probed *ffprobe.Result
	if duration <= 0 {
		result, err := ffprobe.Inspect(cmd.Context(), cfg.FFmpeg.FFprobeBinary, mediaPath)
		if err != nil {
			return remediate.Plan{}, nil, err
		}
		duration, err = result.DurationSeconds()
		if err != nil {
			return remediate.Plan{}, nil, err
		}
		probed = &result
	}

	videoPolicy, err := remediate.NewVideoPolicy(cfg.Video, cfg.Merge.ActionMergeDistance)
	if err != nil {
		return remediate.Plan{}, nil, err
	}
	audioPolicy, err := remediate.NewAudioPolicy(cfg.Audio, cfg.Merge.ActionMergeDistance)
	if err != nil {
		return remediate.Plan{}, nil, err
	}

	planner := logging.NewComponentLogger(logger, "planner")
	plan := remediate.BuildPlan(segments, videoPolicy, audioPolicy, duration, planner)
	if probed != nil {
		if err := validatePlannedInput(*probed, plan); err != nil {
			return remediate.Plan{}, nil, err
		}
	}
	return plan, &planContext{segments: len(segments), probe: probed}, nil
}

type planContext struct {
	segments int
	probe    *ffprobe.Result
}

// validatePlannedInput rejects media the plan cannot apply to before ffmpeg
// is invoked. A file without video can never be remediated here, and the
// audio filter chain references the first audio stream unconditionally, so
// audio work against an audio-less file would only surface as an opaque
// ffmpeg failure mid-run.
func validatePlannedInput(probe ffprobe.Result, plan remediate.Plan) error {
	if !probe.HasVideo() {
		return fmt.Errorf("input has no video stream")
	}
	if probe.AudioStreamCount() == 0 &&
		(remediate.TransformCount(plan.AudioActions) > 0 || len(plan.CutWindows()) > 0) {
		return fmt.Errorf("plan requires audio remediation but input has no audio stream")
	}
	return nil
}

func renderActionTable(actions []remediate.Action) string {
	rows := make([][]string, 0, len(actions))
	for _, action := range actions {
		rows = append(rows, []string{
			action.Kind.String(),
			formatTimestamp(action.Start),
			formatTimestamp(action.End),
			strconv.FormatFloat(action.Duration(), 'f', 3, 64),
		})
	}
	return renderTable(
		[]string{"Action", "Start", "End", "Duration"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
	)
}
