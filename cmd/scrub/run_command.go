package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"scrub/internal/execution"
	"scrub/internal/logging"
	"scrub/internal/remediate"
	"scrub/internal/runlog"
	"scrub/internal/services/ffmpeg"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var durationOverride float64

	cmd := &cobra.Command{
		Use:   "run <segments.json> <media-file>",
		Short: "Apply the remediation plan and write the scrubbed output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			output := strings.TrimSpace(outputPath)
			if output == "" {
				return fmt.Errorf("output path is required")
			}
			if output == args[1] {
				return fmt.Errorf("output path must differ from the input media file")
			}

			// One writer per output file. A second run against the same
			// destination would race the rename.
			lock := flock.New(output + ".lock")
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another run is already writing %s", output)
			}
			defer func() { _ = lock.Unlock() }()

			plan, planInfo, err := buildPlanForInput(ctx, cmd, args[0], args[1], durationOverride)
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			runLogger := logger.With(logging.String(logging.FieldRunID, runID))
			runLogger.Info("starting remediation run",
				logging.String("input", args[1]),
				logging.String("output", output),
				logging.Int("segments", planInfo.segments),
			)

			executor := execution.New(runLogger,
				execution.WithDiskHeadroom(int64(cfg.Execution.DiskHeadroomMiB)<<20),
			)
			client := ffmpeg.New(cfg.FFmpeg)
			params := execution.TrackParams{
				BlankColor:     cfg.Video.BlankColor,
				BleepFrequency: cfg.Audio.BleepFrequency,
				BleepAmplitude: cfg.Audio.BleepAmplitude,
			}

			started := time.Now()
			meta, runErr := executor.Execute(cmd.Context(), plan, args[1], output, client, params)
			finished := time.Now()

			recordRun(cmd, ctx, runlog.Run{
				ID:           runID,
				InputPath:    args[1],
				OutputPath:   output,
				Status:       runStatus(runErr),
				ErrorKind:    runErrorKind(runErr),
				Diagnostics:  runDiagnostics(runErr),
				VideoActions: remediate.TransformCount(plan.VideoActions),
				AudioActions: remediate.TransformCount(plan.AudioActions),
				SecondsCut:   plan.SecondsCut(),
				StartedAt:    started,
				FinishedAt:   finished,
			})

			if runErr != nil {
				return runErr
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s (%d bytes, %.3fs cut) in %s\n",
				meta.Path, meta.SizeBytes, meta.SecondsCut, finished.Sub(started).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination for the remediated media file (required)")
	cmd.Flags().Float64Var(&durationOverride, "duration", 0, "Timeline duration in seconds (skips ffprobe)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

// recordRun persists history on a best-effort basis; a broken history
// database must not mask the run outcome.
func recordRun(cmd *cobra.Command, ctx *commandContext, run runlog.Run) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return
	}
	store, err := runlog.Open(cfg)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: open run history: %v\n", err)
		return
	}
	defer store.Close()
	if err := store.Record(cmd.Context(), run); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: record run history: %v\n", err)
	}
}

func runStatus(err error) string {
	if err != nil {
		return runlog.StatusFailed
	}
	return runlog.StatusCompleted
}

func runErrorKind(err error) string {
	if err == nil {
		return ""
	}
	return execution.FailureKind(err)
}

func runDiagnostics(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
