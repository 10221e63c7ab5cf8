package execution

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"scrub/internal/logging"
	"scrub/internal/remediate"
	"scrub/internal/services"
)

// OutputMeta describes a successful remediation output.
type OutputMeta struct {
	Path       string
	SizeBytes  int64
	SecondsCut float64
}

// Executor drives a single MediaProcessor invocation for one plan. Each run
// is a pure function of (plan, input path) to (output file, result); the
// executor holds no state shared across runs.
type Executor struct {
	headroomBytes int64
	freeBytes     func(path string) (uint64, error)
	logger        *slog.Logger
}

// Option configures the executor.
type Option func(*Executor)

// WithDiskHeadroom sets the free-space margin required beyond the input size.
func WithDiskHeadroom(bytes int64) Option {
	return func(e *Executor) {
		if bytes >= 0 {
			e.headroomBytes = bytes
		}
	}
}

// WithFreeBytes injects a free-space probe (primarily for tests).
func WithFreeBytes(fn func(path string) (uint64, error)) Option {
	return func(e *Executor) {
		if fn != nil {
			e.freeBytes = fn
		}
	}
}

// New constructs an executor.
func New(logger *slog.Logger, opts ...Option) *Executor {
	executor := &Executor{
		freeBytes: statfsFreeBytes,
		logger:    logging.NewComponentLogger(logger, "execution"),
	}
	for _, opt := range opts {
		opt(executor)
	}
	return executor
}

// Execute materializes the plan into outputPath through one processor
// invocation. On success exactly one output file exists at outputPath; on any
// failure the temp output is removed so outputPath is either absent or its
// pre-existing content, never a partial artifact.
func (e *Executor) Execute(ctx context.Context, plan remediate.Plan, inputPath, outputPath string, processor MediaProcessor, params TrackParams) (OutputMeta, error) {
	if processor == nil {
		return OutputMeta{}, services.Wrap(services.ErrConfiguration, "execution", "execute", "no media processor configured", nil)
	}

	inputInfo, err := os.Stat(inputPath)
	if err != nil {
		return OutputMeta{}, services.Wrap(services.ErrInput, "execution", "stat input", inputPath, err)
	}

	if err := e.checkDiskSpace(outputPath, inputInfo.Size()); err != nil {
		return OutputMeta{}, err
	}

	tempPath := tempOutputPath(outputPath)
	if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
		return OutputMeta{}, services.Wrap(services.ErrValidation, "execution", "clear stale temp output", tempPath, err)
	}

	e.logger.Info("invoking media processor",
		logging.String("input", inputPath),
		logging.String("output", outputPath),
		logging.Int("video_transforms", remediate.TransformCount(plan.VideoActions)),
		logging.Int("audio_transforms", remediate.TransformCount(plan.AudioActions)),
		logging.Float64("seconds_cut", plan.SecondsCut()),
	)

	result, err := processor.Process(ctx, Request{
		InputPath:    inputPath,
		OutputPath:   tempPath,
		VideoActions: plan.VideoActions,
		AudioActions: plan.AudioActions,
		Params:       params,
	})
	if err != nil {
		e.discardTemp(tempPath)
		classified := classifyProcessError(err, result.Diagnostics)
		e.logger.Error("media processor failed",
			logging.String("kind", FailureKind(classified)),
			logging.Error(err),
		)
		return OutputMeta{}, classified
	}

	size, err := validateOutput(tempPath)
	if err != nil {
		e.discardTemp(tempPath)
		return OutputMeta{}, err
	}

	if err := os.Rename(tempPath, outputPath); err != nil {
		e.discardTemp(tempPath)
		return OutputMeta{}, fmt.Errorf("%w: %w", ErrOutputInvalid,
			services.Wrap(services.ErrValidation, "execution", "finalize output", outputPath, err))
	}

	e.logger.Info("remediation output written",
		logging.String("output", outputPath),
		logging.Int64("size_bytes", size),
	)
	return OutputMeta{Path: outputPath, SizeBytes: size, SecondsCut: plan.SecondsCut()}, nil
}

// checkDiskSpace rejects the run before invoking the external tool when the
// output location cannot hold an input-sized file plus headroom. Failing here
// is cheap; failing mid-encode wastes the whole pass.
func (e *Executor) checkDiskSpace(outputPath string, inputSize int64) error {
	dir := filepath.Dir(outputPath)
	free, err := e.freeBytes(dir)
	if err != nil {
		return services.Wrap(services.ErrValidation, "execution", "check disk space", dir, err)
	}
	required := uint64(inputSize + e.headroomBytes)
	if free < required {
		return fmt.Errorf("%w: %w", ErrDiskSpace, services.Wrap(
			services.ErrValidation, "execution", "check disk space",
			fmt.Sprintf("%s has %d bytes free, need %d", dir, free, required), nil))
	}
	return nil
}

func validateOutput(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOutputInvalid,
			services.Wrap(services.ErrValidation, "execution", "validate output", "tool reported success but output is missing", err))
	}
	if info.Size() == 0 {
		return 0, fmt.Errorf("%w: %w", ErrOutputInvalid,
			services.Wrap(services.ErrValidation, "execution", "validate output", "tool reported success but output is empty", nil))
	}
	return info.Size(), nil
}

func (e *Executor) discardTemp(tempPath string) {
	if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
		e.logger.Warn("failed to remove temp output",
			logging.String("path", tempPath),
			logging.Error(err),
		)
	}
}

func tempOutputPath(outputPath string) string {
	dir := filepath.Dir(outputPath)
	base := filepath.Base(outputPath)
	return filepath.Join(dir, "."+base+".partial")
}

func statfsFreeBytes(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
