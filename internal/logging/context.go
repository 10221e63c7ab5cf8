package logging

import (
	"context"
	"log/slog"

	"scrub/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for remediation run identifiers.
	FieldRunID = "run_id"
	// FieldStage is the standardized structured logging key for engine stage names.
	FieldStage = "stage"
	// FieldTrack is the standardized structured logging key for media track names.
	FieldTrack = "track"
	// FieldSegmentID is the standardized structured logging key for segment identifiers.
	FieldSegmentID = "segment_id"
	// FieldLabel is the standardized structured logging key for content category labels.
	FieldLabel = "label"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStage, stage))
	}
	if track, ok := services.TrackFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldTrack, track))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from
// the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	args := make([]any, 0, len(fields))
	for _, field := range fields {
		args = append(args, field)
	}
	return logger.With(args...)
}
