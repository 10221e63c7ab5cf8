package services

import "context"

type contextKey string

const (
	runIDKey contextKey = "run_id"
	stageKey contextKey = "stage"
	trackKey contextKey = "track"
)

// WithRunID annotates context with the remediation run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the engine stage name (merge, plan, execute).
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stageKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithTrack annotates context with the media track being processed.
func WithTrack(ctx context.Context, track string) context.Context {
	if track == "" {
		return ctx
	}
	return context.WithValue(ctx, trackKey, track)
}

// TrackFromContext returns the track name if present.
func TrackFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(trackKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
