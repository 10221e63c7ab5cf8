package logging_test

import (
	"context"
	"testing"

	"scrub/internal/logging"
	"scrub/internal/services"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewConsoleAndJSON(t *testing.T) {
	for _, format := range []string{"console", "json", ""} {
		logger, err := logging.New(logging.Options{Level: "debug", Format: format})
		if err != nil {
			t.Fatalf("New(%q) returned error: %v", format, err)
		}
		if logger == nil {
			t.Fatalf("New(%q) returned nil logger", format)
		}
	}
}

func TestWithContextAddsRunFields(t *testing.T) {
	ctx := services.WithRunID(context.Background(), "run-1")
	ctx = services.WithStage(ctx, "plan")
	ctx = services.WithTrack(ctx, "video")

	fields := logging.ContextFields(ctx)
	if len(fields) != 3 {
		t.Fatalf("expected 3 context fields, got %d", len(fields))
	}
	keys := map[string]bool{}
	for _, f := range fields {
		keys[f.Key] = true
	}
	for _, want := range []string{logging.FieldRunID, logging.FieldStage, logging.FieldTrack} {
		if !keys[want] {
			t.Fatalf("missing context field %q", want)
		}
	}
}

func TestWithContextNilLogger(t *testing.T) {
	logger := logging.WithContext(context.Background(), nil)
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	logger.Info("no-op")
}
