package main

import (
	"os"
	"path/filepath"
	"testing"

	"scrub/internal/media/ffprobe"
	"scrub/internal/remediate"
	"scrub/internal/segment"
	"scrub/internal/testsupport"
)

func TestConfigInitAndValidate(t *testing.T) {
	configPath := newTestConfigFile(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}

func TestMergeCommandWritesSegments(t *testing.T) {
	configPath := newTestConfigFile(t)

	dir := t.TempDir()
	eventsPath := filepath.Join(dir, "events.json")
	testsupport.WriteJSON(t, eventsPath, `[
		{"start": 10.0, "end": 12.0, "label": "violence", "confidence": 0.9},
		{"start": 12.4, "end": 14.0, "label": "gore", "confidence": 0.8},
		{"start": 40.0, "end": 41.0, "label": "profanity", "confidence": 0.7}
	]`)
	outPath := filepath.Join(dir, "segments.json")

	out, _, err := runCLI(t, []string{"merge", eventsPath, "--output", outPath}, configPath)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	requireContains(t, out, "Merged 3 events into 2 segments")

	segments, err := segment.LoadFile(outPath)
	if err != nil {
		t.Fatalf("load merged segments: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Start != 10.0 || segments[0].End != 14.0 {
		t.Fatalf("unexpected first segment span: %v-%v", segments[0].Start, segments[0].End)
	}
}

func TestPlanCommandWithDurationOverride(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Audio.EnabledCategories = []string{"violence"}
	configPath := writeTestConfig(t, cfg)

	dir := t.TempDir()
	segmentsPath := filepath.Join(dir, "segments.json")
	testsupport.WriteJSON(t, segmentsPath, `[
		{"id": "seg-1", "start": 5.0, "end": 7.0, "labels": ["violence"], "confidence": {"violence": 0.9}}
	]`)

	out, _, err := runCLI(t, []string{"plan", segmentsPath, "unused.mkv", "--duration", "60"}, configPath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	requireContains(t, out, "Timeline: 60.000s")
	requireContains(t, out, "blank")
	requireContains(t, out, "bleep")
}

func TestValidatePlannedInput(t *testing.T) {
	withAudio := ffprobe.Result{Streams: []ffprobe.Stream{
		{CodecType: "video"}, {CodecType: "audio"},
	}}
	videoOnly := ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "video"}}}
	audioOnly := ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "audio"}}}

	bleepPlan := remediate.Plan{Duration: 60, AudioActions: []remediate.Action{
		{Kind: remediate.KindBleep, Start: 1, End: 2},
		{Kind: remediate.KindPassthrough, Start: 2, End: 60},
	}}
	cutPlan := remediate.Plan{Duration: 60, VideoActions: []remediate.Action{
		{Kind: remediate.KindCut, Start: 1, End: 2},
	}}
	passthroughPlan := remediate.Plan{Duration: 60}

	if err := validatePlannedInput(withAudio, bleepPlan); err != nil {
		t.Fatalf("expected audio work on an input with audio to pass: %v", err)
	}
	if err := validatePlannedInput(videoOnly, passthroughPlan); err != nil {
		t.Fatalf("expected passthrough plan on video-only input to pass: %v", err)
	}
	if err := validatePlannedInput(videoOnly, bleepPlan); err == nil {
		t.Fatal("expected error for audio work on an input with no audio stream")
	}
	if err := validatePlannedInput(videoOnly, cutPlan); err == nil {
		t.Fatal("expected error: cuts shorten the audio track too")
	}
	if err := validatePlannedInput(audioOnly, passthroughPlan); err == nil {
		t.Fatal("expected error for input with no video stream")
	}
}

func TestRunCommandRejectsInPlaceOutput(t *testing.T) {
	configPath := newTestConfigFile(t)

	dir := t.TempDir()
	segmentsPath := filepath.Join(dir, "segments.json")
	testsupport.WriteJSON(t, segmentsPath, `[]`)
	mediaPath := filepath.Join(dir, "movie.mkv")
	testsupport.WriteFile(t, mediaPath, 1024)

	_, _, err := runCLI(t, []string{"run", segmentsPath, mediaPath, "--output", mediaPath}, configPath)
	if err == nil {
		t.Fatal("expected error for in-place output")
	}
	requireContains(t, err.Error(), "must differ")
}

func TestHistoryEmpty(t *testing.T) {
	configPath := newTestConfigFile(t)

	out, _, err := runCLI(t, []string{"history"}, configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded")
}
