package deps

import (
	"os"
	"path/filepath"
	"testing"

	"scrub/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "   "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("expected unconfigured detail, got %#v", results[2])
	}
	if AllAvailable(results) {
		t.Fatal("expected AllAvailable to be false with missing binaries")
	}
	if !AllAvailable(results[:1]) {
		t.Fatal("expected AllAvailable to be true for available subset")
	}
}

func TestToolRequirementsUseConfiguredBinaries(t *testing.T) {
	cfg := config.Default()
	cfg.FFmpeg.Binary = "/opt/ffmpeg/bin/ffmpeg"
	cfg.FFmpeg.FFprobeBinary = "/opt/ffmpeg/bin/ffprobe"

	reqs := ToolRequirements(&cfg)
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if reqs[0].Command != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("unexpected ffmpeg command: %s", reqs[0].Command)
	}
	if reqs[1].Command != "/opt/ffmpeg/bin/ffprobe" {
		t.Fatalf("unexpected ffprobe command: %s", reqs[1].Command)
	}
}
