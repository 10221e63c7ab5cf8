package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scrub/internal/config"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()

	result := CheckDirectoryAccess("Log directory", dir)
	if !result.Passed {
		t.Fatalf("expected pass for writable directory, got %#v", result)
	}

	result = CheckDirectoryAccess("Log directory", filepath.Join(dir, "missing"))
	if result.Passed {
		t.Fatal("expected failure for missing directory")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	result = CheckDirectoryAccess("Log directory", file)
	if result.Passed {
		t.Fatal("expected failure for non-directory path")
	}
}

func TestCheckDiskSpace(t *testing.T) {
	dir := t.TempDir()

	result := CheckDiskSpace("Disk space", dir, 1)
	if !result.Passed {
		t.Fatalf("expected pass for tiny requirement, got %#v", result)
	}

	result = CheckDiskSpace("Disk space", dir, 1<<62)
	if result.Passed {
		t.Fatal("expected failure for absurd requirement")
	}
}

func TestRunAllReportsEveryCheck(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = dir
	cfg.Paths.HistoryDB = filepath.Join(dir, "history.db")
	cfg.FFmpeg.Binary = "clearly-not-present-binary"
	cfg.FFmpeg.FFprobeBinary = "also-not-present"
	cfg.Execution.DiskHeadroomMiB = 1

	results := RunAll(&cfg)
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	if AllPassed(results) {
		t.Fatal("expected missing binaries to fail")
	}

	byName := make(map[string]Result, len(results))
	for _, result := range results {
		byName[result.Name] = result
	}
	if byName["FFmpeg"].Passed || byName["FFprobe"].Passed {
		t.Fatalf("expected tool checks to fail, got %#v", results)
	}
	if !byName["Log directory"].Passed {
		t.Fatalf("expected log directory check to pass, got %#v", byName["Log directory"])
	}
	if !byName["History directory"].Passed {
		t.Fatalf("expected history directory check to pass, got %#v", byName["History directory"])
	}
	if !byName["Disk space"].Passed {
		t.Fatalf("expected disk headroom check against the history directory to pass, got %#v", byName["Disk space"])
	}
}

func TestRunAllDiskSpaceHonorsConfiguredHeadroom(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = dir
	cfg.Paths.HistoryDB = filepath.Join(dir, "history.db")
	// Larger than any test filesystem will have free.
	cfg.Execution.DiskHeadroomMiB = 1 << 40

	results := RunAll(&cfg)
	for _, result := range results {
		if result.Name == "Disk space" {
			if result.Passed {
				t.Fatalf("expected disk headroom check to fail, got %#v", result)
			}
			return
		}
	}
	t.Fatal("expected a disk headroom check in RunAll results")
}
