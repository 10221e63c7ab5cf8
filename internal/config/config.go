package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and database location configuration.
type Paths struct {
	LogDir    string `toml:"log_dir"`
	HistoryDB string `toml:"history_db"`
}

// Merge contains segment-merge and action-grouping thresholds.
type Merge struct {
	// GapThreshold is the maximum gap in seconds between detection events
	// that still merge into one segment.
	GapThreshold float64 `toml:"gap_threshold"`
	// ActionMergeDistance is the maximum gap in seconds between same-kind
	// planner actions that collapse into a single action.
	ActionMergeDistance float64 `toml:"action_merge_distance"`
}

// Video contains the video-track remediation policy.
type Video struct {
	DefaultMode   string            `toml:"default_mode"`
	CategoryModes map[string]string `toml:"category_modes"`
	// BlankColor is the fill color for blanked ranges, as #RRGGBB.
	BlankColor string `toml:"blank_color"`
}

// Audio contains the audio-track remediation policy.
type Audio struct {
	DefaultMode   string            `toml:"default_mode"`
	CategoryModes map[string]string `toml:"category_modes"`
	// EnabledCategories lists the labels eligible for audio remediation.
	// A label absent from this list always resolves to no action.
	EnabledCategories []string `toml:"enabled_categories"`
	BleepFrequency    float64  `toml:"bleep_frequency"`
	BleepAmplitude    float64  `toml:"bleep_amplitude"`
}

// FFmpeg contains external tool binaries and re-encode settings.
type FFmpeg struct {
	Binary        string `toml:"binary"`
	FFprobeBinary string `toml:"ffprobe_binary"`
	VideoEncoder  string `toml:"video_encoder"`
	AudioEncoder  string `toml:"audio_encoder"`
	Preset        string `toml:"preset"`
	CRF           int    `toml:"crf"`
}

// Execution contains executor safety margins.
type Execution struct {
	// DiskHeadroomMiB is free space required at the output location beyond
	// the input file size before the external tool is invoked.
	DiskHeadroomMiB int `toml:"disk_headroom_mib"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Scrub.
//
// Configuration sections by subsystem:
//   - Paths: log directory and run-history database location
//   - Merge: detection-event and action grouping thresholds
//   - Video / Audio: per-track remediation policies and parameters
//   - FFmpeg: external tool binaries and re-encode settings
//   - Execution: executor safety margins
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Merge     Merge     `toml:"merge"`
	Video     Video     `toml:"video"`
	Audio     Audio     `toml:"audio"`
	FFmpeg    FFmpeg    `toml:"ffmpeg"`
	Execution Execution `toml:"execution"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/scrub/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("scrub.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the CLI needs at startup.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if strings.TrimSpace(c.Paths.HistoryDB) != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.HistoryDB))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ExpandPath resolves ~ and relative segments in a user-supplied path.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the embedded sample configuration to the given path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
