package config

import (
	"errors"
	"fmt"
)

var videoModes = map[string]struct{}{"none": {}, "blank": {}, "cut": {}}

var audioModes = map[string]struct{}{"none": {}, "bleep": {}, "silence": {}}

// Validate ensures the configuration is usable. Mode literals and category
// tables are rejected here, before any segment processing starts, so the
// resolver only ever falls back on segment-level overrides.
func (c *Config) Validate() error {
	if err := c.validateMerge(); err != nil {
		return err
	}
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	if err := c.validateExecution(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateMerge() error {
	if c.Merge.GapThreshold < 0 {
		return errors.New("merge.gap_threshold must not be negative")
	}
	if c.Merge.ActionMergeDistance < 0 {
		return errors.New("merge.action_merge_distance must not be negative")
	}
	return nil
}

func (c *Config) validateVideo() error {
	if _, ok := videoModes[c.Video.DefaultMode]; !ok {
		return fmt.Errorf("video.default_mode: unknown mode %q (expected none, blank, or cut)", c.Video.DefaultMode)
	}
	for label, mode := range c.Video.CategoryModes {
		if _, ok := videoModes[mode]; !ok {
			return fmt.Errorf("video.category_modes[%s]: unknown mode %q (expected none, blank, or cut)", label, mode)
		}
	}
	if err := validateHexColor(c.Video.BlankColor); err != nil {
		return fmt.Errorf("video.blank_color: %w", err)
	}
	return nil
}

func (c *Config) validateAudio() error {
	if _, ok := audioModes[c.Audio.DefaultMode]; !ok {
		return fmt.Errorf("audio.default_mode: unknown mode %q (expected none, bleep, or silence)", c.Audio.DefaultMode)
	}
	for label, mode := range c.Audio.CategoryModes {
		if _, ok := audioModes[mode]; !ok {
			return fmt.Errorf("audio.category_modes[%s]: unknown mode %q (expected none, bleep, or silence)", label, mode)
		}
	}
	if c.Audio.BleepFrequency < 20 || c.Audio.BleepFrequency > 20000 {
		return errors.New("audio.bleep_frequency must be between 20 and 20000 Hz")
	}
	if c.Audio.BleepAmplitude < 0 || c.Audio.BleepAmplitude > 1 {
		return errors.New("audio.bleep_amplitude must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateFFmpeg() error {
	if c.FFmpeg.CRF < 0 || c.FFmpeg.CRF > 51 {
		return errors.New("ffmpeg.crf must be between 0 and 51")
	}
	return nil
}

func (c *Config) validateExecution() error {
	if c.Execution.DiskHeadroomMiB < 0 {
		return errors.New("execution.disk_headroom_mib must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q (expected console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	return nil
}

func validateHexColor(value string) error {
	if len(value) != 7 || value[0] != '#' {
		return fmt.Errorf("expected #RRGGBB, got %q", value)
	}
	for _, r := range value[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return fmt.Errorf("expected #RRGGBB, got %q", value)
		}
	}
	return nil
}
