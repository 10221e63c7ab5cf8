package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTracks()
	c.normalizeFFmpeg()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeTracks() {
	c.Video.DefaultMode = strings.ToLower(strings.TrimSpace(c.Video.DefaultMode))
	if c.Video.DefaultMode == "" {
		c.Video.DefaultMode = defaultVideoMode
	}
	c.Video.BlankColor = strings.TrimSpace(c.Video.BlankColor)
	if c.Video.BlankColor == "" {
		c.Video.BlankColor = defaultBlankColor
	}
	if !strings.HasPrefix(c.Video.BlankColor, "#") {
		c.Video.BlankColor = "#" + c.Video.BlankColor
	}
	c.Video.CategoryModes = normalizeCategoryTable(c.Video.CategoryModes)

	c.Audio.DefaultMode = strings.ToLower(strings.TrimSpace(c.Audio.DefaultMode))
	if c.Audio.DefaultMode == "" {
		c.Audio.DefaultMode = defaultAudioMode
	}
	c.Audio.CategoryModes = normalizeCategoryTable(c.Audio.CategoryModes)

	enabled := make([]string, 0, len(c.Audio.EnabledCategories))
	for _, label := range c.Audio.EnabledCategories {
		if label = strings.TrimSpace(label); label != "" {
			enabled = append(enabled, label)
		}
	}
	c.Audio.EnabledCategories = enabled
}

func normalizeCategoryTable(table map[string]string) map[string]string {
	out := make(map[string]string, len(table))
	for label, mode := range table {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		out[label] = strings.ToLower(strings.TrimSpace(mode))
	}
	return out
}

func (c *Config) normalizeFFmpeg() {
	c.FFmpeg.Binary = strings.TrimSpace(c.FFmpeg.Binary)
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = defaultFFmpegBinary
	}
	c.FFmpeg.FFprobeBinary = strings.TrimSpace(c.FFmpeg.FFprobeBinary)
	if c.FFmpeg.FFprobeBinary == "" {
		c.FFmpeg.FFprobeBinary = defaultFFprobeBinary
	}
	c.FFmpeg.VideoEncoder = strings.TrimSpace(c.FFmpeg.VideoEncoder)
	if c.FFmpeg.VideoEncoder == "" {
		c.FFmpeg.VideoEncoder = defaultVideoEncoder
	}
	c.FFmpeg.AudioEncoder = strings.TrimSpace(c.FFmpeg.AudioEncoder)
	if c.FFmpeg.AudioEncoder == "" {
		c.FFmpeg.AudioEncoder = defaultAudioEncoder
	}
	c.FFmpeg.Preset = strings.TrimSpace(c.FFmpeg.Preset)
	if c.FFmpeg.Preset == "" {
		c.FFmpeg.Preset = defaultPreset
	}
	if c.FFmpeg.CRF == 0 {
		c.FFmpeg.CRF = defaultCRF
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
