package config

const (
	defaultLogDir              = "~/.local/share/scrub/logs"
	defaultHistoryDB           = "~/.local/share/scrub/history.db"
	defaultGapThreshold        = 1.0
	defaultActionMergeDistance = 0.5
	defaultVideoMode           = "blank"
	defaultAudioMode           = "bleep"
	defaultBlankColor          = "#000000"
	defaultBleepFrequency      = 1000.0
	defaultBleepAmplitude      = 0.8
	defaultFFmpegBinary        = "ffmpeg"
	defaultFFprobeBinary       = "ffprobe"
	defaultVideoEncoder        = "libx264"
	defaultAudioEncoder        = "aac"
	defaultPreset              = "medium"
	defaultCRF                 = 18
	defaultDiskHeadroomMiB     = 512
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Merge: Merge{
			GapThreshold:        defaultGapThreshold,
			ActionMergeDistance: defaultActionMergeDistance,
		},
		Video: Video{
			DefaultMode:   defaultVideoMode,
			CategoryModes: map[string]string{},
			BlankColor:    defaultBlankColor,
		},
		Audio: Audio{
			DefaultMode:    defaultAudioMode,
			CategoryModes:  map[string]string{},
			BleepFrequency: defaultBleepFrequency,
			BleepAmplitude: defaultBleepAmplitude,
		},
		FFmpeg: FFmpeg{
			Binary:        defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			VideoEncoder:  defaultVideoEncoder,
			AudioEncoder:  defaultAudioEncoder,
			Preset:        defaultPreset,
			CRF:           defaultCRF,
		},
		Execution: Execution{
			DiskHeadroomMiB: defaultDiskHeadroomMiB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
