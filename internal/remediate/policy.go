package remediate

import (
	"scrub/internal/config"
	"scrub/internal/services"
)

// VideoPolicy is the immutable, typed video-track policy for one run. It is
// built once from validated configuration and passed by value into every
// resolver and planner call; there is no package-level policy state.
type VideoPolicy struct {
	Default       VideoMode
	Category      map[string]VideoMode
	BlankColor    string
	MergeDistance float64
}

// AudioPolicy is the immutable, typed audio-track policy for one run.
type AudioPolicy struct {
	Default        AudioMode
	Category       map[string]AudioMode
	Enabled        map[string]struct{}
	BleepFrequency float64
	BleepAmplitude float64
	MergeDistance  float64
}

// NewVideoPolicy converts validated configuration into a typed policy.
// Literals have already been vetted by config.Validate; a parse failure here
// still surfaces as a configuration error rather than a silent fallback.
func NewVideoPolicy(cfg config.Video, mergeDistance float64) (VideoPolicy, error) {
	def, err := ParseVideoMode(cfg.DefaultMode)
	if err != nil {
		return VideoPolicy{}, services.Wrap(services.ErrConfiguration, "remediate", "video default mode", "", err)
	}
	category := make(map[string]VideoMode, len(cfg.CategoryModes))
	for label, literal := range cfg.CategoryModes {
		mode, err := ParseVideoMode(literal)
		if err != nil {
			return VideoPolicy{}, services.Wrap(services.ErrConfiguration, "remediate", "video category mode", label, err)
		}
		category[label] = mode
	}
	return VideoPolicy{
		Default:       def,
		Category:      category,
		BlankColor:    cfg.BlankColor,
		MergeDistance: mergeDistance,
	}, nil
}

// NewAudioPolicy converts validated configuration into a typed policy.
func NewAudioPolicy(cfg config.Audio, mergeDistance float64) (AudioPolicy, error) {
	def, err := ParseAudioMode(cfg.DefaultMode)
	if err != nil {
		return AudioPolicy{}, services.Wrap(services.ErrConfiguration, "remediate", "audio default mode", "", err)
	}
	category := make(map[string]AudioMode, len(cfg.CategoryModes))
	for label, literal := range cfg.CategoryModes {
		mode, err := ParseAudioMode(literal)
		if err != nil {
			return AudioPolicy{}, services.Wrap(services.ErrConfiguration, "remediate", "audio category mode", label, err)
		}
		category[label] = mode
	}
	enabled := make(map[string]struct{}, len(cfg.EnabledCategories))
	for _, label := range cfg.EnabledCategories {
		enabled[label] = struct{}{}
	}
	return AudioPolicy{
		Default:        def,
		Category:       category,
		Enabled:        enabled,
		BleepFrequency: cfg.BleepFrequency,
		BleepAmplitude: cfg.BleepAmplitude,
		MergeDistance:  mergeDistance,
	}, nil
}
