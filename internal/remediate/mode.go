package remediate

import "fmt"

// VideoMode is the remediation action for the video track. The ordinal order
// encodes restrictiveness: cut removes content blank only obscures, and none
// removes nothing, so most-restrictive-wins is a max over ordinals.
type VideoMode int

const (
	VideoNone VideoMode = iota
	VideoBlank
	VideoCut
)

func (m VideoMode) String() string {
	switch m {
	case VideoNone:
		return "none"
	case VideoBlank:
		return "blank"
	case VideoCut:
		return "cut"
	default:
		return fmt.Sprintf("VideoMode(%d)", int(m))
	}
}

// ParseVideoMode converts a mode literal. Literals are matched exactly; the
// config layer lowercases its values before they reach this point.
func ParseVideoMode(value string) (VideoMode, error) {
	switch value {
	case "none":
		return VideoNone, nil
	case "blank":
		return VideoBlank, nil
	case "cut":
		return VideoCut, nil
	default:
		return VideoNone, fmt.Errorf("unknown video mode %q", value)
	}
}

// AudioMode is the remediation action for the audio track. There is no spec
// notion of audio restrictiveness beyond on/off per category; the ordinal
// order here only serves as a deterministic tiebreak when enabled labels
// disagree, preferring silence (which removes the original audio outright)
// over bleep.
type AudioMode int

const (
	AudioNone AudioMode = iota
	AudioBleep
	AudioSilence
)

func (m AudioMode) String() string {
	switch m {
	case AudioNone:
		return "none"
	case AudioBleep:
		return "bleep"
	case AudioSilence:
		return "silence"
	default:
		return fmt.Sprintf("AudioMode(%d)", int(m))
	}
}

// ParseAudioMode converts a mode literal.
func ParseAudioMode(value string) (AudioMode, error) {
	switch value {
	case "none":
		return AudioNone, nil
	case "bleep":
		return AudioBleep, nil
	case "silence":
		return AudioSilence, nil
	default:
		return AudioNone, fmt.Errorf("unknown audio mode %q", value)
	}
}
