package remediate

import (
	"log/slog"
	"strings"

	"scrub/internal/logging"
	"scrub/internal/segment"
)

// ResolveVideo computes the effective video mode for one segment.
//
// Precedence, first applicable wins:
//  1. allow flag: the segment is exempt on every track
//  2. segment-level override, when it parses
//  3. category modes, most restrictive across the segment's labels
//  4. the track's global default
//
// An unrecognized override literal is logged and skipped; the override came
// from an external review step and cannot be pre-validated the way config
// can. The function is pure: identical inputs always yield the same mode.
func ResolveVideo(seg segment.Segment, policy VideoPolicy, logger *slog.Logger) VideoMode {
	if seg.Allow {
		return VideoNone
	}
	if override := strings.ToLower(strings.TrimSpace(seg.VideoModeOverride)); override != "" {
		mode, err := ParseVideoMode(override)
		if err == nil {
			return mode
		}
		warnOverride(logger, seg.ID, "video", seg.VideoModeOverride)
	}
	best := VideoNone
	found := false
	for _, label := range seg.Labels {
		mode, ok := policy.Category[label]
		if !ok {
			continue
		}
		found = true
		if mode > best {
			best = mode
		}
	}
	if found {
		return best
	}
	return policy.Default
}

// ResolveAudio computes the effective audio mode for one segment. Audio
// remediation is gated by the enabled-category list: a label absent from the
// list never triggers audio work, and a segment with no enabled label
// resolves to none regardless of the global default.
func ResolveAudio(seg segment.Segment, policy AudioPolicy, logger *slog.Logger) AudioMode {
	if seg.Allow {
		return AudioNone
	}
	if override := strings.ToLower(strings.TrimSpace(seg.AudioModeOverride)); override != "" {
		mode, err := ParseAudioMode(override)
		if err == nil {
			return mode
		}
		warnOverride(logger, seg.ID, "audio", seg.AudioModeOverride)
	}
	best := AudioNone
	found := false
	for _, label := range seg.Labels {
		if _, enabled := policy.Enabled[label]; !enabled {
			continue
		}
		found = true
		mode := policy.Default
		if configured, ok := policy.Category[label]; ok {
			mode = configured
		}
		if mode > best {
			best = mode
		}
	}
	if found {
		return best
	}
	return AudioNone
}

func warnOverride(logger *slog.Logger, segmentID, track, literal string) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger.Warn("unrecognized segment mode override, falling through to category modes",
		logging.String(logging.FieldSegmentID, segmentID),
		logging.String(logging.FieldTrack, track),
		logging.String("override", literal),
	)
}
