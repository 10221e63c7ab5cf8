package segment

import (
	"fmt"
	"sort"
	"strings"
)

// DetectionEvent is a raw per-window detection emitted by an external
// detector. One detector inference may emit several events for the same time
// window, one per category.
type DetectionEvent struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

// Segment is a merged, canonical time range with one or more content-category
// labels. Segments may arrive from a review step with Allow or the per-track
// overrides already populated; the engine treats those fields as trusted-looking
// but still guards against unrecognized override literals at resolution time.
type Segment struct {
	ID         string             `json:"id"`
	Start      float64            `json:"start"`
	End        float64            `json:"end"`
	Labels     []string           `json:"labels"`
	Confidence map[string]float64 `json:"confidence,omitempty"`
	Allow      bool               `json:"allow"`
	// VideoModeOverride and AudioModeOverride carry per-segment mode literals
	// set during review. Empty means no override.
	VideoModeOverride string `json:"video_mode_override,omitempty"`
	AudioModeOverride string `json:"audio_mode_override,omitempty"`
	Reasoning         string `json:"reasoning,omitempty"`
}

// Duration is always recomputed from Start and End. Externally supplied
// duration values can drift after start/end edits and are never trusted.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// HasLabel reports whether the segment carries the given category label.
func (s Segment) HasLabel(label string) bool {
	for _, l := range s.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// ValidateEvents rejects malformed detection events before merging.
func ValidateEvents(events []DetectionEvent) error {
	for i, ev := range events {
		if strings.TrimSpace(ev.Label) == "" {
			return fmt.Errorf("event %d: empty label", i)
		}
		if ev.Start < 0 {
			return fmt.Errorf("event %d (%s): negative start %.3f", i, ev.Label, ev.Start)
		}
		if ev.End <= ev.Start {
			return fmt.Errorf("event %d (%s): end %.3f not after start %.3f", i, ev.Label, ev.End, ev.Start)
		}
		if ev.Confidence < 0 || ev.Confidence > 1 {
			return fmt.Errorf("event %d (%s): confidence %.3f outside [0, 1]", i, ev.Label, ev.Confidence)
		}
	}
	return nil
}

// ValidateSegments rejects malformed segment records before planning.
func ValidateSegments(segments []Segment) error {
	for i, seg := range segments {
		name := seg.ID
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if len(seg.Labels) == 0 {
			return fmt.Errorf("segment %s: no labels", name)
		}
		if seg.Start < 0 {
			return fmt.Errorf("segment %s: negative start %.3f", name, seg.Start)
		}
		if seg.End <= seg.Start {
			return fmt.Errorf("segment %s: end %.3f not after start %.3f", name, seg.End, seg.Start)
		}
		for label, confidence := range seg.Confidence {
			if confidence < 0 || confidence > 1 {
				return fmt.Errorf("segment %s: confidence %.3f for %s outside [0, 1]", name, confidence, label)
			}
		}
	}
	return nil
}

func sortSegments(segments []Segment) {
	sort.SliceStable(segments, func(i, j int) bool {
		if segments[i].Start != segments[j].Start {
			return segments[i].Start < segments[j].Start
		}
		return segments[i].End < segments[j].End
	})
}
