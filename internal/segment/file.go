package segment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"

	"scrub/internal/fileutil"
	"scrub/internal/services"
)

// segmentRecord is the on-disk shape of a segment. The duration field exists
// for the benefit of external review tooling and is ignored on load.
type segmentRecord struct {
	ID                string             `json:"id,omitempty"`
	Start             float64            `json:"start"`
	End               float64            `json:"end"`
	Duration          float64            `json:"duration,omitempty"`
	Labels            []string           `json:"labels"`
	Confidence        map[string]float64 `json:"confidence,omitempty"`
	Allow             *bool              `json:"allow,omitempty"`
	VideoModeOverride string             `json:"video_mode_override,omitempty"`
	AudioModeOverride string             `json:"audio_mode_override,omitempty"`
	Reasoning         string             `json:"reasoning,omitempty"`
}

type segmentFile struct {
	Segments []segmentRecord `json:"segments"`
}

type eventFile struct {
	Events []DetectionEvent `json:"events"`
}

// LoadEvents reads a detection-event file. Both a bare JSON array and an
// object with an "events" key are accepted.
func LoadEvents(path string) ([]DetectionEvent, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "segment", "load events", "", err)
	}
	var events []DetectionEvent
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		err = json.Unmarshal(raw, &events)
	} else {
		var file eventFile
		err = json.Unmarshal(raw, &file)
		events = file.Events
	}
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "segment", "parse events", path, err)
	}
	if err := ValidateEvents(events); err != nil {
		return nil, services.Wrap(services.ErrInput, "segment", "validate events", path, err)
	}
	return events, nil
}

// LoadFile reads a segment file. Records may carry review-populated allow
// flags and per-track overrides; a missing allow field defaults to false for
// compatibility with older files, and any stored duration is discarded in
// favor of end - start. Segments without an ID are assigned one.
func LoadFile(path string) ([]Segment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "segment", "load segments", "", err)
	}
	var file segmentFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, services.Wrap(services.ErrInput, "segment", "parse segments", path, err)
	}

	segments := make([]Segment, 0, len(file.Segments))
	for _, rec := range file.Segments {
		seg := Segment{
			ID:                rec.ID,
			Start:             rec.Start,
			End:               rec.End,
			Labels:            dedupeLabels(rec.Labels),
			Confidence:        rec.Confidence,
			VideoModeOverride: rec.VideoModeOverride,
			AudioModeOverride: rec.AudioModeOverride,
			Reasoning:         rec.Reasoning,
		}
		if rec.Allow != nil {
			seg.Allow = *rec.Allow
		}
		if seg.ID == "" {
			seg.ID = uuid.NewString()
		}
		segments = append(segments, seg)
	}

	if err := ValidateSegments(segments); err != nil {
		return nil, services.Wrap(services.ErrInput, "segment", "validate segments", path, err)
	}
	sortSegments(segments)
	return segments, nil
}

// SaveFile writes segments atomically, recomputing the stored duration field.
func SaveFile(path string, segments []Segment) error {
	records := make([]segmentRecord, 0, len(segments))
	for _, seg := range segments {
		allow := seg.Allow
		records = append(records, segmentRecord{
			ID:                seg.ID,
			Start:             seg.Start,
			End:               seg.End,
			Duration:          seg.Duration(),
			Labels:            seg.Labels,
			Confidence:        seg.Confidence,
			Allow:             &allow,
			VideoModeOverride: seg.VideoModeOverride,
			AudioModeOverride: seg.AudioModeOverride,
			Reasoning:         seg.Reasoning,
		})
	}
	payload, err := json.MarshalIndent(segmentFile{Segments: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal segments: %w", err)
	}
	payload = append(payload, '\n')
	if err := fileutil.WriteFileAtomic(path, payload, 0o644); err != nil {
		return fmt.Errorf("write segments: %w", err)
	}
	return nil
}

func dedupeLabels(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}
