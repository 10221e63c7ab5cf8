package segment

import (
	"sort"

	"github.com/google/uuid"
)

// Merge groups detection events into canonical segments. Events merge into
// the open group while their start is at most gapThreshold past the group's
// end; anything further closes the group and opens a new one. The result is
// sorted by start (ties by end) and the operation is idempotent for a fixed
// threshold: every gap between output segments already exceeds the threshold.
func Merge(events []DetectionEvent, gapThreshold float64) []Segment {
	if len(events) == 0 {
		return []Segment{}
	}
	if gapThreshold < 0 {
		gapThreshold = 0
	}

	sorted := append([]DetectionEvent(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	segments := make([]Segment, 0, len(sorted))
	group := []DetectionEvent{sorted[0]}
	groupEnd := sorted[0].End
	for _, ev := range sorted[1:] {
		if ev.Start <= groupEnd+gapThreshold {
			group = append(group, ev)
			if ev.End > groupEnd {
				groupEnd = ev.End
			}
			continue
		}
		segments = append(segments, closeGroup(group))
		group = []DetectionEvent{ev}
		groupEnd = ev.End
	}
	segments = append(segments, closeGroup(group))

	sortSegments(segments)
	return segments
}

// closeGroup collapses a group of overlapping or near-adjacent events into
// one segment: min start, max end, label union, and per-label arithmetic-mean
// confidence. The mean preserves detector disagreement instead of amplifying
// confidence the way max would.
func closeGroup(events []DetectionEvent) Segment {
	seg := Segment{
		ID:         uuid.NewString(),
		Start:      events[0].Start,
		End:        events[0].End,
		Confidence: make(map[string]float64),
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	var reasons []string
	for _, ev := range events {
		if ev.Start < seg.Start {
			seg.Start = ev.Start
		}
		if ev.End > seg.End {
			seg.End = ev.End
		}
		sums[ev.Label] += ev.Confidence
		counts[ev.Label]++
		if ev.Reasoning != "" {
			reasons = append(reasons, ev.Reasoning)
		}
	}

	seg.Labels = make([]string, 0, len(sums))
	for label := range sums {
		seg.Labels = append(seg.Labels, label)
		seg.Confidence[label] = sums[label] / float64(counts[label])
	}
	sort.Strings(seg.Labels)
	if len(reasons) > 0 {
		seg.Reasoning = reasons[0]
	}
	return seg
}
