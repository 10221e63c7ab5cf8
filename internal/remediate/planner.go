package remediate

import (
	"log/slog"
	"sort"

	"scrub/internal/segment"
)

type span struct {
	kind  Kind
	start float64
	end   float64
}

// BuildPlan partitions each track's timeline into ordered, non-overlapping
// actions. Per track: resolve each segment's mode, drop segments resolving to
// no action (they contribute zero actions, not zero-length ones), merge
// overlapping or near-adjacent same-kind ranges, give overlap between
// different kinds to the more restrictive kind, and fill the gaps with
// passthrough so the actions exactly cover [0, duration].
//
// The two tracks are planned independently but share the timeline; combining
// them into one external invocation is the executor's job.
func BuildPlan(segments []segment.Segment, video VideoPolicy, audio AudioPolicy, duration float64, logger *slog.Logger) Plan {
	plan := Plan{Duration: duration}
	if duration <= 0 {
		return plan
	}

	var videoSpans []span
	for _, seg := range segments {
		switch ResolveVideo(seg, video, logger) {
		case VideoBlank:
			videoSpans = append(videoSpans, span{kind: KindBlank, start: seg.Start, end: seg.End})
		case VideoCut:
			videoSpans = append(videoSpans, span{kind: KindCut, start: seg.Start, end: seg.End})
		}
	}
	plan.VideoActions = layoutTrack(videoSpans, duration, video.MergeDistance)

	var audioSpans []span
	for _, seg := range segments {
		switch ResolveAudio(seg, audio, logger) {
		case AudioBleep:
			audioSpans = append(audioSpans, span{kind: KindBleep, start: seg.Start, end: seg.End})
		case AudioSilence:
			audioSpans = append(audioSpans, span{kind: KindSilence, start: seg.Start, end: seg.End})
		}
	}
	plan.AudioActions = layoutTrack(audioSpans, duration, audio.MergeDistance)

	return plan
}

// layoutTrack turns resolved spans into the track's complete action
// partition.
func layoutTrack(spans []span, duration, mergeDistance float64) []Action {
	clamped := spans[:0]
	for _, s := range spans {
		if s.start < 0 {
			s.start = 0
		}
		if s.end > duration {
			s.end = duration
		}
		if s.end <= s.start {
			continue
		}
		clamped = append(clamped, s)
	}

	merged := mergeSameKind(clamped, mergeDistance)
	actions := sweep(merged, duration)
	return actions
}

// mergeSameKind collapses overlapping or near-adjacent spans of the same
// kind. Adjacent cuts become one extraction boundary; the gap between merged
// cut spans is removed along with them, which is why the merge distance stays
// small.
func mergeSameKind(spans []span, mergeDistance float64) []span {
	byKind := make(map[Kind][]span)
	for _, s := range spans {
		byKind[s.kind] = append(byKind[s.kind], s)
	}

	var merged []span
	for _, group := range byKind {
		sort.Slice(group, func(i, j int) bool { return group[i].start < group[j].start })
		current := group[0]
		for _, s := range group[1:] {
			if s.start <= current.end+mergeDistance {
				if s.end > current.end {
					current.end = s.end
				}
				continue
			}
			merged = append(merged, current)
			current = s
		}
		merged = append(merged, current)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].start < merged[j].start })
	return merged
}

// sweep walks the elementary intervals between span boundaries, assigns each
// to the highest-priority covering kind (passthrough when none covers it),
// and coalesces adjacent intervals of the same kind.
func sweep(spans []span, duration float64) []Action {
	points := make([]float64, 0, len(spans)*2+2)
	points = append(points, 0, duration)
	for _, s := range spans {
		points = append(points, s.start, s.end)
	}
	sort.Float64s(points)

	unique := points[:0]
	for i, p := range points {
		if p < 0 || p > duration {
			continue
		}
		if i > 0 && len(unique) > 0 && p == unique[len(unique)-1] {
			continue
		}
		unique = append(unique, p)
	}

	var actions []Action
	for i := 0; i+1 < len(unique); i++ {
		start, end := unique[i], unique[i+1]
		if end <= start {
			continue
		}
		kind := KindPassthrough
		for _, s := range spans {
			if s.start <= start && end <= s.end && s.kind > kind {
				kind = s.kind
			}
		}
		if n := len(actions); n > 0 && actions[n-1].Kind == kind && actions[n-1].End == start {
			actions[n-1].End = end
			continue
		}
		actions = append(actions, Action{Kind: kind, Start: start, End: end})
	}
	return actions
}
