package remediate_test

import (
	"math"
	"testing"

	"scrub/internal/config"
	"scrub/internal/remediate"
	"scrub/internal/segment"
)

func policyPair(t *testing.T, videoCategory map[string]string, audioEnabled []string, mergeDistance float64) (remediate.VideoPolicy, remediate.AudioPolicy) {
	t.Helper()
	video, err := remediate.NewVideoPolicy(config.Video{
		DefaultMode:   "none",
		CategoryModes: videoCategory,
		BlankColor:    "#000000",
	}, mergeDistance)
	if err != nil {
		t.Fatalf("NewVideoPolicy: %v", err)
	}
	audio, err := remediate.NewAudioPolicy(config.Audio{
		DefaultMode:       "bleep",
		EnabledCategories: audioEnabled,
		BleepFrequency:    1000,
		BleepAmplitude:    0.8,
	}, mergeDistance)
	if err != nil {
		t.Fatalf("NewAudioPolicy: %v", err)
	}
	return video, audio
}

func assertPartition(t *testing.T, actions []remediate.Action, duration float64) {
	t.Helper()
	if len(actions) == 0 {
		t.Fatal("expected at least one action")
	}
	if actions[0].Start != 0 {
		t.Fatalf("partition does not start at 0: %+v", actions[0])
	}
	for i := 1; i < len(actions); i++ {
		if actions[i].Start != actions[i-1].End {
			t.Fatalf("gap or overlap between actions %d and %d: %+v %+v", i-1, i, actions[i-1], actions[i])
		}
	}
	if last := actions[len(actions)-1]; math.Abs(last.End-duration) > 1e-9 {
		t.Fatalf("partition does not end at %.3f: %+v", duration, last)
	}
}

func TestPlanCompleteness(t *testing.T) {
	video, audio := policyPair(t, map[string]string{"Nudity": "cut", "Violence": "blank"}, []string{"Profanity"}, 0.5)
	segments := []segment.Segment{
		{ID: "a", Start: 3, End: 5, Labels: []string{"Violence"}},
		{ID: "b", Start: 10, End: 12, Labels: []string{"Nudity"}},
		{ID: "c", Start: 20, End: 21, Labels: []string{"Profanity"}},
	}
	plan := remediate.BuildPlan(segments, video, audio, 60, nil)
	assertPartition(t, plan.VideoActions, 60)
	assertPartition(t, plan.AudioActions, 60)
}

func TestPlanNoneContributesZeroActions(t *testing.T) {
	video, err := remediate.NewVideoPolicy(config.Video{
		DefaultMode:   "blank",
		CategoryModes: map[string]string{"Violence": "none"},
		BlankColor:    "#000000",
	}, 0.5)
	if err != nil {
		t.Fatalf("NewVideoPolicy: %v", err)
	}
	_, audio := policyPair(t, nil, nil, 0.5)

	segments := []segment.Segment{{ID: "a", Start: 10, End: 20, Labels: []string{"Violence"}}}
	plan := remediate.BuildPlan(segments, video, audio, 60, nil)

	if len(plan.VideoActions) != 1 {
		t.Fatalf("expected single passthrough covering the timeline, got %+v", plan.VideoActions)
	}
	action := plan.VideoActions[0]
	if action.Kind != remediate.KindPassthrough || action.Start != 0 || action.End != 60 {
		t.Fatalf("unexpected action: %+v", action)
	}
}

func TestPlanAdjacentCutGrouping(t *testing.T) {
	segments := []segment.Segment{
		{ID: "a", Start: 5.0, End: 6.0, Labels: []string{"Nudity"}},
		{ID: "b", Start: 6.3, End: 7.0, Labels: []string{"Nudity"}},
	}

	video, audio := policyPair(t, map[string]string{"Nudity": "cut"}, nil, 0.5)
	plan := remediate.BuildPlan(segments, video, audio, 30, nil)
	cuts := plan.CutWindows()
	if len(cuts) != 1 {
		t.Fatalf("expected one merged cut, got %+v", cuts)
	}
	if cuts[0].Start != 5.0 || cuts[0].End != 7.0 {
		t.Fatalf("unexpected merged cut bounds: %+v", cuts[0])
	}

	video, audio = policyPair(t, map[string]string{"Nudity": "cut"}, nil, 0.1)
	plan = remediate.BuildPlan(segments, video, audio, 30, nil)
	cuts = plan.CutWindows()
	if len(cuts) != 2 {
		t.Fatalf("expected two separate cuts, got %+v", cuts)
	}
	assertPartition(t, plan.VideoActions, 30)
}

func TestPlanCutClaimsOverlapWithBlank(t *testing.T) {
	video, audio := policyPair(t, map[string]string{"Nudity": "cut", "Violence": "blank"}, nil, 0.1)
	segments := []segment.Segment{
		{ID: "a", Start: 1, End: 5, Labels: []string{"Violence"}},
		{ID: "b", Start: 3, End: 7, Labels: []string{"Nudity"}},
	}
	plan := remediate.BuildPlan(segments, video, audio, 10, nil)
	assertPartition(t, plan.VideoActions, 10)

	want := []remediate.Action{
		{Kind: remediate.KindPassthrough, Start: 0, End: 1},
		{Kind: remediate.KindBlank, Start: 1, End: 3},
		{Kind: remediate.KindCut, Start: 3, End: 7},
		{Kind: remediate.KindPassthrough, Start: 7, End: 10},
	}
	if len(plan.VideoActions) != len(want) {
		t.Fatalf("unexpected actions: %+v", plan.VideoActions)
	}
	for i, action := range plan.VideoActions {
		if action != want[i] {
			t.Fatalf("action %d = %+v, want %+v", i, action, want[i])
		}
	}
}

func TestPlanClampsToDuration(t *testing.T) {
	video, audio := policyPair(t, map[string]string{"Nudity": "cut"}, nil, 0.1)
	segments := []segment.Segment{{ID: "a", Start: 25, End: 40, Labels: []string{"Nudity"}}}
	plan := remediate.BuildPlan(segments, video, audio, 30, nil)
	assertPartition(t, plan.VideoActions, 30)
	cuts := plan.CutWindows()
	if len(cuts) != 1 || cuts[0].End != 30 {
		t.Fatalf("expected cut clamped to duration, got %+v", cuts)
	}
}

func TestPlanSecondsCut(t *testing.T) {
	video, audio := policyPair(t, map[string]string{"Nudity": "cut"}, nil, 0.1)
	segments := []segment.Segment{
		{ID: "a", Start: 5, End: 6, Labels: []string{"Nudity"}},
		{ID: "b", Start: 10, End: 12, Labels: []string{"Nudity"}},
	}
	plan := remediate.BuildPlan(segments, video, audio, 30, nil)
	if got := plan.SecondsCut(); math.Abs(got-3.0) > 1e-9 {
		t.Fatalf("expected 3 seconds cut, got %v", got)
	}
}

func TestPlanEndToEndScenario(t *testing.T) {
	video, err := remediate.NewVideoPolicy(config.Video{
		DefaultMode:   "none",
		CategoryModes: map[string]string{"Nudity": "cut"},
		BlankColor:    "#000000",
	}, 0.5)
	if err != nil {
		t.Fatalf("NewVideoPolicy: %v", err)
	}
	audio, err := remediate.NewAudioPolicy(config.Audio{
		DefaultMode:       "bleep",
		EnabledCategories: []string{"Profanity"},
		BleepFrequency:    1000,
		BleepAmplitude:    0.8,
	}, 0.5)
	if err != nil {
		t.Fatalf("NewAudioPolicy: %v", err)
	}

	segments := []segment.Segment{
		{ID: "a", Start: 2, End: 3, Labels: []string{"Profanity"}},
		{ID: "b", Start: 10, End: 12, Labels: []string{"Nudity"}},
		{ID: "c", Start: 20, End: 21, Labels: []string{"Violence"}, Allow: true},
	}
	plan := remediate.BuildPlan(segments, video, audio, 60, nil)

	if got := remediate.TransformCount(plan.VideoActions); got != 1 {
		t.Fatalf("expected exactly one video transform, got %d: %+v", got, plan.VideoActions)
	}
	cuts := plan.CutWindows()
	if len(cuts) != 1 || cuts[0].Start != 10 || cuts[0].End != 12 {
		t.Fatalf("unexpected video cut: %+v", cuts)
	}

	if got := remediate.TransformCount(plan.AudioActions); got != 1 {
		t.Fatalf("expected exactly one audio transform, got %d: %+v", got, plan.AudioActions)
	}
	var bleep *remediate.Action
	for i := range plan.AudioActions {
		if plan.AudioActions[i].Kind == remediate.KindBleep {
			bleep = &plan.AudioActions[i]
		}
	}
	if bleep == nil || bleep.Start != 2 || bleep.End != 3 {
		t.Fatalf("unexpected audio bleep: %+v", plan.AudioActions)
	}

	assertPartition(t, plan.VideoActions, 60)
	assertPartition(t, plan.AudioActions, 60)
}

func TestPlanZeroDuration(t *testing.T) {
	video, audio := policyPair(t, nil, nil, 0.5)
	plan := remediate.BuildPlan(nil, video, audio, 0, nil)
	if len(plan.VideoActions) != 0 || len(plan.AudioActions) != 0 {
		t.Fatalf("expected empty plan for zero duration, got %+v", plan)
	}
}
