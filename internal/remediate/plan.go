package remediate

import "fmt"

// Kind tags one contiguous action range on a track. Ordinal order doubles as
// overlap priority within a track: when two resolved ranges of different
// kinds overlap, the higher kind claims the overlap.
type Kind int

const (
	KindPassthrough Kind = iota
	KindBlank
	KindCut
	KindBleep
	KindSilence
)

func (k Kind) String() string {
	switch k {
	case KindPassthrough:
		return "passthrough"
	case KindBlank:
		return "blank"
	case KindCut:
		return "cut"
	case KindBleep:
		return "bleep"
	case KindSilence:
		return "silence"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Action is a planner-emitted, contiguous time range tagged with a single
// transform kind. The per-track action list is a complete, gapless,
// non-overlapping partition of [0, Plan.Duration].
type Action struct {
	Kind  Kind
	Start float64
	End   float64
}

func (a Action) Duration() float64 {
	return a.End - a.Start
}

// Plan is the per-track action layout for one run. Plans are derived data:
// recomputed fresh every run and never mutated in place.
type Plan struct {
	Duration     float64
	VideoActions []Action
	AudioActions []Action
}

// SecondsCut returns the total duration removed by cut actions; the output
// file is shorter than the input by exactly this amount.
func (p Plan) SecondsCut() float64 {
	total := 0.0
	for _, action := range p.VideoActions {
		if action.Kind == KindCut {
			total += action.Duration()
		}
	}
	return total
}

// CutWindows returns the cut actions in order. The executor applies these to
// both streams so audio stays in sync with the shortened video.
func (p Plan) CutWindows() []Action {
	var cuts []Action
	for _, action := range p.VideoActions {
		if action.Kind == KindCut {
			cuts = append(cuts, action)
		}
	}
	return cuts
}

// TransformCount returns the number of non-passthrough actions on a track.
func TransformCount(actions []Action) int {
	count := 0
	for _, action := range actions {
		if action.Kind != KindPassthrough {
			count++
		}
	}
	return count
}
