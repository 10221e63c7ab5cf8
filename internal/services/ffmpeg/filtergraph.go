package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"

	"scrub/internal/execution"
	"scrub/internal/remediate"
)

// buildArgs assembles one ffmpeg invocation from the per-track action lists.
//
// Tracks without any transform are stream-copied to avoid needless quality
// loss. A track with transforms is routed through a filter chain: drawbox
// windows for blank, a select/aselect expression with timestamp rebuild for
// cuts, volume gates for silence, and a gated sine tone mixed in for bleeps.
// Cut windows come from the video plan and are applied to both streams so
// audio stays in sync with the shortened video.
//
// Cut boundaries always re-encode; stream-copying across a cut leaves broken
// GOPs at the splice points.
func buildArgs(req execution.Request, enc encoderSettings) ([]string, error) {
	var (
		blanks   []remediate.Action
		cuts     []remediate.Action
		silences []remediate.Action
		bleeps   []remediate.Action
	)
	for _, action := range req.VideoActions {
		switch action.Kind {
		case remediate.KindBlank:
			blanks = append(blanks, action)
		case remediate.KindCut:
			cuts = append(cuts, action)
		case remediate.KindPassthrough:
		default:
			return nil, fmt.Errorf("ffmpeg: kind %s not valid on the video track", action.Kind)
		}
	}
	for _, action := range req.AudioActions {
		switch action.Kind {
		case remediate.KindSilence:
			silences = append(silences, action)
		case remediate.KindBleep:
			bleeps = append(bleeps, action)
		case remediate.KindPassthrough:
		default:
			return nil, fmt.Errorf("ffmpeg: kind %s not valid on the audio track", action.Kind)
		}
	}

	videoTransformed := len(blanks) > 0 || len(cuts) > 0
	audioTransformed := len(silences) > 0 || len(bleeps) > 0 || len(cuts) > 0

	args := []string{"-y", "-hide_banner", "-nostdin", "-loglevel", "error", "-i", req.InputPath}

	var filters []string
	if videoTransformed {
		filters = append(filters, videoChain(blanks, cuts, req.Params.BlankColor))
	}
	if audioTransformed {
		filters = append(filters, audioChain(silences, bleeps, cuts, req.Params)...)
	}
	if len(filters) > 0 {
		args = append(args, "-filter_complex", strings.Join(filters, ";"))
	}

	if videoTransformed {
		args = append(args,
			"-map", "[vout]",
			"-c:v", enc.videoEncoder,
			"-preset", enc.preset,
			"-crf", strconv.Itoa(enc.crf),
		)
	} else {
		args = append(args, "-map", "0:v:0", "-c:v", "copy")
	}
	if audioTransformed {
		args = append(args, "-map", "[aout]", "-c:a", enc.audioEncoder)
	} else {
		args = append(args, "-map", "0:a?", "-c:a", "copy")
	}

	args = append(args, req.OutputPath)
	return args, nil
}

func videoChain(blanks, cuts []remediate.Action, blankColor string) string {
	var stages []string
	for _, blank := range blanks {
		stages = append(stages, fmt.Sprintf(
			"drawbox=enable='%s':color=%s:t=fill",
			betweenExpr(blank), ffmpegColor(blankColor),
		))
	}
	if len(cuts) > 0 {
		stages = append(stages, fmt.Sprintf("select='%s'", keepExpr(cuts)), "setpts=N/FRAME_RATE/TB")
	}
	return "[0:v]" + strings.Join(stages, ",") + "[vout]"
}

func audioChain(silences, bleeps, cuts []remediate.Action, params execution.TrackParams) []string {
	var stages []string
	for _, silence := range silences {
		stages = append(stages, fmt.Sprintf("volume=enable='%s':volume=0", betweenExpr(silence)))
	}
	// The original audio is muted under each bleep window; the tone replaces
	// it rather than playing over it.
	for _, bleep := range bleeps {
		stages = append(stages, fmt.Sprintf("volume=enable='%s':volume=0", betweenExpr(bleep)))
	}
	if len(stages) == 0 {
		stages = append(stages, "anull")
	}

	var filters []string
	mainLabel := "[amain]"
	filters = append(filters, "[0:a]"+strings.Join(stages, ",")+mainLabel)

	if len(bleeps) > 0 {
		windows := windowExpr(bleeps)
		filters = append(filters, fmt.Sprintf("sine=frequency=%s:sample_rate=48000[tone]", formatSeconds(params.BleepFrequency)))
		filters = append(filters, fmt.Sprintf(
			"[tone]volume=enable='not(%s)':volume=0:eval=frame,volume=enable='%s':volume=%s:eval=frame[bleep]",
			windows, windows, formatSeconds(params.BleepAmplitude),
		))
		filters = append(filters, mainLabel+"[bleep]amix=inputs=2:duration=first:dropout_transition=0[amixed]")
		mainLabel = "[amixed]"
	}

	final := strings.TrimSuffix(strings.TrimPrefix(mainLabel, "["), "]")
	if len(cuts) > 0 {
		filters = append(filters, fmt.Sprintf("[%s]aselect='%s',asetpts=N/SR/TB[aout]", final, keepExpr(cuts)))
	} else {
		filters = append(filters, fmt.Sprintf("[%s]anull[aout]", final))
	}
	return filters
}

// keepExpr selects every frame outside the cut windows.
func keepExpr(cuts []remediate.Action) string {
	return "not(" + windowExpr(cuts) + ")"
}

// windowExpr is truthy while t sits inside any of the windows.
func windowExpr(actions []remediate.Action) string {
	parts := make([]string, 0, len(actions))
	for _, action := range actions {
		parts = append(parts, betweenExpr(action))
	}
	return strings.Join(parts, "+")
}

func betweenExpr(action remediate.Action) string {
	return fmt.Sprintf("between(t,%s,%s)", formatSeconds(action.Start), formatSeconds(action.End))
}

// formatSeconds keeps millisecond precision; detection timestamps are
// sub-second and must not be truncated.
func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', 3, 64)
}

func ffmpegColor(color string) string {
	return "0x" + strings.TrimPrefix(color, "#")
}
