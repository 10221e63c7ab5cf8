package ffmpeg

import (
	"strings"
	"testing"

	"scrub/internal/execution"
	"scrub/internal/remediate"
)

func testEncoders() encoderSettings {
	return encoderSettings{
		videoEncoder: "libx264",
		audioEncoder: "aac",
		preset:       "medium",
		crf:          18,
	}
}

func testParams() execution.TrackParams {
	return execution.TrackParams{
		BlankColor:     "#000000",
		BleepFrequency: 1000,
		BleepAmplitude: 0.8,
	}
}

func argString(t *testing.T, req execution.Request) string {
	t.Helper()
	args, err := buildArgs(req, testEncoders())
	if err != nil {
		t.Fatalf("buildArgs: %v", err)
	}
	return strings.Join(args, " ")
}

func TestBuildArgsCopiesUntouchedTracks(t *testing.T) {
	joined := argString(t, execution.Request{
		InputPath:  "in.mkv",
		OutputPath: "out.mkv",
		VideoActions: []remediate.Action{
			{Kind: remediate.KindPassthrough, Start: 0, End: 60},
		},
		AudioActions: []remediate.Action{
			{Kind: remediate.KindPassthrough, Start: 0, End: 60},
		},
		Params: testParams(),
	})
	if strings.Contains(joined, "-filter_complex") {
		t.Fatalf("expected no filter graph for passthrough-only plan, got %q", joined)
	}
	if !strings.Contains(joined, "-map 0:v:0 -c:v copy") {
		t.Fatalf("expected video stream copy, got %q", joined)
	}
	if !strings.Contains(joined, "-map 0:a? -c:a copy") {
		t.Fatalf("expected audio stream copy, got %q", joined)
	}
}

func TestBuildArgsBlankWindow(t *testing.T) {
	joined := argString(t, execution.Request{
		InputPath:  "in.mkv",
		OutputPath: "out.mkv",
		VideoActions: []remediate.Action{
			{Kind: remediate.KindBlank, Start: 10, End: 12.5},
		},
		Params: testParams(),
	})
	want := "drawbox=enable='between(t,10.000,12.500)':color=0x000000:t=fill"
	if !strings.Contains(joined, want) {
		t.Fatalf("expected %q in args, got %q", want, joined)
	}
	if !strings.Contains(joined, "-map [vout] -c:v libx264 -preset medium -crf 18") {
		t.Fatalf("expected video re-encode, got %q", joined)
	}
	if !strings.Contains(joined, "-map 0:a? -c:a copy") {
		t.Fatalf("expected untouched audio to be copied, got %q", joined)
	}
}

func TestBuildArgsCutAppliesToBothTracks(t *testing.T) {
	joined := argString(t, execution.Request{
		InputPath:  "in.mkv",
		OutputPath: "out.mkv",
		VideoActions: []remediate.Action{
			{Kind: remediate.KindCut, Start: 5, End: 7},
		},
		Params: testParams(),
	})
	if !strings.Contains(joined, "select='not(between(t,5.000,7.000))',setpts=N/FRAME_RATE/TB") {
		t.Fatalf("expected video cut select, got %q", joined)
	}
	if !strings.Contains(joined, "aselect='not(between(t,5.000,7.000))',asetpts=N/SR/TB") {
		t.Fatalf("expected matching audio cut so tracks stay in sync, got %q", joined)
	}
	if strings.Contains(joined, "-c:a copy") {
		t.Fatalf("audio must be re-encoded when cut, got %q", joined)
	}
}

func TestBuildArgsSilenceWindow(t *testing.T) {
	joined := argString(t, execution.Request{
		InputPath:  "in.mkv",
		OutputPath: "out.mkv",
		AudioActions: []remediate.Action{
			{Kind: remediate.KindSilence, Start: 3, End: 4.25},
		},
		Params: testParams(),
	})
	if !strings.Contains(joined, "volume=enable='between(t,3.000,4.250)':volume=0") {
		t.Fatalf("expected silence volume gate, got %q", joined)
	}
	if !strings.Contains(joined, "-map 0:v:0 -c:v copy") {
		t.Fatalf("expected untouched video to be copied, got %q", joined)
	}
}

func TestBuildArgsBleepMixesTone(t *testing.T) {
	joined := argString(t, execution.Request{
		InputPath:  "in.mkv",
		OutputPath: "out.mkv",
		AudioActions: []remediate.Action{
			{Kind: remediate.KindBleep, Start: 8, End: 9},
			{Kind: remediate.KindBleep, Start: 20, End: 21.5},
		},
		Params: testParams(),
	})
	if !strings.Contains(joined, "sine=frequency=1000.000:sample_rate=48000[tone]") {
		t.Fatalf("expected sine source, got %q", joined)
	}
	windows := "between(t,8.000,9.000)+between(t,20.000,21.500)"
	if !strings.Contains(joined, "volume=enable='"+windows+"':volume=0.800:eval=frame") {
		t.Fatalf("expected tone gated to bleep windows at configured amplitude, got %q", joined)
	}
	// Original audio is muted under each bleep so the tone replaces it.
	if !strings.Contains(joined, "volume=enable='between(t,8.000,9.000)':volume=0") {
		t.Fatalf("expected original audio muted under bleep, got %q", joined)
	}
	if !strings.Contains(joined, "amix=inputs=2:duration=first:dropout_transition=0") {
		t.Fatalf("expected tone mixed with original, got %q", joined)
	}
	if !strings.Contains(joined, "-map [aout] -c:a aac") {
		t.Fatalf("expected audio re-encode, got %q", joined)
	}
}

func TestBuildArgsRejectsKindOnWrongTrack(t *testing.T) {
	_, err := buildArgs(execution.Request{
		InputPath:  "in.mkv",
		OutputPath: "out.mkv",
		VideoActions: []remediate.Action{
			{Kind: remediate.KindBleep, Start: 0, End: 1},
		},
		Params: testParams(),
	}, testEncoders())
	if err == nil {
		t.Fatal("expected error for bleep on video track")
	}
}
