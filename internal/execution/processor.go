package execution

import (
	"context"

	"scrub/internal/remediate"
)

// TrackParams carries the track-specific transform parameters the external
// tool needs alongside the action lists.
type TrackParams struct {
	BlankColor     string
	BleepFrequency float64
	BleepAmplitude float64
}

// Request describes one external media-tool invocation: the full ordered
// per-track action lists plus input and output locations. The output path is
// a temp location chosen by the executor; the processor never writes the
// final path itself.
type Request struct {
	InputPath    string
	OutputPath   string
	VideoActions []remediate.Action
	AudioActions []remediate.Action
	Params       TrackParams
}

// ProcessResult carries diagnostic text captured from the external tool,
// returned on success and failure alike.
type ProcessResult struct {
	Diagnostics string
}

// MediaProcessor abstracts the external media tool. The real implementation
// shells out to ffmpeg; tests substitute a double that records the request
// without invoking anything.
type MediaProcessor interface {
	Process(ctx context.Context, req Request) (ProcessResult, error)
}
