// Package ffmpeg runs the external ffmpeg binary to apply a remediation
// plan to a media file. It translates per-track action lists into a single
// filter_complex invocation and stream-copies any track the plan leaves
// untouched.
package ffmpeg
