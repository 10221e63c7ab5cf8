// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Inspect executes ffprobe and returns a parsed Result; helper methods
// expose the timeline duration, container size, and stream composition
// that planning and preflight depend on.
package ffprobe
