// Package main hosts the scrub CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the full remediation flow: merging
// detection events into segments, planning the per-track action timeline,
// executing ffmpeg against a media file, and inspecting run history and
// environment readiness. Configuration resolution and logger setup are
// centralized in commandContext so subcommands stay declarative.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
