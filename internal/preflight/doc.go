// Package preflight provides readiness checks for the external binaries
// and filesystem paths a remediation run depends on.
//
// The CLI "scrub preflight" command runs RunAll and renders the results;
// the run command reuses CheckDiskSpace semantics through the executor so
// a doomed invocation fails before ffmpeg starts.
package preflight
