// Package execution turns a remediation plan into exactly one external
// media-tool invocation and guards its side effects.
//
// The executor never implements codec logic; it validates preconditions
// (input present, enough free disk at the output location), hands the ordered
// per-track actions to an injected MediaProcessor writing to a temp path,
// validates the result, and atomically renames it into place. Any failure
// removes the temp output, so the output path is never left holding a corrupt
// artifact. Failures are classified into distinct kinds (tool unavailable,
// unsupported codec, disk full, permission denied, generic exit, invalid
// output) by inspecting the captured diagnostics.
package execution
