package execution

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"scrub/internal/services"
)

// Sentinel kinds for executor failures. All of them carry the
// services.ErrExternalTool or services.ErrValidation marker as well, so
// generic classification keeps working.
var (
	ErrToolUnavailable  = errors.New("media tool unavailable")
	ErrUnsupportedCodec = errors.New("unsupported codec")
	ErrDiskSpace        = errors.New("insufficient disk space")
	ErrPermission       = errors.New("permission denied")
	ErrProcessFailed    = errors.New("media tool failed")
	ErrOutputInvalid    = errors.New("output validation failed")
)

// FailureKind returns a short label for the executor failure, for CLI
// guidance and run-history records.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrToolUnavailable):
		return "tool-unavailable"
	case errors.Is(err, ErrUnsupportedCodec):
		return "unsupported-codec"
	case errors.Is(err, ErrDiskSpace):
		return "disk-space"
	case errors.Is(err, ErrPermission):
		return "permission"
	case errors.Is(err, ErrOutputInvalid):
		return "output-invalid"
	case errors.Is(err, ErrProcessFailed):
		return "process-failed"
	default:
		return services.UserFacingKind(err)
	}
}

// classifyProcessError maps a failed external invocation to a sentinel kind
// by inspecting the error chain and the captured diagnostic text.
func classifyProcessError(err error, diagnostics string) error {
	marker := ErrProcessFailed
	switch {
	case errors.Is(err, exec.ErrNotFound):
		marker = ErrToolUnavailable
	default:
		lowered := strings.ToLower(diagnostics)
		switch {
		case strings.Contains(lowered, "no space left on device"):
			marker = ErrDiskSpace
		case strings.Contains(lowered, "permission denied"), strings.Contains(lowered, "operation not permitted"):
			marker = ErrPermission
		case strings.Contains(lowered, "unknown encoder"),
			strings.Contains(lowered, "unknown decoder"),
			strings.Contains(lowered, "decoder not found"),
			strings.Contains(lowered, "unsupported codec"):
			marker = ErrUnsupportedCodec
		}
	}

	wrapped := fmt.Errorf("%w: %w", marker, services.Wrap(services.ErrExternalTool, "execution", "invoke media tool", "", err))
	if excerpt := diagnosticExcerpt(diagnostics); excerpt != "" {
		wrapped = fmt.Errorf("%w\n%s", wrapped, excerpt)
	}
	return wrapped
}

// diagnosticExcerpt keeps the tail of the captured output; ffmpeg prints the
// actionable line last.
func diagnosticExcerpt(diagnostics string) string {
	diagnostics = strings.TrimSpace(diagnostics)
	if diagnostics == "" {
		return ""
	}
	lines := strings.Split(diagnostics, "\n")
	const keep = 10
	if len(lines) > keep {
		lines = lines[len(lines)-keep:]
	}
	return strings.Join(lines, "\n")
}
