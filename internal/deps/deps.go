package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"scrub/internal/config"
)

// Requirement defines an external binary the engine shells out to.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Detail      string
}

// ToolRequirements lists the external binaries the configured engine needs.
// Both are required: ffmpeg produces the remediated output and ffprobe
// supplies the timeline duration planning depends on.
func ToolRequirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpeg.Binary,
			Description: "applies the remediation plan to the media file",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFmpeg.FFprobeBinary,
			Description: "inspects media duration and stream layout",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Command = resolved
		results = append(results, status)
	}
	return results
}

// AllAvailable reports whether every status is available.
func AllAvailable(statuses []Status) bool {
	for _, status := range statuses {
		if !status.Available {
			return false
		}
	}
	return true
}
