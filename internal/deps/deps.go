// Package deps reports on the external programs a run needs.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement is an external binary.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports whether a Requirement was found.
type Status struct {
	Requirement
	Available bool
	Path      string // resolved location when available
	Detail    string
}

// Requirements lists what a run uses, given the configured exiftool.
func Requirements(exiftool string) []Requirement {
	return []Requirement{
		{
			Name:        "exiftool",
			Command:     exiftool,
			Description: "reads capture timestamps from media metadata",
		},
		{
			Name:        "sh",
			Command:     "sh",
			Description: "runs the generated rename script",
			Optional:    true,
		},
	}
}

// CheckBinaries looks up each requirement in $PATH.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		req.Description = strings.TrimSpace(req.Description)
		status := Status{Requirement: req}

		if req.Command == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(req.Command)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", req.Command)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		results = append(results, status)
	}
	return results
}

// Missing returns the required entries that are unavailable.
func Missing(statuses []Status) []Status {
	var out []Status
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			out = append(out, s)
		}
	}
	return out
}
