// Package script turns a run's results into the rename script and its
// companion files in the working directory.
package script

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mydehq/mediafilename/internal/tz"
)

// Plan fixes everything about a run that depends on its arguments and launch
// time. It is built once and passed down.
type Plan struct {
	Launched time.Time
	Offset   tz.Offset
	Target   string // absolute
	WorkDir  string // holds the script and log files
	Base     string // output file name without extension
}

// NewPlan resolves target against cwd. An absolute target uses its parent as
// the working directory; a relative one uses cwd.
func NewPlan(target string, offset tz.Offset, now time.Time, cwd string) (Plan, error) {
	if target == "" {
		return Plan{}, errors.New("empty target")
	}

	var abs, workDir string
	if filepath.IsAbs(target) {
		abs = filepath.Clean(target)
		workDir = filepath.Dir(abs)
	} else {
		if !filepath.IsAbs(cwd) {
			return Plan{}, fmt.Errorf("working directory %q is not absolute", cwd)
		}
		abs = filepath.Join(cwd, target)
		workDir = filepath.Clean(cwd)
	}

	name := filepath.Base(abs)
	if name == string(filepath.Separator) || name == "." {
		return Plan{}, fmt.Errorf("cannot derive an output name from %q", target)
	}

	return Plan{
		Launched: now,
		Offset:   offset,
		Target:   abs,
		WorkDir:  workDir,
		Base:     fmt.Sprintf("Importation_%s_%s_tz%s", now.Format(time.DateOnly), name, offset),
	}, nil
}

// ScriptPath is the shell script holding the mv lines.
func (p Plan) ScriptPath() string {
	return filepath.Join(p.WorkDir, p.Base+".sh")
}

// LogPath receives every resolution and skip.
func (p Plan) LogPath() string {
	return filepath.Join(p.WorkDir, p.Base+".log")
}

// ErrorLogPath receives skips only.
func (p Plan) ErrorLogPath() string {
	return filepath.Join(p.WorkDir, p.Base+"_errors.log")
}
