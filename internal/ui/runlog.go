package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/mydehq/mediafilename/internal/types"
)

// RunLog writes the per-run log files. The zero value and a nil *RunLog
// discard everything.
type RunLog struct {
	all   *log.Logger
	errs  *log.Logger
	files []*os.File
}

// OpenRunLog creates (or truncates) the full log at logPath and the skip
// log at errPath.
func OpenRunLog(logPath, errPath string) (*RunLog, error) {
	all, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("create log: %w", err)
	}
	errs, err := os.Create(errPath)
	if err != nil {
		all.Close()
		return nil, fmt.Errorf("create error log: %w", err)
	}

	opts := log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
	}
	return &RunLog{
		all:   log.NewWithOptions(all, opts),
		errs:  log.NewWithOptions(errs, opts),
		files: []*os.File{all, errs},
	}, nil
}

// Start records the run parameters.
func (l *RunLog) Start(target, workDir, offset string, files int) {
	if l == nil || l.all == nil {
		return
	}
	l.all.Info("run started", "target", target, "workdir", workDir, "offset", offset, "files", files)
}

// Resolved records a rename.
func (l *RunLog) Resolved(r types.RenameResult) {
	if l == nil || l.all == nil {
		return
	}
	l.all.Info("generated filename", "path", r.OriginalPath, "name", r.NewFilename, "pass", r.Pass.String())
}

// Skipped records a file without a rename in both logs.
func (l *RunLog) Skipped(s types.Skip) {
	if l == nil || l.all == nil {
		return
	}
	kv := []any{"path", s.Path, "reason", string(s.Reason)}
	if s.Err != nil {
		kv = append(kv, "err", s.Err.Error())
	}
	l.all.Warn("file skipped", kv...)
	l.errs.Error("file skipped", kv...)
}

// Close flushes and closes both files.
func (l *RunLog) Close() error {
	if l == nil {
		return nil
	}
	var errs []error
	for _, f := range l.files {
		errs = append(errs, f.Close())
	}
	l.files = nil
	return errors.Join(errs...)
}
