package script

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mydehq/mediafilename/internal/types"
)

const (
	header       = "#!/bin/sh\n"
	backupLayout = "2006-01-02_150405"
)

// Quote wraps s in single quotes for a POSIX shell.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Line renders the mv command for r. Both sides are relative to the working
// directory; the new file stays in the original's directory.
func (p Plan) Line(r types.RenameResult) (string, error) {
	from, err := filepath.Rel(p.WorkDir, r.OriginalPath)
	if err != nil {
		return "", fmt.Errorf("relativize %s: %w", r.OriginalPath, err)
	}
	to := filepath.Join(filepath.Dir(from), r.NewFilename)
	return "mv " + Quote(from) + " " + Quote(to), nil
}

// Lines renders every result in order.
func (p Plan) Lines(results []types.RenameResult) ([]string, error) {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		l, err := p.Line(r)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}

// BackupPath is where an existing script is moved before a new one is
// written.
func BackupPath(script string, now time.Time) string {
	return script + "-saved-" + now.Format(backupLayout) + ".sh"
}

// Backup moves an existing script aside. It returns the backup path, or ""
// when there was nothing to move.
func Backup(script string, now time.Time) (string, error) {
	if _, err := os.Lstat(script); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	dst := BackupPath(script, now)
	if _, err := os.Lstat(dst); err == nil {
		return "", fmt.Errorf("backup %s already exists", dst)
	}
	if err := os.Rename(script, dst); err != nil {
		return "", fmt.Errorf("back up %s: %w", script, err)
	}
	return dst, nil
}

// Write creates the script at path. It fails if path already exists.
func Write(path string, lines []string) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o755)
	if err != nil {
		return fmt.Errorf("create script: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(header); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := w.WriteString(l + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Save backs up any previous script for this plan and writes a new one. It
// returns the backup path, if any.
func (p Plan) Save(lines []string, now time.Time) (string, error) {
	backup, err := Backup(p.ScriptPath(), now)
	if err != nil {
		return "", err
	}
	return backup, Write(p.ScriptPath(), lines)
}
