// Package finder lists the files a run operates on.
package finder

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Options controls the walk.
type Options struct {
	// SkipHidden ignores files and directories whose name starts with a dot.
	// The target itself is never skipped.
	SkipHidden bool

	// OnError is called for entries that could not be visited. The walk
	// continues past them. May be nil.
	OnError func(path string, err error)
}

// Find returns the absolute paths under target in lexical walk order. A
// target naming a single file yields just that file. Directories are walked
// recursively and only non-directory entries are returned. Symlinks are listed
// but not followed.
func Find(target string, opts Options) ([]string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", target, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{abs}, nil
	}

	var files []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == abs {
				return err
			}
			if opts.OnError != nil {
				opts.OnError(path, err)
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path != abs && opts.SkipHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&(fs.ModeNamedPipe|fs.ModeSocket|fs.ModeDevice|fs.ModeCharDevice) != 0 {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
