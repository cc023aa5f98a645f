package script

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/mydehq/mediafilename/internal/types"
)

const lockName = "run.lock"

// Lock is held for the duration of a run.
type Lock struct {
	f *flock.Flock
}

// AcquireLock takes the run lock in stateDir without blocking. It returns
// types.ErrAlreadyRunning if another process holds it.
func AcquireLock(stateDir string) (*Lock, error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	f := flock.New(filepath.Join(stateDir, lockName))
	ok, err := f.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, types.ErrAlreadyRunning
	}
	return &Lock{f: f}, nil
}

// Path of the lock file.
func (l *Lock) Path() string {
	return l.f.Path()
}

// Release drops the lock.
func (l *Lock) Release() error {
	return l.f.Unlock()
}
