// Package runlock guards a simulation run's output directory against
// concurrent invocations that would otherwise interleave writes to the
// same schedule, analysis, and metrics files.
package runlock

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = ".edfvdsim.lock"

// Lock is an advisory, process-scoped lock on an output directory.
type Lock struct {
	flock *flock.Flock
	path  string
}

// Acquire takes an exclusive, non-blocking lock on outputDir. The caller
// must call Release once the run's outputs have been written.
func Acquire(outputDir string) (*Lock, error) {
	path := filepath.Join(outputDir, lockFileName)

	fl := flock.New(path)

	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("runlock: acquire %s: %w", path, err)
	}

	if !locked {
		return nil, fmt.Errorf("runlock: %s is already locked by another run", path)
	}

	return &Lock{flock: fl, path: path}, nil
}

// Release unlocks the output directory. Safe to call on a nil Lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}

	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("runlock: release %s: %w", l.path, err)
	}

	return nil
}
