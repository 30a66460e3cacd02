package transfer

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockFileName is created inside the destination root while a transfer runs.
// The leading dot keeps it out of destination scans.
const lockFileName = ".podhaul.lock"

// lockDestination takes an advisory lock scoped to the destination root so
// two overlapping transfers cannot interleave writes into the same show
// directories. The lock file is left behind after release; flock state, not
// file existence, is what guards the destination.
func lockDestination(destination string) (func(), error) {
	lock := flock.New(LockPath(destination))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock destination: %w", err)
	}
	if !locked {
		return nil, ErrInProgress
	}
	return func() { _ = lock.Unlock() }, nil
}

// LockPath returns the lock file location for a destination root.
func LockPath(destination string) string {
	return filepath.Join(destination, lockFileName)
}
