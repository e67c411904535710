package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrStoreLocked is returned when another process holds the catalog
var ErrStoreLocked = errors.New("catalog is locked by another process")

// storeLock is an exclusive advisory lock held beside the database file
type storeLock struct {
	flock *flock.Flock
	path  string
}

// lockPath returns the lock file used for dbPath
func lockPath(dbPath string) string {
	return dbPath + ".lock"
}

// acquireStoreLock takes the lock for dbPath without blocking
func acquireStoreLock(dbPath string) (*storeLock, error) {
	path := lockPath(dbPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	fl := flock.New(path)
	acquired, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}
	if !acquired {
		return nil, fmt.Errorf("%w: %s", ErrStoreLocked, path)
	}
	return &storeLock{flock: fl, path: path}, nil
}

// release drops the lock. It is safe on a nil lock.
func (l *storeLock) release() {
	if l == nil {
		return
	}
	_ = l.flock.Unlock()
}
