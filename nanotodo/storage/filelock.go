package storage

import (
	"context"
	"time"

	"github.com/gofrs/flock"
)

// FileLock guards the slot file against writers in other processes.
// *flock.Flock satisfies it.
type FileLock interface {
	TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)
	Unlock() error
}

// FileLockFactory builds the lock for a lock file path
type FileLockFactory interface {
	New(path string) FileLock
}

// FlockFactory hands out gofrs/flock locks
type FlockFactory struct{}

func (FlockFactory) New(path string) FileLock {
	return flock.New(path)
}
