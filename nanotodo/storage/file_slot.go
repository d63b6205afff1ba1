package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Constants for file locking
const (
	lockTimeout    = 3 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond
)

// FileSlot stores the slot value in one JSON file. Writes go to a temp
// file that is renamed over the target, so a failed write leaves the old
// value readable. A sibling ".lock" file serializes writers across
// processes.
type FileSlot struct {
	path        string
	fs          FileSystem
	lockFactory FileLockFactory
	fileLock    FileLock
}

// FileSlotOption configures a FileSlot
type FileSlotOption func(*FileSlot)

// WithFileSystem sets a custom FileSystem implementation
func WithFileSystem(fs FileSystem) FileSlotOption {
	return func(s *FileSlot) {
		s.fs = fs
	}
}

// WithFileLockFactory sets a custom FileLockFactory implementation
func WithFileLockFactory(factory FileLockFactory) FileSlotOption {
	return func(s *FileSlot) {
		s.lockFactory = factory
	}
}

// NewFileSlot returns a slot stored at path
func NewFileSlot(path string, opts ...FileSlotOption) *FileSlot {
	s := &FileSlot{path: path}
	for _, opt := range opts {
		opt(s)
	}
	if s.fs == nil {
		s.fs = OSFileSystem{}
	}
	if s.lockFactory == nil {
		s.lockFactory = FlockFactory{}
	}
	s.fileLock = s.lockFactory.New(path + ".lock")
	return s
}

// Path returns the file backing the slot
func (s *FileSlot) Path() string {
	return s.path
}

// Read implements Slot.Read
func (s *FileSlot) Read() ([]byte, error) {
	// Checked before locking: the lock file cannot be created while the
	// directory does not exist yet.
	if _, err := s.fs.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil, ErrSlotEmpty
	}

	var data []byte
	err := s.withLock(func() error {
		content, err := s.fs.ReadFile(s.path)
		if errors.Is(err, os.ErrNotExist) {
			return ErrSlotEmpty
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", s.path, err)
		}
		if len(content) == 0 {
			return ErrSlotEmpty
		}
		data = content
		return nil
	})
	return data, err
}

// Write implements Slot.Write
func (s *FileSlot) Write(data []byte) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	return s.withLock(func() error {
		tmpFile := s.path + ".tmp"
		if err := s.fs.WriteFile(tmpFile, data, 0o644); err != nil {
			return fmt.Errorf("failed to write temp file: %w", err)
		}

		// Rename is atomic on most filesystems
		if err := s.fs.Rename(tmpFile, s.path); err != nil {
			_ = s.fs.Remove(tmpFile)
			return fmt.Errorf("failed to rename file: %w", err)
		}
		return nil
	})
}

// Remove implements Slot.Remove
func (s *FileSlot) Remove() error {
	return s.withLock(func() error {
		if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", s.path, err)
		}
		return nil
	})
}

func (s *FileSlot) withLock(fn func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	if err := s.acquireLock(ctx); err != nil {
		return err
	}
	defer func() { _ = s.fileLock.Unlock() }()

	return fn()
}

// acquireLock attempts to acquire the file lock with retry logic
func (s *FileSlot) acquireLock(ctx context.Context) error {
	for i := 0; i < lockMaxRetries; i++ {
		locked, err := s.fileLock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return ErrLockTimeout
			}
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if locked {
			return nil
		}

		select {
		case <-ctx.Done():
			return ErrLockTimeout
		case <-time.After(lockRetryDelay):
		}
	}

	return fmt.Errorf("%w after %d attempts", ErrLockTimeout, lockMaxRetries)
}
