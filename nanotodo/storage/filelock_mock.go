package storage

import (
	"context"
	"sync"
	"time"
)

// MockFileLock is an in-process FileLock. It never waits: an attempt on a
// held lock reports false at once, which FileSlot treats as a timeout.
type MockFileLock struct {
	mu   sync.Mutex
	held bool
	err  error

	Attempts int
	Releases int
}

func (m *MockFileLock) TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Attempts++
	switch {
	case m.err != nil:
		return false, m.err
	case m.held:
		return false, nil
	}
	m.held = true
	return true, nil
}

func (m *MockFileLock) Unlock() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Releases++
	m.held = false
	return nil
}

// Held reports whether someone holds the lock
func (m *MockFileLock) Held() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held
}

// HoldElsewhere marks the lock as taken by another process
func (m *MockFileLock) HoldElsewhere() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held = true
}

// FailWith makes every later attempt return err
func (m *MockFileLock) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// MockFileLockFactory returns the same MockFileLock for a path every time
type MockFileLockFactory struct {
	mu    sync.Mutex
	locks map[string]*MockFileLock
}

func NewMockFileLockFactory() *MockFileLockFactory {
	return &MockFileLockFactory{locks: map[string]*MockFileLock{}}
}

func (f *MockFileLockFactory) New(path string) FileLock {
	return f.Lock(path)
}

// Lock returns the lock for path, creating it on first use
func (f *MockFileLockFactory) Lock(path string) *MockFileLock {
	f.mu.Lock()
	defer f.mu.Unlock()
	lock, ok := f.locks[path]
	if !ok {
		lock = &MockFileLock{}
		f.locks[path] = lock
	}
	return lock
}
