package app

import "sync"

// OperationType defines whether an operation is read or write.
// Read operations share the lock; write operations are exclusive.
type OperationType int

const (
	// ReadOperation indicates an operation that only reads state
	ReadOperation OperationType = iota

	// WriteOperation indicates an operation that dispatches an action
	WriteOperation
)

// LockManager centralizes the App's locking so every entry point takes the
// right kind of lock and releases it on return, even on panic.
type LockManager struct {
	mu sync.RWMutex
}

// NewLockManager creates a new lock manager instance
func NewLockManager() *LockManager {
	return &LockManager{}
}

// Execute runs fn while holding the lock for opType
//
// Example:
//
//	lm.Execute(ReadOperation, func() {
//	    // Safe to read state here
//	})
func (lm *LockManager) Execute(opType OperationType, fn func()) {
	switch opType {
	case ReadOperation:
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	case WriteOperation:
		lm.mu.Lock()
		defer lm.mu.Unlock()
	}
	fn()
}
