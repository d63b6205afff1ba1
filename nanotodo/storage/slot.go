package storage

import (
	"errors"
	"sync"
)

var (
	// ErrSlotEmpty is returned by Slot.Read when nothing has been stored
	ErrSlotEmpty = errors.New("storage slot is empty")

	// ErrLockTimeout is returned when the slot lock could not be acquired
	ErrLockTimeout = errors.New("timed out acquiring storage lock")
)

// Slot is a single named storage location holding one serialized value
type Slot interface {
	// Read returns the stored bytes, or ErrSlotEmpty when the slot is
	// absent or empty
	Read() ([]byte, error)

	// Write replaces the stored bytes. On failure the previous value is
	// left in place.
	Write(data []byte) error

	// Remove deletes the slot. Removing an absent slot is not an error.
	Remove() error
}

// MemorySlot keeps the value in memory. The error fields make the matching
// operation fail, for simulating unavailable or full storage.
type MemorySlot struct {
	mu    sync.RWMutex
	data  []byte
	isSet bool

	ReadError   error
	WriteError  error
	RemoveError error
}

// NewMemorySlot returns an empty in-memory slot
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// Read implements Slot.Read
func (m *MemorySlot) Read() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ReadError != nil {
		return nil, m.ReadError
	}
	if !m.isSet || len(m.data) == 0 {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), m.data...), nil
}

// Write implements Slot.Write
func (m *MemorySlot) Write(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteError != nil {
		return m.WriteError
	}
	m.data = append([]byte(nil), data...)
	m.isSet = true
	return nil
}

// Remove implements Slot.Remove
func (m *MemorySlot) Remove() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RemoveError != nil {
		return m.RemoveError
	}
	m.data = nil
	m.isSet = false
	return nil
}

// Set stores raw bytes, bypassing the error hooks
func (m *MemorySlot) Set(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.isSet = true
}
