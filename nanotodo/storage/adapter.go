// Package storage persists the nanotodo state to a single named slot.
//
// Persistence is best effort. The Adapter never returns an error: failed
// writes and removes are logged and dropped, and any problem on read
// (missing slot, I/O error, text that is not JSON, JSON of the wrong
// shape) is logged and reported as "no value".
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arthur-debert/nanotodo/types"
)

// Operation names reported to the Observer
const (
	OpSave  = "save"
	OpLoad  = "load"
	OpClear = "clear"
)

// Observer is told about the outcome of every persistence operation
type Observer interface {
	PersistSucceeded(op string)
	PersistFailed(op string, err error)
}

type nopObserver struct{}

func (nopObserver) PersistSucceeded(string)     {}
func (nopObserver) PersistFailed(string, error) {}

// Adapter saves and loads the whole state as one JSON document
type Adapter struct {
	slot     Slot
	logger   *slog.Logger
	observer Observer
}

// AdapterOption configures an Adapter
type AdapterOption func(*Adapter)

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// WithObserver registers an observer for operation outcomes
func WithObserver(o Observer) AdapterOption {
	return func(a *Adapter) {
		a.observer = o
	}
}

// NewAdapter returns an adapter persisting to slot
func NewAdapter(slot Slot, opts ...AdapterOption) *Adapter {
	a := &Adapter{slot: slot}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.observer == nil {
		a.observer = nopObserver{}
	}
	a.logger = a.logger.With("component", "storage")
	return a
}

// Save writes state to the slot. Failures are logged, never returned.
func (a *Adapter) Save(state types.State) {
	data, err := json.Marshal(state)
	if err != nil {
		a.fail(OpSave, fmt.Errorf("failed to marshal state: %w", err))
		return
	}
	if err := a.slot.Write(data); err != nil {
		a.fail(OpSave, err)
		return
	}
	a.logger.Debug("state saved", "todos", len(state.Todos), "categories", len(state.Categories), "bytes", len(data))
	a.observer.PersistSucceeded(OpSave)
}

// Load reads the state back. ok is false when there is no usable value.
func (a *Adapter) Load() (state types.State, ok bool) {
	data, err := a.slot.Read()
	if errors.Is(err, ErrSlotEmpty) {
		a.logger.Debug("no saved state")
		return types.State{}, false
	}
	if err != nil {
		a.fail(OpLoad, err)
		return types.State{}, false
	}

	if err := validateShape(data); err != nil {
		a.fail(OpLoad, err)
		return types.State{}, false
	}
	if err := json.Unmarshal(data, &state); err != nil {
		a.fail(OpLoad, fmt.Errorf("decode state: %w", err))
		return types.State{}, false
	}

	a.logger.Debug("state loaded", "todos", len(state.Todos), "categories", len(state.Categories))
	a.observer.PersistSucceeded(OpLoad)
	return state, true
}

// Clear removes the slot. Failures are logged, never returned.
func (a *Adapter) Clear() {
	if err := a.slot.Remove(); err != nil {
		a.fail(OpClear, err)
		return
	}
	a.logger.Debug("storage cleared")
	a.observer.PersistSucceeded(OpClear)
}

func (a *Adapter) fail(op string, err error) {
	a.logger.Warn("persistence failed", "op", op, "error", err)
	a.observer.PersistFailed(op, err)
}
