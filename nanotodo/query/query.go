// Package query derives the displayed todo list from a state.
//
// The pipeline is search, category, priority and completion filters
// (conjunctive), followed by the completed-last partition and a stable
// sort on the filter's key. Nothing here mutates its input.
package query

import (
	"sync"

	"github.com/arthur-debert/nanotodo/types"
)

// Visible returns the todos to display for state
func Visible(state types.State) []types.Todo {
	return Sort(Filter(state.Todos, state.Filter), state.Filter.SortBy)
}

// Memo caches the result of Visible for one state revision. The owner of
// the state bumps the revision whenever the state changes.
type Memo struct {
	mu       sync.Mutex
	valid    bool
	revision uint64
	todos    []types.Todo
}

// Visible returns Visible(state), recomputing only when revision differs
// from the cached one. The returned slice is a copy the caller may keep.
func (m *Memo) Visible(revision uint64, state types.State) []types.Todo {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.valid || m.revision != revision {
		m.todos = Visible(state)
		m.revision = revision
		m.valid = true
	}

	out := make([]types.Todo, len(m.todos))
	for i, t := range m.todos {
		out[i] = t.Clone()
	}
	return out
}

// Invalidate drops the cached result
func (m *Memo) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.valid = false
	m.todos = nil
}
