// Package store implements the nanotodo reducer: a pure transition from
// (state, action) to a new state.
//
// The reducer never mutates the state it is given. Every list operation
// builds a new slice, and entries that are not touched keep their relative
// order. Lookups by an unknown id are not errors; they leave the state as
// it was.
//
// The only impure input is the current time, used to stamp UpdatedAt. It
// comes from the reducer's time function, which tests replace with
// WithTimeFunc.
package store

import (
	"time"

	"github.com/arthur-debert/nanotodo/types"
)

// Reducer applies actions to states
type Reducer struct {
	// timeFunc is used to get the current time, defaults to time.Now
	timeFunc func() time.Time
}

// Option configures a Reducer
type Option func(*Reducer)

// WithTimeFunc sets the clock used to stamp UpdatedAt
func WithTimeFunc(fn func() time.Time) Option {
	return func(r *Reducer) {
		r.timeFunc = fn
	}
}

// NewReducer creates a reducer
func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{timeFunc: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	if r.timeFunc == nil {
		r.timeFunc = time.Now
	}
	return r
}

// Reduce returns the state that results from applying action to state
func (r *Reducer) Reduce(state types.State, action Action) types.State {
	next, _ := r.Apply(state, action)
	return next
}

// Apply is Reduce plus a flag telling whether anything changed. A lookup
// miss, an empty update patch or a nil action returns the input state and
// false.
func (r *Reducer) Apply(state types.State, action Action) (types.State, bool) {
	switch a := action.(type) {
	case AddTodo:
		state.Todos = appendTodo(state.Todos, a.Todo.Clone())
		return state, true

	case UpdateTodo:
		i := indexOfTodo(state.Todos, a.ID)
		if i < 0 || a.Patch.IsEmpty() {
			return state, false
		}
		updated := a.Patch.ApplyTo(state.Todos[i])
		updated.UpdatedAt = r.timeFunc()
		state.Todos = replaceTodo(state.Todos, i, updated)
		return state, true

	case DeleteTodo:
		i := indexOfTodo(state.Todos, a.ID)
		if i < 0 {
			return state, false
		}
		state.Todos = removeAt(state.Todos, i)
		return state, true

	case ToggleTodo:
		i := indexOfTodo(state.Todos, a.ID)
		if i < 0 {
			return state, false
		}
		toggled := state.Todos[i].Clone()
		toggled.Completed = !toggled.Completed
		toggled.UpdatedAt = r.timeFunc()
		state.Todos = replaceTodo(state.Todos, i, toggled)
		return state, true

	case AddCategory:
		next := make([]types.Category, len(state.Categories), len(state.Categories)+1)
		copy(next, state.Categories)
		state.Categories = append(next, a.Category)
		return state, true

	case DeleteCategory:
		i := -1
		for j, c := range state.Categories {
			if c.ID == a.ID {
				i = j
				break
			}
		}
		if i < 0 {
			return state, false
		}
		state.Categories = removeAt(state.Categories, i)
		return state, true

	case SetFilter:
		state.Filter = a.Patch.ApplyTo(state.Filter)
		return state, true

	case LoadState:
		return a.State, true
	}

	// nil action
	return state, false
}

func indexOfTodo(todos []types.Todo, id string) int {
	for i, t := range todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func appendTodo(todos []types.Todo, t types.Todo) []types.Todo {
	next := make([]types.Todo, len(todos), len(todos)+1)
	copy(next, todos)
	return append(next, t)
}

func replaceTodo(todos []types.Todo, i int, t types.Todo) []types.Todo {
	next := make([]types.Todo, len(todos))
	copy(next, todos)
	next[i] = t
	return next
}

func removeAt[T any](items []T, i int) []T {
	next := make([]T, 0, len(items)-1)
	next = append(next, items[:i]...)
	return append(next, items[i+1:]...)
}
