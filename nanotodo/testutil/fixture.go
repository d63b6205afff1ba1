// Package testutil provides fixtures, deterministic clocks and assertions
// shared by the nanotodo package tests.
package testutil

import (
	"fmt"
	"sync"
	"time"

	"github.com/arthur-debert/nanotodo/types"
)

// Epoch is the base instant used by fixtures
var Epoch = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

// Day returns Epoch plus n days
func Day(n int) time.Time {
	return Epoch.AddDate(0, 0, n)
}

// Clock is a deterministic time source that advances by Step on each call
type Clock struct {
	mu   sync.Mutex
	next time.Time
	Step time.Duration
}

// NewClock returns a clock whose first reading is start
func NewClock(start time.Time, step time.Duration) *Clock {
	return &Clock{next: start, Step: step}
}

// Now returns the current reading and advances the clock
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(c.Step)
	return now
}

// Sequence generates ids "prefix-1", "prefix-2", ...
type Sequence struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequence returns an id generator with the given prefix
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// NewID implements ids.Generator
func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", s.prefix, s.n)
}

// TodoOption customizes a fixture todo
type TodoOption func(*types.Todo)

// Completed marks the todo done
func Completed() TodoOption {
	return func(t *types.Todo) { t.Completed = true }
}

// WithPriority sets the priority
func WithPriority(p types.Priority) TodoOption {
	return func(t *types.Todo) { t.Priority = p }
}

// WithDue sets the due date (YYYY-MM-DD)
func WithDue(date string) TodoOption {
	return func(t *types.Todo) { t.DueDate = date }
}

// WithCategory sets the category name
func WithCategory(name string) TodoOption {
	return func(t *types.Todo) { t.Category = name }
}

// WithDescription sets the description
func WithDescription(d string) TodoOption {
	return func(t *types.Todo) { t.Description = d }
}

// WithTags sets the tags
func WithTags(tags ...string) TodoOption {
	return func(t *types.Todo) { t.Tags = tags }
}

// CreatedOn sets both timestamps to Day(n)
func CreatedOn(n int) TodoOption {
	return func(t *types.Todo) {
		t.CreatedAt = Day(n)
		t.UpdatedAt = Day(n)
	}
}

// NewTodo builds a medium-priority, incomplete todo created at Epoch
func NewTodo(id, title string, opts ...TodoOption) types.Todo {
	t := types.Todo{
		ID:        id,
		Title:     title,
		Priority:  types.PriorityMedium,
		Tags:      []string{},
		CreatedAt: Epoch,
		UpdatedAt: Epoch,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// StateWith returns a fresh state holding the given todos
func StateWith(todos ...types.Todo) types.State {
	s := types.NewState()
	s.Todos = append(s.Todos, todos...)
	return s
}
