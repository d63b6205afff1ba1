// Package types holds the data model shared by every nanotodo package.
// Field names in JSON tags are the persisted layout and must not change.
package types

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout of Todo.DueDate (ISO 8601 calendar date).
const DateLayout = "2006-01-02"

// Priority is the urgency of a todo
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities returns the valid priorities, most urgent first
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid reports whether p is one of the known priorities
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities for sorting: high=0, medium=1, low=2.
// Unknown values sort after all known ones.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// ParsePriority parses a case-insensitive priority name
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority %q (use low, medium or high)", s)
	}
	return p, nil
}

// Todo is a single task record
type Todo struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Completed   bool      `json:"completed" yaml:"completed"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	DueDate     string    `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	Category    string    `json:"category,omitempty" yaml:"category,omitempty"`
	Tags        []string  `json:"tags" yaml:"tags"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Due returns the parsed due date. ok is false when the todo has no due
// date or the stored value is not a calendar date.
func (t Todo) Due() (due time.Time, ok bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Clone returns a copy of t that shares no slices with it
func (t Todo) Clone() Todo {
	if t.Tags != nil {
		t.Tags = append(make([]string, 0, len(t.Tags)), t.Tags...)
	}
	return t
}

// Category is a named, colored label. Todos reference categories by name.
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}
