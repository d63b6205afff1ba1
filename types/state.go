package types

import (
	"fmt"
	"strings"
)

// SortBy selects the ordering key of the derived todo list
type SortBy string

const (
	SortByCreatedAt SortBy = "createdAt"
	SortByDueDate   SortBy = "dueDate"
	SortByPriority  SortBy = "priority"
)

// IsValid reports whether s is a known sort key
func (s SortBy) IsValid() bool {
	switch s {
	case SortByCreatedAt, SortByDueDate, SortByPriority:
		return true
	}
	return false
}

// ParseSortBy accepts the persisted spelling as well as the CLI
// spellings created-at and due-date, case-insensitively.
func ParseSortBy(s string) (SortBy, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "")) {
	case "createdat", "created":
		return SortByCreatedAt, nil
	case "duedate", "due":
		return SortByDueDate, nil
	case "priority":
		return SortByPriority, nil
	}
	return "", fmt.Errorf("invalid sort key %q (use createdAt, dueDate or priority)", s)
}

// Filter is the current view criteria. Empty Category or Priority means
// "match all".
type Filter struct {
	SearchText    string   `json:"searchText" yaml:"searchText"`
	Category      string   `json:"category,omitempty" yaml:"category,omitempty"`
	Priority      Priority `json:"priority,omitempty" yaml:"priority,omitempty"`
	ShowCompleted bool     `json:"showCompleted" yaml:"showCompleted"`
	SortBy        SortBy   `json:"sortBy" yaml:"sortBy"`
}

// DefaultFilter returns the criteria of a fresh state
func DefaultFilter() Filter {
	return Filter{
		ShowCompleted: true,
		SortBy:        SortByCreatedAt,
	}
}

// State is the single persisted unit of the application
type State struct {
	Todos      []Todo     `json:"todos" yaml:"todos"`
	Categories []Category `json:"categories" yaml:"categories"`
	Filter     Filter     `json:"filter" yaml:"filter"`
}

// NewState returns the empty state used on first run
func NewState() State {
	return State{
		Todos:      []Todo{},
		Categories: []Category{},
		Filter:     DefaultFilter(),
	}
}

// Clone deep-copies the state so the copy can be handed out without
// aliasing the original's slices.
func (s State) Clone() State {
	out := State{Filter: s.Filter}
	if s.Todos != nil {
		out.Todos = make([]Todo, len(s.Todos))
		for i, t := range s.Todos {
			out.Todos[i] = t.Clone()
		}
	}
	if s.Categories != nil {
		out.Categories = append(make([]Category, 0, len(s.Categories)), s.Categories...)
	}
	return out
}

// FindTodo returns the todo with the given id
func (s State) FindTodo(id string) (Todo, bool) {
	for _, t := range s.Todos {
		if t.ID == id {
			return t, true
		}
	}
	return Todo{}, false
}

// FindCategory returns the category with the given id
func (s State) FindCategory(id string) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
