package query

import (
	"strings"

	"github.com/arthur-debert/nanotodo/types"
)

// Filter returns the todos that satisfy every predicate of f, in input
// order. The completion predicate only applies when ShowCompleted is false.
func Filter(todos []types.Todo, f types.Filter) []types.Todo {
	search := strings.ToLower(f.SearchText)
	out := make([]types.Todo, 0, len(todos))
	for _, t := range todos {
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if !f.ShowCompleted && t.Completed {
			continue
		}
		out = append(out, t)
	}
	return out
}

// matchesSearch is a case-insensitive substring search over title and
// description. searchLower must already be lower-cased.
func matchesSearch(t types.Todo, searchLower string) bool {
	if strings.Contains(strings.ToLower(t.Title), searchLower) {
		return true
	}
	if t.Description != "" && strings.Contains(strings.ToLower(t.Description), searchLower) {
		return true
	}
	return false
}
