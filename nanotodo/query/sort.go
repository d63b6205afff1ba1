package query

import (
	"sort"

	"github.com/arthur-debert/nanotodo/types"
)

// Sort returns a sorted copy of todos. Incomplete todos always precede
// completed ones; within each group the key is applied. Equal keys keep
// their input order.
func Sort(todos []types.Todo, by types.SortBy) []types.Todo {
	out := make([]types.Todo, len(todos))
	copy(out, todos)

	less := lessFor(by)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Completed != out[j].Completed {
			return !out[i].Completed
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFor(by types.SortBy) func(a, b types.Todo) bool {
	switch by {
	case types.SortByDueDate:
		return byDueDate
	case types.SortByPriority:
		return byPriority
	default:
		return byNewest
	}
}

func byNewest(a, b types.Todo) bool {
	return a.CreatedAt.After(b.CreatedAt)
}

// byDueDate orders ascending; todos without a usable due date go last and
// rank equal among themselves.
func byDueDate(a, b types.Todo) bool {
	da, okA := a.Due()
	db, okB := b.Due()
	switch {
	case okA && okB:
		return da.Before(db)
	case okA:
		return true
	default:
		return false
	}
}

func byPriority(a, b types.Todo) bool {
	return a.Priority.Rank() < b.Priority.Rank()
}
