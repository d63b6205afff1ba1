package testutil

import (
	"testing"

	"github.com/arthur-debert/nanotodo/types"
	"github.com/google/go-cmp/cmp"
)

// IDs returns the ids of todos in order
func IDs(todos []types.Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.ID
	}
	return out
}

// AssertOrder checks that todos carry exactly the expected ids, in order
func AssertOrder(t *testing.T, todos []types.Todo, expected ...string) {
	t.Helper()
	if diff := cmp.Diff(expected, IDs(todos)); diff != "" {
		t.Errorf("unexpected todo order (-want +got):\n%s", diff)
	}
}

// AssertStateEqual compares two states field by field
func AssertStateEqual(t *testing.T, want, got types.State) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

// AssertCompletedLast checks the partition rule: no incomplete todo
// follows a completed one.
func AssertCompletedLast(t *testing.T, todos []types.Todo) {
	t.Helper()
	seenCompleted := false
	for _, todo := range todos {
		if todo.Completed {
			seenCompleted = true
			continue
		}
		if seenCompleted {
			t.Errorf("incomplete todo %s appears after a completed todo", todo.ID)
			return
		}
	}
}
