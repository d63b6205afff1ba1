package store

import (
	"testing"
	"time"

	"github.com/arthur-debert/nanotodo/nanotodo/testutil"
	"github.com/arthur-debert/nanotodo/types"
	"github.com/google/go-cmp/cmp"
)

func newTestReducer() *Reducer {
	clock := testutil.NewClock(testutil.Day(10), time.Minute)
	return NewReducer(WithTimeFunc(clock.Now))
}

func seedState() types.State {
	s := testutil.StateWith(
		testutil.NewTodo("a", "Buy milk", testutil.CreatedOn(1), testutil.WithTags("home", "home")),
		testutil.NewTodo("b", "Write report", testutil.CreatedOn(2), testutil.WithCategory("Work")),
		testutil.NewTodo("c", "Call mom", testutil.CreatedOn(3)),
	)
	s.Categories = []types.Category{
		{ID: "cat-1", Name: "Work", Color: "#ff0000"},
		{ID: "cat-2", Name: "Home", Color: "#00ff00"},
	}
	return s
}

func TestReducerAddTodo(t *testing.T) {
	r := newTestReducer()
	state := types.NewState()

	for _, id := range []string{"1", "2", "3"} {
		state = r.Reduce(state, AddTodo{Todo: testutil.NewTodo(id, "todo "+id)})
	}

	testutil.AssertOrder(t, state.Todos, "1", "2", "3")
}

func TestReducerAddTodoAcceptsDuplicateIDs(t *testing.T) {
	r := newTestReducer()
	state := testutil.StateWith(testutil.NewTodo("a", "first"))

	state = r.Reduce(state, AddTodo{Todo: testutil.NewTodo("a", "second")})

	testutil.AssertOrder(t, state.Todos, "a", "a")
}

func TestReducerUpdateTodo(t *testing.T) {
	t.Run("merges only the given fields", func(t *testing.T) {
		r := newTestReducer()
		state := seedState()

		next := r.Reduce(state, UpdateTodo{
			ID:    "b",
			Patch: types.TodoPatch{Title: types.Ptr("Write final report")},
		})

		got, _ := next.FindTodo("b")
		want := state.Todos[1]
		want.Title = "Write final report"
		want.UpdatedAt = testutil.Day(10)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("updated todo mismatch (-want +got):\n%s", diff)
		}
		testutil.AssertOrder(t, next.Todos, "a", "b", "c")
	})

	t.Run("buy milk scenario", func(t *testing.T) {
		r := newTestReducer()
		created := testutil.NewTodo("m", "Buy milk", testutil.CreatedOn(0))
		state := r.Reduce(types.NewState(), AddTodo{Todo: created})

		state = r.Reduce(state, UpdateTodo{ID: "m", Patch: types.TodoPatch{Title: types.Ptr("Buy oat milk")}})

		got, ok := state.FindTodo("m")
		if !ok {
			t.Fatal("todo m not found")
		}
		if got.Title != "Buy oat milk" {
			t.Errorf("expected title %q, got %q", "Buy oat milk", got.Title)
		}
		if !got.UpdatedAt.After(got.CreatedAt) {
			t.Errorf("expected updatedAt %v after createdAt %v", got.UpdatedAt, got.CreatedAt)
		}
	})

	t.Run("replaces tags without sharing the patch slice", func(t *testing.T) {
		r := newTestReducer()
		tags := []string{"x", "y"}

		next := r.Reduce(seedState(), UpdateTodo{ID: "a", Patch: types.TodoPatch{Tags: &tags}})
		tags[0] = "mutated"

		got, _ := next.FindTodo("a")
		if diff := cmp.Diff([]string{"x", "y"}, got.Tags); diff != "" {
			t.Errorf("tags mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestReducerToggleTodo(t *testing.T) {
	r := newTestReducer()
	state := seedState()

	once := r.Reduce(state, ToggleTodo{ID: "c"})
	twice := r.Reduce(once, ToggleTodo{ID: "c"})

	first, _ := once.FindTodo("c")
	if !first.Completed {
		t.Error("expected todo c to be completed after one toggle")
	}
	if !first.UpdatedAt.Equal(testutil.Day(10)) {
		t.Errorf("expected updatedAt to be refreshed, got %v", first.UpdatedAt)
	}
	second, _ := twice.FindTodo("c")
	if second.Completed {
		t.Error("expected todo c to be incomplete after two toggles")
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Error("expected second toggle to refresh updatedAt again")
	}
}

func TestReducerDeleteTodo(t *testing.T) {
	r := newTestReducer()

	next := r.Reduce(seedState(), DeleteTodo{ID: "b"})

	testutil.AssertOrder(t, next.Todos, "a", "c")
}

func TestReducerCategories(t *testing.T) {
	t.Run("add appends without uniqueness check", func(t *testing.T) {
		r := newTestReducer()

		next := r.Reduce(seedState(), AddCategory{Category: types.Category{ID: "cat-3", Name: "work", Color: "blue"}})

		if len(next.Categories) != 3 {
			t.Fatalf("expected 3 categories, got %d", len(next.Categories))
		}
		if next.Categories[2].ID != "cat-3" {
			t.Errorf("expected new category last, got %s", next.Categories[2].ID)
		}
	})

	t.Run("delete leaves todos referencing the name", func(t *testing.T) {
		r := newTestReducer()
		state := seedState()

		next := r.Reduce(state, DeleteCategory{ID: "cat-1"})

		if len(next.Categories) != 1 || next.Categories[0].ID != "cat-2" {
			t.Errorf("expected only cat-2 to remain, got %+v", next.Categories)
		}
		if diff := cmp.Diff(state.Todos, next.Todos); diff != "" {
			t.Errorf("todos changed on category delete (-want +got):\n%s", diff)
		}
		orphan, _ := next.FindTodo("b")
		if orphan.Category != "Work" {
			t.Errorf("expected orphaned category name to be kept, got %q", orphan.Category)
		}
	})
}

func TestReducerSetFilter(t *testing.T) {
	r := newTestReducer()
	state := seedState()
	state.Filter.SearchText = "milk"

	next := r.Reduce(state, SetFilter{Patch: types.FilterPatch{
		ShowCompleted: types.Ptr(false),
		SortBy:        types.Ptr(types.SortByPriority),
	}})

	want := types.Filter{
		SearchText:    "milk",
		ShowCompleted: false,
		SortBy:        types.SortByPriority,
	}
	if diff := cmp.Diff(want, next.Filter); diff != "" {
		t.Errorf("filter mismatch (-want +got):\n%s", diff)
	}
}

func TestReducerLoadState(t *testing.T) {
	r := newTestReducer()
	loaded := seedState()

	next := r.Reduce(testutil.StateWith(testutil.NewTodo("zzz", "stale")), LoadState{State: loaded})

	testutil.AssertStateEqual(t, loaded, next)
}

func TestReducerNoOps(t *testing.T) {
	actions := []struct {
		name   string
		action Action
	}{
		{"update missing", UpdateTodo{ID: "missing", Patch: types.TodoPatch{Title: types.Ptr("x")}}},
		{"update with empty patch", UpdateTodo{ID: "a"}},
		{"delete missing", DeleteTodo{ID: "missing"}},
		{"toggle missing", ToggleTodo{ID: "missing"}},
		{"delete missing category", DeleteCategory{ID: "missing"}},
		{"nil action", nil},
	}

	for _, tc := range actions {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestReducer()
			state := seedState()

			next, changed := r.Apply(state, tc.action)

			if changed {
				t.Error("expected no change to be reported")
			}
			testutil.AssertStateEqual(t, seedState(), next)
		})
	}
}

func TestReducerDoesNotMutateInput(t *testing.T) {
	actions := []Action{
		AddTodo{Todo: testutil.NewTodo("d", "new")},
		UpdateTodo{ID: "a", Patch: types.TodoPatch{Title: types.Ptr("changed"), Tags: &[]string{"t"}}},
		DeleteTodo{ID: "a"},
		ToggleTodo{ID: "b"},
		AddCategory{Category: types.Category{ID: "cat-9", Name: "Nine"}},
		DeleteCategory{ID: "cat-1"},
		SetFilter{Patch: types.FilterPatch{SearchText: types.Ptr("x")}},
		LoadState{State: types.NewState()},
	}

	for _, action := range actions {
		t.Run(string(action.Kind()), func(t *testing.T) {
			state := seedState()
			before := state.Clone()

			first := NewReducer(WithTimeFunc(func() time.Time { return testutil.Day(5) })).Reduce(state, action)
			second := NewReducer(WithTimeFunc(func() time.Time { return testutil.Day(5) })).Reduce(state, action)

			testutil.AssertStateEqual(t, before, state)
			testutil.AssertStateEqual(t, first, second)
		})
	}
}
