package app

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/arthur-debert/nanotodo/nanotodo/storage"
	"github.com/arthur-debert/nanotodo/nanotodo/testutil"
	"github.com/arthur-debert/nanotodo/types"
	"github.com/google/go-cmp/cmp"
)

// fakePersister records every call
type fakePersister struct {
	mu        sync.Mutex
	stored    *types.State
	saves     []types.State
	loadCalls int
	clears    int
}

func (f *fakePersister) Save(state types.State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := state.Clone()
	f.saves = append(f.saves, s)
	f.stored = &s
}

func (f *fakePersister) Load() (types.State, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadCalls++
	if f.stored == nil {
		return types.State{}, false
	}
	return f.stored.Clone(), true
}

func (f *fakePersister) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	f.stored = nil
}

type countingRecorder struct {
	actions map[string]int
	noops   map[string]int
	last    types.State
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{actions: map[string]int{}, noops: map[string]int{}}
}

func (c *countingRecorder) ActionApplied(kind string, changed bool) {
	c.actions[kind]++
	if !changed {
		c.noops[kind]++
	}
}

func (c *countingRecorder) ObserveState(s types.State) { c.last = s }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApp(p Persister, opts ...Option) *App {
	clock := testutil.NewClock(testutil.Day(0), time.Second)
	base := []Option{
		WithTimeFunc(clock.Now),
		WithIDGenerator(testutil.NewSequence("id")),
		WithLogger(discardLogger()),
	}
	return New(p, append(base, opts...)...)
}

func TestStartLoadsPersistedState(t *testing.T) {
	persisted := testutil.StateWith(testutil.NewTodo("saved", "from disk"))
	p := &fakePersister{stored: &persisted}
	a := newTestApp(p)

	a.Start()

	testutil.AssertStateEqual(t, persisted, a.State())
	if !a.Initialized() {
		t.Error("expected app to be initialized")
	}
	if len(p.saves) != 0 {
		t.Errorf("loaded state must not be re-saved, got %d saves", len(p.saves))
	}
}

func TestStartWithNothingPersisted(t *testing.T) {
	p := &fakePersister{}
	a := newTestApp(p)

	a.Start()

	testutil.AssertStateEqual(t, types.NewState(), a.State())
	if len(p.saves) != 0 {
		t.Errorf("expected no saves, got %d", len(p.saves))
	}
}

func TestStartRunsOnce(t *testing.T) {
	p := &fakePersister{}
	a := newTestApp(p)

	a.Start()
	a.AddTodo(TodoInput{Title: "kept"})
	a.Start()

	if p.loadCalls != 1 {
		t.Errorf("expected one load, got %d", p.loadCalls)
	}
	testutil.AssertOrder(t, a.State().Todos, "id-1")
}

func TestNoSaveBeforeStart(t *testing.T) {
	persisted := testutil.StateWith(testutil.NewTodo("saved", "from disk"))
	p := &fakePersister{stored: &persisted}
	a := newTestApp(p)

	a.AddTodo(TodoInput{Title: "early"})
	if len(p.saves) != 0 {
		t.Fatalf("dispatch before Start must not save, got %d saves", len(p.saves))
	}

	a.Start()

	// The load replaces the pre-start state wholesale
	testutil.AssertOrder(t, a.State().Todos, "saved")

	a.AddTodo(TodoInput{Title: "late"})
	if len(p.saves) != 1 {
		t.Fatalf("expected one save after Start, got %d", len(p.saves))
	}
	testutil.AssertOrder(t, p.saves[0].Todos, "saved", "id-2")
}

func TestEveryChangeIsSaved(t *testing.T) {
	p := &fakePersister{}
	a := newTestApp(p)
	a.Start()

	todo := a.AddTodo(TodoInput{Title: "one"})
	a.ToggleTodo(todo.ID)
	a.UpdateTodo(todo.ID, types.TodoPatch{Description: types.Ptr("details")})
	cat := a.AddCategory("Work", "#f00")
	a.SetFilter(types.FilterPatch{SortBy: types.Ptr(types.SortByPriority)})
	a.DeleteCategory(cat.ID)
	a.DeleteTodo(todo.ID)

	if len(p.saves) != 7 {
		t.Fatalf("expected 7 saves, got %d", len(p.saves))
	}
	testutil.AssertStateEqual(t, a.State(), p.saves[6])
}

func TestNoOpDispatchDoesNotSave(t *testing.T) {
	p := &fakePersister{}
	recorder := newCountingRecorder()
	a := newTestApp(p, WithRecorder(recorder))
	a.Start()
	existing := a.AddTodo(TodoInput{Title: "existing"})
	before := a.State()
	savesBefore := len(p.saves)

	a.UpdateTodo("missing", types.TodoPatch{Title: types.Ptr("x")})
	a.UpdateTodo(existing.ID, types.TodoPatch{})
	a.DeleteTodo("missing")
	a.ToggleTodo("missing")
	a.DeleteCategory("missing")

	if got := len(p.saves) - savesBefore; got != 0 {
		t.Errorf("expected no saves, got %d", got)
	}
	testutil.AssertStateEqual(t, before, a.State())
	if recorder.noops["delete_todo"] != 1 || recorder.actions["toggle_todo"] != 1 {
		t.Errorf("expected no-ops to be recorded, got actions=%v noops=%v", recorder.actions, recorder.noops)
	}
}

func TestAddTodo(t *testing.T) {
	a := newTestApp(&fakePersister{})
	a.Start()

	todo := a.AddTodo(TodoInput{
		Title:    "Buy milk",
		Category: "Home",
		Tags:     []string{"shop"},
	})

	want := types.Todo{
		ID:        "id-1",
		Title:     "Buy milk",
		Priority:  types.PriorityMedium,
		Category:  "Home",
		Tags:      []string{"shop"},
		CreatedAt: testutil.Day(0),
		UpdatedAt: testutil.Day(0),
	}
	if diff := cmp.Diff(want, todo); diff != "" {
		t.Errorf("todo mismatch (-want +got):\n%s", diff)
	}
	testutil.AssertStateEqual(t, testutil.StateWith(want), a.State())
}

func TestUpdateRefreshesUpdatedAt(t *testing.T) {
	a := newTestApp(&fakePersister{})
	a.Start()

	todo := a.AddTodo(TodoInput{Title: "Buy milk"})
	a.UpdateTodo(todo.ID, types.TodoPatch{Title: types.Ptr("Buy oat milk")})

	got, ok := a.State().FindTodo(todo.ID)
	if !ok {
		t.Fatal("todo not found")
	}
	if got.Title != "Buy oat milk" {
		t.Errorf("expected updated title, got %q", got.Title)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Errorf("expected updatedAt %v after createdAt %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestVisibleFollowsState(t *testing.T) {
	a := newTestApp(&fakePersister{})
	a.Start()

	first := a.AddTodo(TodoInput{Title: "first"})
	second := a.AddTodo(TodoInput{Title: "second"})
	testutil.AssertOrder(t, a.Visible(), second.ID, first.ID)

	a.ToggleTodo(second.ID)
	testutil.AssertOrder(t, a.Visible(), first.ID, second.ID)

	a.SetFilter(types.FilterPatch{ShowCompleted: types.Ptr(false)})
	testutil.AssertOrder(t, a.Visible(), first.ID)
}

func TestStateIsASnapshot(t *testing.T) {
	a := newTestApp(&fakePersister{})
	a.Start()
	a.AddTodo(TodoInput{Title: "original", Tags: []string{"x"}})

	snapshot := a.State()
	snapshot.Todos[0].Title = "changed"
	snapshot.Todos[0].Tags[0] = "changed"

	got := a.State().Todos[0]
	if got.Title != "original" || got.Tags[0] != "x" {
		t.Errorf("snapshot mutation leaked into the app: %+v", got)
	}
}

func TestClearStorage(t *testing.T) {
	p := &fakePersister{}
	a := newTestApp(p)
	a.Start()
	a.AddTodo(TodoInput{Title: "one"})

	a.ClearStorage()

	if p.clears != 1 {
		t.Errorf("expected one clear, got %d", p.clears)
	}
	if len(a.State().Todos) != 1 {
		t.Error("in-memory state should survive a storage clear")
	}

	fresh := newTestApp(p)
	fresh.Start()
	testutil.AssertStateEqual(t, types.NewState(), fresh.State())
}

func TestPersistenceAcrossApps(t *testing.T) {
	slot := storage.NewMemorySlot()
	adapter := storage.NewAdapter(slot, storage.WithLogger(discardLogger()))

	first := newTestApp(adapter)
	first.Start()
	todo := first.AddTodo(TodoInput{Title: "survives", Priority: types.PriorityHigh, DueDate: "2024-05-01"})
	first.AddCategory("Work", "blue")
	first.SetFilter(types.FilterPatch{SearchText: types.Ptr("surv")})

	second := New(adapter, WithLogger(discardLogger()))
	second.Start()

	testutil.AssertStateEqual(t, first.State(), second.State())
	testutil.AssertOrder(t, second.Visible(), todo.ID)
}

func TestUncheckedValuesSurviveReload(t *testing.T) {
	adapter := storage.NewAdapter(storage.NewMemorySlot(), storage.WithLogger(discardLogger()))

	first := newTestApp(adapter)
	first.Start()
	kept := first.AddTodo(TodoInput{Title: "kept"})
	odd := first.AddTodo(TodoInput{Title: "odd", Priority: types.Priority("urgent")})
	first.SetFilter(types.FilterPatch{SortBy: types.Ptr(types.SortBy(""))})

	second := newTestApp(adapter, WithIDGenerator(testutil.NewSequence("second")))
	second.Start()

	testutil.AssertStateEqual(t, first.State(), second.State())
	for _, id := range []string{kept.ID, odd.ID} {
		if _, ok := second.State().FindTodo(id); !ok {
			t.Errorf("todo %s lost on reload", id)
		}
	}

	second.AddTodo(TodoInput{Title: "next session"})
	third := newTestApp(adapter)
	third.Start()
	if got := len(third.State().Todos); got != 3 {
		t.Errorf("expected 3 todos after the next session, got %d", got)
	}
}

func TestPersistenceFailureIsInvisible(t *testing.T) {
	slot := storage.NewMemorySlot()
	slot.WriteError = errors.New("quota exceeded")
	adapter := storage.NewAdapter(slot, storage.WithLogger(discardLogger()))
	a := newTestApp(adapter)
	a.Start()

	todo := a.AddTodo(TodoInput{Title: "kept in memory"})

	if _, ok := a.State().FindTodo(todo.ID); !ok {
		t.Error("expected the todo in memory despite the failed save")
	}
	if _, ok := adapter.Load(); ok {
		t.Error("expected nothing persisted")
	}
}

func TestConcurrentDispatch(t *testing.T) {
	p := &fakePersister{}
	a := New(p, WithLogger(discardLogger()))
	a.Start()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			todo := a.AddTodo(TodoInput{Title: "parallel"})
			a.ToggleTodo(todo.ID)
			_ = a.Visible()
		}()
	}
	wg.Wait()

	state := a.State()
	if len(state.Todos) != 20 {
		t.Fatalf("expected 20 todos, got %d", len(state.Todos))
	}
	for _, todo := range state.Todos {
		if !todo.Completed {
			t.Errorf("todo %s should be completed", todo.ID)
		}
	}
	if len(p.saves) != 40 {
		t.Errorf("expected 40 saves, got %d", len(p.saves))
	}
}
