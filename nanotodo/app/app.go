// Package app is the nanotodo façade. An App owns the one live state,
// loads it from the persister once at Start, and saves it after every
// change made through its dispatch methods.
//
// Changes applied before Start are never saved. Saving the empty default
// before the load ran would overwrite the user's data.
package app

import (
	"log/slog"
	"time"

	"github.com/arthur-debert/nanotodo/nanotodo/ids"
	"github.com/arthur-debert/nanotodo/nanotodo/query"
	"github.com/arthur-debert/nanotodo/nanotodo/store"
	"github.com/arthur-debert/nanotodo/types"
)

// Persister stores the state. *storage.Adapter implements it.
type Persister interface {
	Save(state types.State)
	Load() (types.State, bool)
	Clear()
}

// Recorder observes dispatches. *metrics.Recorder implements it.
type Recorder interface {
	ActionApplied(kind string, changed bool)
	ObserveState(state types.State)
}

type nopRecorder struct{}

func (nopRecorder) ActionApplied(string, bool) {}
func (nopRecorder) ObserveState(types.State)   {}

// TodoInput holds the caller-validated fields of a new todo
type TodoInput struct {
	Title       string
	Description string
	Priority    types.Priority // defaults to medium
	DueDate     string
	Category    string
	Tags        []string
}

// App is the state container
type App struct {
	lockManager *LockManager
	reducer     *store.Reducer
	persister   Persister
	idGenerator ids.Generator
	timeFunc    func() time.Time
	logger      *slog.Logger
	recorder    Recorder

	state       types.State
	revision    uint64
	initialized bool
	view        query.Memo
}

// Option configures an App
type Option func(*App)

// WithTimeFunc sets the clock used for timestamps
func WithTimeFunc(fn func() time.Time) Option {
	return func(a *App) {
		a.timeFunc = fn
	}
}

// WithIDGenerator sets the id source for new todos and categories
func WithIDGenerator(gen ids.Generator) Option {
	return func(a *App) {
		a.idGenerator = gen
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithRecorder registers a dispatch observer
func WithRecorder(r Recorder) Option {
	return func(a *App) {
		a.recorder = r
	}
}

// New creates an App holding the empty state. Call Start to load.
func New(persister Persister, opts ...Option) *App {
	a := &App{
		lockManager: NewLockManager(),
		persister:   persister,
		state:       types.NewState(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.timeFunc == nil {
		a.timeFunc = time.Now
	}
	if a.idGenerator == nil {
		a.idGenerator = ids.UUIDGenerator{}
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.recorder == nil {
		a.recorder = nopRecorder{}
	}
	a.logger = a.logger.With("component", "app")
	a.reducer = store.NewReducer(store.WithTimeFunc(a.timeFunc))
	return a
}

// Start loads the persisted state, if any, and enables saving. Calling it
// again has no effect.
func (a *App) Start() {
	a.lockManager.Execute(WriteOperation, func() {
		if a.initialized {
			return
		}
		if loaded, ok := a.persister.Load(); ok {
			a.state = a.reducer.Reduce(a.state, store.LoadState{State: loaded})
			a.revision++
			a.logger.Debug("loaded state", "todos", len(a.state.Todos), "categories", len(a.state.Categories))
		}
		a.initialized = true
		a.recorder.ObserveState(a.state)
	})
}

// Initialized reports whether Start has run
func (a *App) Initialized() bool {
	var ok bool
	a.lockManager.Execute(ReadOperation, func() {
		ok = a.initialized
	})
	return ok
}

// dispatch applies action and, once started, saves the changed state
func (a *App) dispatch(action store.Action) {
	a.lockManager.Execute(WriteOperation, func() {
		next, changed := a.reducer.Apply(a.state, action)
		a.recorder.ActionApplied(string(action.Kind()), changed)
		if !changed {
			a.logger.Debug("action left state unchanged", "kind", action.Kind())
			return
		}

		a.state = next
		a.revision++
		a.recorder.ObserveState(a.state)
		if a.initialized {
			a.persister.Save(a.state)
		}
	})
}

// AddTodo creates a todo with a fresh id and timestamps and returns it
func (a *App) AddTodo(input TodoInput) types.Todo {
	now := a.timeFunc()
	todo := types.Todo{
		ID:          a.idGenerator.NewID(),
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Category:    input.Category,
		Tags:        append([]string{}, input.Tags...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if todo.Priority == "" {
		todo.Priority = types.PriorityMedium
	}

	a.dispatch(store.AddTodo{Todo: todo})
	return todo.Clone()
}

// UpdateTodo merges patch into the todo with id. Unknown ids are ignored.
func (a *App) UpdateTodo(id string, patch types.TodoPatch) {
	a.dispatch(store.UpdateTodo{ID: id, Patch: patch})
}

// DeleteTodo removes the todo with id. Unknown ids are ignored.
func (a *App) DeleteTodo(id string) {
	a.dispatch(store.DeleteTodo{ID: id})
}

// ToggleTodo flips the completion of the todo with id
func (a *App) ToggleTodo(id string) {
	a.dispatch(store.ToggleTodo{ID: id})
}

// AddCategory creates a category with a fresh id and returns it
func (a *App) AddCategory(name, color string) types.Category {
	category := types.Category{
		ID:    a.idGenerator.NewID(),
		Name:  name,
		Color: color,
	}
	a.dispatch(store.AddCategory{Category: category})
	return category
}

// DeleteCategory removes the category with id. Todos keep its name.
func (a *App) DeleteCategory(id string) {
	a.dispatch(store.DeleteCategory{ID: id})
}

// SetFilter merges patch into the current filter
func (a *App) SetFilter(patch types.FilterPatch) {
	a.dispatch(store.SetFilter{Patch: patch})
}

// State returns a deep copy of the current state
func (a *App) State() types.State {
	var s types.State
	a.lockManager.Execute(ReadOperation, func() {
		s = a.state.Clone()
	})
	return s
}

// Visible returns the filtered, sorted todo list for the current state
func (a *App) Visible() []types.Todo {
	var todos []types.Todo
	a.lockManager.Execute(ReadOperation, func() {
		todos = a.view.Visible(a.revision, a.state)
	})
	return todos
}

// ClearStorage removes the persisted state. The in-memory state is kept;
// the next Start of a new App begins empty.
func (a *App) ClearStorage() {
	a.lockManager.Execute(WriteOperation, func() {
		a.persister.Clear()
	})
}
