package store

import "github.com/arthur-debert/nanotodo/types"

// Kind names an action for logs and metrics
type Kind string

const (
	KindAddTodo        Kind = "add_todo"
	KindUpdateTodo     Kind = "update_todo"
	KindDeleteTodo     Kind = "delete_todo"
	KindToggleTodo     Kind = "toggle_todo"
	KindAddCategory    Kind = "add_category"
	KindDeleteCategory Kind = "delete_category"
	KindSetFilter      Kind = "set_filter"
	KindLoadState      Kind = "load_state"
)

// Action is one state transition request. The set of actions is closed:
// only the types in this file implement it.
type Action interface {
	Kind() Kind
	sealed()
}

// AddTodo appends a fully formed todo
type AddTodo struct {
	Todo types.Todo
}

// UpdateTodo merges Patch into the todo with ID
type UpdateTodo struct {
	ID    string
	Patch types.TodoPatch
}

// DeleteTodo removes the todo with ID
type DeleteTodo struct {
	ID string
}

// ToggleTodo flips the completion flag of the todo with ID
type ToggleTodo struct {
	ID string
}

// AddCategory appends a category
type AddCategory struct {
	Category types.Category
}

// DeleteCategory removes the category with ID. Todos naming it keep the name.
type DeleteCategory struct {
	ID string
}

// SetFilter merges Patch into the current filter
type SetFilter struct {
	Patch types.FilterPatch
}

// LoadState replaces the whole state
type LoadState struct {
	State types.State
}

func (AddTodo) Kind() Kind        { return KindAddTodo }
func (UpdateTodo) Kind() Kind     { return KindUpdateTodo }
func (DeleteTodo) Kind() Kind     { return KindDeleteTodo }
func (ToggleTodo) Kind() Kind     { return KindToggleTodo }
func (AddCategory) Kind() Kind    { return KindAddCategory }
func (DeleteCategory) Kind() Kind { return KindDeleteCategory }
func (SetFilter) Kind() Kind      { return KindSetFilter }
func (LoadState) Kind() Kind      { return KindLoadState }

func (AddTodo) sealed()        {}
func (UpdateTodo) sealed()     {}
func (DeleteTodo) sealed()     {}
func (ToggleTodo) sealed()     {}
func (AddCategory) sealed()    {}
func (DeleteCategory) sealed() {}
func (SetFilter) sealed()      {}
func (LoadState) sealed()      {}
