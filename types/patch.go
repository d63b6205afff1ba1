package types

// TodoPatch lists the fields of an update. Nil fields keep their current
// value. ID and timestamps are not patchable.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *Priority
	DueDate     *string
	Category    *string
	Tags        *[]string
}

// IsEmpty reports whether the patch changes no field
func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		p.Priority == nil && p.DueDate == nil && p.Category == nil && p.Tags == nil
}

// ApplyTo returns t with the patch merged in. Tags are copied.
func (p TodoPatch) ApplyTo(t Todo) Todo {
	t = t.Clone()
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Tags != nil {
		t.Tags = append([]string{}, (*p.Tags)...)
	}
	return t
}

// FilterPatch lists the filter fields to change. Nil fields are untouched.
type FilterPatch struct {
	SearchText    *string
	Category      *string
	Priority      *Priority
	ShowCompleted *bool
	SortBy        *SortBy
}

// ApplyTo returns f with the patch merged in
func (p FilterPatch) ApplyTo(f Filter) Filter {
	if p.SearchText != nil {
		f.SearchText = *p.SearchText
	}
	if p.Category != nil {
		f.Category = *p.Category
	}
	if p.Priority != nil {
		f.Priority = *p.Priority
	}
	if p.ShowCompleted != nil {
		f.ShowCompleted = *p.ShowCompleted
	}
	if p.SortBy != nil {
		f.SortBy = *p.SortBy
	}
	return f
}

// Ptr returns a pointer to v. It keeps patch literals short.
func Ptr[T any](v T) *T {
	return &v
}
