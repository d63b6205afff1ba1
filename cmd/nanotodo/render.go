package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/nanotodo/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// styles holds the lipgloss styles bound to one output renderer
type styles struct {
	header    lipgloss.Style
	id        lipgloss.Style
	check     lipgloss.Style
	priority  map[types.Priority]lipgloss.Style
	due       lipgloss.Style
	overdue   lipgloss.Style
	category  lipgloss.Style
	done      lipgloss.Style
	muted     lipgloss.Style
	label     lipgloss.Style
	renderer  *lipgloss.Renderer
	today     string
	hasColors bool
}

func newStyles(w io.Writer, noColor bool, now time.Time) *styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return &styles{
		header: r.NewStyle().Bold(true).Underline(true),
		id:     r.NewStyle().Width(shortIDLength + 2).Foreground(lipgloss.Color("244")),
		check:  r.NewStyle().Width(4),
		priority: map[types.Priority]lipgloss.Style{
			types.PriorityHigh:   r.NewStyle().Width(8).Foreground(lipgloss.Color("1")).Bold(true),
			types.PriorityMedium: r.NewStyle().Width(8).Foreground(lipgloss.Color("3")),
			types.PriorityLow:    r.NewStyle().Width(8).Foreground(lipgloss.Color("244")),
		},
		due:       r.NewStyle().Width(12),
		overdue:   r.NewStyle().Width(12).Foreground(lipgloss.Color("1")),
		category:  r.NewStyle().Width(12),
		done:      r.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("244")),
		muted:     r.NewStyle().Foreground(lipgloss.Color("244")),
		label:     r.NewStyle().Bold(true).Width(18),
		renderer:  r,
		today:     now.Format(types.DateLayout),
		hasColors: !noColor,
	}
}

func (s *styles) priorityStyle(p types.Priority) lipgloss.Style {
	if style, ok := s.priority[p]; ok {
		return style
	}
	return s.renderer.NewStyle().Width(8)
}

// categoryStyle colors a category name with its own color when it has one
func (s *styles) categoryStyle(name string, categories []types.Category) lipgloss.Style {
	for _, c := range categories {
		if c.Name == name && c.Color != "" {
			return s.category.Foreground(lipgloss.Color(c.Color))
		}
	}
	return s.category
}

func (s *styles) isOverdue(t types.Todo) bool {
	if t.Completed || t.DueDate == "" {
		return false
	}
	if _, ok := t.Due(); !ok {
		return false
	}
	// DateLayout sorts lexically
	return t.DueDate < s.today
}

// renderTodoTable writes one line per todo in display order
func renderTodoTable(w io.Writer, s *styles, todos []types.Todo, categories []types.Category) {
	if len(todos) == 0 {
		fmt.Fprintln(w, s.muted.Render("No todos."))
		return
	}

	fmt.Fprintln(w, s.id.Render("ID")+s.check.Render("")+s.priorityStyle("").Render("PRI")+
		s.due.Render("DUE")+s.category.Render("CATEGORY")+s.header.Render("TITLE"))

	for _, t := range todos {
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}

		dueStyle := s.due
		if s.isOverdue(t) {
			dueStyle = s.overdue
		}

		title := t.Title
		if t.Completed {
			title = s.done.Render(title)
		}
		if len(t.Tags) > 0 {
			title += " " + s.muted.Render("#"+strings.Join(t.Tags, " #"))
		}

		fmt.Fprintln(w, s.id.Render(shortID(t.ID))+
			s.check.Render(check)+
			s.priorityStyle(t.Priority).Render(string(t.Priority))+
			dueStyle.Render(t.DueDate)+
			s.categoryStyle(t.Category, categories).Render(t.Category)+
			title)
	}
}

func renderCategoryTable(w io.Writer, s *styles, categories []types.Category, todos []types.Todo) {
	if len(categories) == 0 {
		fmt.Fprintln(w, s.muted.Render("No categories."))
		return
	}

	counts := make(map[string]int)
	for _, t := range todos {
		counts[t.Category]++
	}

	fmt.Fprintln(w, s.id.Render("ID")+s.category.Render("COLOR")+s.header.Render("NAME"))
	for _, c := range categories {
		swatch := c.Color
		if swatch != "" && s.hasColors {
			swatch = s.category.Foreground(lipgloss.Color(c.Color)).Render("■ " + c.Color)
		} else {
			swatch = s.category.Render(swatch)
		}
		fmt.Fprintf(w, "%s%s%s %s\n", s.id.Render(shortID(c.ID)), swatch, c.Name,
			s.muted.Render(fmt.Sprintf("(%d)", counts[c.Name])))
	}
}

func renderFilter(w io.Writer, s *styles, f types.Filter) {
	orAll := func(v string) string {
		if v == "" {
			return s.muted.Render("all")
		}
		return v
	}
	fmt.Fprintln(w, s.label.Render("Search:")+orAll(f.SearchText))
	fmt.Fprintln(w, s.label.Render("Category:")+orAll(f.Category))
	fmt.Fprintln(w, s.label.Render("Priority:")+orAll(string(f.Priority)))
	fmt.Fprintln(w, s.label.Render("Show completed:")+fmt.Sprintf("%t", f.ShowCompleted))
	fmt.Fprintln(w, s.label.Render("Sort by:")+string(f.SortBy))
}

// stats is the summary shown by the stats command
type stats struct {
	Total      int
	Open       int
	Completed  int
	Overdue    int
	ByPriority map[types.Priority]int
	ByCategory map[string]int
}

func computeStats(state types.State, s *styles) stats {
	st := stats{
		ByPriority: make(map[types.Priority]int),
		ByCategory: make(map[string]int),
	}
	for _, t := range state.Todos {
		st.Total++
		if t.Completed {
			st.Completed++
		} else {
			st.Open++
			st.ByPriority[t.Priority]++
		}
		if s.isOverdue(t) {
			st.Overdue++
		}
		st.ByCategory[t.Category]++
	}
	return st
}

func renderStats(w io.Writer, s *styles, state types.State) {
	st := computeStats(state, s)

	fmt.Fprintln(w, s.header.Render("Todo Statistics"))
	fmt.Fprintln(w, s.label.Render("Total:")+fmt.Sprint(st.Total))
	fmt.Fprintln(w, s.label.Render("Open:")+fmt.Sprint(st.Open))
	fmt.Fprintln(w, s.label.Render("Completed:")+fmt.Sprint(st.Completed))
	fmt.Fprintln(w, s.label.Render("Overdue:")+fmt.Sprint(st.Overdue))
	if st.Total > 0 {
		rate := float64(st.Completed) / float64(st.Total) * 100
		fmt.Fprintln(w, s.label.Render("Completion rate:")+fmt.Sprintf("%.1f%%", rate))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, s.header.Render("Open by priority"))
	for _, p := range types.Priorities() {
		fmt.Fprintln(w, s.label.Render(string(p)+":")+fmt.Sprint(st.ByPriority[p]))
	}

	if len(state.Categories) == 0 && st.ByCategory[""] == st.Total {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.header.Render("By category"))
	known := make(map[string]bool, len(state.Categories))
	for _, c := range state.Categories {
		known[c.Name] = true
		fmt.Fprintln(w, s.label.Render(c.Name+":")+fmt.Sprint(st.ByCategory[c.Name]))
	}
	// todos still naming a deleted category
	var orphans []string
	for name := range st.ByCategory {
		if name != "" && !known[name] {
			orphans = append(orphans, name)
		}
	}
	sort.Strings(orphans)
	for _, name := range orphans {
		fmt.Fprintln(w, s.label.Render(name+":")+fmt.Sprint(st.ByCategory[name])+s.muted.Render(" (deleted)"))
	}
	if n := st.ByCategory[""]; n > 0 {
		fmt.Fprintln(w, s.label.Render("(none):")+fmt.Sprint(n))
	}
}
