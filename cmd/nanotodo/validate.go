package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/arthur-debert/nanotodo/types"
)

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("title is required")
	}
	return title, nil
}

// validateCategoryName rejects empty names and names already taken,
// ignoring case
func validateCategoryName(existing []types.Category, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("category name is required")
	}
	for _, c := range existing {
		if strings.EqualFold(c.Name, name) {
			return "", fmt.Errorf("category %q already exists", c.Name)
		}
	}
	return name, nil
}

// validateDueDate accepts an empty string (no due date) or YYYY-MM-DD
func validateDueDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return "", nil
	}
	if _, err := time.Parse(types.DateLayout, date); err != nil {
		return "", fmt.Errorf("invalid due date format (use YYYY-MM-DD): %w", err)
	}
	return date, nil
}

// validatePriorityFilter accepts a priority or "" / "all" to match any
func validatePriorityFilter(s string) (types.Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return "", nil
	}
	return types.ParsePriority(s)
}

// cleanTags trims tags and drops empty ones. Repeats are kept.
func cleanTags(tags []string) []string {
	out := []string{}
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// confirm asks a yes/no question; anything but y or yes is a no
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
