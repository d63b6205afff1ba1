package main

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/nanotodo/types"
)

// shortIDLength is how much of an id the table shows
const shortIDLength = 8

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

// resolveTodo finds the todo whose id equals ref or, failing that, is the
// only one starting with ref
func resolveTodo(todos []types.Todo, ref string) (types.Todo, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return types.Todo{}, fmt.Errorf("empty todo id")
	}

	var matches []types.Todo
	for _, t := range todos {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return types.Todo{}, fmt.Errorf("todo not found: %s", ref)
	case 1:
		return matches[0], nil
	}
	return types.Todo{}, fmt.Errorf("ambiguous todo id %q matches %d todos", ref, len(matches))
}

// resolveCategory finds a category by exact id, unique id prefix or
// case-insensitive name
func resolveCategory(categories []types.Category, ref string) (types.Category, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return types.Category{}, fmt.Errorf("empty category")
	}

	for _, c := range categories {
		if c.ID == ref {
			return c, nil
		}
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}

	var matches []types.Category
	for _, c := range categories {
		if strings.HasPrefix(c.ID, ref) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return types.Category{}, fmt.Errorf("category not found: %s", ref)
	case 1:
		return matches[0], nil
	}
	return types.Category{}, fmt.Errorf("ambiguous category id %q matches %d categories", ref, len(matches))
}
