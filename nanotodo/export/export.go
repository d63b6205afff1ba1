// Package export serializes nanotodo data for use outside the app. A
// Document holds either the whole state or the current view of it, and
// Write renders it as JSON or YAML.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/arthur-debert/nanotodo/types"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml in any case
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q (use json or yaml)", s)
}

// Extension returns the file extension for the format, dot included
func (f Format) Extension() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// Document is the exported structure
type Document struct {
	ExportedAt time.Time        `json:"exportedAt" yaml:"exportedAt"`
	View       bool             `json:"view" yaml:"view"`
	Todos      []types.Todo     `json:"todos" yaml:"todos"`
	Categories []types.Category `json:"categories" yaml:"categories"`
	Filter     types.Filter     `json:"filter" yaml:"filter"`
}

// FromState exports every todo in insertion order
func FromState(state types.State, at time.Time) Document {
	s := state.Clone()
	return Document{
		ExportedAt: at,
		Todos:      nonNil(s.Todos),
		Categories: nonNil(s.Categories),
		Filter:     s.Filter,
	}
}

// FromView exports the given visible todos, typically query.Visible(state),
// along with the filter that produced them
func FromView(state types.State, visible []types.Todo, at time.Time) Document {
	doc := FromState(state, at)
	doc.View = true
	doc.Todos = make([]types.Todo, len(visible))
	for i, t := range visible {
		doc.Todos[i] = t.Clone()
	}
	return doc
}

// Write encodes doc to w in format
func Write(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil

	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown export format %q", format)
}

// Filename returns the default export file name for a moment in time,
// e.g. nanotodo-20240101-090000.json
func Filename(format Format, at time.Time) string {
	return "nanotodo-" + at.UTC().Format("20060102-150405") + format.Extension()
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
