// Package ids supplies unique identifiers for new todos and categories.
package ids

import "github.com/google/uuid"

// Generator returns a new unique id on every call
type Generator interface {
	NewID() string
}

// GeneratorFunc adapts a function to Generator
type GeneratorFunc func() string

// NewID implements Generator
func (f GeneratorFunc) NewID() string {
	return f()
}

// UUIDGenerator issues random (version 4) UUIDs
type UUIDGenerator struct{}

// NewID implements Generator
func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}
