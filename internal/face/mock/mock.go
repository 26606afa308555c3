// Package mock provides mock implementations of the face interfaces for
// testing.
package mock

import (
	"context"
	"sync"
)

// Extractor is a mock face.Extractor keyed by image content.
type Extractor struct {
	mu    sync.Mutex
	faces map[string][][]float32
	calls int

	// Error injection
	ExtractError error
	// FailFor returns ExtractError only for these image contents.
	FailFor map[string]bool
}

// NewExtractor creates an empty mock extractor.
func NewExtractor() *Extractor {
	return &Extractor{faces: make(map[string][][]float32)}
}

// Add registers the embeddings returned for an exact image content.
func (m *Extractor) Add(imageData []byte, vectors ...[]float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faces[string(imageData)] = vectors
}

// Calls returns how many times Extract has been invoked.
func (m *Extractor) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Extract returns the registered embeddings for the image. Unregistered
// content yields zero faces. Injected errors take precedence.
func (m *Extractor) Extract(_ context.Context, imageData []byte) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.ExtractError != nil {
		if m.FailFor == nil || m.FailFor[string(imageData)] {
			return nil, m.ExtractError
		}
	}
	return m.faces[string(imageData)], nil
}

// Comparator is a mock face.Comparator matching exact vector equality.
type Comparator struct{}

// Match reports whether known and candidate are identical.
func (Comparator) Match(known, candidate []float32) bool {
	if len(known) != len(candidate) {
		return false
	}
	for i := range known {
		if known[i] != candidate[i] {
			return false
		}
	}
	return true
}
