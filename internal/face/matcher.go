package face

import (
	"context"
	"errors"
	"fmt"

	"github.com/lakshayg/face-search/internal/index"
)

// ErrAmbiguousQuery reports a query image with more than one detected face.
// The caller's intent is undefined, so no face is picked silently.
var ErrAmbiguousQuery = errors.New("query image contains more than one face")

// EmbeddingSource is the read side of the index the matcher scans.
type EmbeddingSource interface {
	ForEachEmbedding(fn func(index.Record) error) error
}

// Result is the outcome of a face query.
type Result struct {
	// FaceFound reports whether the query image contained a detectable
	// face. False means an empty result, not a failure.
	FaceFound bool

	// Matches lists the files containing the query face, de-duplicated,
	// in the order the scan first matched them. A file with several
	// matching faces appears once.
	Matches []string
}

// Matcher answers which indexed images contain a given query face.
type Matcher struct {
	Extractor  Extractor
	Comparator Comparator
}

// Find extracts the face from the query image and scans every stored
// embedding through the comparator. Zero detected faces yields an empty
// result; more than one yields ErrAmbiguousQuery.
func (m *Matcher) Find(ctx context.Context, source EmbeddingSource, imageData []byte) (Result, error) {
	vectors, err := m.Extractor.Extract(ctx, imageData)
	if err != nil {
		return Result{}, fmt.Errorf("extracting query face: %w", err)
	}

	switch {
	case len(vectors) == 0:
		return Result{}, nil
	case len(vectors) > 1:
		return Result{}, fmt.Errorf("%w (%d faces detected)", ErrAmbiguousQuery, len(vectors))
	}
	query := vectors[0]

	result := Result{FaceFound: true}
	seen := make(map[string]bool)
	err = source.ForEachEmbedding(func(rec index.Record) error {
		if seen[rec.Filename] {
			return nil
		}
		if m.Comparator.Match(rec.Vector, query) {
			seen[rec.Filename] = true
			result.Matches = append(result.Matches, rec.Filename)
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("scanning stored embeddings: %w", err)
	}
	return result, nil
}
