// Package face defines the boundaries to the external face-recognition
// capabilities — embedding extraction and identity comparison — and the
// matcher that answers queries against a stored index.
package face

import (
	"context"
	"fmt"
	"math"
)

// Extractor produces one fixed-length embedding per face detected in an
// image. Zero faces is a normal outcome, not an error.
type Extractor interface {
	Extract(ctx context.Context, imageData []byte) ([][]float32, error)
}

// CheckedExtractor wraps an Extractor and rejects embeddings whose length
// differs from Dim. A misconfigured or swapped extractor model would
// otherwise poison the index with vectors no query can ever match.
// Dim <= 0 disables the check.
type CheckedExtractor struct {
	Extractor Extractor
	Dim       int
}

func (c CheckedExtractor) Extract(ctx context.Context, imageData []byte) ([][]float32, error) {
	vectors, err := c.Extractor.Extract(ctx, imageData)
	if err != nil {
		return nil, err
	}
	if c.Dim > 0 {
		for i, v := range vectors {
			if len(v) != c.Dim {
				return nil, fmt.Errorf("face %d: embedding has dimension %d, expected %d", i, len(v), c.Dim)
			}
		}
	}
	return vectors, nil
}

// Comparator decides whether two embeddings represent the same identity.
type Comparator interface {
	Match(known, candidate []float32) bool
}

// Metric selects the distance function used by DistanceComparator.
type Metric string

const (
	MetricEuclidean Metric = "euclidean"
	MetricCosine    Metric = "cosine"
)

// DefaultTolerance is the Euclidean match threshold for 128-dim dlib-style
// face embeddings. Lower is stricter.
const DefaultTolerance = 0.6

// DistanceComparator matches two embeddings when their distance is within
// Tolerance under the configured metric.
type DistanceComparator struct {
	Metric    Metric
	Tolerance float64
}

// NewComparator returns a Euclidean comparator with DefaultTolerance.
func NewComparator() DistanceComparator {
	return DistanceComparator{Metric: MetricEuclidean, Tolerance: DefaultTolerance}
}

// Match reports whether candidate is within Tolerance of known.
func (c DistanceComparator) Match(known, candidate []float32) bool {
	var dist float64
	switch c.Metric {
	case MetricCosine:
		dist = CosineDistance(known, candidate)
	default:
		dist = EuclideanDistance(known, candidate)
	}
	return dist <= c.Tolerance
}

// EuclideanDistance computes the L2 distance between two vectors.
// Mismatched or empty vectors get +Inf so they can never match.
func EuclideanDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// CosineDistance computes the cosine distance between two vectors, from 0
// (same direction) to 2 (opposite). Mismatched, empty and zero vectors get
// the maximum distance so they can never match.
func CosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 2.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 2.0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Rounding can push the ratio slightly outside [-1, 1].
	if sim > 1 {
		sim = 1
	}
	if sim < -1 {
		sim = -1
	}
	return 1 - sim
}
