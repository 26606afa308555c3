package ann_test

import (
	"testing"

	"github.com/lakshayg/face-search/internal/ann"
	"github.com/lakshayg/face-search/internal/face"
	"github.com/lakshayg/face-search/internal/index"
)

type sliceSource []index.Record

func (s sliceSource) ForEachEmbedding(fn func(index.Record) error) error {
	for _, rec := range s {
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

func TestBuildAndSearch(t *testing.T) {
	source := sliceSource{
		{Filename: "a.jpg", Vector: []float32{1, 0, 0}},
		{Filename: "b.jpg", Vector: []float32{0, 1, 0}},
		{Filename: "c.jpg", Vector: []float32{0.9, 0.1, 0}},
	}

	ix, err := ann.Build(source, face.MetricEuclidean)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if ix.Len() != 3 {
		t.Fatalf("expected 3 indexed faces, got %d", ix.Len())
	}

	neighbors, err := ix.Search([]float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(neighbors) != 2 {
		t.Fatalf("expected 2 neighbors, got %d", len(neighbors))
	}
	if neighbors[0].Filename != "a.jpg" {
		t.Errorf("expected a.jpg as nearest, got %s", neighbors[0].Filename)
	}
	if neighbors[0].Distance != 0 {
		t.Errorf("expected zero distance for exact match, got %v", neighbors[0].Distance)
	}
	if neighbors[1].Filename != "c.jpg" {
		t.Errorf("expected c.jpg as second nearest, got %s", neighbors[1].Filename)
	}
}

func TestSearchTracksFaceOrdinals(t *testing.T) {
	source := sliceSource{
		{Filename: "group.jpg", Vector: []float32{1, 0}},
		{Filename: "group.jpg", Vector: []float32{0, 1}},
	}

	ix, err := ann.Build(source, face.MetricEuclidean)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	neighbors, err := ix.Search([]float32{0, 1}, 1)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(neighbors) != 1 {
		t.Fatalf("expected 1 neighbor, got %d", len(neighbors))
	}
	if neighbors[0].Filename != "group.jpg" || neighbors[0].Ordinal != 1 {
		t.Errorf("expected group.jpg face 1, got %s face %d", neighbors[0].Filename, neighbors[0].Ordinal)
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	ix, err := ann.Build(sliceSource{}, face.MetricEuclidean)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if _, err := ix.Search([]float32{1}, 5); err == nil {
		t.Error("expected error searching an empty index, got nil")
	}
}
