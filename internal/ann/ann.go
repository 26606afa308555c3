// Package ann ranks stored face embeddings by distance to a query face
// using an in-memory HNSW graph. It is a ranking view over the index, not
// a replacement for the boolean identity comparator.
package ann

import (
	"errors"
	"fmt"

	"github.com/coder/hnsw"

	"github.com/lakshayg/face-search/internal/face"
	"github.com/lakshayg/face-search/internal/index"
)

// HNSW construction parameters for face embeddings.
const (
	maxNeighbors = 16
	efSearch     = 100
)

// Neighbor is one ranked result.
type Neighbor struct {
	Filename string
	// Ordinal distinguishes multiple faces within the same file, in
	// storage order starting at 0.
	Ordinal  int
	Distance float32
}

type nodeMeta struct {
	filename string
	ordinal  int
	vector   []float32
}

// Index is a searchable nearest-face graph built from a store snapshot.
type Index struct {
	graph    *hnsw.Graph[int]
	meta     []nodeMeta
	distance hnsw.DistanceFunc
}

// Build constructs the graph from every embedding in the source.
func Build(source face.EmbeddingSource, metric face.Metric) (*Index, error) {
	g := hnsw.NewGraph[int]()
	g.M = maxNeighbors
	g.Ml = 1.0 / float64(maxNeighbors)
	g.EfSearch = efSearch

	var dist hnsw.DistanceFunc
	switch metric {
	case face.MetricCosine:
		dist = hnsw.CosineDistance
	default:
		dist = hnsw.EuclideanDistance
	}
	g.Distance = dist

	ix := &Index{graph: g, distance: dist}
	ordinals := make(map[string]int)
	err := source.ForEachEmbedding(func(rec index.Record) error {
		id := len(ix.meta)
		ord := ordinals[rec.Filename]
		ordinals[rec.Filename] = ord + 1

		g.Add(hnsw.MakeNode(id, rec.Vector))
		ix.meta = append(ix.meta, nodeMeta{filename: rec.Filename, ordinal: ord, vector: rec.Vector})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("building nearest-face index: %w", err)
	}
	return ix, nil
}

// Len returns the number of indexed faces.
func (ix *Index) Len() int {
	return len(ix.meta)
}

// Search returns the k nearest stored faces to the query embedding.
func (ix *Index) Search(query []float32, k int) ([]Neighbor, error) {
	if len(ix.meta) == 0 {
		return nil, errors.New("no faces indexed")
	}

	nodes := ix.graph.Search(query, k)
	neighbors := make([]Neighbor, 0, len(nodes))
	for _, n := range nodes {
		m := ix.meta[n.Key]
		neighbors = append(neighbors, Neighbor{
			Filename: m.filename,
			Ordinal:  m.ordinal,
			Distance: ix.distance(query, m.vector),
		})
	}
	return neighbors, nil
}
