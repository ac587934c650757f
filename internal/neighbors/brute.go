package neighbors

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/go-sod/sodkit/internal/estimator"
	"github.com/go-sod/sodkit/internal/geom"
	"github.com/go-sod/sodkit/pkg/pqueue"
)

var _ Searcher = (*brute)(nil)

func NewBrute(distFn geom.DistanceFn) *brute {
	return &brute{distFunc: distFn}
}

// brute scans every training row for each query.
type brute struct {
	data     [][]float64
	dims     int
	distFunc geom.DistanceFn
}

func (b *brute) Build(X mat.Matrix) error {
	_, cols, err := estimator.CheckMatrix(X)
	if err != nil {
		return fmt.Errorf("unable to build brute index: %w", err)
	}
	b.data = estimator.Rows(X)
	b.dims = cols
	return nil
}

func (b *brute) Len() int {
	return len(b.data)
}

func (b *brute) Dimensions() int {
	return b.dims
}

func (b *brute) KNN(vec []float64, k int) ([]Neighbor, error) {
	if k <= 0 {
		return nil, fmt.Errorf("knn: k must be positive, got %d", k)
	}
	if len(b.data) < k {
		return nil, fmt.Errorf("%w: %d samples, %d neighbours", ErrTooFewSamples, len(b.data), k)
	}
	pq := pqueue.New[int](pqueue.WithCap(uint(k)))
	for i, item := range b.data {
		distance, err := b.distFunc(vec, item)
		if err != nil {
			return nil, fmt.Errorf("unable to compute distance between %v and %v: %w", vec, item, err)
		}
		pq.Push(i, distance)
	}
	knn := make([]Neighbor, pq.Len())
	for i := range knn {
		knn[i].Index, knn[i].Distance = pq.Seek(i)
	}
	return knn, nil
}
