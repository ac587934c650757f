package neighbors

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/go-sod/sodkit/internal/estimator"
	"github.com/go-sod/sodkit/internal/geom"
	"github.com/go-sod/sodkit/pkg/kdtree"
)

var _ Searcher = (*kd)(nil)

// indexedPoint keeps the training row index next to its coordinates.
type indexedPoint struct {
	idx int
	vec []float64
}

func (p indexedPoint) Dim(idx int) float64 { return p.vec[idx] }
func (p indexedPoint) Dimensions() int     { return len(p.vec) }
func (p indexedPoint) Points() []float64   { return p.vec }

type queryPoint []float64

func (p queryPoint) Dim(idx int) float64 { return p[idx] }
func (p queryPoint) Dimensions() int     { return len(p) }
func (p queryPoint) Points() []float64   { return p }

func NewKDTree(distFn geom.DistanceFn) *kd {
	return &kd{distFn: distFn, dataTree: kdtree.New(distFn)}
}

type kd struct {
	dataTree *kdtree.Tree
	dims     int
	distFn   geom.DistanceFn
}

func (b *kd) Build(X mat.Matrix) error {
	_, cols, err := estimator.CheckMatrix(X)
	if err != nil {
		return fmt.Errorf("unable to build kd index: %w", err)
	}
	rows := estimator.Rows(X)
	items := make([]kdtree.Point, len(rows))
	for i := range rows {
		items[i] = indexedPoint{idx: i, vec: rows[i]}
	}
	b.dataTree = kdtree.New(b.distFn)
	b.dataTree.Build(items...)
	b.dims = cols
	return nil
}

func (b *kd) Len() int {
	return b.dataTree.Len()
}

func (b *kd) Dimensions() int {
	return b.dims
}

func (b *kd) KNN(vec []float64, k int) ([]Neighbor, error) {
	if b.dataTree.Len() < k {
		return nil, fmt.Errorf("%w: %d samples, %d neighbours", ErrTooFewSamples, b.dataTree.Len(), k)
	}
	points, distances, err := b.dataTree.KNN(queryPoint(vec), k)
	if err != nil {
		return nil, fmt.Errorf("kd tree knn: %w", err)
	}
	output := make([]Neighbor, len(points))
	for i := range points {
		output[i] = Neighbor{Index: points[i].(indexedPoint).idx, Distance: distances[i]}
	}
	return output, nil
}
