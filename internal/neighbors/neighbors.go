// Package neighbors answers k nearest neighbour queries over the rows of a
// training matrix.
package neighbors

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/go-sod/sodkit/internal/estimator"
	"github.com/go-sod/sodkit/internal/geom"
)

var ErrTooFewSamples = errors.New("neighbors: fewer samples than requested neighbours")

type AlgType string

const (
	AlgTypeAuto   AlgType = "AUTO"
	AlgTypeKDTree AlgType = "KD_TREE"
	AlgTypeBrute  AlgType = "BRUTE"
)

// Below this many samples AUTO picks brute force.
const autoBruteMaxSamples = 64

// Neighbor is a training row and its distance to the query.
type Neighbor struct {
	Index    int
	Distance float64
}

// Searcher finds nearest training rows, closest first.
type Searcher interface {
	Build(X mat.Matrix) error
	Len() int
	Dimensions() int
	KNN(vec []float64, k int) ([]Neighbor, error)
}

// SearcherFor returns an empty searcher of the requested kind. AUTO is
// resolved against nSamples.
func SearcherFor(a AlgType, nSamples int, distFn geom.DistanceFn) (Searcher, error) {
	if distFn == nil {
		return nil, fmt.Errorf("unable to create searcher: distance function is nil")
	}
	switch a {
	case AlgTypeAuto, "":
		if nSamples <= autoBruteMaxSamples {
			return NewBrute(distFn), nil
		}
		return NewKDTree(distFn), nil
	case AlgTypeBrute:
		return NewBrute(distFn), nil
	case AlgTypeKDTree:
		return NewKDTree(distFn), nil
	default:
		return nil, fmt.Errorf("unable to create searcher with alg type %s", a)
	}
}

// KNeighbors queries the k nearest training rows of every row of X. With
// excludeSelf, X must be the training matrix and each row's own index is
// left out of its neighbourhood.
func KNeighbors(s Searcher, X mat.Matrix, k int, excludeSelf bool) ([][]Neighbor, error) {
	rows, cols := X.Dims()
	if cols != s.Dimensions() {
		return nil, fmt.Errorf("%w: got %d, expected %d", estimator.ErrFeatureMismatch, cols, s.Dimensions())
	}
	need := k
	if excludeSelf {
		need++
	}
	if s.Len() < need {
		return nil, fmt.Errorf("%w: %d samples, %d neighbours", ErrTooFewSamples, s.Len(), need)
	}

	out := make([][]Neighbor, rows)
	vec := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(vec, i, X)
		nn, err := s.KNN(vec, need)
		if err != nil {
			return nil, fmt.Errorf("unable to query neighbours of row %d: %w", i, err)
		}
		if excludeSelf {
			nn = dropIndex(nn, i, k)
		}
		out[i] = nn
	}
	return out, nil
}

// dropIndex removes idx from nn, or the farthest neighbour when idx is not
// present (duplicates may outrank the row itself), leaving k neighbours.
func dropIndex(nn []Neighbor, idx, k int) []Neighbor {
	out := make([]Neighbor, 0, k)
	for _, n := range nn {
		if n.Index == idx {
			continue
		}
		out = append(out, n)
	}
	if len(out) > k {
		out = out[:k]
	}
	return out
}
