// Package kdtree implements a static k-d tree for nearest neighbour queries.
//
// The pruning rule assumes the distance between two points is never smaller
// than their difference along a single axis, which holds for the Euclidean,
// Manhattan and Chebyshev distances.
package kdtree

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/go-sod/sodkit/pkg/pqueue"
)

var (
	ErrEmptyTree = errors.New("kdtree: tree is empty")
	ErrBadK      = errors.New("kdtree: k must be positive")
	ErrDimension = errors.New("kdtree: point dimension does not match tree")
)

type Point interface {
	Dim(idx int) float64
	Dimensions() int
	Points() []float64
}

func New(distFn func(vec, vec1 []float64) (float64, error)) *Tree {
	return &Tree{distFn: distFn}
}

type Tree struct {
	root   *node
	len    int
	distFn func(vec, vec1 []float64) (float64, error)
}

// Build replaces the content of the tree with a balanced tree over points.
// The slice is reordered in place.
func (t *Tree) Build(points ...Point) {
	t.len = len(points)
	t.root = buildTreeRecursive(points, 0)
}

func (t *Tree) Len() int {
	return t.len
}

// KNN returns the k points closest to p, nearest first, with their distances.
// Fewer than k points are returned when the tree holds fewer.
func (t *Tree) KNN(p Point, k int) ([]Point, []float64, error) {
	if t.root == nil {
		return nil, nil, ErrEmptyTree
	}
	if k <= 0 {
		return nil, nil, ErrBadK
	}
	if p.Dimensions() != t.root.Key.Dimensions() {
		return nil, nil, fmt.Errorf("%w: got %d, expected %d", ErrDimension, p.Dimensions(), t.root.Key.Dimensions())
	}

	queue := pqueue.New[Point](pqueue.WithCap(uint(k)))
	if err := t.knn(p, t.root, 0, queue); err != nil {
		return nil, nil, err
	}

	points := make([]Point, queue.Len())
	distances := make([]float64, queue.Len())
	for i := range points {
		points[i], distances[i] = queue.Seek(i)
	}
	return points, distances, nil
}

func (t *Tree) knn(p Point, n *node, dim int, queue *pqueue.Queue[Point]) error {
	if n == nil {
		return nil
	}
	distance, err := t.distFn(p.Points(), n.Key.Points())
	if err != nil {
		return fmt.Errorf("compute knn error: %w", err)
	}
	queue.Push(n.Key, distance)

	diff := p.Dim(dim) - n.Key.Dim(dim)
	near, far := n.Left, n.Right
	if diff >= 0 {
		near, far = n.Right, n.Left
	}
	nextDim := (dim + 1) % p.Dimensions()
	if err := t.knn(p, near, nextDim, queue); err != nil {
		return err
	}
	if worst, full := queue.Worst(); !full || math.Abs(diff) <= worst {
		return t.knn(p, far, nextDim, queue)
	}
	return nil
}

type sortPoints struct {
	dim    int
	points []Point
}

func (b *sortPoints) Len() int {
	return len(b.points)
}

func (b *sortPoints) Less(i, j int) bool {
	return b.points[i].Dim(b.dim) < b.points[j].Dim(b.dim)
}

func (b *sortPoints) Swap(i, j int) {
	b.points[i], b.points[j] = b.points[j], b.points[i]
}

func buildTreeRecursive(points []Point, dim int) *node {
	if len(points) == 0 {
		return nil
	}
	if len(points) == 1 {
		return &node{Key: points[0]}
	}

	sort.Sort(&sortPoints{dim: dim, points: points})
	mid := len(points) / 2
	root := points[mid]
	nextDim := (dim + 1) % root.Dimensions()
	return &node{
		Key:   root,
		Left:  buildTreeRecursive(points[:mid], nextDim),
		Right: buildTreeRecursive(points[mid+1:], nextDim),
	}
}
