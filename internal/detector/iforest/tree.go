package iforest

import (
	"math"

	"github.com/valyala/fastrand"
)

const eulerGamma = 0.5772156649015329

type node struct {
	feature int
	split   float64
	left    *node
	right   *node
	// number of training samples that reached a leaf
	size int
}

func (n *node) leaf() bool {
	return n.left == nil
}

// grow builds an isolation tree over the sampled rows until every leaf is
// isolated, holds identical samples or reaches the height limit.
func grow(rng *fastrand.RNG, rows [][]float64, depth, limit int) *node {
	if depth >= limit || len(rows) <= 1 {
		return &node{size: len(rows)}
	}

	dims := len(rows[0])
	lo := make([]float64, dims)
	hi := make([]float64, dims)
	copy(lo, rows[0])
	copy(hi, rows[0])
	for _, r := range rows[1:] {
		for j, v := range r {
			lo[j] = math.Min(lo[j], v)
			hi[j] = math.Max(hi[j], v)
		}
	}
	candidates := make([]int, 0, dims)
	for j := 0; j < dims; j++ {
		if hi[j] > lo[j] {
			candidates = append(candidates, j)
		}
	}
	if len(candidates) == 0 {
		return &node{size: len(rows)}
	}

	feature := candidates[rng.Uint32n(uint32(len(candidates)))]
	split := lo[feature] + uniform(rng)*(hi[feature]-lo[feature])

	var left, right [][]float64
	for _, r := range rows {
		if r[feature] < split {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	// uniform may land exactly on the minimum
	if len(left) == 0 || len(right) == 0 {
		return &node{size: len(rows)}
	}

	return &node{
		feature: feature,
		split:   split,
		left:    grow(rng, left, depth+1, limit),
		right:   grow(rng, right, depth+1, limit),
	}
}

// pathLength is the depth at which vec is isolated, adjusted at leaves by
// the expected depth of the samples they still hold.
func (n *node) pathLength(vec []float64) float64 {
	depth := 0
	cur := n
	for !cur.leaf() {
		if vec[cur.feature] < cur.split {
			cur = cur.left
		} else {
			cur = cur.right
		}
		depth++
	}
	return float64(depth) + averagePathLength(cur.size)
}

// averagePathLength is the average path length of an unsuccessful search in
// a binary search tree of n nodes.
func averagePathLength(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	default:
		fn := float64(n)
		return 2*(math.Log(fn-1)+eulerGamma) - 2*(fn-1)/fn
	}
}

func uniform(rng *fastrand.RNG) float64 {
	return float64(rng.Uint32()) / (1 << 32)
}
