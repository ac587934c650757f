// Package pqueue implements a bounded priority queue kept sorted on insert,
// lowest priority first.
package pqueue

import (
	"sort"
)

// WithCap bounds the queue: once full, pushing drops the highest priority item.
func WithCap(size uint) Option {
	return func(o *options) {
		o.cap = int(size)
	}
}

type Option func(*options)

type options struct {
	cap int
}

type item[T any] struct {
	value T
	prior float64
}

func New[T any](opts ...Option) *Queue[T] {
	o := options{cap: -1}
	for _, opt := range opts {
		opt(&o)
	}
	return &Queue[T]{opts: o}
}

type Queue[T any] struct {
	opts  options
	items []item[T]
}

// Push inserts val keeping items ordered by priority. Items of equal
// priority keep their insertion order.
func (q *Queue[T]) Push(val T, priority float64) {
	if q.opts.cap == 0 {
		return
	}
	full := q.opts.cap > 0 && len(q.items) >= q.opts.cap
	idx := sort.Search(len(q.items), func(i int) bool {
		return priority < q.items[i].prior
	})
	if full && idx == len(q.items) {
		return
	}
	q.items = append(q.items, item[T]{})
	copy(q.items[idx+1:], q.items[idx:])
	q.items[idx] = item[T]{value: val, prior: priority}
	if full {
		q.items = q.items[:q.opts.cap]
	}
}

// Worst returns the priority of the last ranked item; ok is false when the
// queue is not yet full, so any priority would still be accepted.
func (q *Queue[T]) Worst() (priority float64, ok bool) {
	if q.opts.cap <= 0 || len(q.items) < q.opts.cap {
		return 0, false
	}
	return q.items[len(q.items)-1].prior, true
}

func (q *Queue[T]) Seek(idx int) (T, float64) {
	it := q.items[idx]
	return it.value, it.prior
}

func (q *Queue[T]) Len() int { return len(q.items) }
