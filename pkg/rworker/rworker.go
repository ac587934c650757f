package rworker

import "sync"

// Pool runs jobs with at most rate of them in flight.
type Pool struct {
	wg   sync.WaitGroup
	rate chan struct{}
}

func New(rate int) *Pool {
	if rate < 1 {
		rate = 1
	}
	return &Pool{rate: make(chan struct{}, rate)}
}

// Job schedules fn. It does not block the caller.
func (p *Pool) Job(fn func()) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.rate <- struct{}{}
		defer func() { <-p.rate }()
		fn()
	}()
}

// Wait blocks until every scheduled job has returned.
func (p *Pool) Wait() {
	p.wg.Wait()
}
