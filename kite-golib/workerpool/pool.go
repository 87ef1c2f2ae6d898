package workerpool

import "sync"

// Job is a unit of work run by a Pool.
type Job func() error

// Pool runs jobs on a fixed number of goroutines. Jobs may be added in
// batches; Wait blocks until every job added so far has finished.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []Job
	stopped bool
	err     error

	pending sync.WaitGroup
	workers sync.WaitGroup
}

// New starts a pool with n workers (at least one).
func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{}
	p.cond = sync.NewCond(&p.mu)
	p.workers.Add(n)
	for i := 0; i < n; i++ {
		go p.work()
	}
	return p
}

// Add queues jobs. Jobs added after Stop are dropped.
func (p *Pool) Add(jobs []Job) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.pending.Add(len(jobs))
	p.queue = append(p.queue, jobs...)
	p.cond.Broadcast()
}

// Wait blocks until all queued jobs have completed or been dropped, and
// returns the first error returned by any of them since the last Wait.
func (p *Pool) Wait() error {
	p.pending.Wait()
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.err
	p.err = nil
	return err
}

// Stop drops queued jobs that have not started and shuts the workers down once
// running jobs return.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		p.pending.Add(-len(p.queue))
		p.queue = nil
		p.cond.Broadcast()
	}
	p.mu.Unlock()
	p.workers.Wait()
}

func (p *Pool) work() {
	defer p.workers.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.stopped {
			p.cond.Wait()
		}
		if p.stopped {
			p.mu.Unlock()
			return
		}
		job := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.mu.Unlock()

		err := job()

		if err != nil {
			p.mu.Lock()
			if p.err == nil {
				p.err = err
			}
			p.mu.Unlock()
		}
		p.pending.Done()
	}
}
