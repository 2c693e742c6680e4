// Package worker provides a fixed-size goroutine pool used to bound
// concurrent database work during cron scans.
package worker

import (
	"sync"
)

type TaskFunc func()

type Pool struct {
	maxWorkers int
	taskQueue  chan TaskFunc
	wg         sync.WaitGroup
	quit       chan struct{}
}

func NewPool(maxWorkers int) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	p := &Pool{
		maxWorkers: maxWorkers,
		taskQueue:  make(chan TaskFunc, 100),
		quit:       make(chan struct{}),
	}
	p.start()
	return p
}

func (p *Pool) start() {
	for i := 0; i < p.maxWorkers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case task, ok := <-p.taskQueue:
					if !ok {
						return
					}
					task()
				case <-p.quit:
					return
				}
			}
		}()
	}
}

// Submit enqueues a task and returns the current queue depth.
func (p *Pool) Submit(task TaskFunc) int {
	p.taskQueue <- task
	return len(p.taskQueue)
}

func (p *Pool) QueueSize() int {
	return len(p.taskQueue)
}

func (p *Pool) Shutdown() {
	close(p.quit)
	p.wg.Wait()
}

// RunBatch submits every task and blocks until all of them have finished.
// Used by scan-style jobs that need bounded parallelism but a synchronous
// overall result.
func (p *Pool) RunBatch(tasks []TaskFunc) {
	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for _, task := range tasks {
		t := task
		p.Submit(func() {
			defer wg.Done()
			t()
		})
	}
	wg.Wait()
}
