package anywork

import (
	"fmt"
	"os"
	"sync"

	"github.com/spdxbridge/sdg/common"
)

type Work func()
type WorkQueue chan Work
type Failures chan string
type Counters chan uint64

// Pool is a bounded set of workers fed from a backlog queue. Work functions
// fire and forget; a panic inside one is caught, reported, and counted, so
// one broken work item never takes the rest of the batch down.
type Pool struct {
	group    sync.WaitGroup
	pipeline WorkQueue
	failpipe Failures
	errcount Counters
	size     uint64
}

// NewPool spawns the given number of workers. Zero or less asks for the
// optimal count for process spawning work.
func NewPool(size int) *Pool {
	if size < 1 {
		size = common.OptimalWorkerCount()
	}
	it := &Pool{
		pipeline: make(WorkQueue, 64),
		failpipe: make(Failures),
		errcount: make(Counters),
		size:     uint64(size),
	}
	go it.watcher()
	for identity := uint64(0); identity < it.size; identity++ {
		go it.member(identity)
	}
	return it
}

func (it *Pool) Scale() uint64 {
	return it.size
}

func (it *Pool) catcher(title string, identity uint64) {
	catch := recover()
	if catch != nil {
		it.failpipe <- fmt.Sprintf("Recovering %q #%d: %v", title, identity, catch)
	}
}

func (it *Pool) process(fun Work, identity uint64) {
	defer it.catcher("process", identity)
	fun()
}

func (it *Pool) member(identity uint64) {
	for work := range it.pipeline {
		it.process(work, identity)
		it.group.Done()
	}
}

func (it *Pool) watcher() {
	counter := uint64(0)
	for {
		select {
		case fail, ok := <-it.failpipe:
			if !ok {
				return
			}
			counter += 1
			fmt.Fprintln(os.Stderr, fail)
		case it.errcount <- counter:
			counter = 0
		}
	}
}

// Backlog queues one work item. A full queue blocks, which is the wanted
// backpressure when work arrives faster than workers drain it.
func (it *Pool) Backlog(todo Work) {
	if todo != nil {
		it.group.Add(1)
		it.pipeline <- todo
	}
}

// Sync waits until every backlogged work item has finished and tells how
// many of them failed.
func (it *Pool) Sync() error {
	it.group.Wait()
	count := <-it.errcount
	if count > 0 {
		return fmt.Errorf("There has been %d failures. See messages above.", count)
	}
	return nil
}

// Close releases the workers. Only call it after Sync, when no work is in
// flight anymore.
func (it *Pool) Close() {
	close(it.pipeline)
	close(it.failpipe)
}
