package anywork_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/spdxbridge/sdg/anywork"
	"github.com/spdxbridge/sdg/hamlet"
)

func TestPoolRunsEveryWorkItem(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	pool := anywork.NewPool(4)
	defer pool.Close()

	var counter int64
	for step := 0; step < 100; step++ {
		pool.Backlog(func() {
			atomic.AddInt64(&counter, 1)
		})
	}
	must_be.Nil(pool.Sync())
	must_be.Equal(int64(100), atomic.LoadInt64(&counter))
}

func TestPanickyWorkIsCountedNotFatal(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	pool := anywork.NewPool(2)
	defer pool.Close()

	var survived int64
	pool.Backlog(func() {
		atomic.AddInt64(&survived, 1)
	})
	pool.Backlog(func() {
		panic("this one is broken")
	})
	pool.Backlog(func() {
		atomic.AddInt64(&survived, 1)
	})

	err := pool.Sync()
	wont_be.Nil(err)
	must_be.Contain("1 failures", err.Error())
	must_be.Equal(int64(2), atomic.LoadInt64(&survived))
}

func TestWorkerBoundIsHonored(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	pool := anywork.NewPool(2)
	defer pool.Close()
	must_be.Equal(uint64(2), pool.Scale())

	var active, peak int64
	for step := 0; step < 8; step++ {
		pool.Backlog(func() {
			now := atomic.AddInt64(&active, 1)
			for {
				seen := atomic.LoadInt64(&peak)
				if now <= seen || atomic.CompareAndSwapInt64(&peak, seen, now) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			atomic.AddInt64(&active, -1)
		})
	}
	must_be.Nil(pool.Sync())
	must_be.True(atomic.LoadInt64(&peak) <= 2)
	must_be.True(atomic.LoadInt64(&peak) >= 1)
}

func TestZeroSizeAsksForOptimalCount(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	pool := anywork.NewPool(0)
	defer pool.Close()
	must_be.True(pool.Scale() >= 1)
}

func TestSyncWithEmptyBacklogIsImmediate(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	pool := anywork.NewPool(1)
	defer pool.Close()
	must_be.Nil(pool.Sync())
	pool.Backlog(nil)
	must_be.Nil(pool.Sync())
}
