// ABOUTME: Tests for per-day lock serialization and cleanup.
// ABOUTME: Verifies same-key exclusion and that idle keys are released.
package tracker

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestDayLocksSerializeSameKey(t *testing.T) {
	var locks dayLocks
	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("2025-01-01")
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Errorf("expected at most one holder, saw %d", maxInside)
	}
	if len(locks.locks) != 0 {
		t.Errorf("expected idle keys to be released, %d remain", len(locks.locks))
	}
}

func TestDayLocksIndependentKeys(t *testing.T) {
	var locks dayLocks
	unlockA := locks.lock("2025-01-01")
	unlockB := locks.lock("2025-01-02")
	unlockB()
	unlockA()
}
