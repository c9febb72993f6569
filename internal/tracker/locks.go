// ABOUTME: Per-day mutexes so at most one recompute runs for a given date.
// ABOUTME: Entries are reference counted and dropped when no caller holds them.
package tracker

import "sync"

type dayLock struct {
	mu   sync.Mutex
	refs int
}

// dayLocks serializes work keyed by a YYYY-MM-DD string.
type dayLocks struct {
	mu    sync.Mutex
	locks map[string]*dayLock
}

// lock blocks until key is free and returns its unlock function.
func (d *dayLocks) lock(key string) func() {
	d.mu.Lock()
	if d.locks == nil {
		d.locks = make(map[string]*dayLock)
	}
	l, ok := d.locks[key]
	if !ok {
		l = &dayLock{}
		d.locks[key] = l
	}
	l.refs++
	d.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		d.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(d.locks, key)
		}
		d.mu.Unlock()
	}
}
