// Package rwlock implements a writer-preferring reader-writer spin
// lock: any number of readers may hold the lock simultaneously, but a
// writer excludes all readers and other writers, and once a writer
// has announced intent no new reader may enter until it releases.
//
// This variant does not guarantee readers will not starve under a
// continuous stream of writer arrivals (spec §4.7); use rwlockphase
// for a fairness guarantee across both roles.
//
// Example usage:
//
//	var l rwlock.Lock
//
//	l.RLock()
//	// ... read-only section ...
//	l.RUnlock()
//
//	l.Lock()
//	// ... exclusive section ...
//	l.Unlock()
package rwlock

import "github.com/ahrav/gospin/internal/atomic32"

// Lock is a writer-preferring reader-writer spin lock over two
// 32-bit words: the count of active readers and a 0/1 writer flag.
type Lock struct {
	readers uint32
	writer  uint32
}

// RLock acquires a read lock. It commits optimistically — increments
// readers, then re-checks that no writer slipped in during the
// window between the initial check and the increment — and rolls
// back and retries if one did. This rollback is the race closure
// spec §8 asks for: without it, a writer setting writer=1 between the
// check and the CAS would let a reader enter alongside it.
func (l *Lock) RLock() {
	for {
		for atomic32.Load(&l.writer) != 0 {
			atomic32.Pause()
		}

		r := atomic32.Load(&l.readers)
		if _, ok := atomic32.Cmpxchg(&l.readers, r, r+1); ok {
			if atomic32.Load(&l.writer) == 0 {
				return
			}
			// A writer arrived between our check and our CAS: back off.
			atomic32.Dec(&l.readers)
		}
		atomic32.Pause()
	}
}

// RTryLock attempts to acquire a read lock without blocking, applying
// the same optimistic-increment-then-verify protocol as RLock and
// unwinding on failure.
func (l *Lock) RTryLock() bool {
	if atomic32.Load(&l.writer) != 0 {
		return false
	}
	r := atomic32.Load(&l.readers)
	if _, ok := atomic32.Cmpxchg(&l.readers, r, r+1); ok {
		if atomic32.Load(&l.writer) == 0 {
			return true
		}
		atomic32.Dec(&l.readers)
	}
	return false
}

// RUnlock releases a read lock.
func (l *Lock) RUnlock() {
	atomic32.FetchSub(&l.readers, 1)
}

// Lock acquires the exclusive write lock. Setting writer=1 blocks any
// new reader from entering (writer preference); the caller then waits
// for readers already inside to drain before proceeding.
func (l *Lock) Lock() {
	for atomic32.Xchg(&l.writer, 1) != 0 {
		atomic32.Pause()
	}
	for atomic32.Load(&l.readers) != 0 {
		atomic32.Pause()
	}
}

// TryLock attempts to acquire the write lock without blocking,
// unwinding the writer flag if readers are still active.
func (l *Lock) TryLock() bool {
	if atomic32.Xchg(&l.writer, 1) != 0 {
		return false
	}
	if atomic32.Load(&l.readers) != 0 {
		atomic32.Store(&l.writer, 0)
		return false
	}
	return true
}

// Unlock releases the write lock.
func (l *Lock) Unlock() {
	atomic32.StoreRelease(&l.writer, 0)
}
