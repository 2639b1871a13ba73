// Package spinlock implements the two simplest mutual-exclusion
// primitives in this module: a test-and-set (TAS) spinlock and a
// test-and-test-and-set (TATAS) spinlock. Both protect a single
// 32-bit word and offer no fairness guarantee — a waiter may be
// starved indefinitely under contention. Use ticket, alock, mcs, or
// clh when FIFO ordering matters.
//
// Example usage:
//
//	var l spinlock.TAS
//	l.Lock()
//	// ... critical section ...
//	l.Unlock()
package spinlock

import "github.com/ahrav/gospin/internal/atomic32"

// TAS is a test-and-set spinlock: a single word that is 0 when free
// and 1 when held. Lock spins on a bare exchange, so every failed
// attempt is a write to the lock's cache line; TATAS below reduces
// that cost under contention.
type TAS struct {
	locked uint32
}

// Lock repeatedly exchanges 1 into the lock word until it observes a
// stale value of 0, meaning it was the one to transition free -> held.
func (l *TAS) Lock() {
	for atomic32.Xchg(&l.locked, 1) != 0 {
		atomic32.Pause()
	}
}

// TryLock attempts one exchange and reports whether it found the lock
// free.
func (l *TAS) TryLock() bool {
	return atomic32.Xchg(&l.locked, 1) == 0
}

// Unlock releases the lock with a release store, so every write made
// during the critical section is visible to the next acquirer.
func (l *TAS) Unlock() {
	atomic32.StoreRelease(&l.locked, 0)
}

// TATAS is a test-and-test-and-set spinlock. It is semantically
// identical to TAS but reads the lock word with a plain load before
// attempting the exchange, so a spinning waiter only generates
// read traffic (which every core can satisfy from a shared cache
// line) until it actually sees the lock go free.
type TATAS struct {
	locked uint32
}

// Lock spins reading the lock word and only attempts an exchange once
// it looks free, retrying if another goroutine won the race.
func (l *TATAS) Lock() {
	for {
		if atomic32.Load(&l.locked) == 0 && atomic32.Xchg(&l.locked, 1) == 0 {
			return
		}
		atomic32.Pause()
	}
}

// TryLock attempts one exchange and reports whether it found the lock
// free.
func (l *TATAS) TryLock() bool {
	return atomic32.Xchg(&l.locked, 1) == 0
}

// Unlock releases the lock with a release store.
func (l *TATAS) Unlock() {
	atomic32.StoreRelease(&l.locked, 0)
}
