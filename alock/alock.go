// Package alock implements the Anderson array-based lock: a fair
// mutual-exclusion lock for a bounded number of concurrent callers
// that gives every waiter its own cache-line-sized flag slot to spin
// on, instead of one shared word every waiter touches.
//
// The array-based lock provides several benefits:
//   - Fair scheduling with FIFO ordering of lock acquisition
//   - Bounded memory usage based on the number of goroutines
//   - Each goroutine spins on its own dedicated flag, reducing contention
//
// Example usage:
//
//	lock := alock.NewLock(4) // support up to 4 concurrent callers
//
//	tok := lock.Lock()
//	// ... critical section ...
//	lock.Unlock(tok)
//
//	if tok, ok := lock.TryLock(); ok {
//	    // ... critical section ...
//	    lock.Unlock(tok)
//	}
//
// N must be sized to the maximum number of callers that will ever be
// inside Lock/Unlock concurrently; exceeding it breaks mutual
// exclusion, and sizing it is the caller's responsibility (spec §3,
// "Anderson bound").
//
// Lock returns a Token identifying the slot the caller was assigned.
// The teacher implementation this package descends from instead
// stashed that slot in a field on the lock handle itself, which is
// only safe if every goroutine holds a distinct handle; a single
// shared handle (the only kind its constructor could produce) would
// let concurrent callers clobber each other's slot. Returning the
// slot as a token removes that failure mode entirely.
package alock

import (
	"github.com/ahrav/gospin/internal/atomic32"
	"github.com/ahrav/gospin/internal/cpupad"
)

// MaxSlots is the largest N this package supports, matching the
// ANDERSON_LOCK_MAX_THREADS bound in the original implementation.
const MaxSlots = 64

// Token identifies the flag slot a caller was assigned by Lock or
// TryLock. It must be passed back to Unlock and used at most once.
type Token uint32

// Lock is an Anderson array-based lock supporting up to N concurrent
// callers.
type Lock struct {
	flags       []cpupad.Flag32 // one cache-line-padded flag per slot
	tail        uint32          // next slot to hand out, mod size
	servingSlot uint32          // slot currently holding the lock
	size        uint32
}

// NewLock initializes an Anderson lock with the given number of slots.
// n is clamped to MaxSlots, matching the original's bound.
func NewLock(n uint32) *Lock {
	if n == 0 {
		n = 1
	}
	if n > MaxSlots {
		n = MaxSlots
	}
	l := &Lock{
		size:  n,
		flags: make([]cpupad.Flag32, n),
	}
	l.flags[0].V = 1 // first slot starts available
	return l
}

// Lock acquires the lock, busy-waiting on the caller's assigned slot,
// and returns the Token to pass to Unlock.
func (l *Lock) Lock() Token {
	slot := atomic32.FetchAdd(&l.tail, 1) % l.size

	for atomic32.LoadAcquire(&l.flags[slot].V) == 0 {
		atomic32.Pause()
	}
	// Clear our flag so it can be reused by whoever wraps around to
	// this slot next.
	atomic32.StoreRelease(&l.flags[slot].V, 0)

	return Token(slot)
}

// TryLock attempts to acquire the lock without blocking. It only
// succeeds when the next slot to be handed out is already flagged
// available, i.e. the lock is uncontended.
func (l *Lock) TryLock() (Token, bool) {
	tail := atomic32.Load(&l.tail)
	slot := tail % l.size
	if atomic32.LoadAcquire(&l.flags[slot].V) == 0 {
		return 0, false
	}
	if _, ok := atomic32.Cmpxchg(&l.tail, tail, tail+1); !ok {
		return 0, false
	}
	atomic32.StoreRelease(&l.flags[slot].V, 0)
	return Token(slot), true
}

// Unlock releases the lock, handing it to the next slot in the
// round-robin queue.
func (l *Lock) Unlock(tok Token) {
	next := (uint32(tok) + 1) % l.size
	atomic32.Store(&l.servingSlot, next)
	atomic32.StoreRelease(&l.flags[next].V, 1)
}
