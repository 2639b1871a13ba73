// Package mcs implements the Mellor-Crummey Scott (MCS) lock, a scalable FIFO queue-based spin lock.
//
// An MCS lock provides several advantages over traditional spin locks:
//   - FIFO ordering ensures fair lock acquisition
//   - Each thread spins on a local variable, reducing memory contention and cache invalidation
//   - Memory usage scales with the number of threads contending for the lock
//   - Predictable performance under high contention
//
// Example usage:
//
//	lock := mcs.NewLock()
//	node := &mcs.QNode{}
//
//	// Blocking acquisition
//	lock.Lock(node)
//	// ... critical section ...
//	lock.Unlock(node)
//
//	// Non-blocking try-lock
//	if lock.TryLock(node) {
//	    // ... critical section ...
//	    lock.Unlock(node)
//	}
//
// Each goroutine must maintain its own QNode instance, allocated once and
// reused across acquisitions: a node must not be reused until the Unlock
// call that owns it has returned, since a successor may still be about
// to publish its own pointer into it (spec §3, "MCS node lifetime").
// A single QNode must never be used concurrently by multiple goroutines.
package mcs

import (
	"github.com/ahrav/gospin/internal/atomic32"
	"github.com/ahrav/gospin/internal/atomicptr"
)

// QNode represents a queue node in the MCS lock. The original C
// implementation published node pointers by casting through a 32-bit
// atomic word, which is latent undefined
// behavior on 64-bit targets (spec §9's "single most important
// correctness fix"); next here is a pointer-width atomic instead.
type QNode struct {
	next    atomicptr.Value[QNode]
	waiting uint32
}

// Lock represents the MCS lock.
type Lock struct {
	tail atomicptr.Value[QNode]
}

// NewLock creates a new MCS lock.
func NewLock() *Lock { return new(Lock) }

// TryLock attempts to acquire the lock without blocking.
// Returns true if lock was acquired, false otherwise.
func (l *Lock) TryLock(node *QNode) bool {
	node.next.Store(nil)
	return l.tail.Cmpxchg(nil, node)
}

// Lock acquires the lock.
func (l *Lock) Lock(node *QNode) {
	node.next.Store(nil)
	pred := l.tail.Xchg(node) // Atomically put ourselves at the tail.

	if pred == nil { // No predecessor, lock acquired.
		return
	}

	// Someone else is holding the lock, wait for predecessor to signal us.
	atomic32.Store(&node.waiting, 1)
	pred.next.StoreRelease(node) // Link to predecessor.

	// Spin until predecessor signals us.
	for atomic32.LoadAcquire(&node.waiting) != 0 {
		atomic32.Pause()
	}
}

// Unlock releases the lock.
func (l *Lock) Unlock(node *QNode) {
	// Check if there's a successor.
	if node.next.Load() == nil {
		// No one waiting? Try to set tail back to nil.
		if l.tail.Cmpxchg(node, nil) {
			return
		}

		// Someone is mid-enqueue; wait for them to publish their node.
		for {
			succ := node.next.LoadAcquire()
			if succ != nil {
				atomic32.StoreRelease(&succ.waiting, 0) // Signal successor.
				return
			}
			atomic32.Pause()
		}
	}

	// Signal our successor.
	succ := node.next.LoadAcquire()
	atomic32.StoreRelease(&succ.waiting, 0)
}

// IsFree returns true if the lock is currently free.
func (l *Lock) IsFree() bool { return l.tail.Load() == nil }
