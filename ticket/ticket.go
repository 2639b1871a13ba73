// Package ticket provides a fair mutual exclusion lock implementation using a ticket-based
// queuing system. The Lock type ensures FIFO ordering of lock acquisition by
// maintaining a queue of waiting goroutines using ticket numbers. This provides fairness
// by serving lock requests in the exact order they arrive.
package ticket

import "github.com/ahrav/gospin/internal/atomic32"

// Lock implements a fair mutual exclusion lock using a ticket-based queuing system.
// The lock maintains a queue of waiting goroutines using ticket numbers, ensuring FIFO
// ordering of lock acquisition. This provides fairness by serving lock requests in the
// exact order they arrive.
//
// The internal implementation uses two counters:
//   - nextTicket: the next ticket number to be issued
//   - serving: the ticket number currently being served
//
// The lock is free when nextTicket == serving.
type Lock struct {
	nextTicket uint32 // Next ticket to be issued
	serving    uint32 // Ticket currently being served
}

// NewLock creates a new Lock.
func NewLock() *Lock { return &Lock{} }

// TryLock attempts to acquire the lock without blocking. It returns true if the lock
// was acquired successfully, and false if the lock is currently contended. Unlike Lock,
// TryLock never queues behind an outstanding ticket: it only succeeds when the lock is
// completely free.
func (t *Lock) TryLock() bool {
	next := atomic32.Load(&t.nextTicket)
	serving := atomic32.Load(&t.serving)
	if next != serving {
		return false
	}
	if old, ok := atomic32.Cmpxchg(&t.nextTicket, next, next+1); ok {
		return atomic32.LoadAcquire(&t.serving) == old
	}
	return false
}

// Lock acquires the lock using a ticket-based queuing system. The caller takes a
// ticket by incrementing nextTicket, then busy-waits until serving reaches that
// ticket. This gives strict FIFO ordering: tickets are served in the exact order
// they were issued.
func (t *Lock) Lock() {
	myTicket := atomic32.FetchAdd(&t.nextTicket, 1)

	// Fast path: lock was free, no spinning needed.
	if atomic32.LoadAcquire(&t.serving) == myTicket {
		return
	}

	for atomic32.LoadAcquire(&t.serving) != myTicket {
		atomic32.Pause()
	}
}

// Unlock releases the lock, advancing serving so the next ticket holder may enter.
func (t *Lock) Unlock() {
	atomic32.StoreRelease(&t.serving, t.serving+1)
}

// isFree reports whether the lock currently has no outstanding ticket.
func (t *Lock) isFree() bool {
	return atomic32.Load(&t.nextTicket) == atomic32.Load(&t.serving)
}
