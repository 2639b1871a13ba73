// Package rwlockphase implements a phase-fair reader-writer spin
// lock: acquisitions alternate between a reader phase, which drains
// every reader that arrived during it, and a single writer phase,
// bounding both reader and writer wait times under steady contention.
// This is the fairness guarantee rwlock's writer-preferring lock does
// not make.
//
// Example usage:
//
//	l := rwlockphase.NewLock()
//	l.RLock()
//	// ... read-only section ...
//	l.RUnlock()
//
//	l.Lock()
//	// ... exclusive section ...
//	l.Unlock()
package rwlockphase

import "github.com/ahrav/gospin/internal/atomic32"

// Lock is a phase-fair reader-writer spin lock over four 32-bit
// words: the active reader count, the count of writers currently
// waiting to enter their phase, a 0/1 flag for whether a writer is
// active, and a phase toggle (1 = reader phase open, 0 = writer
// phase).
type Lock struct {
	readers      uint32
	writers      uint32
	writerActive uint32
	readPhase    uint32
}

// NewLock creates a phase-fair lock with the reader phase open, so the
// first caller of either role does not need to wait on an initial
// writer phase that never had a writer in it.
func NewLock() *Lock {
	return &Lock{readPhase: 1}
}

// RLock acquires a read lock, waiting for an open reader phase with
// no active writer, then committing optimistically and rolling back
// if a writer became active during the increment — the same race
// closure rwlock.Lock.RLock uses, applied to the phase-fair state.
func (l *Lock) RLock() {
	for {
		if atomic32.Load(&l.writerActive) == 0 && atomic32.Load(&l.readPhase) == 1 {
			r := atomic32.Load(&l.readers)
			if _, ok := atomic32.Cmpxchg(&l.readers, r, r+1); ok {
				if atomic32.Load(&l.writerActive) == 0 {
					return
				}
				atomic32.Dec(&l.readers)
			}
		}
		atomic32.Pause()
	}
}

// RUnlock releases a read lock.
func (l *Lock) RUnlock() {
	atomic32.FetchSub(&l.readers, 1)
}

// Lock acquires the exclusive write lock. It announces itself by
// incrementing writers and closing the reader phase, so no new reader
// can enter; waits for readers already admitted to drain; then claims
// writerActive and waits once more for readers to drain, since a
// reader can pass its writerActive re-check just before the claim.
func (l *Lock) Lock() {
	atomic32.Inc(&l.writers)
	atomic32.Store(&l.readPhase, 0)

	for atomic32.Load(&l.readers) != 0 {
		atomic32.Pause()
	}

	for atomic32.Xchg(&l.writerActive, 1) != 0 {
		atomic32.Pause()
	}
	for atomic32.Load(&l.readers) != 0 {
		atomic32.Pause()
	}
	atomic32.Dec(&l.writers)
}

// Unlock releases the write lock and re-opens the reader phase.
func (l *Lock) Unlock() {
	atomic32.StoreRelease(&l.writerActive, 0)
	atomic32.Store(&l.readPhase, 1)
}
