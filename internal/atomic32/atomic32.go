// Package atomic32 provides the 32-bit atomic operations the lock
// algorithms in this module are allowed to assume: relaxed loads and
// stores, acquire loads, release stores, an acquire-release exchange,
// a strong compare-and-swap, and the fetch-and-op family. It is a thin
// wrapper over sync/atomic that names each operation by the memory
// order it actually provides, so a lock implementation reads as a
// direct transcription of its ordering contract.
//
// Go's memory model gives every sync/atomic operation acquire-release
// semantics unconditionally; there is no cheaper "relaxed" mode to
// drop down to. The relaxed-named operations here are therefore
// stricter than their name promises, never weaker, so every algorithm
// written against this package remains correct.
package atomic32

import "sync/atomic"

// Load reads *p with relaxed ordering (in practice: acquire, see package doc).
func Load(p *uint32) uint32 { return atomic.LoadUint32(p) }

// Store writes v to *p with relaxed ordering (in practice: release).
func Store(p *uint32, v uint32) { atomic.StoreUint32(p, v) }

// LoadAcquire reads *p with acquire ordering: no operation the caller
// issues after this load is reordered before it.
func LoadAcquire(p *uint32) uint32 { return atomic.LoadUint32(p) }

// StoreRelease writes v to *p with release ordering: every operation
// the caller issued before this store is visible to whoever observes v.
func StoreRelease(p *uint32, v uint32) { atomic.StoreUint32(p, v) }

// Xchg atomically writes v to *p and returns the previous value, with
// acquire-release ordering.
func Xchg(p *uint32, v uint32) uint32 { return atomic.SwapUint32(p, v) }

// Cmpxchg performs a strong compare-and-swap: if *p == exp, it is set
// to new and (exp, true) is returned; otherwise the true current value
// is returned alongside false. Spurious failure is not possible.
func Cmpxchg(p *uint32, exp, new uint32) (old uint32, swapped bool) {
	for {
		cur := atomic.LoadUint32(p)
		if cur != exp {
			return cur, false
		}
		if atomic.CompareAndSwapUint32(p, exp, new) {
			return exp, true
		}
		// Another writer raced us between the load and the CAS; the
		// CAS failed because *p changed, not because of spurious
		// failure. Retry so the contract's "strong CAS" promise holds.
	}
}

// FetchAdd adds v to *p and returns the previous value.
func FetchAdd(p *uint32, v uint32) uint32 { return atomic.AddUint32(p, v) - v }

// FetchSub subtracts v from *p and returns the previous value.
func FetchSub(p *uint32, v uint32) uint32 { return atomic.AddUint32(p, -v) + v }

// FetchAnd ANDs v into *p and returns the previous value.
func FetchAnd(p *uint32, v uint32) uint32 {
	for {
		old := atomic.LoadUint32(p)
		if atomic.CompareAndSwapUint32(p, old, old&v) {
			return old
		}
	}
}

// FetchOr ORs v into *p and returns the previous value.
func FetchOr(p *uint32, v uint32) uint32 {
	for {
		old := atomic.LoadUint32(p)
		if atomic.CompareAndSwapUint32(p, old, old|v) {
			return old
		}
	}
}

// Inc atomically increments *p and returns the new value.
func Inc(p *uint32) uint32 { return atomic.AddUint32(p, 1) }

// Dec atomically decrements *p and returns the new value.
func Dec(p *uint32) uint32 { return atomic.AddUint32(p, ^uint32(0)) }
