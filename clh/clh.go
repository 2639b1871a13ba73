// Package clh implements the Craig, Landin, and Hagersten (CLH) lock:
// a list-based queueing lock where each waiter spins on its
// predecessor's node rather than its own, as MCS does. The lock's
// tail always points at the most recently enqueued node; a permanent
// dummy node sits at the head so the very first acquirer always has
// a predecessor to spin on.
//
// Example usage:
//
//	lock, err := clh.NewLock()
//	if err != nil {
//	    // handle error
//	}
//	node := lock.NewNode()
//
//	lock.Lock(node)
//	// ... critical section ...
//	node = lock.Unlock(node)
//
// Node lifetime is the one detail CLH asks of its caller that MCS
// does not: Unlock hands back a new node (the predecessor's, now
// free) for the caller to present on its next Lock call. This package
// commits to discipline (a) from spec §9's open question — each
// goroutine retains exactly one node, which after Unlock becomes the
// slot a future successor will spin on — rather than leaking the
// released node or maintaining a free-list.
package clh

import (
	"github.com/ahrav/gospin/internal/atomic32"
	"github.com/ahrav/gospin/internal/atomicptr"
)

// Node is a CLH queue node. A goroutine owns exactly one Node per
// lock at a time; Unlock returns the Node the caller should present
// on its next Lock call, so the caller's variable should always be
// reassigned from Unlock's return value.
type Node struct {
	locked uint32
	prev   *Node // predecessor node, recorded by Lock, consumed by Unlock
}

// Lock is a CLH queueing lock.
type Lock struct {
	tail atomicptr.Value[Node]
}

// NewLock creates a new CLH lock, allocating a permanent dummy node
// at its head. Allocation is the only fallible step anywhere in this
// module (spec §7); it cannot actually fail in Go, but NewLock still
// returns an error so the signature matches what a bounded-node-pool
// variant would need without an API break.
func NewLock() (*Lock, error) {
	l := new(Lock)
	dummy := &Node{locked: 0}
	l.tail.Store(dummy)
	return l, nil
}

// NewNode allocates a fresh queue node for a goroutine to present on
// its first Lock call.
func (l *Lock) NewNode() *Node { return &Node{} }

// Lock acquires the lock using node, which the caller must own and
// not share with another goroutine concurrently. node.locked is set
// before node is published, so a predecessor that is about to release
// never observes a node that looks already free.
func (l *Lock) Lock(node *Node) {
	atomic32.Store(&node.locked, 1)
	prev := l.tail.Xchg(node)
	node.prev = prev

	for atomic32.LoadAcquire(&prev.locked) != 0 {
		atomic32.Pause()
	}
}

// Unlock releases the lock held via node and returns the node the
// caller now owns for its next Lock call: its former predecessor,
// whose locked flag was already 0 when Lock returned and which no one
// else will ever reference again as a predecessor. This call sets
// node's own locked flag to 0, which releases the successor spinning
// on node.
func (l *Lock) Unlock(node *Node) *Node {
	prev := node.prev
	atomic32.StoreRelease(&node.locked, 0)
	return prev
}
