package mcs

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestLockConcurrentAccess(t *testing.T) {
	lock := NewLock()
	const numGoroutines = 8
	const iterations = 100000
	counter := 0

	var g errgroup.Group
	for i := 0; i < numGoroutines; i++ {
		g.Go(func() error {
			var node QNode
			for j := 0; j < iterations; j++ {
				lock.Lock(&node)
				counter++
				lock.Unlock(&node)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, numGoroutines*iterations, counter)
}

// TestFIFO verifies acquisitions are granted in the order each
// goroutine's node reached the tail, mirroring spec's FIFO property:
// if A's node was swapped into the tail before B's, A's critical
// section completes before B's begins. Each waiter is started only
// after the test confirms the previous one has already published
// itself as the new tail, so enqueue order is fully controlled.
func TestFIFO(t *testing.T) {
	lock := NewLock()
	const numWaiters = 3

	var holderNode QNode
	lock.Lock(&holderNode)

	nodes := make([]QNode, numWaiters)
	entered := make(chan int, numWaiters)

	var g errgroup.Group
	for i := 0; i < numWaiters; i++ {
		id := i
		g.Go(func() error {
			lock.Lock(&nodes[id])
			entered <- id
			lock.Unlock(&nodes[id])
			return nil
		})
		// Wait until this waiter has published itself as the tail
		// before starting the next one, fixing enqueue order.
		for lock.tail.Load() != &nodes[id] {
			runtime.Gosched()
		}
	}

	lock.Unlock(&holderNode)
	require.NoError(t, g.Wait())
	close(entered)

	var order []int
	for id := range entered {
		order = append(order, id)
	}
	require.Len(t, order, numWaiters)
	for i := 0; i < numWaiters; i++ {
		assert.Equal(t, i, order[i], "waiters must enter in enqueue order: %v", order)
	}
}

func TestTryLock(t *testing.T) {
	lock := NewLock()
	var node1, node2 QNode

	require.True(t, lock.TryLock(&node1), "TryLock should succeed on a free lock")
	require.False(t, lock.TryLock(&node2), "a second TryLock on a held lock must fail")

	lock.Unlock(&node1)

	require.True(t, lock.TryLock(&node2), "TryLock should succeed again after Unlock")
	lock.Unlock(&node2)
}

func TestIsFree(t *testing.T) {
	lock := NewLock()
	var node QNode

	assert.True(t, lock.IsFree())
	lock.Lock(&node)
	assert.False(t, lock.IsFree())
	lock.Unlock(&node)
	assert.True(t, lock.IsFree())
}

func BenchmarkMCSLockUncontended(b *testing.B) {
	lock := NewLock()
	var node QNode
	for i := 0; i < b.N; i++ {
		lock.Lock(&node)
		lock.Unlock(&node)
	}
}

func BenchmarkMCSLockContended(b *testing.B) {
	lock := NewLock()
	shared := 0
	b.RunParallel(func(pb *testing.PB) {
		var node QNode
		for pb.Next() {
			lock.Lock(&node)
			shared++
			lock.Unlock(&node)
		}
	})
}
