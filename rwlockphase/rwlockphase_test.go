package rwlockphase

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestMultipleReaders(t *testing.T) {
	l := NewLock()
	const numReaders = 8
	const iterations = 2000

	var active int32
	var maxActive int32
	var g errgroup.Group
	for i := 0; i < numReaders; i++ {
		g.Go(func() error {
			for j := 0; j < iterations; j++ {
				l.RLock()
				n := atomic.AddInt32(&active, 1)
				for {
					m := atomic.LoadInt32(&maxActive)
					if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
						break
					}
				}
				runtime.Gosched() // let other readers enter while this one holds the lock
				atomic.AddInt32(&active, -1)
				l.RUnlock()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Greater(t, maxActive, int32(1), "multiple readers should have overlapped")
}

func TestWriterExclusion(t *testing.T) {
	l := NewLock()
	const numReaders = 4
	const numWriters = 4
	const iterations = 10000

	var readersActive, writerActive int32
	var violation int32
	var writerCounter int

	var g errgroup.Group
	for i := 0; i < numReaders; i++ {
		g.Go(func() error {
			for j := 0; j < iterations; j++ {
				l.RLock()
				atomic.AddInt32(&readersActive, 1)
				if atomic.LoadInt32(&writerActive) != 0 {
					atomic.StoreInt32(&violation, 1)
				}
				atomic.AddInt32(&readersActive, -1)
				l.RUnlock()
			}
			return nil
		})
	}
	for i := 0; i < numWriters; i++ {
		g.Go(func() error {
			for j := 0; j < iterations; j++ {
				l.Lock()
				atomic.AddInt32(&writerActive, 1)
				if atomic.LoadInt32(&readersActive) != 0 {
					atomic.StoreInt32(&violation, 1)
				}
				writerCounter++
				atomic.AddInt32(&writerActive, -1)
				l.Unlock()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Zero(t, violation, "a reader and a writer must never be active simultaneously")
	assert.Equal(t, numWriters*iterations, writerCounter)
}

// TestPhaseAlternation checks that the read phase reopens after every
// writer release, so a reader arriving right after a writer unlocks is
// not forced to wait for a second writer.
func TestPhaseAlternation(t *testing.T) {
	l := NewLock()

	l.Lock()
	assert.Equal(t, uint32(0), atomic.LoadUint32(&l.readPhase))
	l.Unlock()
	assert.Equal(t, uint32(1), atomic.LoadUint32(&l.readPhase))

	l.RLock()
	l.RUnlock()
}

func BenchmarkReadUncontended(b *testing.B) {
	l := NewLock()
	for i := 0; i < b.N; i++ {
		l.RLock()
		l.RUnlock()
	}
}

func BenchmarkWriteUncontended(b *testing.B) {
	l := NewLock()
	for i := 0; i < b.N; i++ {
		l.Lock()
		l.Unlock()
	}
}
