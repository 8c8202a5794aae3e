package xstring

import (
	"math/bits"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

const (
	minSizeClass     = 8
	defaultMaxClass  = 64 * 1024
	maxPoolableClass = 1 << 30
)

// PoolAllocator recycles regions through power-of-two size classes backed by
// sync.Pool. Requests above the largest class go straight to the heap and
// are not retained on Deallocate. Regions handed out may hold stale bytes.
type PoolAllocator struct {
	maxClass int
	pools    []sync.Pool // index: log2(class)

	hits   atomic.Uint64
	misses atomic.Uint64
}

// PoolStats is a point-in-time snapshot of PoolAllocator counters.
type PoolStats struct {
	Hits   uint64
	Misses uint64
}

// NewPoolAllocator returns a PoolAllocator retaining regions up to maxClass
// bytes (rounded up to a power of two). maxClass <= 0 selects 64 KiB.
func NewPoolAllocator(maxClass int) *PoolAllocator {
	if maxClass <= 0 {
		maxClass = defaultMaxClass
	}
	maxClass = nextPow2(maxClass)
	return &PoolAllocator{
		maxClass: maxClass,
		pools:    make([]sync.Pool, bits.Len(uint(maxClass))),
	}
}

// MaxClass reports the largest retained region size.
func (pa *PoolAllocator) MaxClass() int { return pa.maxClass }

func (pa *PoolAllocator) Allocate(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Errorf("negative size %d", n)
	}
	if n > pa.maxClass {
		pa.misses.Inc()
		return heapRegion(n, n)
	}
	class := nextPow2(n)
	if v := pa.pools[classIndex(class)].Get(); v != nil {
		pa.hits.Inc()
		return (*(v.(*[]byte)))[:n], nil
	}
	pa.misses.Inc()
	return heapRegion(n, class)
}

func (pa *PoolAllocator) Deallocate(p []byte) {
	c := cap(p)
	if c < minSizeClass || c > pa.maxClass || c&(c-1) != 0 {
		return
	}
	p = p[:c]
	pa.pools[classIndex(c)].Put(&p)
}

// Stats returns the hit and miss counters.
func (pa *PoolAllocator) Stats() PoolStats {
	return PoolStats{Hits: pa.hits.Load(), Misses: pa.misses.Load()}
}

func classIndex(class int) int { return bits.Len(uint(class)) - 1 }

// nextPow2 returns the next power-of-two >= n, at least minSizeClass and
// capped at 1<<30.
func nextPow2(n int) int {
	if n <= minSizeClass {
		return minSizeClass
	}
	if n >= maxPoolableClass {
		return maxPoolableClass
	}
	return 1 << bits.Len(uint(n-1))
}
