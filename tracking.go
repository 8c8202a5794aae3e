package xstring

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"go.uber.org/atomic"
)

// TrackingAllocator wraps another Allocator and counts allocations,
// deallocations and live bytes.
type TrackingAllocator struct {
	next Allocator

	allocs atomic.Uint64
	frees  atomic.Uint64
	live   atomic.Int64
}

// Stats is a point-in-time counters snapshot.
type Stats struct {
	Allocations   uint64
	Deallocations uint64
	LiveBytes     int64
}

// Outstanding reports regions allocated but not yet released.
func (s Stats) Outstanding() int64 { return int64(s.Allocations) - int64(s.Deallocations) }

func (s Stats) String() string {
	live := s.LiveBytes
	if live < 0 {
		live = 0
	}
	return fmt.Sprintf("allocs=%d frees=%d live=%s", s.Allocations, s.Deallocations, humanize.Bytes(uint64(live)))
}

// NewTrackingAllocator wraps next; a nil next selects HeapAllocator.
func NewTrackingAllocator(next Allocator) *TrackingAllocator {
	if next == nil {
		next = HeapAllocator{}
	}
	return &TrackingAllocator{next: next}
}

func (t *TrackingAllocator) Allocate(n int) ([]byte, error) {
	p, err := t.next.Allocate(n)
	if err != nil {
		return nil, err
	}
	t.allocs.Inc()
	t.live.Add(int64(len(p)))
	return p, nil
}

func (t *TrackingAllocator) Deallocate(p []byte) {
	t.frees.Inc()
	t.live.Sub(int64(len(p)))
	t.next.Deallocate(p)
}

func (t *TrackingAllocator) Stats() Stats {
	return Stats{
		Allocations:   t.allocs.Load(),
		Deallocations: t.frees.Load(),
		LiveBytes:     t.live.Load(),
	}
}

func (t *TrackingAllocator) Reset() {
	t.allocs.Store(0)
	t.frees.Store(0)
	t.live.Store(0)
}
