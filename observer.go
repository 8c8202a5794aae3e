package xstring

import "time"

// GrowReason identifies which policy triggered a reallocation.
type GrowReason uint8

const (
	GrowPush    GrowReason = iota + 1 // single-byte push: max(1, 2*Len)
	GrowAppend                        // concatenation: 2*required
	GrowReserve                       // explicit Reserve
)

func (r GrowReason) String() string {
	switch r {
	case GrowPush:
		return "push"
	case GrowAppend:
		return "append"
	case GrowReserve:
		return "reserve"
	default:
		return "unknown"
	}
}

// GrowEvent describes one reallocation. Len is the number of relocated
// elements.
type GrowEvent struct {
	At     time.Time
	Reason GrowReason
	OldCap int
	NewCap int
	Len    int
}

// Observer is notified after every reallocation (Observer pattern).
// Implementations attached to a shared Factory MUST be concurrency-safe.
type Observer interface {
	OnGrow(e GrowEvent)
}

// ObserverFunc adapter.
type ObserverFunc func(GrowEvent)

func (f ObserverFunc) OnGrow(e GrowEvent) { f(e) }
