package xstring

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xlog"
)

// Factory owns the allocator, limits, logger and observers shared by the
// Strings it creates. It is safe for concurrent use.
type Factory struct {
	alloc  Allocator
	maxCap int // 0: unlimited
	logger *xlog.Logger

	// Observers: lock-free reads via atomic.Value; synchronized updates via obsMu.
	// Stored value is []Observer and MUST be treated as immutable by readers.
	observers atomic.Value // holds []Observer
	obsMu     sync.Mutex
}

// Factory: internal constructor.
func newFactory(cfg Config) *Factory {
	f := &Factory{
		alloc:  cfg.Allocator,
		maxCap: clampSize(cfg.MaxCapacity.Bytes()),
		logger: cfg.Logger,
	}
	if len(cfg.Observers) > 0 {
		obs := make([]Observer, len(cfg.Observers))
		copy(obs, cfg.Observers)
		f.observers.Store(obs)
	} else {
		f.observers.Store(([]Observer)(nil))
	}
	return f
}

// Allocator returns the allocator backing this factory.
func (f *Factory) Allocator() Allocator { return f.alloc }

// MaxCapacity returns the capacity limit, 0 when unlimited.
func (f *Factory) MaxCapacity() int { return f.maxCap }

// AddObserver registers o for GrowEvents of every String made by f.
func (f *Factory) AddObserver(o Observer) {
	f.obsMu.Lock()
	defer f.obsMu.Unlock()
	cur := f.snapshotObservers()
	cur = append(cur, o)
	f.observers.Store(cur)
}

func (f *Factory) snapshotObservers() []Observer {
	v := f.observers.Load()
	if v == nil {
		return nil
	}
	cur := v.([]Observer)
	if len(cur) == 0 {
		return nil
	}
	out := make([]Observer, len(cur))
	copy(out, cur)
	return out
}

// allocate returns a region of exactly n slots; n == 0 yields nil without
// touching the allocator.
func (f *Factory) allocate(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if f.maxCap > 0 && n > f.maxCap {
		return nil, f.failed(n, errors.Wrapf(ErrAllocation, "capacity %d exceeds limit %d", n, f.maxCap))
	}
	p, err := f.alloc.Allocate(n)
	if err != nil {
		return nil, f.failed(n, errors.Wrapf(ErrAllocation, "allocate %d: %v", n, err))
	}
	if len(p) < n {
		f.alloc.Deallocate(p)
		return nil, f.failed(n, errors.Wrapf(ErrAllocation, "allocator returned %d of %d slots", len(p), n))
	}
	return p[:n], nil
}

func (f *Factory) deallocate(p []byte) {
	if p == nil {
		return
	}
	f.alloc.Deallocate(p)
}

func (f *Factory) failed(n int, err error) error {
	if l := f.logger; l != nil && l.Enabled(xlog.LevelWarn) {
		l.Warn().Int("size", n).Err(err).Msg("allocation failed")
	}
	return err
}

// grew logs the reallocation and notifies observers with a single
// authoritative timestamp from xclock.
func (f *Factory) grew(reason GrowReason, oldCap, newCap, n int) {
	if l := f.logger; l != nil && l.Enabled(xlog.LevelDebug) {
		l.Debug().
			Str("reason", reason.String()).
			Int("from", oldCap).
			Int("to", newCap).
			Int("len", n).
			Msg("reallocate")
	}
	v := f.observers.Load()
	if v == nil {
		return
	}
	obs := v.([]Observer)
	if len(obs) == 0 {
		return
	}
	e := GrowEvent{
		At:     xclock.Now(),
		Reason: reason,
		OldCap: oldCap,
		NewCap: newCap,
		Len:    n,
	}
	for _, o := range obs {
		o.OnGrow(e)
	}
}
