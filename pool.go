package xstring

import "sync"

const defaultMaxRetain = 64 * 1024

// Pool recycles Strings of one Factory. Put keeps the allocation of small
// Strings for reuse; Strings above the retain limit are cleared and dropped.
type Pool struct {
	f         *Factory
	maxRetain int
	pool      sync.Pool
}

// NewPool returns a Pool handing out Strings from f. maxRetain <= 0 selects
// 64 KiB. A nil f selects the default Factory.
func NewPool(f *Factory, maxRetain int) *Pool {
	if f == nil {
		f = Default()
	}
	if maxRetain <= 0 {
		maxRetain = defaultMaxRetain
	}
	p := &Pool{f: f, maxRetain: maxRetain}
	p.pool.New = func() any { return f.New() }
	return p
}

// Get returns an empty String, possibly with spare capacity.
func (p *Pool) Get() *String {
	return p.pool.Get().(*String)
}

// Put returns s to the pool. The caller must not use s afterwards.
func (p *Pool) Put(s *String) {
	if s == nil {
		return
	}
	// allow reuse only of strings whose storage came from this pool's factory
	if s.f != p.f || len(s.elem) > p.maxRetain {
		s.Clear()
		return
	}
	s.Reset()
	p.pool.Put(s)
}
