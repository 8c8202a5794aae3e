package xstring

import "sync/atomic"

// Facade: global access (Singleton + Facade).
var global atomic.Pointer[Factory]

// SetDefault sets the Factory used by package-level constructors and by
// zero-value Strings. A nil f restores a plain heap factory on next use.
func SetDefault(f *Factory) { global.Store(f) }

// Default returns the global Factory, creating a heap-backed one with no
// limit, logger or observers on first use.
func Default() *Factory {
	if f := global.Load(); f != nil {
		return f
	}
	global.CompareAndSwap(nil, newFactory(Config{Allocator: HeapAllocator{}}))
	return global.Load()
}

// Use builds a Factory from cfg, sets it as the default and returns it.
func Use(cfg Config) (*Factory, error) {
	b := &Builder{cfg: cfg}
	if cfg.Allocator == nil {
		b.cfg.Allocator = HeapAllocator{}
	}
	f, err := b.Build()
	if err != nil {
		return nil, err
	}
	SetDefault(f)
	return f, nil
}
