package xstring

import (
	"math"

	"github.com/c2h5oh/datasize"
	"github.com/trickstertwo/xlog"
)

// Config for constructing a Factory (Factory data structure).
type Config struct {
	Allocator   Allocator
	MaxCapacity datasize.ByteSize // optional; 0 means unlimited
	Logger      *xlog.Logger      // optional; nil disables logging
	Observers   []Observer
}

// Builder separates construction from representation (Builder pattern).
type Builder struct {
	cfg Config
}

func NewBuilder() *Builder {
	return &Builder{cfg: Config{Allocator: HeapAllocator{}}}
}

func (b *Builder) WithAllocator(a Allocator) *Builder {
	b.cfg.Allocator = a
	return b
}

func (b *Builder) WithMaxCapacity(size datasize.ByteSize) *Builder {
	b.cfg.MaxCapacity = size
	return b
}

func (b *Builder) WithLogger(l *xlog.Logger) *Builder {
	b.cfg.Logger = l
	return b
}

func (b *Builder) AddObserver(o Observer) *Builder {
	b.cfg.Observers = append(b.cfg.Observers, o)
	return b
}

// Build constructs the Factory (Factory + Builder).
func (b *Builder) Build() (*Factory, error) {
	if b.cfg.Allocator == nil {
		return nil, ErrNoAllocator
	}
	return newFactory(b.cfg), nil
}

func clampSize(n uint64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}
