package xstring

import "github.com/pkg/errors"

// Allocator is the storage backend Strategy. Allocate returns a region with
// exactly n addressable slots whose contents are unspecified; Deallocate
// receives every region returned by Allocate exactly once.
// Implementations shared between Strings must be concurrency-safe.
type Allocator interface {
	Allocate(n int) ([]byte, error)
	Deallocate(p []byte)
}

// HeapAllocator allocates from the Go heap and leaves reclamation to the GC.
// Sizes the runtime cannot satisfy are reported as errors.
type HeapAllocator struct{}

func (HeapAllocator) Allocate(n int) ([]byte, error) { return heapRegion(n, n) }

func (HeapAllocator) Deallocate([]byte) {}

// heapRegion makes a region of length n and capacity c, turning the
// runtime's makeslice panic for oversized requests into an error.
func heapRegion(n, c int) (p []byte, err error) {
	if n < 0 {
		return nil, errors.Errorf("negative size %d", n)
	}
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, errors.Errorf("size %d: %v", c, r)
		}
	}()
	return make([]byte, n, c), nil
}
