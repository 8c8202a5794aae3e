package xstring

import "github.com/pkg/errors"

var (
	// ErrOutOfRange is returned by accessors and cursors addressing a slot
	// outside the live range, and by constructors given a negative size.
	ErrOutOfRange = errors.New("xstring: index out of range")

	// ErrUnderflow is returned by PopBack on a string with no live elements.
	ErrUnderflow = errors.New("xstring: pop from empty string")

	// ErrAllocation is returned when backing storage cannot be obtained.
	ErrAllocation = errors.New("xstring: allocation failed")

	// ErrNoAllocator is returned by Builder.Build when no allocator is set.
	ErrNoAllocator = errors.New("xstring: no allocator configured")
)

func outOfRange(i, n int) error {
	return errors.Wrapf(ErrOutOfRange, "index %d, length %d", i, n)
}
