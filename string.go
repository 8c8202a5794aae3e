// Package xstring provides String, a contiguous, growable byte string with
// explicit capacity management.
//
// Storage is obtained from an Allocator owned by a Factory. A String keeps
// the slots [0, Len) live and treats [Len, Capacity) as allocated but
// unconstructed. Single-byte pushes grow capacity 0, 1, 2, 4, 8...;
// concatenation that overflows grows to twice the required length.
//
// A String has exactly one owner and is not safe for concurrent mutation.
// The zero value is an empty String bound to the default Factory.
package xstring

import (
	"bytes"
	"io"
	"iter"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// String is an owned byte sequence. len(elem) is the capacity.
type String struct {
	elem []byte
	n    int
	f    *Factory
}

// New returns an empty String with no allocation.
func (f *Factory) New() *String { return &String{f: f} }

// FromString returns a String holding a copy of text with no spare capacity.
func (f *Factory) FromString(text string) (*String, error) {
	s := f.New()
	if err := assignText(s, text); err != nil {
		return nil, err
	}
	return s, nil
}

// FromCString returns a String holding the bytes of b up to the first NUL,
// or all of b when it has none. Capacity equals the consumed length.
func (f *Factory) FromCString(b []byte) (*String, error) {
	s := f.New()
	if err := assignText(s, b[:cstrlen(b)]); err != nil {
		return nil, err
	}
	return s, nil
}

// Filled returns a String of n copies of c with capacity n.
func (f *Factory) Filled(n int, c byte) (*String, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrOutOfRange, "fill size %d", n)
	}
	p, err := f.allocate(n)
	if err != nil {
		return nil, err
	}
	for i := range p {
		p[i] = c
	}
	return &String{elem: p, n: n, f: f}, nil
}

func cstrlen(b []byte) int {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return i
	}
	return len(b)
}

func (s *String) factory() *Factory {
	if s.f == nil {
		s.f = Default()
	}
	return s.f
}

// Clone returns an independent copy with capacity equal to s.Len().
func (s *String) Clone() (*String, error) {
	c := &String{f: s.factory()}
	if err := c.Assign(s); err != nil {
		return nil, err
	}
	return c, nil
}

// Move transfers the allocation of s to a new String and leaves s empty.
// Only the returned String releases the transferred region.
func (s *String) Move() *String {
	m := &String{elem: s.elem, n: s.n, f: s.factory()}
	s.elem, s.n = nil, 0
	return m
}

// Assign replaces the contents of s with a copy of o. The new region is
// built before the old one is released, so s.Assign(s) is safe.
func (s *String) Assign(o *String) error {
	if o == nil {
		s.Clear()
		return nil
	}
	return assignText(s, o.elem[:o.n])
}

// AssignString replaces the contents of s with text.
func (s *String) AssignString(text string) error { return assignText(s, text) }

// AssignCString replaces the contents of s with b up to its first NUL.
func (s *String) AssignCString(b []byte) error { return assignText(s, b[:cstrlen(b)]) }

// AssignByte replaces the contents of s with the single byte c.
func (s *String) AssignByte(c byte) error {
	one := [1]byte{c}
	return assignText(s, one[:])
}

func assignText[T ~string | ~[]byte](s *String, src T) error {
	p, err := s.factory().allocate(len(src))
	if err != nil {
		return err
	}
	copy(p, src)
	s.free()
	s.elem, s.n = p, len(src)
	return nil
}

// free destroys the live elements and releases the region.
func (s *String) free() {
	if s.elem == nil {
		return
	}
	clear(s.elem[:s.n])
	s.factory().deallocate(s.elem)
	s.elem, s.n = nil, 0
}

// Len reports the number of live elements.
func (s *String) Len() int { return s.n }

// Size is an alias for Len.
func (s *String) Size() int { return s.n }

// Capacity reports the number of allocated slots.
func (s *String) Capacity() int { return len(s.elem) }

// Empty reports whether s has no live elements.
func (s *String) Empty() bool { return s.n == 0 }

// Clear destroys all live elements and releases the allocation. Calling it
// on an empty String is a no-op.
func (s *String) Clear() { s.free() }

// Reset destroys all live elements but keeps the allocation.
func (s *String) Reset() {
	clear(s.elem[:s.n])
	s.n = 0
}

// Reserve grows capacity to exactly n when n exceeds the current capacity.
func (s *String) Reserve(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrOutOfRange, "reserve %d", n)
	}
	if n <= len(s.elem) {
		return nil
	}
	return s.reallocate(n, GrowReserve)
}

// relocate moves the live range into a fresh region of newCap slots and
// returns the previous region. The caller releases it with deallocate once
// nothing reads from it anymore.
func (s *String) relocate(newCap int, reason GrowReason) ([]byte, error) {
	f := s.factory()
	p, err := f.allocate(newCap)
	if err != nil {
		return nil, err
	}
	old := s.elem
	copy(p, old[:s.n])
	s.elem = p
	f.grew(reason, len(old), newCap, s.n)
	return old, nil
}

func (s *String) reallocate(newCap int, reason GrowReason) error {
	old, err := s.relocate(newCap, reason)
	if err != nil {
		return err
	}
	s.factory().deallocate(old)
	return nil
}

// checkNAlloc makes room for one more element, doubling the current size.
func (s *String) checkNAlloc() error {
	if s.n < len(s.elem) {
		return nil
	}
	newCap := 1
	if s.n > 0 {
		var err error
		if newCap, err = double(s.n); err != nil {
			return err
		}
	}
	return s.reallocate(newCap, GrowPush)
}

func double(n int) (int, error) {
	if n > math.MaxInt/2 {
		return 0, errors.Wrapf(ErrAllocation, "capacity overflow doubling %d", n)
	}
	return 2 * n, nil
}

// PushBack appends c, growing capacity to max(1, 2*Len) when full.
func (s *String) PushBack(c byte) error {
	if err := s.checkNAlloc(); err != nil {
		return err
	}
	s.elem[s.n] = c
	s.n++
	return nil
}

// PopBack destroys the last live element.
func (s *String) PopBack() error {
	if s.n == 0 {
		return ErrUnderflow
	}
	s.n--
	s.elem[s.n] = 0
	return nil
}

// Append appends a copy of o's live elements. s.Append(s) doubles s.
func (s *String) Append(o *String) error {
	if o == nil {
		return nil
	}
	return appendText(s, o.elem[:o.n])
}

// AppendString appends text.
func (s *String) AppendString(text string) error { return appendText(s, text) }

// AppendCString appends b up to its first NUL.
func (s *String) AppendCString(b []byte) error { return appendText(s, b[:cstrlen(b)]) }

// AppendByte appends c using the concatenation growth policy.
func (s *String) AppendByte(c byte) error {
	one := [1]byte{c}
	return appendText(s, one[:])
}

// appendText grows to twice the required length when capacity is short.
// src may alias the region of s; the old region is released only after
// src has been copied.
func appendText[T ~string | ~[]byte](s *String, src T) error {
	k := len(src)
	if k == 0 {
		return nil
	}
	if s.n > math.MaxInt-k {
		return errors.Wrapf(ErrAllocation, "length overflow appending %d to %d", k, s.n)
	}
	need := s.n + k
	if need <= len(s.elem) {
		copy(s.elem[s.n:need], src)
		s.n = need
		return nil
	}
	newCap, err := double(need)
	if err != nil {
		return err
	}
	old, err := s.relocate(newCap, GrowAppend)
	if err != nil {
		return err
	}
	copy(s.elem[s.n:need], src)
	s.n = need
	s.factory().deallocate(old)
	return nil
}

// At returns the element at index i.
func (s *String) At(i int) (byte, error) {
	if i < 0 || i >= s.n {
		return 0, outOfRange(i, s.n)
	}
	return s.elem[i], nil
}

// Set overwrites the element at index i.
func (s *String) Set(i int, c byte) error {
	if i < 0 || i >= s.n {
		return outOfRange(i, s.n)
	}
	s.elem[i] = c
	return nil
}

// Front returns the first element.
func (s *String) Front() (byte, error) { return s.At(0) }

// Back returns the last element.
func (s *String) Back() (byte, error) { return s.At(s.n - 1) }

// SetFront overwrites the first element.
func (s *String) SetFront(c byte) error { return s.Set(0, c) }

// SetBack overwrites the last element.
func (s *String) SetBack(c byte) error { return s.Set(s.n-1, c) }

// All yields the live elements in order.
func (s *String) All() iter.Seq2[int, byte] {
	return func(yield func(int, byte) bool) {
		for i := 0; i < s.n; i++ {
			if !yield(i, s.elem[i]) {
				return
			}
		}
	}
}

// CString returns a fresh NUL-terminated copy of the live elements.
func (s *String) CString() []byte {
	out := make([]byte, s.n+1)
	copy(out, s.elem[:s.n])
	return out
}

// Bytes returns a copy of the live elements.
func (s *String) Bytes() []byte {
	out := make([]byte, s.n)
	copy(out, s.elem[:s.n])
	return out
}

// String returns the live elements as a Go string.
func (s *String) String() string { return string(s.elem[:s.n]) }

// WriteTo writes the live elements to w with no framing.
func (s *String) WriteTo(w io.Writer) (int64, error) {
	if s.n == 0 {
		return 0, nil
	}
	n, err := w.Write(s.elem[:s.n])
	return int64(n), err
}

// Equal reports whether s and o hold the same bytes. A nil o equals an
// empty s.
func (s *String) Equal(o *String) bool {
	if o == nil {
		return s.n == 0
	}
	return bytes.Equal(s.elem[:s.n], o.elem[:o.n])
}

// Hash returns the xxhash of the live elements.
func (s *String) Hash() uint64 { return xxhash.Sum64(s.elem[:s.n]) }
