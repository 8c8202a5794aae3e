package xstring

// Cursor is a position over the live range of a String. A cursor at or past
// End must not be dereferenced; Get and Set report ErrOutOfRange instead.
// Cursors are invalidated by operations that change Len.
type Cursor struct {
	s *String
	i int
}

// Begin returns a cursor at the first element.
func (s *String) Begin() Cursor { return Cursor{s: s} }

// End returns a cursor one past the last element.
func (s *String) End() Cursor { return Cursor{s: s, i: s.n} }

// Index reports the position of c.
func (c Cursor) Index() int { return c.i }

// Valid reports whether c addresses a live element.
func (c Cursor) Valid() bool { return c.s != nil && c.i >= 0 && c.i < c.s.n }

// Next returns the cursor one position forward.
func (c Cursor) Next() Cursor {
	c.i++
	return c
}

// Prev returns the cursor one position back.
func (c Cursor) Prev() Cursor {
	c.i--
	return c
}

// Equal reports whether both cursors address the same slot of the same String.
func (c Cursor) Equal(o Cursor) bool { return c.s == o.s && c.i == o.i }

// Get returns the element at c.
func (c Cursor) Get() (byte, error) {
	if c.s == nil {
		return 0, outOfRange(c.i, 0)
	}
	return c.s.At(c.i)
}

// Set overwrites the element at c.
func (c Cursor) Set(b byte) error {
	if c.s == nil {
		return outOfRange(c.i, 0)
	}
	return c.s.Set(c.i, b)
}
