package xstring

// Facade helpers using the default Factory.
// Usage: s, err := xstring.FromString("hello")

func New() *String                            { return Default().New() }
func FromString(text string) (*String, error) { return Default().FromString(text) }
func FromCString(b []byte) (*String, error)   { return Default().FromCString(b) }
func Filled(n int, c byte) (*String, error)   { return Default().Filled(n, c) }

// Must panics if err is non-nil and returns s otherwise.
func Must(s *String, err error) *String {
	if err != nil {
		panic(err)
	}
	return s
}
