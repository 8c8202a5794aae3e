package xstring

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newTracked returns a factory over a TrackingAllocator for leak accounting.
func newTracked(t testing.TB, opts ...func(*Builder)) (*Factory, *TrackingAllocator) {
	t.Helper()
	return newTrackedOver(t, HeapAllocator{}, opts...)
}

// newTrackedOver is newTracked with next as the underlying allocator.
func newTrackedOver(t testing.TB, next Allocator, opts ...func(*Builder)) (*Factory, *TrackingAllocator) {
	t.Helper()
	tr := NewTrackingAllocator(next)
	b := NewBuilder().WithAllocator(tr)
	for _, o := range opts {
		o(b)
	}
	f, err := b.Build()
	if err != nil {
		t.Fatalf("build factory: %v", err)
	}
	return f, tr
}
