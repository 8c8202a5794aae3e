package xstring

import (
	"sync"
	"testing"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/stretchr/testify/require"
	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xlog"
)

// stubAdapter is a minimal xlog.Adapter for tests. It records every entry.
type stubAdapter struct {
	mu   sync.Mutex
	logs []stubEntry
}

type stubEntry struct {
	Level  xlog.Level
	Msg    string
	Fields []xlog.Field
}

func (a *stubAdapter) With(fs []xlog.Field) xlog.Adapter { return a }

func (a *stubAdapter) Log(level xlog.Level, msg string, _ time.Time, fields []xlog.Field) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logs = append(a.logs, stubEntry{
		Level:  level,
		Msg:    msg,
		Fields: append([]xlog.Field(nil), fields...),
	})
}

func (a *stubAdapter) entries() []stubEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]stubEntry(nil), a.logs...)
}

func newStubLogger(t *testing.T, min xlog.Level) (*xlog.Logger, *stubAdapter) {
	t.Helper()
	a := &stubAdapter{}
	l, err := xlog.NewBuilder().WithAdapter(a).WithMinLevel(min).Build()
	require.NoError(t, err)
	return l, a
}

func TestBuildWithoutAllocatorFails(t *testing.T) {
	t.Parallel()

	_, err := NewBuilder().WithAllocator(nil).Build()
	require.ErrorIs(t, err, ErrNoAllocator)
}

func TestBuilderSettings(t *testing.T) {
	t.Parallel()

	pa := NewPoolAllocator(0)
	f, err := NewBuilder().WithAllocator(pa).WithMaxCapacity(2 * datasize.KB).Build()
	require.NoError(t, err)
	require.Same(t, pa, f.Allocator())
	require.Equal(t, 2048, f.MaxCapacity())
}

func TestObserversSeeEveryReallocation(t *testing.T) {
	// Freeze time for determinism
	old := xclock.Default()
	defer xclock.SetDefault(old)
	ft := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	xclock.SetDefault(xclock.NewFrozen(ft))

	var got []GrowEvent
	f, err := NewBuilder().
		AddObserver(ObserverFunc(func(e GrowEvent) { got = append(got, e) })).
		Build()
	require.NoError(t, err)

	s := f.New()
	for _, c := range []byte("abc") {
		require.NoError(t, s.PushBack(c))
	}
	require.NoError(t, s.AppendString("defg"))
	require.NoError(t, s.Reserve(100))

	want := []GrowEvent{
		{At: ft, Reason: GrowPush, OldCap: 0, NewCap: 1, Len: 0},
		{At: ft, Reason: GrowPush, OldCap: 1, NewCap: 2, Len: 1},
		{At: ft, Reason: GrowPush, OldCap: 2, NewCap: 4, Len: 2},
		{At: ft, Reason: GrowAppend, OldCap: 4, NewCap: 14, Len: 3},
		{At: ft, Reason: GrowReserve, OldCap: 14, NewCap: 100, Len: 7},
	}
	require.Len(t, got, len(want))
	for i := range want {
		require.True(t, want[i].At.Equal(got[i].At), "event %d timestamp", i)
		got[i].At = want[i].At
	}
	require.Equal(t, want, got)
}

func TestAddObserverAfterBuild(t *testing.T) {
	t.Parallel()

	f, _ := newTracked(t)
	var n int
	var mu sync.Mutex
	f.AddObserver(ObserverFunc(func(GrowEvent) {
		mu.Lock()
		n++
		mu.Unlock()
	}))

	s := f.New()
	require.NoError(t, s.PushBack('a'))
	require.NoError(t, s.PushBack('b'))
	require.NoError(t, s.PushBack('c'))
	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 3, n)
}

func TestGrowReasonString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "push", GrowPush.String())
	require.Equal(t, "append", GrowAppend.String())
	require.Equal(t, "reserve", GrowReserve.String())
	require.Equal(t, "unknown", GrowReason(0).String())
}

func TestLoggerRecordsReallocations(t *testing.T) {
	t.Parallel()

	l, a := newStubLogger(t, xlog.LevelDebug)
	f, err := NewBuilder().WithLogger(l).Build()
	require.NoError(t, err)

	s := f.New()
	require.NoError(t, s.PushBack('a'))
	require.NoError(t, s.AppendString("bc"))

	logs := a.entries()
	require.Len(t, logs, 2)
	require.Equal(t, "reallocate", logs[0].Msg)
	require.Equal(t, xlog.LevelDebug, logs[0].Level)
	assertHasStr(t, logs[0].Fields, "reason", "push")
	assertHasInt64(t, logs[0].Fields, "to", 1)
	assertHasStr(t, logs[1].Fields, "reason", "append")
	assertHasInt64(t, logs[1].Fields, "from", 1)
	assertHasInt64(t, logs[1].Fields, "to", 6)
	assertHasInt64(t, logs[1].Fields, "len", 1)
}

func TestLoggerRecordsAllocationFailure(t *testing.T) {
	t.Parallel()

	l, a := newStubLogger(t, xlog.LevelWarn)
	f, err := NewBuilder().WithLogger(l).WithMaxCapacity(2).Build()
	require.NoError(t, err)

	s := f.New()
	require.NoError(t, s.PushBack('a'))
	require.NoError(t, s.PushBack('b'))
	require.ErrorIs(t, s.PushBack('c'), ErrAllocation)

	logs := a.entries()
	require.Len(t, logs, 1, "debug reallocation logs are filtered at warn")
	require.Equal(t, "allocation failed", logs[0].Msg)
	require.Equal(t, xlog.LevelWarn, logs[0].Level)
	assertHasInt64(t, logs[0].Fields, "size", 4)
}

func TestDefaultAndUse(t *testing.T) {
	prev := global.Load()
	defer SetDefault(prev)

	SetDefault(nil)
	d := Default()
	require.NotNil(t, d)
	require.Same(t, d, Default())
	require.IsType(t, HeapAllocator{}, d.Allocator())

	tr := NewTrackingAllocator(nil)
	f, err := Use(Config{Allocator: tr})
	require.NoError(t, err)
	require.Same(t, f, Default())

	s := Must(FromString("via default"))
	require.Equal(t, uint64(1), tr.Stats().Allocations)
	s.Clear()
	require.Equal(t, int64(0), tr.Stats().Outstanding())

	f, err = Use(Config{})
	require.NoError(t, err)
	require.IsType(t, HeapAllocator{}, f.Allocator())
}

func assertHasStr(t *testing.T, fs []xlog.Field, k, v string) {
	t.Helper()
	for _, f := range fs {
		if f.K == k && f.Kind == xlog.KindString && f.Str == v {
			return
		}
	}
	t.Fatalf("missing string field %q=%q in %+v", k, v, fs)
}

func assertHasInt64(t *testing.T, fs []xlog.Field, k string, v int64) {
	t.Helper()
	for _, f := range fs {
		if f.K == k && f.Kind == xlog.KindInt64 && f.Int64 == v {
			return
		}
	}
	t.Fatalf("missing int64 field %q=%d in %+v", k, v, fs)
}
