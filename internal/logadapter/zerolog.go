// Package logadapter bridges xlog to rs/zerolog for the xstr command and
// tests.
package logadapter

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/trickstertwo/xlog"
)

// Adapter is an xlog.Adapter writing one zerolog event per entry. The entry
// timestamp from xlog is written as "ts"; zerolog's own clock is not used.
type Adapter struct {
	l     zerolog.Logger
	bound []xlog.Field
}

func New(l zerolog.Logger) *Adapter {
	return &Adapter{l: l}
}

// With returns a child adapter carrying fs ahead of every event's fields.
func (a *Adapter) With(fs []xlog.Field) xlog.Adapter {
	child := *a
	child.bound = append(append([]xlog.Field(nil), a.bound...), fs...)
	return &child
}

func (a *Adapter) Log(level xlog.Level, msg string, at time.Time, fields []xlog.Field) {
	zlvl := toZerolog(level)
	if zlvl < a.l.GetLevel() {
		return
	}
	ev := a.l.WithLevel(zlvl).Str("ts", at.UTC().Format(time.RFC3339Nano))
	for i := range a.bound {
		writeField(ev, &a.bound[i])
	}
	for i := range fields {
		writeField(ev, &fields[i])
	}
	ev.Msg(msg)
}

// SetMinLevel lets xlog.Builder propagate its min level.
func (a *Adapter) SetMinLevel(l xlog.Level) {
	a.l = a.l.Level(toZerolog(l))
}

// NewLogger returns an xlog.Logger writing JSON lines to w, or a
// human-readable console format when console is set.
func NewLogger(w io.Writer, min xlog.Level, console bool) (*xlog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	if console {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	}
	return xlog.NewBuilder().
		WithAdapter(New(zerolog.New(w))).
		WithMinLevel(min).
		Build()
}

// toZerolog maps xlog levels onto zerolog; Fatal maps to Error so logging
// never exits the process.
func toZerolog(l xlog.Level) zerolog.Level {
	switch {
	case l <= xlog.LevelTrace:
		return zerolog.TraceLevel
	case l <= xlog.LevelDebug:
		return zerolog.DebugLevel
	case l <= xlog.LevelInfo:
		return zerolog.InfoLevel
	case l <= xlog.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

func writeField(e *zerolog.Event, f *xlog.Field) {
	switch f.Kind {
	case xlog.KindString:
		e.Str(f.K, f.Str)
	case xlog.KindInt64:
		e.Int64(f.K, f.Int64)
	case xlog.KindUint64:
		e.Uint64(f.K, f.Uint64)
	case xlog.KindFloat64:
		e.Float64(f.K, f.Float64)
	case xlog.KindBool:
		e.Bool(f.K, f.Bool)
	case xlog.KindDuration:
		e.Dur(f.K, f.Dur)
	case xlog.KindTime:
		e.Time(f.K, f.Time)
	case xlog.KindError:
		if f.Err != nil {
			e.AnErr(f.K, f.Err)
		}
	case xlog.KindBytes:
		e.Bytes(f.K, f.Bytes)
	default:
		e.Interface(f.K, f.Any)
	}
}
