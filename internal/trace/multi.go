package trace

import (
	"errors"
	"io"
)

// MultiTracer fans out trace events to multiple tracers.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

// NewMultiTracer creates a new MultiTracer that emits to all provided tracers.
func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	return &MultiTracer{tracers: tracers, level: level}
}

// Emit sends a copy of the event to every underlying tracer.
func (t *MultiTracer) Emit(ev *Event) {
	for _, tr := range t.tracers {
		cp := *ev
		tr.Emit(&cp)
	}
}

func (t *MultiTracer) Flush() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Close() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Level() Level { return t.level }

func (t *MultiTracer) Enabled() bool { return t.level > LevelOff }

// DumpRing writes the contents of the first RingTracer found in t (or t
// itself) to w. It reports whether a ring was found.
func DumpRing(t Tracer, w io.Writer, format Format) (bool, error) {
	switch tr := t.(type) {
	case *RingTracer:
		return true, tr.Dump(w, format)
	case *MultiTracer:
		for _, inner := range tr.tracers {
			if ok, err := DumpRing(inner, w, format); ok {
				return true, err
			}
		}
	}
	return false, nil
}
