package trace

import "errors"

// MultiTracer fans events out to several tracers, e.g. a stream for the
// user and a ring kept for crash dumps.
type MultiTracer struct {
	counters
	level    Level
	children []Tracer
}

func NewMultiTracer(level Level, children ...Tracer) *MultiTracer {
	return &MultiTracer{level: level, children: children}
}

// Emit hands every child its own copy; children number events themselves.
func (t *MultiTracer) Emit(ev *Event) {
	for _, child := range t.children {
		cp := *ev
		child.Emit(&cp)
	}
}

// Ring returns the first ring child, or nil.
func (t *MultiTracer) Ring() *RingTracer {
	for _, child := range t.children {
		if r, ok := child.(*RingTracer); ok {
			return r
		}
	}
	return nil
}

func (t *MultiTracer) Flush() error {
	var errs []error
	for _, child := range t.children {
		errs = append(errs, child.Flush())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Close() error {
	var errs []error
	for _, child := range t.children {
		errs = append(errs, child.Close())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Level() Level  { return t.level }
func (t *MultiTracer) Enabled() bool { return t.level > LevelOff }
