package trace

import "sync/atomic"

// counters: нумерация событий и спанов одного трейсера.
type counters struct {
	seq   atomic.Uint64
	spans atomic.Uint64
}

func (c *counters) nextSeq() uint64 { return c.seq.Add(1) }

// NewSpanID returns the next span ID of this tracer.
func (c *counters) NewSpanID() uint64 { return c.spans.Add(1) }
