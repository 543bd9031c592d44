package diag

// Reporter receives diagnostics from a producer (the lexer, the engine)
// that does not own the Bag.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter appends to Bag; a nil Bag drops everything.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// DedupReporter forwards a diagnostic only the first time its code,
// severity, span and message are seen. The lexer may hit the same broken
// construct from several scanning paths.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

type dedupKey struct {
	code Code
	sev  Severity
	span [3]uint32
	msg  string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: map[dedupKey]struct{}{}}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil || r.next == nil {
		return
	}
	key := dedupKey{
		code: d.Code,
		sev:  d.Severity,
		span: [3]uint32{uint32(d.Primary.File), d.Primary.Start, d.Primary.End},
		msg:  d.Message,
	}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(d)
}
