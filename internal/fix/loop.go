package fix

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strconv"

	"codesniff/internal/diag"
	"codesniff/internal/source"
	"codesniff/internal/stream"
	"codesniff/internal/trace"
)

// DefaultMaxPasses bounds the fix loop when Options.MaxPasses is zero.
const DefaultMaxPasses = 50

// ErrNoChanges is returned when a fix run leaves the text untouched.
var ErrNoChanges = errors.New("no changes applied")

// Runner runs one dispatch sweep over s, proposing edits through f.
// The returned bag holds findings and sniff contract diagnostics.
type Runner interface {
	RunPass(s *stream.Stream, f *Fixer) *diag.Bag
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(s *stream.Stream, f *Fixer) *diag.Bag

// RunPass calls fn(s, f).
func (fn RunnerFunc) RunPass(s *stream.Stream, f *Fixer) *diag.Bag { return fn(s, f) }

// Outcome is the terminal state of the fix loop.
type Outcome uint8

const (
	// OutcomeConverged: the last pass applied nothing.
	OutcomeConverged Outcome = iota
	// OutcomeLoopLimit: MaxPasses passes all applied something.
	OutcomeLoopLimit
	// OutcomeCycle: a pass reproduced text seen after an earlier pass.
	OutcomeCycle
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConverged:
		return "converged"
	case OutcomeLoopLimit:
		return "loop limit"
	case OutcomeCycle:
		return "cycle"
	default:
		return "unknown"
	}
}

// Options configure the fix loop.
type Options struct {
	MaxPasses int // 0 = DefaultMaxPasses
}

// Unstable is a token still being edited when the loop gave up.
type Unstable struct {
	Token int
	Span  source.Span
	Line  uint32
	Col   uint32
	Sniff string
}

// Result summarises a fix loop run.
type Result struct {
	Outcome Outcome
	Passes  int
	// Stream is the final generation; its text is the fixed content.
	Stream   *stream.Stream
	Applied  []Record
	Rejected []Record
	Unstable []Unstable
	// Diagnostics of the last pass.
	Diagnostics *diag.Bag

	original string
}

// Content returns the fixed text.
func (r *Result) Content() string { return r.Stream.Content() }

// Changed reports whether the text differs from the input.
func (r *Result) Changed() bool { return r.Content() != r.original }

// Converged reports whether the loop reached a fixed point.
func (r *Result) Converged() bool { return r.Outcome == OutcomeConverged }

// Loop runs fix passes over s until no change set is applied, the pass
// ceiling is reached or a text repeats. Each committed pass re-tokenizes the
// patched text. The loop itself never fails; non-convergence is an Outcome.
func Loop(ctx context.Context, s *stream.Stream, runner Runner, opts Options) *Result {
	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	tracer := trace.FromContext(ctx)
	parent := trace.ParentSpan(ctx)

	res := &Result{Stream: s, original: s.Content()}
	seen := map[[32]byte]struct{}{sha256.Sum256([]byte(res.original)): {}}

	for pass := 1; ; pass++ {
		span := trace.Begin(tracer, trace.ScopePass, "pass#"+strconv.Itoa(pass), parent)
		f := NewFixer(s, pass)
		bag := runner.RunPass(s, f)
		if bag == nil {
			bag = diag.NewBag(0)
		}
		res.Passes = pass
		res.Diagnostics = bag
		res.Applied = append(res.Applied, f.Applied()...)
		res.Rejected = append(res.Rejected, f.Rejected()...)
		span.WithExtra("applied", strconv.Itoa(f.Count())).
			WithExtra("rejected", strconv.Itoa(len(f.Rejected())))

		if f.Count() == 0 {
			span.End("converged")
			res.Outcome = OutcomeConverged
			return res
		}

		content := f.Content()
		s = s.Next([]byte(content))
		res.Stream = s

		sum := sha256.Sum256([]byte(content))
		_, repeated := seen[sum]
		seen[sum] = struct{}{}
		switch {
		case repeated:
			res.Outcome = OutcomeCycle
		case pass >= maxPasses:
			res.Outcome = OutcomeLoopLimit
		default:
			span.End("")
			continue
		}
		res.Unstable = unstable(f)
		span.End(res.Outcome.String())
		return res
	}
}

// unstable collects the tokens touched by the last pass, in record order.
func unstable(f *Fixer) []Unstable {
	type key struct {
		tok   int
		sniff string
	}
	var out []Unstable
	seen := make(map[key]bool)
	for _, recs := range [][]Record{f.Applied(), f.Rejected()} {
		for _, r := range recs {
			k := key{r.Token, r.Sniff}
			if r.Token < 0 || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, Unstable{Token: r.Token, Span: r.Span, Line: r.Line, Col: r.Col, Sniff: r.Sniff})
		}
	}
	return out
}

// Report adds fix diagnostics of the run to bag: FixConflict for change sets
// rejected in the last pass and FixNotConverged when the loop gave up.
func (r *Result) Report(bag *diag.Bag) {
	if bag == nil {
		return
	}
	for _, rec := range r.Rejected {
		if rec.Pass != r.Passes {
			continue
		}
		bag.Add(diag.Diagnostic{
			Severity: diag.SevInfo,
			Code:     diag.FixConflict,
			Message:  fmt.Sprintf("%s fix %q not applied: %s", rec.Sniff, rec.Name, rec.Reason),
			Primary:  rec.Span,
			Token:    rec.Token,
			Line:     rec.Line,
			Col:      rec.Col,
		})
	}
	if r.Converged() {
		return
	}
	d := diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.FixNotConverged,
		Message:  fmt.Sprintf("fixes did not stabilize after %d passes (%s)", r.Passes, r.Outcome),
		Token:    -1,
	}
	for i, u := range r.Unstable {
		if i == 0 {
			d.Primary, d.Token = u.Span, u.Token
			d.Line, d.Col = u.Line, u.Col
		}
		d.Notes = append(d.Notes, diag.Note{
			Msg: fmt.Sprintf("%d:%d still changed by %s", u.Line, u.Col, u.Sniff),
		})
	}
	bag.Add(d)
}
