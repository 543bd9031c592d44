package sniff

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"codesniff/internal/diag"
	"codesniff/internal/fix"
	"codesniff/internal/source"
	"codesniff/internal/stream"
	"codesniff/internal/token"
	"codesniff/internal/trace"
)

// Mode selects between a plain report sweep and a fix sweep.
type Mode uint8

const (
	ModeReport Mode = iota
	ModeFix
)

func (m Mode) String() string {
	if m == ModeFix {
		return "fix"
	}
	return "report"
}

// listener is one sniff instance with its per-pass dispatch state.
type listener struct {
	code     string
	sniff    Sniff
	severity *diag.Severity

	broken    bool // не прошёл настройку: не вызывается вовсе
	disabled  bool // нарушил контракт в текущем проходе
	skipUntil int
	calls     int
}

// Options configure an Engine.
type Options struct {
	Mode   Mode
	Tracer trace.Tracer
	// Parent span for sniff-level trace points.
	Parent uint64
}

// Engine dispatches tokens to sniffs. One engine serves one file: it keeps
// the sniff instances across fix passes.
type Engine struct {
	mode      Mode
	listeners []listener
	table     [][]int // kind -> listener indices in registration order
	setup     []diag.Diagnostic
	tracer    trace.Tracer
	parent    uint64
}

// NewEngine instantiates the registered sniffs and builds the dispatch table.
// Bad properties are kept as contract diagnostics and disable the sniff.
func NewEngine(regs []Registration, opts Options) *Engine {
	e := &Engine{
		mode:   opts.Mode,
		table:  make([][]int, token.NumKinds),
		tracer: opts.Tracer,
		parent: opts.Parent,
	}
	if e.tracer == nil {
		e.tracer = trace.Nop
	}
	for _, reg := range regs {
		if reg.New == nil {
			continue
		}
		l := listener{code: reg.Code, sniff: reg.New(), severity: reg.Severity}
		e.configure(&l, reg.Properties)
		e.listeners = append(e.listeners, l)
		li := len(e.listeners) - 1
		for _, k := range l.sniff.Register().Kinds() {
			e.table[k] = append(e.table[k], li)
		}
	}
	return e
}

func (e *Engine) configure(l *listener, props map[string]string) {
	if len(props) == 0 {
		return
	}
	c, ok := underlying(l.sniff).(Configurable)
	if !ok {
		e.contract(l, diag.SniffBadProperty, source.Span{}, token.None,
			fmt.Sprintf("sniff %s takes no properties", l.code))
		l.broken = true
		return
	}
	for _, name := range slices.Sorted(maps.Keys(props)) {
		if err := c.SetProperty(name, props[name]); err != nil {
			e.contract(l, diag.SniffBadProperty, source.Span{}, token.None,
				fmt.Sprintf("sniff %s: property %q: %v", l.code, name, err))
			l.broken = true
		}
	}
}

func (e *Engine) contract(l *listener, code diag.Code, sp source.Span, idx int, msg string) {
	e.setup = append(e.setup, diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  msg,
		Primary:  sp,
		Token:    idx,
	})
	trace.Point(e.tracer, trace.ScopeSniff, "contract:"+l.code, msg, e.parent)
}

// Mode returns the engine mode.
func (e *Engine) Mode() Mode { return e.mode }

// Codes lists the active sniff codes in registration order.
func (e *Engine) Codes() []string {
	out := make([]string, 0, len(e.listeners))
	for i := range e.listeners {
		if !e.listeners[i].broken {
			out = append(out, e.listeners[i].code)
		}
	}
	return out
}

// Run performs one report sweep over s.
func (e *Engine) Run(s *stream.Stream) *diag.Bag {
	return e.sweep(s, nil)
}

// RunPass performs one sweep; with a fixer in fix mode sniffs are invited
// to stage fixes. It satisfies fix.Runner.
func (e *Engine) RunPass(s *stream.Stream, f *fix.Fixer) *diag.Bag {
	if e.mode != ModeFix {
		f = nil
	}
	return e.sweep(s, f)
}

func (e *Engine) sweep(s *stream.Stream, fixer *fix.Fixer) *diag.Bag {
	bag := diag.NewBag(0)
	for _, d := range e.setup {
		bag.Add(d)
	}
	file := &File{
		Stream:  s,
		fixer:   fixer,
		bag:     bag,
		ignores: buildIgnoreIndex(s),
	}
	for i := range e.listeners {
		l := &e.listeners[i]
		l.disabled = l.broken
		l.skipUntil = 0
		l.calls = 0
	}

	for idx := range s.Tokens {
		for _, li := range e.table[s.Tokens[idx].Kind] {
			l := &e.listeners[li]
			if l.disabled || idx < l.skipUntil {
				continue
			}
			e.invoke(file, l, idx)
		}
	}

	if e.tracer.Level().ShouldEmit(trace.ScopeSniff) {
		for i := range e.listeners {
			l := &e.listeners[i]
			trace.Point(e.tracer, trace.ScopeSniff, l.code, strconv.Itoa(l.calls)+" calls", e.parent)
		}
	}
	return bag
}

// invoke calls the sniff and enforces the contract: no panics, a skip index
// after idx, no change set left open.
func (e *Engine) invoke(file *File, l *listener, idx int) {
	file.current = l
	if file.fixer != nil {
		file.fixer.SetOwner(l.code)
	}
	l.calls++

	next, panicked := e.call(file, l, idx)
	if panicked != nil {
		if file.fixer != nil && file.fixer.InChangeset() {
			file.fixer.RollbackChangeset()
		}
		e.violation(file, l, diag.SniffPanic, idx, fmt.Sprintf("sniff %s panicked: %v", l.code, panicked))
		return
	}
	if file.fixer != nil && file.fixer.InChangeset() {
		file.fixer.RollbackChangeset()
		e.violation(file, l, diag.SniffOpenChangeset, idx, fmt.Sprintf("sniff %s left a change set open", l.code))
		return
	}
	switch {
	case next == Next:
	case next <= idx:
		e.violation(file, l, diag.SniffInvalidSkip, idx,
			fmt.Sprintf("sniff %s asked to skip to token %d from token %d", l.code, next, idx))
	default:
		l.skipUntil = next
	}
}

func (e *Engine) call(file *File, l *listener, idx int) (next int, panicked any) {
	defer func() {
		if r := recover(); r != nil {
			panicked = r
		}
	}()
	return l.sniff.Process(file, idx), nil
}

// violation records a contract breach and disables the sniff for this pass.
func (e *Engine) violation(file *File, l *listener, code diag.Code, idx int, msg string) {
	l.disabled = true
	t := file.At(idx)
	file.bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  msg,
		Primary:  t.Span,
		Token:    idx,
		Line:     t.Line,
		Col:      t.Col,
	})
	trace.Point(e.tracer, trace.ScopeSniff, "contract:"+l.code, msg, e.parent)
}

// SplitFindings separates sniff findings from contract diagnostics.
func SplitFindings(bag *diag.Bag) (findings, contract []diag.Diagnostic) {
	if bag == nil {
		return nil, nil
	}
	for _, d := range bag.Items() {
		if d.Code.IsContract() {
			contract = append(contract, d)
		} else {
			findings = append(findings, d)
		}
	}
	return findings, contract
}
