package sniff

import (
	"fmt"

	"codesniff/internal/diag"
	"codesniff/internal/fix"
	"codesniff/internal/source"
	"codesniff/internal/stream"
)

// File is the per-pass handle a sniff works with. It embeds the read-only
// stream and collects findings.
type File struct {
	*stream.Stream

	fixer   *fix.Fixer
	bag     *diag.Bag
	ignores *ignoreIndex
	current *listener
}

// Path returns the file path as given to the run.
func (f *File) Path() string { return f.File.Path }

// IsFixing reports whether fixes can be staged in this pass.
func (f *File) IsFixing() bool { return f.fixer != nil }

// Fixer returns the pass fixer, or nil in report mode.
func (f *File) Fixer() *fix.Fixer { return f.fixer }

// Error records an error. code is appended to the sniff code
// ("Found" → "Core.Operators.LogicalOperator.Found"); data formats msg.
func (f *File) Error(msg string, idx int, code string, data ...any) {
	f.report(diag.SevError, msg, idx, code, false, data)
}

// Warning records a warning.
func (f *File) Warning(msg string, idx int, code string, data ...any) {
	f.report(diag.SevWarning, msg, idx, code, false, data)
}

// FixableError records a fixable error and returns true when the caller
// should stage its fix now.
func (f *File) FixableError(msg string, idx int, code string, data ...any) bool {
	return f.report(diag.SevError, msg, idx, code, true, data)
}

// FixableWarning is FixableError for warnings.
func (f *File) FixableWarning(msg string, idx int, code string, data ...any) bool {
	return f.report(diag.SevWarning, msg, idx, code, true, data)
}

func (f *File) fullCode(code string) string {
	base := ""
	if f.current != nil {
		base = f.current.code
	}
	switch {
	case code == "":
		return base
	case base == "":
		return code
	}
	return base + "." + code
}

func (f *File) report(sev diag.Severity, msg string, idx int, code string, fixable bool, data []any) bool {
	full := f.fullCode(code)
	if len(data) > 0 {
		msg = fmt.Sprintf(msg, data...)
	}
	d := diag.Diagnostic{
		Severity: sev,
		Code:     diag.SniffViolation,
		Source:   full,
		Message:  msg,
		Token:    -1,
		Fixable:  fixable,
	}
	if f.Valid(idx) {
		t := f.At(idx)
		d.Primary, d.Token, d.Line, d.Col = t.Span, idx, t.Line, t.Col
	} else {
		d.Primary = source.Span{File: f.File.ID}
		d.Line, d.Col = 1, 1
	}
	if f.ignores.suppressed(full, d.Line) {
		return false
	}
	if f.current != nil && f.current.severity != nil {
		d.Severity = *f.current.severity
	}
	f.bag.Add(d)
	return fixable && f.fixer != nil
}
