// Package sniff defines the rule contract and the engine that dispatches
// tokens of a stream to the sniffs listening for their kinds.
//
// A sniff registers a set of token kinds once. During a pass the engine walks
// the stream front to back and calls Process for every token whose kind the
// sniff registered, in registration order. Process returns Next to keep going
// or the index of the next token it wants to see; the skip is per sniff.
//
// Sniffs only read the stream. Findings go through the File handle; fixes are
// staged on the pass Fixer and reconciled by the fix loop.
package sniff

import (
	"codesniff/internal/token"
)

// Next continues with the following token.
const Next = token.None

// Sniff is a pluggable rule.
type Sniff interface {
	// Register returns the token kinds the sniff listens for.
	Register() token.Set
	// Process inspects token idx and returns Next or a later index to skip to.
	Process(f *File, idx int) int
}

// ScopedSniff distinguishes tokens inside a tracked scope from the rest.
// Wrap it with Scoped to register it.
type ScopedSniff interface {
	Register() token.Set
	// Scopes returns the owner kinds that count as tracked scopes.
	Scopes() token.Set
	// ProcessWithinScope gets the deepest enclosing owner whose kind is in Scopes.
	ProcessWithinScope(f *File, idx, scope int) int
	ProcessOutsideScope(f *File, idx int) int
}

// Configurable sniffs receive registration properties before the first pass.
type Configurable interface {
	SetProperty(name, value string) error
}

// Named sniffs describe themselves in listings.
type Named interface {
	Summary() string
}

// Fixable sniffs can stage fixes for at least some findings.
type Fixable interface {
	CanFix() bool
}

// Scoped adapts a ScopedSniff to the Sniff contract.
func Scoped(s ScopedSniff) Sniff {
	return scoped{s}
}

type scoped struct {
	ScopedSniff
}

func (s scoped) Process(f *File, idx int) int {
	if scope := f.LastCondition(idx, s.Scopes()); scope != token.None {
		return s.ProcessWithinScope(f, idx, scope)
	}
	return s.ProcessOutsideScope(f, idx)
}

func (s scoped) Unwrap() any { return s.ScopedSniff }

// underlying returns the value that carries optional interfaces.
func underlying(s Sniff) any {
	if u, ok := s.(interface{ Unwrap() any }); ok {
		return u.Unwrap()
	}
	return s
}

// LineSplitter handles bracketed constructs differently when they span lines.
type LineSplitter interface {
	ProcessSingleLine(f *File, opener, closer int) int
	ProcessMultiLine(f *File, opener, closer int) int
}

// LineSplit dispatches the construct opened at opener to the single- or
// multi-line handler. Unpartnered openers are left alone.
func LineSplit(f *File, opener int, s LineSplitter) int {
	if !f.Valid(opener) {
		return Next
	}
	closer := f.At(opener).Partner
	if closer == token.None {
		return Next
	}
	if f.At(opener).Line == f.At(closer).Line {
		return s.ProcessSingleLine(f, opener, closer)
	}
	return s.ProcessMultiLine(f, opener, closer)
}
