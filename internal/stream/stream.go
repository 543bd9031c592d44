// Package stream holds the annotated token stream of one source unit and the
// read-only navigation API sniffs use to query it.
//
// A Stream is immutable once built. The fixer never edits it in place: every
// committed pass re-tokenizes the patched text into a new Stream whose
// Generation is one higher.
package stream

import (
	"strings"

	"codesniff/internal/diag"
	"codesniff/internal/lexer"
	"codesniff/internal/source"
	"codesniff/internal/token"
)

// Options control tokenization.
type Options struct {
	// TabWidth > 0 expands tabs when computing columns.
	TabWidth int
}

// Stream is the token sequence of one file generation.
type Stream struct {
	File   *source.File
	Tokens []token.Token
	// ErrorAt is the parse-error token where structural annotation stopped,
	// or token.None.
	ErrorAt int
	// Generation counts committed fix passes; the initial stream is 0.
	Generation int
	// Diagnostics holds lexical diagnostics for this generation.
	Diagnostics *diag.Bag

	opts Options
}

// New tokenizes file.
func New(file *source.File, opts Options) *Stream {
	return build(file, opts, 0)
}

// FromText tokenizes an in-memory snippet; handy for tools and tests.
func FromText(path, text string, opts Options) *Stream {
	return New(source.NewFile(0, path, []byte(text), source.FileVirtual), opts)
}

func build(file *source.File, opts Options, gen int) *Stream {
	bag := diag.NewBag(0)
	res := lexer.Tokenize(file, lexer.Options{
		Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
		TabWidth: opts.TabWidth,
	})
	return &Stream{
		File:        file,
		Tokens:      res.Tokens,
		ErrorAt:     res.ErrorAt,
		Generation:  gen,
		Diagnostics: bag,
		opts:        opts,
	}
}

// Next re-tokenizes content as the following generation of the same file.
func (s *Stream) Next(content []byte) *Stream {
	return build(s.File.WithContent(content), s.opts, s.Generation+1)
}

// Options returns the options the stream was built with.
func (s *Stream) Options() Options { return s.opts }

// Len returns the number of tokens.
func (s *Stream) Len() int { return len(s.Tokens) }

// Valid reports whether idx addresses a token.
func (s *Stream) Valid(idx int) bool { return idx >= 0 && idx < len(s.Tokens) }

// At returns the token at idx. The pointer must not be used to mutate it.
func (s *Stream) At(idx int) *token.Token { return &s.Tokens[idx] }

// Kind returns the kind at idx, or Invalid when idx is out of range.
func (s *Stream) Kind(idx int) token.Kind {
	if !s.Valid(idx) {
		return token.Invalid
	}
	return s.Tokens[idx].Kind
}

// Content reassembles the source text from the tokens.
func (s *Stream) Content() string {
	var b strings.Builder
	b.Grow(len(s.File.Content))
	for i := range s.Tokens {
		b.WriteString(s.Tokens[i].Text)
	}
	return b.String()
}

// TokensAsString concatenates the text of n tokens starting at from.
func (s *Stream) TokensAsString(from, n int) string {
	if from < 0 {
		n += from
		from = 0
	}
	end := min(from+n, len(s.Tokens))
	var b strings.Builder
	for i := from; i < end; i++ {
		b.WriteString(s.Tokens[i].Text)
	}
	return b.String()
}

// IsDegraded reports whether idx lies at or after the parse-error token, where
// partner, scope and condition data are absent.
func (s *Stream) IsDegraded(idx int) bool {
	return s.ErrorAt != token.None && idx >= s.ErrorAt
}
