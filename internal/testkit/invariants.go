// Package testkit holds structural checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"codesniff/internal/stream"
	"codesniff/internal/token"
)

// CheckStream runs the structural invariants of an annotated stream:
// 1) tokens tile the file content without gaps and reassemble it
// 2) partners are symmetric and pairs nest properly
// 3) tokens inside a scope carry the opener's conditions plus the owner
// 4) conditions are strictly increasing (outermost first)
// Tokens from ErrorAt on are only checked for 1).
func CheckStream(s *stream.Stream) error {
	if s == nil || s.File == nil {
		return fmt.Errorf("nil stream or file")
	}
	if err := checkTiling(s); err != nil {
		return err
	}
	limit := s.Len()
	if s.ErrorAt != token.None {
		limit = s.ErrorAt
	}
	for i := 0; i < limit; i++ {
		if err := checkPair(s, i, limit); err != nil {
			return err
		}
		if err := checkConditions(s, i); err != nil {
			return err
		}
	}
	return nil
}

func checkTiling(s *stream.Stream) error {
	var off uint32
	for i := range s.Tokens {
		tok := &s.Tokens[i]
		if tok.Span.Start != off {
			return fmt.Errorf("token %d (%v %q) starts at %d, expected %d", i, tok.Kind, tok.Text, tok.Span.Start, off)
		}
		n, err := safecast.Conv[uint32](len(tok.Text))
		if err != nil {
			return fmt.Errorf("token %d length overflow: %w", i, err)
		}
		if tok.Span.End != off+n {
			return fmt.Errorf("token %d span %v does not match its text %q", i, tok.Span, tok.Text)
		}
		if tok.Line == 0 || tok.Col == 0 {
			return fmt.Errorf("token %d has no position", i)
		}
		off = tok.Span.End
	}
	lenContent, err := safecast.Conv[uint32](len(s.File.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if off != lenContent {
		return fmt.Errorf("tokens cover %d bytes of %d", off, lenContent)
	}
	if got := s.Content(); got != string(s.File.Content) {
		return fmt.Errorf("content mismatch:\nwant %q\ngot  %q", s.File.Content, got)
	}
	return nil
}

func checkPair(s *stream.Stream, i, limit int) error {
	p := s.Tokens[i].Partner
	if p == token.None {
		return nil
	}
	if p < 0 || p >= s.Len() || p == i {
		return fmt.Errorf("token %d has invalid partner %d", i, p)
	}
	if s.Tokens[p].Partner != i {
		return fmt.Errorf("partner of %d is %d, but partner of %d is %d", i, p, p, s.Tokens[p].Partner)
	}
	if p < i {
		return nil
	}
	// пары внутри (i, p) не выходят наружу
	for k := i + 1; k < p && k < limit; k++ {
		q := s.Tokens[k].Partner
		if q != token.None && (q <= i || q >= p) {
			return fmt.Errorf("pair %d..%d crosses pair %d..%d", k, q, i, p)
		}
	}
	return nil
}

func checkConditions(s *stream.Stream, i int) error {
	tok := &s.Tokens[i]
	for j := 1; j < len(tok.Conditions); j++ {
		if tok.Conditions[j] <= tok.Conditions[j-1] {
			return fmt.Errorf("token %d conditions %v are not ordered", i, tok.Conditions)
		}
	}
	// владелец: его '{' ссылается на него через ScopeOwner
	if tok.ScopeOpener == token.None || tok.ScopeCloser == token.None || s.Tokens[tok.ScopeOpener].ScopeOwner != i {
		return nil
	}
	opener := &s.Tokens[tok.ScopeOpener]
	outer := opener.Conditions
	for k := tok.ScopeOpener + 1; k < tok.ScopeCloser; k++ {
		if s.IsDegraded(k) {
			break
		}
		conds := s.Tokens[k].Conditions
		if len(conds) <= len(outer) || conds[len(outer)] != i {
			return fmt.Errorf("token %d inside scope of %d has conditions %v", k, i, conds)
		}
		for j, c := range outer {
			if conds[j] != c {
				return fmt.Errorf("token %d conditions %v do not extend %v", k, conds, outer)
			}
		}
	}
	return nil
}
