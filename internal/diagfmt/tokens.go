package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"codesniff/internal/source"
	"codesniff/internal/stream"
	"codesniff/internal/token"
)

// TokenOutput is one token of a JSON dump. Absent indices are -1.
type TokenOutput struct {
	Index       int         `json:"index"`
	Kind        string      `json:"kind"`
	Text        string      `json:"text"`
	Span        source.Span `json:"span"`
	Line        uint32      `json:"line"`
	Col         uint32      `json:"col"`
	Level       int         `json:"level"`
	Partner     int         `json:"partner"`
	ScopeOwner  int         `json:"scope_owner"`
	ScopeOpener int         `json:"scope_opener"`
	ScopeCloser int         `json:"scope_closer"`
	ParenOwner  int         `json:"paren_owner"`
	ParenOpener int         `json:"paren_opener"`
	ParenCloser int         `json:"paren_closer"`
	Conditions  []int       `json:"conditions,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате:
// индекс, вид, текст, позиция, уровень и структурные ссылки.
func FormatTokensPretty(w io.Writer, s *stream.Stream) error {
	for i := range s.Tokens {
		tok := &s.Tokens[i]
		var b strings.Builder
		fmt.Fprintf(&b, "%4d: %-22s %-20q %d:%d L%d", i, tok.Kind.String(), tok.Text, tok.Line, tok.Col, tok.Level)
		link := func(name string, v int) {
			if v != token.None {
				fmt.Fprintf(&b, " %s=%d", name, v)
			}
		}
		link("partner", tok.Partner)
		link("scope_owner", tok.ScopeOwner)
		link("scope_opener", tok.ScopeOpener)
		link("scope_closer", tok.ScopeCloser)
		link("paren_owner", tok.ParenOwner)
		link("paren_opener", tok.ParenOpener)
		link("paren_closer", tok.ParenCloser)
		if len(tok.Conditions) > 0 {
			conds := make([]string, len(tok.Conditions))
			for j, c := range tok.Conditions {
				conds[j] = fmt.Sprintf("%s@%d", s.Kind(c), c)
			}
			fmt.Fprintf(&b, " cond=[%s]", strings.Join(conds, " "))
		}
		if s.IsDegraded(i) {
			b.WriteString(" degraded")
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, s *stream.Stream) error {
	output := make([]TokenOutput, 0, s.Len())
	for i := range s.Tokens {
		tok := &s.Tokens[i]
		output = append(output, TokenOutput{
			Index:       i,
			Kind:        tok.Kind.String(),
			Text:        tok.Text,
			Span:        tok.Span,
			Line:        tok.Line,
			Col:         tok.Col,
			Level:       tok.Level,
			Partner:     tok.Partner,
			ScopeOwner:  tok.ScopeOwner,
			ScopeOpener: tok.ScopeOpener,
			ScopeCloser: tok.ScopeCloser,
			ParenOwner:  tok.ParenOwner,
			ParenOpener: tok.ParenOpener,
			ParenCloser: tok.ParenCloser,
			Conditions:  tok.Conditions,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
