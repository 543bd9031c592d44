package token

import (
	"codesniff/internal/source"
)

// None marks an absent index (no partner, no owner, not found).
const None = -1

// Token represents a single source token with its location and structural annotations.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Line uint32 // 1-based
	Col  uint32 // 1-based, tab-expanded when a tab width is configured

	// Level is the number of brackets open at this token.
	// Openers and closers carry the level outside their pair.
	Level int

	Partner     int // matching bracket
	ScopeOwner  int // on scope openers/closers: the owning keyword
	ScopeOpener int
	ScopeCloser int
	ParenOwner  int // on '(' and ')': the owning keyword
	ParenOpener int // on paren owners
	ParenCloser int

	// Conditions lists enclosing scope owners, outermost first.
	// The slice is shared between neighbouring tokens; never append to it.
	Conditions []int
}

// New returns a token with every structural index set to None.
func New(kind Kind, span source.Span, text string) Token {
	return Token{
		Kind:        kind,
		Span:        span,
		Text:        text,
		Partner:     None,
		ScopeOwner:  None,
		ScopeOpener: None,
		ScopeCloser: None,
		ParenOwner:  None,
		ParenOpener: None,
		ParenCloser: None,
	}
}

// Len returns the byte length of the lexeme.
func (t *Token) Len() int { return len(t.Text) }

// HasPartner reports whether the token is a matched bracket.
func (t *Token) HasPartner() bool { return t.Partner != None }

// HasScope reports whether the token owns, opens or closes a scope.
func (t *Token) HasScope() bool { return t.ScopeOpener != None && t.ScopeCloser != None }

// IsEmpty reports whether the token is whitespace or a comment.
func (t *Token) IsEmpty() bool { return t.Kind.IsEmpty() }

// EndsLine reports whether the lexeme ends with a newline.
func (t *Token) EndsLine() bool {
	return len(t.Text) > 0 && t.Text[len(t.Text)-1] == '\n'
}
