package stream

import "codesniff/internal/token"

var (
	statementOpeners = token.NewSet(token.OpenParen, token.OpenSquare, token.OpenShortArray, token.AttributeStart)
	declarations     = token.NewSet(token.KwFunction, token.KwClass, token.KwInterface, token.KwTrait, token.KwEnum)
)

// FindStartOfStatement returns the first code token of the statement that
// contains idx. The walk goes backwards, jumping over bracketed groups, and
// stops after ';', '{', '}' or an enclosing opener. Closures, anonymous
// classes and match blocks are part of the statement and are skipped.
func (s *Stream) FindStartOfStatement(idx int) int {
	if !s.Valid(idx) {
		return token.None
	}
	stop := -1
	for i := idx - 1; i >= 0; i-- {
		t := &s.Tokens[i]
		switch {
		case t.Kind == token.Semicolon, t.Kind == token.OpenCurly:
			stop = i
		case t.Kind == token.CloseCurly && t.ScopeOwner != token.None && t.Partner != token.None &&
			s.isExpressionScope(t.ScopeOwner):
			// замыкание или match внутри выражения: оператор продолжается до владельца
			i = t.ScopeOwner
			continue
		case t.Kind == token.CloseCurly && (t.ScopeOwner != token.None || t.Partner == token.None):
			stop = i
		case token.CloseBrackets.Has(t.Kind) && t.Partner != token.None:
			i = t.Partner
			continue
		case statementOpeners.Has(t.Kind):
			stop = i
		case t.Kind == token.Invalid:
			stop = i
		default:
			continue
		}
		break
	}
	start := s.FindNext(token.EmptyTokens, stop+1, idx+1, true)
	if start == token.None {
		return idx
	}
	return start
}

// FindEndOfStatement returns the token that ends the statement containing
// idx: its ';', the closer of a declaration or control structure block, or
// the last code token before an enclosing closer.
func (s *Stream) FindEndOfStatement(idx int) int {
	if !s.Valid(idx) {
		return token.None
	}
	last := idx
	for i := idx; i < len(s.Tokens); i++ {
		t := &s.Tokens[i]
		switch {
		case t.Kind.IsEmpty():
			continue
		case t.Kind == token.Semicolon:
			return i
		case t.Kind == token.OpenCurly && t.ScopeOwner != token.None && t.Partner != token.None:
			if !s.isExpressionScope(t.ScopeOwner) {
				return t.Partner
			}
			i = t.Partner
		case token.OpenBrackets.Has(t.Kind) && t.Partner != token.None:
			i = t.Partner
		case token.CloseBrackets.Has(t.Kind), t.Kind == token.Invalid:
			if i == idx {
				return i
			}
			return last
		}
		last = i
	}
	return last
}

// isExpressionScope: closures, anonymous classes and match blocks sit inside
// a larger statement that continues after their '}'.
func (s *Stream) isExpressionScope(owner int) bool {
	switch s.Tokens[owner].Kind {
	case token.KwMatch:
		return true
	case token.KwFunction, token.KwClass:
		return s.DeclarationName(owner) == ""
	}
	return false
}

// DeclarationName returns the declared name of a function, class,
// interface, trait or enum. Closures, anonymous classes, non-declarations and
// tokens in the degraded region yield "".
func (s *Stream) DeclarationName(idx int) string {
	if !s.Valid(idx) || s.IsDegraded(idx) || !declarations.Has(s.Tokens[idx].Kind) {
		return ""
	}
	next := s.NextNonEmpty(idx)
	if next != token.None && s.Tokens[idx].Kind == token.KwFunction && s.Tokens[next].Kind == token.BitAnd {
		next = s.NextNonEmpty(next)
	}
	if next == token.None || s.Tokens[next].Kind != token.Identifier {
		return ""
	}
	return s.Tokens[next].Text
}
