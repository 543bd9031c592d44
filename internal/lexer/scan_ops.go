package lexer

import (
	"fmt"
	"strings"

	"codesniff/internal/diag"
	"codesniff/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		return lx.emit(k, start)
	}

	switch {
	case lx.try3('=', '=', '='):
		return emit(token.Identical)
	case lx.try3('!', '=', '='):
		return emit(token.NotIdentical)
	case lx.try3('<', '=', '>'):
		return emit(token.Spaceship)
	case lx.try3('*', '*', '='):
		return emit(token.PowAssign)
	case lx.try3('.', '.', '.'):
		return emit(token.Ellipsis)
	case lx.try3('<', '<', '='):
		return emit(token.ShlAssign)
	case lx.try3('>', '>', '='):
		return emit(token.ShrAssign)
	case lx.try3('?', '?', '='):
		return emit(token.CoalesceAssign)
	case lx.try3('?', '-', '>'):
		return emit(token.NullsafeObjectOperator)
	}

	switch {
	case lx.try2('=', '='):
		return emit(token.Equal)
	case lx.try2('!', '='), lx.try2('<', '>'):
		return emit(token.NotEqual)
	case lx.try2('<', '='):
		return emit(token.LessEqual)
	case lx.try2('>', '='):
		return emit(token.GreaterEqual)
	case lx.try2('&', '&'):
		return emit(token.BooleanAnd)
	case lx.try2('|', '|'):
		return emit(token.BooleanOr)
	case lx.try2('+', '+'):
		return emit(token.Inc)
	case lx.try2('-', '-'):
		return emit(token.Dec)
	case lx.try2('+', '='):
		return emit(token.PlusAssign)
	case lx.try2('-', '='):
		return emit(token.MinusAssign)
	case lx.try2('*', '='):
		return emit(token.MulAssign)
	case lx.try2('/', '='):
		return emit(token.DivAssign)
	case lx.try2('.', '='):
		return emit(token.ConcatAssign)
	case lx.try2('%', '='):
		return emit(token.ModAssign)
	case lx.try2('&', '='):
		return emit(token.AndAssign)
	case lx.try2('|', '='):
		return emit(token.OrAssign)
	case lx.try2('^', '='):
		return emit(token.XorAssign)
	case lx.try2('*', '*'):
		return emit(token.Pow)
	case lx.try2('<', '<'):
		return emit(token.Shl)
	case lx.try2('>', '>'):
		return emit(token.Shr)
	case lx.try2('?', '?'):
		return emit(token.Coalesce)
	case lx.try2(':', ':'):
		return emit(token.DoubleColon)
	case lx.try2('-', '>'):
		return emit(token.ObjectOperator)
	case lx.try2('=', '>'):
		return emit(token.DoubleArrow)
	}

	// односимвольные
	ch := lx.cursor.Bump()
	if k, ok := singleByteOps[ch]; ok {
		if k == token.InlineThen && lx.nullableContext() {
			k = token.Nullable
		}
		return emit(k)
	}

	// неизвестный символ
	tok := emit(token.Invalid)
	lx.errLex(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unknown character %q", tok.Text))
	return tok
}

var singleByteOps = map[byte]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash,
	'%': token.Percent, '.': token.Concat, '=': token.Assign, '<': token.Less,
	'>': token.Greater, '!': token.BooleanNot, '&': token.BitAnd, '|': token.BitOr,
	'^': token.BitXor, '~': token.BitNot, '?': token.InlineThen, ':': token.Colon,
	';': token.Semicolon, ',': token.Comma, '@': token.At, '\\': token.NsSeparator,
	'(': token.OpenParen, ')': token.CloseParen, '{': token.OpenCurly, '}': token.CloseCurly,
	'[': token.OpenSquare, ']': token.CloseSquare,
}

// '?' перед типом: (?int $a, ?Foo $b): ?Bar, public ?int $x.
func (lx *Lexer) nullableContext() bool {
	if lx.nsig == 0 {
		return false
	}
	switch lx.prev {
	case token.OpenParen, token.Comma, token.Colon,
		token.KwPublic, token.KwProtected, token.KwPrivate,
		token.KwStatic, token.KwReadonly, token.KwVar, token.KwConst:
		return true
	}
	return false
}

// scanCast распознаёт "(" blanks type blanks ")" как один Cast токен.
func (lx *Lexer) scanCast() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '('
	lx.skipBlanks()
	nameStart := lx.cursor.Off
	lx.skipIdent()
	name := strings.ToLower(string(lx.file.Content[nameStart:lx.cursor.Off]))
	lx.skipBlanks()
	if _, ok := token.CastTypes[name]; ok && lx.cursor.Eat(')') {
		return lx.emit(token.Cast, start), true
	}
	lx.cursor.Reset(start)
	return token.Token{}, false
}
