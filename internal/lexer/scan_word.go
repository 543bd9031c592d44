package lexer

import (
	"fmt"

	"codesniff/internal/diag"
	"codesniff/internal/token"

	"fortio.org/safecast"
)

// scanWord сканирует имя и проверяет через LookupKeyword.
// Ключевые слова регистронезависимые; Token.Text: ровно исходный срез.
func (lx *Lexer) scanWord() token.Token {
	start := lx.cursor.Mark()
	if lx.skipIdent() > maxTokenLength {
		return lx.tooLong(start)
	}
	tok := lx.emit(token.Identifier, start)
	if lx.wordIsName() {
		return tok
	}
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// wordIsName: после ->, ?->, :: и function слово всегда имя,
// даже если совпадает с ключевым словом ($obj->list, Foo::class, function print()).
func (lx *Lexer) wordIsName() bool {
	if lx.nsig == 0 {
		return false
	}
	switch lx.prev {
	case token.ObjectOperator, token.NullsafeObjectOperator, token.DoubleColon, token.KwFunction:
		return true
	case token.BitAnd:
		return lx.nsig > 1 && lx.prev2 == token.KwFunction
	}
	return false
}

// $name: переменная, одиночный '$' (для $$x): Dollar.
func (lx *Lexer) scanVariable() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '$'
	if !isIdentStartByte(lx.cursor.Peek()) {
		return lx.emit(token.Dollar, start)
	}
	if lx.skipIdent() > maxTokenLength {
		return lx.tooLong(start)
	}
	return lx.emit(token.Variable, start)
}

func (lx *Lexer) tooLong(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	n, err := safecast.Conv[int](sp.Len())
	if err != nil {
		panic(fmt.Errorf("token length overflow: %w", err))
	}
	lx.errLex(diag.LexTokenTooLong, sp, fmt.Sprintf("token is %d bytes long (limit %d)", n, maxTokenLength))
	return lx.invalidToEOF(start)
}
