package lexer

import (
	"codesniff/internal/diag"
	"codesniff/internal/token"
)

// scanWhitespace: пробелы/табы/\r коалесцируются, токен заканчивается
// после не более чем одного '\n'.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for isBlank(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	lx.cursor.Eat('\n')
	return lx.emit(token.Whitespace, start)
}

// //... и #... до конца строки; сам '\n' уходит в whitespace.
func (lx *Lexer) scanLineComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return lx.emit(token.Comment, start)
}

// /* ... */ без вложенности; /** + пробел: doc comment.
func (lx *Lexer) scanBlockComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(2)
	kind := token.Comment
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && (isBlank(b1) || b1 == '\n') {
		kind = token.DocComment
	}
	for !lx.cursor.EOF() {
		if lx.try2('*', '/') {
			return lx.emit(kind, start)
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedComment, sp, "unterminated block comment")
	return lx.invalidToEOF(start)
}
