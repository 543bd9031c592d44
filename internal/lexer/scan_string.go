package lexer

import (
	"codesniff/internal/diag"
	"codesniff/internal/token"
)

var heredocStart = []byte("<<<")

// '...': экранируются только \' и \; перевод строки внутри допустим.
func (lx *Lexer) scanSingleQuoted() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '\\':
			lx.cursor.Bump()
		case '\'':
			return lx.emit(token.ConstantString, start)
		}
	}
	lx.errLex(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unterminated string literal")
	return lx.invalidToEOF(start)
}

// "..." и `...`: строка с $name, ${...} или {$...}: InterpolatedString.
func (lx *Lexer) scanDoubleQuoted(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	interpolated := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch {
		case b == '\\':
			lx.cursor.Bump()
		case b == quote:
			kind := token.ConstantString
			if interpolated {
				kind = token.InterpolatedString
			}
			return lx.emit(kind, start)
		case b == '$' && (isIdentStartByte(lx.cursor.Peek()) || lx.cursor.Peek() == '{'):
			interpolated = true
		case b == '{' && lx.cursor.Peek() == '$':
			interpolated = true
		}
	}
	lx.errLex(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unterminated string literal")
	return lx.invalidToEOF(start)
}

// scanHeredoc распознаёт <<<ID, <<<"ID" (heredoc) и <<<'ID' (nowdoc).
// Блок заканчивается первой строкой, где после ведущих пробелов стоит ровно
// ID и за ним не идёт символ идентификатора. ok=false: это не heredoc,
// курсор возвращён на место.
func (lx *Lexer) scanHeredoc() (tok token.Token, ok bool) {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(3)
	lx.skipBlanks()

	quote := lx.cursor.Peek()
	if quote == '\'' || quote == '"' {
		lx.cursor.Bump()
	} else {
		quote = 0
	}

	labelStart := lx.cursor.Off
	if isIdentStartByte(lx.cursor.Peek()) {
		lx.skipIdent()
	}
	label := lx.file.Content[labelStart:lx.cursor.Off]

	malformed := len(label) == 0 || (quote != 0 && !lx.cursor.Eat(quote))
	if !malformed {
		lx.cursor.Eat('\r')
		malformed = !lx.cursor.Eat('\n')
	}
	if malformed {
		if quote == 0 {
			lx.cursor.Reset(start)
			return token.Token{}, false
		}
		lx.errLex(diag.LexBadHeredocLabel, lx.cursor.SpanFrom(start), "malformed heredoc label")
		return lx.invalidToEOF(start), true
	}

	kind := token.Heredoc
	if quote == '\'' {
		kind = token.Nowdoc
	}
	n := uint32(len(label))
	for !lx.cursor.EOF() {
		lx.skipBlanks()
		if lx.cursor.HasPrefix(label) && !isIdentContinueByte(lx.cursor.PeekAt(n)) {
			lx.cursor.BumpN(n)
			return lx.emit(kind, start), true
		}
		for !lx.cursor.EOF() {
			if lx.cursor.Bump() == '\n' {
				break
			}
		}
	}
	lx.errLex(diag.LexUnterminatedHeredoc, lx.cursor.SpanFrom(start), "heredoc terminator "+string(label)+" not found")
	return lx.invalidToEOF(start), true
}
