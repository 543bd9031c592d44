package lexer

import (
	"codesniff/internal/source"
	"codesniff/internal/token"
)

// Result is the output of Tokenize.
type Result struct {
	Tokens []token.Token
	// ErrorAt is the index of the parse-error token where structural
	// annotation stopped, or token.None.
	ErrorAt int
}

// Lexer performs the raw scan. It keeps the last two significant kinds so
// that context-dependent words and '?' can be classified on the fly.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	toks   []token.Token

	prev  token.Kind // последний значимый токен
	prev2 token.Kind // предпоследний
	nsig  int

	// fatalAt: индекс Invalid токена, поглотившего остаток файла.
	fatalAt int
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		toks:   make([]token.Token, 0, len(file.Content)/4+1),

		fatalAt: token.None,
	}
}

// Tokenize splits file into a lossless token stream and annotates brackets,
// scopes and conditions. It never fails: malformed input becomes Invalid
// tokens and lexical diagnostics.
func Tokenize(file *source.File, opts Options) Result {
	lx := New(file, opts)
	lx.scanAll()
	errAt := lx.annotate()
	lx.computePositions()
	return Result{Tokens: lx.toks, ErrorAt: errAt}
}

func (lx *Lexer) scanAll() {
	for !lx.cursor.EOF() {
		tok := lx.next()
		lx.toks = append(lx.toks, tok)
		if !tok.Kind.IsEmpty() {
			lx.prev2, lx.prev = lx.prev, tok.Kind
			lx.nsig++
		}
	}
}

// next сканирует один токен; курсор всегда продвигается хотя бы на байт.
func (lx *Lexer) next() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case isBlank(ch) || ch == '\n':
		return lx.scanWhitespace()

	case ch == '#':
		if lx.cursor.PeekAt(1) == '[' {
			start := lx.cursor.Mark()
			lx.cursor.BumpN(2)
			return lx.emit(token.AttributeStart, start)
		}
		return lx.scanLineComment()

	case ch == '/' && (lx.cursor.PeekAt(1) == '/' || lx.cursor.PeekAt(1) == '*'):
		if lx.cursor.PeekAt(1) == '/' {
			return lx.scanLineComment()
		}
		return lx.scanBlockComment()

	case ch == '$':
		return lx.scanVariable()

	case isIdentStartByte(ch):
		return lx.scanWord()

	case isDec(ch):
		return lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()

	case ch == '\'':
		return lx.scanSingleQuoted()

	case ch == '"' || ch == '`':
		return lx.scanDoubleQuoted(ch)

	case ch == '<' && lx.cursor.HasPrefix(heredocStart):
		if tok, ok := lx.scanHeredoc(); ok {
			return tok
		}
		return lx.scanOperatorOrPunct()

	case ch == '(':
		if tok, ok := lx.scanCast(); ok {
			return tok
		}
		return lx.scanOperatorOrPunct()

	default:
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.New(kind, sp, string(lx.file.Content[sp.Start:sp.End]))
}

// invalidToEOF turns the remainder of the input into one Invalid token.
func (lx *Lexer) invalidToEOF(start Mark) token.Token {
	lx.cursor.SkipToEOF()
	lx.fatalAt = len(lx.toks)
	return lx.emit(token.Invalid, start)
}
