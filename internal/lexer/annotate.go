package lexer

import (
	"fmt"
	"slices"

	"codesniff/internal/diag"
	"codesniff/internal/source"
	"codesniff/internal/token"
)

// pendingOwner: ключевое слово, ждущее свою '{' на той же глубине скобок.
type pendingOwner struct {
	idx   int
	depth int
}

// annotator держит состояние прохода разметки.
type annotator struct {
	lx    *Lexer
	toks  []token.Token
	stack []int // открытые скобки (индексы)
	pend  []pendingOwner
	tern  []int // глубины открытых '?'
	conds []int
	snap  []int // общий срез conds для токенов; не дописывается
	sig   [3]int
}

// annotate: второй проход: скобки и их пары, владельцы скоупов и круглых
// скобок, стек условий, уровень вложенности, тернарные ':'.
// Возвращает индекс токена, после которого разметка не выполнялась, или None.
func (lx *Lexer) annotate() int {
	a := &annotator{
		lx:   lx,
		toks: lx.toks,
		sig:  [3]int{token.None, token.None, token.None},
	}
	for i := range a.toks {
		if i == lx.fatalAt {
			a.plain(i)
			return i
		}
		if !a.step(i) {
			return i
		}
	}
	return a.finish()
}

func (a *annotator) depth() int { return len(a.stack) }

func (a *annotator) plain(i int) {
	a.toks[i].Level = a.depth()
	a.toks[i].Conditions = a.snap
}

// step размечает токен i; false: несовпавшая закрывающая скобка,
// поток переходит в деградированный режим.
func (a *annotator) step(i int) bool {
	t := &a.toks[i]
	a.plain(i)
	if t.Kind.IsEmpty() {
		return true
	}

	switch t.Kind {
	case token.OpenParen:
		if owner := a.parenOwner(); owner != token.None {
			t.ParenOwner = owner
			t.ParenOpener = i
			a.toks[owner].ParenOpener = i
		}
		a.stack = append(a.stack, i)

	case token.OpenSquare:
		if !a.isIndexContext() {
			t.Kind = token.OpenShortArray
		}
		a.stack = append(a.stack, i)

	case token.AttributeStart:
		a.stack = append(a.stack, i)

	case token.OpenCurly:
		a.openCurly(i)

	case token.CloseParen, token.CloseCurly, token.CloseSquare:
		if !a.close(i) {
			return false
		}

	case token.Semicolon:
		d := a.depth()
		for len(a.pend) > 0 && a.pend[len(a.pend)-1].depth >= d {
			a.pend = a.pend[:len(a.pend)-1]
		}
		a.dropTernaries(d)

	case token.InlineThen:
		a.tern = append(a.tern, a.depth())

	case token.Colon:
		if n := len(a.tern); n > 0 && a.tern[n-1] == a.depth() {
			t.Kind = token.InlineElse
			a.tern = a.tern[:n-1]
		}

	default:
		if token.ScopeOwners.Has(t.Kind) && a.mayOwnScope(i) {
			a.pend = append(a.pend, pendingOwner{idx: i, depth: a.depth()})
		}
	}

	a.sig = [3]int{i, a.sig[0], a.sig[1]}
	return true
}

// else, do, try, finally владеют скоупом, только если '{' идёт сразу за ними.
func (a *annotator) mayOwnScope(i int) bool {
	switch a.toks[i].Kind {
	case token.KwElse, token.KwDo, token.KwTry, token.KwFinally:
		for j := i + 1; j < len(a.toks); j++ {
			if !a.toks[j].Kind.IsEmpty() {
				return a.toks[j].Kind == token.OpenCurly
			}
		}
		return false
	}
	return true
}

func (a *annotator) openCurly(i int) {
	t := &a.toks[i]
	d := a.depth()
	if n := len(a.pend); n > 0 && a.pend[n-1].depth == d {
		owner := a.pend[n-1].idx
		// остальные ожидающие на этой глубине уже не получат свою '{':
		// "if ($a) foreach (...) {": скоуп принадлежит foreach.
		for len(a.pend) > 0 && a.pend[len(a.pend)-1].depth == d {
			a.pend = a.pend[:len(a.pend)-1]
		}
		t.ScopeOwner = owner
		t.ScopeOpener = i
		a.toks[owner].ScopeOpener = i
		a.conds = append(a.conds, owner)
		a.snap = slices.Clone(a.conds)
	}
	a.stack = append(a.stack, i)
}

func (a *annotator) close(i int) bool {
	t := &a.toks[i]
	n := len(a.stack)
	if n == 0 || !pairs(a.toks[a.stack[n-1]].Kind, t.Kind) {
		a.lx.errLex(diag.LexUnmatchedCloser, t.Span, fmt.Sprintf("unmatched %q", t.Text))
		t.Kind = token.Invalid
		return false
	}
	o := a.stack[n-1]
	a.stack = a.stack[:n-1]
	opener := &a.toks[o]
	opener.Partner = i
	t.Partner = o
	t.Level = a.depth()

	switch t.Kind {
	case token.CloseSquare:
		if opener.Kind == token.OpenShortArray {
			t.Kind = token.CloseShortArray
		}
	case token.CloseParen:
		if owner := opener.ParenOwner; owner != token.None {
			t.ParenOwner = owner
			t.ParenOpener = o
			t.ParenCloser = i
			opener.ParenCloser = i
			a.toks[owner].ParenCloser = i
		}
	case token.CloseCurly:
		if owner := opener.ScopeOwner; owner != token.None {
			a.conds = a.conds[:len(a.conds)-1]
			a.snap = nil
			if len(a.conds) > 0 {
				a.snap = slices.Clone(a.conds)
			}
			t.ScopeOwner = owner
			t.ScopeOpener = o
			t.ScopeCloser = i
			opener.ScopeCloser = i
			a.toks[owner].ScopeCloser = i
		}
	}
	t.Conditions = a.snap

	d := a.depth()
	for len(a.pend) > 0 && a.pend[len(a.pend)-1].depth > d {
		a.pend = a.pend[:len(a.pend)-1]
	}
	a.dropTernaries(d + 1)
	return true
}

// dropTernaries забывает '?' на глубине >= d.
func (a *annotator) dropTernaries(d int) {
	for len(a.tern) > 0 && a.tern[len(a.tern)-1] >= d {
		a.tern = a.tern[:len(a.tern)-1]
	}
}

func pairs(open, closeKind token.Kind) bool {
	switch closeKind {
	case token.CloseParen:
		return open == token.OpenParen
	case token.CloseCurly:
		return open == token.OpenCurly
	case token.CloseSquare:
		return open == token.OpenSquare || open == token.OpenShortArray || open == token.AttributeStart
	}
	return false
}

// isIndexContext: '[' после переменной, имени, ')', ']', строки или '}' не
// от скоупа: доступ по индексу; иначе литерал короткого массива.
func (a *annotator) isIndexContext() bool {
	p := a.sig[0]
	if p == token.None {
		return false
	}
	prev := &a.toks[p]
	switch prev.Kind {
	case token.Variable, token.Identifier, token.CloseParen, token.CloseSquare,
		token.CloseShortArray, token.ConstantString, token.InterpolatedString,
		token.Heredoc, token.Nowdoc:
		return true
	case token.CloseCurly:
		// match — выражение, за ним индекс, а не литерал массива
		return prev.ScopeOwner == token.None || a.toks[prev.ScopeOwner].Kind == token.KwMatch
	}
	return false
}

// parenOwner ищет ключевое слово, которому принадлежит открываемая '(':
// if (, array (, function (, function name (, function &name (, fn& (.
func (a *annotator) parenOwner() int {
	p1, p2, p3 := a.sig[0], a.sig[1], a.sig[2]
	if p1 == token.None {
		return token.None
	}
	k1 := a.toks[p1].Kind
	if token.ParenOwners.Has(k1) {
		if a.toks[p1].ParenOpener != token.None {
			return token.None
		}
		return p1
	}
	if p2 == token.None {
		return token.None
	}
	k2 := a.toks[p2].Kind
	switch {
	case k1 == token.Identifier && k2 == token.KwFunction:
		return p2
	case k1 == token.BitAnd && (k2 == token.KwFunction || k2 == token.KwFn):
		return p2
	case k1 == token.Identifier && k2 == token.BitAnd && p3 != token.None && a.toks[p3].Kind == token.KwFunction:
		return p3
	}
	return token.None
}

// finish закрывает разметку: незакрытые скобки дают диагностику и
// нулевой Invalid токен в конце (если последний токен ещё не Invalid).
func (a *annotator) finish() int {
	if len(a.stack) == 0 {
		return token.None
	}
	for _, o := range a.stack {
		t := &a.toks[o]
		a.lx.errLex(diag.LexUnclosedBracket, t.Span, fmt.Sprintf("unclosed %q", t.Text))
	}
	if n := len(a.toks); n > 0 && a.toks[n-1].Kind == token.Invalid {
		return n - 1
	}
	end := a.lx.cursor.Off
	eof := token.New(token.Invalid, source.Span{File: a.lx.file.ID, Start: end, End: end}, "")
	eof.Level = a.depth()
	eof.Conditions = a.snap
	a.lx.toks = append(a.lx.toks, eof)
	a.toks = a.lx.toks
	return len(a.toks) - 1
}
