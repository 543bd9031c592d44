package lexer

import (
	"slices"
	"strings"
	"testing"

	"codesniff/internal/diag"
	"codesniff/internal/source"
	"codesniff/internal/token"
)

func lex(t *testing.T, src string) (Result, *diag.Bag) {
	t.Helper()
	return lexWith(t, src, Options{})
}

func lexWith(t *testing.T, src string, opts Options) (Result, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(0)
	opts.Reporter = diag.BagReporter{Bag: bag}
	file := source.NewFile(1, "test.php", []byte(src), source.FileVirtual)
	res := Tokenize(file, opts)
	assertLossless(t, src, res.Tokens)
	assertPartnersSymmetric(t, res.Tokens)
	return res, bag
}

func assertLossless(t *testing.T, src string, toks []token.Token) {
	t.Helper()
	var b strings.Builder
	for i, tok := range toks {
		if uint32(b.Len()) != tok.Span.Start {
			t.Fatalf("token %d (%v %q) starts at %d, expected %d", i, tok.Kind, tok.Text, tok.Span.Start, b.Len())
		}
		b.WriteString(tok.Text)
	}
	if b.String() != src {
		t.Fatalf("lossless check failed:\nwant %q\ngot  %q", src, b.String())
	}
}

func assertPartnersSymmetric(t *testing.T, toks []token.Token) {
	t.Helper()
	for i, tok := range toks {
		if tok.Partner == token.None {
			continue
		}
		if toks[tok.Partner].Partner != i {
			t.Fatalf("partner of %d is %d, but partner of %d is %d", i, tok.Partner, tok.Partner, toks[tok.Partner].Partner)
		}
	}
}

func significant(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, tok := range toks {
		if !tok.Kind.IsEmpty() {
			out = append(out, tok)
		}
	}
	return out
}

func sigKinds(toks []token.Token) []token.Kind {
	sig := significant(toks)
	out := make([]token.Kind, len(sig))
	for i, tok := range sig {
		out[i] = tok.Kind
	}
	return out
}

// indexOf returns the index of the nth (0-based) token with the given text.
func indexOf(t *testing.T, toks []token.Token, text string, nth int) int {
	t.Helper()
	for i, tok := range toks {
		if tok.Text == text {
			if nth == 0 {
				return i
			}
			nth--
		}
	}
	t.Fatalf("token %q not found", text)
	return token.None
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func expectKinds(t *testing.T, got, want []token.Kind) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Fatalf("kinds mismatch:\nwant %v\ngot  %v", want, got)
	}
}

func TestWhitespaceEndsAfterOneNewline(t *testing.T) {
	res, _ := lex(t, "a  \n\n\tb")
	want := []string{"a", "  \n", "\n", "\t", "b"}
	if len(res.Tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(res.Tokens))
	}
	for i, w := range want {
		if res.Tokens[i].Text != w {
			t.Fatalf("token %d: got %q, want %q", i, res.Tokens[i].Text, w)
		}
	}
	if res.ErrorAt != token.None {
		t.Fatalf("unexpected ErrorAt %d", res.ErrorAt)
	}
}

func TestComments(t *testing.T) {
	res, _ := lex(t, "/** doc */ /**/ /* c */ // line\n# hash\n")
	var got []token.Kind
	for _, tok := range res.Tokens {
		if tok.Kind != token.Whitespace {
			got = append(got, tok.Kind)
		}
	}
	expectKinds(t, got, []token.Kind{token.DocComment, token.Comment, token.Comment, token.Comment, token.Comment})
	if res.Tokens[indexOf(t, res.Tokens, "// line", 0)+1].Text != "\n" {
		t.Fatalf("line comment must not swallow the newline")
	}
}

func TestNumbers(t *testing.T) {
	res, _ := lex(t, "1 1_000 0x1F 0b101 0o17 1.5 .5 1. 1e3 1.5E-3 1e 0x")
	L, D, I := token.LNumber, token.DNumber, token.Identifier
	expectKinds(t, sigKinds(res.Tokens), []token.Kind{L, L, L, L, L, D, D, D, D, D, L, I, L, I})
}

func TestStrings(t *testing.T) {
	res, bag := lex(t, `'a\'b' "x $y" "plain" "{$z}" "open`)
	expectKinds(t, sigKinds(res.Tokens), []token.Kind{
		token.ConstantString, token.InterpolatedString, token.ConstantString,
		token.InterpolatedString, token.Invalid,
	})
	if !hasCode(bag, diag.LexUnterminatedString) {
		t.Fatalf("expected LexUnterminatedString")
	}
	if res.ErrorAt != len(res.Tokens)-1 {
		t.Fatalf("ErrorAt = %d, want last token", res.ErrorAt)
	}
}

func TestShortArrayVersusIndex(t *testing.T) {
	res, _ := lex(t, "$a = [1, $b[0], foo()[1], 'str'[0]][0];")
	expectKinds(t, sigKinds(res.Tokens), []token.Kind{
		token.Variable, token.Assign, token.OpenShortArray,
		token.LNumber, token.Comma,
		token.Variable, token.OpenSquare, token.LNumber, token.CloseSquare, token.Comma,
		token.Identifier, token.OpenParen, token.CloseParen, token.OpenSquare, token.LNumber, token.CloseSquare, token.Comma,
		token.ConstantString, token.OpenSquare, token.LNumber, token.CloseSquare,
		token.CloseShortArray, token.OpenSquare, token.LNumber, token.CloseSquare,
		token.Semicolon,
	})
}

func TestShortArrayAfterScopeCloser(t *testing.T) {
	res, _ := lex(t, "if ($a) { }\n[$x, $y] = $z;")
	open := indexOf(t, res.Tokens, "[", 0)
	if res.Tokens[open].Kind != token.OpenShortArray {
		t.Fatalf("'[' after a scope closer must open a short array, got %v", res.Tokens[open].Kind)
	}
}

func TestIndexAfterMatchBlock(t *testing.T) {
	res, _ := lex(t, "$v = match ($x) { 1 => [2] }[0];\nif ($a) { }\n[$y] = $z;")
	idx := indexOf(t, res.Tokens, "[", 1)
	if res.Tokens[idx].Kind != token.OpenSquare {
		t.Fatalf("'[' after a match block must index it, got %v", res.Tokens[idx].Kind)
	}
	arm := indexOf(t, res.Tokens, "[", 0)
	if res.Tokens[arm].Kind != token.OpenShortArray {
		t.Fatalf("'[' in a match arm must open a short array, got %v", res.Tokens[arm].Kind)
	}
	list := indexOf(t, res.Tokens, "[", 2)
	if res.Tokens[list].Kind != token.OpenShortArray {
		t.Fatalf("'[' after an if block must open a short array, got %v", res.Tokens[list].Kind)
	}
}

func TestHeredocAndNowdoc(t *testing.T) {
	src := "$x = <<<EOT\nhello $name\nEOTX\n  EOT;\n$y = <<<'RAW'\nraw\nRAW;\n$z = <<< \"Q\"\nq\nQ;\n"
	res, bag := lex(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	sig := significant(res.Tokens)
	if sig[2].Kind != token.Heredoc || sig[2].Text != "<<<EOT\nhello $name\nEOTX\n  EOT" {
		t.Fatalf("heredoc: got %v %q", sig[2].Kind, sig[2].Text)
	}
	if sig[6].Kind != token.Nowdoc || sig[6].Text != "<<<'RAW'\nraw\nRAW" {
		t.Fatalf("nowdoc: got %v %q", sig[6].Kind, sig[6].Text)
	}
	if sig[10].Kind != token.Heredoc {
		t.Fatalf("quoted heredoc: got %v", sig[10].Kind)
	}
}

func TestShiftIsNotHeredoc(t *testing.T) {
	res, _ := lex(t, "$a <<<$b;")
	expectKinds(t, sigKinds(res.Tokens), []token.Kind{
		token.Variable, token.Shl, token.Less, token.Variable, token.Semicolon,
	})
}

func TestUnterminatedHeredoc(t *testing.T) {
	res, bag := lex(t, "foo(<<<EOT\nabc\n")
	invalid := 0
	for _, tok := range res.Tokens {
		if tok.Kind == token.Invalid {
			invalid++
		}
	}
	last := len(res.Tokens) - 1
	if invalid != 1 || res.Tokens[last].Kind != token.Invalid {
		t.Fatalf("expected exactly one Invalid token at the end, got %d", invalid)
	}
	if res.Tokens[last].Text != "<<<EOT\nabc\n" {
		t.Fatalf("invalid token must run to EOF, got %q", res.Tokens[last].Text)
	}
	if res.ErrorAt != last {
		t.Fatalf("ErrorAt = %d, want %d", res.ErrorAt, last)
	}
	if !hasCode(bag, diag.LexUnterminatedHeredoc) {
		t.Fatalf("expected LexUnterminatedHeredoc")
	}
}

func TestHeredocQuoteMismatch(t *testing.T) {
	res, bag := lex(t, "<<<'EOT\"\nx\nEOT\n")
	if len(res.Tokens) != 1 || res.Tokens[0].Kind != token.Invalid {
		t.Fatalf("expected one Invalid token, got %d tokens", len(res.Tokens))
	}
	if !hasCode(bag, diag.LexBadHeredocLabel) {
		t.Fatalf("expected LexBadHeredocLabel")
	}
}

func TestWordsAfterMemberOperatorsAreIdentifiers(t *testing.T) {
	res, _ := lex(t, "$o->list; $o?->if; Foo::class; function print() {} function &new() {}")
	for _, text := range []string{"list", "if", "class", "print", "new"} {
		i := indexOf(t, res.Tokens, text, 0)
		if res.Tokens[i].Kind != token.Identifier {
			t.Fatalf("%q: got %v, want Identifier", text, res.Tokens[i].Kind)
		}
	}
	if res.Tokens[indexOf(t, res.Tokens, "function", 0)].Kind != token.KwFunction {
		t.Fatalf("function keyword lost")
	}
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	res, _ := lex(t, "$a AND $b Or $c xOr $d; IF (TRUE) {}")
	expectKinds(t, sigKinds(res.Tokens)[:8], []token.Kind{
		token.Variable, token.LogicalAnd, token.Variable, token.LogicalOr,
		token.Variable, token.LogicalXor, token.Variable, token.Semicolon,
	})
	i := indexOf(t, res.Tokens, "AND", 0)
	if res.Tokens[i].Kind != token.LogicalAnd {
		t.Fatalf("AND must keep its text and be LogicalAnd")
	}
	if res.Tokens[indexOf(t, res.Tokens, "IF", 0)].ScopeOpener == token.None {
		t.Fatalf("upper-case IF must own its scope")
	}
}

func TestCasts(t *testing.T) {
	res, _ := lex(t, "( int )$a; (String)$b; (foo)$c;")
	expectKinds(t, sigKinds(res.Tokens), []token.Kind{
		token.Cast, token.Variable, token.Semicolon,
		token.Cast, token.Variable, token.Semicolon,
		token.OpenParen, token.Identifier, token.CloseParen, token.Variable, token.Semicolon,
	})
	if res.Tokens[0].Text != "( int )" {
		t.Fatalf("cast text: %q", res.Tokens[0].Text)
	}
}

func TestDollar(t *testing.T) {
	res, _ := lex(t, "$$x; $ ;")
	expectKinds(t, sigKinds(res.Tokens), []token.Kind{
		token.Dollar, token.Variable, token.Semicolon, token.Dollar, token.Semicolon,
	})
}

func TestAttributes(t *testing.T) {
	res, _ := lex(t, "#[Attr(1)]\n# comment\n")
	open := indexOf(t, res.Tokens, "#[", 0)
	closer := indexOf(t, res.Tokens, "]", 0)
	if res.Tokens[open].Kind != token.AttributeStart || res.Tokens[open].Partner != closer {
		t.Fatalf("attribute opener must partner its ']'")
	}
	if res.Tokens[closer].Kind != token.CloseSquare {
		t.Fatalf("attribute closer kind: %v", res.Tokens[closer].Kind)
	}
	if res.Tokens[indexOf(t, res.Tokens, "# comment", 0)].Kind != token.Comment {
		t.Fatalf("'#' must start a comment")
	}
}

func TestQuestionMarkForms(t *testing.T) {
	res, _ := lex(t, "$a?->b; $c ?? $d; $e ??= 1; $f ? 1 : 2; $g ?: $h; function f(?int $x): ?int {}")
	want := map[string][]token.Kind{
		"?->": {token.NullsafeObjectOperator},
		"??":  {token.Coalesce},
		"??=": {token.CoalesceAssign},
		"?":   {token.InlineThen, token.InlineThen, token.Nullable, token.Nullable},
		":":   {token.InlineElse, token.InlineElse, token.Colon},
	}
	for text, kinds := range want {
		for n, k := range kinds {
			i := indexOf(t, res.Tokens, text, n)
			if res.Tokens[i].Kind != k {
				t.Fatalf("%q #%d: got %v, want %v", text, n, res.Tokens[i].Kind, k)
			}
		}
	}
}

func TestNestedTernary(t *testing.T) {
	res, _ := lex(t, "$a ? ($b ? 1 : 2) : 3; switch ($x) { case 1: break; }")
	for n := range 2 {
		if k := res.Tokens[indexOf(t, res.Tokens, ":", n)].Kind; k != token.InlineElse {
			t.Fatalf("':' #%d: got %v", n, k)
		}
	}
	if k := res.Tokens[indexOf(t, res.Tokens, ":", 2)].Kind; k != token.Colon {
		t.Fatalf("case label ':' must stay Colon, got %v", k)
	}
}

const nested = `class A {
    public function f($x) {
        if ($x) {
            return 1;
        }
    }
}
`

func TestConditionsAndLevels(t *testing.T) {
	res, bag := lex(t, nested)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	toks := res.Tokens
	class := indexOf(t, toks, "class", 0)
	fn := indexOf(t, toks, "function", 0)
	ifTok := indexOf(t, toks, "if", 0)
	ret := indexOf(t, toks, "return", 0)

	if got := toks[ret].Conditions; !slices.Equal(got, []int{class, fn, ifTok}) {
		t.Fatalf("return conditions = %v, want %v", got, []int{class, fn, ifTok})
	}
	if toks[ret].Level != 3 {
		t.Fatalf("return level = %d, want 3", toks[ret].Level)
	}

	ifOpen := toks[ifTok].ScopeOpener
	ifClose := toks[ifTok].ScopeCloser
	if ifOpen == token.None || ifClose == token.None {
		t.Fatalf("if must own a scope")
	}
	for _, i := range []int{ifOpen, ifClose} {
		if !slices.Equal(toks[i].Conditions, []int{class, fn}) {
			t.Fatalf("if braces must carry the outer conditions, got %v", toks[i].Conditions)
		}
		if toks[i].Level != 2 || toks[i].ScopeOwner != ifTok {
			t.Fatalf("if brace %d: level %d owner %d", i, toks[i].Level, toks[i].ScopeOwner)
		}
	}
	if toks[ifOpen].Partner != ifClose {
		t.Fatalf("if braces are not partners")
	}

	// LIFO: every token's conditions extend the conditions of its owner's opener
	for i, tok := range toks {
		for depth, owner := range tok.Conditions {
			opener := toks[owner].ScopeOpener
			if !slices.Equal(toks[opener].Conditions, tok.Conditions[:depth]) {
				t.Fatalf("token %d: conditions %v not nested under owner %d", i, tok.Conditions, owner)
			}
			if i <= opener || i >= toks[owner].ScopeCloser {
				t.Fatalf("token %d lies outside the scope of %d", i, owner)
			}
		}
	}

	paren := indexOf(t, toks, "(", 0)
	if toks[paren].ParenOwner != fn || toks[fn].ParenOpener != paren || toks[fn].ParenCloser != toks[paren].Partner {
		t.Fatalf("function parenthesis ownership is wrong")
	}
	if last := toks[len(toks)-1]; last.Level != 0 || last.Conditions != nil {
		t.Fatalf("trailing whitespace must be outside every scope")
	}
}

func TestScopeOwnerRules(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		owner    string
		nth      int
		hasScope bool
	}{
		{"else if", "if ($a) { } else if ($b) { }", "else", 0, false},
		{"else if inner", "if ($a) { } else if ($b) { }", "if", 1, true},
		{"do", "do { } while ($a);", "do", 0, true},
		{"do while", "do { } while ($a);", "while", 0, false},
		{"alternative syntax", "if ($a): foo(); endif;", "if", 0, false},
		{"abstract method", "abstract class B { abstract function g(); function h() {} }", "function", 0, false},
		{"method after abstract", "abstract class B { abstract function g(); function h() {} }", "function", 1, true},
		{"closure", "$f = function () use ($y) { return $y; };", "function", 0, true},
		{"braceless if", "if ($a) foreach ($b as $c) { }", "if", 0, false},
		{"braceless foreach", "if ($a) foreach ($b as $c) { }", "foreach", 0, true},
		{"try finally", "try { } catch (E $e) { } finally { }", "finally", 0, true},
		{"namespace statement", "namespace Foo; function f() {}", "namespace", 0, false},
		{"match", "$r = match ($x) { 1 => 'a', default => 'b' };", "match", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, _ := lex(t, tc.src)
			i := indexOf(t, res.Tokens, tc.owner, tc.nth)
			if got := res.Tokens[i].HasScope(); got != tc.hasScope {
				t.Fatalf("%q HasScope = %v, want %v", tc.owner, got, tc.hasScope)
			}
		})
	}
}

func TestParenOwnerByReference(t *testing.T) {
	res, _ := lex(t, "function &foo($a) {} $x = array(1); isset($y);")
	for _, c := range []struct {
		owner string
		paren int
	}{{"function", 0}, {"array", 1}, {"isset", 2}} {
		owner := indexOf(t, res.Tokens, c.owner, 0)
		paren := indexOf(t, res.Tokens, "(", c.paren)
		if res.Tokens[paren].ParenOwner != owner {
			t.Fatalf("%s: paren owner = %d, want %d", c.owner, res.Tokens[paren].ParenOwner, owner)
		}
		closer := res.Tokens[paren].Partner
		if res.Tokens[closer].ParenOwner != owner || res.Tokens[owner].ParenCloser != closer {
			t.Fatalf("%s: closing paren ownership is wrong", c.owner)
		}
	}
}

func TestMismatchedCloserDegrades(t *testing.T) {
	res, bag := lex(t, "foo(]);\nif ($a) { bar(); }")
	bad := indexOf(t, res.Tokens, "]", 0)
	if res.Tokens[bad].Kind != token.Invalid || res.ErrorAt != bad {
		t.Fatalf("mismatched closer must become the error token")
	}
	if !hasCode(bag, diag.LexUnmatchedCloser) {
		t.Fatalf("expected LexUnmatchedCloser")
	}
	for i := bad + 1; i < len(res.Tokens); i++ {
		tok := res.Tokens[i]
		if tok.Partner != token.None || tok.ScopeOwner != token.None || tok.Conditions != nil {
			t.Fatalf("token %d (%q) annotated after the error", i, tok.Text)
		}
		if tok.Line == 0 {
			t.Fatalf("positions must still be computed in degraded mode")
		}
	}
	if res.Tokens[indexOf(t, res.Tokens, "if", 0)].HasScope() {
		t.Fatalf("no scopes after the error token")
	}
}

func TestUnclosedBracketsAppendErrorToken(t *testing.T) {
	src := "if ($a) {\n  foo("
	res, bag := lex(t, src)
	last := res.Tokens[len(res.Tokens)-1]
	if last.Kind != token.Invalid || last.Text != "" || last.Span.Start != uint32(len(src)) {
		t.Fatalf("expected a zero-length Invalid token at EOF, got %v %q", last.Kind, last.Text)
	}
	if res.ErrorAt != len(res.Tokens)-1 {
		t.Fatalf("ErrorAt = %d", res.ErrorAt)
	}
	n := 0
	for _, d := range bag.Items() {
		if d.Code == diag.LexUnclosedBracket {
			n++
		}
	}
	if n != 2 {
		t.Fatalf("expected 2 unclosed bracket diagnostics, got %d", n)
	}
	if last.Line != 2 || last.Col != 7 {
		t.Fatalf("EOF token position %d:%d", last.Line, last.Col)
	}
}

func TestUnclosedAfterInvalidAppendsNothing(t *testing.T) {
	res, _ := lex(t, "foo(\x01")
	last := res.Tokens[len(res.Tokens)-1]
	if last.Text != "\x01" || res.ErrorAt != len(res.Tokens)-1 {
		t.Fatalf("existing Invalid token must serve as the error token")
	}
}

func TestUnknownCharDoesNotStopAnnotation(t *testing.T) {
	res, bag := lex(t, "$a = \x01; if ($b) { }")
	if !hasCode(bag, diag.LexUnknownChar) {
		t.Fatalf("expected LexUnknownChar")
	}
	if res.ErrorAt != token.None {
		t.Fatalf("unknown byte must not degrade the stream")
	}
	if !res.Tokens[indexOf(t, res.Tokens, "if", 0)].HasScope() {
		t.Fatalf("annotation must continue after an unknown byte")
	}
}

func TestPositions(t *testing.T) {
	res, _ := lexWith(t, "a\tb\n\t'é' $x", Options{TabWidth: 4})
	b := res.Tokens[indexOf(t, res.Tokens, "b", 0)]
	if b.Line != 1 || b.Col != 5 {
		t.Fatalf("b at %d:%d, want 1:5", b.Line, b.Col)
	}
	x := res.Tokens[indexOf(t, res.Tokens, "$x", 0)]
	if x.Line != 2 || x.Col != 9 {
		t.Fatalf("$x at %d:%d, want 2:9", x.Line, x.Col)
	}

	res, _ = lex(t, "a\tb")
	if b := res.Tokens[2]; b.Col != 3 {
		t.Fatalf("without tab width a tab is one column, got %d", b.Col)
	}
}

func TestTokenTooLong(t *testing.T) {
	res, bag := lex(t, "$"+strings.Repeat("a", maxTokenLength+1)+"; foo();")
	if len(res.Tokens) != 1 || res.Tokens[0].Kind != token.Invalid {
		t.Fatalf("expected a single Invalid token, got %d tokens", len(res.Tokens))
	}
	if !hasCode(bag, diag.LexTokenTooLong) {
		t.Fatalf("expected LexTokenTooLong")
	}

	res, bag = lex(t, strings.Repeat("b", maxTokenLength))
	if res.Tokens[0].Kind != token.Identifier || bag.Len() != 0 {
		t.Fatalf("token at the limit must be accepted")
	}
}

func TestLosslessOnGarbage(t *testing.T) {
	inputs := []string{
		"",
		"\r\n\r\n",
		"}}}{{{",
		"<<<",
		"<<<\"",
		"/*",
		"'",
		"\"$",
		"(int",
		"#",
		"$",
		"0x_",
		"?->?:??=",
		"\xff\xfe invalid utf8",
	}
	for _, in := range inputs {
		lex(t, in)
	}
}
