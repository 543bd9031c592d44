package token

import "testing"

func TestLookupKeyword_CaseInsensitive(t *testing.T) {
	cases := map[string]Kind{
		"function": KwFunction,
		"FUNCTION": KwFunction,
		"and":      LogicalAnd,
		"AND":      LogicalAnd,
		"And":      LogicalAnd,
		"Or":       LogicalOr,
		"xor":      LogicalXor,
		"die":      KwExit,
		"elseif":   KwElseif,
	}
	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	for _, s := range []string{"int", "string", "self", "parent", "andx", "functions"} {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}
