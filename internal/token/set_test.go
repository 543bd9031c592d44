package token

import "testing"

func TestSetMembership(t *testing.T) {
	s := NewSet(Variable, LogicalAnd, AttributeStart)
	for _, k := range []Kind{Variable, LogicalAnd, AttributeStart} {
		if !s.Has(k) {
			t.Fatalf("expected %v in set", k)
		}
	}
	if s.Has(Identifier) {
		t.Fatal("Identifier must not be in set")
	}

	s = s.Without(LogicalAnd).With(Comma)
	if s.Has(LogicalAnd) || !s.Has(Comma) {
		t.Fatalf("With/Without broken: %v", s)
	}
	if got := s.String(); got != "{Variable,Comma,AttributeStart}" {
		t.Fatalf("String() = %q", got)
	}
}

func TestSetUnionAndZero(t *testing.T) {
	var zero Set
	if !zero.IsZero() {
		t.Fatal("zero set must be empty")
	}
	u := EmptyTokens.Union(NewSet(Semicolon))
	for _, k := range []Kind{Whitespace, Comment, DocComment, Semicolon} {
		if !u.Has(k) {
			t.Fatalf("expected %v in union", k)
		}
	}
	if len(u.Kinds()) != 4 {
		t.Fatalf("expected 4 kinds, got %v", u.Kinds())
	}
}

func TestKeywordsSetMatchesIsKeyword(t *testing.T) {
	for k := Kind(0); k < kindCount; k++ {
		if Keywords.Has(k) != k.IsKeyword() {
			t.Fatalf("Keywords set disagrees with IsKeyword for %v", k)
		}
	}
}
