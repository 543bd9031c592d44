package token

import "strings"

// Set is a fixed-size bit set of kinds; membership is O(1).
type Set [4]uint64

// NewSet builds a set from kinds.
func NewSet(kinds ...Kind) Set {
	var s Set
	for _, k := range kinds {
		s[k>>6] |= 1 << (k & 63)
	}
	return s
}

// Has reports whether k is a member.
func (s Set) Has(k Kind) bool {
	return s[k>>6]&(1<<(k&63)) != 0
}

// With returns s plus kinds.
func (s Set) With(kinds ...Kind) Set {
	for _, k := range kinds {
		s[k>>6] |= 1 << (k & 63)
	}
	return s
}

// Union returns s ∪ other.
func (s Set) Union(other Set) Set {
	for i := range s {
		s[i] |= other[i]
	}
	return s
}

// Without returns s minus kinds.
func (s Set) Without(kinds ...Kind) Set {
	for _, k := range kinds {
		s[k>>6] &^= 1 << (k & 63)
	}
	return s
}

// IsZero reports whether the set is empty.
func (s Set) IsZero() bool {
	return s == Set{}
}

// Kinds lists members in ascending order.
func (s Set) Kinds() []Kind {
	out := make([]Kind, 0, 8)
	for k := Kind(0); k < kindCount; k++ {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

func (s Set) String() string {
	kinds := s.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return "{" + strings.Join(names, ",") + "}"
}

var (
	// EmptyTokens are tokens without code: whitespace and comments.
	EmptyTokens = NewSet(Whitespace, Comment, DocComment)

	// Comments are comment tokens.
	Comments = NewSet(Comment, DocComment)

	// OpenBrackets are the bracket kinds that push onto the bracket stack.
	OpenBrackets = NewSet(OpenParen, OpenCurly, OpenSquare, OpenShortArray, AttributeStart)

	// CloseBrackets are the bracket kinds that pop the bracket stack.
	CloseBrackets = NewSet(CloseParen, CloseCurly, CloseSquare, CloseShortArray)

	// ScopeOwners may own a { } scope.
	ScopeOwners = NewSet(
		KwFunction, KwClass, KwInterface, KwTrait, KwEnum, KwNamespace,
		KwIf, KwElseif, KwElse, KwWhile, KwDo, KwFor, KwForeach, KwSwitch,
		KwMatch, KwTry, KwCatch, KwFinally, KwDeclare,
	)

	// ParenOwners own the parenthesis that directly follows them.
	ParenOwners = NewSet(
		KwFunction, KwFn, KwIf, KwElseif, KwWhile, KwFor, KwForeach, KwSwitch,
		KwMatch, KwCatch, KwDeclare, KwArray, KwList, KwIsset, KwUnset, KwEmpty,
		KwExit,
	)

	// OOScopes are class-like scopes.
	OOScopes = NewSet(KwClass, KwInterface, KwTrait, KwEnum)

	// Strings are string-ish literals.
	Strings = NewSet(ConstantString, InterpolatedString, Heredoc, Nowdoc)

	// Assignments are all assignment operators.
	Assignments = NewSet(
		Assign, PlusAssign, MinusAssign, MulAssign, DivAssign, ConcatAssign,
		ModAssign, PowAssign, AndAssign, OrAssign, XorAssign, ShlAssign,
		ShrAssign, CoalesceAssign,
	)

	// Any holds every kind.
	Any = func() Set {
		var s Set
		for k := Kind(0); k < kindCount; k++ {
			s = s.With(k)
		}
		return s
	}()

	// Keywords holds every reserved word kind.
	Keywords = func() Set {
		var s Set
		for k := KwAbstract; k <= LogicalXor; k++ {
			s = s.With(k)
		}
		return s
	}()
)
