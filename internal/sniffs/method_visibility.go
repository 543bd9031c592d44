package sniffs

import (
	"codesniff/internal/sniff"
	"codesniff/internal/token"
)

var (
	visibilityKinds = token.NewSet(token.KwPublic, token.KwProtected, token.KwPrivate)
	modifierKinds   = visibilityKinds.With(token.KwAbstract, token.KwFinal, token.KwStatic)
	memberSkip      = token.EmptyTokens.Union(modifierKinds)
)

// MethodVisibility requires an explicit visibility on every method.
type MethodVisibility struct{}

func (*MethodVisibility) Summary() string { return "Visibility must be declared on all methods" }
func (*MethodVisibility) CanFix() bool    { return true }

func (*MethodVisibility) Register() token.Set { return token.NewSet(token.KwFunction) }
func (*MethodVisibility) Scopes() token.Set   { return token.OOScopes }

func (*MethodVisibility) ProcessWithinScope(f *sniff.File, idx, scope int) int {
	// только прямые члены: замыкание внутри метода не в счёт
	conds := f.At(idx).Conditions
	if len(conds) == 0 || conds[len(conds)-1] != scope {
		return sniff.Next
	}
	name := f.DeclarationName(idx)
	if name == "" {
		return sniff.Next
	}

	first := idx
	for i := idx - 1; i >= 0 && memberSkip.Has(f.Kind(i)); i-- {
		if visibilityKinds.Has(f.Kind(i)) {
			return sniff.Next
		}
		if modifierKinds.Has(f.Kind(i)) {
			first = i
		}
	}
	if f.FixableError("Visibility must be declared on method %q", idx, "Missing", name) {
		f.Fixer().AddContentBefore(first, "public ")
	}
	return sniff.Next
}

func (*MethodVisibility) ProcessOutsideScope(*sniff.File, int) int {
	return sniff.Next
}
