package sniffs

import (
	"codesniff/internal/sniff"
	"codesniff/internal/token"
)

// DisallowLongArraySyntax rewrites array(...) to [...].
type DisallowLongArraySyntax struct{}

func (*DisallowLongArraySyntax) Summary() string { return "Short array syntax must be used" }
func (*DisallowLongArraySyntax) CanFix() bool    { return true }

func (*DisallowLongArraySyntax) Register() token.Set { return token.NewSet(token.KwArray) }

func (*DisallowLongArraySyntax) Process(f *sniff.File, idx int) int {
	kw := f.At(idx)
	opener, closer := kw.ParenOpener, kw.ParenCloser
	// array как тип параметра скобок не имеет
	if opener == token.None || closer == token.None {
		return sniff.Next
	}
	if !f.FixableError("Short array syntax must be used to define arrays", idx, "Found") {
		return sniff.Next
	}

	fx := f.Fixer()
	fx.BeginChangeset("long array")
	fx.DeleteToken(idx)
	for i := idx + 1; i < opener; i++ {
		fx.DeleteToken(i)
	}
	fx.ReplaceToken(opener, "[")
	fx.ReplaceToken(closer, "]")
	fx.EndChangeset()
	return sniff.Next
}
