package sniffs

import (
	"codesniff/internal/sniff"
	"codesniff/internal/token"
)

// ArrayBracketSpacing checks the inside of short array brackets: no padding
// on a single line, closing bracket on its own line otherwise.
type ArrayBracketSpacing struct{}

func (*ArrayBracketSpacing) Summary() string {
	return "Single-line arrays have no inner padding; multi-line arrays close on their own line"
}

func (*ArrayBracketSpacing) CanFix() bool { return true }

func (*ArrayBracketSpacing) Register() token.Set { return token.NewSet(token.OpenShortArray) }

func (s *ArrayBracketSpacing) Process(f *sniff.File, idx int) int {
	return sniff.LineSplit(f, idx, s)
}

func (*ArrayBracketSpacing) ProcessSingleLine(f *sniff.File, opener, closer int) int {
	after, before := opener+1, closer-1
	if after == closer {
		return sniff.Next
	}
	if after == before && f.Kind(after) == token.Whitespace {
		if f.FixableError("Empty array must not contain whitespace", opener, "EmptyArray") {
			f.Fixer().DeleteToken(after)
		}
		return sniff.Next
	}
	if f.Kind(after) == token.Whitespace &&
		f.FixableError("Space found after opening bracket of array", opener, "SpaceAfterOpen") {
		f.Fixer().DeleteToken(after)
	}
	if f.Kind(before) == token.Whitespace &&
		f.FixableError("Space found before closing bracket of array", closer, "SpaceBeforeClose") {
		f.Fixer().DeleteToken(before)
	}
	return sniff.Next
}

func (*ArrayBracketSpacing) ProcessMultiLine(f *sniff.File, opener, closer int) int {
	prev := f.FindPrevious(token.NewSet(token.Whitespace), closer-1, opener, true)
	if prev == token.None || prev == opener {
		return sniff.Next
	}
	if f.At(prev).Line != f.At(closer).Line {
		return sniff.Next
	}
	if !f.FixableError("Closing bracket of a multi-line array must be on a new line", closer, "CloseBraceNewLine") {
		return sniff.Next
	}
	fx := f.Fixer()
	fx.BeginChangeset("close on new line")
	// пробелы перед ']' заменяются переводом строки
	for i := prev + 1; i < closer; i++ {
		fx.DeleteToken(i)
	}
	fx.AddContent(prev, fx.EOL())
	fx.EndChangeset()
	return sniff.Next
}
