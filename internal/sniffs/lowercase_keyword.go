package sniffs

import (
	"strings"

	"codesniff/internal/sniff"
	"codesniff/internal/token"
)

// LowerCaseKeyword requires reserved words in lower case.
type LowerCaseKeyword struct{}

func (*LowerCaseKeyword) Summary() string { return "Keywords must be lowercase" }
func (*LowerCaseKeyword) CanFix() bool    { return true }

func (*LowerCaseKeyword) Register() token.Set { return token.Keywords }

func (*LowerCaseKeyword) Process(f *sniff.File, idx int) int {
	text := f.At(idx).Text
	lower := strings.ToLower(text)
	if text == lower {
		return sniff.Next
	}
	if f.FixableError("Keywords must be lowercase; expected %q but found %q", idx, "Found", lower, text) {
		f.Fixer().ReplaceToken(idx, lower)
	}
	return sniff.Next
}
