package sniffs

import (
	"codesniff/internal/sniff"
	"codesniff/internal/token"
)

// LogicalOperator bans the word operators and, or, xor.
// and/or are rewritten to &&/||; xor has no symbolic twin and is only reported.
type LogicalOperator struct{}

func (*LogicalOperator) Summary() string {
	return "Logical operators and/or/xor are not allowed; use && and ||"
}

func (*LogicalOperator) CanFix() bool { return true }

func (*LogicalOperator) Register() token.Set {
	return token.NewSet(token.LogicalAnd, token.LogicalOr, token.LogicalXor)
}

func (*LogicalOperator) Process(f *sniff.File, idx int) int {
	tok := f.At(idx)
	var repl string
	switch tok.Kind {
	case token.LogicalAnd:
		repl = "&&"
	case token.LogicalOr:
		repl = "||"
	default:
		f.Error("Logical operator %q is prohibited", idx, "NotAllowed", tok.Text)
		return sniff.Next
	}
	if f.FixableError("Logical operator %q is prohibited; use %s instead", idx, "NotAllowed", tok.Text, repl) {
		f.Fixer().ReplaceToken(idx, repl)
	}
	return sniff.Next
}
