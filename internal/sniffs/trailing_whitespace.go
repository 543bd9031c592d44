package sniffs

import (
	"strings"

	"codesniff/internal/sniff"
	"codesniff/internal/token"
)

// TrailingWhitespace flags blanks at the end of a line, including the last
// line and line comments.
type TrailingWhitespace struct{}

func (*TrailingWhitespace) Summary() string { return "No whitespace at the end of a line" }
func (*TrailingWhitespace) CanFix() bool    { return true }

func (*TrailingWhitespace) Register() token.Set {
	return token.NewSet(token.Whitespace, token.Comment)
}

func (*TrailingWhitespace) Process(f *sniff.File, idx int) int {
	tok := f.At(idx)
	if tok.Kind == token.Comment {
		// '//' и '#' комментарии не включают перевод строки
		if strings.HasPrefix(tok.Text, "/*") {
			return sniff.Next
		}
		// '\r' от CRLF остаётся в тексте комментария
		text, cr := strings.CutSuffix(tok.Text, "\r")
		trimmed := strings.TrimRight(text, " \t\v\f")
		if trimmed != text &&
			f.FixableError("Whitespace found at end of line", idx, "Found") {
			if cr {
				trimmed += "\r"
			}
			f.Fixer().ReplaceToken(idx, trimmed)
		}
		return sniff.Next
	}

	body, eol := splitEOL(tok.Text)
	if body == "" {
		return sniff.Next
	}
	switch {
	case eol != "":
	case idx == f.Len()-1:
		// пробелы в самом конце файла
	default:
		return sniff.Next
	}
	if f.FixableError("Whitespace found at end of line", idx, "Found") {
		f.Fixer().ReplaceToken(idx, eol)
	}
	return sniff.Next
}

// splitEOL separates a whitespace run from its line terminator.
func splitEOL(s string) (body, eol string) {
	switch {
	case strings.HasSuffix(s, "\r\n"):
		return s[:len(s)-2], "\r\n"
	case strings.HasSuffix(s, "\n"):
		return s[:len(s)-1], "\n"
	}
	return s, ""
}
