package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedComment Code = 1003
	LexUnterminatedHeredoc Code = 1004
	LexBadHeredocLabel     Code = 1005
	LexUnmatchedCloser     Code = 1006
	LexUnclosedBracket     Code = 1007
	LexTokenTooLong        Code = 1008

	// Находки снифов
	SniffInfo      Code = 3000
	SniffViolation Code = 3001

	// Нарушения контракта снифа (ошибка в самом снифе, а не в коде)
	SniffContract      Code = 3100
	SniffInvalidSkip   Code = 3101
	SniffPanic         Code = 3102
	SniffOpenChangeset Code = 3103
	SniffBadProperty   Code = 3104

	// Фиксер
	FixInfo         Code = 4000
	FixConflict     Code = 4001
	FixNotConverged Code = 4002

	// Ввод-вывод
	IOInfo       Code = 5000
	IOLoadError  Code = 5001
	IOWriteError Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	LexInfo:                "Lexical information",
	LexUnknownChar:         "Unknown character",
	LexUnterminatedString:  "Unterminated string",
	LexUnterminatedComment: "Unterminated block comment",
	LexUnterminatedHeredoc: "Unterminated heredoc/nowdoc",
	LexBadHeredocLabel:     "Malformed heredoc label",
	LexUnmatchedCloser:     "Unmatched closing bracket",
	LexUnclosedBracket:     "Unclosed bracket at end of input",
	LexTokenTooLong:        "Token too long",
	SniffInfo:              "Sniff information",
	SniffViolation:         "Coding standard violation",
	SniffContract:          "Sniff contract violation",
	SniffInvalidSkip:       "Sniff returned a skip index that does not advance",
	SniffPanic:             "Sniff panicked",
	SniffOpenChangeset:     "Sniff left a changeset open",
	SniffBadProperty:       "Invalid sniff property",
	FixInfo:                "Fixer information",
	FixConflict:            "Conflicting fix rejected",
	FixNotConverged:        "Fixer could not stabilize the file",
	IOInfo:                 "I/O information",
	IOLoadError:            "Failed to load file",
	IOWriteError:           "Failed to write file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SNF%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("FIX%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsContract reports whether c describes a programming error inside a sniff.
func (c Code) IsContract() bool {
	return c >= SniffContract && c < FixInfo
}

// IsLexical reports whether c comes from the tokenizer.
func (c Code) IsLexical() bool {
	return c >= LexInfo && c < 2000
}
