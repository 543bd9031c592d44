package lexer

import (
	"codesniff/internal/diag"
	"codesniff/internal/source"
)

// maxTokenLength ограничивает длину слов (идентификаторы, переменные, числа).
// Длиннее: считаем вход патологическим: Invalid до конца файла.
const maxTokenLength = 1 << 16

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
	// TabWidth > 0 expands tabs to the next tab stop when computing columns.
	TabWidth int
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     code,
			Message:  msg,
			Primary:  sp,
			Token:    -1,
		})
	}
}
