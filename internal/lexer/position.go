package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"
)

// computePositions проставляет Line/Col. Колонки считаются в рунах;
// при TabWidth > 0 таб сдвигает колонку до следующей позиции табуляции.
func (lx *Lexer) computePositions() {
	tw, err := safecast.Conv[uint32](max(lx.opts.TabWidth, 0))
	if err != nil {
		panic(fmt.Errorf("tab width overflow: %w", err))
	}
	line, col := uint32(1), uint32(1)
	for i := range lx.toks {
		t := &lx.toks[i]
		t.Line, t.Col = line, col
		for j := 0; j < len(t.Text); {
			b := t.Text[j]
			switch {
			case b == '\n':
				line++
				col = 1
				j++
			case b == '\t' && tw > 0:
				col = ((col-1)/tw+1)*tw + 1
				j++
			case b < utf8.RuneSelf:
				col++
				j++
			default:
				_, sz := utf8.DecodeRuneInString(t.Text[j:])
				col++
				j += sz
			}
		}
	}
}
