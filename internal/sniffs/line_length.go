package sniffs

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"codesniff/internal/sniff"
	"codesniff/internal/token"
)

// LineLength warns about lines wider than LineLimit columns and errors on
// lines wider than AbsoluteLineLimit (0 disables the error).
type LineLength struct {
	LineLimit         int
	AbsoluteLineLimit int
}

// NewLineLength returns the sniff with default limits.
func NewLineLength() *LineLength {
	return &LineLength{LineLimit: 120}
}

func (*LineLength) Summary() string { return "Lines should not exceed the configured width" }

func (l *LineLength) SetProperty(name, value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return fmt.Errorf("expected a non-negative integer, got %q", value)
	}
	switch name {
	case "lineLimit":
		l.LineLimit = n
	case "absoluteLineLimit":
		l.AbsoluteLineLimit = n
	default:
		return errors.New("unknown property")
	}
	return nil
}

// Register listens for every kind: the first token triggers a scan of the
// whole file, then the sniff skips to the end.
func (*LineLength) Register() token.Set { return token.Any }

func (l *LineLength) Process(f *sniff.File, idx int) int {
	tabWidth := f.Options().TabWidth
	var lineNo uint32
	for line := range strings.SplitAfterSeq(string(f.File.Content), "\n") {
		lineNo++
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		width := lineWidth(line, tabWidth)
		at := firstTokenOnLine(f, lineNo)
		switch {
		case l.AbsoluteLineLimit > 0 && width > l.AbsoluteLineLimit:
			f.Error("Line exceeds maximum limit of %d characters; contains %d characters",
				at, "MaxExceeded", l.AbsoluteLineLimit, width)
		case l.LineLimit > 0 && width > l.LineLimit:
			f.Warning("Line exceeds %d characters; contains %d characters",
				at, "TooLong", l.LineLimit, width)
		}
	}
	return f.Len()
}

// lineWidth counts display columns; tabs advance to the next stop when
// tabWidth > 0 and count as one column otherwise.
func lineWidth(line string, tabWidth int) int {
	w := 0
	for _, r := range line {
		if r == '\t' && tabWidth > 0 {
			w += tabWidth - w%tabWidth
			continue
		}
		if r == '\t' {
			w++
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}

// firstTokenOnLine returns the first token starting on line, or the token
// spanning it (multi-line strings and comments).
func firstTokenOnLine(f *sniff.File, line uint32) int {
	n := sort.Search(f.Len(), func(i int) bool {
		return f.At(i).Line >= line
	})
	if n < f.Len() && f.At(n).Line == line {
		return n
	}
	return n - 1
}
