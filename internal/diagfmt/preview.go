package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	udiff "github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"

	"codesniff/internal/source"
)

// Diff writes a unified diff (3 lines of context) of before → after for
// path. Nothing is written when the texts are equal. It returns whether a
// diff was written.
func Diff(w io.Writer, path, before, after string, useColor bool) bool {
	if before == after {
		return false
	}
	text := udiff.Unified(path, path+" (fixed)", before, after)
	if text == "" {
		return false
	}

	del := color.New(color.FgRed)
	add := color.New(color.FgGreen)
	hunk := color.New(color.FgCyan)
	for _, c := range []*color.Color{del, add, hunk} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	// заголовок "--- / +++" не красится, строки hunk'ов: по первому символу
	for i, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		switch {
		case i < 2:
		case strings.HasPrefix(body, "@@"):
			body = hunk.Sprint(body)
		case strings.HasPrefix(body, "-"):
			body = del.Sprint(body)
		case strings.HasPrefix(body, "+"):
			body = add.Sprint(body)
		}
		fmt.Fprintln(w, body)
	}
	return true
}

func lineStartOffset(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := line - 2
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	lenFileContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return lenFileContent
}
