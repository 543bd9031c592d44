package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"codesniff/internal/diag"
	"codesniff/internal/source"
)

type palette struct {
	err, warn, info, note *color.Color
	path, code, gutter    *color.Color
	caret, fixable        *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		note:    color.New(color.FgBlue, color.Bold),
		path:    color.New(color.Bold),
		code:    color.New(color.Faint),
		gutter:  color.New(color.FgBlue),
		caret:   color.New(color.FgGreen, color.Bold),
		fixable: color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.path, p.code, p.gutter, p.caret, p.fixable} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики печатает
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span и Notes.
func Pretty(w io.Writer, reports []FileReport, opts PrettyOpts) {
	p := newPalette(opts.Color)
	tab := opts.TabWidth
	if tab <= 0 {
		tab = 4
	}
	for i := range reports {
		r := &reports[i]
		path := r.displayPath(opts.PathMode, opts.BaseDir)
		for j := range r.Items {
			d := r.Items[j]
			d.Resolve(r.File)
			fmt.Fprintf(w, "%s: %s %s: %s",
				p.path.Sprintf("%s:%d:%d", path, d.Line, d.Col),
				p.severity(d.Severity).Sprint(d.Severity.String()),
				p.code.Sprint(d.ID()),
				d.Message)
			if d.Fixable {
				fmt.Fprint(w, " "+p.fixable.Sprint("[fixable]"))
			}
			fmt.Fprintln(w)
			if r.File != nil && d.Line > 0 {
				writeSnippet(w, p, r.File, d, int(opts.Context), tab)
			}
			if opts.ShowNotes || d.Code.IsContract() || d.Code == diag.FixNotConverged {
				for _, n := range d.Notes {
					fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
				}
			}
		}
	}
}

func writeSnippet(w io.Writer, p palette, f *source.File, d diag.Diagnostic, context, tab int) {
	ctx, err := safecast.Conv[uint32](context)
	if err != nil {
		ctx = 0
	}
	count, err := safecast.Conv[uint32](f.LineCount())
	if err != nil {
		panic(fmt.Errorf("line count overflow: %w", err))
	}
	line := d.Line
	first := uint32(1)
	if line > ctx+1 {
		first = line - ctx
	}
	last := max(line, min(count, line+ctx))
	width := len(fmt.Sprint(last))
	for n := first; n <= last; n++ {
		text := f.GetLine(n)
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width, n), expandTabs(text, tab))
		if n != line {
			continue
		}
		start, length := caretRange(f, d, text, tab)
		fmt.Fprintf(w, "%s %s%s\n",
			p.gutter.Sprintf("%*s |", width, ""),
			strings.Repeat(" ", start),
			p.caret.Sprint("^"+strings.Repeat("~", max(0, length-1))))
	}
}

// caretRange returns the display column and width of the primary span on
// its first line.
func caretRange(f *source.File, d diag.Diagnostic, line string, tab int) (int, int) {
	lineStart := lineStartOffset(f, d.Line)
	startByte := int(d.Primary.Start) - int(lineStart)
	if d.Primary.Start < lineStart || startByte > len(line) {
		return 0, 1
	}
	endByte := min(len(line), startByte+int(d.Primary.Len()))
	prefix := displayWidth(line[:startByte], tab, 0)
	length := displayWidth(line[startByte:endByte], tab, prefix)
	return prefix, max(1, length)
}

// displayWidth считает колонки терминала; at: колонка начала для табов.
func displayWidth(s string, tab, at int) int {
	w := at
	for _, r := range s {
		if r == '\t' {
			w += tab - w%tab
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w - at
}

func expandTabs(s string, tab int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tab - col%tab
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

// Totals counts findings over reports.
type Totals struct {
	Files, Errors, Warnings, Infos, Fixable int
}

// Count sums severities of every report; files counts reports with at
// least one diagnostic.
func Count(reports []FileReport) Totals {
	var t Totals
	for i := range reports {
		if len(reports[i].Items) > 0 {
			t.Files++
		}
		for _, d := range reports[i].Items {
			switch d.Severity {
			case diag.SevError:
				t.Errors++
			case diag.SevWarning:
				t.Warnings++
			default:
				t.Infos++
			}
			if d.Fixable {
				t.Fixable++
			}
		}
	}
	return t
}

// PrettySummary prints the closing line of a pretty report.
func PrettySummary(w io.Writer, reports []FileReport, useColor bool) {
	p := newPalette(useColor)
	t := Count(reports)
	if t.Errors+t.Warnings+t.Infos == 0 {
		fmt.Fprintf(w, "%s no problems in %d files\n", p.fixable.Sprint("✓"), len(reports))
		return
	}
	fmt.Fprintf(w, "%s, %s in %d of %d files",
		p.err.Sprint(plural(t.Errors, "error")),
		p.warn.Sprint(plural(t.Warnings, "warning")),
		t.Files, len(reports))
	if t.Fixable > 0 {
		fmt.Fprintf(w, " (%s fixable with `codesniff fix`)", p.fixable.Sprint(t.Fixable))
	}
	fmt.Fprintln(w)
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
