package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"codesniff/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShortDiagnostics renders the diagnostics of one file into a stable,
// single-line-per-entry representation used by golden tests and the
// `--format short` report. Entries are sorted by position, severity, code.
func FormatShortDiagnostics(diags []Diagnostic, file *source.File, baseDir string, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	path := ""
	if file != nil {
		path = normalizePath(file.FormatPath("relative", baseDir))
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for i := range diags {
		d := diags[i]
		d.Resolve(file)
		rendered = append(rendered, goldenDiagnostic{
			Severity: severityLabel(d.Severity),
			Code:     d.ID(),
			Path:     path,
			Line:     d.Line,
			Column:   d.Col,
			Message:  sanitizeMessage(d.Message),
		})
		if !includeNotes || file == nil {
			continue
		}
		for _, note := range d.Notes {
			pos := file.Position(note.Span.Start)
			rendered = append(rendered, goldenDiagnostic{
				Severity: "note",
				Code:     d.ID(),
				Path:     path,
				Line:     pos.Line,
				Column:   pos.Col,
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func severityLabel(sev Severity) string {
	return strings.ToLower(sev.String())
}

func sanitizeMessage(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
