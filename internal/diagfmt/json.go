package diagfmt

import (
	"encoding/json"
	"io"

	"codesniff/internal/diag"
	"codesniff/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message string `json:"message"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Source   string       `json:"source,omitempty"`
	Message  string       `json:"message"`
	Fixable  bool         `json:"fixable,omitempty"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// FileJSON groups the diagnostics of one file.
type FileJSON struct {
	Path        string           `json:"path"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Files []FileJSON `json:"files"`
	Count int        `json:"count"`
}

func makeLocation(path string, f *source.File, d *diag.Diagnostic, includePositions bool) LocationJSON {
	loc := LocationJSON{
		File:      path,
		StartByte: d.Primary.Start,
		EndByte:   d.Primary.End,
	}
	// Добавляем позиции строк/колонок если требуется
	if includePositions {
		loc.StartLine, loc.StartCol = d.Line, d.Col
		if f != nil {
			end := f.Position(d.Primary.End)
			loc.EndLine, loc.EndCol = end.Line, end.Col
		}
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(reports []FileReport, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Files: make([]FileJSON, 0, len(reports))}
	for i := range reports {
		r := &reports[i]
		path := r.displayPath(opts.PathMode, opts.BaseDir)
		fj := FileJSON{Path: path, Diagnostics: make([]DiagnosticJSON, 0, len(r.Items))}
		for j := range r.Items {
			if opts.Max > 0 && out.Count >= opts.Max {
				break
			}
			d := r.Items[j]
			d.Resolve(r.File)
			switch d.Severity {
			case diag.SevError:
				fj.Errors++
			case diag.SevWarning:
				fj.Warnings++
			}
			dj := DiagnosticJSON{
				Severity: d.Severity.String(),
				Code:     d.Code.ID(),
				Source:   d.Source,
				Message:  d.Message,
				Fixable:  d.Fixable,
				Location: makeLocation(path, r.File, &d, opts.IncludePositions),
			}
			if opts.IncludeNotes && len(d.Notes) > 0 {
				dj.Notes = make([]NoteJSON, len(d.Notes))
				for k, note := range d.Notes {
					dj.Notes[k] = NoteJSON{Message: note.Msg}
				}
			}
			fj.Diagnostics = append(fj.Diagnostics, dj)
			out.Count++
		}
		out.Files = append(out.Files, fj)
	}
	return out
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, reports []FileReport, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(reports, opts))
}
