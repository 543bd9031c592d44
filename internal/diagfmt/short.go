package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"codesniff/internal/diag"
)

// Short prints one line per diagnostic, sorted per file; stable enough for
// golden files and grep.
func Short(w io.Writer, reports []FileReport, baseDir string, includeNotes bool) error {
	for i := range reports {
		r := &reports[i]
		var out string
		if r.File != nil {
			out = diag.FormatShortDiagnostics(r.Items, r.File, baseDir, includeNotes)
		} else {
			// файл не загрузился: путь без позиции
			for j, d := range r.Items {
				if j > 0 {
					out += "\n"
				}
				out += fmt.Sprintf("%s %s %s:0:0 %s", strings.ToLower(d.Severity.String()), d.ID(), r.Path, d.Message)
			}
		}
		if out == "" {
			continue
		}
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}
	return nil
}
