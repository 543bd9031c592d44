package diagfmt

import (
	"encoding/xml"
	"io"
	"strings"
)

type checkstyleReport struct {
	XMLName xml.Name         `xml:"checkstyle"`
	Version string           `xml:"version,attr"`
	Files   []checkstyleFile `xml:"file"`
}

type checkstyleFile struct {
	Name   string            `xml:"name,attr"`
	Errors []checkstyleError `xml:"error"`
}

type checkstyleError struct {
	Line     uint32 `xml:"line,attr"`
	Column   uint32 `xml:"column,attr"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:"message,attr"`
	Source   string `xml:"source,attr"`
}

// Checkstyle writes the checkstyle XML format understood by CI annotators.
// Files without diagnostics are listed with no errors.
func Checkstyle(w io.Writer, reports []FileReport, toolVersion string, mode PathMode, baseDir string) error {
	report := checkstyleReport{Version: toolVersion}
	for i := range reports {
		r := &reports[i]
		cf := checkstyleFile{Name: r.displayPath(mode, baseDir)}
		for _, d := range r.Items {
			d.Resolve(r.File)
			cf.Errors = append(cf.Errors, checkstyleError{
				Line:     d.Line,
				Column:   d.Col,
				Severity: strings.ToLower(d.Severity.String()),
				Message:  d.Message,
				Source:   d.ID(),
			})
		}
		report.Files = append(report.Files, cf)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", " ")
	if err := enc.Encode(report); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
