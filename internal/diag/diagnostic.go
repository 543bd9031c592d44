package diag

import (
	"codesniff/internal/source"
)

// Note is a secondary message attached to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one finding. Sniff findings carry Source (the qualified sniff
// code) and a token index; engine diagnostics leave Source empty.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Source   string
	Message  string
	Primary  source.Span
	Token    int    // index into the stream generation that produced it, -1 if none
	Line     uint32 // 1-based; 0 when unresolved
	Col      uint32
	Fixable  bool
	Notes    []Note
}

// ID returns the code shown to users: the sniff code when present,
// otherwise the engine code ID.
func (d *Diagnostic) ID() string {
	if d.Source != "" {
		return d.Source
	}
	return d.Code.ID()
}

// Resolve fills Line/Col from the file when they are missing.
func (d *Diagnostic) Resolve(f *source.File) {
	if d.Line != 0 || f == nil {
		return
	}
	pos := f.Position(d.Primary.Start)
	d.Line, d.Col = pos.Line, pos.Col
}

// WithNote returns a copy of d with an extra note.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	notes := make([]Note, 0, len(d.Notes)+1)
	notes = append(notes, d.Notes...)
	d.Notes = append(notes, Note{Span: sp, Msg: msg})
	return d
}
