package fix

import (
	"fmt"
	"strings"

	"codesniff/internal/source"
	"codesniff/internal/stream"
)

// Слоты: граница перед токеном i: слот 2i, сам токен i: слот 2i+1,
// граница после последнего токена: 2n. Отпечаток набора правок:
// отрезок [min, max] затронутых слотов.

// footprint is the closed slot interval touched by a change set.
type footprint struct {
	lo, hi int
}

func (a footprint) overlaps(b footprint) bool {
	return a.lo <= b.hi && b.lo <= a.hi
}

type edit struct {
	slot int
	text string
}

// ChangeSet is a named group of edits applied all together or not at all.
type ChangeSet struct {
	Name  string
	Sniff string
	edits []edit
	bad   string // причина отказа, если набор испорчен
}

// Record describes one applied or rejected change set.
type Record struct {
	Pass   int
	Sniff  string
	Name   string
	Lo, Hi int // slot footprint
	Token  int // first token touched (len(tokens) for the trailing boundary, -1 when none)
	Span   source.Span
	Line   uint32
	Col    uint32
	Edits  int
	Reason string // empty for applied change sets
}

// Fixer stages the edits of one pass over an immutable stream.
// Change sets are applied eagerly when they end, in proposal order.
type Fixer struct {
	s     *stream.Stream
	pass  int
	owner string

	tokens []string // текущее содержимое токенов
	gaps   []string // вставки на границах, len(tokens)+1

	taken    []footprint
	open     *ChangeSet
	applied  []Record
	rejected []Record
	eol      string
}

// NewFixer prepares an empty edit buffer for pass over s.
func NewFixer(s *stream.Stream, pass int) *Fixer {
	f := &Fixer{
		s:      s,
		pass:   pass,
		tokens: make([]string, s.Len()),
		gaps:   make([]string, s.Len()+1),
		eol:    detectEOL(s.File.Content),
	}
	for i := range s.Tokens {
		f.tokens[i] = s.Tokens[i].Text
	}
	return f
}

// detectEOL returns "\r\n" if the first newline is preceded by '\r'.
func detectEOL(content []byte) string {
	for i, b := range content {
		if b == '\n' {
			if i > 0 && content[i-1] == '\r' {
				return "\r\n"
			}
			return "\n"
		}
	}
	return "\n"
}

// Stream returns the stream the edits refer to.
func (f *Fixer) Stream() *stream.Stream { return f.s }

// Pass returns the 1-based pass number.
func (f *Fixer) Pass() int { return f.pass }

// EOL returns the line terminator used by AddNewline.
func (f *Fixer) EOL() string { return f.eol }

// SetOwner names the sniff whose proposals follow.
func (f *Fixer) SetOwner(code string) { f.owner = code }

// Owner returns the current proposing sniff.
func (f *Fixer) Owner() string { return f.owner }

// InChangeset reports whether a change set is open.
func (f *Fixer) InChangeset() bool { return f.open != nil }

// Count returns the number of change sets applied in this pass.
func (f *Fixer) Count() int { return len(f.applied) }

// Applied returns records of applied change sets in application order.
func (f *Fixer) Applied() []Record { return f.applied }

// Rejected returns records of rejected change sets in proposal order.
func (f *Fixer) Rejected() []Record { return f.rejected }

// BeginChangeset opens a named change set. A nested call joins the open one.
func (f *Fixer) BeginChangeset(name string) {
	if f.open != nil {
		return
	}
	f.open = &ChangeSet{Name: name, Sniff: f.owner}
}

// RollbackChangeset discards the open change set.
func (f *Fixer) RollbackChangeset() {
	f.open = nil
}

// EndChangeset applies the open change set unless its footprint intersects
// one applied earlier in this pass. Returns true if it was applied; an empty
// change set (or one that changes nothing) returns false and leaves no record.
func (f *Fixer) EndChangeset() bool {
	cs := f.open
	f.open = nil
	if cs == nil {
		return false
	}
	return f.commit(cs)
}

// TokenContent returns the current content of token idx, including edits
// staged in the open change set.
func (f *Fixer) TokenContent(idx int) string {
	if idx < 0 || idx >= len(f.tokens) {
		return ""
	}
	slot := 2*idx + 1
	if f.open != nil {
		for i := len(f.open.edits) - 1; i >= 0; i-- {
			if f.open.edits[i].slot == slot {
				return f.open.edits[i].text
			}
		}
	}
	return f.tokens[idx]
}

// ReplaceToken replaces the content of token idx.
func (f *Fixer) ReplaceToken(idx int, text string) bool {
	return f.stage("replace", idx, 2*idx+1, text)
}

// SubstrToken keeps length bytes of the token starting at start;
// length < 0 keeps the rest.
func (f *Fixer) SubstrToken(idx, start, length int) bool {
	cur := f.TokenContent(idx)
	if idx < 0 || idx >= len(f.tokens) || start < 0 || start > len(cur) {
		return f.fail("substr", fmt.Sprintf("substr: bad range %d:%d of token %d", start, length, idx))
	}
	end := len(cur)
	if length >= 0 {
		end = min(start+length, len(cur))
	}
	return f.stage("substr", idx, 2*idx+1, cur[start:end])
}

// DeleteToken empties token idx.
func (f *Fixer) DeleteToken(idx int) bool {
	return f.stage("delete", idx, 2*idx+1, "")
}

// AddContent inserts text right after token idx.
func (f *Fixer) AddContent(idx int, text string) bool {
	return f.stage("insert", idx, 2*(idx+1), text)
}

// AddContentBefore inserts text right before token idx.
func (f *Fixer) AddContentBefore(idx int, text string) bool {
	return f.stage("insert", idx, 2*idx, text)
}

// AddNewline inserts the file's line terminator after token idx.
func (f *Fixer) AddNewline(idx int) bool {
	return f.AddContent(idx, f.eol)
}

// AddNewlineBefore inserts the file's line terminator before token idx.
func (f *Fixer) AddNewlineBefore(idx int) bool {
	return f.AddContentBefore(idx, f.eol)
}

// stage adds an edit to the open change set, or applies it alone.
func (f *Fixer) stage(op string, idx, slot int, text string) bool {
	if idx < 0 || idx >= len(f.tokens) {
		return f.fail(op, fmt.Sprintf("%s: token %d out of range", op, idx))
	}
	if f.open != nil {
		f.open.edits = append(f.open.edits, edit{slot: slot, text: text})
		return f.open.bad == ""
	}
	return f.commit(&ChangeSet{Name: op, Sniff: f.owner, edits: []edit{{slot: slot, text: text}}})
}

// fail портит открытый набор, либо сразу отклоняет одиночную правку.
func (f *Fixer) fail(op, reason string) bool {
	if f.open != nil {
		if f.open.bad == "" {
			f.open.bad = reason
		}
		return false
	}
	return f.commit(&ChangeSet{Name: op, Sniff: f.owner, bad: reason})
}

// effective drops edits that change nothing.
func (f *Fixer) effective(cs *ChangeSet) []edit {
	out := make([]edit, 0, len(cs.edits))
	staged := make(map[int]string)
	for _, e := range cs.edits {
		if e.slot%2 == 0 {
			if e.text != "" {
				out = append(out, e)
			}
			continue
		}
		i := e.slot / 2
		prev, ok := staged[e.slot]
		if !ok {
			prev = f.tokens[i]
		}
		staged[e.slot] = e.text
		if e.text != prev {
			out = append(out, e)
		}
	}
	// замена туда и обратно внутри набора: тоже не правка
	if len(out) > 0 {
		changed := false
		for _, e := range out {
			if e.slot%2 == 0 || staged[e.slot] != f.tokens[e.slot/2] {
				changed = true
				break
			}
		}
		if !changed {
			return nil
		}
	}
	return out
}

func (f *Fixer) commit(cs *ChangeSet) bool {
	if cs.bad != "" {
		if len(cs.edits) == 0 {
			// ни одной годной правки: позиции нет
			f.rejected = append(f.rejected, Record{
				Pass:   f.pass,
				Sniff:  cs.Sniff,
				Name:   cs.Name,
				Lo:     -1,
				Hi:     -1,
				Token:  -1,
				Span:   source.Span{File: f.s.File.ID},
				Reason: cs.bad,
			})
			return false
		}
		lo := cs.edits[0].slot
		f.rejected = append(f.rejected, f.record(cs, footprint{lo, lo}, len(cs.edits), cs.bad))
		return false
	}
	edits := f.effective(cs)
	if len(edits) == 0 {
		return false
	}
	fp := footprint{lo: edits[0].slot, hi: edits[0].slot}
	for _, e := range edits[1:] {
		fp.lo = min(fp.lo, e.slot)
		fp.hi = max(fp.hi, e.slot)
	}
	for _, t := range f.taken {
		if t.overlaps(fp) {
			f.rejected = append(f.rejected, f.record(cs, fp, len(edits),
				fmt.Sprintf("conflicts with slots [%d, %d]", t.lo, t.hi)))
			return false
		}
	}

	for _, e := range edits {
		if e.slot%2 == 1 {
			f.tokens[e.slot/2] = e.text
		} else {
			f.gaps[e.slot/2] += e.text
		}
	}
	f.taken = append(f.taken, fp)
	f.applied = append(f.applied, f.record(cs, fp, len(edits), ""))
	return true
}

func (f *Fixer) record(cs *ChangeSet, fp footprint, edits int, reason string) Record {
	r := Record{
		Pass:   f.pass,
		Sniff:  cs.Sniff,
		Name:   cs.Name,
		Lo:     fp.lo,
		Hi:     fp.hi,
		Token:  fp.lo / 2,
		Edits:  edits,
		Reason: reason,
	}
	switch {
	case r.Token < f.s.Len():
		t := f.s.At(r.Token)
		r.Span, r.Line, r.Col = t.Span, t.Line, t.Col
	case f.s.Len() > 0:
		// хвостовая граница: позиция сразу за последним токеном
		t := f.s.At(f.s.Len() - 1)
		end := t.Span.End
		r.Span = source.Span{File: t.Span.File, Start: end, End: end}
		lc := f.s.File.Position(end)
		r.Line, r.Col = lc.Line, lc.Col
	default:
		r.Span = source.Span{File: f.s.File.ID}
		r.Line, r.Col = 1, 1
	}
	return r
}

// Content assembles the text with all applied edits.
func (f *Fixer) Content() string {
	var b strings.Builder
	b.Grow(len(f.s.File.Content))
	for i, t := range f.tokens {
		b.WriteString(f.gaps[i])
		b.WriteString(t)
	}
	b.WriteString(f.gaps[len(f.tokens)])
	return b.String()
}
