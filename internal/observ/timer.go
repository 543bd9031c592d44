// Package observ measures pipeline phases (tokenize, fix passes, write).
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one measured step of a file run.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks phases of one file. Not safe for concurrent use; every
// worker owns its timer.
type Timer struct {
	phases []Phase
}

// NewTimer creates an empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a phase and returns its index for End.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Reset drops recorded phases and keeps the buffer.
func (t *Timer) Reset() { t.phases = t.phases[:0] }

// Len returns the number of recorded phases.
func (t *Timer) Len() int { return len(t.phases) }

// Summary renders the phases as an aligned table.
func (t *Timer) Summary() string {
	return t.Report().Summary()
}

// PhaseReport is a serializable phase.
type PhaseReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

// Report is the serializable form of a Timer.
type Report struct {
	TotalMS float64       `json:"total_ms" msgpack:"total_ms"`
	Phases  []PhaseReport `json:"phases" msgpack:"phases"`
}

// Report снимает копию фаз; длительности в миллисекундах.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{
		Phases: make([]PhaseReport, len(t.phases)),
	}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Summary renders the report as an aligned table.
func (r Report) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", r.TotalMS)
	return b.String()
}

// Totals sums phase durations by name across many reports; first-seen
// order of names is kept. All fix passes fold into "fix".
type Totals struct {
	order []string
	ms    map[string]float64
	files int
}

// Add folds one file report into the totals.
func (t *Totals) Add(r Report) {
	if t.ms == nil {
		t.ms = make(map[string]float64)
	}
	t.files++
	for _, p := range r.Phases {
		name := p.Name
		if strings.HasPrefix(name, "pass#") {
			name = "fix"
		}
		if _, ok := t.ms[name]; !ok {
			t.order = append(t.order, name)
		}
		t.ms[name] += p.DurationMS
	}
}

// Report returns the aggregated report; the total note counts files.
func (t *Totals) Report() Report {
	out := Report{Phases: make([]PhaseReport, 0, len(t.order))}
	for _, name := range t.order {
		out.Phases = append(out.Phases, PhaseReport{Name: name, DurationMS: t.ms[name]})
		out.TotalMS += t.ms[name]
	}
	if t.files > 0 {
		out.Phases = append(out.Phases, PhaseReport{Name: "files", Note: fmt.Sprintf("%d", t.files)})
	}
	return out
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
