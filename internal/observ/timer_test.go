package observ

import (
	"strings"
	"testing"
)

func TestTimerReset(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("tokenize")
	tm.End(idx, "12 tokens")
	tm.End(42, "ignored")
	if tm.Len() != 1 {
		t.Fatalf("expected one phase, got %d", tm.Len())
	}
	if s := tm.Summary(); !strings.Contains(s, "tokenize") || !strings.Contains(s, "// 12 tokens") {
		t.Fatalf("summary = %q", s)
	}
	tm.Reset()
	if tm.Len() != 0 || len(tm.Report().Phases) != 0 {
		t.Fatalf("Reset must drop phases")
	}
}

func TestTotals(t *testing.T) {
	var tot Totals
	tot.Add(Report{Phases: []PhaseReport{{Name: "tokenize", DurationMS: 1}, {Name: "pass#1", DurationMS: 2}}})
	tot.Add(Report{Phases: []PhaseReport{{Name: "tokenize", DurationMS: 3}, {Name: "pass#2", DurationMS: 4}, {Name: "write", DurationMS: 1}}})

	r := tot.Report()
	var names []string
	for _, p := range r.Phases {
		names = append(names, p.Name)
	}
	if strings.Join(names, ",") != "tokenize,fix,write,files" {
		t.Fatalf("phases = %v", names)
	}
	if r.Phases[0].DurationMS != 4 || r.Phases[1].DurationMS != 6 || r.TotalMS != 11 {
		t.Fatalf("unexpected totals: %+v", r)
	}
	if r.Phases[3].Note != "2" {
		t.Fatalf("file count = %q", r.Phases[3].Note)
	}
}
