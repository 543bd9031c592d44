package diag

import (
	"testing"

	"codesniff/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	for i := range 3 {
		ok := bag.Add(Diagnostic{Severity: SevWarning, Code: SniffViolation, Primary: span(uint32(i), uint32(i)+1)})
		if want := i < 2; ok != want {
			t.Fatalf("Add #%d: got %v, want %v", i, ok, want)
		}
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", bag.Len())
	}

	unlimited := NewBag(0)
	for range 100 {
		unlimited.Add(Diagnostic{})
	}
	if unlimited.Len() != 100 {
		t.Fatalf("unlimited bag dropped items: %d", unlimited.Len())
	}
}

func TestBagSortIsDeterministic(t *testing.T) {
	bag := NewBag(0)
	bag.Add(Diagnostic{Severity: SevWarning, Code: SniffViolation, Source: "B.X.Y.Z", Primary: span(5, 6)})
	bag.Add(Diagnostic{Severity: SevWarning, Code: SniffViolation, Source: "A.X.Y.Z", Primary: span(5, 6)})
	bag.Add(Diagnostic{Severity: SevError, Code: SniffViolation, Source: "C.X.Y.Z", Primary: span(5, 6)})
	bag.Add(Diagnostic{Severity: SevInfo, Code: LexInfo, Primary: span(0, 1)})
	bag.Sort()

	want := []string{"LEX1000", "C.X.Y.Z", "A.X.Y.Z", "B.X.Y.Z"}
	for i, d := range bag.Items() {
		if d.ID() != want[i] {
			t.Fatalf("item %d: got %s, want %s", i, d.ID(), want[i])
		}
	}
}

func TestBagDedupAndFilter(t *testing.T) {
	bag := NewBag(0)
	d := Diagnostic{Severity: SevError, Code: SniffViolation, Source: "A.B.C.D", Message: "m", Primary: span(1, 2)}
	bag.Add(d)
	bag.Add(d)
	bag.Add(Diagnostic{Severity: SevError, Code: SniffPanic, Message: "boom", Primary: span(1, 2)})
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", bag.Len())
	}

	bag.Filter(func(d *Diagnostic) bool { return !d.Code.IsContract() })
	if bag.Len() != 1 || bag.Items()[0].Source != "A.B.C.D" {
		t.Fatalf("unexpected items after filter: %+v", bag.Items())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	d := Diagnostic{Severity: SevError, Code: LexUnknownChar, Primary: span(0, 1), Message: "unknown character", Token: -1}
	for range 3 {
		r.Report(d)
	}
	d.Severity = SevWarning
	r.Report(d)
	d.Primary = span(1, 2)
	r.Report(d)
	if bag.Len() != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", bag.Len())
	}
	BagReporter{}.Report(d)
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		LexUnterminatedHeredoc: "LEX1004",
		SniffViolation:         "SNF3001",
		SniffPanic:             "SNF3102",
		FixNotConverged:        "FIX4002",
		IOWriteError:           "IO5002",
		UnknownCode:            "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %s, want %s", code, got, want)
		}
	}
	if !SniffOpenChangeset.IsContract() || SniffViolation.IsContract() {
		t.Fatalf("IsContract misclassifies codes")
	}
}

func TestParseSeverity(t *testing.T) {
	for in, want := range map[string]Severity{"error": SevError, "Warning": SevWarning, " info ": SevInfo} {
		got, err := ParseSeverity(in)
		if err != nil || got != want {
			t.Fatalf("ParseSeverity(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Fatalf("expected error for unknown severity")
	}
}
