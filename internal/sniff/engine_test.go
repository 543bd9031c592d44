package sniff

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"codesniff/internal/diag"
	"codesniff/internal/fix"
	"codesniff/internal/stream"
	"codesniff/internal/token"
)

func newStream(t *testing.T, src string) *stream.Stream {
	t.Helper()
	s := stream.FromText("test.php", src, stream.Options{})
	if s.Content() != src {
		t.Fatalf("stream is not lossless")
	}
	return s
}

func reg(code string, s Sniff) Registration {
	return Registration{Code: code, New: func() Sniff { return s }}
}

// funcSniff adapts closures to Sniff.
type funcSniff struct {
	kinds   token.Set
	process func(f *File, idx int) int
}

func (s *funcSniff) Register() token.Set          { return s.kinds }
func (s *funcSniff) Process(f *File, idx int) int { return s.process(f, idx) }

// recorder remembers the text of every token it was offered.
type recorder struct {
	kinds token.Set
	seen  []string
	trail *[]string
	tag   string
}

func (r *recorder) Register() token.Set { return r.kinds }

func (r *recorder) Process(f *File, idx int) int {
	r.seen = append(r.seen, f.At(idx).Text)
	if r.trail != nil {
		*r.trail = append(*r.trail, r.tag+f.At(idx).Text)
	}
	return Next
}

func codes(items []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, 0, len(items))
	for _, d := range items {
		out = append(out, d.Code)
	}
	return out
}

func TestDispatchInRegistrationOrder(t *testing.T) {
	var trail []string
	vars := token.NewSet(token.Variable)
	a := &recorder{kinds: vars, trail: &trail, tag: "a"}
	b := &recorder{kinds: vars.With(token.Semicolon), trail: &trail, tag: "b"}
	e := NewEngine([]Registration{reg("A", a), reg("B", b)}, Options{})
	e.Run(newStream(t, "$x = $y;"))

	want := []string{"a$x", "b$x", "a$y", "b$y", "b;"}
	if !reflect.DeepEqual(trail, want) {
		t.Fatalf("dispatch order = %v, want %v", trail, want)
	}
}

func TestSkipAheadIsPerSniff(t *testing.T) {
	skipper := &funcSniff{
		kinds: token.NewSet(token.OpenParen, token.Variable),
		process: func(f *File, idx int) int {
			if f.Kind(idx) == token.OpenParen {
				return f.At(idx).Partner + 1
			}
			f.Warning("variable %s", idx, "Seen", f.At(idx).Text)
			return Next
		},
	}
	all := &recorder{kinds: token.NewSet(token.Variable)}
	e := NewEngine([]Registration{reg("Skip", skipper), reg("All", all)}, Options{})
	bag := e.Run(newStream(t, "f($a, $b); $c;"))

	var msgs []string
	for _, d := range bag.Items() {
		msgs = append(msgs, d.Message)
	}
	if !reflect.DeepEqual(msgs, []string{"variable $c"}) {
		t.Fatalf("skipper saw %v", msgs)
	}
	if !reflect.DeepEqual(all.seen, []string{"$a", "$b", "$c"}) {
		t.Fatalf("other sniff must not be skipped: %v", all.seen)
	}
	if bag.Items()[0].Source != "Skip.Seen" {
		t.Fatalf("source = %q", bag.Items()[0].Source)
	}
}

func TestContractViolationsDisableOnlyTheOffender(t *testing.T) {
	backwards := &funcSniff{
		kinds:   token.NewSet(token.Variable),
		process: func(f *File, idx int) int { return idx },
	}
	panicky := &funcSniff{
		kinds:   token.NewSet(token.Variable),
		process: func(f *File, idx int) int { panic(errors.New("boom")) },
	}
	healthy := &recorder{kinds: token.NewSet(token.Variable)}
	e := NewEngine([]Registration{
		reg("Backwards", backwards),
		reg("Panicky", panicky),
		reg("Healthy", healthy),
	}, Options{})
	bag := e.Run(newStream(t, "$a; $b; $c;"))

	findings, contract := SplitFindings(bag)
	if len(findings) != 0 {
		t.Fatalf("unexpected findings: %+v", findings)
	}
	if got := codes(contract); !reflect.DeepEqual(got, []diag.Code{diag.SniffInvalidSkip, diag.SniffPanic}) {
		t.Fatalf("contract codes = %v", got)
	}
	if !strings.Contains(contract[1].Message, "boom") || contract[1].Line != 1 || contract[1].Col != 1 {
		t.Fatalf("panic diagnostic: %+v", contract[1])
	}
	if len(healthy.seen) != 3 {
		t.Fatalf("healthy sniff must see every variable, saw %v", healthy.seen)
	}

	// в следующем проходе нарушители снова включены
	bag = e.Run(newStream(t, "$a;"))
	if _, contract = SplitFindings(bag); len(contract) != 2 {
		t.Fatalf("sniffs must be re-enabled per pass, got %d violations", len(contract))
	}
}

func TestOpenChangesetIsRolledBack(t *testing.T) {
	leaky := &funcSniff{
		kinds: token.NewSet(token.LogicalAnd),
		process: func(f *File, idx int) int {
			if f.FixableError("use &&", idx, "Found") {
				f.Fixer().BeginChangeset("and")
				f.Fixer().ReplaceToken(idx, "&&")
			}
			return Next
		},
	}
	e := NewEngine([]Registration{reg("Leaky", leaky)}, Options{Mode: ModeFix})
	s := newStream(t, "a and b")
	fx := fix.NewFixer(s, 1)
	bag := e.RunPass(s, fx)

	_, contract := SplitFindings(bag)
	if len(contract) != 1 || contract[0].Code != diag.SniffOpenChangeset {
		t.Fatalf("contract = %+v", contract)
	}
	if fx.Count() != 0 || fx.Content() != "a and b" {
		t.Fatalf("open change set must be discarded")
	}
}

// logical rewrites 'and' to '&&' when fixing.
type logical struct{}

func (logical) Register() token.Set { return token.NewSet(token.LogicalAnd) }

func (logical) Process(f *File, idx int) int {
	if f.FixableError("Logical operator %q is prohibited; use && instead", idx, "NotAllowed", f.At(idx).Text) {
		f.Fixer().ReplaceToken(idx, "&&")
	}
	return Next
}

func TestFixModeWithLoop(t *testing.T) {
	regs := []Registration{{Code: "Test.Logical", New: func() Sniff { return logical{} }}}

	report := NewEngine(regs, Options{})
	if bag := report.Run(newStream(t, "a  and  b")); bag.Len() != 1 || !bag.Items()[0].Fixable {
		t.Fatalf("report mode must record one fixable finding")
	}

	e := NewEngine(regs, Options{Mode: ModeFix})
	res := fix.Loop(context.Background(), newStream(t, "a  and  b"), e, fix.Options{})
	if res.Content() != "a  &&  b" || res.Passes != 2 || !res.Converged() {
		t.Fatalf("fix loop: %q after %d passes (%s)", res.Content(), res.Passes, res.Outcome)
	}
	if res.Applied[0].Sniff != "Test.Logical" {
		t.Fatalf("change set owner = %q", res.Applied[0].Sniff)
	}
	if res.Diagnostics.Len() != 0 {
		t.Fatalf("last pass must be clean")
	}
}

func TestReportModeNeverInvitesFixes(t *testing.T) {
	e := NewEngine([]Registration{{Code: "T", New: func() Sniff { return logical{} }}}, Options{Mode: ModeReport})
	s := newStream(t, "a and b")
	fx := fix.NewFixer(s, 1)
	e.RunPass(s, fx)
	if fx.Count() != 0 {
		t.Fatalf("report engine must not stage fixes")
	}
}

// scopes records the scope it got for each variable.
type scopes struct {
	within  []string
	outside []string
}

func (s *scopes) Register() token.Set { return token.NewSet(token.Variable) }
func (s *scopes) Scopes() token.Set   { return token.NewSet(token.KwClass, token.KwFunction) }

func (s *scopes) ProcessWithinScope(f *File, idx, scope int) int {
	s.within = append(s.within, f.At(idx).Text+"@"+f.At(scope).Text)
	return Next
}

func (s *scopes) ProcessOutsideScope(f *File, idx int) int {
	s.outside = append(s.outside, f.At(idx).Text)
	return Next
}

func TestScopedSniffGetsDeepestScope(t *testing.T) {
	sc := &scopes{}
	e := NewEngine([]Registration{{Code: "Scoped", New: func() Sniff { return Scoped(sc) }}}, Options{})
	e.Run(newStream(t, "$a; class C { public $b; function m() { if ($c) { $d; } } }"))

	if !reflect.DeepEqual(sc.outside, []string{"$a"}) {
		t.Fatalf("outside = %v", sc.outside)
	}
	want := []string{"$b@class", "$c@function", "$d@function"}
	if !reflect.DeepEqual(sc.within, want) {
		t.Fatalf("within = %v, want %v", sc.within, want)
	}
}

type splitter struct{ single, multi int }

func (s *splitter) ProcessSingleLine(f *File, opener, closer int) int {
	s.single++
	return Next
}

func (s *splitter) ProcessMultiLine(f *File, opener, closer int) int {
	s.multi++
	return closer
}

func TestLineSplit(t *testing.T) {
	sp := &splitter{}
	arrays := &funcSniff{
		kinds:   token.NewSet(token.OpenShortArray),
		process: func(f *File, idx int) int { return LineSplit(f, idx, sp) },
	}
	e := NewEngine([]Registration{reg("Arrays", arrays)}, Options{})
	e.Run(newStream(t, "$a = [1, 2];\n$b = [\n  [3],\n  4,\n];\n"))
	// вложенный [3] пропущен: многострочный обработчик вернул закрывающую
	if sp.single != 1 || sp.multi != 1 {
		t.Fatalf("single=%d multi=%d", sp.single, sp.multi)
	}
}

// configurable takes a numeric "limit" property.
type configurable struct{ limit string }

func (c *configurable) Register() token.Set    { return token.NewSet(token.Variable) }
func (c *configurable) Process(*File, int) int { return Next }
func (c *configurable) SetProperty(name, value string) error {
	if name != "limit" {
		return errors.New("unknown property")
	}
	c.limit = value
	return nil
}

func TestProperties(t *testing.T) {
	good := &configurable{}
	e := NewEngine([]Registration{{
		Code:       "Conf",
		New:        func() Sniff { return good },
		Properties: map[string]string{"limit": "80"},
	}}, Options{})
	if good.limit != "80" || len(e.Codes()) != 1 {
		t.Fatalf("property not applied")
	}

	never := &recorder{kinds: token.NewSet(token.Variable)}
	e = NewEngine([]Registration{
		{Code: "Bad", New: func() Sniff { return &configurable{} }, Properties: map[string]string{"width": "1"}},
		{Code: "Plain", New: func() Sniff { return never }, Properties: map[string]string{"x": "1"}},
	}, Options{})
	bag := e.Run(newStream(t, "$a;"))
	if got := codes(bag.Items()); !reflect.DeepEqual(got, []diag.Code{diag.SniffBadProperty, diag.SniffBadProperty}) {
		t.Fatalf("codes = %v", got)
	}
	if len(never.seen) != 0 || len(e.Codes()) != 0 {
		t.Fatalf("misconfigured sniffs must not run")
	}
}

func TestSeverityOverride(t *testing.T) {
	warn := diag.SevWarning
	e := NewEngine([]Registration{{
		Code:     "T",
		New:      func() Sniff { return logical{} },
		Severity: &warn,
	}}, Options{})
	bag := e.Run(newStream(t, "a and b"))
	if bag.Len() != 1 || bag.Items()[0].Severity != diag.SevWarning {
		t.Fatalf("severity must be overridden")
	}
	if bag.Items()[0].Message != `Logical operator "and" is prohibited; use && instead` {
		t.Fatalf("message = %q", bag.Items()[0].Message)
	}
}

func TestRegistrationExcludes(t *testing.T) {
	r := Registration{Code: "T", Exclude: []string{"*.tpl.php", "vendor/", "tests/fixtures/*.php"}}
	cases := map[string]bool{
		"src/view.tpl.php":          true,
		"vendor/lib/a.php":          true,
		"app/vendor/b.php":          true,
		"tests/fixtures/x.php":      true,
		"src/main.php":              false,
		"tests/fixtures/deep/y.php": false,
	}
	for path, want := range cases {
		if got := r.Excludes(path); got != want {
			t.Fatalf("Excludes(%q) = %v, want %v", path, got, want)
		}
	}
	regs := ForPath([]Registration{r, {Code: "U"}}, "vendor/x.php")
	if len(regs) != 1 || regs[0].Code != "U" {
		t.Fatalf("ForPath = %+v", regs)
	}
}
