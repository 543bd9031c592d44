package sniff

import (
	"reflect"
	"testing"

	"codesniff/internal/fix"
	"codesniff/internal/token"
)

// varWarn warns on every variable with sub-code "Found".
func varWarn() Sniff {
	return &funcSniff{
		kinds: token.NewSet(token.Variable),
		process: func(f *File, idx int) int {
			f.Warning("variable", idx, "Found")
			return Next
		},
	}
}

func warnedLines(t *testing.T, src string) []uint32 {
	t.Helper()
	e := NewEngine([]Registration{{Code: "Core.Vars", New: varWarn}}, Options{})
	var lines []uint32
	for _, d := range e.Run(newStream(t, src)).Items() {
		lines = append(lines, d.Line)
	}
	return lines
}

func TestIgnoreDirectives(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []uint32
	}{
		{
			name: "same line",
			src:  "$a; // codesniff:ignore\n$b;\n",
			want: []uint32{2},
		},
		{
			name: "next line when alone",
			src:  "  # codesniff:ignore Core.Vars -- legacy\n$a;\n$b;\n",
			want: []uint32{3},
		},
		{
			name: "other code does not match",
			src:  "$a; // codesniff:ignore Core.Files\n",
			want: []uint32{1},
		},
		{
			name: "prefix match on segments only",
			src:  "$a; // codesniff:ignore Core.Va\n",
			want: []uint32{1},
		},
		{
			name: "disable to enable",
			src:  "$a;\n/* codesniff:disable Core.Vars.Found */\n$b;\n$c;\n/* codesniff:enable */\n$d;\n",
			want: []uint32{1, 6},
		},
		{
			name: "disable to end of file",
			src:  "$a;\n// codesniff:disable\n$b;\n",
			want: []uint32{1},
		},
		{
			name: "enable with unrelated code keeps range open",
			src:  "// codesniff:disable Core.Vars\n$a;\n// codesniff:enable Core.Other\n$b;\n",
			want: nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := warnedLines(t, tc.src); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("warned lines = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSuppressedFixIsNotInvited(t *testing.T) {
	var invited bool
	s := &funcSniff{
		kinds: token.NewSet(token.LogicalAnd),
		process: func(f *File, idx int) int {
			invited = f.FixableError("and", idx, "Found")
			return Next
		},
	}
	e := NewEngine([]Registration{reg("Core.Logical", s)}, Options{Mode: ModeFix})
	st := newStream(t, "a and b; // codesniff:ignore Core.Logical\n")
	bag := e.RunPass(st, fix.NewFixer(st, 1))
	if bag.Len() != 0 || invited {
		t.Fatalf("suppressed finding must be dropped without inviting a fix")
	}
}

func TestParseDirective(t *testing.T) {
	verb, codes, ok := parseDirective("/* codesniff:disable A.B, C.D */")
	if !ok || verb != "disable" || !reflect.DeepEqual(codes, []string{"A.B", "C.D"}) {
		t.Fatalf("got %q %v %v", verb, codes, ok)
	}
	if _, _, ok := parseDirective("// codesniff:maybe"); ok {
		t.Fatalf("unknown verb must be ignored")
	}
	if !matchCode("Core", "Core.Vars.Found") || matchCode("Core.Vars.Found.X", "Core.Vars.Found") {
		t.Fatalf("matchCode prefix rules broken")
	}
}
