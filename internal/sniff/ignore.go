package sniff

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"codesniff/internal/stream"
	"codesniff/internal/token"
)

const directivePrefix = "codesniff:"

// suppression silences codes on lines [from, to]; to == 0 means end of file.
// Empty codes silence everything.
type suppression struct {
	from, to uint32
	codes    []string
}

// ignoreIndex holds inline suppressions of one stream.
//
//	// codesniff:ignore Core.Files.LineLength
//	$x = 1; # codesniff:ignore
//	/* codesniff:disable Core.Operators */ ... /* codesniff:enable */
//
// ignore applies to its own line, or to the next line when the comment is
// alone on its line. enable without codes closes every open disable; with
// codes it closes the open disables that mention any of them.
type ignoreIndex struct {
	rules []suppression
}

var commentKinds = token.NewSet(token.Comment, token.DocComment)

func buildIgnoreIndex(s *stream.Stream) *ignoreIndex {
	idx := &ignoreIndex{}
	var open []int // индексы незакрытых disable в rules
	for i := range s.Tokens {
		t := &s.Tokens[i]
		if !commentKinds.Has(t.Kind) || !strings.Contains(t.Text, directivePrefix) {
			continue
		}
		verb, codes, ok := parseDirective(t.Text)
		if !ok {
			continue
		}
		extra, err := safecast.Conv[uint32](strings.Count(t.Text, "\n"))
		if err != nil {
			panic(fmt.Errorf("comment line count overflow: %w", err))
		}
		endLine := t.Line + extra
		switch verb {
		case "ignore":
			line := t.Line
			if s.FindFirstOnLine(token.NewSet(token.Whitespace), i, true) == i {
				line = endLine + 1
			}
			idx.rules = append(idx.rules, suppression{from: line, to: line, codes: codes})
		case "disable":
			idx.rules = append(idx.rules, suppression{from: t.Line, codes: codes})
			open = append(open, len(idx.rules)-1)
		case "enable":
			kept := open[:0]
			for _, r := range open {
				if len(codes) == 0 || sharesCode(idx.rules[r].codes, codes) {
					idx.rules[r].to = endLine
					continue
				}
				kept = append(kept, r)
			}
			open = kept
		}
	}
	return idx
}

// parseDirective extracts "verb codes..." after the prefix. Codes end at "--"
// (free-form note) or at the comment terminator.
func parseDirective(text string) (verb string, codes []string, ok bool) {
	_, rest, found := strings.Cut(text, directivePrefix)
	if !found {
		return "", nil, false
	}
	rest = strings.TrimSuffix(strings.TrimRight(rest, " \t\r\n"), "*/")
	if note := strings.Index(rest, "--"); note >= 0 {
		rest = rest[:note]
	}
	fields := strings.FieldsFunc(rest, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\r' || r == '\n'
	})
	if len(fields) == 0 {
		return "", nil, false
	}
	switch fields[0] {
	case "ignore", "disable", "enable":
		return fields[0], fields[1:], true
	}
	return "", nil, false
}

func sharesCode(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// matchCode: "Core.Operators" covers "Core.Operators.LogicalOperator.Found".
func matchCode(pattern, code string) bool {
	return code == pattern || strings.HasPrefix(code, pattern+".")
}

// suppressed reports whether a finding with code on line is silenced.
func (x *ignoreIndex) suppressed(code string, line uint32) bool {
	if x == nil {
		return false
	}
	for _, r := range x.rules {
		if line < r.from || (r.to != 0 && line > r.to) {
			continue
		}
		if len(r.codes) == 0 {
			return true
		}
		for _, c := range r.codes {
			if matchCode(c, code) {
				return true
			}
		}
	}
	return false
}
