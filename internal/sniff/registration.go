package sniff

import (
	"path/filepath"
	"strings"

	"codesniff/internal/diag"
)

// Factory creates a fresh sniff instance; every file gets its own.
type Factory func() Sniff

// Registration is one active sniff of a ruleset.
type Registration struct {
	Code string // e.g. "Core.Operators.LogicalOperator"
	New  Factory
	// Severity overrides the severity of every finding when set.
	Severity *diag.Severity
	// Exclude holds path globs (filepath.Match syntax, also matched against
	// the base name) of files the sniff skips.
	Exclude    []string
	Properties map[string]string
}

// Excludes reports whether path matches one of the exclude globs.
func (r *Registration) Excludes(path string) bool {
	if len(r.Exclude) == 0 {
		return false
	}
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pat := range r.Exclude {
		pat = filepath.ToSlash(pat)
		if ok, err := filepath.Match(pat, slashed); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pat, base); err == nil && ok {
			return true
		}
		// "vendor/" и подобные префиксы каталогов
		if strings.HasSuffix(pat, "/") && (strings.HasPrefix(slashed, pat) || strings.Contains(slashed, "/"+pat)) {
			return true
		}
	}
	return false
}

// ForPath returns the registrations that apply to path, keeping order.
func ForPath(regs []Registration, path string) []Registration {
	out := make([]Registration, 0, len(regs))
	for i := range regs {
		if !regs[i].Excludes(path) {
			out = append(out, regs[i])
		}
	}
	return out
}
