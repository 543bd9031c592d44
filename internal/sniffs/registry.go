// Package sniffs is the catalog of built-in sniffs.
package sniffs

import (
	"slices"

	"codesniff/internal/sniff"
)

// Entry is one built-in sniff.
type Entry struct {
	Code string
	New  sniff.Factory
}

var catalog = []Entry{
	{Code: "Core.Operators.LogicalOperator", New: func() sniff.Sniff { return &LogicalOperator{} }},
	{Code: "Core.PHP.LowerCaseKeyword", New: func() sniff.Sniff { return &LowerCaseKeyword{} }},
	{Code: "Core.Whitespace.TrailingWhitespace", New: func() sniff.Sniff { return &TrailingWhitespace{} }},
	{Code: "Core.Arrays.DisallowLongArraySyntax", New: func() sniff.Sniff { return &DisallowLongArraySyntax{} }},
	{Code: "Core.Arrays.ArrayBracketSpacing", New: func() sniff.Sniff { return &ArrayBracketSpacing{} }},
	{Code: "Core.Classes.MethodVisibility", New: func() sniff.Sniff { return sniff.Scoped(&MethodVisibility{}) }},
	{Code: "Core.Files.LineLength", New: func() sniff.Sniff { return NewLineLength() }},
}

// Catalog returns the built-in sniffs in their default order.
func Catalog() []Entry {
	return slices.Clone(catalog)
}

// Lookup finds a built-in sniff by code.
func Lookup(code string) (sniff.Factory, bool) {
	for _, e := range catalog {
		if e.Code == code {
			return e.New, true
		}
	}
	return nil, false
}

// Default registers every built-in sniff with default settings.
func Default() []sniff.Registration {
	regs := make([]sniff.Registration, 0, len(catalog))
	for _, e := range catalog {
		regs = append(regs, sniff.Registration{Code: e.Code, New: e.New})
	}
	return regs
}

// Describe returns the summary and fixability of a sniff instance.
func Describe(s sniff.Sniff) (summary string, fixable bool) {
	v := any(s)
	if u, ok := s.(interface{ Unwrap() any }); ok {
		v = u.Unwrap()
	}
	if n, ok := v.(sniff.Named); ok {
		summary = n.Summary()
	}
	if f, ok := v.(sniff.Fixable); ok {
		fixable = f.CanFix()
	}
	return summary, fixable
}
