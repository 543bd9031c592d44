// Package diag defines the diagnostic model shared by the tokenizer, the
// dispatch engine and the fixer.
//
// # Purpose
//
//   - Provide deterministic data structures for findings: lexical errors,
//     sniff violations, fixer outcomes and sniff contract violations.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag does not format, perform IO or talk to the CLI. Rendering
// lives in internal/diagfmt; the fixer lives in internal/fix.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning, Error (severity.go).
//   - Code – compact numeric category (codes.go) with a stable string ID.
//   - Source – the sniff-qualified code ("Core.Operators.LogicalOperator.NotAllowed")
//     for sniff findings; empty for engine diagnostics.
//   - Message – short, actionable text.
//   - Primary – source.Span of the offending token; Token is its index in the
//     stream generation that produced the diagnostic (-1 when not tied to a token).
//   - Fixable – whether the producing sniff offered an automatic fix.
//
// Sniff contract violations (code range SNF3100+) are kept apart from
// findings: drivers route them to a dedicated bag so a broken sniff never
// looks like a style problem in the analysed file.
package diag
