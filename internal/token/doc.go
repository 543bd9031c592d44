// Package token defines lexical token kinds and the annotated Token record
// produced by the tokenizer.
// Invariants:
//   - Token.Text is the exact source lexeme; concatenating Text of all tokens
//     in index order reproduces the source.
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace and comments are ordinary tokens (Whitespace, Comment,
//     DocComment); there is no separate trivia channel.
//   - Keywords are matched case-insensitively; Text keeps the original case.
//   - Structural fields (Partner, Scope*, Paren*, Conditions) are filled by
//     the annotation pass and use None for "absent".
package token
