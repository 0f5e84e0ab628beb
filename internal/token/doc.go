// Package token defines the lexical token kinds of the pen language.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Token.Value is set only for literals; strings carry the unescaped body.
//   - NewLine tokens are significant: they separate statements.
//   - Command and builtin names are keywords; labels and variables are Ident.
package token
