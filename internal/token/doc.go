// Package token defines lexical token kinds and trivia for .gd sources.
// Invariants:
//   - Token.Span matches the source bytes of the token exactly.
//   - Token.Text is the source text, except for identifiers, which are NFC-normalized.
//   - Comments and whitespace are leading Trivia and never appear in the main token stream.
package token
