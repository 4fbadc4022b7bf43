// Package token defines the lexical vocabulary shared by the Java lexer and the
// annotation scanner.
// Invariants:
//   - Token.Text is a copy of the source bytes covered by Token.Span.
//   - Comments never appear in the token stream; they are leading Trivia.
//   - Annotations are lexed as '@' (Kind: At) + Ident; there are no per-annotation kinds.
//   - Regions produced for one file partition it: sorted, contiguous, non-overlapping.
package token
