package token

import (
	"routescan/internal/source"
)

// Token represents a single source token with its location and leading trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a string, text block, char or number literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case StringLit, TextBlock, CharLit, NumberLit:
		return true
	default:
		return false
	}
}

// IsString reports whether the token is a string-like literal usable as a path value.
func (t Token) IsString() bool {
	return t.Kind == StringLit || t.Kind == TextBlock
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= Keyword && t.Kind <= KwFinal
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Is reports whether the token is an identifier or keyword spelled text.
func (t Token) Is(text string) bool {
	return (t.Kind == Ident || t.IsKeyword()) && t.Text == text
}
