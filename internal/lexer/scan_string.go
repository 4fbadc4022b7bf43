package lexer

import (
	"routescan/internal/diag"
	"routescan/internal/token"
)

// scanString: "..." с escape через '\'. Перевод строки внутри считается ошибкой,
// литерал обрезается перед '\n', регион STRING заканчивается там же.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	if lx.scanQuoted('"') {
		sp := lx.cursor.SpanFrom(start)
		lx.record(token.RegionString, sp)
		return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.record(token.RegionString, sp)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanChar: 'x', '\n', 'A'.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''
	if lx.scanQuoted('\'') {
		sp := lx.cursor.SpanFrom(start)
		lx.record(token.RegionString, sp)
		return token.Token{Kind: token.CharLit, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.record(token.RegionString, sp)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated char literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanQuoted consumes up to and including the closing quote.
// Returns false when a newline or EOF comes first; the newline is not consumed.
func (lx *Lexer) scanQuoted(quote byte) bool {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			return true
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
				return false
			}
			lx.cursor.Bump()
		case '\n':
			return false
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

// scanTextBlock: """ ... """ (Java 15). Переводы строк внутри разрешены.
func (lx *Lexer) scanTextBlock() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if b0, b1, b2, ok := lx.cursor.Peek3(); ok && b0 == '"' && b1 == '"' && b2 == '"' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			lx.record(token.RegionString, sp)
			return token.Token{Kind: token.TextBlock, Span: sp, Text: lx.text(sp)}
		}
		if lx.cursor.Bump() == '\\' {
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.record(token.RegionString, sp)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated text block")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
