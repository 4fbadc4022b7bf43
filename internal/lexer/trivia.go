package lexer

import (
	"routescan/internal/diag"
	"routescan/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ', '\t', '\f', '\r' коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - //... до \n -> TriviaLineComment
// - /* ... */ -> TriviaBlockComment (без вложенности; незакрытый: репорт и обрезаем на EOF)
// - /** ... */ -> TriviaDocBlock
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if isSpace(b) {
			for isSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaSpace, Span: sp, Text: lx.text(sp)})
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNewline, Span: sp, Text: lx.text(sp)})
			continue
		}

		if b == '/' && lx.scanCommentIntoHold() {
			continue
		}

		break
	}
}

// //... , /*...*/ , /**...*/
func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' || (b1 != '/' && b1 != '*') {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()

	if b1 == '/' {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.record(token.RegionLineComment, sp)
		lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaLineComment, Span: sp, Text: lx.text(sp)})
		return true
	}

	kind := token.TriviaBlockComment
	// "/**/" это пустой обычный комментарий, не doc
	if c0, c1, ok := lx.cursor.Peek2(); ok && c0 == '*' && c1 != '/' {
		kind = token.TriviaDocBlock
	}
	closed := false
	for !lx.cursor.EOF() {
		if c0, c1, ok := lx.cursor.Peek2(); ok && c0 == '*' && c1 == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			closed = true
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if !closed {
		lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
	}
	lx.record(token.RegionBlockComment, sp)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
	return true
}
