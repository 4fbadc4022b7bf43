package lexer

import (
	"routescan/internal/diag"
	"routescan/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Token.Text: ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 || (r >= utf8RuneSelf && !isIdentStartRune(r)) {
		return lx.scanOperatorOrPunct()
	}
	for {
		r, sz = lx.peekRune()
		if sz == 0 {
			break
		}
		if r < utf8RuneSelf {
			if !isIdentContinueByte(byte(r)) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanNumber: 0, 1_000, 0x1F, 0b101, 017, 1.5, .5, 1e-3, 0x1p3, 10L, 2.0f.
// Форма не валидируется: значение чисел маршрутам не нужно.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	hex := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
		hex = true
		lx.cursor.Bump()
		lx.cursor.Bump()
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isIdentContinueByte(b) && b != '$':
			prev := b
			lx.cursor.Bump()
			exp := (!hex && (prev == 'e' || prev == 'E')) || (hex && (prev == 'p' || prev == 'P'))
			if exp && (lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-') {
				lx.cursor.Bump()
			}
		case b == '.':
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && b1 == '.' {
				goto emit
			}
			lx.cursor.Bump()
		default:
			goto emit
		}
	}
emit:
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.NumberLit, Span: sp, Text: lx.text(sp)}
}

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
// '<' и '>' всегда одиночные, чтобы `List<Map<K, V>>` закрывался по одной скобке.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	if lx.try3('.', '.', '.') {
		return emit(token.Ellipsis)
	}
	for _, op := range twoByteOps {
		if lx.try2(op[0], op[1]) {
			return emit(token.Operator)
		}
	}

	if _, sz := lx.peekRune(); sz > 1 {
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.infoLex(diag.LexInfo, sp, "unexpected character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case ',':
		return emit(token.Comma)
	case '.':
		return emit(token.Dot)
	case ';':
		return emit(token.Semicolon)
	case '=':
		return emit(token.Assign)
	case '+':
		return emit(token.Plus)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '@':
		return emit(token.At)
	case '-', '*', '/', '%', '!', '&', '|', '^', '?', ':', '~':
		return emit(token.Operator)
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.infoLex(diag.LexInfo, sp, "unexpected character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
}

var twoByteOps = [...][2]byte{
	{'=', '='}, {'!', '='}, {'<', '='}, {'>', '='},
	{'&', '&'}, {'|', '|'}, {'+', '+'}, {'-', '-'},
	{'+', '='}, {'-', '='}, {'*', '='}, {'/', '='},
	{'-', '>'}, {':', ':'},
}
