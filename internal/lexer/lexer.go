package lexer

import (
	"routescan/internal/source"
	"routescan/internal/token"
)

type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	look    *token.Token   // 1 элементный буфер для токена
	hold    []token.Trivia // накопленные leading trivia
	regions []token.Region // comment и string регионы в порядке сканирования
	start   uint32
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// NewRange lexes only the bytes covered by sp.
func NewRange(file *source.File, sp source.Span, opts Options) *Lexer {
	c := NewRangeCursor(file, sp)
	return &Lexer{
		file:   file,
		cursor: c,
		opts:   opts,
		start:  c.Off,
	}
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	// Leading из hold к EOF не приклеиваем
	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()

	case ch >= utf8RuneSelf:
		// Возможный Unicode идентификатор → scanIdentOrKeyword() разберётся
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()

	case ch == '"':
		if b0, b1, b2, ok := lx.cursor.Peek3(); ok && b0 == '"' && b1 == '"' && b2 == '"' {
			tok = lx.scanTextBlock()
		} else {
			tok = lx.scanString()
		}

	case ch == '\'':
		tok = lx.scanChar()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) record(kind token.RegionKind, sp source.Span) {
	if sp.Empty() {
		return
	}
	lx.regions = append(lx.regions, token.Region{Kind: kind, Span: sp})
}
