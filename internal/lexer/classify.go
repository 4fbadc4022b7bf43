package lexer

import (
	"routescan/internal/source"
	"routescan/internal/token"
)

// Tokens drains the lexer. The last token is always EOF.
func (lx *Lexer) Tokens() []token.Token {
	out := make([]token.Token, 0, 256)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Classification returns the partition of the lexed range into regions.
// Gaps between comment and string regions are CODE; the result covers
// the range without holes or overlaps. Call after the lexer reached EOF.
func (lx *Lexer) Classification() token.Classification {
	end := lx.cursor.limit()
	out := make([]token.Region, 0, 2*len(lx.regions)+1)
	pos := lx.start
	code := func(to uint32) {
		if to <= pos {
			return
		}
		out = append(out, token.Region{
			Kind: token.RegionCode,
			Span: source.Span{File: lx.file.ID, Start: pos, End: to},
		})
	}
	for _, r := range lx.regions {
		code(r.Span.Start)
		out = append(out, r)
		pos = r.Span.End
	}
	code(end)
	return token.Classification{Regions: out}
}

// Classify lexes the whole file and returns its tokens with the region partition.
func Classify(file *source.File, opts Options) ([]token.Token, token.Classification) {
	lx := New(file, opts)
	toks := lx.Tokens()
	return toks, lx.Classification()
}
