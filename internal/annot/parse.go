package annot

import (
	"fmt"
	"strings"

	"routescan/internal/diag"
	"routescan/internal/source"
	"routescan/internal/token"
)

// maxNesting bounds nested annotation values.
const maxNesting = 32

// Parser reads annotation sites out of a token slice of one file.
type Parser struct {
	file *source.File
	toks []token.Token
	rep  diag.Reporter
}

// NewParser binds a parser to the tokens of file. r may be nil.
func NewParser(file *source.File, toks []token.Token, r diag.Reporter) *Parser {
	if r == nil {
		r = diag.NopReporter{}
	}
	return &Parser{file: file, toks: toks, rep: r}
}

func (p *Parser) at(i int) token.Token {
	if i >= 0 && i < len(p.toks) {
		return p.toks[i]
	}
	return token.Token{Kind: token.EOF}
}

func (p *Parser) text(sp source.Span) string {
	return string(p.file.Content[sp.Start:sp.End])
}

// IsSiteStart reports whether toks[i] begins an annotation (and not "@interface").
func (p *Parser) IsSiteStart(i int) bool {
	return p.at(i).Kind == token.At && p.at(i+1).Kind != token.KwInterface
}

// ParseSite parses the annotation whose '@' is toks[i] and returns it with the
// index of the first token after it. ok is false when toks[i] starts no annotation.
func (p *Parser) ParseSite(i int) (site Site, next int, ok bool) {
	return p.parseSite(i, 0)
}

func (p *Parser) parseSite(i, depth int) (Site, int, bool) {
	if !p.IsSiteStart(i) {
		return Site{}, i + 1, false
	}
	at := p.at(i)
	j := i + 1
	if p.at(j).Kind != token.Ident {
		diag.ReportWarning(p.rep, diag.AnnUnexpectedToken, at.Span.Cover(p.at(j).Span),
			fmt.Sprintf("expected annotation name after '@', got %s", p.at(j).Kind)).Emit()
		return Site{}, j, false
	}

	var name strings.Builder
	name.WriteString(p.at(j).Text)
	nameEnd := p.at(j).Span
	j++
	for p.at(j).Kind == token.Dot && p.at(j+1).Kind == token.Ident {
		name.WriteByte('.')
		name.WriteString(p.at(j + 1).Text)
		nameEnd = p.at(j + 1).Span
		j += 2
	}

	site := Site{
		Name:   name.String(),
		Span:   at.Span.Cover(nameEnd),
		Active: true,
	}
	if p.at(j).Kind != token.LParen {
		return site, j, true
	}

	open := j
	closeIdx, stop := p.matchClose(open)
	if stop >= 0 {
		stopTok := p.at(stop)
		site.Malformed = true
		site.Active = false
		site.HasArgs = true
		site.Span = at.Span.Cover(p.at(open).Span)
		msg := fmt.Sprintf("unbalanced delimiters in arguments of @%s", site.Name)
		diag.ReportError(p.rep, diag.AnnStructuralParse, p.at(open).Span, msg).
			WithNote(stopTok.Span, fmt.Sprintf("scanning stopped at %s", describe(stopTok))).
			Emit()
		if isCloser(stopTok.Kind) {
			return site, stop + 1, true
		}
		return site, stop, true
	}

	site.HasArgs = true
	site.Span = at.Span.Cover(p.at(closeIdx).Span)
	for _, seg := range p.split(open+1, closeIdx, token.Comma) {
		if seg[0] == seg[1] {
			continue
		}
		site.Args = append(site.Args, p.parseArg(seg[0], seg[1], depth))
	}
	return site, closeIdx + 1, true
}

// matchClose finds the ')' matching toks[open]. On failure it returns the index
// of the token where scanning stopped (a mismatched closer, a statement
// boundary or EOF) as stop; otherwise stop is -1.
func (p *Parser) matchClose(open int) (closeIdx, stop int) {
	stack := make([]token.Kind, 0, 8)
	for k := open; ; k++ {
		tok := p.at(k)
		switch {
		case tok.Kind == token.EOF:
			return -1, k
		case tok.Kind == token.LParen || tok.Kind == token.LBrace || tok.Kind == token.LBracket:
			stack = append(stack, closerOf(tok.Kind))
		case isCloser(tok.Kind):
			if len(stack) == 0 || stack[len(stack)-1] != tok.Kind {
				return -1, k
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return k, -1
			}
		case p.isBoundary(k):
			return -1, k
		}
	}
}

// isBoundary reports tokens that cannot occur inside annotation arguments.
func (p *Parser) isBoundary(k int) bool {
	tok := p.at(k)
	if tok.Kind == token.Semicolon {
		return true
	}
	if !tok.IsKeyword() || p.at(k-1).Kind == token.Dot {
		return false
	}
	if tok.IsMemberStart() {
		return true
	}
	switch tok.Kind {
	case token.KwExtends, token.KwImplements, token.KwThrows, token.KwReturn,
		token.KwNew, token.KwPackage, token.KwImport:
		return true
	}
	return false
}

// split cuts toks[from:to] at depth-zero separators into [start, end) pairs.
func (p *Parser) split(from, to int, sep token.Kind) [][2]int {
	var out [][2]int
	depth := 0
	start := from
	for k := from; k < to; k++ {
		switch kind := p.at(k).Kind; {
		case kind == token.LParen || kind == token.LBrace || kind == token.LBracket:
			depth++
		case isCloser(kind):
			depth--
		case kind == sep && depth == 0:
			out = append(out, [2]int{start, k})
			start = k + 1
		}
	}
	return append(out, [2]int{start, to})
}

// ParseValue parses toks[from:to] as a single value expression, e.g. a field initializer.
func (p *Parser) ParseValue(from, to int) Value {
	return p.parseValue(from, to, 0)
}

func (p *Parser) parseArg(from, to, depth int) Arg {
	arg := Arg{Span: p.at(from).Span.Cover(p.at(to - 1).Span)}
	if to-from >= 2 && p.at(from).Kind == token.Ident && p.at(from+1).Kind == token.Assign {
		arg.Key = p.at(from).Text
		from += 2
	}
	arg.Value = p.parseValue(from, to, depth)
	return arg
}

func (p *Parser) parseValue(from, to, depth int) Value {
	if from >= to {
		return Value{Kind: ValEmpty}
	}
	sp := p.at(from).Span.Cover(p.at(to - 1).Span)
	v := Value{Span: sp, Text: p.text(sp)}
	first := p.at(from)

	if parts := p.split(from, to, token.Plus); len(parts) > 1 {
		v.Kind = ValConcat
		for _, part := range parts {
			v.Elems = append(v.Elems, p.parseValue(part[0], part[1], depth))
		}
		return v
	}

	switch {
	case first.Kind == token.LBrace && p.at(to-1).Kind == token.RBrace:
		v.Kind = ValArray
		for _, seg := range p.split(from+1, to-1, token.Comma) {
			if seg[0] == seg[1] {
				continue
			}
			v.Elems = append(v.Elems, p.parseValue(seg[0], seg[1], depth))
		}
	case first.Kind == token.At:
		if depth >= maxNesting {
			diag.ReportWarning(p.rep, diag.AnnNestedTooDeep, sp, "annotation values nested too deeply").Emit()
			v.Kind = ValOther
			return v
		}
		nested, _, ok := p.parseSite(from, depth+1)
		if !ok {
			v.Kind = ValOther
			return v
		}
		v.Kind = ValAnnotation
		v.Nested = &nested
	case to-from == 1 && first.IsString():
		v.Kind = ValString
		if first.Kind == token.TextBlock {
			v.Str = DecodeTextBlock(first.Text)
		} else {
			v.Str = DecodeString(first.Text)
		}
	case first.Kind == token.LParen && p.at(to-1).Kind == token.RParen:
		// ("a"): скобки вокруг значения
		inner := p.parseValue(from+1, to-1, depth)
		inner.Span, inner.Text = sp, v.Text
		return inner
	case p.isQualifiedName(from, to):
		v.Kind = ValName
		v.Name = strings.Join(p.names(from, to), ".")
	default:
		v.Kind = ValOther
	}
	return v
}

func (p *Parser) isQualifiedName(from, to int) bool {
	if (to-from)%2 == 0 {
		return false
	}
	for k := from; k < to; k++ {
		want := token.Ident
		if (k-from)%2 == 1 {
			want = token.Dot
		}
		if p.at(k).Kind != want {
			return false
		}
	}
	return true
}

func (p *Parser) names(from, to int) []string {
	out := make([]string, 0, (to-from+1)/2)
	for k := from; k < to; k += 2 {
		out = append(out, p.at(k).Text)
	}
	return out
}

func closerOf(k token.Kind) token.Kind {
	switch k {
	case token.LParen:
		return token.RParen
	case token.LBrace:
		return token.RBrace
	default:
		return token.RBracket
	}
}

func isCloser(k token.Kind) bool {
	return k == token.RParen || k == token.RBrace || k == token.RBracket
}

func describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of file"
	}
	return fmt.Sprintf("%q", tok.Text)
}
