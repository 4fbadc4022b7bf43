package annot

import (
	"sort"

	"routescan/internal/diag"
	"routescan/internal/lexer"
	"routescan/internal/source"
	"routescan/internal/token"
)

// ScanTokens returns the sites found in the code token stream, in source order.
// Malformed sites are included with Active=false.
func ScanTokens(file *source.File, toks []token.Token, r diag.Reporter) []Site {
	p := NewParser(file, toks, r)
	var out []Site
	for i := 0; i < len(toks); {
		if !p.IsSiteStart(i) {
			i++
			continue
		}
		site, next, ok := p.ParseSite(i)
		if ok {
			out = append(out, site)
		}
		i = max(next, i+1)
	}
	return out
}

// ScanComments re-lexes every comment region and returns the sites found there.
// They are always inactive; malformed ones are kept without diagnostics.
func ScanComments(file *source.File, cls token.Classification) []Site {
	var out []Site
	for _, region := range cls.Comments() {
		lx := lexer.NewRange(file, commentBody(file, region), lexer.Options{Quiet: true})
		for _, site := range ScanTokens(file, lx.Tokens(), nil) {
			site.Active = false
			out = append(out, site)
		}
	}
	return out
}

// Scan returns every site of the file, active and inactive, ordered by position.
func Scan(file *source.File, toks []token.Token, cls token.Classification, r diag.Reporter) []Site {
	sites := ScanTokens(file, toks, r)
	sites = append(sites, ScanComments(file, cls)...)
	sort.SliceStable(sites, func(i, j int) bool {
		return sites[i].Span.Start < sites[j].Span.Start
	})
	return sites
}

// commentBody strips the comment delimiters so the body is lexed as code.
func commentBody(file *source.File, region token.Region) source.Span {
	sp := region.Span
	sp.Start += 2
	if region.Kind == token.RegionBlockComment && sp.Len() >= 2 &&
		file.Content[sp.End-2] == '*' && file.Content[sp.End-1] == '/' {
		sp.End -= 2
	}
	if sp.Start > sp.End {
		sp.Start = sp.End
	}
	return sp
}
