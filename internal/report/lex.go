package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"routescan/internal/source"
	"routescan/internal/token"
)

// RegionOutput is one LexSpan in the lex dump.
type RegionOutput struct {
	Kind  string `json:"kind"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Line  uint32 `json:"line"`
	Col   uint32 `json:"col"`
}

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

// LexOutput is the JSON form of the lex command.
type LexOutput struct {
	Regions []RegionOutput `json:"regions"`
	Tokens  []TokenOutput  `json:"tokens,omitempty"`
}

func buildLexOutput(cls token.Classification, toks []token.Token, fs *source.FileSet) LexOutput {
	out := LexOutput{Regions: make([]RegionOutput, 0, len(cls.Regions))}
	for _, r := range cls.Regions {
		start, _ := fs.Resolve(r.Span)
		out.Regions = append(out.Regions, RegionOutput{
			Kind:  r.Kind.String(),
			Start: r.Span.Start,
			End:   r.Span.End,
			Line:  start.Line,
			Col:   start.Col,
		})
	}
	for _, tok := range toks {
		var leading []string
		for _, trivia := range tok.Leading {
			leading = append(leading, trivia.Kind.String())
		}
		out.Tokens = append(out.Tokens, TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Span: tok.Span, Leading: leading})
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// PrettyLex prints the regions of a file and, when toks is non-nil, its
// code tokens with their leading trivia.
func PrettyLex(w io.Writer, cls token.Classification, toks []token.Token, fs *source.FileSet, opts Options) error {
	st := newStyles(opts.Color)
	out := buildLexOutput(cls, toks, fs)

	var b strings.Builder
	b.WriteString(st.header.Sprint("regions"))
	b.WriteByte('\n')
	for i, r := range out.Regions {
		fmt.Fprintf(&b, "%4d: %-14s %d..%d at %d:%d\n", i+1, r.Kind, r.Start, r.End, r.Line, r.Col)
	}
	if len(out.Tokens) > 0 {
		b.WriteByte('\n')
		b.WriteString(st.header.Sprint("tokens"))
		b.WriteByte('\n')
	}
	for i, tok := range out.Tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		fmt.Fprintf(&b, "%4d: %-15s", i+1, tok.Kind)
		if tok.Text != "" {
			fmt.Fprintf(&b, " %q", tok.Text)
		}
		fmt.Fprintf(&b, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if len(tok.Leading) > 0 {
			fmt.Fprintf(&b, " %s", st.dim.Sprintf("(leading: %s)", strings.Join(tok.Leading, ", ")))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// JSONLex writes the lex dump as JSON.
func JSONLex(w io.Writer, cls token.Classification, toks []token.Token, fs *source.FileSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildLexOutput(cls, toks, fs))
}
