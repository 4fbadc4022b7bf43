package lexer_test

import (
	"testing"

	"routescan/internal/lexer"
	"routescan/internal/source"
	"routescan/internal/token"
)

type region struct {
	kind       token.RegionKind
	start, end uint32
}

func classify(t *testing.T, input string) token.Classification {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("C.java", []byte(input)))
	_, cls := lexer.Classify(file, lexer.Options{})
	assertPartition(t, cls, uint32(len(input)))
	return cls
}

func assertPartition(t *testing.T, cls token.Classification, size uint32) {
	t.Helper()
	var pos uint32
	for i, r := range cls.Regions {
		if r.Span.Start != pos {
			t.Fatalf("region %d starts at %d, expected %d", i, r.Span.Start, pos)
		}
		if r.Span.Empty() {
			t.Fatalf("region %d is empty", i)
		}
		if i > 0 && r.Kind == token.RegionCode && cls.Regions[i-1].Kind == token.RegionCode {
			t.Fatalf("adjacent CODE regions at %d", i)
		}
		pos = r.Span.End
	}
	if pos != size {
		t.Fatalf("regions end at %d, file has %d bytes", pos, size)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []region
	}{
		{
			name:  "mixed",
			input: "a // x\n\"s\" /* b */ 'c'",
			want: []region{
				{token.RegionCode, 0, 2},
				{token.RegionLineComment, 2, 6},
				{token.RegionCode, 6, 7},
				{token.RegionString, 7, 10},
				{token.RegionCode, 10, 11},
				{token.RegionBlockComment, 11, 18},
				{token.RegionCode, 18, 19},
				{token.RegionString, 19, 22},
			},
		},
		{
			name:  "comment marker inside string",
			input: `"//x"`,
			want:  []region{{token.RegionString, 0, 5}},
		},
		{
			name:  "quote inside comment",
			input: `// "x`,
			want:  []region{{token.RegionLineComment, 0, 5}},
		},
		{
			name:  "unterminated string stops at newline",
			input: "\"abc\n",
			want:  []region{{token.RegionString, 0, 4}, {token.RegionCode, 4, 5}},
		},
		{
			name:  "javadoc is a block comment",
			input: "/**\n * @GetMapping\n */",
			want:  []region{{token.RegionBlockComment, 0, 22}},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := classify(t, tt.input)
			if len(cls.Regions) != len(tt.want) {
				t.Fatalf("expected %d regions, got %+v", len(tt.want), cls.Regions)
			}
			for i, w := range tt.want {
				got := cls.Regions[i]
				if got.Kind != w.kind || got.Span.Start != w.start || got.Span.End != w.end {
					t.Errorf("region %d: got %v %d..%d, want %v %d..%d",
						i, got.Kind, got.Span.Start, got.Span.End, w.kind, w.start, w.end)
				}
			}
		})
	}
}

func TestClassifyAnnotationAfterComment(t *testing.T) {
	input := "// @GetMapping(\"/old\")\n@PatchMapping(\"/active\")"
	cls := classify(t, input)

	at := uint32(len("// @GetMapping(\"/old\")\n"))
	if got := cls.KindAt(3); got != token.RegionLineComment {
		t.Fatalf("commented annotation classified as %v", got)
	}
	if got := cls.KindAt(at); got != token.RegionCode {
		t.Fatalf("active annotation classified as %v", got)
	}
}

func TestNewRangeRelexesCommentBody(t *testing.T) {
	input := "// @GetMapping(\"/x\")\nclass A {}"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("R.java", []byte(input)))

	lx := lexer.NewRange(file, source.Span{File: file.ID, Start: 2, End: 20}, lexer.Options{Quiet: true})
	toks := lx.Tokens()
	kinds := []token.Kind{token.At, token.Ident, token.LParen, token.StringLit, token.RParen, token.EOF}
	if len(toks) != len(kinds) {
		t.Fatalf("unexpected tokens %v", toks)
	}
	for i, k := range kinds {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
	cls := lx.Classification()
	if len(cls.Regions) == 0 || cls.Regions[0].Span.Start != 2 || cls.Regions[len(cls.Regions)-1].Span.End != 20 {
		t.Fatalf("range classification must cover 2..20, got %+v", cls.Regions)
	}
}
