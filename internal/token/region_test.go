package token_test

import (
	"testing"

	"routescan/internal/source"
	"routescan/internal/token"
)

func sampleClassification() token.Classification {
	// code[0,5) line[5,12) code[12,20) string[20,25) block[25,40) code[40,50)
	return token.Classification{Regions: []token.Region{
		{Kind: token.RegionCode, Span: source.Span{Start: 0, End: 5}},
		{Kind: token.RegionLineComment, Span: source.Span{Start: 5, End: 12}},
		{Kind: token.RegionCode, Span: source.Span{Start: 12, End: 20}},
		{Kind: token.RegionString, Span: source.Span{Start: 20, End: 25}},
		{Kind: token.RegionBlockComment, Span: source.Span{Start: 25, End: 40}},
		{Kind: token.RegionCode, Span: source.Span{Start: 40, End: 50}},
	}}
}

func TestClassificationKindAt(t *testing.T) {
	c := sampleClassification()
	tests := []struct {
		off  uint32
		want token.RegionKind
	}{
		{0, token.RegionCode},
		{4, token.RegionCode},
		{5, token.RegionLineComment},
		{11, token.RegionLineComment},
		{12, token.RegionCode},
		{22, token.RegionString},
		{39, token.RegionBlockComment},
		{49, token.RegionCode},
		{500, token.RegionCode},
	}
	for _, tt := range tests {
		if got := c.KindAt(tt.off); got != tt.want {
			t.Errorf("KindAt(%d) = %v, want %v", tt.off, got, tt.want)
		}
	}
}

func TestClassificationWithinAndTouches(t *testing.T) {
	c := sampleClassification()

	if !c.Within(source.Span{Start: 26, End: 39}, token.RegionBlockComment) {
		t.Error("span inside block comment must be within it")
	}
	if c.Within(source.Span{Start: 18, End: 22}, token.RegionCode) {
		t.Error("span crossing into a string is not fully code")
	}
	if !c.Touches(source.Span{Start: 18, End: 22}, token.RegionString) {
		t.Error("span crossing into a string touches it")
	}
	if c.Touches(source.Span{Start: 40, End: 50}, token.RegionBlockComment) {
		t.Error("trailing code must not touch the comment")
	}
	if got := len(c.Comments()); got != 2 {
		t.Errorf("expected 2 comment regions, got %d", got)
	}
}

func TestRegionKindString(t *testing.T) {
	names := map[token.RegionKind]string{
		token.RegionCode:         "CODE",
		token.RegionLineComment:  "LINE_COMMENT",
		token.RegionBlockComment: "BLOCK_COMMENT",
		token.RegionString:       "STRING",
	}
	for k, want := range names {
		if k.String() != want {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), want)
		}
	}
}
