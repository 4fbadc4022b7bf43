package token

import (
	"sort"

	"routescan/internal/source"
)

// RegionKind is the lexical state a byte range was scanned in.
type RegionKind uint8

const (
	RegionCode RegionKind = iota
	RegionLineComment
	RegionBlockComment
	// RegionString covers string, text block and char literals including quotes.
	RegionString
)

func (k RegionKind) String() string {
	switch k {
	case RegionCode:
		return "CODE"
	case RegionLineComment:
		return "LINE_COMMENT"
	case RegionBlockComment:
		return "BLOCK_COMMENT"
	case RegionString:
		return "STRING"
	}
	return "UNKNOWN"
}

// IsComment reports whether the region kind is a comment.
func (k RegionKind) IsComment() bool {
	return k == RegionLineComment || k == RegionBlockComment
}

// Region is a contiguous byte range tagged with its lexical state.
type Region struct {
	Kind RegionKind
	Span source.Span
}

// Classification is the ordered partition of one file into regions.
type Classification struct {
	Regions []Region
}

// index returns the region containing off, or -1.
func (c Classification) index(off uint32) int {
	i := sort.Search(len(c.Regions), func(i int) bool {
		return c.Regions[i].Span.End > off
	})
	if i >= len(c.Regions) || c.Regions[i].Span.Start > off {
		return -1
	}
	return i
}

// KindAt returns the region kind at byte offset off.
// Offsets past the end of the file report RegionCode.
func (c Classification) KindAt(off uint32) RegionKind {
	if i := c.index(off); i >= 0 {
		return c.Regions[i].Kind
	}
	return RegionCode
}

// Within reports whether every byte of sp lies in regions of kind k.
// An empty span is checked at its start offset.
func (c Classification) Within(sp source.Span, k RegionKind) bool {
	if sp.Empty() {
		return c.KindAt(sp.Start) == k
	}
	i := c.index(sp.Start)
	if i < 0 {
		return false
	}
	for ; i < len(c.Regions) && c.Regions[i].Span.Start < sp.End; i++ {
		if c.Regions[i].Kind != k {
			return false
		}
	}
	return true
}

// Touches reports whether any byte of sp lies in a region of kind k.
func (c Classification) Touches(sp source.Span, k RegionKind) bool {
	i := c.index(sp.Start)
	if i < 0 {
		return false
	}
	for ; i < len(c.Regions) && c.Regions[i].Span.Start < sp.End; i++ {
		if c.Regions[i].Kind == k {
			return true
		}
	}
	return false
}

// Comments returns the comment regions in source order.
func (c Classification) Comments() []Region {
	var out []Region
	for _, r := range c.Regions {
		if r.Kind.IsComment() {
			out = append(out, r)
		}
	}
	return out
}
