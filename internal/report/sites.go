package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"routescan/internal/annot"
	"routescan/internal/diag"
	"routescan/internal/source"
)

// SiteOutput is one annotation site in the sites dump.
type SiteOutput struct {
	Name      string      `json:"name"`
	State     string      `json:"state"`
	Line      uint32      `json:"line"`
	Col       uint32      `json:"col"`
	HasArgs   bool        `json:"hasArgs"`
	Args      []ArgOutput `json:"args,omitempty"`
	Malformed bool        `json:"malformed,omitempty"`
}

type ArgOutput struct {
	Key   string `json:"key,omitempty"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func siteState(s annot.Site) string {
	switch {
	case s.Malformed:
		return "malformed"
	case s.Active:
		return "active"
	default:
		return "inactive"
	}
}

// formatValue renders a value in annotation syntax with strings decoded.
func formatValue(v annot.Value) string {
	switch v.Kind {
	case annot.ValEmpty:
		return ""
	case annot.ValString:
		return strconv.Quote(v.Str)
	case annot.ValName:
		return v.Name
	case annot.ValArray:
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			parts[i] = formatValue(e)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case annot.ValConcat:
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			parts[i] = formatValue(e)
		}
		return strings.Join(parts, " + ")
	case annot.ValAnnotation:
		if v.Nested != nil {
			return formatSite(*v.Nested)
		}
	}
	return v.Text
}

func formatSite(s annot.Site) string {
	if !s.HasArgs {
		return "@" + s.Name
	}
	parts := make([]string, len(s.Args))
	for i, a := range s.Args {
		if a.Key == "" {
			parts[i] = formatValue(a.Value)
		} else {
			parts[i] = a.Key + " = " + formatValue(a.Value)
		}
	}
	return "@" + s.Name + "(" + strings.Join(parts, ", ") + ")"
}

func buildSitesOutput(sites []annot.Site, fs *source.FileSet) []SiteOutput {
	out := make([]SiteOutput, 0, len(sites))
	for _, s := range sites {
		start, _ := fs.Resolve(s.Span)
		so := SiteOutput{
			Name:      s.Name,
			State:     siteState(s),
			Line:      start.Line,
			Col:       start.Col,
			HasArgs:   s.HasArgs,
			Malformed: s.Malformed,
		}
		for _, a := range s.Args {
			so.Args = append(so.Args, ArgOutput{Key: a.Key, Kind: a.Value.Kind.String(), Value: formatValue(a.Value)})
		}
		out = append(out, so)
	}
	return out
}

// PrettySites prints one line per site: position, state and the normalized
// annotation text.
func PrettySites(w io.Writer, sites []annot.Site, fs *source.FileSet, opts Options) error {
	st := newStyles(opts.Color)
	var b strings.Builder
	for i, s := range sites {
		start, _ := fs.Resolve(s.Span)
		state := siteState(s)
		label := fmt.Sprintf("%-9s", state)
		switch state {
		case "active":
			label = st.method("GET").Sprint(label)
		case "malformed":
			label = st.severity(diag.SevError).Sprint(label)
		default:
			label = st.dim.Sprint(label)
		}
		fmt.Fprintf(&b, "%4d: %d:%d %s %s\n", i+1, start.Line, start.Col, label, formatSite(s))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// JSONSites writes the sites dump as JSON.
func JSONSites(w io.Writer, sites []annot.Site, fs *source.FileSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildSitesOutput(sites, fs))
}
