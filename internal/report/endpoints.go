package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"routescan/internal/route"
)

var endpointHeader = [...]string{"METHOD", "PATH", "HANDLER", "ORIGIN"}

func handlerRef(e route.Endpoint) string {
	return e.DeclaringType + "#" + e.HandlerName
}

// PrettyEndpoints writes an aligned table. Widths are measured in terminal
// cells before colouring, so wide runes in paths stay aligned.
func PrettyEndpoints(w io.Writer, eps []route.Endpoint, opts Options) error {
	st := newStyles(opts.Color)
	if len(eps) == 0 {
		_, err := fmt.Fprintln(w, st.dim.Sprint("no endpoints found"))
		return err
	}

	var widths [3]int
	for i := range widths {
		widths[i] = runewidth.StringWidth(endpointHeader[i])
	}
	for _, e := range eps {
		widths[0] = max(widths[0], runewidth.StringWidth(e.HTTPMethod))
		widths[1] = max(widths[1], runewidth.StringWidth(e.PathTemplate))
		widths[2] = max(widths[2], runewidth.StringWidth(handlerRef(e)))
	}

	var b strings.Builder
	for i, h := range endpointHeader {
		if i < len(widths) {
			h = runewidth.FillRight(h, widths[i]) + "  "
		}
		b.WriteString(st.header.Sprint(h))
	}
	b.WriteByte('\n')
	for _, e := range eps {
		b.WriteString(st.method(e.HTTPMethod).Sprint(runewidth.FillRight(e.HTTPMethod, widths[0])))
		b.WriteString("  ")
		b.WriteString(runewidth.FillRight(e.PathTemplate, widths[1]))
		b.WriteString("  ")
		b.WriteString(runewidth.FillRight(handlerRef(e), widths[2]))
		b.WriteString("  ")
		b.WriteString(st.dim.Sprint(e.Origin.String()))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ShortEndpoints writes "METHOD PATH Type#handler ORIGIN" per line.
func ShortEndpoints(w io.Writer, eps []route.Endpoint) error {
	var b strings.Builder
	for _, e := range eps {
		fmt.Fprintf(&b, "%s %s %s %s\n", e.HTTPMethod, e.PathTemplate, handlerRef(e), e.Origin)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
