package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/mattn/go-runewidth"

	"routescan/internal/diag"
	"routescan/internal/source"
)

// PrettyDiagnostics prints each diagnostic as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline and, when enabled, the
// notes in the same shape. Diagnostics are printed in the given order.
func PrettyDiagnostics(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts Options) error {
	st := newStyles(opts.Color)
	shown := len(diags)
	if opts.Max > 0 && opts.Max < shown {
		shown = opts.Max
	}

	var b strings.Builder
	for i := range shown {
		d := &diags[i]
		loc := location(fs, d.Primary, opts.PathMode)
		sev := st.severity(d.Severity)
		if loc != "" {
			b.WriteString(st.path.Sprint(loc))
			b.WriteString(": ")
		}
		fmt.Fprintf(&b, "%s %s: %s\n", sev.Sprint(d.Severity.String()), sev.Sprint(d.Code.ID()), d.Message)
		writeExcerpt(&b, fs, d.Primary, opts.Context, st)

		if opts.ShowNotes {
			for _, n := range d.Notes {
				b.WriteString("  ")
				b.WriteString(st.note.Sprint("note"))
				if nloc := location(fs, n.Span, opts.PathMode); nloc != "" {
					b.WriteString(": ")
					b.WriteString(nloc)
				}
				b.WriteString(": ")
				b.WriteString(n.Msg)
				b.WriteByte('\n')
			}
		}
	}
	if rest := len(diags) - shown; rest > 0 {
		fmt.Fprintf(&b, "%s\n", st.dim.Sprintf("... and %d more diagnostics", rest))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ShortDiagnostics writes the stable single-line form, virtual files kept.
func ShortDiagnostics(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts Options) error {
	if opts.Max > 0 && opts.Max < len(diags) {
		diags = diags[:opts.Max]
	}
	out := diag.FormatShortDiagnostics(diags, fs, opts.ShowNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}

// location renders "path:line:col" or "" for an unresolvable span.
func location(fs *source.FileSet, sp source.Span, mode PathMode) (loc string) {
	path := displayPath(fs, sp.File, mode)
	if path == "" {
		return ""
	}
	defer func() {
		if recover() != nil {
			loc = path
		}
	}()
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

// writeExcerpt prints the lines around sp with a gutter and an underline
// under the primary line. Multi-line spans are underlined to end of line.
func writeExcerpt(b *strings.Builder, fs *source.FileSet, sp source.Span, context int, st styles) {
	if fs == nil || displayPath(fs, sp.File, PathModeBasename) == "" {
		return
	}
	f := fs.Get(sp.File)
	if len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}

	context = max(context, 0)
	first := start.Line
	for i := 0; i < context && first > 1; i++ {
		first--
	}
	last := start.Line
	lines, err := safecast.Conv[uint32](len(f.LineIdx) + 1)
	if err != nil {
		lines = start.Line
	}
	if lines > 1 && f.GetLine(lines) == "" {
		lines--
	}
	for i := 0; i < context && last < lines; i++ {
		last++
	}
	gutterWidth := len(strconv.FormatUint(uint64(last), 10))

	for line := first; line <= last; line++ {
		text := strings.ReplaceAll(f.GetLine(line), "\t", "    ")
		fmt.Fprintf(b, "%s %s %s\n", st.gutter.Sprint(padLeft(strconv.FormatUint(uint64(line), 10), gutterWidth)), st.gutter.Sprint("|"), text)
		if line != start.Line {
			continue
		}
		raw := f.GetLine(line)
		prefix := expandTabs(raw, int(start.Col)-1)
		width := 1
		switch {
		case end.Line == start.Line && end.Col > start.Col:
			width = runewidth.StringWidth(expandTabs(raw, int(end.Col)-1)) - runewidth.StringWidth(prefix)
		case end.Line > start.Line:
			width = runewidth.StringWidth(strings.ReplaceAll(raw, "\t", "    ")) - runewidth.StringWidth(prefix)
		}
		width = max(width, 1)
		underline := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(b, "%s %s %s%s\n", strings.Repeat(" ", gutterWidth), st.gutter.Sprint("|"),
			strings.Repeat(" ", runewidth.StringWidth(prefix)), st.caret.Sprint(underline))
	}
}

// expandTabs returns the first n bytes of line with tabs widened like the
// excerpt text. Columns are byte based.
func expandTabs(line string, n int) string {
	n = min(max(n, 0), len(line))
	return strings.ReplaceAll(line[:n], "\t", "    ")
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
