package report

import (
	"encoding/json"
	"io"

	"routescan/internal/diag"
	"routescan/internal/route"
	"routescan/internal/source"
)

// LocationJSON is a span in a file.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON is a secondary message attached to a diagnostic.
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON is one diagnostic.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// Output is the root of the JSON document.
type Output struct {
	Endpoints   []route.Endpoint `json:"endpoints"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Summary     *Summary         `json:"summary,omitempty"`
}

func makeLocation(span source.Span, fs *source.FileSet, mode PathMode) (loc LocationJSON) {
	loc = LocationJSON{
		File:      displayPath(fs, span.File, mode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if loc.File == "" {
		return loc
	}
	defer func() {
		if recover() != nil {
			loc.StartLine, loc.StartCol, loc.EndLine, loc.EndCol = 0, 0, 0, 0
		}
	}()
	startPos, endPos := fs.Resolve(span)
	loc.StartLine = startPos.Line
	loc.StartCol = startPos.Col
	loc.EndLine = endPos.Line
	loc.EndCol = endPos.Col
	return loc
}

// BuildOutput assembles the JSON document without serializing it.
// Endpoints are never nil so consumers always see an array.
func BuildOutput(eps []route.Endpoint, diags []diag.Diagnostic, fs *source.FileSet, summary *Summary, opts Options) Output {
	if opts.Max > 0 && opts.Max < len(diags) {
		diags = diags[:opts.Max]
	}
	out := Output{
		Endpoints:   eps,
		Diagnostics: make([]DiagnosticJSON, 0, len(diags)),
		Summary:     summary,
	}
	if out.Endpoints == nil {
		out.Endpoints = []route.Endpoint{}
	}
	for _, d := range diags {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts.PathMode),
		}
		if opts.ShowNotes && len(d.Notes) > 0 {
			dj.Notes = make([]NoteJSON, len(d.Notes))
			for j, n := range d.Notes {
				dj.Notes[j] = NoteJSON{Message: n.Msg, Location: makeLocation(n.Span, fs, opts.PathMode)}
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	return out
}

// JSON writes the indented document.
func JSON(w io.Writer, eps []route.Endpoint, diags []diag.Diagnostic, fs *source.FileSet, summary *Summary, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildOutput(eps, diags, fs, summary, opts))
}
