package report

import (
	"github.com/fatih/color"

	"routescan/internal/diag"
)

type styles struct {
	header  *color.Color
	dim     *color.Color
	path    *color.Color
	gutter  *color.Color
	caret   *color.Color
	note    *color.Color
	methods map[string]*color.Color
	other   *color.Color
	sev     map[diag.Severity]*color.Color
}

func newStyles(enabled bool) styles {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return styles{
		header: mk(color.Bold),
		dim:    mk(color.Faint),
		path:   mk(color.FgWhite, color.Bold),
		gutter: mk(color.FgBlue, color.Bold),
		caret:  mk(color.FgRed, color.Bold),
		note:   mk(color.FgCyan),
		methods: map[string]*color.Color{
			"GET":    mk(color.FgGreen, color.Bold),
			"POST":   mk(color.FgYellow, color.Bold),
			"PUT":    mk(color.FgBlue, color.Bold),
			"PATCH":  mk(color.FgMagenta, color.Bold),
			"DELETE": mk(color.FgRed, color.Bold),
			"ANY":    mk(color.FgCyan, color.Bold),
		},
		other: mk(color.FgWhite),
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   mk(color.FgRed, color.Bold),
			diag.SevWarning: mk(color.FgYellow, color.Bold),
			diag.SevInfo:    mk(color.FgCyan, color.Bold),
		},
	}
}

func (s styles) method(m string) *color.Color {
	if c, ok := s.methods[m]; ok {
		return c
	}
	return s.other
}

func (s styles) severity(sev diag.Severity) *color.Color {
	if c, ok := s.sev[sev]; ok {
		return c
	}
	return s.other
}
