package report

import (
	"fmt"
	"strings"

	"routescan/internal/source"
)

// Format selects the output renderer.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
	FormatShort  Format = "short"
)

// ParseFormat accepts pretty|json|short case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPretty, FormatJSON, FormatShort:
		return f, nil
	case "":
		return FormatPretty, nil
	}
	return "", fmt.Errorf("unknown format %q (expected pretty|json|short)", s)
}

// PathMode specifies how file paths are displayed.
type PathMode = source.PathStyle

const (
	// PathModeRelative prints paths relative to the FileSet base directory.
	PathModeRelative = source.PathRelative
	PathModeAbsolute = source.PathAbsolute
	PathModeBasename = source.PathBase
	// PathModeAuto keeps short paths and shortens long absolute ones.
	PathModeAuto = source.PathAuto
)

// Options configure every renderer.
type Options struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
	// Context is the number of source lines printed around a diagnostic.
	Context int
	// Max caps printed diagnostics; 0 means all. Endpoints are never capped.
	Max int
}

// displayPath formats the file of span, or "" when it cannot be resolved.
func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) (path string) {
	defer func() {
		if recover() != nil {
			path = ""
		}
	}()
	if fs == nil {
		return ""
	}
	f := fs.Get(id)
	base := ""
	if mode == PathModeRelative {
		base = fs.BaseDir()
	}
	return f.DisplayPath(mode, base)
}
