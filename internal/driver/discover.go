package driver

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher selects files by slash-separated path relative to the scan root.
type Matcher struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewMatcher compiles include and exclude patterns. A leading "**/" also
// matches at the root, so "**/*.java" selects "App.java".
func NewMatcher(include, exclude []string) (*Matcher, error) {
	m := &Matcher{}
	var err error
	if m.include, err = compileAll(include); err != nil {
		return nil, err
	}
	if m.exclude, err = compileAll(exclude); err != nil {
		return nil, err
	}
	return m, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		p = filepath.ToSlash(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", p, err)
		}
		out = append(out, g)
		if rest, ok := strings.CutPrefix(p, "**/"); ok && rest != "" {
			out = append(out, glob.MustCompile(rest, '/'))
		}
	}
	return out, nil
}

// Match reports whether rel is included and not excluded.
func (m *Matcher) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	return matchAny(m.include, rel) && !matchAny(m.exclude, rel)
}

// Excluded reports whether a directory can be skipped entirely.
func (m *Matcher) Excluded(relDir string) bool {
	relDir = filepath.ToSlash(relDir)
	return matchAny(m.exclude, relDir) || matchAny(m.exclude, relDir+"/")
}

func matchAny(globs []glob.Glob, s string) bool {
	for _, g := range globs {
		if g.Match(s) {
			return true
		}
	}
	return false
}

// Discovered is the file list of one scan root.
type Discovered struct {
	Root string
	// Sources are absolute paths of matching source files, sorted.
	Sources []string
	// Descriptors are WEB-INF/web.xml files found under Root, sorted.
	Descriptors []string
}

// Discover walks root. A root that is a file is returned as the only source.
func Discover(root string, m *Matcher) (Discovered, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Discovered{}, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	out := Discovered{Root: abs}

	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == abs && !d.IsDir() {
			out.Root = filepath.Dir(abs)
			out.Sources = append(out.Sources, path)
			return nil
		}
		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != abs && m.Excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == "web.xml" && filepath.Base(filepath.Dir(path)) == "WEB-INF" {
			out.Descriptors = append(out.Descriptors, path)
			return nil
		}
		if m.Match(rel) {
			out.Sources = append(out.Sources, path)
		}
		return nil
	})
	if err != nil {
		return Discovered{}, err
	}
	sort.Strings(out.Sources)
	sort.Strings(out.Descriptors)
	return out, nil
}

// sourceRoots are the conventional layouts whose remainder is the package path.
var sourceRoots = []string{"src/main/java/", "src/test/java/", "src/"}

// UnitName derives a fully-qualified type name from a path relative to the
// scan root: "src/main/java/com/example/Api.java" → "com.example.Api".
func UnitName(rel string) string {
	rel = strings.TrimSuffix(filepath.ToSlash(rel), ".java")
	for _, r := range sourceRoots {
		if i := strings.Index(rel, r); i >= 0 && (i == 0 || rel[i-1] == '/') {
			rel = rel[i+len(r):]
			break
		}
	}
	return strings.ReplaceAll(rel, "/", ".")
}
