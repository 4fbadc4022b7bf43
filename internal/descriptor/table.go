// Package descriptor holds the servlet-name → (url-patterns, class-name)
// table built from deployment descriptors.
package descriptor

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"sort"
	"strings"
)

// Entry is one <servlet> binding.
type Entry struct {
	Name        string
	ClassName   string
	URLPatterns []string
}

// Table is built once before a batch and only read afterwards.
// A nil *Table is an empty table.
type Table struct {
	entries map[string]*Entry
	order   []string
	byClass map[string][]string
}

func NewTable() *Table {
	return &Table{
		entries: make(map[string]*Entry),
		byClass: make(map[string][]string),
	}
}

func (t *Table) entry(name string) *Entry {
	e, ok := t.entries[name]
	if !ok {
		e = &Entry{Name: name}
		t.entries[name] = e
		t.order = append(t.order, name)
	}
	return e
}

// Add merges a servlet declaration into the table. An empty className keeps
// the one already bound to name.
func (t *Table) Add(name, className string, patterns ...string) {
	e := t.entry(name)
	if className != "" && className != e.ClassName {
		if e.ClassName != "" {
			t.unbind(e.ClassName, name)
		}
		e.ClassName = className
		t.byClass[className] = append(t.byClass[className], name)
	}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" || slices.Contains(e.URLPatterns, p) {
			continue
		}
		e.URLPatterns = append(e.URLPatterns, p)
	}
}

func (t *Table) unbind(className, name string) {
	names := t.byClass[className]
	if i := slices.Index(names, name); i >= 0 {
		t.byClass[className] = slices.Delete(names, i, i+1)
	}
}

// Entry returns the servlet declared as name.
func (t *Table) Entry(name string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	e, ok := t.entries[name]
	if !ok {
		return Entry{}, false
	}
	out := *e
	out.URLPatterns = slices.Clone(e.URLPatterns)
	return out, true
}

// Lookup returns the url-patterns of every servlet whose class is className,
// in declaration order without duplicates. ok reports whether any servlet
// names the class, even one without mappings.
func (t *Table) Lookup(className string) (patterns []string, ok bool) {
	if t == nil {
		return nil, false
	}
	names, ok := t.byClass[className]
	if !ok || len(names) == 0 {
		return nil, false
	}
	for _, name := range names {
		for _, p := range t.entries[name].URLPatterns {
			if !slices.Contains(patterns, p) {
				patterns = append(patterns, p)
			}
		}
	}
	return patterns, true
}

// Names returns the servlet names in declaration order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.order)
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Digest identifies the table content; it takes part in cache keys.
func (t *Table) Digest() string {
	h := sha256.New()
	if t != nil {
		classes := make([]string, 0, len(t.byClass))
		for c := range t.byClass {
			classes = append(classes, c)
		}
		sort.Strings(classes)
		for _, c := range classes {
			patterns, _ := t.Lookup(c)
			h.Write([]byte(c))
			h.Write([]byte{0})
			for _, p := range patterns {
				h.Write([]byte(p))
				h.Write([]byte{0})
			}
			h.Write([]byte{'\n'})
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
