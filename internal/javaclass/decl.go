package javaclass

import (
	"strings"

	"routescan/internal/annot"
	"routescan/internal/route"
	"routescan/internal/source"
)

// TypeKind is the declaration keyword of a type.
type TypeKind uint8

const (
	KindClass TypeKind = iota
	KindInterface
	KindEnum
	KindRecord
	KindAnnotationType
)

func (k TypeKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindRecord:
		return "record"
	case KindAnnotationType:
		return "@interface"
	}
	return "unknown"
}

// Method is a member method or constructor declaration.
type Method struct {
	Name        string
	Annotations []annot.Site
	Span        source.Span // name token
}

// TypeDecl is one class-like declaration. Nested types are separate entries
// linked through Outer; Methods never include methods of nested types.
type TypeDecl struct {
	Kind        TypeKind
	Name        string
	Binary      string // Outer$Inner
	Annotations []annot.Site
	Extends     string
	Implements  []string
	Methods     []Method
	Outer       int // index into Unit.Types, -1 for top level
	Span        source.Span
	Body        source.Span
}

// QualifiedName joins the package and the binary name.
func (t TypeDecl) QualifiedName(pkg string) string {
	if pkg == "" {
		return t.Binary
	}
	return pkg + "." + t.Binary
}

// Annotation returns the first active annotation of the type accepted by match.
func (t TypeDecl) Annotation(match func(simple string) bool) (annot.Site, bool) {
	for _, s := range t.Annotations {
		if s.Active && match(s.SimpleName()) {
			return s, true
		}
	}
	return annot.Site{}, false
}

// DispatchOverrides returns the dispatch method names declared in the body,
// in declaration order, each at most once.
func (t TypeDecl) DispatchOverrides() []string {
	var out []string
	seen := make(map[string]bool, 8)
	for _, m := range t.Methods {
		if _, ok := route.DispatchVerb(m.Name); ok && !seen[m.Name] {
			seen[m.Name] = true
			out = append(out, m.Name)
		}
	}
	return out
}

// IsServletLike reports a type that extends a *Servlet base or declares a
// dispatch method.
func (t TypeDecl) IsServletLike() bool {
	if t.Kind != KindClass {
		return false
	}
	base := t.Extends
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[i+1:]
	}
	if strings.HasSuffix(base, "Servlet") {
		return true
	}
	return len(t.DispatchOverrides()) > 0
}

// Unit is the structural outline of one compilation unit.
type Unit struct {
	Package string
	Types   []TypeDecl
	// Constants maps String constants to initializers under NAME and Type.NAME.
	Constants map[string]annot.Value
}

// ActiveSites returns the active sites accepted by match, in source order.
func ActiveSites(sites []annot.Site, match func(simple string) bool) []annot.Site {
	var out []annot.Site
	for _, s := range sites {
		if s.Active && match(s.SimpleName()) {
			out = append(out, s)
		}
	}
	return out
}
