package attr

import (
	"routescan/internal/route"
	"routescan/internal/source"
)

// Scope tells whether a rule was declared on a type or on a method.
type Scope uint8

const (
	ScopeClass Scope = iota
	ScopeMethod
)

func (s Scope) String() string {
	if s == ScopeClass {
		return "CLASS"
	}
	return "METHOD"
}

// Rule is a resolved mapping annotation before composition with class context.
type Rule struct {
	Dialect Dialect
	Scope   Scope
	Methods route.VerbSet
	// Paths keeps declaration order; duplicates within one annotation are dropped.
	Paths []string
	// Ignored lists recognised non-routing attributes (consumes, produces, ...)
	// and unknown ones, in declaration order.
	Ignored    []string
	Annotation string
	Span       source.Span
}
