package annot

import (
	"strings"

	"routescan/internal/source"
)

// ValueKind tags the shape of an argument value.
type ValueKind uint8

const (
	ValEmpty      ValueKind = iota
	ValString               // "..." or text block, Str holds the decoded text
	ValName                 // Ident(.Ident)*, e.g. RequestMethod.GET or BASE_PATH
	ValArray                // { v, v, ... }
	ValAnnotation           // nested @Foo(...)
	ValConcat               // v + v + ...
	ValOther                // numbers, class literals, anything else
)

var valueKindNames = [...]string{
	ValEmpty:      "empty",
	ValString:     "string",
	ValName:       "name",
	ValArray:      "array",
	ValAnnotation: "annotation",
	ValConcat:     "concat",
	ValOther:      "other",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return "unknown"
}

// Value is the tagged union of raw argument values.
type Value struct {
	Kind   ValueKind
	Span   source.Span
	Text   string  // raw source text
	Str    string  // ValString
	Name   string  // ValName
	Elems  []Value // ValArray elements, ValConcat operands
	Nested *Site   // ValAnnotation
}

// Flatten returns the scalar values of v: array elements in order, or v itself.
func (v Value) Flatten() []Value {
	if v.Kind == ValArray {
		return v.Elems
	}
	if v.Kind == ValEmpty {
		return nil
	}
	return []Value{v}
}

// Arg is one entry of an argument list. Key is empty for a positional value.
type Arg struct {
	Key   string
	Value Value
	Span  source.Span
}

// IsArray reports whether the value was written as an array literal.
func (a Arg) IsArray() bool { return a.Value.Kind == ValArray }

// Site is one annotation invocation.
type Site struct {
	Name      string // as written, possibly qualified
	Args      []Arg
	Span      source.Span // '@' through ')' or through the name
	HasArgs   bool        // an argument list was written, even if empty
	Active    bool
	Malformed bool
}

// SimpleName strips a package qualifier: javax.servlet.annotation.WebServlet -> WebServlet.
func (s Site) SimpleName() string {
	if i := strings.LastIndexByte(s.Name, '.'); i >= 0 {
		return s.Name[i+1:]
	}
	return s.Name
}

// Arg returns the first argument with key, or the positional argument when key is "".
func (s Site) Arg(key string) (Arg, bool) {
	for _, a := range s.Args {
		if a.Key == key {
			return a, true
		}
	}
	return Arg{}, false
}
