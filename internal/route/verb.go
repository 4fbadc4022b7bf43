package route

import (
	"strings"
)

// Verb is an HTTP request method.
type Verb uint8

const (
	VerbUnknown Verb = iota
	GET
	HEAD
	POST
	PUT
	PATCH
	DELETE
	OPTIONS
	TRACE
)

var verbNames = [...]string{
	VerbUnknown: "UNKNOWN",
	GET:         "GET",
	HEAD:        "HEAD",
	POST:        "POST",
	PUT:         "PUT",
	PATCH:       "PATCH",
	DELETE:      "DELETE",
	OPTIONS:     "OPTIONS",
	TRACE:       "TRACE",
}

func (v Verb) String() string {
	if int(v) < len(verbNames) {
		return verbNames[v]
	}
	return verbNames[VerbUnknown]
}

// ParseVerb accepts a bare verb name (GET) or an enum constant (RequestMethod.GET).
func ParseVerb(s string) (Verb, bool) {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	for v := GET; v <= TRACE; v++ {
		if verbNames[v] == s {
			return v, true
		}
	}
	return VerbUnknown, false
}

// VerbSet is an ordered set of verbs, or the ANY sentinel.
// Order is declaration order; duplicates are dropped.
type VerbSet struct {
	any   bool
	verbs []Verb
}

// AnyVerb matches every request method.
func AnyVerb() VerbSet { return VerbSet{any: true} }

// Verbs builds a set from vs in the given order.
func Verbs(vs ...Verb) VerbSet {
	var s VerbSet
	for _, v := range vs {
		s = s.With(v)
	}
	return s
}

// With returns s extended by v. ANY absorbs everything.
func (s VerbSet) With(v Verb) VerbSet {
	if s.any || s.Has(v) {
		return s
	}
	verbs := make([]Verb, len(s.verbs), len(s.verbs)+1)
	copy(verbs, s.verbs)
	s.verbs = append(verbs, v)
	return s
}

func (s VerbSet) IsAny() bool   { return s.any }
func (s VerbSet) IsEmpty() bool { return !s.any && len(s.verbs) == 0 }

func (s VerbSet) Has(v Verb) bool {
	if s.any {
		return true
	}
	for _, x := range s.verbs {
		if x == v {
			return true
		}
	}
	return false
}

// List returns the concrete verbs in declaration order; nil for ANY.
func (s VerbSet) List() []Verb {
	if s.any {
		return nil
	}
	out := make([]Verb, len(s.verbs))
	copy(out, s.verbs)
	return out
}

// Methods returns the rendered method names; ANY renders as a single "ANY".
func (s VerbSet) Methods() []string {
	if s.any {
		return []string{MethodAny}
	}
	out := make([]string, len(s.verbs))
	for i, v := range s.verbs {
		out[i] = v.String()
	}
	return out
}

func (s VerbSet) String() string {
	return "{" + strings.Join(s.Methods(), ",") + "}"
}

// MethodAny is the rendered HTTP method of an endpoint that accepts every verb.
const MethodAny = "ANY"
