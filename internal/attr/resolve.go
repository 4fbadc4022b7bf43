package attr

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"routescan/internal/annot"
	"routescan/internal/diag"
	"routescan/internal/route"
)

// Constants maps compile-time String constant names to their initializers.
// Keys are the bare field name and the Type.NAME form.
type Constants map[string]annot.Value

// Resolver turns annotation sites into rules. It is bound to one unit.
type Resolver struct {
	consts Constants
	rep    diag.Reporter
}

func NewResolver(consts Constants, r diag.Reporter) *Resolver {
	if r == nil {
		r = diag.NopReporter{}
	}
	return &Resolver{consts: consts, rep: r}
}

// Resolve interprets site as a mapping rule. ok is false for annotations of no
// dialect and for malformed sites.
func (r *Resolver) Resolve(site annot.Site, scope Scope) (Rule, bool) {
	if site.Malformed {
		return Rule{}, false
	}
	dialect, verb := DialectOf(site.SimpleName())
	if dialect == DialectNone {
		return Rule{}, false
	}

	rule := Rule{
		Dialect:    dialect,
		Scope:      scope,
		Annotation: site.Name,
		Span:       site.Span,
	}
	switch dialect {
	case DialectShorthand:
		rule.Methods = route.Verbs(verb)
	case DialectGeneric:
		rule.Methods = route.AnyVerb()
	}

	sawPath, dropped := false, 0
	for _, arg := range site.Args {
		switch {
		case pathKeys[dialect][arg.Key]:
			sawPath = true
			var n int
			rule.Paths, n = r.appendPaths(rule.Paths, arg)
			dropped += n
		case dialect == DialectGeneric && arg.Key == "method":
			rule.Methods = r.methods(arg)
		case ignoredKeys[dialect][arg.Key]:
			rule.Ignored = append(rule.Ignored, arg.Key)
		default:
			rule.Ignored = append(rule.Ignored, arg.Key)
			diag.ReportInfo(r.rep, diag.ResUnknownAttribute, arg.Span,
				fmt.Sprintf("unknown attribute %q on @%s ignored", arg.Key, site.SimpleName())).Emit()
		}
	}

	if sawPath && len(rule.Paths) == 0 {
		if dropped > 0 {
			// every path value was skipped: no mapping at all
			return Rule{}, false
		}
		diag.ReportInfo(r.rep, diag.ResEmptyPath, site.Span,
			fmt.Sprintf("@%s declares an empty path list", site.SimpleName())).Emit()
	}
	// @GetMapping, @RequestMapping(method = GET) → "" (enclosing prefix)
	if len(rule.Paths) == 0 && dialect != DialectServlet {
		rule.Paths = []string{""}
	}
	return rule, true
}

// appendPaths adds the folded values of arg and returns how many were skipped.
func (r *Resolver) appendPaths(paths []string, arg annot.Arg) ([]string, int) {
	dropped := 0
	for _, v := range arg.Value.Flatten() {
		s, ok := r.fold(v, nil)
		if !ok {
			dropped++
			continue
		}
		if !containsNFC(paths, s) {
			paths = append(paths, s)
		}
	}
	return paths, dropped
}

func (r *Resolver) methods(arg annot.Arg) route.VerbSet {
	elems := arg.Value.Flatten()
	if len(elems) == 0 {
		return route.AnyVerb()
	}
	var set route.VerbSet
	for _, v := range elems {
		name := v.Name
		if v.Kind != annot.ValName {
			name = v.Text
		}
		verb, ok := route.ParseVerb(name)
		if !ok {
			diag.ReportWarning(r.rep, diag.ResUnknownHTTPMethod, v.Span,
				fmt.Sprintf("unknown HTTP method %q ignored", name)).Emit()
			continue
		}
		set = set.With(verb)
	}
	return set
}

// fold evaluates a string-valued expression. seen guards against cyclic constants.
func (r *Resolver) fold(v annot.Value, seen map[string]bool) (string, bool) {
	switch v.Kind {
	case annot.ValString:
		return v.Str, true
	case annot.ValConcat:
		var b strings.Builder
		for _, part := range v.Elems {
			s, ok := r.fold(part, seen)
			if !ok {
				return "", false
			}
			b.WriteString(s)
		}
		return b.String(), true
	case annot.ValName:
		init, key, ok := r.lookup(v.Name)
		if !ok || seen[key] {
			diag.ReportWarning(r.rep, diag.ResUnresolvedConst, v.Span,
				fmt.Sprintf("cannot resolve constant %s; value skipped", v.Name)).Emit()
			return "", false
		}
		if seen == nil {
			seen = make(map[string]bool, 4)
		}
		seen[key] = true
		defer delete(seen, key)
		return r.fold(init, seen)
	case annot.ValEmpty:
		return "", false
	}
	diag.ReportWarning(r.rep, diag.ResUnsupportedValue, v.Span,
		fmt.Sprintf("unsupported %s value %s skipped", v.Kind, v.Text)).Emit()
	return "", false
}

// lookup tries the full name, then Type.NAME, then the bare NAME.
func (r *Resolver) lookup(name string) (annot.Value, string, bool) {
	if v, ok := r.consts[name]; ok {
		return v, name, true
	}
	parts := strings.Split(name, ".")
	for i := 1; i < len(parts); i++ {
		key := strings.Join(parts[i:], ".")
		if v, ok := r.consts[key]; ok {
			return v, key, true
		}
	}
	return annot.Value{}, "", false
}

// containsNFC compares canonically: "cafe\u0301" and "caf\u00e9" are the
// same template. The stored text is never rewritten.
func containsNFC(list []string, s string) bool {
	key := norm.NFC.String(s)
	for _, x := range list {
		if norm.NFC.String(x) == key {
			return true
		}
	}
	return false
}
