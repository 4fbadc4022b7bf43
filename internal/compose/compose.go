// Package compose merges class and method level rules into endpoints.
//
// Output order is the cross product in declaration order: class prefixes,
// then methods, then method paths, then verbs. Nothing is deduplicated
// across annotations.
package compose

import (
	"strings"

	"routescan/internal/attr"
	"routescan/internal/route"
)

// JoinPath concatenates prefix and path with exactly one '/' at the seam.
// Slashes inside either part are kept as written. An empty or '/'-only prefix
// adds no segment. The result always starts with '/'.
func JoinPath(prefix, path string) string {
	head := strings.TrimRight(prefix, "/")
	if path == "" {
		if head == "" {
			return "/"
		}
		return leadingSlash(prefix)
	}
	tail := strings.TrimLeft(path, "/")
	if head == "" {
		return "/" + tail
	}
	return leadingSlash(head) + "/" + tail
}

func leadingSlash(s string) string {
	if strings.HasPrefix(s, "/") {
		return s
	}
	return "/" + s
}

// ClassContext is what a type contributes to its method mappings.
type ClassContext struct {
	Prefixes []string
	Methods  route.VerbSet
}

// RootContext is the context of a type without a class-level mapping.
func RootContext() ClassContext {
	return ClassContext{Prefixes: []string{""}, Methods: route.AnyVerb()}
}

// ContextOf builds the class context from a class-level rule; nil means none.
func ContextOf(rule *attr.Rule) ClassContext {
	if rule == nil {
		return RootContext()
	}
	ctx := ClassContext{Prefixes: rule.Paths, Methods: rule.Methods}
	if len(ctx.Prefixes) == 0 {
		ctx.Prefixes = []string{""}
	}
	if ctx.Methods.IsEmpty() {
		ctx.Methods = route.AnyVerb()
	}
	return ctx
}

// CombineVerbs narrows method-level verbs by class-level ones: ANY on either
// side yields the other; otherwise the union in method-then-class order.
func CombineVerbs(class, method route.VerbSet) route.VerbSet {
	switch {
	case class.IsAny():
		return method
	case method.IsAny():
		return class
	}
	out := method
	for _, v := range class.List() {
		out = out.With(v)
	}
	return out
}

// Mapping expands one method-level rule against the class context.
func Mapping(ctx ClassContext, rule attr.Rule, declaringType, handler string) []route.Endpoint {
	methods := CombineVerbs(ctx.Methods, rule.Methods).Methods()
	out := make([]route.Endpoint, 0, len(ctx.Prefixes)*len(rule.Paths)*len(methods))
	for _, prefix := range ctx.Prefixes {
		for _, path := range rule.Paths {
			full := JoinPath(prefix, path)
			for _, m := range methods {
				out = append(out, route.Endpoint{
					HTTPMethod:    m,
					PathTemplate:  full,
					DeclaringType: declaringType,
					HandlerName:   handler,
					Origin:        route.OriginAnnotation,
				})
			}
		}
	}
	return out
}

// MethodRule is a resolved method-level mapping and the method carrying it.
type MethodRule struct {
	Handler string
	Rule    attr.Rule
}

// Controller expands the method rules of one type. Class prefixes form the
// outer loop, so every method is listed under the first prefix before any
// is listed under the second.
func Controller(ctx ClassContext, rules []MethodRule, declaringType string) []route.Endpoint {
	var out []route.Endpoint
	for _, prefix := range ctx.Prefixes {
		one := ClassContext{Prefixes: []string{prefix}, Methods: ctx.Methods}
		for _, mr := range rules {
			out = append(out, Mapping(one, mr.Rule, declaringType, mr.Handler)...)
		}
	}
	return out
}

// Dispatch pairs servlet dispatch overrides with path patterns. Patterns are
// used verbatim: servlet mappings are not composed.
func Dispatch(paths, handlers []string, declaringType string, origin route.Origin) []route.Endpoint {
	out := make([]route.Endpoint, 0, len(paths)*len(handlers))
	for _, h := range handlers {
		verb, ok := route.DispatchVerb(h)
		if !ok {
			continue
		}
		for _, p := range paths {
			out = append(out, route.Endpoint{
				HTTPMethod:    verb.String(),
				PathTemplate:  p,
				DeclaringType: declaringType,
				HandlerName:   h,
				Origin:        origin,
			})
		}
	}
	return out
}
