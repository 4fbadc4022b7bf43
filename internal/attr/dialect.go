package attr

import (
	"routescan/internal/route"
)

// Dialect is the mapping annotation family a site belongs to.
type Dialect uint8

const (
	DialectNone Dialect = iota
	// DialectServlet: @WebServlet; verbs come from dispatch overrides.
	DialectServlet
	// DialectShorthand: @GetMapping and friends, one fixed verb.
	DialectShorthand
	// DialectGeneric: @RequestMapping, verbs from the method attribute or ANY.
	DialectGeneric
)

func (d Dialect) String() string {
	switch d {
	case DialectServlet:
		return "servlet"
	case DialectShorthand:
		return "spring-shorthand"
	case DialectGeneric:
		return "spring-generic"
	}
	return "none"
}

var shorthandVerbs = map[string]route.Verb{
	"GetMapping":    route.GET,
	"PostMapping":   route.POST,
	"PutMapping":    route.PUT,
	"DeleteMapping": route.DELETE,
	"PatchMapping":  route.PATCH,
}

// DialectOf classifies an annotation by its simple name. The verb is set for
// shorthand annotations only.
func DialectOf(simpleName string) (Dialect, route.Verb) {
	switch simpleName {
	case "WebServlet":
		return DialectServlet, route.VerbUnknown
	case "RequestMapping":
		return DialectGeneric, route.VerbUnknown
	}
	if v, ok := shorthandVerbs[simpleName]; ok {
		return DialectShorthand, v
	}
	return DialectNone, route.VerbUnknown
}

// pathKeys are the attribute synonyms contributing path templates.
var pathKeys = map[Dialect]map[string]bool{
	DialectServlet:   {"": true, "value": true, "urlPatterns": true},
	DialectShorthand: {"": true, "value": true, "path": true},
	DialectGeneric:   {"": true, "value": true, "path": true},
}

// ignoredKeys are understood but carry nothing for routing.
var ignoredKeys = map[Dialect]map[string]bool{
	DialectServlet: {
		"name": true, "initParams": true, "loadOnStartup": true, "asyncSupported": true,
		"description": true, "displayName": true, "largeIcon": true, "smallIcon": true,
	},
	DialectShorthand: {"name": true, "params": true, "headers": true, "consumes": true, "produces": true},
	DialectGeneric:   {"name": true, "params": true, "headers": true, "consumes": true, "produces": true},
}
