package extract

import (
	"fmt"
	"slices"

	"routescan/internal/annot"
	"routescan/internal/attr"
	"routescan/internal/compose"
	"routescan/internal/descriptor"
	"routescan/internal/diag"
	"routescan/internal/javaclass"
	"routescan/internal/lexer"
	"routescan/internal/route"
	"routescan/internal/source"
)

// Options tune a scan. The zero value is usable.
type Options struct {
	// MaxDiagnostics caps diagnostics per unit; 0 means unlimited.
	MaxDiagnostics int
}

// Result is everything one unit yields.
type Result struct {
	Unit        string
	Endpoints   []route.Endpoint
	Diagnostics []diag.Diagnostic
	// Sites lists every annotation site, active and inactive, in source order.
	Sites []annot.Site
	Types int
}

// HasErrors reports an error-severity diagnostic.
func (r Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity >= diag.SevError {
			return true
		}
	}
	return false
}

// Scan extracts the endpoints of unit. table may be nil.
func Scan(unit source.Unit, table *descriptor.Table) Result {
	return ScanWith(unit, table, Options{})
}

func ScanWith(unit source.Unit, table *descriptor.Table, opts Options) Result {
	res := Result{Unit: unit.Name}
	if unit.File == nil {
		return res
	}
	bag := diag.NewBag(opts.MaxDiagnostics)
	rep := diag.BagReporter{Bag: bag}

	toks, cls := lexer.Classify(unit.File, lexer.Options{Reporter: rep})
	res.Sites = annot.Scan(unit.File, toks, cls, rep)
	outline := javaclass.Outline(unit.File, toks, rep)
	res.Types = len(outline.Types)

	pkg := outline.Package
	if pkg == "" {
		pkg = unit.Package()
	}
	s := &scanner{
		pkg:     pkg,
		table:   table,
		rep:     rep,
		resolve: attr.NewResolver(attr.Constants(outline.Constants), rep),
	}
	for _, t := range outline.Types {
		res.Endpoints = append(res.Endpoints, s.typeEndpoints(t)...)
	}
	res.Diagnostics = bag.Sorted()
	return res
}

type scanner struct {
	pkg     string
	table   *descriptor.Table
	rep     diag.Reporter
	resolve *attr.Resolver
}

func (s *scanner) typeEndpoints(t javaclass.TypeDecl) []route.Endpoint {
	declType := t.QualifiedName(s.pkg)
	if site, ok := t.Annotation(inDialect(attr.DialectServlet)); ok {
		return s.annotatedServlet(t, site, declType)
	}
	if t.IsServletLike() {
		return s.descriptorServlet(t, declType)
	}
	var mapping *annot.Site
	if site, ok := t.Annotation(inDialect(attr.DialectGeneric)); ok {
		mapping = &site
	}
	return s.controller(t, mapping, declType)
}

// inDialect matches annotation names of the given dialects.
func inDialect(dialects ...attr.Dialect) func(string) bool {
	return func(simple string) bool {
		d, _ := attr.DialectOf(simple)
		return slices.Contains(dialects, d)
	}
}

// annotatedServlet pairs @WebServlet patterns with the dispatch overrides.
func (s *scanner) annotatedServlet(t javaclass.TypeDecl, site annot.Site, declType string) []route.Endpoint {
	rule, ok := s.resolve.Resolve(site, attr.ScopeClass)
	if !ok {
		return nil
	}
	handlers := s.handlers(t)
	desc, mapped := s.table.Lookup(declType)
	if len(rule.Paths) == 0 {
		if mapped {
			return compose.Dispatch(desc, handlers, declType, route.OriginDescriptor)
		}
		return nil
	}
	if mapped && !samePaths(rule.Paths, desc) {
		diag.ReportWarning(s.rep, diag.ClsConflictingSource, site.Span,
			fmt.Sprintf("%s: @%s patterns %v differ from descriptor patterns %v; annotation wins",
				t.Name, site.SimpleName(), rule.Paths, desc)).Emit()
	}
	return compose.Dispatch(rule.Paths, handlers, declType, route.OriginDispatchConvention)
}

func (s *scanner) descriptorServlet(t javaclass.TypeDecl, declType string) []route.Endpoint {
	paths, ok := s.table.Lookup(declType)
	if !ok {
		diag.ReportInfo(s.rep, diag.ClsUnmappedClass, t.Span,
			fmt.Sprintf("servlet class %s has no @WebServlet and no descriptor entry", declType)).Emit()
		return nil
	}
	return compose.Dispatch(paths, s.handlers(t), declType, route.OriginDescriptor)
}

func (s *scanner) handlers(t javaclass.TypeDecl) []string {
	handlers := t.DispatchOverrides()
	if len(handlers) == 0 {
		diag.ReportInfo(s.rep, diag.ClsNoDispatchMethods, t.Span,
			fmt.Sprintf("servlet class %s declares no dispatch methods", t.Name)).Emit()
	}
	return handlers
}

// controller composes method-level mappings with the class-level one.
func (s *scanner) controller(t javaclass.TypeDecl, classSite *annot.Site, declType string) []route.Endpoint {
	ctx := compose.RootContext()
	if classSite != nil {
		if rule, ok := s.resolve.Resolve(*classSite, attr.ScopeClass); ok {
			ctx = compose.ContextOf(&rule)
		}
	}
	var rules []compose.MethodRule
	isMapping := inDialect(attr.DialectShorthand, attr.DialectGeneric)
	for _, m := range t.Methods {
		for _, site := range javaclass.ActiveSites(m.Annotations, isMapping) {
			rule, ok := s.resolve.Resolve(site, attr.ScopeMethod)
			if !ok {
				continue
			}
			rules = append(rules, compose.MethodRule{Handler: m.Name, Rule: rule})
		}
	}
	return compose.Controller(ctx, rules, declType)
}

func samePaths(a, b []string) bool {
	x := slices.Clone(a)
	y := slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(slices.Compact(x), slices.Compact(y))
}
