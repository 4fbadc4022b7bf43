package extract

import (
	"fmt"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"routescan/internal/descriptor"
	"routescan/internal/diag"
	"routescan/internal/route"
	"routescan/internal/source"
)

func loadUnit(t *testing.T, pkg string, parts ...string) source.Unit {
	t.Helper()
	path := filepath.Join(append([]string{"testdata"}, parts...)...)
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), ".java")
	return source.NewUnit(pkg+"."+name, fs.Get(id))
}

func virtualUnit(name, text string) source.Unit {
	fs := source.NewFileSet()
	return source.NewUnit(name, fs.Get(fs.AddVirtual(name+".java", []byte(text))))
}

func fixtureTable(t *testing.T) *descriptor.Table {
	t.Helper()
	table, err := descriptor.LoadWebXML(filepath.Join("testdata", "servlet", "WEB-INF", "web.xml"))
	if err != nil {
		t.Fatalf("LoadWebXML: %v", err)
	}
	return table
}

// routes renders endpoints as "METHOD path handler ORIGIN".
func routes(eps []route.Endpoint) []string {
	out := make([]string, len(eps))
	for i, e := range eps {
		out[i] = fmt.Sprintf("%s %s %s %s", e.HTTPMethod, e.PathTemplate, e.HandlerName, e.Origin)
	}
	return out
}

func assertRoutes(t *testing.T, got []route.Endpoint, want []string) {
	t.Helper()
	if g := routes(got); !reflect.DeepEqual(g, want) {
		t.Fatalf("endpoints mismatch\n got: %s\nwant: %s", strings.Join(g, "\n      "), strings.Join(want, "\n      "))
	}
}

func TestCommentedController(t *testing.T) {
	res := Scan(loadUnit(t, "com.example", "spring", "CommentedController.java"), nil)

	assertRoutes(t, res.Endpoints, []string{
		"GET /api/v1/comments/active getActive ANNOTATION",
		"POST /api/v1/comments/users createUser ANNOTATION",
		"PATCH /api/v1/comments/active-after-comment getActiveAfterComment ANNOTATION",
	})
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", describe(res.Diagnostics))
	}

	active, inactive := 0, 0
	for _, s := range res.Sites {
		if s.Active {
			active++
		} else {
			inactive++
		}
	}
	if active != 5 || inactive != 6 {
		t.Errorf("expected 5 active and 6 inactive sites, got %d and %d", active, inactive)
	}
	for i := 1; i < len(res.Sites); i++ {
		if res.Sites[i-1].Span.Start > res.Sites[i].Span.Start {
			t.Fatalf("sites out of source order at %d", i)
		}
	}
}

func TestMultilineController(t *testing.T) {
	res := Scan(loadUnit(t, "com.example", "spring", "MultilineController.java"), nil)

	assertRoutes(t, res.Endpoints, []string{
		"GET /api/multiline/users/{id} getUser ANNOTATION",
		"POST /api/multiline/users createUser ANNOTATION",
		"PUT /api/multiline/users/{id} updateUser ANNOTATION",
		"DELETE /api/multiline/users/{id} deleteUser ANNOTATION",
		"PATCH /api/multiline/users/{id}/status updateUserStatus ANNOTATION",
		"GET /api/multiline/users/{id}/posts getUserPosts ANNOTATION",
		"GET /api/multiline/users/{id}/profile handleUserProfile ANNOTATION",
		"POST /api/multiline/users/{id}/profile handleUserProfile ANNOTATION",
		"POST /api/multiline/users/{userId}/posts/{postId}/comments createComment ANNOTATION",
	})
	for _, e := range res.Endpoints {
		if e.DeclaringType != "com.example.MultilineController" {
			t.Errorf("unexpected declaring type %q", e.DeclaringType)
		}
	}
	if res.HasErrors() {
		t.Fatalf("unexpected errors:\n%s", describe(res.Diagnostics))
	}
}

func TestTestControllerTemplatedPrefix(t *testing.T) {
	res := Scan(loadUnit(t, "com.example", "spring", "TestController.java"), nil)
	got := routes(res.Endpoints)
	if len(got) != 13 {
		t.Fatalf("expected 13 endpoints, got %d:\n%s", len(got), strings.Join(got, "\n"))
	}
	if got[0] != "GET /api/v1/{userId}/orders main ANNOTATION" {
		t.Errorf("bare @GetMapping must map to the class prefix, got %q", got[0])
	}
	if got[12] != "GET /api/v1/{userId}/orders/status getOrderStatus ANNOTATION" {
		t.Errorf("unexpected last endpoint %q", got[12])
	}
}

func TestSpringFixtureCounts(t *testing.T) {
	tests := []struct {
		file  string
		count int
		first string
	}{
		{"ApiController.java", 17, "GET /api/v1 getApiInfo ANNOTATION"},
		{"AuthController.java", 19, "POST /auth/login login ANNOTATION"},
		{"OrderController.java", 26, "GET /orders getAllOrders ANNOTATION"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			res := Scan(loadUnit(t, "com.example", "spring", tt.file), nil)
			got := routes(res.Endpoints)
			if len(got) != tt.count {
				t.Fatalf("expected %d endpoints, got %d:\n%s", tt.count, len(got), strings.Join(got, "\n"))
			}
			if got[0] != tt.first {
				t.Errorf("first endpoint = %q, want %q", got[0], tt.first)
			}
			if res.HasErrors() {
				t.Errorf("unexpected errors:\n%s", describe(res.Diagnostics))
			}
		})
	}
}

func TestAnnotatedServlets(t *testing.T) {
	tests := []struct {
		file string
		want []string
	}{
		{"ApiServlet.java", []string{
			"GET /api/v1/* doGet DISPATCH_CONVENTION",
			"GET /api/health doGet DISPATCH_CONVENTION",
			"POST /api/v1/* doPost DISPATCH_CONVENTION",
			"POST /api/health doPost DISPATCH_CONVENTION",
			"PUT /api/v1/* doPut DISPATCH_CONVENTION",
			"PUT /api/health doPut DISPATCH_CONVENTION",
			"DELETE /api/v1/* doDelete DISPATCH_CONVENTION",
			"DELETE /api/health doDelete DISPATCH_CONVENTION",
			"PATCH /api/v1/* doPatch DISPATCH_CONVENTION",
			"PATCH /api/health doPatch DISPATCH_CONVENTION",
		}},
		{"ProductServlet.java", []string{
			"GET /products doGet DISPATCH_CONVENTION",
			"POST /products doPost DISPATCH_CONVENTION",
		}},
		{"UserServlet.java", []string{
			"GET /users doGet DISPATCH_CONVENTION",
			"GET /users/* doGet DISPATCH_CONVENTION",
			"POST /users doPost DISPATCH_CONVENTION",
			"POST /users/* doPost DISPATCH_CONVENTION",
			"PUT /users doPut DISPATCH_CONVENTION",
			"PUT /users/* doPut DISPATCH_CONVENTION",
			"DELETE /users doDelete DISPATCH_CONVENTION",
			"DELETE /users/* doDelete DISPATCH_CONVENTION",
		}},
		{"MultilineServlet.java", []string{
			"GET /users/* doGet DISPATCH_CONVENTION",
			"POST /users/* doPost DISPATCH_CONVENTION",
			"PUT /users/* doPut DISPATCH_CONVENTION",
			"DELETE /users/* doDelete DISPATCH_CONVENTION",
			"PATCH /users/* doPatch DISPATCH_CONVENTION",
			"GET /api/v1/posts/* doGet DISPATCH_CONVENTION",
			"GET /api/v1/comments/* doGet DISPATCH_CONVENTION",
			"POST /api/v1/posts/* doPost DISPATCH_CONVENTION",
			"POST /api/v1/comments/* doPost DISPATCH_CONVENTION",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			res := Scan(loadUnit(t, "com.example.servlet", "servlet", tt.file), fixtureTable(t))
			assertRoutes(t, res.Endpoints, tt.want)
			if res.HasErrors() {
				t.Errorf("unexpected errors:\n%s", describe(res.Diagnostics))
			}
		})
	}
}

func TestMultilineServletDeclaringTypes(t *testing.T) {
	res := Scan(loadUnit(t, "com.example", "servlet", "MultilineServlet.java"), nil)
	want := []string{"com.example.ComplexMultilineServlet", "com.example.MultilineServlet"}
	var got []string
	for _, e := range res.Endpoints {
		if !slices.Contains(got, e.DeclaringType) {
			got = append(got, e.DeclaringType)
		}
	}
	slices.Sort(got)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("declaring types = %v, want %v", got, want)
	}
}

func TestDescriptorServlets(t *testing.T) {
	table := fixtureTable(t)

	res := Scan(loadUnit(t, "com.example.servlet", "servlet", "LegacyUserServlet.java"), table)
	assertRoutes(t, res.Endpoints, []string{
		"GET /legacy/users doGet DESCRIPTOR",
		"POST /legacy/users doPost DESCRIPTOR",
	})
	if res.Endpoints[0].DeclaringType != "com.example.servlet.LegacyUserServlet" {
		t.Errorf("unexpected declaring type %q", res.Endpoints[0].DeclaringType)
	}

	res = Scan(loadUnit(t, "com.example.servlet", "servlet", "AdminServlet.java"), table)
	assertRoutes(t, res.Endpoints, []string{
		"GET /admin/* doGet DESCRIPTOR",
		"POST /admin/* doPost DESCRIPTOR",
		"PUT /admin/* doPut DESCRIPTOR",
		"DELETE /admin/* doDelete DESCRIPTOR",
	})
}

func TestUnmappedServlet(t *testing.T) {
	res := Scan(loadUnit(t, "com.example.servlet", "servlet", "LegacyUserServlet.java"), nil)
	if len(res.Endpoints) != 0 {
		t.Fatalf("expected no endpoints, got %v", routes(res.Endpoints))
	}
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got:\n%s", describe(res.Diagnostics))
	}
	d := res.Diagnostics[0]
	if d.Code != diag.ClsUnmappedClass || d.Severity != diag.SevInfo {
		t.Fatalf("expected CLS4001 info, got %s %s", d.Severity, d.Code.ID())
	}
}

func TestConflictingSourceAnnotationWins(t *testing.T) {
	table := descriptor.NewTable()
	table.Add("products", "com.example.servlet.ProductServlet", "/catalog")

	res := Scan(loadUnit(t, "com.example.servlet", "servlet", "ProductServlet.java"), table)
	assertRoutes(t, res.Endpoints, []string{
		"GET /products doGet DISPATCH_CONVENTION",
		"POST /products doPost DISPATCH_CONVENTION",
	})
	if n := countCode(res.Diagnostics, diag.ClsConflictingSource); n != 1 {
		t.Fatalf("expected one CLS4002, got %d", n)
	}

	same := descriptor.NewTable()
	same.Add("products", "com.example.servlet.ProductServlet", "/products")
	res = Scan(loadUnit(t, "com.example.servlet", "servlet", "ProductServlet.java"), same)
	if n := countCode(res.Diagnostics, diag.ClsConflictingSource); n != 0 {
		t.Fatalf("equal path sets must not conflict, got %d", n)
	}
}

func TestMultiModuleUnits(t *testing.T) {
	order := Scan(loadUnit(t, "com.example.order", "multimodule", "OrderController.java"), nil)
	user := Scan(loadUnit(t, "com.example.user", "multimodule", "UserController.java"), nil)
	pojo := Scan(loadUnit(t, "com.example.order", "multimodule", "Order.java"), nil)

	if len(order.Endpoints) != 7 || len(user.Endpoints) != 6 {
		t.Fatalf("expected 7 and 6 endpoints, got %d and %d", len(order.Endpoints), len(user.Endpoints))
	}
	if len(pojo.Endpoints) != 0 || len(pojo.Diagnostics) != 0 {
		t.Fatalf("plain class must yield nothing, got %v %v", pojo.Endpoints, pojo.Diagnostics)
	}
	if got := user.Endpoints[5]; got.HTTPMethod != "GET" || got.PathTemplate != "/api/users/search" {
		t.Errorf("unexpected last user endpoint %v", got)
	}
}

func TestScanSnippets(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		want  []string
		codes []diag.Code
	}{
		{
			name: "constant folding",
			src: `package a;
@RestController
@RequestMapping(Paths.BASE + "/items")
class Items {
    static final String ID = "/{id}";
    @GetMapping(ID) void get() {}
    @PostMapping({"", ID + "/copy"}) void create() {}
}
interface Paths { String BASE = "/api"; }`,
			want: []string{
				"GET /api/items/{id} get ANNOTATION",
				"POST /api/items create ANNOTATION",
				"POST /api/items/{id}/copy create ANNOTATION",
			},
		},
		{
			name: "unresolved constant",
			src: `@RestController class C {
    @GetMapping(Elsewhere.PATH) void a() {}
    @GetMapping("/b") void b() {}
}`,
			want:  []string{"GET /b b ANNOTATION"},
			codes: []diag.Code{diag.ResUnresolvedConst},
		},
		{
			name: "request mapping without method is ANY",
			src: `@RequestMapping("/x") class C {
    @RequestMapping("/y") void any() {}
    @RequestMapping(value = "/z", method = {}) void empty() {}
}`,
			want: []string{"ANY /x/y any ANNOTATION", "ANY /x/z empty ANNOTATION"},
		},
		{
			name: "class verbs combine with method verbs",
			src: `@RequestMapping(path = "/v", method = RequestMethod.POST) class C {
    @RequestMapping("/a") void a() {}
    @GetMapping("/b") void b() {}
}`,
			want: []string{"POST /v/a a ANNOTATION", "GET /v/b b ANNOTATION", "POST /v/b b ANNOTATION"},
		},
		{
			name: "unknown http method",
			src: `class C {
    @RequestMapping(value = "/a", method = {RequestMethod.GET, RequestMethod.FETCH}) void a() {}
}`,
			want:  []string{"GET /a a ANNOTATION"},
			codes: []diag.Code{diag.ResUnknownHTTPMethod},
		},
		{
			name: "nested class does not inherit prefix",
			src: `@RequestMapping("/outer") class Outer {
    @GetMapping("/a") void a() {}
    static class Inner {
        @GetMapping("/b") void b() {}
    }
    @GetMapping("/c") void c() {}
}`,
			want: []string{"GET /outer/a a ANNOTATION", "GET /outer/c c ANNOTATION", "GET /b b ANNOTATION"},
		},
		{
			name: "malformed annotation",
			src: `@RequestMapping("/m") class C {
    @GetMapping("/broken"
    void broken() {}
    @GetMapping("/ok") void ok() {}
}`,
			want:  []string{"GET /m/ok ok ANNOTATION"},
			codes: []diag.Code{diag.AnnStructuralParse},
		},
		{
			name: "unknown attribute",
			src: `class C {
    @GetMapping(value = "/a", produces = "text/plain", flavour = "x") void a() {}
}`,
			want:  []string{"GET /a a ANNOTATION"},
			codes: []diag.Code{diag.ResUnknownAttribute},
		},
		{
			name: "unterminated block comment hides the rest",
			src: `@RequestMapping("/x") class C {
    @GetMapping("/a") void a() {}
    /* @GetMapping("/b") void b() {}
}`,
			want:  []string{"GET /x/a a ANNOTATION"},
			codes: []diag.Code{diag.LexUnterminatedBlockComment, diag.ClsUnclosedBody},
		},
		{
			name: "class prefixes are the outer loop",
			src: `@RequestMapping({"/a", "/b/"}) class C {
    @GetMapping("/x") void x() {}
    @PostMapping("/y//z") void y() {}
}`,
			want: []string{
				"GET /a/x x ANNOTATION",
				"POST /a/y//z y ANNOTATION",
				"GET /b/x x ANNOTATION",
				"POST /b/y//z y ANNOTATION",
			},
		},
		{
			name: "field missing semicolon keeps later members",
			src: `@RequestMapping("/r") class R {
    private String name = "x"
    @GetMapping("/lost") public String lost() { return name; }
    @PostMapping("/kept") public String kept() { return name; }
}`,
			want:  []string{"GET /r/lost lost ANNOTATION", "POST /r/kept kept ANNOTATION"},
			codes: []diag.Code{diag.ClsUnterminatedField},
		},
		{
			name: "unterminated string in field initializer",
			src: `@RequestMapping("/r") class R {
    String s = "unterminated;
    @GetMapping("/after") void after() {}
}`,
			want:  []string{"GET /r/after after ANNOTATION"},
			codes: []diag.Code{diag.LexUnterminatedString, diag.ClsUnterminatedField},
		},
		{
			name: "class literal and anonymous class in initializers",
			src: `@RequestMapping("/r") class R {
    private final Class<?> type = R.class;
    private final Runnable task = new Runnable() {
        @GetMapping("/inner") public void run() {}
    };
    @GetMapping("/outer") void outer() {}
}`,
			want: []string{"GET /r/outer outer ANNOTATION"},
		},
		{
			name: "servlet without dispatch methods",
			src: `@WebServlet("/idle") public class Idle extends HttpServlet {
    public void init() {}
}`,
			codes: []diag.Code{diag.ClsNoDispatchMethods},
		},
		{
			name: "interface mapping",
			src: `@RequestMapping("/api") public interface Client {
    @GetMapping("/ping") String ping();
}`,
			want: []string{"GET /api/ping ping ANNOTATION"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Scan(virtualUnit("a.C", tt.src), nil)
			assertRoutes(t, res.Endpoints, nonNil(tt.want))
			var codes []diag.Code
			for _, d := range res.Diagnostics {
				codes = append(codes, d.Code)
			}
			if !sameCodes(codes, tt.codes) {
				t.Fatalf("diagnostic codes = %v, want %v\n%s", codes, tt.codes,
					describe(res.Diagnostics))
			}
		})
	}
}

func TestScanIsDeterministic(t *testing.T) {
	unit := loadUnit(t, "com.example", "servlet", "MultilineServlet.java")
	table := fixtureTable(t)
	first := Scan(unit, table)
	for range 5 {
		again := Scan(unit, table)
		if !reflect.DeepEqual(first.Endpoints, again.Endpoints) ||
			!reflect.DeepEqual(first.Diagnostics, again.Diagnostics) {
			t.Fatal("scan results differ between runs")
		}
	}
}

func TestMaxDiagnostics(t *testing.T) {
	src := "class C {\n" + strings.Repeat("@GetMapping(value = \"/a\", bogus = 1) void a() {}\n", 10) + "}"
	res := ScanWith(virtualUnit("a.C", src), nil, Options{MaxDiagnostics: 3})
	if len(res.Diagnostics) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(res.Diagnostics))
	}
	if len(res.Endpoints) != 10 {
		t.Fatalf("capping diagnostics must not drop endpoints, got %d", len(res.Endpoints))
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func countCode(ds []diag.Diagnostic, code diag.Code) int {
	n := 0
	for _, d := range ds {
		if d.Code == code {
			n++
		}
	}
	return n
}

func sameCodes(got, want []diag.Code) bool {
	if len(got) != len(want) {
		return false
	}
	seen := make(map[diag.Code]int)
	for _, c := range got {
		seen[c]++
	}
	for _, c := range want {
		seen[c]--
	}
	for _, n := range seen {
		if n != 0 {
			return false
		}
	}
	return true
}

func describe(ds []diag.Diagnostic) string {
	var b strings.Builder
	for _, d := range ds {
		fmt.Fprintf(&b, "%s %s %s\n", d.Severity, d.Code.ID(), d.Message)
	}
	return b.String()
}
