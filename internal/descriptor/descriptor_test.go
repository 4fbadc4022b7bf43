package descriptor

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadWebXML(t *testing.T) {
	table, err := LoadWebXML(filepath.Join("testdata", "web.xml"), filepath.Join("testdata", "fragment.xml"))
	if err != nil {
		t.Fatalf("LoadWebXML: %v", err)
	}

	tests := []struct {
		class  string
		want   []string
		wantOK bool
	}{
		{"com.example.web.ReportServlet", []string{"/reports", "/reports/*", "/r/*"}, true},
		{"com.example.web.HealthServlet", []string{"/health"}, true},
		{"com.example.web.Missing", nil, false},
		{"", nil, false},
	}
	for _, tt := range tests {
		got, ok := table.Lookup(tt.class)
		if ok != tt.wantOK || !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Lookup(%q) = %v, %v; want %v, %v", tt.class, got, ok, tt.want, tt.wantOK)
		}
	}

	if got := table.Names(); !reflect.DeepEqual(got, []string{"reports", "reportsAlias", "jsp", "health"}) {
		t.Errorf("Names() = %v", got)
	}
	jsp, ok := table.Entry("jsp")
	if !ok || jsp.ClassName != "" || !reflect.DeepEqual(jsp.URLPatterns, []string{"*.jsp"}) {
		t.Errorf("unexpected jsp entry %+v", jsp)
	}
}

func TestLoadWebXMLErrors(t *testing.T) {
	if _, err := LoadWebXML(filepath.Join("testdata", "absent.xml")); err == nil {
		t.Fatal("expected error for missing descriptor")
	}
	if err := ParseWebXML(strings.NewReader("<web-app><servlet>"), NewTable()); err == nil {
		t.Fatal("expected error for truncated descriptor")
	}
}

func TestTableAddRebindsClass(t *testing.T) {
	table := NewTable()
	table.Add("users", "a.OldServlet", "/users")
	table.Add("users", "a.NewServlet")

	if _, ok := table.Lookup("a.OldServlet"); ok {
		t.Error("old class must be unbound")
	}
	if got, ok := table.Lookup("a.NewServlet"); !ok || !reflect.DeepEqual(got, []string{"/users"}) {
		t.Errorf("Lookup(a.NewServlet) = %v, %v", got, ok)
	}
}

func TestNilTable(t *testing.T) {
	var table *Table
	if _, ok := table.Lookup("x"); ok {
		t.Error("nil table must be empty")
	}
	if table.Len() != 0 {
		t.Error("nil table Len must be 0")
	}
	if NewTable().Digest() != table.Digest() {
		t.Error("empty tables must share a digest")
	}
}

func TestDigestIgnoresServletNames(t *testing.T) {
	a := NewTable()
	a.Add("one", "x.S", "/a")
	b := NewTable()
	b.Add("two", "x.S", "/a")
	c := NewTable()
	c.Add("one", "x.S", "/b")

	if a.Digest() != b.Digest() {
		t.Error("digest must depend on class bindings only")
	}
	if a.Digest() == c.Digest() {
		t.Error("digest must change with patterns")
	}
}
