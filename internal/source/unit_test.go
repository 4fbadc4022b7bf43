package source

import "testing"

func TestUnitNames(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("ApiServlet.java", []byte("class ApiServlet {}")))

	u := NewUnit("com.example.servlet.ApiServlet", f)
	if u.Package() != "com.example.servlet" {
		t.Errorf("Package() = %q", u.Package())
	}
	if u.SimpleName() != "ApiServlet" {
		t.Errorf("SimpleName() = %q", u.SimpleName())
	}
	if u.Text() != "class ApiServlet {}" {
		t.Errorf("Text() = %q", u.Text())
	}

	bare := NewUnit("Main", f)
	if bare.Package() != "" || bare.SimpleName() != "Main" {
		t.Errorf("default package unit resolved to %q / %q", bare.Package(), bare.SimpleName())
	}
}
