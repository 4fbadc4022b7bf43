package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddKeepsEveryVersion(t *testing.T) {
	fs := NewFileSet()
	first := fs.Add("UserController.java", []byte("class A {}"), 0)
	second := fs.Add("./UserController.java", []byte("class B {}"), 0)
	if first == second || fs.Len() != 2 {
		t.Fatalf("expected two distinct files, got ids %d and %d (len %d)", first, second, fs.Len())
	}
	if got := string(fs.Get(first).Content); got != "class A {}" {
		t.Errorf("first version lost, got %q", got)
	}
	if fs.Get(second).Path != "UserController.java" {
		t.Errorf("path not cleaned: %q", fs.Get(second).Path)
	}
	if fs.Get(first).Hash == fs.Get(second).Hash {
		t.Error("different content must hash differently")
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.java", []byte("a\nb\n"))
	file := fs.Get(id)

	want := []uint32{1, 3}
	if len(file.LineIdx) != len(want) {
		t.Fatalf("expected LineIdx %v, got %v", want, file.LineIdx)
	}
	for i := range want {
		if file.LineIdx[i] != want[i] {
			t.Errorf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], want[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("R.java", []byte("@GetMapping\npublic void x() {}\n"))

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"file start", 0, LineCol{Line: 1, Col: 1}},
		{"newline byte stays on its line", 11, LineCol{Line: 1, Col: 12}},
		{"second line start", 12, LineCol{Line: 2, Col: 1}},
		{"inside second line", 19, LineCol{Line: 2, Col: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if start != tt.want {
				t.Fatalf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
			}
		})
	}
}

func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("u.java", []byte("α\n"))

	start, end := fs.Resolve(Span{File: id, Start: 0, End: 1})
	if start != (LineCol{Line: 1, Col: 1}) || end != (LineCol{Line: 1, Col: 2}) {
		t.Fatalf("unexpected positions %+v %+v", start, end)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("g.java", []byte("one\ntwo\nthree")))

	for n, want := range map[uint32]string{0: "", 1: "one", 2: "two", 3: "three", 4: ""} {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Servlet.java")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\r\nb\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "a\nb\n" {
		t.Errorf("expected normalized content, got %q", file.Content)
	}
	if file.Flags&FileHadBOM == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("expected BOM and CRLF flags, got %b", file.Flags)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.java")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
