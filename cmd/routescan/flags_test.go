package main

import (
	"os"
	"path/filepath"
	"testing"

	"routescan/internal/diag"
	"routescan/internal/source"
)

func TestReadColorMode(t *testing.T) {
	tests := map[string]string{
		"":       "auto",
		"auto":   "auto",
		"on":     "always",
		"Always": "always",
		"off":    "never",
		"never":  "never",
	}
	for in, want := range tests {
		got, err := readColorMode(in)
		if err != nil {
			t.Fatalf("readColorMode(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("readColorMode(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := readColorMode("rainbow"); err == nil {
		t.Fatal("expected error for unknown color mode")
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Fatal("expected error for unknown ui mode")
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Fatal("explicit ui modes must win over terminal detection")
	}
}

func TestWithoutInfos(t *testing.T) {
	diags := []diag.Diagnostic{
		diag.New(diag.SevInfo, diag.ClsUnmappedClass, source.Span{}, "a"),
		diag.New(diag.SevWarning, diag.ResUnresolvedConst, source.Span{}, "b"),
		diag.New(diag.SevError, diag.IOLoadFileError, source.Span{}, "c"),
	}
	got := withoutInfos(diags)
	if len(got) != 2 || got[0].Message != "b" || got[1].Message != "c" {
		t.Fatalf("unexpected filtered diagnostics: %+v", got)
	}
}

func TestCacheUsage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "units")
	units, size, err := cacheUsage(dir)
	if err != nil || units != 0 || size != 0 {
		t.Fatalf("missing dir: units=%d size=%d err=%v", units, size, err)
	}

	shard := filepath.Join(dir, "ab")
	if err := os.MkdirAll(shard, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, body := range map[string]string{"abc.mp": "12345", "abd.mp": "123", "notes.txt": "ignored"} {
		if err := os.WriteFile(filepath.Join(shard, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	units, size, err = cacheUsage(dir)
	if err != nil {
		t.Fatalf("cacheUsage: %v", err)
	}
	if units != 2 || size != 8 {
		t.Fatalf("got units=%d size=%d, want 2 and 8", units, size)
	}
}

func TestAbsAll(t *testing.T) {
	got := absAll([]string{"web.xml"})
	if len(got) != 1 || !filepath.IsAbs(got[0]) {
		t.Fatalf("expected absolute path, got %v", got)
	}
}
