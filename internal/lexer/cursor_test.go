package lexer

import (
	"testing"

	"routescan/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("Test.java", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump() = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() {
		t.Error("Expected EOF at end")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Error("Expected zero bytes at EOF")
	}
}

func TestPeekLookahead(t *testing.T) {
	cursor := NewCursor(createFile("abc"))

	if b0, b1, ok := cursor.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Errorf("Peek2 at start = (%q, %q, %v)", b0, b1, ok)
	}
	if b0, b1, b2, ok := cursor.Peek3(); !ok || b0 != 'a' || b1 != 'b' || b2 != 'c' {
		t.Errorf("Peek3 at start = (%q, %q, %q, %v)", b0, b1, b2, ok)
	}
	cursor.Bump()
	if _, _, _, ok := cursor.Peek3(); ok {
		t.Error("Peek3 must fail with two bytes left")
	}
	cursor.Bump()
	if _, _, ok := cursor.Peek2(); ok {
		t.Error("Peek2 must fail with one byte left")
	}
}

func TestMarkResetAndSpan(t *testing.T) {
	cursor := NewCursor(createFile("α\nβ"))

	mark := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	span := cursor.SpanFrom(mark)
	if span.Start != 0 || span.End != 2 {
		t.Fatalf("expected span 0..2, got %d..%d", span.Start, span.End)
	}

	cursor.Reset(mark)
	if cursor.Off != 0 {
		t.Fatalf("Reset did not rewind, Off=%d", cursor.Off)
	}
	if cursor.Eat('x') {
		t.Fatal("Eat must not consume a mismatching byte")
	}
}

func TestRangeCursor(t *testing.T) {
	f := createFile("// @GetMapping(\"/x\")\nclass A {}")
	cursor := NewRangeCursor(f, source.Span{Start: 3, End: 14})

	if got := string(cursor.Rest()); got != "@GetMapping" {
		t.Fatalf("Rest() = %q", got)
	}
	for !cursor.EOF() {
		cursor.Bump()
	}
	if cursor.Off != 14 {
		t.Fatalf("range cursor ran past its limit: Off=%d", cursor.Off)
	}
}
