package javaclass

import (
	"fmt"
	"strings"

	"routescan/internal/annot"
	"routescan/internal/diag"
	"routescan/internal/source"
	"routescan/internal/token"
)

// Outline walks the code tokens of file and returns its type declarations.
// It tracks only structure: modifiers, headers, member names and brace
// nesting. Method bodies and field initializers are skipped as balanced
// token runs, so annotations inside them never attach to a declaration.
// Site diagnostics are left to annot.Scan; r only receives structural ones.
func Outline(file *source.File, toks []token.Token, r diag.Reporter) Unit {
	if r == nil {
		r = diag.NopReporter{}
	}
	w := &walker{
		file: file,
		toks: toks,
		p:    annot.NewParser(file, toks, diag.NopReporter{}),
		rep:  r,
	}
	w.unit.Constants = make(map[string]annot.Value)
	w.top()
	return w.unit
}

type walker struct {
	file *source.File
	toks []token.Token
	p    *annot.Parser
	rep  diag.Reporter
	unit Unit
}

// memberState accumulates what was seen since the last member boundary.
type memberState struct {
	pending []annot.Site
	static  bool
	final   bool
}

func (w *walker) tok(i int) token.Token {
	if i >= 0 && i < len(w.toks) {
		return w.toks[i]
	}
	return token.Token{Kind: token.EOF}
}

func (w *walker) top() {
	var st memberState
	for i := 0; w.tok(i).Kind != token.EOF; {
		t := w.tok(i)
		if w.p.IsSiteStart(i) {
			i = w.site(i, &st)
			continue
		}
		if kind, ok := w.typeKeyword(i); ok {
			i = w.parseType(i, kind, st.pending, -1)
			st = memberState{}
			continue
		}
		switch t.Kind {
		case token.KwPackage:
			name, next := w.qualifiedName(i + 1)
			w.unit.Package = name
			i = w.skipPast(next, token.Semicolon)
			st = memberState{}
		case token.KwImport:
			i = w.skipPast(i, token.Semicolon)
			st = memberState{}
		case token.LBrace:
			i = w.skipBalanced(i)
			st = memberState{}
		case token.Semicolon:
			st = memberState{}
			i++
		default:
			i++
		}
	}
}

func (w *walker) site(i int, st *memberState) int {
	site, next, ok := w.p.ParseSite(i)
	if ok {
		st.pending = append(st.pending, site)
	}
	return max(next, i+1)
}

// typeKeyword recognises a type declaration keyword at i.
func (w *walker) typeKeyword(i int) (TypeKind, bool) {
	t := w.tok(i)
	if w.tok(i-1).Kind == token.Dot {
		// Foo.class
		return 0, false
	}
	switch t.Kind {
	case token.KwClass:
		return KindClass, true
	case token.KwInterface:
		if w.tok(i-1).Kind == token.At {
			return KindAnnotationType, true
		}
		return KindInterface, true
	case token.KwEnum:
		return KindEnum, true
	case token.Ident:
		if t.Text == "record" && w.tok(i+1).Kind == token.Ident {
			next := w.tok(i + 2).Kind
			if next == token.LParen || next == token.Lt {
				return KindRecord, true
			}
		}
	}
	return 0, false
}

// parseType parses a declaration whose keyword is toks[i] and returns the
// index after its body.
func (w *walker) parseType(i int, kind TypeKind, annotations []annot.Site, outer int) int {
	nameTok := w.tok(i + 1)
	if nameTok.Kind != token.Ident {
		return i + 1
	}
	decl := TypeDecl{
		Kind:        kind,
		Name:        nameTok.Text,
		Binary:      nameTok.Text,
		Annotations: annotations,
		Outer:       outer,
		Span:        nameTok.Span,
	}
	if outer >= 0 {
		decl.Binary = w.unit.Types[outer].Binary + "$" + nameTok.Text
	}

	j := i + 2
	angle := 0
header:
	for {
		t := w.tok(j)
		switch t.Kind {
		case token.EOF, token.Semicolon:
			w.unit.Types = append(w.unit.Types, decl)
			return j
		case token.LBrace:
			if angle == 0 {
				break header
			}
			j++
		case token.Lt:
			angle++
			j++
		case token.Gt:
			angle--
			j++
		case token.LParen:
			j = w.skipBalanced(j)
		case token.KwExtends, token.KwImplements:
			if angle > 0 {
				j++
				continue
			}
			names, next := w.typeList(j + 1)
			if t.Kind == token.KwExtends && len(names) > 0 {
				decl.Extends = names[0]
			}
			if t.Kind == token.KwImplements || kind == KindInterface {
				decl.Implements = append(decl.Implements, names...)
			}
			j = next
		default:
			j++
		}
	}

	idx := len(w.unit.Types)
	w.unit.Types = append(w.unit.Types, decl)
	end := w.body(j, idx)
	w.unit.Types[idx].Body = w.tok(j).Span.Cover(w.tok(end - 1).Span)
	return end
}

// body walks the members of the type at index ti whose '{' is toks[open].
func (w *walker) body(open, ti int) int {
	i := open + 1
	if w.unit.Types[ti].Kind == KindEnum {
		i = w.skipEnumConstants(i)
	}
	var st memberState
	for {
		t := w.tok(i)
		if w.p.IsSiteStart(i) {
			i = w.site(i, &st)
			continue
		}
		if kind, ok := w.typeKeyword(i); ok {
			i = w.parseType(i, kind, st.pending, ti)
			st = memberState{}
			continue
		}
		switch {
		case t.Kind == token.EOF:
			decl := w.unit.Types[ti]
			diag.ReportWarning(w.rep, diag.ClsUnclosedBody, decl.Span,
				fmt.Sprintf("body of %s %s is not closed", decl.Kind, decl.Name)).Emit()
			return i
		case t.Kind == token.RBrace:
			return i + 1
		case t.Kind == token.LBrace:
			i = w.skipBalanced(i)
			st = memberState{}
		case t.Kind == token.Semicolon:
			i++
			st = memberState{}
		case t.Kind == token.Assign:
			i = w.field(i, ti, st)
			st = memberState{}
		case t.Kind == token.Ident && w.tok(i+1).Kind == token.LParen:
			i = w.method(i, ti, st.pending)
			st = memberState{}
		case t.Kind == token.KwStatic:
			st.static = true
			i++
		case t.Kind == token.KwFinal:
			st.final = true
			i++
		default:
			i++
		}
	}
}

// method records a method or constructor named toks[i] and skips its
// parameters, throws clause and body.
func (w *walker) method(i, ti int, annotations []annot.Site) int {
	w.unit.Types[ti].Methods = append(w.unit.Types[ti].Methods, Method{
		Name:        w.tok(i).Text,
		Annotations: annotations,
		Span:        w.tok(i).Span,
	})
	j := w.skipBalanced(i + 1)
	for {
		switch w.tok(j).Kind {
		case token.EOF, token.RBrace:
			return j
		case token.Semicolon:
			return j + 1
		case token.LBrace:
			return w.skipBalanced(j)
		case token.LParen:
			j = w.skipBalanced(j)
		default:
			j++
		}
	}
}

// field handles "= init" of a field declaration whose '=' is toks[i].
// String constants are recorded; the index after the declaration is returned.
func (w *walker) field(i, ti int, st memberState) int {
	decl := w.unit.Types[ti]
	constant := (st.static && st.final) || decl.Kind == KindInterface
	isString := w.tok(i-2).Kind == token.Ident && w.tok(i-2).Text == "String"

	for {
		name := w.tok(i - 1)
		end, cut := w.skipInitializer(i + 1)
		if constant && isString && name.Kind == token.Ident && end > i+1 {
			v := w.p.ParseValue(i+1, end)
			if _, dup := w.unit.Constants[name.Text]; !dup {
				w.unit.Constants[name.Text] = v
			}
			w.unit.Constants[decl.Name+"."+name.Text] = v
			if decl.Binary != decl.Name {
				w.unit.Constants[strings.ReplaceAll(decl.Binary, "$", ".")+"."+name.Text] = v
			}
		}
		if cut {
			diag.ReportWarning(w.rep, diag.ClsUnterminatedField, name.Span,
				fmt.Sprintf("initializer of field %s is not terminated by ';'", name.Text)).Emit()
			return end
		}
		switch w.tok(end).Kind {
		case token.Semicolon:
			return end + 1
		case token.Comma:
			// String A = "a", B = "b";
			if w.tok(end+1).Kind == token.Ident && w.tok(end+2).Kind == token.Assign {
				i = end + 2
				continue
			}
			return w.skipPast(end, token.Semicolon)
		default:
			return end
		}
	}
}

// skipExpr returns the index of the first depth-zero ',' ';' or unmatched closer.
func (w *walker) skipExpr(i int) int {
	depth := 0
	for {
		switch w.tok(i).Kind {
		case token.EOF:
			return i
		case token.LParen, token.LBrace, token.LBracket:
			depth++
		case token.RParen, token.RBrace, token.RBracket:
			if depth == 0 {
				return i
			}
			depth--
		case token.Comma, token.Semicolon:
			if depth == 0 {
				return i
			}
		}
		i++
	}
}

// skipInitializer is skipExpr for a field initializer. It also stops before a
// depth-zero annotation or member keyword; cut is set then, the ';' is missing
// and the next member starts at end.
func (w *walker) skipInitializer(i int) (end int, cut bool) {
	depth := 0
	for ; ; i++ {
		t := w.tok(i)
		switch t.Kind {
		case token.EOF:
			return i, false
		case token.LParen, token.LBrace, token.LBracket:
			depth++
			continue
		case token.RParen, token.RBrace, token.RBracket:
			if depth == 0 {
				return i, false
			}
			depth--
			continue
		case token.Comma, token.Semicolon:
			if depth == 0 {
				return i, false
			}
			continue
		}
		if depth > 0 {
			continue
		}
		if w.p.IsSiteStart(i) || (t.IsMemberStart() && w.tok(i-1).Kind != token.Dot) {
			return i, true
		}
	}
}

// skipEnumConstants skips "A, B(1), C { ... };" and returns the first member index.
func (w *walker) skipEnumConstants(i int) int {
	for {
		end := w.skipExpr(i)
		switch w.tok(end).Kind {
		case token.Comma:
			i = end + 1
		case token.Semicolon:
			return end + 1
		default:
			return end
		}
	}
}

// skipBalanced skips the bracket group opened at toks[i].
func (w *walker) skipBalanced(i int) int {
	depth := 0
	for {
		switch w.tok(i).Kind {
		case token.EOF:
			return i
		case token.LParen, token.LBrace, token.LBracket:
			depth++
		case token.RParen, token.RBrace, token.RBracket:
			depth--
			if depth <= 0 {
				return i + 1
			}
		}
		i++
	}
}

// skipPast returns the index after the next kind token at depth zero.
func (w *walker) skipPast(i int, kind token.Kind) int {
	for {
		t := w.tok(i)
		if t.Kind == token.EOF {
			return i
		}
		if t.Kind == kind {
			return i + 1
		}
		if t.Kind == token.LBrace || t.Kind == token.LParen {
			i = w.skipBalanced(i)
			continue
		}
		i++
	}
}

func (w *walker) qualifiedName(i int) (string, int) {
	if w.tok(i).Kind != token.Ident {
		return "", i
	}
	parts := []string{w.tok(i).Text}
	i++
	for w.tok(i).Kind == token.Dot && w.tok(i+1).Kind == token.Ident {
		parts = append(parts, w.tok(i+1).Text)
		i += 2
	}
	return strings.Join(parts, "."), i
}

// typeList reads "A, b.C<T>, D" and stops before '{', 'implements' or 'permits'.
func (w *walker) typeList(i int) ([]string, int) {
	var names []string
	for {
		name, next := w.qualifiedName(i)
		if name == "" {
			return names, i
		}
		names = append(names, name)
		i = next
		if w.tok(i).Kind == token.Lt {
			i = w.skipAngles(i)
		}
		if w.tok(i).Kind != token.Comma {
			return names, i
		}
		i++
	}
}

func (w *walker) skipAngles(i int) int {
	depth := 0
	for {
		switch w.tok(i).Kind {
		case token.EOF, token.LBrace, token.Semicolon:
			return i
		case token.Lt:
			depth++
		case token.Gt:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
}
