package source

import "strings"

// Unit is one compilation unit handed to the extractor: the file text plus the
// fully-qualified name of its primary type (e.g. "com.example.ApiServlet").
type Unit struct {
	Name string
	File *File
}

// NewUnit binds a loaded file to its type name.
func NewUnit(name string, f *File) Unit {
	return Unit{Name: name, File: f}
}

// Text returns the unit content as a string.
func (u Unit) Text() string {
	if u.File == nil {
		return ""
	}
	return string(u.File.Content)
}

// Package returns the package part of the unit name ("" for the default package).
func (u Unit) Package() string {
	if i := strings.LastIndexByte(u.Name, '.'); i >= 0 {
		return u.Name[:i]
	}
	return ""
}

// SimpleName returns the last segment of the unit name.
func (u Unit) SimpleName() string {
	if i := strings.LastIndexByte(u.Name, '.'); i >= 0 {
		return u.Name[i+1:]
	}
	return u.Name
}
