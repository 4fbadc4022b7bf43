package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
)

// FileSet owns the files of one scan and turns spans into positions.
//
// The batch driver loads every file before workers start and only reads the
// set afterwards, so it carries no lock.
type FileSet struct {
	files []File
	base  string // "" means the working directory
}

// NewFileSet returns an empty set whose paths display relative to the
// working directory.
func NewFileSet() *FileSet {
	return &FileSet{}
}

// NewFileSetWithBase returns an empty set whose paths display relative to base,
// normally the scan root.
func NewFileSetWithBase(base string) *FileSet {
	return &FileSet{base: base}
}

// BaseDir is the directory relative paths are computed against.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.base != "" {
		return fileSet.base
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Add stores already normalized content and returns its id. Adding the same
// path twice yields two files.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("too many files in set: %w", err))
	}
	id := FileID(n)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	return id
}

// Load reads path, strips a UTF-8 BOM, turns CRLF into LF and adds the result.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- scan inputs are chosen by the user
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var flags FileFlags
	content, bom := removeBOM(raw)
	if bom {
		flags |= FileHadBOM
	}
	content, crlf := normalizeCRLF(content)
	if crlf {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds in-memory content flagged FileVirtual.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file for id; an id from another set panics.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Resolve converts both ends of span to line and column.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	idx := fileSet.files[span.File].LineIdx
	return toLineCol(idx, span.Start), toLineCol(idx, span.End)
}

// GetLine returns line n (1-based) without its newline, or "" when out of range.
func (f *File) GetLine(n uint32) string {
	if n == 0 {
		return ""
	}
	lines, err := safecast.Conv[uint32](len(f.LineIdx) + 1)
	if err != nil {
		panic(fmt.Errorf("line count overflow: %w", err))
	}
	if n > lines {
		return ""
	}
	start := 0
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end := len(f.Content)
	if int(n-1) < len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

// DisplayPath renders the file path in style; base only matters for PathRelative.
func (f *File) DisplayPath(style PathStyle, base string) string {
	switch style {
	case PathAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return normalizePath(abs)
		}
	case PathBase:
		return filepath.Base(f.Path)
	case PathAuto:
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return filepath.Base(f.Path)
		}
	case PathRelative:
		if rel, ok := relativeTo(f.Path, base); ok {
			return strings.TrimPrefix(rel, "./")
		}
	}
	return f.Path
}
