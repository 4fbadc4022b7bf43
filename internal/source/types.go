package source

// FileID indexes a File inside the FileSet that loaded it.
type FileID uint32

// FileFlags record how the content reached the set.
type FileFlags uint8

const (
	// FileVirtual marks content that did not come from disk: tests, and the
	// empty placeholders standing in for unreadable files.
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// PathStyle selects how File.DisplayPath renders a path.
type PathStyle uint8

const (
	// PathRelative is relative to the FileSet base directory; paths outside
	// it fall back to absolute.
	PathRelative PathStyle = iota
	PathAbsolute
	PathBase
	// PathAuto keeps short paths and reduces long absolute ones to the base name.
	PathAuto
)

var pathStyleNames = [...]string{
	PathRelative: "relative",
	PathAbsolute: "absolute",
	PathBase:     "basename",
	PathAuto:     "auto",
}

func (s PathStyle) String() string {
	if int(s) < len(pathStyleNames) {
		return pathStyleNames[s]
	}
	return "relative"
}

// File is one loaded Java source or deployment descriptor. Content has no BOM
// and LF line ends; it is read-only once added.
type File struct {
	ID      FileID
	Path    string // slash-separated, cleaned
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based position; Col counts bytes, so tabs and multi-byte
// runes each advance it by their encoded length.
type LineCol struct {
	Line uint32
	Col  uint32
}
