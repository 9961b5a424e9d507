package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, LSP buffer).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks files starting with a UTF-8 byte order mark.
	FileHadBOM
	// FileHasCRLF marks files using \r\n line endings. Content is never normalised.
	FileHasCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, counted in characters
}

// Position is the byte/line/column triple every reported location derives from.
type Position struct {
	Offset uint32
	Line   uint32
	Col    uint32
}
