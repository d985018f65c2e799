// Package source models source text as byte-addressed files with fast
// line/column resolution, shared by the scanner, parser, and diagnostics.
package source

type (
	// FileID identifies a source file within a FileSet.
	FileID uint32
	// FileFlags records how a file's bytes were prepared before scanning.
	FileFlags uint8
)

const (
	// FileVirtual marks a file that was not read from disk (a test fixture, a REPL line, …).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM records that a UTF-8 byte-order mark was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF records that CRLF line endings were rewritten to LF on load.
	FileNormalizedCRLF
)

// File holds the content and derived metadata for one source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offset of every '\n', ascending
	Flags   FileFlags
}

// LineCol is a 1-based, human-readable position within a File.
type LineCol struct {
	Line uint32
	Col  uint32
}
