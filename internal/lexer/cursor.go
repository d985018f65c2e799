package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"kimchi/internal/source"
)

// Cursor tracks a byte offset into a source.File.
type Cursor struct {
	File *source.File
	Off  uint32
}

// NewCursor creates a cursor positioned at the start of f.
func NewCursor(f *source.File) Cursor {
	return Cursor{File: f, Off: 0}
}

func (c *Cursor) limit() uint32 {
	n, err := safecast.Conv[uint32](len(c.File.Content))
	if err != nil {
		panic(fmt.Errorf("kimchi/lexer: file content length overflow: %w", err))
	}
	return n
}

// EOF reports whether the cursor has reached the end of the file.
func (c *Cursor) EOF() bool { return c.Off >= c.limit() }

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Peek2 returns the current and next byte.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.limit() {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// PeekAt returns the byte n positions ahead of the cursor, or 0 if out of range.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.limit() {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// Bump consumes and returns the current byte.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Mark is a saved cursor position, used to compute a Span after scanning
// a lexeme.
type Mark uint32

// Mark saves the current position.
func (c *Cursor) Mark() Mark { return Mark(c.Off) }

// SpanFrom returns the span from a previously saved Mark to the current position.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// Reset rewinds the cursor to a previously saved Mark.
func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

// Eat consumes the next byte if it equals b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}
