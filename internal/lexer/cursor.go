// Package lexer turns source bytes into a token stream for the parser.
package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"ember/internal/source"
)

// Cursor is a byte-offset position inside one file's content.
type Cursor struct {
	File *source.File
	Off  uint32
}

func NewCursor(f *source.File) Cursor {
	return Cursor{File: f}
}

func (c *Cursor) limit() uint32 {
	n, err := safecast.Conv[uint32](len(c.File.Content))
	if err != nil {
		panic(fmt.Errorf("lexer: file content length overflow: %w", err))
	}
	return n
}

func (c *Cursor) EOF() bool { return c.Off >= c.limit() }

func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

func (c *Cursor) PeekAt(delta uint32) byte {
	if c.Off+delta >= c.limit() {
		return 0
	}
	return c.File.Content[c.Off+delta]
}

func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}
