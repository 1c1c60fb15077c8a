package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"guardc/internal/source"
)

// Cursor walks the bytes of one file. Off is the next unread byte.
type Cursor struct {
	File *source.File
	Off  uint32
	src  []byte
}

// Mark is a saved offset; SpanFrom turns it into the span read since.
type Mark uint32

func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("file %s is too large: %w", f.Path, err))
	}
	return Cursor{File: f, src: f.Content}
}

func (c *Cursor) EOF() bool { return int(c.Off) >= len(c.src) }

// Peek returns the current byte or 0 at EOF.
func (c *Cursor) Peek() byte {
	return c.cur()
}

// Peek2 returns the current and the next byte; ok is false when fewer than two remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if int(c.Off)+1 >= len(c.src) {
		return 0, 0, false
	}
	return c.src[c.Off], c.src[c.Off+1], true
}

// Bump consumes and returns one byte; at EOF it returns 0 and does not move.
func (c *Cursor) Bump() byte {
	b := c.cur()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Eat consumes the next byte only if it equals b.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.src[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

func (c *Cursor) cur() byte {
	if c.EOF() {
		return 0
	}
	return c.src[c.Off]
}

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}
