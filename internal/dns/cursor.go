package dns

import (
	"encoding/binary"
	"fmt"
)

// Cursor is a random-access reader over a single DNS message buffer.
//
// Name compression (RFC 1035 Section 4.1.4) requires the decoder to jump
// to absolute offsets earlier in the same message, so sequential reads are
// combined with absolute seeks. The Cursor owns only its position; the
// underlying buffer is shared with the caller and never modified.
type Cursor struct {
	buf []byte
	off int
}

// NewCursor returns a Cursor positioned at the start of msg.
func NewCursor(msg []byte) *Cursor {
	return &Cursor{buf: msg}
}

// Pos returns the current absolute offset into the buffer.
func (c *Cursor) Pos() int { return c.off }

// Len returns the total size of the underlying buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Seek moves the cursor to an absolute offset.
// Seeking to Len() is allowed; any read from there fails.
func (c *Cursor) Seek(off int) error {
	if off < 0 || off > len(c.buf) {
		return fmt.Errorf("%w: seek target %d outside message of %d bytes", ErrDNSError, off, len(c.buf))
	}
	c.off = off
	return nil
}

// Read returns the next n bytes and advances the cursor.
// The returned slice aliases the underlying buffer; callers that retain
// the bytes must copy them.
func (c *Cursor) Read(n int) ([]byte, error) {
	if n < 0 || c.off+n > len(c.buf) {
		return nil, fmt.Errorf("%w: unexpected EOF (need %d bytes at offset %d of %d)",
			ErrDNSError, n, c.off, len(c.buf))
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

// ReadByte returns the next byte and advances the cursor.
func (c *Cursor) ReadByte() (byte, error) {
	if c.off >= len(c.buf) {
		return 0, fmt.Errorf("%w: unexpected EOF at offset %d", ErrDNSError, c.off)
	}
	b := c.buf[c.off]
	c.off++
	return b, nil
}

// ReadUint16 reads a big-endian 16-bit value and advances the cursor.
func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadUint32 reads a big-endian 32-bit value and advances the cursor.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}
