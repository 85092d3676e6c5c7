package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	// Terminator ends every text record in an arena.
	Terminator byte = 0x00

	// IntWidth is the encoded size of one integer record.
	IntWidth = 4
)

// TextCodec lays out null-terminated text records
type TextCodec struct{}

// NewTextCodec creates a new text codec instance
func NewTextCodec() *TextCodec {
	return &TextCodec{}
}

// Size returns the number of arena bytes rec occupies, terminator included
func (c *TextCodec) Size(rec []byte) int {
	return len(rec) + 1
}

// Put writes rec followed by the terminator at the start of dst and returns
// the number of bytes written. dst must hold at least Size(rec) bytes.
func (c *TextCodec) Put(dst, rec []byte) int {
	n := copy(dst, rec)
	dst[n] = Terminator
	return n + 1
}

// Next returns the record starting at off, without its terminator, and the
// offset of the record that follows it. ok is false once off reaches the end
// of buf. A trailing segment without a terminator is returned whole, with
// next set to len(buf).
func (c *TextCodec) Next(buf []byte, off int) (rec []byte, next int, ok bool) {
	if off < 0 || off >= len(buf) {
		return nil, len(buf), false
	}
	end := bytes.IndexByte(buf[off:], Terminator)
	if end < 0 {
		return buf[off:], len(buf), true
	}
	return buf[off : off+end], off + end + 1, true
}

// ValidText reports an error if rec cannot be stored as a single text record
func ValidText(rec []byte) error {
	if i := bytes.IndexByte(rec, Terminator); i >= 0 {
		return fmt.Errorf("record contains terminator byte at position %d", i)
	}
	return nil
}

// IntCodec lays out fixed-width 32-bit integer records
type IntCodec struct{}

// NewIntCodec creates a new integer codec instance
func NewIntCodec() *IntCodec {
	return &IntCodec{}
}

// Offset returns the byte offset of record i
func (c *IntCodec) Offset(i int) int {
	return i * IntWidth
}

// Put stores v as record i of buf
func (c *IntCodec) Put(buf []byte, i int, v int32) {
	binary.LittleEndian.PutUint32(buf[c.Offset(i):], uint32(v))
}

// At loads record i of buf
func (c *IntCodec) At(buf []byte, i int) int32 {
	return int32(binary.LittleEndian.Uint32(buf[c.Offset(i):]))
}

// Count returns how many whole integer records buf holds
func (c *IntCodec) Count(buf []byte) int {
	return len(buf) / IntWidth
}
