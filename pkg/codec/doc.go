// Package codec provides the record encodings used inside a recstore arena.
//
// An arena is one contiguous byte slice holding every record of a store. The
// codec package knows how a single record is laid out in that slice; it never
// allocates storage for records itself.
//
// # Text Records
//
// Text records are stored back to back, each followed by a single zero byte:
//
//	[bytes...][0x00][bytes...][0x00]...
//
// Records have no length prefix. Boundaries are found by scanning for the
// terminator, so a record must not contain 0x00 itself (see [ValidText]).
//
// # Integer Records
//
// Integer records are fixed-width 32-bit signed values stored little-endian.
// Record i lives at byte offset i*4:
//
//	[int32(4)][int32(4)][int32(4)]...
//
// # Usage
//
//	text := codec.NewTextCodec()
//	buf := make([]byte, text.Size([]byte("Ada")))
//	text.Put(buf, []byte("Ada"))
//
//	rec, next, ok := text.Next(buf, 0)
//	// rec == "Ada", next == 4, ok == true
//
//	ints := codec.NewIntCodec()
//	slots := make([]byte, 2*codec.IntWidth)
//	ints.Put(slots, 1, -7)
//	v := ints.At(slots, 1) // -7
//
// # Thread Safety
//
// TextCodec and IntCodec are stateless and safe for concurrent use. The byte
// slices passed to them are not synchronized.
package codec
