// Package binary encodes typed element arrays as little-endian bytes.
package binary

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Writer provides buffered little-endian writing of fixed-width elements.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new Writer with room for size bytes.
func NewWriter(size int) *Writer {
	b := &bytes.Buffer{}
	b.Grow(size)
	return &Writer{buf: b}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteU16LE writes a little-endian uint16.
func (w *Writer) WriteU16LE(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	w.buf.Write(buf[:])
}

// WriteU32LE writes a little-endian uint32.
func (w *Writer) WriteU32LE(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.buf.Write(buf[:])
}

// WriteF32LE writes an IEEE 754 float32, little-endian.
func (w *Writer) WriteF32LE(v float32) {
	w.WriteU32LE(math.Float32bits(v))
}

// Pad writes zero bytes until the length is a multiple of align and returns
// how many were written.
func (w *Writer) Pad(align int) int {
	n := (align - w.buf.Len()%align) % align
	for i := 0; i < n; i++ {
		w.buf.WriteByte(0)
	}
	return n
}

// Reader decodes little-endian elements from a byte slice.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// U8 reads one byte. ok is false past the end.
func (r *Reader) U8() (v uint8, ok bool) {
	if r.Remaining() < 1 {
		return 0, false
	}
	v = r.data[r.pos]
	r.pos++
	return v, true
}

// U16 reads a little-endian uint16.
func (r *Reader) U16() (v uint16, ok bool) {
	if r.Remaining() < 2 {
		return 0, false
	}
	v = binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, true
}

// U32 reads a little-endian uint32.
func (r *Reader) U32() (v uint32, ok bool) {
	if r.Remaining() < 4 {
		return 0, false
	}
	v = binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, true
}

// F32 reads a little-endian float32.
func (r *Reader) F32() (float32, bool) {
	bits, ok := r.U32()
	return math.Float32frombits(bits), ok
}
