package dicom

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Reader provides endian-aware primitive reads over a ByteSource at an
// explicit cursor. The byte order can be switched mid-stream, which the
// file parser does when the main dataset is big-endian.
//
// All reads fail with ErrUnexpectedEOF when the cursor would pass the end
// of the source; the cursor is left unchanged on failure.
type Reader struct {
	src   ByteSource
	order binary.ByteOrder
	pos   int64
}

// NewReader creates a reader over src starting at offset 0.
func NewReader(src ByteSource, order binary.ByteOrder) *Reader {
	return &Reader{src: src, order: order}
}

// ByteOrder returns the current byte order.
func (r *Reader) ByteOrder() binary.ByteOrder { return r.order }

// SetByteOrder changes the byte order for subsequent reads. Used when
// switching from the always-little-endian file meta group to a big-endian
// main dataset.
func (r *Reader) SetByteOrder(order binary.ByteOrder) { r.order = order }

// Position returns the cursor's absolute byte offset.
func (r *Reader) Position() int64 { return r.pos }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int64 { return r.src.Len() - r.pos }

// SeekTo moves the cursor to an absolute offset.
func (r *Reader) SeekTo(offset int64) error {
	if offset < 0 || offset > r.src.Len() {
		return fmt.Errorf("%w: seek to %d of %d bytes", ErrUnexpectedEOF, offset, r.src.Len())
	}
	r.pos = offset
	return nil
}

// Skip advances the cursor by n bytes without reading them.
func (r *Reader) Skip(n int64) error {
	if n < 0 || r.pos+n > r.src.Len() {
		return fmt.Errorf("%w: skip %d bytes at offset %d of %d", ErrUnexpectedEOF, n, r.pos, r.src.Len())
	}
	r.pos += n
	return nil
}

// Take returns a zero-copy view of the next n bytes and advances the
// cursor. The view must not be mutated.
func (r *Reader) Take(n int64) ([]byte, error) {
	buf, err := r.src.Slice(r.pos, n)
	if err != nil {
		return nil, err
	}
	r.pos += n
	return buf, nil
}

// ReadBytes is Take for int-sized lengths.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	return r.Take(int64(n))
}

// ReadString reads n bytes and returns them as a string. Padding is
// preserved; callers trim as needed.
func (r *Reader) ReadString(n int) (string, error) {
	buf, err := r.Take(int64(n))
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadUint8 reads one byte.
func (r *Reader) ReadUint8() (uint8, error) {
	buf, err := r.Take(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint16 reads a 16-bit unsigned integer in the current byte order.
func (r *Reader) ReadUint16() (uint16, error) {
	buf, err := r.Take(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(buf), nil
}

// ReadUint32 reads a 32-bit unsigned integer in the current byte order.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.Take(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(buf), nil
}

// ReadInt16 reads a 16-bit signed integer in the current byte order.
func (r *Reader) ReadInt16() (int16, error) {
	u, err := r.ReadUint16()
	return int16(u), err
}

// ReadInt32 reads a 32-bit signed integer in the current byte order.
func (r *Reader) ReadInt32() (int32, error) {
	u, err := r.ReadUint32()
	return int32(u), err
}

// ReadFloat32 reads a 32-bit IEEE float in the current byte order.
func (r *Reader) ReadFloat32() (float32, error) {
	u, err := r.ReadUint32()
	return math.Float32frombits(u), err
}

// ReadFloat64 reads a 64-bit IEEE float in the current byte order.
func (r *Reader) ReadFloat64() (float64, error) {
	buf, err := r.Take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(r.order.Uint64(buf)), nil
}
