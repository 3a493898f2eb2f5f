package dicom

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_Primitives(t *testing.T) {
	src := NewBytesSource([]byte{
		0x01,
		0x02, 0x03,
		0x04, 0x05, 0x06, 0x07,
	})
	r := NewReader(src, binary.LittleEndian)

	b, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x01), b)

	u16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0302), u16)

	u32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x07060504), u32)

	assert.Equal(t, int64(7), r.Position())
	assert.Equal(t, int64(0), r.Remaining())
}

func TestReader_BigEndian(t *testing.T) {
	src := NewBytesSource([]byte{0x01, 0x02, 0x03, 0x04})
	r := NewReader(src, binary.BigEndian)

	u16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), u16)

	// Switch order mid-stream, as the parser does after the meta group.
	r.SetByteOrder(binary.LittleEndian)
	u16, err = r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0403), u16)
}

func TestReader_EOF(t *testing.T) {
	r := NewReader(NewBytesSource([]byte{0x01}), binary.LittleEndian)

	_, err := r.ReadUint16()
	assert.ErrorIs(t, err, ErrUnexpectedEOF)

	// Cursor unchanged after a failed read.
	b, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x01), b)

	_, err = r.ReadUint8()
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestReader_SkipSeekTake(t *testing.T) {
	r := NewReader(NewBytesSource([]byte{0, 1, 2, 3, 4, 5, 6, 7}), binary.LittleEndian)

	require.NoError(t, r.Skip(4))
	assert.Equal(t, int64(4), r.Position())

	buf, err := r.Take(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 5}, buf)

	require.NoError(t, r.SeekTo(0))
	buf, err = r.Take(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, buf)

	assert.ErrorIs(t, r.Skip(100), ErrUnexpectedEOF)
	assert.ErrorIs(t, r.SeekTo(9), ErrUnexpectedEOF)
	assert.ErrorIs(t, r.SeekTo(-1), ErrUnexpectedEOF)
}

func TestReader_Floats(t *testing.T) {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:], 0x3F800000)           // 1.0f
	binary.LittleEndian.PutUint64(buf[4:], 0x4000000000000000)   // 2.0
	r := NewReader(NewBytesSource(buf), binary.LittleEndian)

	f32, err := r.ReadFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(1.0), f32)

	f64, err := r.ReadFloat64()
	require.NoError(t, err)
	assert.Equal(t, 2.0, f64)
}
