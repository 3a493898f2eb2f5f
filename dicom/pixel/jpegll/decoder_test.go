package jpegll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medview/go-dicom/internal/dicomtest"
)

// gradient16 renders a horizontal gradient with small per-sample deltas.
func gradient16(width, height int) []uint16 {
	out := make([]uint16, width*height)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			out[r*width+c] = uint16(r + c)
		}
	}
	return out
}

// TestDecode_RoundTrip16Bit decodes a 256x256 16-bit gradient frame and
// expects bit-perfect reconstruction.
func TestDecode_RoundTrip16Bit(t *testing.T) {
	const width, height = 256, 256
	want := gradient16(width, height)
	stream := dicomtest.EncodeLossless(width, height, 16, want)

	frame, err := Decode(stream)
	require.NoError(t, err)

	assert.Equal(t, width, frame.Width)
	assert.Equal(t, height, frame.Height)
	assert.Equal(t, 1, frame.Components)
	assert.Equal(t, 16, frame.Precision)
	assert.Equal(t, want, frame.Samples16())
}

// TestDecode_RoundTrip8Bit exercises the one-byte-per-sample output path.
func TestDecode_RoundTrip8Bit(t *testing.T) {
	const width, height = 64, 32
	want := make([]uint16, width*height)
	for i := range want {
		want[i] = uint16(i % 251)
	}
	stream := dicomtest.EncodeLossless(width, height, 8, want)

	frame, err := Decode(stream)
	require.NoError(t, err)

	assert.Equal(t, 8, frame.Precision)
	require.Len(t, frame.Pix, width*height)
	assert.Equal(t, want, frame.Samples16())
}

// TestDecode_RoundTrip12Bit covers the 12-bit precision common in CT.
func TestDecode_RoundTrip12Bit(t *testing.T) {
	const width, height = 128, 64
	want := make([]uint16, width*height)
	for i := range want {
		want[i] = uint16((i * 7) % 4096)
	}
	stream := dicomtest.EncodeLossless(width, height, 12, want)

	frame, err := Decode(stream)
	require.NoError(t, err)
	assert.Equal(t, 12, frame.Precision)
	assert.Equal(t, want, frame.Samples16())
}

// TestDecode_LargeDifferences forces the largest difference categories
// (15 and 16) and the modulo-2^16 wrap-around cases.
func TestDecode_LargeDifferences(t *testing.T) {
	const width, height = 16, 16
	want := make([]uint16, width*height)
	vals := []uint16{0, 0xFFFF, 1, 0x8000, 0x7FFF, 0, 0x4000, 0xC000}
	for i := range want {
		want[i] = vals[i%len(vals)]
	}
	stream := dicomtest.EncodeLossless(width, height, 16, want)

	frame, err := Decode(stream)
	require.NoError(t, err)
	assert.Equal(t, want, frame.Samples16())
}

// TestDecode_ByteStuffing verifies 0xFF bytes in entropy data survive the
// stuffing removal. The first difference (category 15, fifteen 1 bits)
// puts a stuffed 0xFF byte into the entropy data.
func TestDecode_ByteStuffing(t *testing.T) {
	const width, height = 32, 8
	want := make([]uint16, width*height)
	for i := range want {
		if i%2 == 0 {
			want[i] = 0xFFFF
		}
	}
	stream := dicomtest.EncodeLossless(width, height, 16, want)

	frame, err := Decode(stream)
	require.NoError(t, err)
	assert.Equal(t, want, frame.Samples16())
}

func TestDecode_MissingSOI(t *testing.T) {
	_, err := Decode([]byte{0x00, 0x01, 0x02, 0x03})
	assert.ErrorIs(t, err, ErrCorruptStream)
}

func TestDecode_TruncatedStream(t *testing.T) {
	want := gradient16(64, 64)
	stream := dicomtest.EncodeLossless(64, 64, 16, want)

	// Cut the stream mid-scan.
	_, err := Decode(stream[:len(stream)/2])
	assert.ErrorIs(t, err, ErrCorruptStream)
}

func TestDecode_PrecisionOutOfRange(t *testing.T) {
	stream := dicomtest.EncodeLossless(8, 8, 16, make([]uint16, 64))
	// Patch the SOF3 precision byte (marker + length = 4 bytes in).
	bad := append([]byte{}, stream...)
	bad[2+2+2] = 17
	_, err := Decode(bad)
	assert.ErrorIs(t, err, ErrCorruptStream)
}

func TestDecode_HuffmanOverflow(t *testing.T) {
	// A DHT whose BITS counts sum past 256 must be rejected.
	stream := []byte{
		0xFF, 0xD8, // SOI
		0xFF, 0xC3, 0x00, 0x0B, 0x08, 0x00, 0x08, 0x00, 0x08, 0x01, 0x01, 0x11, 0x00,
		0xFF, 0xC4, 0x10, 0x03, 0x00, // length 2 + 1 + 16 + 4080
	}
	counts := make([]byte, 16)
	for i := range counts {
		counts[i] = 0xFF // sum far past 256
	}
	stream = append(stream, counts...)
	stream = append(stream, make([]byte, 16*0xFF)...)
	_, err := Decode(stream)
	assert.ErrorIs(t, err, ErrCorruptStream)
}

func TestDecode_BaselineFrameRejected(t *testing.T) {
	stream := []byte{
		0xFF, 0xD8,
		0xFF, 0xC0, 0x00, 0x0B, 0x08, 0x00, 0x08, 0x00, 0x08, 0x01, 0x01, 0x11, 0x00,
	}
	_, err := Decode(stream)
	assert.ErrorIs(t, err, ErrCorruptStream)
}

// TestDecode_SampleMismatch ensures the decoder fails when entropy data
// runs out before the declared sample count is produced.
func TestDecode_SampleMismatch(t *testing.T) {
	stream := dicomtest.EncodeLossless(8, 8, 16, make([]uint16, 64))
	// Enlarge the declared height so the scan under-delivers.
	bad := append([]byte{}, stream...)
	bad[2+2+3] = 0x10 // height high byte: 8 -> 4096+8
	_, err := Decode(bad)
	assert.ErrorIs(t, err, ErrCorruptStream)
}
