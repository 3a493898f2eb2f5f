package dicom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesSource_Slice(t *testing.T) {
	src := NewBytesSource([]byte{0, 1, 2, 3, 4})

	assert.Equal(t, int64(5), src.Len())

	buf, err := src.Slice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, buf)

	buf, err = src.Slice(5, 0)
	require.NoError(t, err)
	assert.Empty(t, buf)

	_, err = src.Slice(3, 3)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
	_, err = src.Slice(-1, 1)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)

	require.NoError(t, src.Close())
}

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.dcm")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestOpenFile_NotFound(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.dcm"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = OpenMapped(filepath.Join(t.TempDir(), "missing.dcm"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

// TestMappedSource_MatchesMemory checks that the memory-mapped and
// in-memory variants expose identical bytes through the shared contract.
func TestMappedSource_MatchesMemory(t *testing.T) {
	data := make([]byte, 64<<10)
	for i := range data {
		data[i] = byte(i * 31)
	}
	path := writeTempFile(t, data)

	mem, err := OpenFile(path)
	require.NoError(t, err)
	defer mem.Close()

	mapped, err := OpenMapped(path)
	require.NoError(t, err)
	defer mapped.Close()

	require.Equal(t, mem.Len(), mapped.Len())

	for _, r := range [][2]int64{{0, 16}, {100, 1000}, {63<<10 + 1023, 1}} {
		a, err := mem.Slice(r[0], r[1])
		require.NoError(t, err)
		b, err := mapped.Slice(r[0], r[1])
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}

	_, err = mapped.Slice(mapped.Len()-1, 2)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestOpenMappedRange(t *testing.T) {
	data := make([]byte, 32<<10)
	for i := range data {
		data[i] = byte(i)
	}
	path := writeTempFile(t, data)

	// An unaligned offset exercises the page-alignment handling.
	const offset, length = 5000, 10000
	src, err := OpenMappedRange(path, offset, length)
	require.NoError(t, err)
	defer src.Close()

	require.Equal(t, int64(length), src.Len())
	buf, err := src.Slice(0, 16)
	require.NoError(t, err)
	assert.Equal(t, data[offset:offset+16], buf)

	buf, err = src.Slice(length-4, 4)
	require.NoError(t, err)
	assert.Equal(t, data[offset+length-4:offset+length], buf)
}

func TestOpenFileRange(t *testing.T) {
	data := []byte("0123456789abcdef")
	path := writeTempFile(t, data)

	src, err := OpenFileRange(path, 4, 8)
	require.NoError(t, err)
	defer src.Close()

	buf, err := src.Slice(0, 8)
	require.NoError(t, err)
	assert.Equal(t, []byte("456789ab"), buf)

	// Negative length reads to the end of the file.
	rest, err := OpenFileRange(path, 10, -1)
	require.NoError(t, err)
	defer rest.Close()
	assert.Equal(t, int64(6), rest.Len())

	_, err = OpenFileRange(path, 10, 100)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestMappedSource_CloseTwice(t *testing.T) {
	path := writeTempFile(t, make([]byte, 4096))
	src, err := OpenMapped(path)
	require.NoError(t, err)

	require.NoError(t, src.Close())
	require.NoError(t, src.Close())
}
