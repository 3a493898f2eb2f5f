package dicom

import (
	"encoding/binary"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medview/go-dicom/dicom/tag"
	"github.com/medview/go-dicom/internal/dicomtest"
)

func openDefaultCT(t *testing.T) *Decoder {
	t.Helper()
	d, err := FromBytes(dicomtest.CTImage(dicomtest.DefaultCT()), nil)
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestDecoder_Open(t *testing.T) {
	path := writeTempFile(t, dicomtest.CTImage(dicomtest.DefaultCT()))

	d, err := Open(path, nil)
	require.NoError(t, err)
	defer d.Close()

	w, h := d.Dimensions()
	assert.Equal(t, 512, w)
	assert.Equal(t, 512, h)
}

func TestDecoder_OpenMmapThreshold(t *testing.T) {
	opts := DefaultOptions()
	opts.MmapThreshold = 1 // force the memory-mapped path

	path := writeTempFile(t, dicomtest.CTImage(dicomtest.DefaultCT()))
	d, err := Open(path, opts)
	require.NoError(t, err)
	defer d.Close()

	s, ok := d.Info(tag.Modality)
	require.True(t, ok)
	assert.Equal(t, "CT", s)
}

func TestDecoder_OpenRange(t *testing.T) {
	file := dicomtest.CTImage(dicomtest.DefaultCT())
	prefix := make([]byte, 4096)
	blob := append(append([]byte{}, prefix...), file...)
	path := writeTempFile(t, blob)

	d, err := OpenRange(path, int64(len(prefix)), int64(len(file)), nil)
	require.NoError(t, err)
	defer d.Close()

	s, ok := d.Info(tag.Modality)
	require.True(t, ok)
	assert.Equal(t, "CT", s)
}

func TestDecoder_OpenNotFound(t *testing.T) {
	_, err := Open("/nonexistent/file.dcm", nil)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestDecoder_MetadataQueries(t *testing.T) {
	d := openDefaultCT(t)

	s, ok := d.Info(tag.Modality)
	require.True(t, ok)
	assert.Equal(t, "CT", s)

	s, ok = d.Info(tag.PatientName)
	require.True(t, ok)
	assert.Equal(t, "Doe^Jane", s)

	n, ok := d.Int(tag.Rows)
	require.True(t, ok)
	assert.Equal(t, int64(512), n)

	f, ok := d.Float(tag.WindowCenter)
	require.True(t, ok)
	assert.Equal(t, 40.0, f)

	_, ok = d.Info(tag.New(0x0018, 0x9999))
	assert.False(t, ok)

	all := d.AllTags()
	assert.Equal(t, "CT", all[tag.Modality])
	assert.Contains(t, all, tag.TransferSyntaxUID)
}

func TestDecoder_ImageQueries(t *testing.T) {
	d := openDefaultCT(t)

	row, col, ok := d.PixelSpacing()
	require.True(t, ok)
	assert.Equal(t, 0.5, row)
	assert.Equal(t, 0.5, col)

	center, width, ok := d.WindowSettings()
	require.True(t, ok)
	assert.Equal(t, 40.0, center)
	assert.Equal(t, 400.0, width)

	slope, intercept := d.Rescale()
	assert.Equal(t, 1.0, slope)
	assert.Equal(t, -1024.0, intercept)

	assert.False(t, d.IsCompressed())
	assert.Equal(t, "1.2.840.10008.1.2.1", d.TransferSyntaxUID())
}

// TestDecoder_ConcurrentInfo drives the cached metadata path from many
// goroutines; run with -race.
func TestDecoder_ConcurrentInfo(t *testing.T) {
	d := openDefaultCT(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s, ok := d.Info(tag.Modality)
				assert.True(t, ok)
				assert.Equal(t, "CT", s)
				_, _ = d.Int(tag.Rows)
			}
		}()
	}
	wg.Wait()
}

func TestDecoder_Validate(t *testing.T) {
	d := openDefaultCT(t)

	status := d.Validate()
	assert.True(t, status.IsValid)
	assert.Equal(t, 512, status.Width)
	assert.Equal(t, 512, status.Height)
	assert.True(t, status.HasPixels)
	assert.False(t, status.IsCompressed)
	assert.Empty(t, status.Issues)
}

func TestDecoder_ValidateLengthMismatch(t *testing.T) {
	cfg := dicomtest.DefaultCT()
	cfg.PixelData = cfg.PixelData[:1000] // truncated body

	d, err := FromBytes(dicomtest.CTImage(cfg), nil)
	require.NoError(t, err)
	defer d.Close()

	status := d.Validate()
	assert.False(t, status.IsValid)
	assert.NotEmpty(t, status.Issues)
}

func TestDecoder_ValidateMissingRecommended(t *testing.T) {
	b := dicomtest.NewBuilder(true, binary.LittleEndian)
	b.Preamble()
	b.Meta("1.2.840.10008.1.2.1")
	b.String(0x0008, 0x0060, "CS", "CT")

	d, err := FromBytes(b.Bytes(), nil)
	require.NoError(t, err)
	defer d.Close()

	status := d.Validate()
	assert.False(t, status.HasPixels)
	assert.False(t, status.IsValid)
	assert.NotEmpty(t, status.Issues)
}

func TestDecoder_ValidateBadSamplesPerPixel(t *testing.T) {
	cfg := dicomtest.DefaultCT()
	cfg.SamplesPerPixel = 2

	d, err := FromBytes(dicomtest.CTImage(cfg), nil)
	require.NoError(t, err)
	defer d.Close()

	status := d.Validate()
	assert.False(t, status.IsValid)
	assert.NotEmpty(t, status.Issues)
}
