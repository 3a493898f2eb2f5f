package dicom

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransferSyntax(t *testing.T) {
	testCases := []struct {
		uid         string
		explicit    bool
		order       binary.ByteOrder
		compression Compression
	}{
		{"1.2.840.10008.1.2", false, binary.LittleEndian, CompressionNone},
		{"1.2.840.10008.1.2.1", true, binary.LittleEndian, CompressionNone},
		{"1.2.840.10008.1.2.2", true, binary.BigEndian, CompressionNone},
		{"1.2.840.10008.1.2.4.50", true, binary.LittleEndian, CompressionJPEGBaseline},
		{"1.2.840.10008.1.2.4.57", true, binary.LittleEndian, CompressionJPEGLossless},
		{"1.2.840.10008.1.2.4.70", true, binary.LittleEndian, CompressionJPEGLossless},
		{"1.2.840.10008.1.2.4.90", true, binary.LittleEndian, CompressionJPEG2000},
		{"1.2.840.10008.1.2.4.91", true, binary.LittleEndian, CompressionJPEG2000},
	}
	for _, tc := range testCases {
		t.Run(tc.uid, func(t *testing.T) {
			ts, err := ParseTransferSyntax(tc.uid)
			require.NoError(t, err)
			assert.Equal(t, tc.uid, ts.UID)
			assert.Equal(t, tc.explicit, ts.ExplicitVR)
			assert.Equal(t, tc.order, ts.ByteOrder)
			assert.Equal(t, tc.compression, ts.Compression)
			assert.Equal(t, tc.compression != CompressionNone, ts.Compressed())
		})
	}
}

func TestParseTransferSyntax_Unsupported(t *testing.T) {
	for _, uid := range []string{
		"",
		"1.2.840.10008.1.2.5",      // RLE
		"1.2.840.10008.1.2.1.99",   // deflated
		"1.2.840.10008.1.2.4.80",   // JPEG-LS
		"1.2.840.10008.1.2.4.201",  // HTJ2K
		"not-a-uid",
	} {
		_, err := ParseTransferSyntax(uid)
		assert.ErrorIs(t, err, ErrUnsupportedTransferSyntax, uid)

		var tserr *TransferSyntaxError
		require.ErrorAs(t, err, &tserr)
		assert.Equal(t, uid, tserr.UID)
	}
}
