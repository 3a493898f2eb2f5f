package dicom

import (
	"encoding/binary"

	"github.com/medview/go-dicom/dicom/uid"
)

// Compression names the pixel data codec a transfer syntax implies.
type Compression int

const (
	// CompressionNone means native (uncompressed) pixel data.
	CompressionNone Compression = iota
	// CompressionJPEGLossless is JPEG Process 14, decoded natively.
	CompressionJPEGLossless
	// CompressionJPEGBaseline is 8-bit lossy JPEG, decoded by an external
	// codec (stdlib image/jpeg by default).
	CompressionJPEGBaseline
	// CompressionJPEG2000 is routed to an externally registered codec.
	CompressionJPEG2000
)

// TransferSyntax describes how a dataset is encoded: byte order, VR mode,
// and pixel data compression, all derived from the transfer syntax UID in
// the file meta information.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#chapter_10
type TransferSyntax struct {
	UID         string
	ExplicitVR  bool
	ByteOrder   binary.ByteOrder
	Compression Compression
}

// Compressed reports whether pixel data under this syntax is encapsulated
// in compressed fragments.
func (ts *TransferSyntax) Compressed() bool {
	return ts.Compression != CompressionNone
}

// ParseTransferSyntax maps a transfer syntax UID to its encoding
// parameters. UIDs outside the supported set fail with
// ErrUnsupportedTransferSyntax.
func ParseTransferSyntax(tsUID string) (*TransferSyntax, error) {
	switch tsUID {
	case uid.ImplicitVRLittleEndian:
		return &TransferSyntax{
			UID:        tsUID,
			ExplicitVR: false,
			ByteOrder:  binary.LittleEndian,
		}, nil

	case uid.ExplicitVRLittleEndian:
		return &TransferSyntax{
			UID:        tsUID,
			ExplicitVR: true,
			ByteOrder:  binary.LittleEndian,
		}, nil

	case uid.ExplicitVRBigEndian:
		return &TransferSyntax{
			UID:        tsUID,
			ExplicitVR: true,
			ByteOrder:  binary.BigEndian,
		}, nil

	case uid.JPEGBaselineProcess1:
		return &TransferSyntax{
			UID:         tsUID,
			ExplicitVR:  true,
			ByteOrder:   binary.LittleEndian,
			Compression: CompressionJPEGBaseline,
		}, nil

	case uid.JPEGLosslessProcess14, uid.JPEGLosslessProcess14SV1:
		return &TransferSyntax{
			UID:         tsUID,
			ExplicitVR:  true,
			ByteOrder:   binary.LittleEndian,
			Compression: CompressionJPEGLossless,
		}, nil

	case uid.JPEG2000Lossless, uid.JPEG2000:
		return &TransferSyntax{
			UID:         tsUID,
			ExplicitVR:  true,
			ByteOrder:   binary.LittleEndian,
			Compression: CompressionJPEG2000,
		}, nil

	default:
		return nil, &TransferSyntaxError{UID: tsUID}
	}
}
