package pixel

import (
	"fmt"

	"github.com/medview/go-dicom/dicom"
	"github.com/medview/go-dicom/dicom/pixel/jpegll"
	"github.com/medview/go-dicom/dicom/uid"
)

// losslessCodec binds the native JPEG Lossless (Process 14 SV1) decoder
// into the codec registry.
type losslessCodec struct {
	transferSyntaxUID string
}

// Decode decodes one lossless frame and checks its declared geometry
// against the dataset's image attributes.
func (c *losslessCodec) Decode(frame []byte, info *dicom.ImageInfo) ([]byte, error) {
	f, err := jpegll.Decode(frame)
	if err != nil {
		return nil, &DecompressionError{TransferSyntaxUID: c.transferSyntaxUID, Cause: err}
	}

	if f.Width != info.Columns || f.Height != info.Rows {
		return nil, &DecompressionError{
			TransferSyntaxUID: c.transferSyntaxUID,
			Cause: fmt.Errorf("frame is %dx%d, dataset declares %dx%d",
				f.Width, f.Height, info.Columns, info.Rows),
		}
	}
	if f.Components != info.SamplesPerPixel {
		return nil, &DecompressionError{
			TransferSyntaxUID: c.transferSyntaxUID,
			Cause: fmt.Errorf("frame has %d components, dataset declares %d",
				f.Components, info.SamplesPerPixel),
		}
	}
	if (f.Precision+7)/8 != info.BytesPerSample() {
		return nil, &DecompressionError{
			TransferSyntaxUID: c.transferSyntaxUID,
			Cause: fmt.Errorf("frame precision %d does not fit %d bits allocated",
				f.Precision, info.BitsAllocated),
		}
	}

	return f.Pix, nil
}

func (c *losslessCodec) TransferSyntaxUID() string { return c.transferSyntaxUID }

func init() {
	RegisterCodec(uid.JPEGLosslessProcess14, &losslessCodec{transferSyntaxUID: uid.JPEGLosslessProcess14})
	RegisterCodec(uid.JPEGLosslessProcess14SV1, &losslessCodec{transferSyntaxUID: uid.JPEGLosslessProcess14SV1})
}
