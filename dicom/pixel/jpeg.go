package pixel

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/medview/go-dicom/dicom"
	"github.com/medview/go-dicom/dicom/uid"
)

// baselineCodec decodes JPEG Baseline (Process 1) frames with the
// standard library. Baseline is 8-bit only; grayscale frames come back as
// one byte per sample, color frames as interleaved RGB.
type baselineCodec struct {
	transferSyntaxUID string
}

func (c *baselineCodec) Decode(frame []byte, info *dicom.ImageInfo) ([]byte, error) {
	if len(frame) == 0 {
		return nil, &DecompressionError{
			TransferSyntaxUID: c.transferSyntaxUID,
			Cause:             fmt.Errorf("empty JPEG frame"),
		}
	}

	img, err := jpeg.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, &DecompressionError{
			TransferSyntaxUID: c.transferSyntaxUID,
			Cause:             fmt.Errorf("JPEG decode failed: %w", err),
		}
	}

	bounds := img.Bounds()
	if bounds.Dx() != info.Columns || bounds.Dy() != info.Rows {
		return nil, &DecompressionError{
			TransferSyntaxUID: c.transferSyntaxUID,
			Cause: fmt.Errorf("frame is %dx%d, dataset declares %dx%d",
				bounds.Dx(), bounds.Dy(), info.Columns, info.Rows),
		}
	}

	if info.SamplesPerPixel == 1 {
		out := make([]byte, info.Rows*info.Columns)
		if gray, ok := img.(*image.Gray); ok {
			copy(out, gray.Pix)
			return out, nil
		}
		i := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, g, b, _ := img.At(x, y).RGBA()
				out[i] = byte(((r + g + b) / 3) >> 8)
				i++
			}
		}
		return out, nil
	}

	out := make([]byte, info.Rows*info.Columns*3)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			out[i] = byte(r >> 8)
			out[i+1] = byte(g >> 8)
			out[i+2] = byte(b >> 8)
			i += 3
		}
	}
	return out, nil
}

func (c *baselineCodec) TransferSyntaxUID() string { return c.transferSyntaxUID }

func init() {
	RegisterCodec(uid.JPEGBaselineProcess1, &baselineCodec{transferSyntaxUID: uid.JPEGBaselineProcess1})
	// JPEG 2000 is recognized but ships without an in-tree codec;
	// integrators bind one through RegisterCodec.
}
