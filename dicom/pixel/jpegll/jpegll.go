// Package jpegll implements a native decoder for JPEG Lossless,
// Non-Hierarchical, First-Order Prediction (ITU-T T.81 Process 14,
// Selection Value 1), the lossless JPEG mode used by DICOM transfer
// syntaxes 1.2.840.10008.1.2.4.57 and 1.2.840.10008.1.2.4.70.
//
// The decoder handles 2-16 bit precision, 1 or 3 components, byte
// stuffing, and restart markers. It is a pure Go implementation with no
// cgo dependency.
//
// ITU-T T.81: https://www.w3.org/Graphics/JPEG/itu-t81.pdf
package jpegll

import (
	"errors"
	"fmt"
)

// ErrCorruptStream is the sentinel wrapped by every decode failure.
var ErrCorruptStream = errors.New("corrupt JPEG lossless stream")

// CorruptError wraps ErrCorruptStream with the byte position of the fault.
type CorruptError struct {
	Offset int64
	Reason string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("%v: %s at offset %d", ErrCorruptStream, e.Reason, e.Offset)
}

func (e *CorruptError) Unwrap() error { return ErrCorruptStream }

// Frame is a decoded lossless frame. Samples are interleaved in row-major
// order; Pix holds one byte per sample for precision <= 8, otherwise two
// bytes per sample, little endian.
type Frame struct {
	Width      int
	Height     int
	Components int
	Precision  int
	Pix        []byte
}

// Samples16 returns the samples as uint16 values regardless of precision.
func (f *Frame) Samples16() []uint16 {
	n := f.Width * f.Height * f.Components
	out := make([]uint16, n)
	if f.Precision <= 8 {
		for i := 0; i < n; i++ {
			out[i] = uint16(f.Pix[i])
		}
		return out
	}
	for i := 0; i < n; i++ {
		out[i] = uint16(f.Pix[i*2]) | uint16(f.Pix[i*2+1])<<8
	}
	return out
}

// Decode decodes one JPEG Process-14 SV1 datastream (SOI through EOI,
// byte stuffing still in place) into a Frame.
func Decode(data []byte) (*Frame, error) {
	d := &decoder{data: data}
	return d.decode()
}
