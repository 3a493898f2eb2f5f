package dicom

import (
	"fmt"

	"github.com/medview/go-dicom/dicom/element"
	"github.com/medview/go-dicom/dicom/tag"
)

// Fragment locates one encapsulated pixel data fragment in the byte source.
type Fragment struct {
	Offset int64
	Length int64
}

// ParsedFile is the result of a full metadata parse: transfer syntax,
// ordered top-level elements, and the recorded location of the pixel data
// body, which is never materialized during parsing.
//
// Invariant: PixelDataOffset > 0 iff the file contained a pixel data
// element.
type ParsedFile struct {
	TransferSyntax *TransferSyntax
	DataSet        *DataSet

	// PixelDataOffset/PixelDataLength locate the pixel data value field.
	// For encapsulated data the range spans all fragment items including
	// their headers; Fragments locates the individual fragment bodies.
	PixelDataOffset int64
	PixelDataLength int64

	// Fragments and BasicOffsetTable are populated only for encapsulated
	// (compressed) pixel data.
	Fragments        []Fragment
	BasicOffsetTable []uint32
}

// HasPixelData reports whether the file contained a pixel data element.
func (pf *ParsedFile) HasPixelData() bool { return pf.PixelDataOffset > 0 }

// Get retrieves a top-level element by tag.
func (pf *ParsedFile) Get(t tag.Tag) (*element.Element, bool) {
	return pf.DataSet.Get(t)
}

// ImageInfo holds the typed image attributes needed to interpret pixel
// data. The validate tags drive the structural checks reported by
// Decoder.Validate.
type ImageInfo struct {
	Rows                      int    `validate:"min=1"`
	Columns                   int    `validate:"min=1"`
	BitsAllocated             int    `validate:"oneof=8 16"`
	BitsStored                int    `validate:"min=1,max=16,ltefield=BitsAllocated"`
	HighBit                   int    `validate:"ltfield=BitsAllocated"`
	PixelRepresentation       int    `validate:"oneof=0 1"`
	SamplesPerPixel           int    `validate:"oneof=1 3"`
	PhotometricInterpretation string `validate:"required"`
	PlanarConfiguration       int    `validate:"oneof=0 1"`
	NumberOfFrames            int    `validate:"min=1"`
}

// BytesPerSample returns the storage width of one sample in bytes.
func (info *ImageInfo) BytesPerSample() int {
	return (info.BitsAllocated + 7) / 8
}

// FrameSizeBytes returns the byte length of one decoded frame.
func (info *ImageInfo) FrameSizeBytes() int64 {
	return int64(info.Rows) * int64(info.Columns) * int64(info.SamplesPerPixel) * int64(info.BytesPerSample())
}

// TotalSizeBytes returns the byte length of the full decoded pixel buffer.
func (info *ImageInfo) TotalSizeBytes() int64 {
	return info.FrameSizeBytes() * int64(info.NumberOfFrames)
}

// ImageInfo extracts the typed image attributes from the parsed elements.
// Rows, columns, and the bit-layout attributes are required; samples per
// pixel, photometric interpretation, planar configuration, and number of
// frames take their standard defaults when absent.
func (pf *ParsedFile) ImageInfo() (*ImageInfo, error) {
	info := &ImageInfo{
		SamplesPerPixel:           1,
		PhotometricInterpretation: "MONOCHROME2",
		NumberOfFrames:            1,
	}

	required := []struct {
		t    tag.Tag
		name string
		dst  *int
	}{
		{tag.Rows, "Rows", &info.Rows},
		{tag.Columns, "Columns", &info.Columns},
		{tag.BitsAllocated, "BitsAllocated", &info.BitsAllocated},
		{tag.BitsStored, "BitsStored", &info.BitsStored},
		{tag.HighBit, "HighBit", &info.HighBit},
		{tag.PixelRepresentation, "PixelRepresentation", &info.PixelRepresentation},
	}
	for _, attr := range required {
		e, ok := pf.Get(attr.t)
		if !ok {
			return nil, fmt.Errorf("%w: missing %s %s", ErrInvalidElement, attr.name, attr.t)
		}
		n, ok := e.FirstInt()
		if !ok {
			return nil, fmt.Errorf("%w: empty %s %s", ErrInvalidElement, attr.name, attr.t)
		}
		*attr.dst = int(n)
	}

	if e, ok := pf.Get(tag.SamplesPerPixel); ok {
		if n, ok := e.FirstInt(); ok {
			info.SamplesPerPixel = int(n)
		}
	}
	if e, ok := pf.Get(tag.PhotometricInterpretation); ok {
		if s, ok := e.FirstString(); ok {
			info.PhotometricInterpretation = s
		}
	}
	if e, ok := pf.Get(tag.PlanarConfiguration); ok {
		if n, ok := e.FirstInt(); ok {
			info.PlanarConfiguration = int(n)
		}
	}
	if e, ok := pf.Get(tag.NumberOfFrames); ok {
		if n, ok := e.FirstInt(); ok && n > 0 {
			info.NumberOfFrames = int(n)
		}
	}

	return info, nil
}
