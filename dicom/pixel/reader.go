package pixel

import (
	"encoding/binary"
	"fmt"

	"github.com/medview/go-dicom/dicom"
)

// Reader produces typed pixel arrays from a parsed file. All reads are
// lazy: nothing touches the pixel data bytes until a read is requested,
// and range reads pull only the needed slice from the byte source.
//
// Grayscale output always carries MONOCHROME2 semantics: MONOCHROME1
// samples are inverted on the way out. This is the only interpretation
// transform the reader performs.
type Reader struct {
	src    dicom.ByteSource
	file   *dicom.ParsedFile
	info   *dicom.ImageInfo
	limits *dicom.Options

	// order of stored 16-bit samples: the transfer syntax order for
	// native data, little endian for decoded frames.
	order binary.ByteOrder

	invert bool // MONOCHROME1 normalization
}

// NewReader creates a pixel reader over a decoder's parsed file. It fails
// when the file has no pixel data or its image attributes cannot support
// any typed read.
func NewReader(d *dicom.Decoder) (*Reader, error) {
	file := d.File()
	if !file.HasPixelData() {
		return nil, ErrNoPixelData
	}
	info, err := file.ImageInfo()
	if err != nil {
		return nil, err
	}

	if info.BitsAllocated != 8 && info.BitsAllocated != 16 {
		return nil, &FormatError{Op: "open", Reason: fmt.Sprintf("bits allocated %d unsupported", info.BitsAllocated)}
	}
	if info.BitsStored < 1 || info.BitsStored > info.BitsAllocated {
		return nil, &FormatError{Op: "open", Reason: fmt.Sprintf("bits stored %d inconsistent with %d allocated", info.BitsStored, info.BitsAllocated)}
	}
	if info.SamplesPerPixel != 1 && info.SamplesPerPixel != 3 {
		return nil, &FormatError{Op: "open", Reason: fmt.Sprintf("samples per pixel %d unsupported", info.SamplesPerPixel)}
	}
	if info.SamplesPerPixel == 3 && (info.PixelRepresentation != 0 || info.BitsAllocated != 8) {
		return nil, &FormatError{Op: "open", Reason: "color images require unsigned 8-bit samples"}
	}
	if info.PixelRepresentation == 1 && info.BitsAllocated == 8 {
		return nil, &FormatError{Op: "open", Reason: "signed 8-bit pixel representation unsupported"}
	}

	ts := file.TransferSyntax
	order := ts.ByteOrder
	if ts.Compressed() {
		order = binary.LittleEndian
	}

	return &Reader{
		src:    d.Source(),
		file:   file,
		info:   info,
		limits: d.Limits(),
		order:  order,
		invert: info.PhotometricInterpretation == "MONOCHROME1",
	}, nil
}

// Info returns the image attributes the reader operates under.
func (r *Reader) Info() *dicom.ImageInfo { return r.info }

// TotalPixels returns the pixel count across all frames (samples of one
// pixel counted once).
func (r *Reader) TotalPixels() int {
	return r.info.Rows * r.info.Columns * r.info.NumberOfFrames
}

// checkCeiling rejects reads whose full decoded buffer would exceed the
// allocation ceiling, before any allocation happens.
func (r *Reader) checkCeiling() error {
	if total := r.info.TotalSizeBytes(); total > r.limits.MaxPixelBufferBytes {
		return fmt.Errorf("%w: %d bytes exceeds ceiling %d", ErrPixelBufferTooLarge, total, r.limits.MaxPixelBufferBytes)
	}
	return nil
}

// rawFrame returns one frame's stored bytes: a zero-copy slice for native
// data, a decoded buffer for compressed data.
func (r *Reader) rawFrame(idx int) ([]byte, error) {
	if idx < 0 || idx >= r.info.NumberOfFrames {
		return nil, fmt.Errorf("frame %d out of range (%d frames)", idx, r.info.NumberOfFrames)
	}

	if !r.file.TransferSyntax.Compressed() {
		frameSize := r.info.FrameSizeBytes()
		return r.src.Slice(r.file.PixelDataOffset+int64(idx)*frameSize, frameSize)
	}

	data, err := FrameData(r.src, r.file, idx)
	if err != nil {
		return nil, err
	}
	codec, err := LookupCodec(r.file.TransferSyntax.UID)
	if err != nil {
		return nil, err
	}
	decoded, err := codec.Decode(data, r.info)
	if err != nil {
		return nil, err
	}
	if int64(len(decoded)) != r.info.FrameSizeBytes() {
		return nil, &DecompressionError{
			TransferSyntaxUID: r.file.TransferSyntax.UID,
			Cause: fmt.Errorf("decoded frame is %d bytes, expected %d",
				len(decoded), r.info.FrameSizeBytes()),
		}
	}
	return decoded, nil
}

// rawAll returns the stored bytes of every frame, concatenated.
func (r *Reader) rawAll() ([]byte, error) {
	if err := r.checkCeiling(); err != nil {
		return nil, err
	}

	if !r.file.TransferSyntax.Compressed() {
		if r.file.PixelDataLength != r.info.TotalSizeBytes() {
			return nil, &FormatError{
				Op: "read",
				Reason: fmt.Sprintf("pixel data is %d bytes, image attributes imply %d",
					r.file.PixelDataLength, r.info.TotalSizeBytes()),
			}
		}
		return r.src.Slice(r.file.PixelDataOffset, r.file.PixelDataLength)
	}

	out := make([]byte, 0, r.info.TotalSizeBytes())
	for i := 0; i < r.info.NumberOfFrames; i++ {
		frame, err := r.rawFrame(i)
		if err != nil {
			return nil, err
		}
		out = append(out, frame...)
	}
	return out, nil
}

// rangeBytes returns the stored bytes of pixels [first, first+count) in
// frame order. Native data is sliced directly from the byte source;
// compressed data decodes only the frames the range touches.
func (r *Reader) rangeBytes(first, count int) ([]byte, error) {
	bps := r.info.BytesPerSample()

	if !r.file.TransferSyntax.Compressed() {
		return r.src.Slice(r.file.PixelDataOffset+int64(first)*int64(bps), int64(count)*int64(bps))
	}

	perFrame := r.info.Rows * r.info.Columns
	out := make([]byte, 0, count*bps)
	for remaining, pos := count, first; remaining > 0; {
		frameIdx := pos / perFrame
		inFrame := pos % perFrame
		n := perFrame - inFrame
		if n > remaining {
			n = remaining
		}
		frame, err := r.rawFrame(frameIdx)
		if err != nil {
			return nil, err
		}
		out = append(out, frame[inFrame*bps:(inFrame+n)*bps]...)
		pos += n
		remaining -= n
	}
	return out, nil
}

// maxStored returns the largest storable sample value given bits stored.
func (r *Reader) maxStored() uint16 {
	return uint16((1 << uint(r.info.BitsStored)) - 1)
}

// Uint8 returns all frames as 8-bit grayscale samples.
// Requires bits allocated <= 8 and one sample per pixel.
func (r *Reader) Uint8() ([]uint8, error) {
	if err := r.requireGray(8); err != nil {
		return nil, err
	}
	raw, err := r.rawAll()
	if err != nil {
		return nil, err
	}
	return r.convertUint8(raw), nil
}

// Uint16 returns all frames as unsigned 16-bit grayscale samples in host
// byte order. Requires bits allocated == 16 and one sample per pixel.
func (r *Reader) Uint16() ([]uint16, error) {
	if err := r.requireGray(16); err != nil {
		return nil, err
	}
	raw, err := r.rawAll()
	if err != nil {
		return nil, err
	}
	return r.convertUint16(raw), nil
}

// Int16 returns all frames as signed 16-bit grayscale samples. Requires
// bits allocated == 16, one sample per pixel, and pixel representation 1.
func (r *Reader) Int16() ([]int16, error) {
	if err := r.requireSignedGray(); err != nil {
		return nil, err
	}
	raw, err := r.rawAll()
	if err != nil {
		return nil, err
	}
	return r.convertInt16(raw), nil
}

// RGB returns all frames as interleaved 8-bit RGB triplets. Requires
// three samples per pixel. Planar-configuration-1 data is interleaved on
// the way out.
func (r *Reader) RGB() ([]uint8, error) {
	if r.info.SamplesPerPixel != 3 {
		return nil, &FormatError{Op: "RGB", Reason: fmt.Sprintf("%d samples per pixel", r.info.SamplesPerPixel)}
	}
	raw, err := r.rawAll()
	if err != nil {
		return nil, err
	}

	if r.info.PlanarConfiguration == 0 {
		out := make([]uint8, len(raw))
		copy(out, raw)
		return out, nil
	}

	// Planar: per frame, RRR...GGG...BBB... to RGBRGB...
	plane := r.info.Rows * r.info.Columns
	frameLen := plane * 3
	out := make([]uint8, len(raw))
	for f := 0; f < r.info.NumberOfFrames; f++ {
		src := raw[f*frameLen : (f+1)*frameLen]
		dst := out[f*frameLen : (f+1)*frameLen]
		for i := 0; i < plane; i++ {
			dst[i*3] = src[i]
			dst[i*3+1] = src[plane+i]
			dst[i*3+2] = src[2*plane+i]
		}
	}
	return out, nil
}

// Uint8Range returns pixels [first, first+count) as 8-bit samples,
// reading only the needed bytes.
func (r *Reader) Uint8Range(first, count int) ([]uint8, error) {
	if err := r.requireGray(8); err != nil {
		return nil, err
	}
	if err := r.checkRange(first, count); err != nil {
		return nil, err
	}
	raw, err := r.rangeBytes(first, count)
	if err != nil {
		return nil, err
	}
	return r.convertUint8(raw), nil
}

// Uint16Range returns pixels [first, first+count) as unsigned 16-bit
// samples, reading only the needed bytes.
func (r *Reader) Uint16Range(first, count int) ([]uint16, error) {
	if err := r.requireGray(16); err != nil {
		return nil, err
	}
	if err := r.checkRange(first, count); err != nil {
		return nil, err
	}
	raw, err := r.rangeBytes(first, count)
	if err != nil {
		return nil, err
	}
	return r.convertUint16(raw), nil
}

// Int16Range returns pixels [first, first+count) as signed 16-bit
// samples, reading only the needed bytes.
func (r *Reader) Int16Range(first, count int) ([]int16, error) {
	if err := r.requireSignedGray(); err != nil {
		return nil, err
	}
	if err := r.checkRange(first, count); err != nil {
		return nil, err
	}
	raw, err := r.rangeBytes(first, count)
	if err != nil {
		return nil, err
	}
	return r.convertInt16(raw), nil
}

// Downsample returns the first frame decimated by nearest neighbour so
// that max(width, height) <= maxDim. The returned slice is []uint8,
// []uint16, []int16, or interleaved RGB []uint8 matching the file's
// native typed shape.
func (r *Reader) Downsample(maxDim int) (pixels any, width, height int, err error) {
	if maxDim <= 0 {
		return nil, 0, 0, &FormatError{Op: "downsample", Reason: fmt.Sprintf("max dimension %d", maxDim)}
	}

	w, h := r.info.Columns, r.info.Rows
	longest := w
	if h > longest {
		longest = h
	}
	step := (longest + maxDim - 1) / maxDim
	if step < 1 {
		step = 1
	}
	nw := (w + step - 1) / step
	nh := (h + step - 1) / step

	if r.info.SamplesPerPixel == 3 {
		full, err := r.frameRGB()
		if err != nil {
			return nil, 0, 0, err
		}
		out := make([]uint8, nw*nh*3)
		for y := 0; y < nh; y++ {
			for x := 0; x < nw; x++ {
				src := (y*step*w + x*step) * 3
				dst := (y*nw + x) * 3
				copy(out[dst:dst+3], full[src:src+3])
			}
		}
		return out, nw, nh, nil
	}

	// Grayscale: one source row at a time so a memory-mapped source only
	// pages in the rows the decimation touches.
	switch {
	case r.info.BitsAllocated == 8:
		out := make([]uint8, nw*nh)
		for y := 0; y < nh; y++ {
			row, err := r.Uint8Range(y*step*w, w)
			if err != nil {
				return nil, 0, 0, err
			}
			for x := 0; x < nw; x++ {
				out[y*nw+x] = row[x*step]
			}
		}
		return out, nw, nh, nil

	case r.info.PixelRepresentation == 1:
		out := make([]int16, nw*nh)
		for y := 0; y < nh; y++ {
			row, err := r.Int16Range(y*step*w, w)
			if err != nil {
				return nil, 0, 0, err
			}
			for x := 0; x < nw; x++ {
				out[y*nw+x] = row[x*step]
			}
		}
		return out, nw, nh, nil

	default:
		out := make([]uint16, nw*nh)
		for y := 0; y < nh; y++ {
			row, err := r.Uint16Range(y*step*w, w)
			if err != nil {
				return nil, 0, 0, err
			}
			for x := 0; x < nw; x++ {
				out[y*nw+x] = row[x*step]
			}
		}
		return out, nw, nh, nil
	}
}

// frameRGB returns frame 0 as interleaved RGB.
func (r *Reader) frameRGB() ([]uint8, error) {
	raw, err := r.rawFrame(0)
	if err != nil {
		return nil, err
	}
	if r.info.PlanarConfiguration == 0 {
		return raw, nil
	}
	plane := r.info.Rows * r.info.Columns
	out := make([]uint8, len(raw))
	for i := 0; i < plane; i++ {
		out[i*3] = raw[i]
		out[i*3+1] = raw[plane+i]
		out[i*3+2] = raw[2*plane+i]
	}
	return out, nil
}

func (r *Reader) requireGray(bits int) error {
	if r.info.SamplesPerPixel != 1 {
		return &FormatError{Op: "read", Reason: fmt.Sprintf("%d samples per pixel", r.info.SamplesPerPixel)}
	}
	if r.info.BitsAllocated != bits {
		return &FormatError{Op: "read", Reason: fmt.Sprintf("bits allocated %d, requested %d-bit read", r.info.BitsAllocated, bits)}
	}
	return nil
}

func (r *Reader) requireSignedGray() error {
	if err := r.requireGray(16); err != nil {
		return err
	}
	if r.info.PixelRepresentation != 1 {
		return &FormatError{Op: "read", Reason: "pixel representation is unsigned"}
	}
	return nil
}

func (r *Reader) checkRange(first, count int) error {
	if first < 0 || count < 0 || first+count > r.TotalPixels() {
		return &FormatError{
			Op:     "range",
			Reason: fmt.Sprintf("[%d,%d) of %d pixels", first, first+count, r.TotalPixels()),
		}
	}
	return nil
}

func (r *Reader) convertUint8(raw []byte) []uint8 {
	out := make([]uint8, len(raw))
	if r.invert {
		max := uint8(r.maxStored())
		for i, v := range raw {
			out[i] = max - v
		}
		return out
	}
	copy(out, raw)
	return out
}

func (r *Reader) convertUint16(raw []byte) []uint16 {
	out := make([]uint16, len(raw)/2)
	if r.invert {
		max := r.maxStored()
		for i := range out {
			out[i] = max - r.order.Uint16(raw[i*2:i*2+2])
		}
		return out
	}
	for i := range out {
		out[i] = r.order.Uint16(raw[i*2 : i*2+2])
	}
	return out
}

func (r *Reader) convertInt16(raw []byte) []int16 {
	out := make([]int16, len(raw)/2)
	for i := range out {
		v := int16(r.order.Uint16(raw[i*2 : i*2+2]))
		if r.invert {
			// max+min-v over the stored two's-complement range.
			v = ^v
		}
		out[i] = v
	}
	return out
}
