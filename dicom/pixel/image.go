package pixel

import (
	"image"
)

// Image converts one frame to a standard library image: Gray for 8-bit
// grayscale, Gray16 for 16-bit grayscale (signed data is not supported
// here), and RGBA for color. Grayscale output carries the reader's usual
// MONOCHROME2 semantics.
func (r *Reader) Image(frame int) (image.Image, error) {
	rect := image.Rect(0, 0, r.info.Columns, r.info.Rows)
	perFrame := r.info.Rows * r.info.Columns

	switch {
	case r.info.SamplesPerPixel == 3:
		rgb, err := r.RGB()
		if err != nil {
			return nil, err
		}
		if frame < 0 || frame >= r.info.NumberOfFrames {
			return nil, &FormatError{Op: "image", Reason: "frame out of range"}
		}
		rgb = rgb[frame*perFrame*3 : (frame+1)*perFrame*3]
		img := image.NewRGBA(rect)
		for i := 0; i < perFrame; i++ {
			img.Pix[i*4] = rgb[i*3]
			img.Pix[i*4+1] = rgb[i*3+1]
			img.Pix[i*4+2] = rgb[i*3+2]
			img.Pix[i*4+3] = 0xFF
		}
		return img, nil

	case r.info.BitsAllocated == 8:
		pix, err := r.Uint8Range(frame*perFrame, perFrame)
		if err != nil {
			return nil, err
		}
		img := image.NewGray(rect)
		copy(img.Pix, pix)
		return img, nil

	case r.info.PixelRepresentation == 0:
		pix, err := r.Uint16Range(frame*perFrame, perFrame)
		if err != nil {
			return nil, err
		}
		img := image.NewGray16(rect)
		for i, v := range pix {
			img.Pix[i*2] = byte(v >> 8) // Gray16 stores big endian
			img.Pix[i*2+1] = byte(v)
		}
		return img, nil

	default:
		return nil, &FormatError{Op: "image", Reason: "signed pixel data has no image.Image form"}
	}
}
