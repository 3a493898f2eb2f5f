package dicomtest

import "encoding/binary"

// CTImageConfig describes the synthetic CT image fixtures used across the
// parser and pixel reader tests.
type CTImageConfig struct {
	TransferSyntaxUID string
	ExplicitVR        bool
	Order             binary.ByteOrder

	Rows, Columns       uint16
	BitsAllocated       uint16
	BitsStored          uint16
	HighBit             uint16
	PixelRepresentation uint16
	SamplesPerPixel     uint16
	Photometric         string
	NumberOfFrames      string // "" omits the element

	// PixelData is the native pixel body. When Fragments is non-nil the
	// pixel data element is written encapsulated instead.
	PixelData []byte
	Fragments [][]byte
	BOT       []uint32
}

// DefaultCT returns the 512x512 16-bit little-endian explicit-VR fixture:
// unsigned samples with value (row + col) & 0xFFFF.
func DefaultCT() CTImageConfig {
	return CTImageConfig{
		TransferSyntaxUID:   "1.2.840.10008.1.2.1",
		ExplicitVR:          true,
		Order:               binary.LittleEndian,
		Rows:                512,
		Columns:             512,
		BitsAllocated:       16,
		BitsStored:          16,
		HighBit:             15,
		PixelRepresentation: 0,
		SamplesPerPixel:     1,
		Photometric:         "MONOCHROME2",
		PixelData:           GradientU16(512, 512, binary.LittleEndian),
	}
}

// GradientU16 renders the (row + col) & 0xFFFF test pattern in the given
// byte order.
func GradientU16(rows, cols int, order binary.ByteOrder) []byte {
	out := make([]byte, rows*cols*2)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			order.PutUint16(out[(r*cols+c)*2:], uint16(r+c))
		}
	}
	return out
}

// CTImage assembles a complete Part 10 file from the config.
func CTImage(cfg CTImageConfig) []byte {
	b := NewBuilder(cfg.ExplicitVR, cfg.Order)
	b.Preamble()
	b.Meta(cfg.TransferSyntaxUID)

	b.String(0x0008, 0x0060, "CS", "CT")
	b.String(0x0010, 0x0010, "PN", "Doe^Jane")
	b.String(0x0010, 0x0020, "LO", "PID-1234")
	b.String(0x0020, 0x000D, "UI", "1.2.840.99.1.1")
	b.String(0x0020, 0x000E, "UI", "1.2.840.99.1.2")
	b.US(0x0028, 0x0002, cfg.SamplesPerPixel)
	b.String(0x0028, 0x0004, "CS", cfg.Photometric)
	if cfg.NumberOfFrames != "" {
		b.String(0x0028, 0x0008, "IS", cfg.NumberOfFrames)
	}
	b.US(0x0028, 0x0010, cfg.Rows)
	b.US(0x0028, 0x0011, cfg.Columns)
	b.String(0x0028, 0x0030, "DS", "0.5\\0.5")
	b.US(0x0028, 0x0100, cfg.BitsAllocated)
	b.US(0x0028, 0x0101, cfg.BitsStored)
	b.US(0x0028, 0x0102, cfg.HighBit)
	b.US(0x0028, 0x0103, cfg.PixelRepresentation)
	b.String(0x0028, 0x1050, "DS", "40")
	b.String(0x0028, 0x1051, "DS", "400")
	b.String(0x0028, 0x1052, "DS", "-1024")
	b.String(0x0028, 0x1053, "DS", "1")

	if cfg.Fragments != nil {
		b.EncapsulatedPixelData(cfg.BOT, cfg.Fragments...)
	} else {
		vr := "OW"
		if cfg.BitsAllocated <= 8 {
			vr = "OB"
		}
		b.Element(0x7FE0, 0x0010, vr, cfg.PixelData)
	}
	return b.Bytes()
}
