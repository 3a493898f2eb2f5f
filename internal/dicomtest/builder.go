// Package dicomtest builds synthetic DICOM byte streams for tests. It has
// no dependency on the parser packages so every layer can use it.
package dicomtest

import (
	"bytes"
	"encoding/binary"
)

// Builder assembles a DICOM Part 10 file byte by byte.
type Builder struct {
	buf bytes.Buffer

	// Order and ExplicitVR apply to dataset elements written after the
	// meta group; the meta group itself is always explicit little endian.
	Order      binary.ByteOrder
	ExplicitVR bool
}

// NewBuilder creates a builder for a dataset encoded with the given VR
// mode and byte order.
func NewBuilder(explicitVR bool, order binary.ByteOrder) *Builder {
	return &Builder{Order: order, ExplicitVR: explicitVR}
}

// Bytes returns the assembled file.
func (b *Builder) Bytes() []byte { return b.buf.Bytes() }

// Raw appends arbitrary bytes.
func (b *Builder) Raw(p []byte) { b.buf.Write(p) }

// Preamble writes the 128-byte preamble and "DICM" prefix.
func (b *Builder) Preamble() {
	b.buf.Write(make([]byte, 128))
	b.buf.WriteString("DICM")
}

// Meta writes a minimal file meta group: the group length element and the
// transfer syntax UID, explicit VR little endian.
func (b *Builder) Meta(tsUID string) {
	ts := metaElement(0x0002, 0x0010, "UI", padded(tsUID, 0x00))
	groupLen := make([]byte, 4)
	binary.LittleEndian.PutUint32(groupLen, uint32(len(ts)))
	b.Raw(metaElement(0x0002, 0x0000, "UL", groupLen))
	b.Raw(ts)
}

// metaElement encodes one explicit-VR little-endian element.
func metaElement(group, elem uint16, vr string, value []byte) []byte {
	var out bytes.Buffer
	hdr := make([]byte, 4)
	binary.LittleEndian.PutUint16(hdr[0:], group)
	binary.LittleEndian.PutUint16(hdr[2:], elem)
	out.Write(hdr)
	out.WriteString(vr)
	if longVR(vr) {
		out.Write([]byte{0, 0})
		l := make([]byte, 4)
		binary.LittleEndian.PutUint32(l, uint32(len(value)))
		out.Write(l)
	} else {
		l := make([]byte, 2)
		binary.LittleEndian.PutUint16(l, uint16(len(value)))
		out.Write(l)
	}
	out.Write(value)
	return out.Bytes()
}

// Element writes one dataset element using the builder's VR mode and byte
// order.
func (b *Builder) Element(group, elem uint16, vr string, value []byte) {
	hdr := make([]byte, 4)
	b.Order.PutUint16(hdr[0:], group)
	b.Order.PutUint16(hdr[2:], elem)
	b.buf.Write(hdr)

	if b.ExplicitVR {
		b.buf.WriteString(vr)
		if longVR(vr) {
			b.buf.Write([]byte{0, 0})
			l := make([]byte, 4)
			b.Order.PutUint32(l, uint32(len(value)))
			b.buf.Write(l)
		} else {
			l := make([]byte, 2)
			b.Order.PutUint16(l, uint16(len(value)))
			b.buf.Write(l)
		}
	} else {
		l := make([]byte, 4)
		b.Order.PutUint32(l, uint32(len(value)))
		b.buf.Write(l)
	}
	b.buf.Write(value)
}

// ElementHeader writes an element header with an explicit declared length
// and no value bytes, for malformed-length fixtures.
func (b *Builder) ElementHeader(group, elem uint16, vr string, declaredLen uint32) {
	hdr := make([]byte, 4)
	b.Order.PutUint16(hdr[0:], group)
	b.Order.PutUint16(hdr[2:], elem)
	b.buf.Write(hdr)

	if b.ExplicitVR {
		b.buf.WriteString(vr)
		if longVR(vr) {
			b.buf.Write([]byte{0, 0})
			l := make([]byte, 4)
			b.Order.PutUint32(l, declaredLen)
			b.buf.Write(l)
		} else {
			l := make([]byte, 2)
			b.Order.PutUint16(l, uint16(declaredLen))
			b.buf.Write(l)
		}
	} else {
		l := make([]byte, 4)
		b.Order.PutUint32(l, declaredLen)
		b.buf.Write(l)
	}
}

// String writes a string element padded to even length.
func (b *Builder) String(group, elem uint16, vr, s string) {
	pad := byte(' ')
	if vr == "UI" {
		pad = 0x00
	}
	b.Element(group, elem, vr, padded(s, pad))
}

// US writes an unsigned-short element in the dataset byte order.
func (b *Builder) US(group, elem uint16, vals ...uint16) {
	value := make([]byte, 2*len(vals))
	for i, v := range vals {
		b.Order.PutUint16(value[i*2:], v)
	}
	b.Element(group, elem, "US", value)
}

// SequenceUndefined opens an undefined-length sequence element.
func (b *Builder) SequenceUndefined(group, elem uint16) {
	b.ElementHeader(group, elem, "SQ", 0xFFFFFFFF)
}

// ItemUndefined opens an undefined-length item.
func (b *Builder) ItemUndefined() {
	b.itemHeader(0xE000, 0xFFFFFFFF)
}

// Item opens a defined-length item.
func (b *Builder) Item(length uint32) {
	b.itemHeader(0xE000, length)
}

// ItemDelimiter closes an undefined-length item.
func (b *Builder) ItemDelimiter() {
	b.itemHeader(0xE00D, 0)
}

// SequenceDelimiter closes an undefined-length sequence.
func (b *Builder) SequenceDelimiter() {
	b.itemHeader(0xE0DD, 0)
}

func (b *Builder) itemHeader(elem uint16, length uint32) {
	hdr := make([]byte, 8)
	b.Order.PutUint16(hdr[0:], 0xFFFE)
	b.Order.PutUint16(hdr[2:], elem)
	b.Order.PutUint32(hdr[4:], length)
	b.buf.Write(hdr)
}

// EncapsulatedPixelData writes an undefined-length pixel data element with
// a basic offset table item (bot may be nil for an empty table) followed
// by the given fragments and a sequence delimiter. Fragments are padded to
// even length with zero.
func (b *Builder) EncapsulatedPixelData(bot []uint32, fragments ...[]byte) {
	b.ElementHeader(0x7FE0, 0x0010, "OB", 0xFFFFFFFF)

	table := make([]byte, 4*len(bot))
	for i, off := range bot {
		b.Order.PutUint32(table[i*4:], off)
	}
	b.itemHeader(0xE000, uint32(len(table)))
	b.buf.Write(table)

	for _, frag := range fragments {
		if len(frag)%2 == 1 {
			frag = append(append([]byte{}, frag...), 0x00)
		}
		b.itemHeader(0xE000, uint32(len(frag)))
		b.buf.Write(frag)
	}
	b.SequenceDelimiter()
}

func longVR(vr string) bool {
	switch vr {
	case "OB", "OD", "OF", "OL", "OV", "OW", "SQ", "UC", "UN", "UR", "UT":
		return true
	default:
		return false
	}
}

func padded(s string, pad byte) []byte {
	out := []byte(s)
	if len(out)%2 == 1 {
		out = append(out, pad)
	}
	return out
}
