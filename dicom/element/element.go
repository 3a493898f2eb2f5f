// Package element provides the DICOM data element representation used by
// the parser.
//
// Scalar values are retained as the raw bytes from the stream together with
// their VR and byte order; interpretation happens on access through the
// typed accessors. Sequence values hold their nested items instead of bytes.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1
package element

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/medview/go-dicom/dicom/tag"
	"github.com/medview/go-dicom/dicom/vr"
)

// Element represents one DICOM data element.
type Element struct {
	t      tag.Tag
	v      vr.VR
	length uint32
	offset int64
	order  binary.ByteOrder
	data   []byte
	items  []*Item
}

// Item is one item of a sequence: an ordered list of nested elements.
type Item struct {
	Elements []*Element
}

// Get returns the item's element with the given tag, if present.
func (it *Item) Get(t tag.Tag) (*Element, bool) {
	for _, e := range it.Elements {
		if e.Tag() == t {
			return e, true
		}
	}
	return nil, false
}

// New creates a scalar element holding raw value bytes.
//
// offset is the absolute position of the value field in the source and
// length the declared value length; data may be a zero-copy view into the
// underlying byte source and must not be mutated.
func New(t tag.Tag, v vr.VR, order binary.ByteOrder, offset int64, length uint32, data []byte) *Element {
	return &Element{t: t, v: v, length: length, offset: offset, order: order, data: data}
}

// NewSequence creates a sequence element holding nested items.
func NewSequence(t tag.Tag, order binary.ByteOrder, offset int64, items []*Item) *Element {
	return &Element{t: t, v: vr.SequenceOfItems, offset: offset, order: order, items: items}
}

// Tag returns the element's tag.
func (e *Element) Tag() tag.Tag { return e.t }

// VR returns the element's value representation.
func (e *Element) VR() vr.VR { return e.v }

// Length returns the declared value length in bytes.
func (e *Element) Length() uint32 { return e.length }

// ValueOffset returns the absolute byte offset of the value field.
func (e *Element) ValueOffset() int64 { return e.offset }

// RawBytes returns the raw value bytes. Nil for sequences.
func (e *Element) RawBytes() []byte { return e.data }

// Items returns the sequence items. Nil for scalar elements.
func (e *Element) Items() []*Item { return e.items }

// IsSequence reports whether the element is a sequence of items.
func (e *Element) IsSequence() bool { return e.v == vr.SequenceOfItems }

// Name returns the dictionary name of the element's tag, or "" when the
// tag is unknown (e.g. private tags).
func (e *Element) Name() string {
	info, err := tag.Find(e.t)
	if err != nil {
		return ""
	}
	return info.Name
}

// Strings interprets the value as a character string, trimming trailing
// NUL/space padding and splitting multi-valued fields at backslashes.
// Returns nil for non-string VRs.
func (e *Element) Strings() []string {
	if !e.v.IsString() {
		return nil
	}
	s := strings.TrimRight(string(e.data), "\x00 ")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\\")
}

// String renders the element for display: the tag and VR followed by all
// string values joined with backslashes for string VRs, the decoded
// numbers for numeric VRs, otherwise a short description.
func (e *Element) String() string {
	switch {
	case e.IsSequence():
		return fmt.Sprintf("%s SQ (%d items)", e.t, len(e.items))
	case e.v.IsString():
		return fmt.Sprintf("%s %s %s", e.t, e.v, strings.Join(e.Strings(), "\\"))
	case e.v.IsNumeric():
		ints := e.Ints()
		if len(ints) > 0 {
			return fmt.Sprintf("%s %s %v", e.t, e.v, ints)
		}
		return fmt.Sprintf("%s %s %v", e.t, e.v, e.Floats())
	default:
		return fmt.Sprintf("%s %s (%d bytes)", e.t, e.v, e.length)
	}
}

// Ints interprets the value as integers. Binary integer VRs decode with
// the element's byte order; IS decodes its decimal text. Returns nil when
// the VR has no integer interpretation.
func (e *Element) Ints() []int64 {
	switch e.v {
	case vr.UnsignedShort:
		return e.int16s(false)
	case vr.SignedShort:
		return e.int16s(true)
	case vr.UnsignedLong, vr.AttributeTag:
		return e.int32s(false)
	case vr.SignedLong:
		return e.int32s(true)
	case vr.UnsignedVeryLong, vr.SignedVeryLong:
		return e.int64s()
	case vr.IntegerString:
		var out []int64
		for _, s := range e.Strings() {
			n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				continue
			}
			out = append(out, n)
		}
		return out
	default:
		return nil
	}
}

// Floats interprets the value as floating-point numbers. FL/FD decode with
// the element's byte order; DS and IS decode their text. Returns nil when
// the VR has no numeric interpretation.
func (e *Element) Floats() []float64 {
	switch e.v {
	case vr.FloatingPointSingle:
		n := len(e.data) / 4
		out := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			bits := e.order.Uint32(e.data[i*4 : i*4+4])
			out = append(out, float64(math.Float32frombits(bits)))
		}
		return out
	case vr.FloatingPointDouble:
		n := len(e.data) / 8
		out := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			bits := e.order.Uint64(e.data[i*8 : i*8+8])
			out = append(out, math.Float64frombits(bits))
		}
		return out
	case vr.DecimalString, vr.IntegerString:
		var out []float64
		for _, s := range e.Strings() {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				continue
			}
			out = append(out, f)
		}
		return out
	default:
		return nil
	}
}

// FirstString returns the first string value, or "" when absent.
func (e *Element) FirstString() (string, bool) {
	ss := e.Strings()
	if len(ss) == 0 {
		return "", false
	}
	return ss[0], true
}

// FirstInt returns the first integer value, or false when absent.
func (e *Element) FirstInt() (int64, bool) {
	ints := e.Ints()
	if len(ints) == 0 {
		return 0, false
	}
	return ints[0], true
}

// FirstFloat returns the first floating-point value, or false when absent.
func (e *Element) FirstFloat() (float64, bool) {
	fs := e.Floats()
	if len(fs) == 0 {
		return 0, false
	}
	return fs[0], true
}

func (e *Element) int16s(signed bool) []int64 {
	n := len(e.data) / 2
	out := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		u := e.order.Uint16(e.data[i*2 : i*2+2])
		if signed {
			out = append(out, int64(int16(u)))
		} else {
			out = append(out, int64(u))
		}
	}
	return out
}

func (e *Element) int32s(signed bool) []int64 {
	n := len(e.data) / 4
	out := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		u := e.order.Uint32(e.data[i*4 : i*4+4])
		if signed {
			out = append(out, int64(int32(u)))
		} else {
			out = append(out, int64(u))
		}
	}
	return out
}

func (e *Element) int64s() []int64 {
	n := len(e.data) / 8
	out := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, int64(e.order.Uint64(e.data[i*8:i*8+8])))
	}
	return out
}
