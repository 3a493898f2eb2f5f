package dicom

import (
	"fmt"

	"github.com/medview/go-dicom/dicom/element"
	"github.com/medview/go-dicom/dicom/tag"
	"github.com/medview/go-dicom/dicom/vr"
)

// undefinedLength is the 0xFFFFFFFF sentinel in a 32-bit length field.
// It is legal only on sequences, sequence items, and the encapsulated
// pixel data element.
const undefinedLength = 0xFFFFFFFF

// ElementParser reads one data element at a time from a positioned Reader.
//
// It handles explicit and implicit VR encoding, walks sequences and items
// recursively, and enforces the parse-time security limits: a declared
// length may never exceed the enclosing container, undefined lengths are
// accepted only where the standard allows them, and sequence nesting is
// bounded by Options.MaxSequenceDepth.
//
// The pixel data element (7FE0,0010) is never materialized: its offset and
// length (and, for encapsulated data, its fragment offsets) are recorded
// and the body is skipped.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
type ElementParser struct {
	r    *Reader
	ts   *TransferSyntax
	opts *Options

	// depth counts sequence nesting; it is the single source of truth for
	// the ErrSequenceTooDeep check.
	depth int

	// Recorded by readPixelData / readEncapsulatedPixelData.
	pixelOffset int64
	pixelLength int64
	fragments   []Fragment
	offsetTable []uint32
}

// NewElementParser creates an element parser for the given reader,
// transfer syntax, and limits.
func NewElementParser(r *Reader, ts *TransferSyntax, opts *Options) *ElementParser {
	return &ElementParser{r: r, ts: ts, opts: opts.orDefaults()}
}

// ReadElement parses exactly one data element starting at the reader's
// cursor. limit is the absolute offset at which the enclosing container
// (file or item) ends; any declared length reaching past it fails with
// ErrMaliciousLength.
func (p *ElementParser) ReadElement(limit int64) (*element.Element, error) {
	t, err := p.readTag()
	if err != nil {
		return nil, err
	}
	if t.IsDelimiter() {
		return nil, &ParseError{
			Offset:  p.r.Position() - 4,
			Context: fmt.Sprintf("unexpected delimiter %s outside sequence", t),
			Err:     ErrInvalidElement,
		}
	}

	v, length, err := p.readVRAndLength(t)
	if err != nil {
		return nil, err
	}

	if length == undefinedLength {
		switch {
		case v == vr.SequenceOfItems:
			return p.readSequence(t, -1, limit)
		case t == tag.PixelData && p.depth == 0 && (v == vr.OtherByte || v == vr.OtherWord || v == vr.Unknown):
			return p.readEncapsulatedPixelData(t, v)
		case v == vr.Unknown:
			// Implicit-VR element of unknown tag with undefined length can
			// only be a sequence (PS3.5 6.2.2).
			return p.readSequence(t, -1, limit)
		default:
			return nil, &ParseError{
				Offset:  p.r.Position(),
				Context: fmt.Sprintf("undefined length on %s with VR %s", t, v),
				Err:     ErrInvalidElement,
			}
		}
	}

	valueStart := p.r.Position()
	if valueStart+int64(length) > limit {
		return nil, &LengthError{Tag: t, Declared: length, Offset: valueStart, Limit: limit}
	}

	if v == vr.SequenceOfItems {
		return p.readSequence(t, int64(length), limit)
	}

	if t == tag.PixelData && p.depth == 0 {
		return p.readPixelData(t, v, valueStart, length)
	}

	data, err := p.r.Take(int64(length))
	if err != nil {
		return nil, err
	}
	return element.New(t, v, p.r.ByteOrder(), valueStart, length, data), nil
}

// readTag reads a 4-byte (group, element) pair.
func (p *ElementParser) readTag() (tag.Tag, error) {
	group, err := p.r.ReadUint16()
	if err != nil {
		return tag.Tag{}, err
	}
	elem, err := p.r.ReadUint16()
	if err != nil {
		return tag.Tag{}, err
	}
	return tag.New(group, elem), nil
}

// readVRAndLength reads the VR and length fields per the decision table:
// explicit short VRs carry a 16-bit length, explicit long VRs two reserved
// bytes plus a 32-bit length, and implicit elements a bare 32-bit length
// with the VR resolved from the data dictionary.
func (p *ElementParser) readVRAndLength(t tag.Tag) (vr.VR, uint32, error) {
	if !p.ts.ExplicitVR {
		v := p.lookupVR(t)
		length, err := p.r.ReadUint32()
		if err != nil {
			return 0, 0, err
		}
		return v, length, nil
	}

	vrStr, err := p.r.ReadString(2)
	if err != nil {
		return 0, 0, err
	}
	v, err := vr.Parse(vrStr)
	if err != nil {
		return 0, 0, &ParseError{
			Offset:  p.r.Position() - 2,
			Context: fmt.Sprintf("unrecognized VR %q on %s", vrStr, t),
			Err:     ErrInvalidElement,
		}
	}

	if v.UsesLongLength() {
		// Two reserved bytes, then the 32-bit length.
		if _, err := p.r.ReadUint16(); err != nil {
			return 0, 0, err
		}
		length, err := p.r.ReadUint32()
		if err != nil {
			return 0, 0, err
		}
		return v, length, nil
	}

	length16, err := p.r.ReadUint16()
	if err != nil {
		return 0, 0, err
	}
	return v, uint32(length16), nil
}

// lookupVR resolves a tag's VR from the data dictionary for implicit-VR
// streams. Unknown tags fall back to UN.
func (p *ElementParser) lookupVR(t tag.Tag) vr.VR {
	info, err := tag.Find(t)
	if err != nil || len(info.VRs) == 0 {
		return vr.Unknown
	}
	return info.VRs[0]
}

// readSequence parses a sequence value: zero or more items consumed until
// either the declared length is exhausted (declaredLen >= 0) or a sequence
// delimitation item is seen (declaredLen < 0, undefined length).
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
func (p *ElementParser) readSequence(t tag.Tag, declaredLen, limit int64) (*element.Element, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.opts.MaxSequenceDepth {
		return nil, &DepthError{Tag: t, Depth: p.depth, Max: p.opts.MaxSequenceDepth}
	}

	seqStart := p.r.Position()
	end := limit
	if declaredLen >= 0 {
		end = seqStart + declaredLen
		if end > limit {
			return nil, &LengthError{Tag: t, Declared: uint32(declaredLen), Offset: seqStart, Limit: limit}
		}
	}

	var items []*element.Item
	for {
		if declaredLen >= 0 && p.r.Position() >= end {
			break
		}

		itemTag, err := p.readTag()
		if err != nil {
			return nil, err
		}
		itemLen, err := p.r.ReadUint32()
		if err != nil {
			return nil, err
		}

		if itemTag == tag.SequenceDelimitationItem {
			if declaredLen >= 0 {
				return nil, &ParseError{
					Offset:  p.r.Position() - 8,
					Context: fmt.Sprintf("sequence delimiter inside defined-length sequence %s", t),
					Err:     ErrInvalidElement,
				}
			}
			break
		}
		if itemTag != tag.Item {
			return nil, &ParseError{
				Offset:  p.r.Position() - 8,
				Context: fmt.Sprintf("expected item tag in sequence %s, got %s", t, itemTag),
				Err:     ErrInvalidElement,
			}
		}

		item, err := p.readItem(t, itemLen, end)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return element.NewSequence(t, p.r.ByteOrder(), seqStart, items), nil
}

// readItem parses one sequence item: nested elements until the item's
// declared length is consumed or an item delimitation item is seen.
func (p *ElementParser) readItem(seqTag tag.Tag, itemLen uint32, limit int64) (*element.Item, error) {
	item := &element.Item{}

	if itemLen != undefinedLength {
		start := p.r.Position()
		end := start + int64(itemLen)
		if end > limit {
			return nil, &LengthError{Tag: tag.Item, Declared: itemLen, Offset: start, Limit: limit}
		}
		for p.r.Position() < end {
			e, err := p.ReadElement(end)
			if err != nil {
				return nil, err
			}
			item.Elements = append(item.Elements, e)
		}
		return item, nil
	}

	for {
		// Peek at the next tag; the positional reader makes un-reading a
		// seek back.
		pos := p.r.Position()
		t, err := p.readTag()
		if err != nil {
			return nil, err
		}
		if t == tag.ItemDelimitationItem {
			if _, err := p.r.ReadUint32(); err != nil {
				return nil, err
			}
			return item, nil
		}
		if t == tag.SequenceDelimitationItem {
			return nil, &ParseError{
				Offset:  pos,
				Context: fmt.Sprintf("sequence delimiter inside item of %s", seqTag),
				Err:     ErrInvalidElement,
			}
		}
		if err := p.r.SeekTo(pos); err != nil {
			return nil, err
		}

		e, err := p.ReadElement(limit)
		if err != nil {
			return nil, err
		}
		item.Elements = append(item.Elements, e)
	}
}

// readPixelData records the offset and length of a native (defined-length)
// pixel data element and skips its body without materializing it.
func (p *ElementParser) readPixelData(t tag.Tag, v vr.VR, valueStart int64, length uint32) (*element.Element, error) {
	if err := p.r.Skip(int64(length)); err != nil {
		return nil, err
	}
	p.pixelOffset = valueStart
	p.pixelLength = int64(length)
	return element.New(t, v, p.r.ByteOrder(), valueStart, length, nil), nil
}

// readEncapsulatedPixelData walks an undefined-length pixel data element:
// a basic offset table item, pixel fragments, and a sequence delimiter.
// Fragment offsets and lengths are recorded; no fragment is materialized.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
func (p *ElementParser) readEncapsulatedPixelData(t tag.Tag, v vr.VR) (*element.Element, error) {
	valueStart := p.r.Position()
	limit := p.r.Position() + p.r.Remaining()
	first := true

	for {
		itemTag, err := p.readTag()
		if err != nil {
			return nil, err
		}
		itemLen, err := p.r.ReadUint32()
		if err != nil {
			return nil, err
		}

		if itemTag == tag.SequenceDelimitationItem {
			break
		}
		if itemTag != tag.Item {
			return nil, &ParseError{
				Offset:  p.r.Position() - 8,
				Context: fmt.Sprintf("expected fragment item in pixel data, got %s", itemTag),
				Err:     ErrInvalidElement,
			}
		}
		if itemLen == undefinedLength {
			return nil, &ParseError{
				Offset:  p.r.Position() - 4,
				Context: "undefined length on pixel data fragment",
				Err:     ErrInvalidElement,
			}
		}

		fragStart := p.r.Position()
		if fragStart+int64(itemLen) > limit {
			return nil, &LengthError{Tag: t, Declared: itemLen, Offset: fragStart, Limit: limit}
		}

		if first {
			first = false
			// The first item is the basic offset table; it may be empty.
			if itemLen > 0 {
				if itemLen%4 != 0 {
					return nil, &ParseError{
						Offset:  fragStart,
						Context: fmt.Sprintf("basic offset table length %d not a multiple of 4", itemLen),
						Err:     ErrInvalidElement,
					}
				}
				table := make([]uint32, itemLen/4)
				for i := range table {
					off, err := p.r.ReadUint32()
					if err != nil {
						return nil, err
					}
					table[i] = off
				}
				p.offsetTable = table
			}
			continue
		}

		p.fragments = append(p.fragments, Fragment{Offset: fragStart, Length: int64(itemLen)})
		if err := p.r.Skip(int64(itemLen)); err != nil {
			return nil, err
		}
	}

	p.pixelOffset = valueStart
	p.pixelLength = p.r.Position() - valueStart
	return element.New(t, v, p.r.ByteOrder(), valueStart, undefinedLength, nil), nil
}
