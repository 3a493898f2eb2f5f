package pixel

import (
	"fmt"

	"github.com/medview/go-dicom/dicom"
)

// Encapsulated pixel data is a series of fragment items, preceded by a
// basic offset table item whose entries locate the first fragment of each
// frame. The parser records fragment offsets and lengths without reading
// the bodies; this file groups those records into frames and materializes
// frame bytes on demand from the byte source.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4

// NumFrames returns the number of frames in the encapsulated pixel data:
// the offset table length when a table is present, otherwise one frame
// per fragment.
func NumFrames(pf *dicom.ParsedFile) int {
	if len(pf.BasicOffsetTable) > 0 {
		return len(pf.BasicOffsetTable)
	}
	return len(pf.Fragments)
}

// FrameFragments returns the fragments composing one frame.
//
// Offset table entries are byte offsets of each frame's first fragment
// item header, measured from the first byte after the offset table item.
// Fragment records hold absolute value offsets, so each fragment's header
// sits 8 bytes before its value.
func FrameFragments(pf *dicom.ParsedFile, frame int) ([]dicom.Fragment, error) {
	if len(pf.Fragments) == 0 {
		return nil, ErrNoPixelData
	}

	if len(pf.BasicOffsetTable) == 0 {
		if frame < 0 || frame >= len(pf.Fragments) {
			return nil, fmt.Errorf("frame %d out of range (%d fragments)", frame, len(pf.Fragments))
		}
		return pf.Fragments[frame : frame+1], nil
	}

	table := pf.BasicOffsetTable
	if frame < 0 || frame >= len(table) {
		return nil, fmt.Errorf("frame %d out of range (%d frames)", frame, len(table))
	}

	base := pf.Fragments[0].Offset - 8
	start := int64(table[frame])
	end := int64(-1)
	if frame+1 < len(table) {
		end = int64(table[frame+1])
	}

	var out []dicom.Fragment
	for _, frag := range pf.Fragments {
		rel := frag.Offset - 8 - base
		if rel < start {
			continue
		}
		if end >= 0 && rel >= end {
			break
		}
		out = append(out, frag)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no fragments found for frame %d", frame)
	}
	return out, nil
}

// FrameData concatenates one frame's fragment bytes, read lazily from the
// byte source.
func FrameData(src dicom.ByteSource, pf *dicom.ParsedFile, frame int) ([]byte, error) {
	frags, err := FrameFragments(pf, frame)
	if err != nil {
		return nil, err
	}

	if len(frags) == 1 {
		return src.Slice(frags[0].Offset, frags[0].Length)
	}

	total := int64(0)
	for _, f := range frags {
		total += f.Length
	}
	out := make([]byte, 0, total)
	for _, f := range frags {
		chunk, err := src.Slice(f.Offset, f.Length)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}
