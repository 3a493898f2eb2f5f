package dicom

import (
	"encoding/binary"
	"fmt"

	"github.com/medview/go-dicom/dicom/tag"
)

// FileParser drives a full metadata parse of a DICOM Part 10 file:
// preamble and magic, file meta information, transfer syntax detection,
// then the main dataset element by element until the pixel data element,
// whose location is recorded without reading its body.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7
type FileParser struct {
	r    *Reader
	opts *Options
	ts   *TransferSyntax
}

// Parse runs a full metadata parse over the byte source. The source is
// retained by the returned ParsedFile's consumers for lazy pixel reads;
// Parse itself does not close it.
func Parse(src ByteSource, opts *Options) (*ParsedFile, error) {
	opts = opts.orDefaults()
	p := &FileParser{
		r:    NewReader(src, binary.LittleEndian),
		opts: opts,
	}

	if err := p.readPreamble(); err != nil {
		return nil, err
	}

	meta, err := p.readFileMetaInformation()
	if err != nil {
		return nil, fmt.Errorf("failed to read file meta information: %w", err)
	}

	ts, err := p.detectTransferSyntax(meta)
	if err != nil {
		return nil, err
	}
	p.ts = ts
	p.r.SetByteOrder(ts.ByteOrder)

	pf, err := p.readDataset(meta)
	if err != nil {
		return nil, err
	}

	if err := p.validateDimensions(pf); err != nil {
		return nil, err
	}
	return pf, nil
}

// readPreamble skips the 128-byte preamble and verifies the "DICM" prefix.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1
func (p *FileParser) readPreamble() error {
	if err := p.r.Skip(128); err != nil {
		return fmt.Errorf("%w: file truncated inside preamble", ErrMissingMagic)
	}
	prefix, err := p.r.ReadString(4)
	if err != nil {
		return fmt.Errorf("%w: file truncated at prefix", ErrMissingMagic)
	}
	if prefix != "DICM" {
		return fmt.Errorf("%w: expected \"DICM\", got %q", ErrMissingMagic, prefix)
	}
	return nil
}

// readFileMetaInformation parses the group 0x0002 elements, which are
// always encoded explicit VR little endian regardless of the transfer
// syntax of the main dataset.
//
// When the group length element (0002,0000) is present it bounds the
// group; otherwise elements are consumed while their group is 0x0002.
func (p *FileParser) readFileMetaInformation() (*DataSet, error) {
	metaTS := &TransferSyntax{ExplicitVR: true, ByteOrder: binary.LittleEndian}
	ep := NewElementParser(p.r, metaTS, p.opts)
	ds := NewDataSet()

	limit := p.r.Position() + p.r.Remaining()

	first, err := ep.ReadElement(limit)
	if err != nil {
		return nil, err
	}
	if err := ds.Add(first); err != nil {
		return nil, err
	}

	if first.Tag() == tag.FileMetaInformationGroupLength {
		groupLen, ok := first.FirstInt()
		if !ok || groupLen < 0 {
			return nil, &ParseError{
				Offset:  first.ValueOffset(),
				Context: "file meta group length unreadable",
				Err:     ErrInvalidElement,
			}
		}
		end := p.r.Position() + groupLen
		if end > limit {
			return nil, &LengthError{
				Tag:      first.Tag(),
				Declared: uint32(groupLen),
				Offset:   p.r.Position(),
				Limit:    limit,
			}
		}
		for p.r.Position() < end {
			e, err := ep.ReadElement(end)
			if err != nil {
				return nil, err
			}
			if err := ds.Add(e); err != nil {
				return nil, err
			}
		}
		return ds, nil
	}

	// No group length: consume while the next tag's group is 0x0002.
	for p.r.Remaining() >= 2 {
		pos := p.r.Position()
		group, err := p.r.ReadUint16()
		if err != nil {
			return nil, err
		}
		if err := p.r.SeekTo(pos); err != nil {
			return nil, err
		}
		if group != tag.MetadataGroup {
			break
		}
		e, err := ep.ReadElement(limit)
		if err != nil {
			return nil, err
		}
		if err := ds.Add(e); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// detectTransferSyntax extracts the transfer syntax UID from the file meta
// information and derives the encoding parameters.
func (p *FileParser) detectTransferSyntax(meta *DataSet) (*TransferSyntax, error) {
	e, ok := meta.Get(tag.TransferSyntaxUID)
	if !ok {
		return nil, &TransferSyntaxError{UID: ""}
	}
	tsUID, ok := e.FirstString()
	if !ok {
		return nil, &TransferSyntaxError{UID: ""}
	}
	return ParseTransferSyntax(tsUID)
}

// readDataset parses the main dataset. File meta elements are carried into
// the resulting dataset so that callers can look up the transfer syntax
// UID by tag like any other attribute. Parsing stops once the pixel data
// element has been recorded or the source is exhausted.
func (p *FileParser) readDataset(meta *DataSet) (*ParsedFile, error) {
	ep := NewElementParser(p.r, p.ts, p.opts)
	pf := &ParsedFile{TransferSyntax: p.ts, DataSet: NewDataSet()}

	for _, e := range meta.Elements() {
		if err := pf.DataSet.Add(e); err != nil {
			return nil, err
		}
	}

	limit := p.r.Position() + p.r.Remaining()
	for p.r.Remaining() > 0 {
		e, err := ep.ReadElement(limit)
		if err != nil {
			return nil, err
		}
		if err := pf.DataSet.Add(e); err != nil {
			return nil, err
		}
		if e.Tag() == tag.PixelData {
			pf.PixelDataOffset = ep.pixelOffset
			pf.PixelDataLength = ep.pixelLength
			pf.Fragments = ep.fragments
			pf.BasicOffsetTable = ep.offsetTable
			break
		}
	}
	return pf, nil
}

// validateDimensions rejects rows/columns outside the configured maxima
// before any consumer trusts them.
func (p *FileParser) validateDimensions(pf *ParsedFile) error {
	rows, cols := int64(0), int64(0)
	if e, ok := pf.Get(tag.Rows); ok {
		if n, ok := e.FirstInt(); ok {
			rows = n
		}
	}
	if e, ok := pf.Get(tag.Columns); ok {
		if n, ok := e.FirstInt(); ok {
			cols = n
		}
	}
	if rows == 0 && cols == 0 {
		return nil
	}

	if rows < 0 || rows > int64(p.opts.MaxRows) {
		return fmt.Errorf("%w: rows %d exceeds maximum %d", ErrDimensionOutOfRange, rows, p.opts.MaxRows)
	}
	if cols < 0 || cols > int64(p.opts.MaxColumns) {
		return fmt.Errorf("%w: columns %d exceeds maximum %d", ErrDimensionOutOfRange, cols, p.opts.MaxColumns)
	}
	if rows*cols > p.opts.MaxPixelArea {
		return fmt.Errorf("%w: %dx%d exceeds maximum pixel area %d",
			ErrDimensionOutOfRange, rows, cols, p.opts.MaxPixelArea)
	}
	return nil
}
