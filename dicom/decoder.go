package dicom

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/medview/go-dicom/dicom/element"
	"github.com/medview/go-dicom/dicom/tag"
)

// Decoder is the read-only facade over a parsed DICOM file.
//
// A Decoder is constructed by parsing a file (or byte range) exactly once;
// it then serves metadata queries and lazy pixel reads until Close. The
// parsed file is immutable after construction; the small display-string
// cache behind Info is guarded by a mutex, so metadata queries are safe
// from multiple goroutines.
type Decoder struct {
	src  ByteSource
	file *ParsedFile
	opts *Options

	mu    sync.Mutex
	cache map[tag.Tag]string
}

// Open parses the DICOM file at path. Files at or above
// Options.MmapThreshold are memory-mapped; smaller files are read into
// memory. The mapping is released if parsing fails.
func Open(path string, opts *Options) (*Decoder, error) {
	opts = opts.orDefaults()

	st, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	var src ByteSource
	if st.Size() >= opts.MmapThreshold {
		src, err = OpenMapped(path)
	} else {
		src, err = OpenFile(path)
	}
	if err != nil {
		return nil, err
	}
	return fromSource(src, opts)
}

// OpenRange parses the DICOM file stored in the byte range
// [offset, offset+length) of the file at path, memory-mapping the range.
// A negative length means "to the end of the file".
func OpenRange(path string, offset, length int64, opts *Options) (*Decoder, error) {
	opts = opts.orDefaults()
	src, err := OpenMappedRange(path, offset, length)
	if err != nil {
		return nil, err
	}
	return fromSource(src, opts)
}

// FromBytes parses a DICOM file already held in memory.
func FromBytes(data []byte, opts *Options) (*Decoder, error) {
	return fromSource(NewBytesSource(data), opts.orDefaults())
}

// fromSource parses and wraps the source, releasing it on any parse
// failure so a half-constructed Decoder never leaks a mapping.
func fromSource(src ByteSource, opts *Options) (*Decoder, error) {
	pf, err := Parse(src, opts)
	if err != nil {
		src.Close()
		return nil, err
	}
	return &Decoder{
		src:   src,
		file:  pf,
		opts:  opts,
		cache: make(map[tag.Tag]string),
	}, nil
}

// Close releases the underlying byte source.
func (d *Decoder) Close() error { return d.src.Close() }

// File returns the immutable parse result.
func (d *Decoder) File() *ParsedFile { return d.file }

// Source returns the underlying byte source for lazy pixel reads.
func (d *Decoder) Source() ByteSource { return d.src }

// Limits returns the resource limits the decoder was opened with.
func (d *Decoder) Limits() *Options { return d.opts }

// Info returns a display string for the element with the given tag:
// string values joined with backslashes, numeric values formatted in
// decimal. Results are cached.
func (d *Decoder) Info(t tag.Tag) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if s, ok := d.cache[t]; ok {
		return s, true
	}
	e, ok := d.file.Get(t)
	if !ok {
		return "", false
	}
	s := displayString(e)
	d.cache[t] = s
	return s, true
}

// Int returns the first integer value of the element with the given tag.
func (d *Decoder) Int(t tag.Tag) (int64, bool) {
	e, ok := d.file.Get(t)
	if !ok {
		return 0, false
	}
	return e.FirstInt()
}

// Float returns the first floating-point value of the element with the
// given tag.
func (d *Decoder) Float(t tag.Tag) (float64, bool) {
	e, ok := d.file.Get(t)
	if !ok {
		return 0, false
	}
	return e.FirstFloat()
}

// AllTags returns display strings for every top-level element, keyed by
// tag. Sequences and binary elements render as short descriptions.
func (d *Decoder) AllTags() map[tag.Tag]string {
	out := make(map[tag.Tag]string, d.file.DataSet.Len())
	for _, e := range d.file.DataSet.Elements() {
		out[e.Tag()] = displayString(e)
	}
	return out
}

// Dimensions returns (columns, rows), or zeros when absent.
func (d *Decoder) Dimensions() (width, height int) {
	if n, ok := d.Int(tag.Columns); ok {
		width = int(n)
	}
	if n, ok := d.Int(tag.Rows); ok {
		height = int(n)
	}
	return width, height
}

// PixelSpacing returns the row and column spacing in millimetres.
func (d *Decoder) PixelSpacing() (row, col float64, ok bool) {
	e, found := d.file.Get(tag.PixelSpacing)
	if !found {
		return 0, 0, false
	}
	fs := e.Floats()
	if len(fs) < 2 {
		return 0, 0, false
	}
	return fs[0], fs[1], true
}

// WindowSettings returns the first window center/width pair.
func (d *Decoder) WindowSettings() (center, width float64, ok bool) {
	c, okC := d.Float(tag.WindowCenter)
	w, okW := d.Float(tag.WindowWidth)
	return c, w, okC && okW
}

// Rescale returns the rescale slope and intercept, defaulting to the
// identity transform (1, 0) when absent.
func (d *Decoder) Rescale() (slope, intercept float64) {
	slope = 1
	if s, ok := d.Float(tag.RescaleSlope); ok {
		slope = s
	}
	if i, ok := d.Float(tag.RescaleIntercept); ok {
		intercept = i
	}
	return slope, intercept
}

// IsCompressed reports whether pixel data is stored compressed.
func (d *Decoder) IsCompressed() bool {
	return d.file.TransferSyntax.Compressed()
}

// TransferSyntaxUID returns the UID the main dataset is encoded with.
func (d *Decoder) TransferSyntaxUID() string {
	return d.file.TransferSyntax.UID
}

// displayString renders an element's value for human consumption.
func displayString(e *element.Element) string {
	switch {
	case e.IsSequence():
		return fmt.Sprintf("SQ (%d items)", len(e.Items()))
	case e.VR().IsString():
		return strings.Join(e.Strings(), "\\")
	case e.VR().IsNumeric():
		if ints := e.Ints(); ints != nil {
			parts := make([]string, len(ints))
			for i, n := range ints {
				parts[i] = strconv.FormatInt(n, 10)
			}
			return strings.Join(parts, "\\")
		}
		fs := e.Floats()
		parts := make([]string, len(fs))
		for i, f := range fs {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return strings.Join(parts, "\\")
	default:
		return fmt.Sprintf("<%s, %d bytes>", e.VR(), e.Length())
	}
}
