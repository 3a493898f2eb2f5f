// Package dicom implements reading of DICOM Part 10 files: byte sources
// (in-memory and memory-mapped), the binary stream reader, transfer-syntax
// detection, data element parsing with security limits, and the Decoder
// facade that higher layers consume.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html
package dicom

import (
	"errors"
	"fmt"

	"github.com/medview/go-dicom/dicom/tag"
)

// ErrFileNotFound indicates the byte source could not open the given path.
var ErrFileNotFound = errors.New("file not found")

// ErrMissingMagic indicates the 128-byte preamble is not followed by the
// ASCII prefix "DICM".
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1
var ErrMissingMagic = errors.New("missing DICM prefix after preamble")

// ErrUnexpectedEOF indicates a read would pass the end of the byte source.
var ErrUnexpectedEOF = errors.New("unexpected end of input")

// ErrUnsupportedTransferSyntax indicates the transfer syntax UID in the
// file meta information is not one this library can decode.
var ErrUnsupportedTransferSyntax = errors.New("unsupported transfer syntax")

// ErrInvalidElement indicates a data element whose VR is unrecognized or
// whose value bytes are inconsistent with its VR.
var ErrInvalidElement = errors.New("invalid data element")

// ErrMaliciousLength indicates an element declared a value length larger
// than its enclosing container. Parsing stops before any allocation
// proportional to the declared length.
var ErrMaliciousLength = errors.New("declared length exceeds enclosing container")

// ErrSequenceTooDeep indicates sequence nesting past the configured
// maximum depth.
var ErrSequenceTooDeep = errors.New("sequence nesting too deep")

// ErrDimensionOutOfRange indicates rows or columns outside the configured
// maxima.
var ErrDimensionOutOfRange = errors.New("image dimensions out of range")

// ParseError carries the byte offset at which a parse failure occurred.
type ParseError struct {
	Offset  int64
	Context string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%v: %s at offset %d", e.Err, e.Context, e.Offset)
	}
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LengthError wraps ErrMaliciousLength with the offending element.
type LengthError struct {
	Tag      tag.Tag
	Declared uint32
	Offset   int64
	Limit    int64
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%v: element %s declares %d bytes at offset %d, container ends at %d",
		ErrMaliciousLength, e.Tag, e.Declared, e.Offset, e.Limit)
}

func (e *LengthError) Unwrap() error { return ErrMaliciousLength }

// DepthError wraps ErrSequenceTooDeep with the depth that was exceeded.
type DepthError struct {
	Tag   tag.Tag
	Depth int
	Max   int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("%v: sequence %s at depth %d exceeds maximum %d",
		ErrSequenceTooDeep, e.Tag, e.Depth, e.Max)
}

func (e *DepthError) Unwrap() error { return ErrSequenceTooDeep }

// TransferSyntaxError wraps ErrUnsupportedTransferSyntax with the UID seen.
type TransferSyntaxError struct {
	UID string
}

func (e *TransferSyntaxError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnsupportedTransferSyntax, e.UID)
}

func (e *TransferSyntaxError) Unwrap() error { return ErrUnsupportedTransferSyntax }
