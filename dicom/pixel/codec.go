// Package pixel converts a parsed DICOM file's pixel data into typed
// sample arrays: 8-bit and 16-bit grayscale (signed or unsigned) and
// interleaved RGB, with range-based and downsampled reads that compose
// with memory-mapped sources.
//
// Compressed transfer syntaxes route each frame's fragments through a
// codec registry: JPEG Lossless decodes natively, JPEG Baseline through
// the standard library, and JPEG 2000 through whatever codec the
// integrator registers.
package pixel

import (
	"sync"

	"github.com/medview/go-dicom/dicom"
)

// Codec decompresses one pixel data frame for a specific transfer syntax.
//
// Implementations must be safe for concurrent use and must return samples
// in the library's native layout: interleaved, little-endian, one or two
// bytes per sample as implied by info.BitsAllocated.
type Codec interface {
	// Decode decompresses one complete compressed frame (fragments
	// already concatenated).
	Decode(frame []byte, info *dicom.ImageInfo) ([]byte, error)

	// TransferSyntaxUID returns the transfer syntax this codec serves.
	TransferSyntaxUID() string
}

var (
	codecRegistry   = make(map[string]Codec)
	codecRegistryMu sync.RWMutex
)

// RegisterCodec registers a codec for a transfer syntax UID, replacing any
// previous registration. This is the binding point for external codecs
// such as JPEG 2000 implementations.
func RegisterCodec(transferSyntaxUID string, c Codec) {
	codecRegistryMu.Lock()
	defer codecRegistryMu.Unlock()
	codecRegistry[transferSyntaxUID] = c
}

// LookupCodec returns the codec registered for a transfer syntax UID.
func LookupCodec(transferSyntaxUID string) (Codec, error) {
	codecRegistryMu.RLock()
	defer codecRegistryMu.RUnlock()

	c, ok := codecRegistry[transferSyntaxUID]
	if !ok {
		return nil, &DecompressionError{
			TransferSyntaxUID: transferSyntaxUID,
			Cause:             ErrNoCodec,
		}
	}
	return c, nil
}

// RegisteredCodecs returns the transfer syntax UIDs with codecs bound.
func RegisteredCodecs() []string {
	codecRegistryMu.RLock()
	defer codecRegistryMu.RUnlock()

	uids := make([]string, 0, len(codecRegistry))
	for uid := range codecRegistry {
		uids = append(uids, uid)
	}
	return uids
}
