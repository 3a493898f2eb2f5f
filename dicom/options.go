package dicom

// Options bound the resources a parse may consume. A nil *Options means
// DefaultOptions().
type Options struct {
	// MaxSequenceDepth bounds sequence/item nesting. Parsing past this
	// depth fails with ErrSequenceTooDeep.
	MaxSequenceDepth int

	// MaxRows and MaxColumns bound each image dimension.
	MaxRows    int
	MaxColumns int

	// MaxPixelArea bounds rows*columns.
	MaxPixelArea int64

	// MaxPixelBufferBytes is the allocation ceiling for a full decoded
	// pixel buffer (rows * columns * samples * bytes-per-sample * frames).
	MaxPixelBufferBytes int64

	// MmapThreshold is the file size at or above which Open memory-maps
	// the file instead of reading it into memory.
	MmapThreshold int64
}

// DefaultOptions returns the default resource limits.
func DefaultOptions() *Options {
	return &Options{
		MaxSequenceDepth:    16,
		MaxRows:             16384,
		MaxColumns:          16384,
		MaxPixelArea:        64 << 20,
		MaxPixelBufferBytes: 2 << 30,
		MmapThreshold:       10 << 20,
	}
}

func (o *Options) orDefaults() *Options {
	if o == nil {
		return DefaultOptions()
	}
	return o
}
