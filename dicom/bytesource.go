package dicom

import (
	"fmt"
	"os"
)

// ByteSource abstracts random-access byte input behind a uniform slicing
// contract. Two variants exist: an owned in-memory buffer and a read-only
// memory-mapped file region. Higher layers never branch on which one they
// hold.
type ByteSource interface {
	// Len returns the total number of readable bytes.
	Len() int64
	// Slice returns a zero-copy view of [offset, offset+length). The view
	// must not be mutated. Fails with ErrUnexpectedEOF when the range
	// passes the end of the source.
	Slice(offset, length int64) ([]byte, error)
	// Close releases any underlying OS resources. Closing an in-memory
	// source is a no-op. The source must not be used after Close.
	Close() error
}

// memorySource is the owned in-memory ByteSource variant.
type memorySource struct {
	data []byte
}

// NewBytesSource wraps an in-memory buffer as a ByteSource. The buffer is
// not copied; the caller must not mutate it while the source is in use.
func NewBytesSource(data []byte) ByteSource {
	return &memorySource{data: data}
}

func (s *memorySource) Len() int64 { return int64(len(s.data)) }

func (s *memorySource) Slice(offset, length int64) ([]byte, error) {
	return sliceRange(s.data, offset, length)
}

func (s *memorySource) Close() error { return nil }

// OpenFile reads the whole file at path into an in-memory ByteSource.
func OpenFile(path string) (ByteSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return NewBytesSource(data), nil
}

// OpenFileRange reads the byte range [offset, offset+length) of the file at
// path into an in-memory ByteSource. A negative length means "to the end of
// the file".
func OpenFileRange(path string, offset, length int64) (ByteSource, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	offset, length, err = resolveRange(f, offset, length)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, length)
	if _, err := f.ReadAt(buf, offset); err != nil {
		return nil, fmt.Errorf("failed to read %s [%d,%d): %w", path, offset, offset+length, err)
	}
	return NewBytesSource(buf), nil
}

// sliceRange bounds-checks and slices a backing buffer.
func sliceRange(data []byte, offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > int64(len(data)) {
		return nil, fmt.Errorf("%w: slice [%d,%d) of %d bytes",
			ErrUnexpectedEOF, offset, offset+length, len(data))
	}
	return data[offset : offset+length], nil
}

// resolveRange validates a requested (offset, length) against the file size
// and resolves a negative length to "rest of file".
func resolveRange(f *os.File, offset, length int64) (off, n int64, err error) {
	st, err := f.Stat()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to stat %s: %w", f.Name(), err)
	}
	size := st.Size()

	if offset < 0 || offset > size {
		return 0, 0, fmt.Errorf("%w: range offset %d of %d-byte file", ErrUnexpectedEOF, offset, size)
	}
	if length < 0 {
		length = size - offset
	}
	if offset+length > size {
		return 0, 0, fmt.Errorf("%w: range [%d,%d) of %d-byte file",
			ErrUnexpectedEOF, offset, offset+length, size)
	}
	return offset, length, nil
}
