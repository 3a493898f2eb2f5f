//go:build unix

package dicom

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// mappedSource is the memory-mapped ByteSource variant. The mapping is
// read-only and released exactly once, on Close.
type mappedSource struct {
	mapping []byte // full page-aligned mapping
	data    []byte // requested window into mapping
	once    sync.Once
	err     error
}

func (s *mappedSource) Len() int64 { return int64(len(s.data)) }

func (s *mappedSource) Slice(offset, length int64) ([]byte, error) {
	return sliceRange(s.data, offset, length)
}

func (s *mappedSource) Close() error {
	s.once.Do(func() {
		s.err = unix.Munmap(s.mapping)
		s.mapping = nil
		s.data = nil
	})
	return s.err
}

// OpenMapped memory-maps the whole file at path as a read-only ByteSource.
func OpenMapped(path string) (ByteSource, error) {
	return OpenMappedRange(path, 0, -1)
}

// OpenMappedRange memory-maps the byte range [offset, offset+length) of the
// file at path. A negative length means "to the end of the file". The
// mapping offset is aligned down to the page size as mmap requires; the
// returned source exposes exactly the requested window.
func OpenMappedRange(path string, offset, length int64) (ByteSource, error) {
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
	if length == 0 {
		return NewBytesSource(nil), nil
	}

	pageSize := int64(os.Getpagesize())
	alignedOffset := offset &^ (pageSize - 1)
	skew := offset - alignedOffset

	mapping, err := unix.Mmap(int(f.Fd()), alignedOffset, int(length+skew),
		unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("failed to mmap %s [%d,%d): %w", path, offset, offset+length, err)
	}

	return &mappedSource{
		mapping: mapping,
		data:    mapping[skew : skew+length],
	}, nil
}
