//go:build !unix

package dicom

// Platforms without mmap support fall back to reading the range into
// memory. The ByteSource contract is identical either way.

// OpenMapped reads the whole file at path into an in-memory ByteSource.
func OpenMapped(path string) (ByteSource, error) {
	return OpenFile(path)
}

// OpenMappedRange reads the byte range [offset, offset+length) of the file
// at path into an in-memory ByteSource. A negative length means "to the
// end of the file".
func OpenMappedRange(path string, offset, length int64) (ByteSource, error) {
	return OpenFileRange(path, offset, length)
}
