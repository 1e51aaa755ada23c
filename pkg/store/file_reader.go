package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// FileReader provides forward-only access to the header and rows of an .mdb
// file. It counts every byte it hands out so the current offset is always
// known without asking the operating system.
type FileReader struct {
	file   *os.File
	reader *bufio.Reader
	offset int64
	config FileReaderConfig
}

// NewFileReader opens the specified file for reading
func NewFileReader(config FileReaderConfig) (*FileReader, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileUnavailable, err)
	}

	return &FileReader{
		file:   file,
		reader: newBufferedReader(file, config.BufferSize),
		config: config,
	}, nil
}

func newBufferedReader(file *os.File, size int) *bufio.Reader {
	if size > 0 {
		return bufio.NewReaderSize(file, size)
	}
	return bufio.NewReader(file)
}

// Read implements io.Reader
func (r *FileReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.offset += int64(n)
	return n, err
}

// ReadByte implements io.ByteReader
func (r *FileReader) ReadByte() (byte, error) {
	b, err := r.reader.ReadByte()
	if err == nil {
		r.offset++
	}
	return b, err
}

// Discard skips the next n bytes and returns the number actually skipped
func (r *FileReader) Discard(n int) (int, error) {
	d, err := r.reader.Discard(n)
	r.offset += int64(d)
	return d, err
}

// Seek sets the read offset
func (r *FileReader) Seek(offset int64) error {
	if _, err := r.file.Seek(offset, io.SeekStart); err != nil {
		return err
	}

	r.reader.Reset(r.file) // clear buffered bytes from the old position
	r.offset = offset
	return nil
}

// Offset returns the current read offset
func (r *FileReader) Offset() int64 {
	return r.offset
}

// Path returns the path the reader was opened with
func (r *FileReader) Path() string {
	return r.config.FilePath
}

// Close closes the underlying file
func (r *FileReader) Close() error {
	return r.file.Close()
}

// TruncatedError reports a row that ended before all of its columns were read
type TruncatedError struct {
	Offset   int64 // Offset of the row's first byte
	Consumed int   // Bytes of the row that were present
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("%s: truncated row at offset %d (%d bytes present)", ErrRowNotFound, e.Offset, e.Consumed)
}

// Unwrap makes a truncated row match ErrRowNotFound
func (e *TruncatedError) Unwrap() error {
	return ErrRowNotFound
}

// IsTruncated reports whether err was caused by a partial trailing row
func IsTruncated(err error) bool {
	var te *TruncatedError
	return errors.As(err, &te)
}
