package store

import (
	"github.com/ssargent/minidb/pkg/codec"
)

const (
	// MaxColumns is the largest column count a header may declare
	MaxColumns = 64

	// MaxNameLen is the longest column name in bytes, excluding the terminator
	MaxNameLen = 99
)

// FileReaderConfig holds configuration for the file reader
type FileReaderConfig struct {
	FilePath   string // Path to the .mdb file
	BufferSize int    // Read buffer size (0 = bufio default)
}

// Column describes one typed, named column of the schema
type Column struct {
	Type codec.Type
	Name string
}

// Schema is the header of an .mdb file
type Schema struct {
	Version    byte
	Columns    []Column
	DataOffset int64 // Offset of the first byte of row 0
}

// ColumnIndex returns the position of the named column, or -1.
// Names are compared case-sensitively.
func (s *Schema) ColumnIndex(name string) int {
	for i, col := range s.Columns {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// Field is one column name/value pair of a decoded row
type Field struct {
	Name  string
	Value codec.Value
}

// Row is a fully decoded row
type Row struct {
	Index  int     // Ordinal position, starting at 0
	Offset int64   // Byte offset of the row's first field
	Fields []Field // One field per column, in schema order
}

// Get returns the value of the named field
func (r *Row) Get(name string) (codec.Value, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return codec.Value{}, false
}

// Errors
var (
	ErrFileUnavailable = &ReadError{"file unavailable"}
	ErrFormat          = &ReadError{"invalid file format"}
	ErrColumnNotFound  = &ReadError{"column not found"}
	ErrRowNotFound     = &ReadError{"row not found"}
)

// ReadError represents a .mdb read error
type ReadError struct {
	Message string
}

func (e *ReadError) Error() string {
	return e.Message
}
