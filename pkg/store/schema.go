package store

import (
	"errors"
	"fmt"
	"io"

	"github.com/ssargent/minidb/pkg/codec"
)

// ReadSchema decodes the file header and leaves the reader positioned at the
// first byte of row 0.
//
// Header format:
//
//	[Version(1)][ColumnCount(1)] then per column [TypeTag(1)][Name...][0x00]
//
// A header shorter than it declares, a column count outside 1..MaxColumns, an
// unknown type tag, or a name longer than MaxNameLen are all ErrFormat. Any
// other read failure is ErrFileUnavailable.
func (r *FileReader) ReadSchema() (*Schema, error) {
	if r.offset != 0 {
		if err := r.Seek(0); err != nil {
			return nil, err
		}
	}

	var head [2]byte
	n, err := io.ReadFull(r, head[:])
	if err != nil {
		return nil, headerError(err, fmt.Sprintf("header has %d of 2 bytes", n))
	}

	version, count := head[0], int(head[1])
	if count == 0 {
		return nil, fmt.Errorf("%w: header declares no columns", ErrFormat)
	}
	if count > MaxColumns {
		return nil, fmt.Errorf("%w: header declares %d columns, limit is %d", ErrFormat, count, MaxColumns)
	}

	columns := make([]Column, 0, count)
	for i := 0; i < count; i++ {
		tag, err := r.ReadByte()
		if err != nil {
			return nil, headerError(err, fmt.Sprintf("header declares %d columns, found %d", count, i))
		}

		typ := codec.Type(tag)
		if _, err := typ.Len(); err != nil {
			return nil, fmt.Errorf("%w: column %d: %w", ErrFormat, i, err)
		}

		name, err := r.readName()
		if err != nil {
			return nil, headerError(err, fmt.Sprintf("column %d", i))
		}

		columns = append(columns, Column{Type: typ, Name: name})
	}

	return &Schema{
		Version:    version,
		Columns:    columns,
		DataOffset: r.offset,
	}, nil
}

func (r *FileReader) readName() (string, error) {
	buf := make([]byte, 0, 16)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", fmt.Errorf("unterminated column name after %d bytes: %w", len(buf), err)
		}
		if b == codec.Terminator {
			return string(buf), nil
		}
		if len(buf) == MaxNameLen {
			return "", fmt.Errorf("%w: column name exceeds %d bytes", ErrFormat, MaxNameLen)
		}
		buf = append(buf, b)
	}
}

// headerError classifies a failed header read. Running out of bytes means the
// header is malformed; any other error means the file could not be read.
func headerError(err error, detail string) error {
	switch {
	case errors.Is(err, ErrFormat):
		return fmt.Errorf("%s: %w", detail, err)
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: %s: %w", ErrFormat, detail, err)
	default:
		return fmt.Errorf("%w: %s: %w", ErrFileUnavailable, detail, err)
	}
}
