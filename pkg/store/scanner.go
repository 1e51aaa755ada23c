package store

import (
	"errors"
	"fmt"
	"io"

	"github.com/ssargent/minidb/pkg/codec"
)

// Rows carry no delimiter: a row ends where the sum of its column widths
// says it does. Every method here returns io.EOF when the file ends exactly
// on a row boundary and a *TruncatedError when it ends inside a row.

// SkipRow advances past one row without decoding any value
func (r *FileReader) SkipRow(schema *Schema) error {
	start := r.offset
	consumed := 0
	for _, col := range schema.Columns {
		n, err := codec.Skip(r, col.Type)
		consumed += n
		if err != nil {
			return rowError(err, start, consumed)
		}
	}
	return nil
}

// ReadRow decodes every column of the row at the current offset
func (r *FileReader) ReadRow(schema *Schema, index int) (*Row, error) {
	start := r.offset
	consumed := 0
	fields := make([]Field, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		v, n, err := codec.Decode(r, col.Type)
		consumed += n
		if err != nil {
			return nil, rowError(err, start, consumed)
		}
		fields = append(fields, Field{Name: col.Name, Value: v})
	}

	return &Row{
		Index:  index,
		Offset: start,
		Fields: fields,
	}, nil
}

// ReadField decodes only the target column of the row at the current offset
// and skips every other column, leaving the reader at the next row.
func (r *FileReader) ReadField(schema *Schema, target int) (codec.Value, error) {
	if target < 0 || target >= len(schema.Columns) {
		return codec.Value{}, fmt.Errorf("%w: column %d of %d", ErrColumnNotFound, target, len(schema.Columns))
	}

	start := r.offset
	consumed := 0
	var value codec.Value
	for i, col := range schema.Columns {
		var n int
		var err error
		if i == target {
			value, n, err = codec.Decode(r, col.Type)
		} else {
			n, err = codec.Skip(r, col.Type)
		}
		consumed += n
		if err != nil {
			return codec.Value{}, rowError(err, start, consumed)
		}
	}
	return value, nil
}

// ScanRow checks the target column of the row at the current offset against
// match. On a match it seeks back to the row's start and decodes the whole
// row; otherwise it returns a nil row with the reader at the next row.
func (r *FileReader) ScanRow(schema *Schema, index, target int, match string) (*Row, error) {
	start := r.offset
	value, err := r.ReadField(schema, target)
	if err != nil {
		return nil, err
	}
	if value.Format() != match {
		return nil, nil
	}

	if err := r.Seek(start); err != nil {
		return nil, err
	}
	return r.ReadRow(schema, index)
}

func rowError(err error, start int64, consumed int) error {
	switch {
	case errors.Is(err, codec.ErrUnknownType):
		return fmt.Errorf("%w: %w", ErrFormat, err)
	case errors.Is(err, io.EOF) && consumed == 0:
		return io.EOF
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &TruncatedError{Offset: start, Consumed: consumed}
	default:
		return err
	}
}
