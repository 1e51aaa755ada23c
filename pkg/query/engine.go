package query

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/ssargent/minidb/pkg/store"
)

// Engine answers row queries against .mdb files. It keeps no state between
// calls: every query opens the file, decodes the header, scans forward from
// the first row and closes the file before returning.
type Engine struct {
	logger     logrus.FieldLogger
	bufferSize int
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for scan diagnostics
func WithLogger(logger logrus.FieldLogger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithBufferSize sets the read buffer size used for each file
func WithBufferSize(size int) Option {
	return func(e *Engine) {
		e.bufferSize = size
	}
}

// NewEngine creates a new query engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// open opens the file and decodes its header. The caller owns the reader.
func (e *Engine) open(path string) (*store.FileReader, *store.Schema, error) {
	reader, err := store.NewFileReader(store.FileReaderConfig{
		FilePath:   path,
		BufferSize: e.bufferSize,
	})
	if err != nil {
		return nil, nil, err
	}

	schema, err := reader.ReadSchema()
	if err != nil {
		reader.Close()
		return nil, nil, err
	}
	return reader, schema, nil
}

// DescribeSchema returns the header of the file
func (e *Engine) DescribeSchema(path string) (*store.Schema, error) {
	reader, schema, err := e.open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return schema, nil
}

// GetRowByIndex returns the row at ordinal position index, counting from 0.
// Rows before it are skipped without decoding.
func (e *Engine) GetRowByIndex(path string, index int) (*store.Row, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: negative index %d", store.ErrRowNotFound, index)
	}

	reader, schema, err := e.open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	log := e.logger.WithFields(logrus.Fields{"file": path, "index": index})

	for i := 0; i < index; i++ {
		if err := reader.SkipRow(schema); err != nil {
			return nil, e.scanError(log, err, i)
		}
	}

	row, err := reader.ReadRow(schema, index)
	if err != nil {
		return nil, e.scanError(log, err, index)
	}

	log.WithField("offset", row.Offset).Debug("row found by index")
	return row, nil
}

// GetRowByValue returns the first row whose column's canonical text equals
// match. Only the target column is decoded while searching; the matching row
// is decoded in full by a second pass over its bytes.
func (e *Engine) GetRowByValue(path, column, match string) (*store.Row, error) {
	reader, schema, err := e.open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	target := schema.ColumnIndex(column)
	if target < 0 {
		return nil, fmt.Errorf("%w: %q", store.ErrColumnNotFound, column)
	}

	log := e.logger.WithFields(logrus.Fields{"file": path, "column": column})

	for i := 0; ; i++ {
		row, err := reader.ScanRow(schema, i, target, match)
		if err != nil {
			return nil, e.scanError(log, err, i)
		}
		if row != nil {
			log.WithFields(logrus.Fields{"index": i, "offset": row.Offset}).Debug("row found by value")
			return row, nil
		}
	}
}

// GetColumn returns the canonical text of column for every row, in file
// order. A limit greater than zero stops the scan after that many rows.
func (e *Engine) GetColumn(path, column string, limit int) ([]ColumnValue, error) {
	reader, schema, err := e.open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	target := schema.ColumnIndex(column)
	if target < 0 {
		return nil, fmt.Errorf("%w: %q", store.ErrColumnNotFound, column)
	}

	log := e.logger.WithFields(logrus.Fields{"file": path, "column": column})

	var values []ColumnValue
	for i := 0; limit <= 0 || i < limit; i++ {
		v, err := reader.ReadField(schema, target)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if store.IsTruncated(err) {
				log.WithError(err).Warn("ignoring truncated trailing row")
				break
			}
			return nil, err
		}
		values = append(values, ColumnValue{Index: i, Value: v.Format()})
	}

	log.WithField("rows", len(values)).Debug("column listed")
	return values, nil
}

// scanError converts an end of file into ErrRowNotFound and logs partial rows
func (e *Engine) scanError(log logrus.FieldLogger, err error, scanned int) error {
	switch {
	case errors.Is(err, io.EOF):
		log.WithField("rows", scanned).Debug("end of file")
		return fmt.Errorf("%w: file has %d rows", store.ErrRowNotFound, scanned)
	case store.IsTruncated(err):
		log.WithError(err).Warn("file ends inside a row")
		return err
	default:
		return err
	}
}
