// Package testutil builds .mdb file images for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ssargent/minidb/pkg/codec"
	"github.com/stretchr/testify/require"
)

// DefaultVersion is the version byte written by the .mdb writer
const DefaultVersion byte = 0x11

// Column is a column declaration for a built file
type Column struct {
	Name string
	Type codec.Type
}

// Col is shorthand for a Column
func Col(name string, typ codec.Type) Column {
	return Column{Name: name, Type: typ}
}

// Builder assembles a header and rows into the on-disk layout
type Builder struct {
	version byte
	columns []Column
	rows    [][]codec.Value
	tail    []byte
}

// NewBuilder creates a builder for the given schema
func NewBuilder(columns ...Column) *Builder {
	return &Builder{version: DefaultVersion, columns: columns}
}

// Version overrides the version byte
func (b *Builder) Version(v byte) *Builder {
	b.version = v
	return b
}

// Row appends a row; values must follow column order
func (b *Builder) Row(values ...codec.Value) *Builder {
	b.rows = append(b.rows, values)
	return b
}

// Tail appends raw bytes after the last row
func (b *Builder) Tail(raw ...byte) *Builder {
	b.tail = append(b.tail, raw...)
	return b
}

// Header returns the encoded header alone
func (b *Builder) Header() []byte {
	out := []byte{b.version, byte(len(b.columns))}
	for _, col := range b.columns {
		out = append(out, byte(col.Type))
		out = append(out, col.Name...)
		out = append(out, codec.Terminator)
	}
	return out
}

// Build returns the full file image
func (b *Builder) Build(t testing.TB) []byte {
	t.Helper()

	out := b.Header()
	for _, row := range b.rows {
		require.Len(t, row, len(b.columns), "row width must match the schema")
		for _, v := range row {
			var err error
			out, err = codec.Append(out, v)
			require.NoError(t, err)
		}
	}
	return append(out, b.tail...)
}

// WriteFile writes the file image into a temp dir and returns its path
func (b *Builder) WriteFile(t testing.TB, name string) string {
	t.Helper()
	return WriteFile(t, name, b.Build(t))
}

// WriteFile writes raw bytes into a temp dir and returns the path
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

// Contacts returns the two-column id/email fixture with three rows
func Contacts() *Builder {
	return NewBuilder(
		Col("id", codec.TypeUint8),
		Col("email", codec.TypeString),
	).
		Row(codec.Uint8Value(1), codec.StringValue("ann@x.com")).
		Row(codec.Uint8Value(2), codec.StringValue("bob@chicago.com")).
		Row(codec.Uint8Value(3), codec.StringValue("cid@y.com"))
}

// Sensors returns a fixture that uses every column type
func Sensors() *Builder {
	return NewBuilder(
		Col("name", codec.TypeString),
		Col("delta", codec.TypeInt8),
		Col("level", codec.TypeUint8),
		Col("raw", codec.TypeInt16),
		Col("count", codec.TypeInt32),
		Col("reading", codec.TypeFloat64),
	).
		Row(codec.StringValue("boiler"), codec.Int8Value(-5), codec.Uint8Value(5), codec.Int16Value(-300), codec.Int32Value(70000), codec.Float64Value(3.14)).
		Row(codec.StringValue("pump"), codec.Int8Value(12), codec.Uint8Value(250), codec.Int16Value(1024), codec.Int32Value(-1), codec.Float64Value(-0.25)).
		Row(codec.StringValue("valve"), codec.Int8Value(-5), codec.Uint8Value(0), codec.Int16Value(0), codec.Int32Value(42), codec.Float64Value(3.14))
}
