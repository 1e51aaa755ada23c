package api

import (
	"fmt"

	"github.com/ssargent/minidb/pkg/query"
	"github.com/ssargent/minidb/pkg/store"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port    int
	Bind    string
	APIKey  string // empty disables authentication
	DataDir string // directory the served .mdb files live in
}

// FieldResponse is one column of a returned row
type FieldResponse struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// RowResponse is a fully decoded row
type RowResponse struct {
	File   string          `json:"file"`
	Index  int             `json:"index"`
	Offset int64           `json:"offset"`
	Fields []FieldResponse `json:"fields"`
}

// ColumnResponse describes one schema column
type ColumnResponse struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Tag  string `json:"tag"`
}

// SchemaResponse describes the header of a file
type SchemaResponse struct {
	File       string           `json:"file"`
	Version    string           `json:"version"`
	DataOffset int64            `json:"data_offset"`
	Columns    []ColumnResponse `json:"columns"`
}

// ColumnValueResponse is one entry of a column listing. Index is the
// zero-based row position, the same numbering as RowResponse.Index.
type ColumnValueResponse struct {
	Index int    `json:"index"`
	Value string `json:"value"`
}

// ColumnValuesResponse lists one column across rows
type ColumnValuesResponse struct {
	File   string                `json:"file"`
	Column string                `json:"column"`
	Values []ColumnValueResponse `json:"values"`
}

// NewRowResponse converts a decoded row
func NewRowResponse(file string, row *store.Row) RowResponse {
	fields := make([]FieldResponse, 0, len(row.Fields))
	for _, f := range row.Fields {
		fields = append(fields, FieldResponse{
			Name:  f.Name,
			Type:  f.Value.Type().String(),
			Value: f.Value.Format(),
		})
	}
	return RowResponse{
		File:   file,
		Index:  row.Index,
		Offset: row.Offset,
		Fields: fields,
	}
}

// NewSchemaResponse converts a decoded header
func NewSchemaResponse(file string, schema *store.Schema) SchemaResponse {
	columns := make([]ColumnResponse, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		columns = append(columns, ColumnResponse{
			Name: col.Name,
			Type: col.Type.String(),
			Tag:  fmt.Sprintf("0x%02x", byte(col.Type)),
		})
	}
	return SchemaResponse{
		File:       file,
		Version:    query.FormatVersion(schema.Version),
		DataOffset: schema.DataOffset,
		Columns:    columns,
	}
}

// NewColumnValuesResponse converts a column listing
func NewColumnValuesResponse(file, column string, values []query.ColumnValue) ColumnValuesResponse {
	out := make([]ColumnValueResponse, 0, len(values))
	for _, v := range values {
		out = append(out, ColumnValueResponse{Index: v.Index, Value: v.Value})
	}
	return ColumnValuesResponse{File: file, Column: column, Values: out}
}
