// Package api provides interfaces for dependency injection
package api

import (
	"github.com/sirupsen/logrus"
	"github.com/ssargent/minidb/pkg/query"
	"github.com/ssargent/minidb/pkg/store"
)

// RowQuerier defines the read operations the server exposes
type RowQuerier interface {
	DescribeSchema(path string) (*store.Schema, error)
	GetRowByIndex(path string, index int) (*store.Row, error)
	GetRowByValue(path, column, match string) (*store.Row, error)
	GetColumn(path, column string, limit int) ([]query.ColumnValue, error)
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer starts the API server and blocks until it stops
	StartServer(querier RowQuerier, config ServerConfig, logger logrus.FieldLogger) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
