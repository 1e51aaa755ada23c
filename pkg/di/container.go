// Package di provides dependency injection container
package di

import (
	"github.com/sirupsen/logrus"
	"github.com/ssargent/minidb/pkg/api" //nolint:depguard
	"github.com/ssargent/minidb/pkg/query"
)

// QuerierFactory builds the row querier used by commands and the server
type QuerierFactory func(logger logrus.FieldLogger, bufferSize int) api.RowQuerier

// NewEngineQuerier is the default QuerierFactory backed by query.Engine
func NewEngineQuerier(logger logrus.FieldLogger, bufferSize int) api.RowQuerier {
	return query.NewEngine(
		query.WithLogger(logger),
		query.WithBufferSize(bufferSize),
	)
}

// Container holds all the dependencies for the application
type Container struct {
	querierFactory QuerierFactory
	serverFactory  api.ServerFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		querierFactory: NewEngineQuerier,
		serverFactory:  api.NewServerFactory(),
	}
}

// CreateQuerier returns a querier configured with logger and bufferSize
func (c *Container) CreateQuerier(logger logrus.FieldLogger, bufferSize int) api.RowQuerier {
	return c.querierFactory(logger, bufferSize)
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetQuerierFactory allows overriding the querier factory (for testing)
func (c *Container) SetQuerierFactory(factory QuerierFactory) {
	c.querierFactory = factory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}
