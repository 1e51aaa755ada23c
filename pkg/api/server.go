// Package api MiniDB read-only REST API
//
// Every request opens the named .mdb file inside the configured data
// directory, answers from a forward scan and closes the file again. Nothing is
// cached between requests.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// NewRouter builds the HTTP routes for server
func NewRouter(server *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(requestLogger(server.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", server.metrics.Handler())

	m := server.metrics
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(m.InstrumentAuthMiddleware(apiKeyMiddleware(server.config.APIKey)))

		r.Get("/health", m.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		r.Route("/files/{file}", func(r chi.Router) {
			r.Get("/schema", m.InstrumentHandler("GET", "/api/v1/files/{file}/schema", server.handleSchema))
			r.Get("/rows", m.InstrumentHandler("GET", "/api/v1/files/{file}/rows", server.handleRowByValue))
			r.Get("/rows/{index}", m.InstrumentHandler("GET", "/api/v1/files/{file}/rows/{index}", server.handleRowByIndex))
			r.Get("/columns/{column}", m.InstrumentHandler("GET", "/api/v1/files/{file}/columns/{column}", server.handleColumn))
		})
	})

	return r
}

// StartServer starts the HTTP server with all routes configured and blocks
// until it stops
func StartServer(querier RowQuerier, config ServerConfig, registry *prometheus.Registry, logger logrus.FieldLogger) error {
	metrics := NewMetrics(registry)
	server := NewServer(querier, config, metrics, logger)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	logger.WithFields(logrus.Fields{
		"addr":     addr,
		"data_dir": config.DataDir,
		"auth":     config.APIKey != "",
	}).Info("starting MiniDB REST API server")

	return http.ListenAndServe(addr, NewRouter(server))
}
