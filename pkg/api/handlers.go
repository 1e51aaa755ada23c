package api

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/ssargent/minidb/pkg/store"
)

// Server holds the API server state
type Server struct {
	querier RowQuerier
	config  ServerConfig
	metrics *Metrics
	logger  logrus.FieldLogger
}

// NewServer creates a new API server
func NewServer(querier RowQuerier, config ServerConfig, metrics *Metrics, logger logrus.FieldLogger) *Server {
	return &Server{
		querier: querier,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

var errBadFileName = errors.New("file must be a plain file name")

// resolvePath maps a file name from the URL into the data directory. Only
// bare names are accepted so requests cannot leave the directory.
func (s *Server) resolvePath(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", errBadFileName
	}
	return filepath.Join(s.config.DataDir, name), nil
}

// sendQueryError maps the read error taxonomy onto HTTP status codes
func (s *Server) sendQueryError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrFileUnavailable):
		sendError(w, "File not found", http.StatusNotFound)
	case errors.Is(err, store.ErrColumnNotFound):
		sendError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, store.ErrRowNotFound):
		sendError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, store.ErrFormat):
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		s.logger.WithError(err).WithField("request_id", RequestID(r.Context())).Error("query failed")
		sendError(w, "Internal error", http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	path, err := s.resolvePath(file)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	schema, err := s.querier.DescribeSchema(path)
	s.metrics.RecordQuery("schema", err, time.Since(start))
	if err != nil {
		s.sendQueryError(w, r, err)
		return
	}

	sendSuccess(w, NewSchemaResponse(file, schema))
}

func (s *Server) handleRowByIndex(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	path, err := s.resolvePath(file)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		sendError(w, "Index must be a non-negative integer", http.StatusBadRequest)
		return
	}

	start := time.Now()
	row, err := s.querier.GetRowByIndex(path, index)
	s.metrics.RecordQuery("row_by_index", err, time.Since(start))
	if err != nil {
		s.sendQueryError(w, r, err)
		return
	}

	sendSuccess(w, NewRowResponse(file, row))
}

func (s *Server) handleRowByValue(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	path, err := s.resolvePath(file)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := r.URL.Query()
	column := params.Get("column")
	if column == "" || !params.Has("value") {
		sendError(w, "Query parameters column and value are required", http.StatusBadRequest)
		return
	}

	start := time.Now()
	row, err := s.querier.GetRowByValue(path, column, params.Get("value"))
	s.metrics.RecordQuery("row_by_value", err, time.Since(start))
	if err != nil {
		s.sendQueryError(w, r, err)
		return
	}

	sendSuccess(w, NewRowResponse(file, row))
}

func (s *Server) handleColumn(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	path, err := s.resolvePath(file)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	column := chi.URLParam(r, "column")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			sendError(w, "Limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
	}

	start := time.Now()
	values, err := s.querier.GetColumn(path, column, limit)
	s.metrics.RecordQuery("column", err, time.Since(start))
	if err != nil {
		s.sendQueryError(w, r, err)
		return
	}

	sendSuccess(w, NewColumnValuesResponse(file, column, values))
}
