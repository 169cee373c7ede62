// Package server exposes the graphsvg pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz          liveness probe
//	POST /api/v1/render    render a graph document to one format
//	POST /api/v1/plan      resolve a graph document to its layout JSON
//
// Request bodies are JSON objects of the form
//
//	{"graph": {...}, "options": {...}}
//
// where graph is a graph document and options holds pipeline options.
// Absent options keep their defaults. Every response carries an
// X-Request-ID header; a request ID sent by the client is echoed back.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/graphsvg/pkg/buildinfo"
	"github.com/matzehuels/graphsvg/pkg/errors"
	"github.com/matzehuels/graphsvg/pkg/observability"
	"github.com/matzehuels/graphsvg/pkg/pipeline"
)

const (
	// HeaderRequestID carries the request ID on requests and responses.
	HeaderRequestID = "X-Request-ID"

	// HeaderCache reports whether a response was served from the cache.
	HeaderCache = "X-Cache"

	// maxBodyBytes bounds request bodies.
	maxBodyBytes = 16 << 20

	// shutdownTimeout bounds graceful shutdown.
	shutdownTimeout = 10 * time.Second
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatHTML: "text/html; charset=utf-8",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatJSON: "application/json",
}

// Request is the body of the render and plan endpoints.
type Request struct {
	Graph   json.RawMessage `json:"graph"`
	Options json.RawMessage `json:"options,omitempty"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// Server serves the HTTP API. It is safe for concurrent use; requests share
// only the runner's cache and the logger.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server backed by runner. A nil logger falls back to the
// runner's logger.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/plan", s.handlePlan)
	})
	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	s.execute(w, r, format)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	s.execute(w, r, pipeline.FormatJSON)
}

// execute decodes the request, runs the pipeline for a single format and
// writes the artifact. An empty format falls back to the first format named
// in the options.
func (s *Server) execute(w http.ResponseWriter, r *http.Request, format string) {
	ctx := r.Context()
	req, err := decodeRequest(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	doc, err := pipeline.ParseBytes(ctx, req.Graph)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	opts, err := decodeOptions(req.Options)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if format == "" && len(opts.Formats) > 0 {
		format = opts.Formats[0]
	}
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Formats = []string{format}
	opts.Logger = s.logger

	result, err := s.runner.Execute(ctx, doc, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	cacheState := "miss"
	if result.CacheInfo.RenderHit {
		cacheState = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set(HeaderCache, cacheState)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (*Request, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	var req Request
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if len(bytes.TrimSpace(req.Graph)) == 0 || bytes.Equal(bytes.TrimSpace(req.Graph), []byte("null")) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body has no graph")
	}
	return &req, nil
}

// decodeOptions decodes raw over the pipeline defaults.
func decodeOptions(raw json.RawMessage) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if len(bytes.TrimSpace(raw)) == 0 {
		return opts, nil
	}
	if err := json.Unmarshal(raw, &opts); err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode options")
	}
	return opts, nil
}

// =============================================================================
// Errors
// =============================================================================

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	id := RequestID(ctx)
	status := statusFor(err)
	observability.HTTP().OnError(ctx, id, r.Method, r.URL.Path, err)

	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
		msg = err.Error()
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", id, "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "request_id", id, "path", r.URL.Path, "code", code, "err", err)
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: msg, RequestID: id})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
