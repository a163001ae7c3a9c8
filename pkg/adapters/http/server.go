package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/tetrator/internal/logging"
	"github.com/aretw0/tetrator/pkg/domain"
	"github.com/aretw0/tetrator/pkg/runner"
	"github.com/aretw0/tetrator/pkg/tetration"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed openapi.yaml
var rawSpec []byte

// maxBodyBytes bounds request bodies; two 78-digit strings fit comfortably.
const maxBodyBytes = 4096

// Computer evaluates a request. *tetrator.Service implements it.
type Computer interface {
	Compute(ctx context.Context, req domain.Request) domain.Outcome
}

// TetrationRequest is the body of POST /tetrate.
type TetrationRequest struct {
	Base       string `json:"base"`
	Height     string `json:"height"`
	DigitsOnly bool   `json:"digits_only,omitempty"`
}

// TetrationResponse is the success body of POST /tetrate.
type TetrationResponse struct {
	Base      string `json:"base"`
	Height    string `json:"height"`
	Value     string `json:"value,omitempty"`
	Digits    int    `json:"digits"`
	ElapsedNS int64  `json:"elapsed_ns"`
	Cached    bool   `json:"cached"`
}

// ErrorResponse is the failure body.
type ErrorResponse struct {
	Error    string `json:"error"`
	Overflow bool   `json:"overflow,omitempty"`
}

// Server exposes a Computer over HTTP.
type Server struct {
	computer Computer
	schema   *openapi3.Schema
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Server.
type Option func(*Server)

// WithGatherer serves the given registry on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the computer.
func NewHandler(computer Computer, opts ...Option) (http.Handler, error) {
	schema, err := loadRequestSchema()
	if err != nil {
		return nil, err
	}

	s := &Server{
		computer: computer,
		schema:   schema,
		gatherer: prometheus.DefaultGatherer,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Post("/tetrate", s.Tetrate)

	return r, nil
}

func loadRequestSchema() (*openapi3.Schema, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	ref, ok := doc.Components.Schemas["TetrationRequest"]
	if !ok || ref.Value == nil {
		return nil, errors.New("openapi spec has no TetrationRequest schema")
	}
	return ref.Value, nil
}

// Tetrate handles the POST /tetrate request.
func (s *Server) Tetrate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: "request body too large"})
		return
	}

	// 1. Validate against the published schema
	var generic any
	if err := json.Unmarshal(body, &generic); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return
	}
	if err := s.schema.VisitJSON(generic); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	// 2. Decode and parse operands (the schema cannot check the 256-bit range)
	var payload TetrationRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return
	}
	req, err := runner.ParseRequest(payload.Base, payload.Height)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	// 3. Evaluate
	out := s.computer.Compute(r.Context(), req)
	s.logger.Debug("HTTP evaluation", "request", req.Key(), "ok", out.OK(), "cached", out.Cached)
	if !out.OK() {
		writeError(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:    out.Err.Error(),
			Overflow: errors.Is(out.Err, tetration.ErrOverflow),
		})
		return
	}

	resp := TetrationResponse{
		Base:      req.Base.Dec(),
		Height:    req.Height.Dec(),
		Digits:    out.Digits(),
		ElapsedNS: out.Elapsed.Nanoseconds(),
		Cached:    out.Cached,
	}
	if !payload.DigitsOnly {
		resp.Value = out.Decimal()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("Tetrate encode error", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
