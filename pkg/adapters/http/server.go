package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"slices"

	"github.com/aretw0/runcmd"
	"github.com/aretw0/runcmd/internal/logging"
	"github.com/aretw0/runcmd/internal/presentation/tui"
	"github.com/aretw0/runcmd/pkg/domain"
	"github.com/aretw0/runcmd/pkg/headless"
	"github.com/aretw0/runcmd/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodySize bounds request bodies, documents included.
const maxBodySize = 8 << 20

// Runner executes headless requests.
type Runner interface {
	Run(ctx context.Context, req headless.Request) (*headless.Response, error)
}

// Server exposes a Runner over HTTP.
//
// Requests carrying an Origin header are refused unless the origin was
// allowed with WithAllowedOrigins. Request bodies must be application/json,
// which keeps browsers from sending them without a preflight.
type Server struct {
	runner   Runner
	metrics  http.Handler
	renderer ports.PreviewRenderer
	origins  []string
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Server.
type Option func(*Server)

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithAllowedOrigins allows cross-origin requests from origins, such as
// "http://localhost:3000". No origin is allowed by default.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = append(s.origins, origins...)
	}
}

// WithPreviewRenderer sets the renderer behind POST /preview. Defaults to
// the HTML fragment editor popups display.
func WithPreviewRenderer(r ports.PreviewRenderer) Option {
	return func(s *Server) {
		s.renderer = r
	}
}

// PlaceholdersRequest is the body of POST /placeholders.
type PlaceholdersRequest struct {
	Command string `json:"command"`
}

// PlaceholdersResponse lists the placeholders of a command.
type PlaceholdersResponse struct {
	Placeholders []domain.Placeholder `json:"placeholders"`
}

// PreviewRequest is the body of POST /preview.
type PreviewRequest struct {
	Command string `json:"command"`
	Value   string `json:"value"`
}

// PreviewResponse shows the command with its first placeholder substituted.
type PreviewResponse struct {
	Preview  domain.Preview `json:"preview"`
	Rendered string         `json:"rendered"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler creates a new HTTP handler for runner.
func NewHandler(runner Runner, opts ...Option) http.Handler {
	s := &Server{runner: runner}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.renderer == nil {
		s.renderer = tui.HTMLPreviewRenderer{}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.checkOrigin)

	r.Get("/healthz", s.Health)
	r.Post("/run", s.Run)
	r.Post("/placeholders", s.Placeholders)
	r.Post("/preview", s.Preview)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return r
}

// checkOrigin refuses cross-origin requests from origins not explicitly
// allowed, and answers CORS headers and preflights for the allowed ones.
// Requests without an Origin header (curl, editor plugins) pass through.
func (s *Server) checkOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Add("Vary", "Origin")
		if !slices.Contains(s.origins, origin) {
			s.logger.Warn("Cross-origin request refused",
				"request_id", middleware.GetReqID(r.Context()),
				"origin", origin,
				"path", r.URL.Path,
			)
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "origin not allowed"})
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": runcmd.Version})
}

// Run handles the POST /run request.
func (s *Server) Run(w http.ResponseWriter, r *http.Request) {
	var body headless.Request
	if !s.decode(w, r, &body) {
		return
	}

	resp, err := s.runner.Run(r.Context(), body)
	if err != nil {
		status := http.StatusInternalServerError
		if headless.IsClientError(err) {
			status = http.StatusBadRequest
		} else if errors.Is(err, context.Canceled) {
			status = http.StatusServiceUnavailable
		}
		s.logger.Warn("Run failed",
			"request_id", middleware.GetReqID(r.Context()),
			"status", status,
			"error", err,
		)
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Placeholders handles the POST /placeholders request.
func (s *Server) Placeholders(w http.ResponseWriter, r *http.Request) {
	var body PlaceholdersRequest
	if !s.decode(w, r, &body) {
		return
	}
	writeJSON(w, http.StatusOK, PlaceholdersResponse{Placeholders: headless.Placeholders(body.Command)})
}

// Preview handles the POST /preview request.
func (s *Server) Preview(w http.ResponseWriter, r *http.Request) {
	var body PreviewRequest
	if !s.decode(w, r, &body) {
		return
	}
	p, err := headless.Preview(body.Command, body.Value)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, PreviewResponse{Preview: p, Rendered: s.renderer.RenderPreview(p)})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		s.logger.Warn("Unsupported content type", "path", r.URL.Path, "content_type", r.Header.Get("Content-Type"))
		writeJSON(w, http.StatusUnsupportedMediaType, errorResponse{Error: "content type must be application/json"})
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
