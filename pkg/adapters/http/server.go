// Package http serves a synchronized command tree over a small JSON API.
package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/graft/pkg/dispatch"
	"github.com/aretw0/graft/pkg/ports"
	"github.com/aretw0/graft/pkg/suggestion"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Engine is the synchronizer surface the API serves.
type Engine[F any] interface {
	SuggestAt(input string, cursor int, source F) *suggestion.Suggestions
	Usage(name string, source F) ([]string, error)
	Commands() []*ports.Handle[F]
}

// SourceFunc builds the foreign source a request acts as from its "as" parameter.
type SourceFunc[F any] func(as string) F

// Option configures the handler.
type Option func(*settings)

type settings struct {
	logger   *slog.Logger
	limiter  *rate.Limiter
	gatherer prometheus.Gatherer
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithRateLimit limits API requests to limit per second with the given burst.
// Requests over the limit are answered with 429.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(s *settings) { s.limiter = rate.NewLimiter(limit, burst) }
}

// WithGatherer exposes the gatherer's metrics on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *settings) { s.gatherer = g }
}

// Server handles the API requests.
type Server[F any] struct {
	Engine Engine[F]
	Source SourceFunc[F]
	logger *slog.Logger
}

// UsageResponse is the body of GET /usage/{command}.
type UsageResponse struct {
	Command string   `json:"command"`
	Usage   []string `json:"usage"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewHandler creates the HTTP handler for engine.
func NewHandler[F any](engine Engine[F], source SourceFunc[F], opts ...Option) http.Handler {
	s := &settings{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(s)
	}
	server := &Server[F]{Engine: engine, Source: source, logger: s.logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", server.GetHealth)
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(limit(s.limiter))
		}
		r.Get("/commands", server.ListCommands)
		r.Get("/suggest", server.Suggest)
		r.Get("/usage/{command}", server.GetUsage)
	})

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func limit(l *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				w.Header().Set("Retry-After", "1")
				writeJSON(w, http.StatusTooManyRequests, ErrorResponse{Error: "rate limit exceeded"}, nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetHealth handles GET /healthz.
func (s *Server[F]) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

// ListCommands handles GET /commands.
func (s *Server[F]) ListCommands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Engine.Commands(), s.logger)
}

// Suggest handles GET /suggest?input=&cursor=&as=.
// The cursor defaults to the end of the input.
func (s *Server[F]) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := q.Get("input")

	cursor := len(input)
	if raw := q.Get("cursor"); raw != "" {
		c, err := strconv.Atoi(raw)
		if err != nil || c < 0 || c > len(input) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("cursor must be between 0 and %d", len(input))}, s.logger)
			return
		}
		cursor = c
	}

	result := s.Engine.SuggestAt(input, cursor, s.Source(q.Get("as")))
	s.logger.Debug("suggest", "input", input, "cursor", cursor, "count", len(result.List))
	writeJSON(w, http.StatusOK, result, s.logger)
}

// GetUsage handles GET /usage/{command}?as=.
func (s *Server[F]) GetUsage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "command")
	usage, err := s.Engine.Usage(name, s.Source(r.URL.Query().Get("as")))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dispatch.ErrUnknownCommand) {
			status = http.StatusNotFound
		} else {
			s.logger.Error("usage failed", "command", name, "err", err)
		}
		writeJSON(w, status, ErrorResponse{Error: err.Error()}, s.logger)
		return
	}
	if usage == nil {
		usage = []string{}
	}
	writeJSON(w, http.StatusOK, UsageResponse{Command: name, Usage: usage}, s.logger)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && logger != nil {
		logger.Error("response encode failed", "err", err)
	}
}
