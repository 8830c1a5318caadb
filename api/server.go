// Package api implements the HTTP boundary for The Pill.
//
// The server exposes the browser-facing surface: the single-page UI at /,
// a one-shot JSON analysis endpoint at POST /analyze, and a Server-Sent
// Events stream at GET /analyze/stream that relays agent progress while
// an analysis runs.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/thepill/thepill/internal/agent"
	"github.com/thepill/thepill/internal/config"
	"github.com/thepill/thepill/web"
)

// Version is stamped from build metadata by the CLI before the server
// starts. It shows up in /healthz.
var Version = "dev"

// analyzeTimeout bounds a one-shot POST /analyze run. The SSE endpoint is
// bounded by the client connection and the agent's turn cap instead.
const analyzeTimeout = 5 * time.Minute

// Analyzer runs the stock analysis loop. The agent package provides the
// real implementation; tests substitute their own.
type Analyzer interface {
	Analyze(ctx context.Context, ticker string) (string, error)
	AnalyzeStream(ctx context.Context, ticker string) <-chan agent.Event
}

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	cfg      *config.Config
	analyzer Analyzer
	log      *logrus.Logger
}

// NewServer creates the API server with all routes configured.
func NewServer(cfg *config.Config, analyzer Analyzer, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}

	s := &Server{
		cfg:      cfg,
		analyzer: analyzer,
		log:      log,
	}
	s.router = s.buildRouter()

	return s
}

// Router returns the configured HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server and blocks until SIGINT/SIGTERM,
// then shuts down gracefully.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.API.Host, s.cfg.API.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
		// No WriteTimeout: an SSE response stays open for the whole
		// analysis, which can run for minutes.
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		s.log.WithField("addr", addr).Info("API server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Fatal("API server failed")
		}
	}()

	<-done
	s.log.Info("shutting down API server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}

// buildRouter wires up middleware and routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleIndex)
	r.Post("/analyze", s.handleAnalyze)
	r.Get("/analyze/stream", s.handleAnalyzeStream)
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/status", s.handleStatus)

	return r
}

// ── Request / response types ──────────────────────────────────────────

// AnalyzeRequest is the POST /analyze request body.
type AnalyzeRequest struct {
	Ticker string `json:"ticker"`
}

// AnalyzeResponse is the POST /analyze success body.
type AnalyzeResponse struct {
	Success  bool   `json:"success"`
	Analysis string `json:"analysis"`
	Ticker   string `json:"ticker"`
}

// StatusResponse reports the running configuration without secrets.
type StatusResponse struct {
	Model    string             `json:"model"`
	MaxTurns int                `json:"max_turns"`
	Keys     []config.KeyStatus `json:"keys"`
}

// ── Handlers ──────────────────────────────────────────────────────────

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(web.IndexHTML)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "No ticker provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	s.log.WithField("ticker", ticker).Info("analysis requested")

	analysis, err := s.analyzer.Analyze(ctx, ticker)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Success:  true,
		Analysis: analysis,
		Ticker:   ticker,
	})
}

func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "No ticker provided")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no") // proxies must not buffer the stream
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	s.log.WithField("ticker", ticker).Info("streaming analysis requested")

	// The channel closes when the analysis finishes, errors out, or the
	// request context is canceled by the client going away.
	for ev := range s.analyzer.AnalyzeStream(r.Context(), ticker) {
		data, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": Version,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Model:    s.cfg.LLM.Model,
		MaxTurns: s.cfg.Analysis.MaxTurns,
		Keys:     config.CheckAPIKeys(s.cfg),
	})
}

// ── Response helpers ──────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits the bare {"error": ...} shape the web page expects.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
