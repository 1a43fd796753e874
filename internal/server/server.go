// Package server provides the HTTP API for the resume extractor.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-extractor/internal/config"
	"github.com/jonathan/resume-extractor/internal/db"
	"github.com/jonathan/resume-extractor/internal/diagnostics"
	"github.com/jonathan/resume-extractor/internal/fallback"
	"github.com/jonathan/resume-extractor/internal/llm"
	"github.com/jonathan/resume-extractor/internal/pipeline"
)

// CandidateReader is the read surface the API needs from the database.
type CandidateReader interface {
	GetCandidateByID(ctx context.Context, id uuid.UUID) (*db.Candidate, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	database   *db.DB
	candidates CandidateReader
	processor  *pipeline.Processor
	jwtService *JWTService
	passwords  *config.PasswordConfig
}

// Config holds server configuration
type Config struct {
	Addr         string
	DatabaseURL  string
	APIKey       string
	FallbackOnly bool
	DebugDir     string
}

// New creates a new server instance
func New(ctx context.Context, cfg Config) (*Server, error) {
	s := &Server{}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.database = database
		s.candidates = database
	}

	var client llm.Client
	if cfg.APIKey != "" && !cfg.FallbackOnly {
		var err error
		client, err = llm.NewClient(ctx, nil, cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create model client: %w", err)
		}
	}

	var sink diagnostics.Sink = diagnostics.NopSink{}
	if cfg.DebugDir != "" {
		fileSink, err := diagnostics.NewFileSink(cfg.DebugDir)
		if err != nil {
			return nil, err
		}
		sink = fileSink
	}

	s.processor = &pipeline.Processor{
		Client:       client,
		Sink:         sink,
		Fallback:     fallback.NewExtractor(nil),
		FallbackOnly: cfg.FallbackOnly,
	}
	if s.database != nil {
		s.processor.Store = s.database
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.passwords = passwordConfig

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withLogging(s.routes()),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // model calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes wires the endpoint handlers.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /extract", s.requireAuth(s.handleExtract))
	mux.HandleFunc("GET /candidates/{id}", s.requireAuth(s.handleGetCandidate))
	mux.HandleFunc("POST /auth/token", s.handleToken)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if s.database != nil {
		s.database.Close()
	}
	return nil
}

// withLogging logs every request with its duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
