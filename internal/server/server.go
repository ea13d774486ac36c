// Package server exposes the agent over HTTP. Browser-side callers post page
// snapshots here and get tailored documents and attachment status back.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/ats-tailor/internal/config"
	"github.com/jonathan/ats-tailor/internal/session"
	"github.com/jonathan/ats-tailor/internal/store"
	"github.com/jonathan/ats-tailor/internal/types"
)

// AttachFunc drives attachment for a URL with the given documents until the
// page settles or the context expires. Injected so tests run without a
// browser.
type AttachFunc func(ctx context.Context, url string, docs *types.GeneratedDocuments) error

// Server is the agent HTTP server.
type Server struct {
	httpServer *http.Server
	pipeline   *session.Pipeline
	store      store.Store
	jwtService *JWTService
	attachFn   AttachFunc
	validate   *validator.Validate
}

// New builds the server. jwtService may be nil to run without auth, and
// attachFn may be nil when no browser is available.
func New(cfg *config.Config, pipeline *session.Pipeline, st store.Store, jwtService *JWTService, attachFn AttachFunc) *Server {
	s := &Server{
		pipeline:   pipeline,
		store:      st,
		jwtService: jwtService,
		attachFn:   attachFn,
		validate:   validator.New(),
	}
	if s.attachFn == nil {
		s.attachFn = s.browserAttach(cfg)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", s.handlePing)
	mux.HandleFunc("POST /jobinfo", s.handleJobInfo)
	mux.HandleFunc("POST /extract", s.handleExtract)
	mux.HandleFunc("POST /tailor", s.withAuth(s.handleTailor))
	mux.HandleFunc("POST /attach", s.withAuth(s.handleAttach))
	mux.HandleFunc("POST /cv", s.withAuth(s.handleStoreCV))
	mux.HandleFunc("GET /documents", s.withAuth(s.handleDocuments))
	mux.HandleFunc("GET /preferences", s.handleGetPreferences)
	mux.HandleFunc("PUT /preferences", s.withAuth(s.handleSetPreferences))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // tailoring plus attachment can be slow
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens until interrupted, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[SERVER] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[SERVER] error: %v", err)
		}
	}()

	<-stop
	log.Println("[SERVER] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if err := s.store.Close(); err != nil {
		log.Printf("[SERVER] closing store: %v", err)
	}
	log.Println("[SERVER] stopped")
	return nil
}

// withCORS allows browser-side callers from any origin
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request with duration
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[SERVER] %s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}

// withAuth enforces a bearer token when a JWT service is configured
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.jwtService == nil {
			next(w, r)
			return
		}

		token, err := bearerToken(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		if _, err := s.jwtService.ValidateToken(token); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next(w, r)
	}
}
