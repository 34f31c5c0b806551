// Package web implements the json api server for the notewatch application
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"golang.org/x/crypto/bcrypt"

	"github.com/billnote/notewatch/app/store"
)

//go:generate moq -out mocks/lifecycle.go -pkg mocks -skip-ensure -fmt goimports . Lifecycle
//go:generate moq -out mocks/task_reader.go -pkg mocks -skip-ensure -fmt goimports . TaskReader

// Lifecycle defines task state mutations exposed over the api,
// implemented by manager.Manager
type Lifecycle interface {
	Submit(ctx context.Context, platform string, payload json.RawMessage) (string, error)
	Retry(ctx context.Context, id string, payload json.RawMessage) error
	SelectCurrent(id string)
	Current() (store.Record, bool)
	Delete(ctx context.Context, id string) error
}

// TaskReader defines read-only access to task records and attempt history,
// implemented by store.Store
type TaskReader interface {
	List() []store.Record
	Get(id string) (store.Record, bool)
	CurrentID() string
	Attempts(id string, limit int) ([]store.Attempt, error)
}

// Server represents the web server
type Server struct {
	manager      Lifecycle
	reader       TaskReader
	version      string
	hostname     string
	passwordHash string // bcrypt hash for basic auth, empty disables auth
	startTime    time.Time
	submitLimit  *limiter.Limiter
}

// Config holds server configuration
type Config struct {
	Manager      Lifecycle
	Reader       TaskReader
	Version      string
	Hostname     string
	PasswordHash string  // bcrypt hash for basic auth (empty to disable)
	SubmitRPS    float64 // submissions per second per client, defaults to 1
}

// New creates a new web server
func New(cfg Config) (*Server, error) {
	if cfg.Manager == nil {
		return nil, fmt.Errorf("web server initialization failed: Manager is required")
	}
	if cfg.Reader == nil {
		return nil, fmt.Errorf("web server initialization failed: Reader is required")
	}

	rps := cfg.SubmitRPS
	if rps <= 0 {
		rps = 1
	}

	return &Server{
		manager:      cfg.Manager,
		reader:       cfg.Reader,
		version:      cfg.Version,
		hostname:     cfg.Hostname,
		passwordHash: cfg.PasswordHash,
		startTime:    time.Now(),
		submitLimit:  tollbooth.NewLimiter(rps, nil),
	}, nil
}

// Run starts the web server, blocks until ctx canceled
func (s *Server) Run(ctx context.Context, address string) error {
	server := &http.Server{
		Addr:              address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] failed to shutdown server: %v", err)
		}
	}()

	log.Printf("[INFO] starting web server on %s", address)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server failed: %w", err)
	}
	return nil
}

// routes returns the http.Handler with all routes configured
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	// global middleware - applied to all routes
	router.Use(
		rest.RealIP,
		rest.Recoverer(log.Default()),
		rest.Throttle(1000),
		rest.AppInfo("notewatch", "billnote", s.version),
		rest.Ping,
		rest.Trace,
		rest.SizeLimit(256*1024), // 256KB max request size, form payloads are small
		logger.New(logger.Log(log.Default()), logger.Prefix("[DEBUG]")).Handler,
	)

	if s.passwordHash != "" {
		log.Printf("[INFO] authentication enabled for api")
		router.Use(s.authMiddleware)
	}

	router.Mount("/api/v1").Route(func(api *routegroup.Bundle) {
		api.Use(rest.NoCache)

		api.HandleFunc("GET /status", s.handleStatus)
		api.HandleFunc("GET /schema", s.handleSchema)
		api.HandleFunc("GET /system", s.handleSystem)

		api.With(tollbooth.HTTPMiddleware(s.submitLimit)).HandleFunc("POST /tasks", s.handleSubmit)
		api.HandleFunc("GET /tasks/current", s.handleCurrent)
		api.HandleFunc("DELETE /tasks/current", s.handleClearCurrent)
		api.HandleFunc("POST /tasks/{id}/retry", s.handleRetry)
		api.HandleFunc("POST /tasks/{id}/select", s.handleSelect)
		api.HandleFunc("GET /tasks/{id}/history", s.handleHistory)
		api.HandleFunc("DELETE /tasks/{id}", s.handleDelete)
	})

	return router
}

// authMiddleware enforces basic auth against the configured bcrypt hash
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ping" {
			next.ServeHTTP(w, r)
			return
		}

		username, password, ok := r.BasicAuth()
		if ok && username == "notewatch" {
			if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err == nil {
				next.ServeHTTP(w, r)
				return
			}
		}

		w.Header().Set("WWW-Authenticate", `Basic realm="Notewatch API"`)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	})
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[WARN] failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes a JSON error response
func (s *Server) writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[WARN] failed to encode JSON error response: %v", err)
	}
}
