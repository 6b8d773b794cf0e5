// Package httpapi exposes the decompression engine over HTTP: creating
// dive sessions, recording exposures, and querying ceiling, NDL,
// supersaturation, oxygen toxicity, and decompression plans.
package httpapi

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/deepwater-eng/buhlmann/internal/log"
	"github.com/deepwater-eng/buhlmann/internal/persistence"
	"github.com/deepwater-eng/buhlmann/internal/session"
	"github.com/deepwater-eng/buhlmann/pkg/wireformat"
)

// Controller serves the dive-server REST API.
type Controller struct {
	listenAddr string
	sessions   *session.Manager
	repo       persistence.Repository
	formatter  *wireformat.Formatter
	server     *http.Server
}

// New builds a Controller. repo may be nil, in which case snapshot
// persistence endpoints are disabled.
func New(listenAddr string, sessions *session.Manager, repo persistence.Repository) *Controller {
	return &Controller{
		listenAddr: listenAddr,
		sessions:   sessions,
		repo:       repo,
		formatter:  wireformat.New(),
	}
}

func (c *Controller) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogMiddleware)
	r.HandleFunc("/sessions", c.handleCreateSession).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}", c.handleGetSession).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}/record", c.handleRecord).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/travel", c.handleRecordTravel).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/ndl", c.handleNDL).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}/deco", c.handleDeco).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/snapshot", c.handleSaveSnapshot).Methods(http.MethodPost)
	r.HandleFunc("/debug/http-log", handleHTTPLog).Methods(http.MethodGet)
	return r
}

// statusRecorder captures the response status code for the logging
// middleware, since http.ResponseWriter doesn't expose it after the fact.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.LogHTTPRequest(r.Method, r.URL.Path, rec.status, time.Since(start), r.RemoteAddr, nil)
	})
}

func handleHTTPLog(w http.ResponseWriter, r *http.Request) {
	entries := log.GetHTTPLogBuffer().Recent()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// Serve starts the HTTP server and blocks until ctx is cancelled or the
// server fails to serve. On cancellation it gracefully shuts down.
func (c *Controller) Serve(ctx context.Context) error {
	c.server = &http.Server{
		Addr:              c.listenAddr,
		Handler:           c.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", c.listenAddr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("httpapi: listening on %s", c.listenAddr)
		errCh <- c.server.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return c.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
