// Package server exposes the analysis pipeline over HTTP: file
// management endpoints plus a server-sent-events stream that relays
// pipeline progress to a browser.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/memoweave/memoweave/internal/model"
	"github.com/memoweave/memoweave/internal/pipeline"
	"github.com/memoweave/memoweave/internal/store"
)

// Analyzer is the slice of the pipeline the server needs.
type Analyzer interface {
	Analyze(ctx context.Context, req pipeline.Request) <-chan pipeline.Event
}

// Server handles the HTTP API.
type Server struct {
	analyzer Analyzer
	files    *store.FileStore
	logger   *zap.Logger
	config   model.ServerConfig
}

// New creates a server over the given analyzer and file store.
func New(analyzer Analyzer, files *store.FileStore, logger *zap.Logger, config model.ServerConfig) *Server {
	return &Server{
		analyzer: analyzer,
		files:    files,
		logger:   logger,
		config:   config,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("GET /files", s.handleListFiles)
	mux.HandleFunc("GET /files/{name}/content", s.handleFileContent)
	mux.HandleFunc("DELETE /files/{name}", s.handleDeleteFile)
	mux.HandleFunc("GET /analyze_stream", s.handleAnalyzeStream)
	return s.withCORS(s.withLogging(mux))
}

// ListenAndServe runs the server until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.config.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(s.config.AllowedOrigins))
	for _, origin := range s.config.AllowedOrigins {
		allowed[origin] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Uploaded stories are small; 16 MiB covers any reasonable manuscript.
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("parse form: %w", err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("missing file field: %w", err))
		return
	}
	defer file.Close()

	if err := s.files.Save(header.Filename, file); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrInvalidName) {
			status = http.StatusBadRequest
		}
		s.writeError(w, status, err)
		return
	}
	s.logger.Info("file uploaded", zap.String("name", header.Filename))
	s.writeJSON(w, http.StatusOK, map[string]string{"filename": header.Filename})
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	names, err := s.files.List()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"files": names})
}

func (s *Server) handleFileContent(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	content, err := s.files.Read(name)
	if err != nil {
		s.writeError(w, fileStatus(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"name": name, "content": content})
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := s.files.Delete(name); err != nil {
		s.writeError(w, fileStatus(err), err)
		return
	}
	s.logger.Info("file deleted", zap.String("name", name))
	s.writeJSON(w, http.StatusOK, map[string]string{"deleted": name})
}

func fileStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
