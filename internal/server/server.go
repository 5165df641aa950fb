// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package server exposes compiled schemas over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/dacolabs/ruleschema"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"
)

// maxBodyBytes bounds the size of a data document posted for validation.
const maxBodyBytes = 10 << 20

// Server serves a fixed set of artifacts compiled at startup.
type Server struct {
	artifacts map[string]*ruleschema.Artifact
	names     []string
	logger    *slog.Logger
	router    *mux.Router
}

// SchemaInfo describes one served schema.
type SchemaInfo struct {
	Name   string `json:"name"`
	Format string `json:"format"`
}

// New compiles every document in docs and builds the router. Documents are
// compiled concurrently; the first compile failure aborts startup.
func New(ctx context.Context, docs map[string]any, logger *slog.Logger, opts ...ruleschema.Option) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts = append([]ruleschema.Option{ruleschema.WithLogger(logger)}, opts...)

	s := &Server{
		artifacts: make(map[string]*ruleschema.Artifact, len(docs)),
		logger:    logger,
	}

	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	for name, doc := range docs {
		g.Go(func() error {
			a, err := ruleschema.Compile(doc, opts...)
			if err != nil {
				return fmt.Errorf("schema %q: %w", name, err)
			}
			mu.Lock()
			s.artifacts[name] = a
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for name := range s.artifacts {
		s.names = append(s.names, name)
	}
	slices.Sort(s.names)

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/schemas", s.handleSchemasList).Methods(http.MethodGet)
	r.HandleFunc("/schemas/{name}", s.handleSchemaGet).Methods(http.MethodGet)
	r.HandleFunc("/schemas/{name}/validate", s.handleValidate).Methods(http.MethodPost)

	r.NotFoundHandler = requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	}))
	return r
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Names returns the served schema names in sorted order.
func (s *Server) Names() []string {
	return slices.Clone(s.names)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", addr, "schemas", len(s.names))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"schemas": len(s.names),
	})
}

func (s *Server) handleSchemasList(w http.ResponseWriter, _ *http.Request) {
	out := make([]SchemaInfo, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, SchemaInfo{Name: name, Format: s.artifacts[name].Format().String()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSchemaGet(w http.ResponseWriter, r *http.Request) {
	a, ok := s.artifacts[mux.Vars(r)["name"]]
	if !ok {
		writeError(w, http.StatusNotFound, "schema_not_found")
		return
	}
	writeJSON(w, http.StatusOK, a.Schema())
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	a, ok := s.artifacts[name]
	if !ok {
		writeError(w, http.StatusNotFound, "schema_not_found")
		return
	}

	data, err := decodeBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	outcome := ruleschema.Check(a, data)
	if !outcome.Valid {
		s.logger.Debug("validation failed",
			"schema", name,
			"errors", len(outcome.Errors),
			"request_id", RequestID(r.Context()))
	}
	writeJSON(w, http.StatusOK, outcome)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
