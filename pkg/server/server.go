// Copyright 2026 cloudygreybeard
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server provides the HTTP JSON API over the application state.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/cloudygreybeard/vidshelf/pkg/app"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// Options configures the API.
type Options struct {
	Logger *slog.Logger

	// Version is reported by /health.
	Version string
}

type server struct {
	state   *app.State
	logger  *slog.Logger
	version string
}

// New returns the API handler.
func New(state *app.State, opts Options) http.Handler {
	s := &server{state: state, logger: opts.Logger, version: opts.Version}
	if s.logger == nil {
		s.logger = state.Logger()
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/overview", s.handleOverview)
		r.Get("/browse", s.handleBrowse)
		r.Get("/browse/*", s.handleBrowse)
		r.Get("/search", s.handleSearch)
		r.Post("/reload", s.handleReload)
		r.Get("/deeplink", s.handleDeepLink)
		r.Get("/share/{videoID}", s.handleShare)

		r.Route("/playlists", func(r chi.Router) {
			r.Get("/", s.handleListPlaylists)
			r.Post("/", s.handleCreatePlaylist)
			r.Post("/import", s.handleImportPlaylist)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetPlaylist)
				r.Put("/", s.handleUpdatePlaylist)
				r.Patch("/", s.handleRenamePlaylist)
				r.Delete("/", s.handleDeletePlaylist)
				r.Get("/export", s.handleExportPlaylist)

				r.Post("/videos", s.handleAddVideo)
				r.Delete("/videos/{videoID}", s.handleRemoveVideo)
				r.Put("/videos/{videoID}/watched", s.handleMarkWatched)
				r.Post("/videos/{videoID}/toggle", s.handleToggleWatched)
				r.Put("/videos/{videoID}/position", s.handlePosition)

				r.Post("/next", s.handleNext)
				r.Post("/previous", s.handlePrevious)
				r.Post("/select", s.handleSelect)
				r.Post("/shuffle", s.handleShuffle)
			})
		})

		r.Route("/youtube", func(r chi.Router) {
			r.Get("/search", s.handleYouTubeSearch)
		})
	})

	return r
}

// ListenAndServe serves handler on addr until ctx is cancelled, then
// shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
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
		return srv.Shutdown(shutdownCtx)
	}
}

type ctxKey struct{}

// requestID tags each request with an id, reusing a client-supplied one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// RequestID returns the id assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"id", RequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	c := s.state.Catalog()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"videos":  c.Count(),
		"groups":  len(c.Groups),
	})
}
