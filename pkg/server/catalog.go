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

package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cloudygreybeard/vidshelf/pkg/adapter"
	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/output"
	"github.com/cloudygreybeard/vidshelf/pkg/youtube"
)

var contentTypes = map[string]string{
	"json":     "application/json",
	"yaml":     "application/yaml",
	"markdown": "text/markdown; charset=utf-8",
	"opml":     "text/x-opml; charset=utf-8",
	"html":     "text/html; charset=utf-8",
	"plist":    "application/x-plist",
}

// render writes c through the named output adapter. Query parameters
// sort=alpha, style, title and metadata=false adjust the options.
func (s *server) render(w http.ResponseWriter, r *http.Request, c *catalog.Catalog) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = "json"
	}
	out, ok := adapter.GetOutput(format)
	if !ok {
		s.writeError(w, r, badRequest("unknown format %q (available: %s)", format, strings.Join(adapter.ListOutputs(), ", ")))
		return
	}

	opts := output.DefaultRenderOptions()
	opts.SortAlpha = q.Get("sort") == "alpha"
	opts.Style = q.Get("style")
	opts.Title = q.Get("title")
	if q.Get("metadata") == "false" {
		opts.IncludeMetadata = false
	}

	data, err := out.Render(c, opts)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("rendering %s: %w", format, err))
		return
	}

	ct, ok := contentTypes[format]
	if !ok {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, s.state.Catalog())
}

func (s *server) handleOverview(w http.ResponseWriter, r *http.Request) {
	c := s.state.Catalog()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"location": c.Location,
		"loadedAt": c.LoadedAt,
		"total":    c.Count(),
		"groups":   catalog.Overview(c.Groups),
	})
}

func (s *server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")
	node, ok := s.state.Browse(path)
	if !ok {
		s.writeError(w, r, fmt.Errorf("catalog path %q: %w", path, errNotFound))
		return
	}
	writeJSON(w, http.StatusOK, node)
}

func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	videos, err := s.state.Search(query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":  query,
		"count":  len(videos),
		"videos": videos,
	})
}

func (s *server) handleReload(w http.ResponseWriter, r *http.Request) {
	c, err := s.state.Reload(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"loadedAt": c.LoadedAt,
		"groups":   len(c.Groups),
		"total":    c.Count(),
	})
}

func (s *server) handleDeepLink(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Query().Get("ref")
	if ref == "" {
		ref = r.URL.Query().Get(youtube.DeepLinkParam)
	}
	link, err := s.state.ResolveDeepLink(r.Context(), ref)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

func (s *server) handleShare(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "videoID")
	writeJSON(w, http.StatusOK, map[string]string{
		"shareUrl": s.state.ShareURL(id),
		"watchUrl": youtube.WatchURL(id),
		"embedUrl": youtube.EmbedURL(id, 0),
	})
}

func (s *server) handleYouTubeSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("max"))
	videos, err := s.state.YouTube().Search(r.Context(), q.Get("q"), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":  q.Get("q"),
		"count":  len(videos),
		"videos": videos,
	})
}
