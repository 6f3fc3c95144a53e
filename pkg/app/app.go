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

// Package app holds the application state shared by the CLI, the HTTP API
// and the MCP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/loader"
	"github.com/cloudygreybeard/vidshelf/pkg/logging"
	"github.com/cloudygreybeard/vidshelf/pkg/playlist"
	"github.com/cloudygreybeard/vidshelf/pkg/youtube"
)

// Options configures a State.
type Options struct {
	Loader    *loader.Loader
	Playlists *playlist.Manager
	YouTube   *youtube.Client

	// PublicURL is the application URL used in share links.
	PublicURL string

	Logger *slog.Logger
}

// State owns the current catalog snapshot and the services built around
// it. The snapshot is replaced wholesale on Reload and never modified in
// place.
type State struct {
	loader    *loader.Loader
	playlists *playlist.Manager
	youtube   *youtube.Client
	publicURL string
	logger    *slog.Logger

	mu      sync.RWMutex
	catalog *catalog.Catalog
}

// New creates a State with an empty catalog. Call Reload to load content.
func New(opts Options) *State {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	yt := opts.YouTube
	if yt == nil {
		yt = youtube.New(youtube.Options{Logger: logger})
	}
	return &State{
		loader:    opts.Loader,
		playlists: opts.Playlists,
		youtube:   yt,
		publicURL: opts.PublicURL,
		logger:    logger,
		catalog:   &catalog.Catalog{Groups: []catalog.Group{}},
	}
}

// Catalog returns the current snapshot.
func (s *State) Catalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// SetCatalog replaces the snapshot.
func (s *State) SetCatalog(c *catalog.Catalog) {
	s.mu.Lock()
	s.catalog = c
	s.mu.Unlock()
}

// Reload runs the loader and publishes the result. The previous snapshot
// stays in place if loading is cancelled.
func (s *State) Reload(ctx context.Context) (*catalog.Catalog, error) {
	if s.loader == nil {
		return nil, errors.New("no content loader configured")
	}
	c, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	s.SetCatalog(c)
	return c, nil
}

// Playlists returns the playlist manager.
func (s *State) Playlists() *playlist.Manager { return s.playlists }

// YouTube returns the platform client.
func (s *State) YouTube() *youtube.Client { return s.youtube }

// Logger returns the shared logger.
func (s *State) Logger() *slog.Logger { return s.logger }

// Search matches query against every video title and channel title in
// the catalog.
func (s *State) Search(query string) ([]catalog.Video, error) {
	if strings.TrimSpace(query) == "" {
		return nil, youtube.ErrEmptyQuery
	}
	return catalog.Search(s.Catalog().Groups, query), nil
}

// Browse resolves a navigation path. The empty path lists the roots.
func (s *State) Browse(path string) (catalog.Node, bool) {
	groups := s.Catalog().Groups
	if len(catalog.SplitPath(path)) == 0 {
		return catalog.Node{
			Path:        "",
			Breadcrumbs: []catalog.Crumb{},
			Videos:      []catalog.Video{},
			Subgroups:   catalog.Overview(groups),
		}, true
	}
	return catalog.Find(groups, path)
}

// ImportPlaylist fetches a platform playlist and stores it as a new
// playlist. name overrides the platform title when set.
func (s *State) ImportPlaylist(ctx context.Context, playlistURL, name string) (playlist.Playlist, error) {
	imported, err := s.youtube.ImportPlaylist(ctx, playlistURL)
	if err != nil {
		return playlist.Playlist{}, err
	}
	if strings.TrimSpace(name) == "" {
		name = imported.Title
	}
	if strings.TrimSpace(name) == "" {
		name = imported.ID
	}
	p, err := s.playlists.Create(ctx, name, imported.Videos...)
	if err != nil {
		return playlist.Playlist{}, err
	}
	s.logger.Info("playlist imported", "source", imported.ID, "id", p.ID, "videos", len(p.Videos))
	return p, nil
}

// AddVideoURL adds the video behind a watch, short or embed URL to a
// playlist. The video is taken from the catalog when present, from the
// platform when a credential is configured, and otherwise built as a
// placeholder.
func (s *State) AddVideoURL(ctx context.Context, playlistID, rawURL string) (playlist.Playlist, error) {
	id, err := youtube.ExtractVideoID(rawURL)
	if err != nil {
		return playlist.Playlist{}, err
	}
	return s.playlists.AddVideo(ctx, playlistID, s.LookupVideo(ctx, id))
}

// LookupVideo returns the catalog copy of a video, falling back to
// deep-link resolution.
func (s *State) LookupVideo(ctx context.Context, id string) catalog.Video {
	if v, ok := s.findVideo(id); ok {
		return v
	}
	return s.youtube.ResolveDeepLink(ctx, id)
}

func (s *State) findVideo(id string) (catalog.Video, bool) {
	var walk func([]catalog.Subgroup) (catalog.Video, bool)
	walk = func(subgroups []catalog.Subgroup) (catalog.Video, bool) {
		for _, sg := range subgroups {
			for _, v := range sg.Videos {
				if v.Key() == id {
					return v, true
				}
			}
			if v, ok := walk(sg.Subgroups); ok {
				return v, true
			}
		}
		return catalog.Video{}, false
	}
	for _, g := range s.Catalog().Groups {
		if v, ok := walk(g.Subgroups); ok {
			return v, true
		}
	}
	return catalog.Video{}, false
}

// DeepLink is a resolved "?v=" application link.
type DeepLink struct {
	Video      catalog.Video `json:"video"`
	EmbedURL   string        `json:"embedUrl"`
	WatchURL   string        `json:"watchUrl"`
	ShareURL   string        `json:"shareUrl"`
	Stripped   string        `json:"strippedUrl,omitempty"`
	ResolvedAt time.Time     `json:"resolvedAt"`
}

// ResolveDeepLink accepts an application URL carrying "?v=", a platform
// URL, or a bare video ID.
func (s *State) ResolveDeepLink(ctx context.Context, ref string) (DeepLink, error) {
	ref = strings.TrimSpace(ref)
	var id, stripped string
	// A platform watch URL also carries "?v=", so match it before the
	// application form.
	if platformID, err := youtube.ExtractVideoID(ref); err == nil {
		id = platformID
	} else if appID, rest, ok := youtube.ParseDeepLink(ref); ok {
		id, stripped = appID, rest
	} else if ref != "" && !strings.ContainsAny(ref, "/?&=: ") {
		id = ref
	} else {
		return DeepLink{}, fmt.Errorf("%q: %w", ref, youtube.ErrInvalidURL)
	}

	return DeepLink{
		Video:      s.LookupVideo(ctx, id),
		EmbedURL:   youtube.EmbedURL(id, 0),
		WatchURL:   youtube.WatchURL(id),
		ShareURL:   s.ShareURL(id),
		Stripped:   stripped,
		ResolvedAt: time.Now().UTC(),
	}, nil
}

// ShareURL returns the application deep link for a video, or the
// platform watch URL when no public URL is configured.
func (s *State) ShareURL(id string) string {
	return youtube.ShareURL(s.publicURL, id)
}
