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
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/playlist"
	"github.com/cloudygreybeard/vidshelf/pkg/youtube"
)

func (s *server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state.Playlists().List())
}

type createRequest struct {
	Name   string          `json:"name"`
	Videos []catalog.Video `json:"videos"`

	// URLs are resolved like pasted links.
	URLs []string `json:"urls"`
}

func (s *server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	videos := append([]catalog.Video{}, req.Videos...)
	for _, u := range req.URLs {
		id, err := youtube.ExtractVideoID(u)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		videos = append(videos, s.state.LookupVideo(r.Context(), id))
	}

	p, err := s.state.Playlists().Create(r.Context(), req.Name, videos...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *server) handleImportPlaylist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL  string `json:"url"`
		Name string `json:"name"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.state.ImportPlaylist(r.Context(), req.URL, req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	p, err := s.state.Playlists().Get(chi.URLParam(r, "id"))
	s.respond(w, r, p, err)
}

func (s *server) handleUpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := decodeBody(r, &raw); err != nil {
		s.writeError(w, r, err)
		return
	}

	// Decoding a stored record defaults a missing name, so check the
	// request for one first.
	var named struct {
		Name *string `json:"name"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &named); err != nil {
			s.writeError(w, r, badRequest("invalid request body: %v", err))
			return
		}
	}
	if named.Name == nil || strings.TrimSpace(*named.Name) == "" {
		s.writeError(w, r, playlist.ErrEmptyName)
		return
	}

	var p playlist.Playlist
	if err := json.Unmarshal(raw, &p); err != nil {
		s.writeError(w, r, badRequest("invalid request body: %v", err))
		return
	}
	p.ID = chi.URLParam(r, "id")
	updated, err := s.state.Playlists().Update(r.Context(), p)
	s.respond(w, r, updated, err)
}

func (s *server) handleRenamePlaylist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.state.Playlists().Rename(r.Context(), chi.URLParam(r, "id"), req.Name)
	s.respond(w, r, p, err)
}

func (s *server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	if err := s.state.Playlists().Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleExportPlaylist(w http.ResponseWriter, r *http.Request) {
	p, err := s.state.Playlists().Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, playlist.AsCatalog([]playlist.Playlist{p}))
}

// handleAddVideo accepts either {"url": "..."} or {"video": {...}}.
func (s *server) handleAddVideo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL   string         `json:"url"`
		Video *catalog.Video `json:"video"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	var (
		p   playlist.Playlist
		err error
	)
	switch {
	case req.Video != nil:
		p, err = s.state.Playlists().AddVideo(r.Context(), id, *req.Video)
	case req.URL != "":
		p, err = s.state.AddVideoURL(r.Context(), id, req.URL)
	default:
		err = badRequest("url or video is required")
	}
	s.respond(w, r, p, err)
}

func (s *server) handleRemoveVideo(w http.ResponseWriter, r *http.Request) {
	p, err := s.state.Playlists().RemoveVideo(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "videoID"))
	s.respond(w, r, p, err)
}

func (s *server) handleMarkWatched(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Watched *bool `json:"watched"`
	}{}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	watched := req.Watched == nil || *req.Watched
	p, err := s.state.Playlists().MarkWatched(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "videoID"), watched)
	s.respond(w, r, p, err)
}

func (s *server) handleToggleWatched(w http.ResponseWriter, r *http.Request) {
	p, err := s.state.Playlists().ToggleWatched(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "videoID"))
	s.respond(w, r, p, err)
}

func (s *server) handlePosition(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seconds float64 `json:"seconds"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.state.Playlists().UpdatePosition(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "videoID"), req.Seconds)
	s.respond(w, r, p, err)
}

func (s *server) handleNext(w http.ResponseWriter, r *http.Request) {
	p, err := s.state.Playlists().Next(r.Context(), chi.URLParam(r, "id"))
	s.respondPlayback(w, r, p, err)
}

func (s *server) handlePrevious(w http.ResponseWriter, r *http.Request) {
	p, err := s.state.Playlists().Previous(r.Context(), chi.URLParam(r, "id"))
	s.respondPlayback(w, r, p, err)
}

func (s *server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	p, err := s.state.Playlists().Shuffle(r.Context(), chi.URLParam(r, "id"))
	s.respondPlayback(w, r, p, err)
}

func (s *server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index *int `json:"index"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Index == nil {
		s.writeError(w, r, badRequest("index is required"))
		return
	}
	p, err := s.state.Playlists().Select(r.Context(), chi.URLParam(r, "id"), *req.Index)
	s.respondPlayback(w, r, p, err)
}

func (s *server) respond(w http.ResponseWriter, r *http.Request, p playlist.Playlist, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// nowPlaying is the playback response: the playlist plus the video to
// play and where to resume it.
type nowPlaying struct {
	Playlist playlist.Playlist `json:"playlist"`
	Video    *catalog.Video    `json:"video,omitempty"`
	EmbedURL string            `json:"embedUrl,omitempty"`
}

func (s *server) respondPlayback(w http.ResponseWriter, r *http.Request, p playlist.Playlist, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := nowPlaying{Playlist: p}
	if v, ok := p.Current(); ok {
		resp.Video = &v
		resp.EmbedURL = youtube.EmbedURL(v.Key(), p.Position(v.Key()))
	}
	writeJSON(w, http.StatusOK, resp)
}
