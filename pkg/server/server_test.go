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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/uuid"

	"github.com/cloudygreybeard/vidshelf/pkg/app"
	"github.com/cloudygreybeard/vidshelf/pkg/loader"
	_ "github.com/cloudygreybeard/vidshelf/pkg/output/json"
	_ "github.com/cloudygreybeard/vidshelf/pkg/output/markdown"
	"github.com/cloudygreybeard/vidshelf/pkg/playlist"
	"github.com/cloudygreybeard/vidshelf/pkg/source/dirsrc"
	"github.com/cloudygreybeard/vidshelf/pkg/storage"
	"github.com/cloudygreybeard/vidshelf/pkg/youtube"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	fsys := fstest.MapFS{
		"contents/manifest.json": {Data: []byte(`["music/hits.json"]`)},
		"contents/music/hits.json": {Data: []byte(`[{"videos": [
			{"id": {"videoId": "aaaaaaaaaaa"}, "snippet": {"title": "Şarkı", "channelTitle": "Kanal"}},
			{"id": {"videoId": "bbbbbbbbbbb"}, "snippet": {"title": "Lullaby"}}
		]}]`)},
	}
	ctx := context.Background()
	state := app.New(app.Options{
		Loader:    &loader.Loader{Source: dirsrc.NewFS(fsys, "mem")},
		Playlists: playlist.NewManager(ctx, storage.NewMemory(), playlist.Options{}),
		YouTube:   youtube.New(youtube.Options{APIKeyEnv: "VIDSHELF_TEST_UNSET_KEY"}),
		PublicURL: "https://shelf.example.com/app",
	})
	if _, err := state.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	return New(state, Options{Version: "test"})
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json (%d): %v\n%s", rr.Code, err, rr.Body.String())
	}
}

func TestHealth(t *testing.T) {
	h := newHandler(t)
	rr := do(t, h, http.MethodGet, "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var body struct {
		Status string `json:"status"`
		Videos int    `json:"videos"`
	}
	decode(t, rr, &body)
	if body.Status != "ok" || body.Videos != 2 {
		t.Fatalf("unexpected body %+v", body)
	}
	if _, err := uuid.Parse(rr.Header().Get(RequestIDHeader)); err != nil {
		t.Fatalf("missing request id: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	id := uuid.NewString()
	req.Header.Set(RequestIDHeader, id)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get(RequestIDHeader); got != id {
		t.Fatalf("request id not echoed: %q", got)
	}
}

func TestCatalogRoutes(t *testing.T) {
	h := newHandler(t)

	var overview struct {
		Total  int `json:"total"`
		Groups []struct {
			Name        string `json:"name"`
			TotalVideos int    `json:"totalVideos"`
		} `json:"groups"`
	}
	decode(t, do(t, h, http.MethodGet, "/api/overview", ""), &overview)
	if overview.Total != 2 || len(overview.Groups) != 1 || overview.Groups[0].TotalVideos != 2 {
		t.Fatalf("unexpected overview %+v", overview)
	}

	rr := do(t, h, http.MethodGet, "/api/browse/music/hits", "")
	var node struct {
		Path   string            `json:"path"`
		Videos []json.RawMessage `json:"videos"`
	}
	decode(t, rr, &node)
	if rr.Code != http.StatusOK || node.Path != "music/hits" || len(node.Videos) != 2 {
		t.Fatalf("unexpected node %d %+v", rr.Code, node)
	}

	rr = do(t, h, http.MethodGet, "/api/browse/music/nope", "")
	var errBody errorBody
	decode(t, rr, &errBody)
	if rr.Code != http.StatusNotFound || errBody.RequestID == "" {
		t.Fatalf("expected 404 with request id, got %d %+v", rr.Code, errBody)
	}

	var search struct {
		Count int `json:"count"`
	}
	decode(t, do(t, h, http.MethodGet, "/api/search?q=sarki", ""), &search)
	if search.Count != 1 {
		t.Fatalf("expected one match, got %d", search.Count)
	}
	if rr := do(t, h, http.MethodGet, "/api/search", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("blank query: got %d", rr.Code)
	}

	rr = do(t, h, http.MethodGet, "/api/catalog?format=markdown&metadata=false", "")
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(rr.Body.String(), "https://www.youtube.com/watch?v=aaaaaaaaaaa") {
		t.Fatalf("markdown missing video:\n%s", rr.Body.String())
	}
	if rr := do(t, h, http.MethodGet, "/api/catalog?format=nope", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown format: got %d", rr.Code)
	}

	if rr := do(t, h, http.MethodPost, "/api/reload", ""); rr.Code != http.StatusOK {
		t.Fatalf("reload: got %d", rr.Code)
	}
}

func TestPlaylistFlow(t *testing.T) {
	h := newHandler(t)

	rr := do(t, h, http.MethodPost, "/api/playlists", `{"name":"  Mix ","urls":["https://youtu.be/aaaaaaaaaaa"]}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rr.Code, rr.Body.String())
	}
	var p struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Videos []struct {
			Snippet struct {
				Title string `json:"title"`
			} `json:"snippet"`
		} `json:"videos"`
		WatchedVideos     []string `json:"watchedVideos"`
		CurrentVideoIndex int      `json:"currentVideoIndex"`
	}
	decode(t, rr, &p)
	if p.Name != "Mix" || len(p.Videos) != 1 || p.Videos[0].Snippet.Title != "Şarkı" {
		t.Fatalf("unexpected playlist %+v", p)
	}
	base := "/api/playlists/" + p.ID

	if rr := do(t, h, http.MethodPost, base+"/videos", `{"url":"https://www.youtube.com/watch?v=bbbbbbbbbbb"}`); rr.Code != http.StatusOK {
		t.Fatalf("add: %d %s", rr.Code, rr.Body.String())
	}
	if rr := do(t, h, http.MethodPost, base+"/videos", `{"url":"https://example.com"}`); rr.Code != http.StatusBadRequest {
		t.Fatalf("add invalid url: %d", rr.Code)
	}

	rr = do(t, h, http.MethodPost, base+"/next", "")
	var playing struct {
		Playlist struct {
			CurrentVideoIndex int      `json:"currentVideoIndex"`
			WatchedVideos     []string `json:"watchedVideos"`
		} `json:"playlist"`
		EmbedURL string `json:"embedUrl"`
	}
	decode(t, rr, &playing)
	if playing.Playlist.CurrentVideoIndex != 1 || len(playing.Playlist.WatchedVideos) != 1 ||
		!strings.Contains(playing.EmbedURL, "/embed/bbbbbbbbbbb") {
		t.Fatalf("unexpected playback %+v", playing)
	}
	if rr := do(t, h, http.MethodPost, base+"/next", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("next past end: %d", rr.Code)
	}
	if rr := do(t, h, http.MethodPost, base+"/select", `{"index": 7}`); rr.Code != http.StatusBadRequest {
		t.Fatalf("select out of range: %d", rr.Code)
	}
	if rr := do(t, h, http.MethodPost, base+"/previous", ""); rr.Code != http.StatusOK {
		t.Fatalf("previous: %d", rr.Code)
	}
	if rr := do(t, h, http.MethodPut, base+"/videos/aaaaaaaaaaa/position", `{"seconds": 42}`); rr.Code != http.StatusOK {
		t.Fatalf("position: %d", rr.Code)
	}
	rr = do(t, h, http.MethodPost, base+"/select", `{"index": 0}`)
	decode(t, rr, &playing)
	if !strings.Contains(playing.EmbedURL, "start=42") {
		t.Fatalf("select should resume from the saved position: %q", playing.EmbedURL)
	}

	if rr := do(t, h, http.MethodPost, base+"/videos/aaaaaaaaaaa/toggle", ""); rr.Code != http.StatusOK {
		t.Fatalf("toggle: %d", rr.Code)
	}
	if rr := do(t, h, http.MethodPatch, base, `{"name":"Evening"}`); rr.Code != http.StatusOK {
		t.Fatalf("rename: %d", rr.Code)
	}

	rr = do(t, h, http.MethodGet, base+"/export?format=markdown&metadata=false", "")
	if !strings.Contains(rr.Body.String(), "- **Evening**") {
		t.Fatalf("export:\n%s", rr.Body.String())
	}

	if rr := do(t, h, http.MethodDelete, base+"/videos/bbbbbbbbbbb", ""); rr.Code != http.StatusOK {
		t.Fatalf("remove video: %d", rr.Code)
	}
	if rr := do(t, h, http.MethodDelete, base, ""); rr.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, base, ""); rr.Code != http.StatusNotFound {
		t.Fatalf("get deleted: %d", rr.Code)
	}
	if rr := do(t, h, http.MethodPost, "/api/playlists", `{"name":" "}`); rr.Code != http.StatusBadRequest {
		t.Fatalf("blank name: %d", rr.Code)
	}
}

func TestYouTubeAndDeepLink(t *testing.T) {
	h := newHandler(t)

	if rr := do(t, h, http.MethodGet, "/api/youtube/search?q=cats", ""); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("search without key: %d", rr.Code)
	}

	rr := do(t, h, http.MethodGet, "/api/deeplink?ref=https://shelf.example.com/app?v%3Daaaaaaaaaaa", "")
	var link struct {
		Video struct {
			Snippet struct {
				Title string `json:"title"`
			} `json:"snippet"`
		} `json:"video"`
		ShareURL string `json:"shareUrl"`
	}
	decode(t, rr, &link)
	if link.Video.Snippet.Title != "Şarkı" || link.ShareURL != "https://shelf.example.com/app?v=aaaaaaaaaaa" {
		t.Fatalf("unexpected deep link %+v", link)
	}

	if rr := do(t, h, http.MethodGet, "/api/deeplink?ref=not%20a%20link", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("invalid link: %d", rr.Code)
	}
}

func TestUpdatePlaylist_RequiresName(t *testing.T) {
	h := newHandler(t)

	rr := do(t, h, http.MethodPost, "/api/playlists", `{"name":"Keep","urls":["https://youtu.be/aaaaaaaaaaa"]}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rr.Code, rr.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	decode(t, rr, &created)
	base := "/api/playlists/" + created.ID

	for _, body := range []string{`{"videos":[]}`, `{"name":"   ","videos":[]}`, ``} {
		if rr := do(t, h, http.MethodPut, base, body); rr.Code != http.StatusBadRequest {
			t.Fatalf("PUT %q: expected 400, got %d %s", body, rr.Code, rr.Body.String())
		}
	}

	var p struct {
		Name   string            `json:"name"`
		Videos []json.RawMessage `json:"videos"`
	}
	decode(t, do(t, h, http.MethodGet, base, ""), &p)
	if p.Name != "Keep" || len(p.Videos) != 1 {
		t.Fatalf("rejected update changed the playlist: %+v", p)
	}

	rr = do(t, h, http.MethodPut, base, `{"name":"Renamed","videos":[]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("valid update: %d %s", rr.Code, rr.Body.String())
	}
	decode(t, rr, &p)
	if p.Name != "Renamed" || len(p.Videos) != 0 {
		t.Fatalf("unexpected updated playlist %+v", p)
	}
}
