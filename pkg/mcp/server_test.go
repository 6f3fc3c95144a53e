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

package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/cloudygreybeard/vidshelf/pkg/app"
	"github.com/cloudygreybeard/vidshelf/pkg/loader"
	_ "github.com/cloudygreybeard/vidshelf/pkg/output/json"
	_ "github.com/cloudygreybeard/vidshelf/pkg/output/markdown"
	"github.com/cloudygreybeard/vidshelf/pkg/playlist"
	"github.com/cloudygreybeard/vidshelf/pkg/source/dirsrc"
	"github.com/cloudygreybeard/vidshelf/pkg/storage"
	"github.com/cloudygreybeard/vidshelf/pkg/youtube"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	fsys := fstest.MapFS{
		"contents/manifest.json": {Data: []byte(`["music/hits.json"]`)},
		"contents/music/hits.json": {Data: []byte(`[{"videos": [
			{"id": {"videoId": "dQw4w9WgXcQ"}, "snippet": {"title": "Şarkı", "channelTitle": "Rick"}}
		]}]`)},
	}
	ctx := context.Background()
	state := app.New(app.Options{
		Loader:    &loader.Loader{Source: dirsrc.NewFS(fsys, "mem")},
		Playlists: playlist.NewManager(ctx, storage.NewMemory(), playlist.Options{}),
		YouTube:   youtube.New(youtube.Options{APIKeyEnv: "VIDSHELF_TEST_UNSET_KEY"}),
	})
	if _, err := state.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	return NewServer(state, Options{Version: "test"})
}

// exchange sends one request per line and returns the decoded responses.
func exchange(t *testing.T, s *Server, requests ...string) []Response {
	t.Helper()
	var out bytes.Buffer
	if err := s.Serve(context.Background(), strings.NewReader(strings.Join(requests, "\n")), &out); err != nil {
		t.Fatalf("Serve: %v", err)
	}

	var responses []Response
	dec := json.NewDecoder(&out)
	for dec.More() {
		var r Response
		if err := dec.Decode(&r); err != nil {
			t.Fatal(err)
		}
		responses = append(responses, r)
	}
	return responses
}

func resultMap(t *testing.T, r Response) map[string]interface{} {
	t.Helper()
	if r.Error != nil {
		t.Fatalf("unexpected error %+v", r.Error)
	}
	m, ok := r.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected result %#v", r.Result)
	}
	return m
}

func toolText(t *testing.T, r Response) string {
	t.Helper()
	content := resultMap(t, r)["content"].([]interface{})
	return content[0].(map[string]interface{})["text"].(string)
}

func TestInitializeAndNotifications(t *testing.T) {
	responses := exchange(t, newServer(t),
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"bogus"}`,
	)
	if len(responses) != 2 {
		t.Fatalf("notifications must not be answered, got %d responses", len(responses))
	}
	info := resultMap(t, responses[0])["serverInfo"].(map[string]interface{})
	if info["name"] != "vidshelf" || info["version"] != "test" {
		t.Fatalf("unexpected serverInfo %+v", info)
	}
	if responses[1].Error == nil || responses[1].Error.Code != -32601 {
		t.Fatalf("expected method not found, got %+v", responses[1])
	}
}

func TestResources(t *testing.T) {
	responses := exchange(t, newServer(t),
		`{"jsonrpc":"2.0","id":1,"method":"resources/list"}`,
		`{"jsonrpc":"2.0","id":2,"method":"resources/read","params":{"uri":"vidshelf://catalog"}}`,
		`{"jsonrpc":"2.0","id":3,"method":"resources/read","params":{"uri":"vidshelf://browse/music/hits"}}`,
		`{"jsonrpc":"2.0","id":4,"method":"resources/read","params":{"uri":"vidshelf://nope"}}`,
	)

	resources := resultMap(t, responses[0])["resources"].([]interface{})
	if len(resources) != 4 {
		t.Fatalf("expected 3 fixed resources and one group, got %d", len(resources))
	}
	if uri := resources[3].(map[string]interface{})["uri"]; uri != "vidshelf://browse/music" {
		t.Fatalf("unexpected group resource %v", uri)
	}

	text := func(r Response) string {
		contents := resultMap(t, r)["contents"].([]interface{})
		return contents[0].(map[string]interface{})["text"].(string)
	}
	if !strings.Contains(text(responses[1]), `"dQw4w9WgXcQ"`) {
		t.Fatalf("catalog resource missing video:\n%s", text(responses[1]))
	}
	if !strings.Contains(text(responses[2]), `"path": "music/hits"`) {
		t.Fatalf("browse resource:\n%s", text(responses[2]))
	}
	if responses[3].Error == nil {
		t.Fatal("expected an error for an unknown resource")
	}
}

func TestTools(t *testing.T) {
	s := newServer(t)
	responses := exchange(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"search_videos","arguments":{"query":"sarki"}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"create_playlist","arguments":{"name":"Mix"}}}`,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"search_videos","arguments":{"query":" "}}}`,
		`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"nope"}}`,
	)

	if tools := resultMap(t, responses[0])["tools"].([]interface{}); len(tools) != 7 {
		t.Fatalf("got %d tools", len(tools))
	}
	if text := toolText(t, responses[1]); !strings.HasPrefix(text, "Found 1 matches:") {
		t.Fatalf("search result:\n%s", text)
	}
	if text := toolText(t, responses[2]); !strings.HasPrefix(text, `Created playlist "Mix"`) {
		t.Fatalf("create result: %s", text)
	}
	if responses[3].Error == nil || responses[3].Error.Code != -32000 {
		t.Fatalf("expected tool error, got %+v", responses[3])
	}
	if responses[4].Error == nil || responses[4].Error.Code != -32602 {
		t.Fatalf("expected unknown tool, got %+v", responses[4])
	}

	lists := s.state.Playlists().List()
	if len(lists) != 1 {
		t.Fatalf("expected one playlist, got %d", len(lists))
	}
	add := exchange(t, s, `{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"add_to_playlist","arguments":{"playlist_id":"`+lists[0].ID+`","url":"https://youtu.be/dQw4w9WgXcQ"}}}`)
	if text := toolText(t, add[0]); text != `Playlist "Mix" now has 1 videos` {
		t.Fatalf("add result: %s", text)
	}
	if got := s.state.Playlists().List()[0].Videos[0].Snippet.Title; got != "Şarkı" {
		t.Fatalf("video should come from the catalog, got %q", got)
	}
}
