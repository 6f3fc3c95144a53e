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

package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/config"
	"github.com/cloudygreybeard/vidshelf/pkg/output"
	"github.com/cloudygreybeard/vidshelf/pkg/playlist"
	"github.com/cloudygreybeard/vidshelf/pkg/storage"
)

func testCatalog() *catalog.Catalog {
	return catalog.NewCatalog([]catalog.Group{{
		Name: "music",
		Subgroups: []catalog.Subgroup{{
			Name:   "hits",
			Videos: []catalog.Video{{ID: catalog.VideoID{VideoID: "abc"}, Snippet: catalog.Snippet{Title: "Song"}}},
		}},
	}}, "test")
}

func TestRenderCatalog(t *testing.T) {
	data, err := renderCatalog(testCatalog(), "markdown", output.RenderOptions{Style: "table"}, true)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "| Title |") {
		t.Fatalf("expected a table, got:\n%s", data)
	}

	data, err = renderCatalog(testCatalog(), "plist", output.RenderOptions{Style: "binary"}, true)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("bplist")) {
		t.Fatalf("expected a binary plist, got %q", data[:min(len(data), 16)])
	}

	// The default markdown style is not a plist encoding.
	data, err = renderCatalog(testCatalog(), "plist", output.RenderOptions{Style: "textual"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("<plist")) {
		t.Fatal("expected an XML plist")
	}

	if _, err := renderCatalog(testCatalog(), "nope", output.RenderOptions{}, false); err == nil {
		t.Fatal("expected unknown format error")
	}
}

func TestFindPlaylist(t *testing.T) {
	ctx := context.Background()
	m := playlist.NewManager(ctx, storage.NewMemory(), playlist.Options{})
	road, err := m.Create(ctx, "Road trip")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Create(ctx, "Dup"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Create(ctx, "dup"); err != nil {
		t.Fatal(err)
	}

	if p, err := findPlaylist(m, road.ID); err != nil || p.Name != "Road trip" {
		t.Fatalf("by id: %+v, %v", p, err)
	}
	if p, err := findPlaylist(m, "road TRIP"); err != nil || p.ID != road.ID {
		t.Fatalf("by name: %+v, %v", p, err)
	}
	if _, err := findPlaylist(m, "missing"); !errors.Is(err, playlist.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := findPlaylist(m, "dup"); err == nil {
		t.Fatal("expected ambiguity error")
	}
}

func TestVideoRef(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{" dQw4w9WgXcQ ", "dQw4w9WgXcQ"},
	}
	for _, tt := range tests {
		if got := videoRef(tt.in); got != tt.want {
			t.Errorf("videoRef(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOpenStore_SQLiteDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.Backend = "sqlite"
	cfg.Storage.Path = dir

	store, err := openStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	if matches, _ := filepath.Glob(filepath.Join(dir, "vidshelf.db")); len(matches) != 1 {
		t.Fatal("expected vidshelf.db in the storage directory")
	}
}
