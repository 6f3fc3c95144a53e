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

package firefox

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudygreybeard/vidshelf/pkg/input"
)

func writePlaces(t *testing.T, path string) {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE moz_places (id INTEGER PRIMARY KEY, url TEXT)`,
		`CREATE TABLE moz_bookmarks (id INTEGER PRIMARY KEY, type INTEGER, fk INTEGER, parent INTEGER, position INTEGER, title TEXT, dateAdded INTEGER)`,
		`INSERT INTO moz_bookmarks (id, type, parent, position, title) VALUES
			(1, 2, 0, 0, ''), (2, 2, 1, 0, 'menu'), (4, 2, 1, 1, 'tags'),
			(10, 2, 2, 0, 'Music'), (11, 2, 4, 0, 'favourite')`,
		`INSERT INTO moz_places (id, url) VALUES
			(100, 'https://www.youtube.com/watch?v=dQw4w9WgXcQ'),
			(101, 'https://go.dev/'),
			(102, 'https://youtu.be/bbbbbbbbbbb')`,
		`INSERT INTO moz_bookmarks (id, type, fk, parent, position, title, dateAdded) VALUES
			(20, 1, 100, 10, 0, 'Song', 1609459200000000),
			(21, 1, 101, 10, 1, 'Go', 0),
			(22, 1, 102, 2, 0, NULL, 0),
			(23, 1, 100, 11, 0, NULL, 0)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
	}
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abc.default", "places.sqlite")
	if err := mkdirAll(filepath.Dir(path)); err != nil {
		t.Fatal(err)
	}
	writePlaces(t, path)

	a := New()
	if err := a.Configure(input.Config{CustomPath: path}); err != nil {
		t.Fatal(err)
	}
	if !a.Available() {
		t.Fatal("expected adapter to be available")
	}

	links, err := a.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("expected the tagged copy and non-video link to be skipped, got %+v", links)
	}

	byTitle := map[string]input.Link{}
	for _, l := range links {
		byTitle[l.Title] = l
	}
	song, ok := byTitle["Song"]
	if !ok || song.Profile != "abc.default" || song.DateAdded.Unix() != 1609459200 {
		t.Fatalf("unexpected song %+v", song)
	}
	if len(song.FolderPath) != 2 || song.FolderPath[0] != "menu" || song.FolderPath[1] != "Music" {
		t.Fatalf("unexpected folder path %q", song.FolderPath)
	}
	if untitled := byTitle[""]; untitled.URL != "https://youtu.be/bbbbbbbbbbb" {
		t.Fatalf("unexpected untitled link %+v", untitled)
	}
}

func mkdirAll(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
