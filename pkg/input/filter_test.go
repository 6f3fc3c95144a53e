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

package input

import (
	"testing"
	"time"
)

func TestFilter(t *testing.T) {
	links := []Link{
		{Title: "Song", URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", FolderPath: []string{"Bar", "Music"}},
		{Title: "Docs", URL: "https://go.dev/doc/", FolderPath: []string{"Bar", "Dev"}},
		{Title: "Short", URL: "https://youtu.be/dQw4w9WgXcQ", FolderPath: []string{"Other"}},
		{Title: "Trashed", URL: "https://www.youtube.com/watch?v=aaaaaaaaaaa", FolderPath: []string{"Trash"}},
		{Title: "Talk", URL: "https://www.youtube.com/embed/bbbbbbbbbbb", FolderPath: []string{"Bar", "Talks"}},
	}

	got, err := Filter(links, FilterOptions{ExcludeFolders: []string{"Trash"}})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(got.Links) != 2 || got.NotVideo != 1 || got.Excluded != 1 || got.Duplicates != 1 {
		t.Fatalf("unexpected result %+v", got)
	}
	if got.Links[0].VideoID != "dQw4w9WgXcQ" || got.Links[1].VideoID != "bbbbbbbbbbb" {
		t.Fatalf("unexpected ids %+v", got.Links)
	}

	got, err = Filter(links, FilterOptions{IncludeFolders: []string{"Talks"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Links) != 1 || got.Links[0].Title != "Talk" {
		t.Fatalf("include filter: %+v", got.Links)
	}

	got, err = Filter(links, FilterOptions{ExcludeURLPatterns: []string{`/embed/`}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Links) != 2 || got.Links[1].Title != "Trashed" {
		t.Fatalf("pattern filter: %+v", got.Links)
	}

	if _, err := Filter(links, FilterOptions{ExcludeURLPatterns: []string{"("}}); err == nil {
		t.Fatal("expected an error for an invalid pattern")
	}
}

func TestVideos(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	added := time.Date(2020, 5, 6, 0, 0, 0, 0, time.UTC)

	videos := Videos([]Link{
		{Title: " Song ", VideoID: "dQw4w9WgXcQ", DateAdded: added},
		{URL: "https://youtu.be/bbbbbbbbbbb"},
		{URL: "https://example.com"},
	}, now)

	if len(videos) != 2 {
		t.Fatalf("got %d videos", len(videos))
	}
	if videos[0].Snippet.Title != "Song" || videos[0].Snippet.UploadDate != "2020-05-06T00:00:00Z" {
		t.Fatalf("unexpected first video %+v", videos[0])
	}
	if videos[1].Key() != "bbbbbbbbbbb" || videos[1].Snippet.Title != "YouTube Video" {
		t.Fatalf("unexpected second video %+v", videos[1])
	}
}
