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

package safari

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"howett.net/plist"

	"github.com/cloudygreybeard/vidshelf/pkg/input"
)

func TestRead(t *testing.T) {
	root := safariBookmark{
		WebBookmarkType: "WebBookmarkTypeList",
		Children: []safariBookmark{
			{
				WebBookmarkType: "WebBookmarkTypeList",
				Title:           "BookmarksBar",
				Children: []safariBookmark{
					{WebBookmarkType: "WebBookmarkTypeLeaf", URLString: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", URIDictionary: map[string]string{"title": "Song"}},
					{WebBookmarkType: "WebBookmarkTypeLeaf"},
				},
			},
			{WebBookmarkType: "WebBookmarkTypeProxy", Title: "History"},
		},
	}

	for _, format := range []int{plist.XMLFormat, plist.BinaryFormat} {
		data, err := plist.Marshal(root, format)
		if err != nil {
			t.Fatal(err)
		}
		path := filepath.Join(t.TempDir(), "Bookmarks.plist")
		if err := os.WriteFile(path, data, 0o600); err != nil {
			t.Fatal(err)
		}

		a := New()
		if err := a.Configure(input.Config{CustomPath: path}); err != nil {
			t.Fatal(err)
		}
		links, err := a.Read(context.Background())
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if len(links) != 1 {
			t.Fatalf("got %d links", len(links))
		}
		l := links[0]
		if l.Title != "Song" || l.Source != "safari" || len(l.FolderPath) != 1 || l.FolderPath[0] != "BookmarksBar" {
			t.Fatalf("unexpected link %+v", l)
		}
	}
}
