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

// Package safari provides an input adapter for Safari.
package safari

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"howett.net/plist"

	"github.com/cloudygreybeard/vidshelf/pkg/adapter"
	"github.com/cloudygreybeard/vidshelf/pkg/input"
)

func init() {
	adapter.RegisterInput(New())
}

// Adapter implements input.Adapter for Safari. Without a custom path it
// is only available on macOS.
type Adapter struct {
	config input.Config
	path   string
}

// New creates a new Safari adapter.
func New() *Adapter {
	a := &Adapter{}
	a.path = a.bookmarkPath()
	return a
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string {
	return "safari"
}

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string {
	return "Apple Safari"
}

// Available returns true if the bookmarks plist exists.
func (a *Adapter) Available() bool {
	if a.path == "" {
		return false
	}
	_, err := os.Stat(a.path)
	return err == nil
}

// Configure applies configuration to the adapter.
func (a *Adapter) Configure(cfg input.Config) error {
	a.config = cfg
	a.path = a.bookmarkPath()
	return nil
}

// Path returns the bookmarks plist path.
func (a *Adapter) Path() string {
	return a.path
}

// ListProfiles returns the single Safari profile.
func (a *Adapter) ListProfiles() ([]input.ProfileInfo, error) {
	if !a.Available() {
		return nil, nil
	}
	return []input.ProfileInfo{{Name: "default", Path: a.path, IsDefault: true}}, nil
}

// Read returns all links from the bookmarks plist. The file may be in
// XML or binary form.
func (a *Adapter) Read(ctx context.Context) ([]input.Link, error) {
	if a.path == "" {
		return nil, nil
	}

	file, err := os.Open(a.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", a.path, err)
	}
	defer file.Close()

	var root safariBookmark
	if err := plist.NewDecoder(file).Decode(&root); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", a.path, err)
	}

	var links []input.Link
	parseBookmarks(root, nil, &links)
	return links, ctx.Err()
}

func (a *Adapter) bookmarkPath() string {
	if a.config.CustomPath != "" {
		return a.config.CustomPath
	}
	if runtime.GOOS != "darwin" {
		return ""
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Library", "Safari", "Bookmarks.plist")
}

type safariBookmark struct {
	WebBookmarkType string            `plist:"WebBookmarkType"`
	Title           string            `plist:"Title"`
	URLString       string            `plist:"URLString"`
	URIDictionary   map[string]string `plist:"URIDictionary"`
	Children        []safariBookmark  `plist:"Children"`
}

func parseBookmarks(node safariBookmark, path []string, links *[]input.Link) {
	switch node.WebBookmarkType {
	case "WebBookmarkTypeLeaf":
		url := node.URLString
		if url == "" {
			url = node.URIDictionary[""]
		}
		title := node.Title
		if title == "" {
			title = node.URIDictionary["title"]
		}
		if url != "" {
			*links = append(*links, input.Link{
				Title:      title,
				URL:        url,
				FolderPath: path,
				Source:     "safari",
				Profile:    "default",
			})
		}

	case "WebBookmarkTypeList":
		current := path
		if node.Title != "" {
			current = append(append([]string{}, path...), node.Title)
		}
		for _, child := range node.Children {
			parseBookmarks(child, current, links)
		}

	default:
		for _, child := range node.Children {
			parseBookmarks(child, path, links)
		}
	}
}
