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

// Package manifest reads and normalizes the content manifest.
//
// The manifest is a JSON array listing the content tree. Each item is
// either a path string or an object:
//
//	[
//	  "music/pop.json",
//	  {"path": "music/rock", "type": "folder", "name": "Rock & Roll"},
//	  {"path": "/contents/talks/keynotes.json"}
//	]
//
// Items with a missing or unknown type are inferred from the path: a path
// ending in ".json" is a file, anything else is a folder.
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/cloudygreybeard/vidshelf/pkg/source"
)

// Entry types.
const (
	TypeFile   = "file"
	TypeFolder = "folder"
)

// DefaultRoot is the content root prefix.
const DefaultRoot = "/contents/"

// DefaultName is the manifest file name under the root.
const DefaultName = "manifest.json"

// Entry is one manifest item.
type Entry struct {
	Path string `json:"path" yaml:"path"`
	Type string `json:"type" yaml:"type"`

	// Name optionally overrides the display name of the deepest node the
	// entry touches.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// IsFile reports whether the entry names a content file.
func (e Entry) IsFile() bool {
	return e.Type == TypeFile
}

// InferType returns the entry type implied by a path.
func InferType(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return TypeFile
	}
	return TypeFolder
}

type rawEntry struct {
	Path *string `json:"path"`
	Type string  `json:"type"`
	Name string  `json:"name"`
}

// Parse decodes manifest bytes. Anything that is not a JSON array yields
// nil; malformed items inside the array are skipped individually.
func Parse(data []byte) []Entry {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 {
			continue
		}

		switch item[0] {
		case '"':
			var p string
			if err := json.Unmarshal(item, &p); err != nil || p == "" {
				continue
			}
			entries = append(entries, Entry{Path: p, Type: InferType(p)})

		case '{':
			var raw rawEntry
			if err := json.Unmarshal(item, &raw); err != nil || raw.Path == nil || *raw.Path == "" {
				continue
			}
			typ := raw.Type
			if typ != TypeFile && typ != TypeFolder {
				typ = InferType(*raw.Path)
			}
			entries = append(entries, Entry{Path: *raw.Path, Type: typ, Name: raw.Name})
		}
	}
	return entries
}

// Normalize returns a copy of entries with every path made absolute under
// root. Paths already carrying the root prefix are left unchanged.
func Normalize(entries []Entry, root string) []Entry {
	root = NormalizeRoot(root)
	out := make([]Entry, len(entries))
	for i, e := range entries {
		if !strings.HasPrefix(e.Path, root) {
			e.Path = root + strings.TrimLeft(e.Path, "/")
		}
		out[i] = e
	}
	return out
}

// NormalizeRoot ensures root starts and ends with a slash.
func NormalizeRoot(root string) string {
	if root == "" {
		return DefaultRoot
	}
	if !strings.HasPrefix(root, "/") {
		root = "/" + root
	}
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	return root
}

// Read fetches and parses the manifest at path. It never fails: a missing
// manifest, a fetch error, an HTML page or a non-array body all yield an
// empty list and a warning on logger.
func Read(ctx context.Context, src source.Source, path string, logger *slog.Logger) []Entry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	data, err := src.Fetch(ctx, path)
	if err != nil {
		logger.Warn("manifest unavailable", "path", path, "error", err)
		return []Entry{}
	}
	if source.IsHTML(data) {
		logger.Warn("manifest is an HTML page", "path", path, "title", source.HTMLTitle(data))
		return []Entry{}
	}

	entries := Parse(data)
	if entries == nil {
		logger.Warn("manifest is not a JSON array", "path", path)
		return []Entry{}
	}

	logger.Debug("manifest loaded", "path", path, "entries", len(entries))
	return entries
}
