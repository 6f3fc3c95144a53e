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

// Package dirsrc provides a content source backed by a local directory.
package dirsrc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/cloudygreybeard/vidshelf/pkg/adapter"
	"github.com/cloudygreybeard/vidshelf/pkg/source"
)

func init() {
	adapter.RegisterSource("file", Open)
}

// Source reads content paths relative to a directory.
// The content path "/contents/a.json" maps to <dir>/contents/a.json.
type Source struct {
	dir  string
	fsys fs.FS
}

// New creates a Source rooted at dir.
func New(dir string) *Source {
	return &Source{dir: dir, fsys: os.DirFS(dir)}
}

// NewFS creates a Source over an arbitrary filesystem.
func NewFS(fsys fs.FS, label string) *Source {
	return &Source{dir: label, fsys: fsys}
}

// Open is the registered factory. It accepts a plain path or a file:// URL.
func Open(location string, _ source.Options) (source.Source, error) {
	dir := location
	if strings.HasPrefix(strings.ToLower(location), "file://") {
		u, err := url.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", location, err)
		}
		dir = u.Path
	}
	if dir == "" {
		dir = "."
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content location %s is not a directory", dir)
	}
	return New(dir), nil
}

// Name returns the source identifier.
func (s *Source) Name() string { return "dir" }

// Location returns the directory.
func (s *Source) Location() string { return s.dir }

// Fetch reads the file at the content path. Paths cannot escape the root.
func (s *Source) Fetch(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := strings.TrimPrefix(path.Clean("/"+p), "/")
	if name == "" {
		name = "."
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", p, source.ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}
	return data, nil
}
