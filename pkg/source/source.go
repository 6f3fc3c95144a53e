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

// Package source provides the Source interface for content locations.
//
// A Source fetches the manifest and content files by their absolute
// content path (for example "/contents/music/pop.json"). Implementations
// live in subpackages and register a factory per URL scheme with the
// adapter registry:
//
//	func init() {
//	    adapter.RegisterSource("https", New)
//	}
//
// Callers open a location without knowing which implementation serves it:
//
//	src, err := adapter.OpenSource("https://example.com", source.Options{})
//	data, err := src.Fetch(ctx, "/contents/manifest.json")
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrNotFound is matched by errors for content that does not exist.
var ErrNotFound = errors.New("content not found")

// Source is a readable content location.
type Source interface {
	// Name returns the implementation identifier, e.g. "dir" or "http".
	Name() string

	// Location returns the directory or base URL being read.
	Location() string

	// Fetch returns the raw bytes stored at path.
	// Missing content yields an error matching ErrNotFound.
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Options configures a Source at open time.
type Options struct {
	// Timeout bounds a single fetch. Zero means the implementation default.
	Timeout time.Duration

	// Client overrides the HTTP client for network sources.
	Client *http.Client

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// Factory opens a Source for a location.
type Factory func(location string, opts Options) (Source, error)

// StatusError reports a non-2xx response from a network source.
type StatusError struct {
	URL        string
	StatusCode int
	Location   string
}

func (e *StatusError) Error() string {
	if e == nil {
		return "HTTP status error"
	}
	loc := strings.TrimSpace(e.Location)
	if loc == "" {
		return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("HTTP %d for %s location=%s", e.StatusCode, e.URL, loc)
}

// Is lets errors.Is(err, ErrNotFound) match 404 and 410 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && (e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusGone)
}

// IsHTML reports whether data looks like an HTML page rather than JSON.
// Static hosts commonly answer missing files with an index or error page.
func IsHTML(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) > 64 {
		trimmed = trimmed[:64]
	}
	lower := bytes.ToLower(trimmed)
	return bytes.HasPrefix(lower, []byte("<!doctype")) || bytes.HasPrefix(lower, []byte("<html"))
}

// HTMLTitle returns the trimmed <title> of an HTML document, or "".
func HTMLTitle(data []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("head title").First().Text()), " ")
}

// MetaContent returns the content attribute of the first <meta> whose
// property or name equals key, or "".
func MetaContent(data []byte, key string) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	sel := doc.Find(fmt.Sprintf(`meta[property=%q], meta[name=%q]`, key, key)).First()
	content, _ := sel.Attr("content")
	return strings.TrimSpace(content)
}
