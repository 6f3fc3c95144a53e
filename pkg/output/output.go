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

// Package output provides the Adapter interface for catalog renderers.
//
// Output adapters convert a loaded catalog into a specific file format.
// Each adapter is registered with the global registry and can be selected
// at runtime via the --format flag.
//
// # Implementing an Output Adapter
//
// To create a new output adapter:
//
//  1. Create a new package under pkg/output/
//  2. Implement the Adapter interface
//  3. Register via init() using adapter.RegisterOutput()
//  4. Import in cmd/root.go to include in the build
//
// Example:
//
//	package csv
//
//	func init() {
//	    adapter.RegisterOutput(New())
//	}
//
//	type Adapter struct {
//	    config output.Config
//	}
//
//	func New() *Adapter { return &Adapter{} }
//
//	func (a *Adapter) Name() string         { return "csv" }
//	func (a *Adapter) DisplayName() string  { return "CSV" }
//	func (a *Adapter) Extensions() []string { return []string{".csv"} }
//
//	func (a *Adapter) Configure(cfg output.Config) error {
//	    a.config = cfg
//	    return nil
//	}
//
//	func (a *Adapter) Render(c *catalog.Catalog, opts output.RenderOptions) ([]byte, error) {
//	    for _, v := range output.Flatten(output.Prepare(c, opts)) {
//	        // one row per video
//	    }
//	    return nil, nil
//	}
package output

import (
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/youtube"
)

// Adapter is the interface for catalog renderers.
type Adapter interface {
	// Name returns the unique adapter identifier used in --format flag.
	Name() string

	// DisplayName returns a human-friendly name for UI display.
	DisplayName() string

	// Extensions returns file extensions supported by this format.
	// First extension is the default.
	Extensions() []string

	// Configure applies runtime configuration to the adapter.
	Configure(cfg Config) error

	// Render converts the catalog to the output format.
	Render(c *catalog.Catalog, opts RenderOptions) ([]byte, error)
}

// Config holds adapter-specific configuration passed at runtime.
type Config struct {
	// Enabled indicates whether this adapter should be used.
	Enabled bool

	// Options holds adapter-specific key-value options.
	Options map[string]interface{}
}

// RenderOptions configures what information to include in the output.
type RenderOptions struct {
	// IncludeMetadata adds a header with generation time, location and
	// counts.
	IncludeMetadata bool

	// IncludeDetails adds channel and duration to each video.
	IncludeDetails bool

	// SortAlpha sorts nodes and videos by label.
	SortAlpha bool

	// Style specifies a format variant (adapter-specific).
	// For markdown: "textual", "table", "yaml"
	Style string

	// Title overrides the document title.
	Title string
}

// DefaultRenderOptions returns sensible defaults for rendering.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		IncludeMetadata: true,
		IncludeDetails:  true,
	}
}

// DocumentTitle returns opts.Title or the default title.
func DocumentTitle(opts RenderOptions) string {
	if opts.Title != "" {
		return opts.Title
	}
	return "Video Catalog"
}

// Metadata describes a rendering pass.
type Metadata struct {
	Generated string `json:"generated" yaml:"generated" plist:"generated"`
	Platform  string `json:"platform" yaml:"platform" plist:"platform"`
	Location  string `json:"location,omitempty" yaml:"location,omitempty" plist:"location,omitempty"`
	LoadedAt  string `json:"loadedAt,omitempty" yaml:"loadedAt,omitempty" plist:"loadedAt,omitempty"`
	Groups    int    `json:"groups" yaml:"groups" plist:"groups"`
	Total     int    `json:"total" yaml:"total" plist:"total"`
}

// NewMetadata summarises c.
func NewMetadata(c *catalog.Catalog) *Metadata {
	m := &Metadata{
		Generated: time.Now().Format(time.RFC3339),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if c == nil {
		return m
	}
	m.Location = c.Location
	if !c.LoadedAt.IsZero() {
		m.LoadedAt = c.LoadedAt.Format(time.RFC3339)
	}
	m.Groups = len(c.Groups)
	m.Total = c.Count()
	return m
}

// Prepare returns the groups to render, sorted when opts.SortAlpha is
// set. The catalog is not modified.
func Prepare(c *catalog.Catalog, opts RenderOptions) []catalog.Group {
	if c == nil {
		return []catalog.Group{}
	}
	groups := catalog.Finalize(c.Groups)
	if !opts.SortAlpha {
		return groups
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return lessFold(groups[i].Label(), groups[j].Label())
	})
	for i := range groups {
		groups[i].Subgroups = sortSubgroups(groups[i].Subgroups)
	}
	return groups
}

func sortSubgroups(subgroups []catalog.Subgroup) []catalog.Subgroup {
	sort.SliceStable(subgroups, func(i, j int) bool {
		return lessFold(subgroups[i].Label(), subgroups[j].Label())
	})
	for i := range subgroups {
		videos := subgroups[i].Videos
		sort.SliceStable(videos, func(a, b int) bool {
			return lessFold(videos[a].Snippet.Title, videos[b].Snippet.Title)
		})
		subgroups[i].Subgroups = sortSubgroups(subgroups[i].Subgroups)
	}
	return subgroups
}

func lessFold(a, b string) bool {
	return catalog.NormalizeText(a) < catalog.NormalizeText(b)
}

// Entry is a video with the navigation path it was found under.
type Entry struct {
	Path  []string
	Video catalog.Video
}

// Flatten lists every video in depth-first order with its path of labels.
func Flatten(groups []catalog.Group) []Entry {
	var out []Entry
	var walk func(path []string, subgroups []catalog.Subgroup)
	walk = func(path []string, subgroups []catalog.Subgroup) {
		for _, sg := range subgroups {
			p := append(append([]string{}, path...), sg.Label())
			for _, v := range sg.Videos {
				out = append(out, Entry{Path: p, Video: v})
			}
			walk(p, sg.Subgroups)
		}
	}
	for _, g := range groups {
		walk([]string{g.Label()}, g.Subgroups)
	}
	return out
}

// VideoTitle returns the video title, or its ID when untitled.
func VideoTitle(v catalog.Video) string {
	if t := strings.TrimSpace(v.Snippet.Title); t != "" {
		return t
	}
	return v.Key()
}

// VideoURL returns the watch URL of a video.
func VideoURL(v catalog.Video) string {
	return youtube.WatchURL(v.Key())
}

// Details returns the channel and formatted duration present on v.
func Details(v catalog.Video) []string {
	var parts []string
	if v.Snippet.ChannelTitle != "" {
		parts = append(parts, v.Snippet.ChannelTitle)
	}
	if v.Snippet.Duration != "" {
		parts = append(parts, youtube.FormatDuration(v.Snippet.Duration))
	}
	return parts
}
