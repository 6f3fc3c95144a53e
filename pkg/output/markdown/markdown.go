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

// Package markdown provides an output adapter for markdown format.
package markdown

import (
	"fmt"
	"strings"

	"github.com/cloudygreybeard/vidshelf/pkg/adapter"
	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/output"
	"github.com/cloudygreybeard/vidshelf/pkg/youtube"
	"gopkg.in/yaml.v3"
)

// Style defines the markdown sub-format.
type Style string

const (
	StyleTextual Style = "textual" // Nested markdown lists
	StyleTable   Style = "table"   // Markdown tables
	StyleYAML    Style = "yaml"    // Embedded YAML in code fence
)

func init() {
	adapter.RegisterOutput(New())
}

// Adapter implements output.Adapter for markdown format.
type Adapter struct {
	config output.Config
	style  Style
}

// New creates a new markdown adapter.
func New() *Adapter {
	return &Adapter{style: StyleTextual}
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string {
	return "markdown"
}

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string {
	return "Markdown"
}

// Extensions returns supported file extensions.
func (a *Adapter) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Configure applies configuration to the adapter.
func (a *Adapter) Configure(cfg output.Config) error {
	a.config = cfg
	if style, ok := cfg.Options["style"].(string); ok && style != "" {
		a.style = Style(style)
	}
	return nil
}

// Render converts the catalog to markdown.
func (a *Adapter) Render(c *catalog.Catalog, opts output.RenderOptions) ([]byte, error) {
	style := a.style
	if opts.Style != "" {
		style = Style(opts.Style)
	}

	groups := output.Prepare(c, opts)

	var sb strings.Builder
	sb.WriteString("# " + output.DocumentTitle(opts) + "\n\n")
	if opts.IncludeMetadata {
		writeMetadata(&sb, output.NewMetadata(c))
	}

	switch style {
	case StyleTable:
		renderTable(&sb, groups, opts)
	case StyleYAML:
		if err := renderYAML(&sb, groups); err != nil {
			return nil, err
		}
	default:
		renderTextual(&sb, groups, opts)
	}

	return []byte(sb.String()), nil
}

func writeMetadata(sb *strings.Builder, m *output.Metadata) {
	sb.WriteString(fmt.Sprintf("*Generated: %s*\n", m.Generated))
	sb.WriteString(fmt.Sprintf("*Platform: %s*\n", m.Platform))
	if m.Location != "" {
		sb.WriteString(fmt.Sprintf("*Source: %s*\n", m.Location))
	}
	sb.WriteString(fmt.Sprintf("*Total videos: %d*\n\n", m.Total))
}

func renderTextual(sb *strings.Builder, groups []catalog.Group, opts output.RenderOptions) {
	for _, g := range groups {
		sb.WriteString(fmt.Sprintf("## %s\n\n", g.Label()))
		for _, sg := range g.Subgroups {
			renderSubgroup(sb, sg, 0, opts)
		}
		sb.WriteString("\n")
	}
}

func renderSubgroup(sb *strings.Builder, sg catalog.Subgroup, indent int, opts output.RenderOptions) {
	sb.WriteString(fmt.Sprintf("%s- **%s**\n", strings.Repeat("  ", indent), sg.Label()))
	indent++

	for _, v := range sg.Videos {
		renderVideo(sb, v, indent, opts)
	}
	for _, child := range sg.Subgroups {
		renderSubgroup(sb, child, indent, opts)
	}
}

func renderVideo(sb *strings.Builder, v catalog.Video, indent int, opts output.RenderOptions) {
	title := strings.ReplaceAll(output.VideoTitle(v), "[", "\\[")
	title = strings.ReplaceAll(title, "]", "\\]")

	line := fmt.Sprintf("%s- [%s](%s)", strings.Repeat("  ", indent), title, output.VideoURL(v))
	if opts.IncludeDetails {
		if meta := output.Details(v); len(meta) > 0 {
			line += " *(" + strings.Join(meta, ", ") + ")*"
		}
	}
	sb.WriteString(line + "\n")
}

func renderTable(sb *strings.Builder, groups []catalog.Group, opts output.RenderOptions) {
	headers := []string{"Title", "Path"}
	if opts.IncludeDetails {
		headers = append(headers, "Channel", "Duration")
	}

	for _, g := range groups {
		sb.WriteString(fmt.Sprintf("## %s\n\n", g.Label()))
		sb.WriteString("| " + strings.Join(headers, " | ") + " |\n")
		sb.WriteString("|" + strings.Repeat("---|", len(headers)) + "\n")

		for _, e := range output.Flatten([]catalog.Group{g}) {
			link := fmt.Sprintf("[%s](%s)", escapeTableCell(output.VideoTitle(e.Video)), output.VideoURL(e.Video))
			row := []string{link, escapeTableCell(strings.Join(e.Path[1:], "/"))}
			if opts.IncludeDetails {
				duration := ""
				if e.Video.Snippet.Duration != "" {
					duration = youtube.FormatDuration(e.Video.Snippet.Duration)
				}
				row = append(row, escapeTableCell(e.Video.Snippet.ChannelTitle), duration)
			}
			sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
		}
		sb.WriteString("\n")
	}
}

func renderYAML(sb *strings.Builder, groups []catalog.Group) error {
	data, err := yaml.Marshal(map[string]any{"groups": groups})
	if err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	sb.WriteString("```yaml\n")
	sb.Write(data)
	sb.WriteString("```\n")
	return nil
}

func escapeTableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
