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

// Package opml provides output adapters for OPML and Netscape HTML formats.
package opml

import (
	"encoding/xml"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/cloudygreybeard/vidshelf/pkg/adapter"
	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/output"
)

func init() {
	adapter.RegisterOutput(&OPMLAdapter{})
	adapter.RegisterOutput(&HTMLAdapter{})
}

// OPMLAdapter exports the catalog as an OPML outline.
type OPMLAdapter struct{}

// Name returns the adapter identifier.
func (a *OPMLAdapter) Name() string { return "opml" }

// DisplayName returns a human-friendly name.
func (a *OPMLAdapter) DisplayName() string { return "OPML" }

// Extensions returns file extensions for this format.
func (a *OPMLAdapter) Extensions() []string { return []string{".opml", ".xml"} }

// Configure sets up the adapter.
func (a *OPMLAdapter) Configure(cfg output.Config) error { return nil }

// Render exports the catalog to OPML. Groups and subgroups become nested
// outlines and videos become link outlines.
func (a *OPMLAdapter) Render(c *catalog.Catalog, opts output.RenderOptions) ([]byte, error) {
	doc := opmlDocument{
		Version: "2.0",
		Head: opmlHead{
			Title:       output.DocumentTitle(opts),
			DateCreated: time.Now().Format(time.RFC1123),
		},
	}

	for _, g := range output.Prepare(c, opts) {
		doc.Body.Outlines = append(doc.Body.Outlines, opmlOutline{
			Text:     g.Label(),
			Children: subgroupOutlines(g.Subgroups),
		})
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling OPML: %w", err)
	}

	return append([]byte(xml.Header), data...), nil
}

func subgroupOutlines(subgroups []catalog.Subgroup) []opmlOutline {
	var outlines []opmlOutline
	for _, sg := range subgroups {
		outline := opmlOutline{Text: sg.Label(), Children: subgroupOutlines(sg.Subgroups)}
		for _, v := range sg.Videos {
			outline.Children = append(outline.Children, opmlOutline{
				Text:    output.VideoTitle(v),
				Type:    "link",
				HTMLURL: output.VideoURL(v),
				Created: uploadDate(v),
			})
		}
		outlines = append(outlines, outline)
	}
	return outlines
}

func uploadDate(v catalog.Video) string {
	t, err := time.Parse(time.RFC3339, v.Snippet.UploadDate)
	if err != nil {
		return ""
	}
	return t.Format(time.RFC1123)
}

// OPML structures for output
type opmlDocument struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    opmlHead `xml:"head"`
	Body    opmlBody `xml:"body"`
}

type opmlHead struct {
	Title       string `xml:"title"`
	DateCreated string `xml:"dateCreated"`
}

type opmlBody struct {
	Outlines []opmlOutline `xml:"outline"`
}

type opmlOutline struct {
	Text     string        `xml:"text,attr"`
	Type     string        `xml:"type,attr,omitempty"`
	HTMLURL  string        `xml:"htmlUrl,attr,omitempty"`
	Created  string        `xml:"created,attr,omitempty"`
	Children []opmlOutline `xml:"outline,omitempty"`
}

// HTMLAdapter exports the catalog as a Netscape bookmark file that
// browsers can import.
type HTMLAdapter struct{}

// Name returns the adapter identifier.
func (a *HTMLAdapter) Name() string { return "html" }

// DisplayName returns a human-friendly name.
func (a *HTMLAdapter) DisplayName() string { return "Netscape HTML" }

// Extensions returns file extensions for this format.
func (a *HTMLAdapter) Extensions() []string { return []string{".html", ".htm"} }

// Configure sets up the adapter.
func (a *HTMLAdapter) Configure(cfg output.Config) error { return nil }

// Render exports the catalog to Netscape HTML bookmark format.
func (a *HTMLAdapter) Render(c *catalog.Catalog, opts output.RenderOptions) ([]byte, error) {
	var sb strings.Builder
	title := html.EscapeString(output.DocumentTitle(opts))

	sb.WriteString(`<!DOCTYPE NETSCAPE-Bookmark-file-1>
<!-- This is an automatically generated file.
     It will be read and overwritten.
     DO NOT EDIT! -->
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
`)
	sb.WriteString(fmt.Sprintf("<TITLE>%s</TITLE>\n<H1>%s</H1>\n<DL><p>\n", title, title))

	for _, g := range output.Prepare(c, opts) {
		writeFolder(&sb, g.Label(), 1, func(depth int) {
			for _, sg := range g.Subgroups {
				renderHTMLSubgroup(&sb, sg, depth)
			}
		})
	}

	sb.WriteString("</DL><p>\n")

	return []byte(sb.String()), nil
}

func writeFolder(sb *strings.Builder, name string, depth int, body func(depth int)) {
	indent := strings.Repeat("    ", depth)
	sb.WriteString(fmt.Sprintf("%s<DT><H3>%s</H3>\n", indent, html.EscapeString(name)))
	sb.WriteString(fmt.Sprintf("%s<DL><p>\n", indent))
	body(depth + 1)
	sb.WriteString(fmt.Sprintf("%s</DL><p>\n", indent))
}

func renderHTMLSubgroup(sb *strings.Builder, sg catalog.Subgroup, depth int) {
	writeFolder(sb, sg.Label(), depth, func(depth int) {
		indent := strings.Repeat("    ", depth)
		for _, v := range sg.Videos {
			addDate := ""
			if t, err := time.Parse(time.RFC3339, v.Snippet.UploadDate); err == nil {
				addDate = fmt.Sprintf(" ADD_DATE=\"%d\"", t.Unix())
			}
			sb.WriteString(fmt.Sprintf("%s<DT><A HREF=\"%s\"%s>%s</A>\n",
				indent,
				html.EscapeString(output.VideoURL(v)),
				addDate,
				html.EscapeString(output.VideoTitle(v))))
		}
		for _, child := range sg.Subgroups {
			renderHTMLSubgroup(sb, child, depth)
		}
	})
}
