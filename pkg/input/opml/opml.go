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

// Package opml provides an input adapter for OPML and Netscape HTML
// bookmark files, including the files written by the opml and html
// renderers.
package opml

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/cloudygreybeard/vidshelf/pkg/adapter"
	"github.com/cloudygreybeard/vidshelf/pkg/input"
)

func init() {
	adapter.RegisterInput(&Adapter{})
}

// Adapter reads links from OPML or Netscape HTML files.
type Adapter struct {
	path string
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string { return "opml" }

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string { return "OPML/HTML Import" }

// Available returns true if a file path is configured.
func (a *Adapter) Available() bool { return a.path != "" }

// Path returns the configured file path.
func (a *Adapter) Path() string { return a.path }

// Configure sets up the adapter with the given configuration.
func (a *Adapter) Configure(cfg input.Config) error {
	a.path = cfg.CustomPath
	return nil
}

// ListProfiles returns nil; file imports have no profiles.
func (a *Adapter) ListProfiles() ([]input.ProfileInfo, error) {
	return nil, nil
}

// Read imports links from the configured file.
func (a *Adapter) Read(ctx context.Context) ([]input.Link, error) {
	if a.path == "" {
		return nil, fmt.Errorf("no file path configured")
	}

	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if isNetscape(data) {
		return parseNetscapeHTML(data)
	}
	return parseOPML(data)
}

func isNetscape(data []byte) bool {
	head := bytes.ToUpper(data[:min(len(data), 512)])
	return bytes.Contains(head, []byte("<!DOCTYPE NETSCAPE-BOOKMARK-FILE")) || bytes.Contains(head, []byte("<DL>"))
}

type opmlDocument struct {
	XMLName xml.Name `xml:"opml"`
	Body    opmlBody `xml:"body"`
}

type opmlBody struct {
	Outlines []opmlOutline `xml:"outline"`
}

type opmlOutline struct {
	Text     string        `xml:"text,attr"`
	Title    string        `xml:"title,attr"`
	Type     string        `xml:"type,attr"`
	HTMLURL  string        `xml:"htmlUrl,attr"`
	URL      string        `xml:"url,attr"`
	Created  string        `xml:"created,attr"`
	Children []opmlOutline `xml:"outline"`
}

func parseOPML(data []byte) ([]input.Link, error) {
	var doc opmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing OPML: %w", err)
	}

	var links []input.Link
	walkOPML(doc.Body.Outlines, nil, &links)
	return links, nil
}

func walkOPML(outlines []opmlOutline, path []string, links *[]input.Link) {
	for _, o := range outlines {
		title := o.Text
		if title == "" {
			title = o.Title
		}

		url := o.HTMLURL
		if url == "" {
			url = o.URL
		}

		if url == "" {
			walkOPML(o.Children, append(append([]string{}, path...), title), links)
			continue
		}

		l := input.Link{
			Title:      title,
			URL:        url,
			FolderPath: append([]string{}, path...),
			Source:     "opml",
			Profile:    "import",
		}
		if t, err := time.Parse(time.RFC1123, o.Created); err == nil {
			l.DateAdded = t
		}
		*links = append(*links, l)
	}
}

// parseNetscapeHTML reads the bookmark format exported by most browsers.
// A link's folder path is the H3 heading of every enclosing DT.
func parseNetscapeHTML(data []byte) ([]input.Link, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing bookmark HTML: %w", err)
	}

	var links []input.Link
	doc.Find("dt > a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")

		var path []string
		a.ParentsFiltered("dt").Each(func(_ int, dt *goquery.Selection) {
			if h3 := dt.ChildrenFiltered("h3"); h3.Length() > 0 {
				path = append([]string{strings.TrimSpace(h3.First().Text())}, path...)
			}
		})

		l := input.Link{
			Title:      strings.TrimSpace(a.Text()),
			URL:        strings.TrimSpace(href),
			FolderPath: path,
			Source:     "html",
			Profile:    "import",
		}
		if ts, err := strconv.ParseInt(a.AttrOr("add_date", ""), 10, 64); err == nil && ts > 0 {
			l.DateAdded = time.Unix(ts, 0)
		}
		links = append(links, l)
	})
	return links, nil
}
