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

package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/source"
)

// SharedVideoTitle is the placeholder title of a deep-linked video whose
// details could not be fetched.
const SharedVideoTitle = "Shared Video"

// maxPageSize bounds the watch page read for the title fallback.
const maxPageSize = 2 << 20

// ResolveDeepLink returns a playable video for a shared id. It never
// fails: with an API key the details come from the Data API, without one
// the title is scraped from the watch page, and any failure leaves the
// placeholder in place.
func (c *Client) ResolveDeepLink(ctx context.Context, id string) catalog.Video {
	video := Placeholder(id, SharedVideoTitle, c.now())

	if c.HasCredential() {
		details, err := c.Videos(ctx, []string{id})
		if err != nil {
			c.logger.Warn("deep link details unavailable", "video", id, "error", err)
			return video
		}
		if len(details) == 0 {
			c.logger.Debug("deep link video not found", "video", id)
			return video
		}
		d := details[0]
		video.Snippet.Title = d.Snippet.Title
		video.Snippet.ChannelTitle = d.Snippet.ChannelTitle
		video.Snippet.UploadDate = d.Snippet.UploadDate
		video.Snippet.Duration = d.Snippet.Duration
		if d.Snippet.Thumbnails.High.URL != "" {
			video.Snippet.Thumbnails.High.URL = d.Snippet.Thumbnails.High.URL
		}
		return video
	}

	title, err := c.PageTitle(ctx, id)
	if err != nil {
		c.logger.Debug("deep link page title unavailable", "video", id, "error", err)
		return video
	}
	if title != "" {
		video.Snippet.Title = title
	}
	return video
}

// PageTitle scrapes the title of a video's watch page, preferring the
// og:title meta tag. It needs no credentials.
func (c *Client) PageTitle(ctx context.Context, id string) (string, error) {
	target := c.watchBaseURL + "/watch?v=" + url.QueryEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("building watch page request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &source.StatusError{URL: target, StatusCode: resp.StatusCode, Location: resp.Header.Get("Location")}
	}

	page, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return "", fmt.Errorf("reading watch page: %w", err)
	}

	title := source.MetaContent(page, "og:title")
	if title == "" {
		title = strings.TrimSuffix(source.HTMLTitle(page), " - YouTube")
	}
	return strings.TrimSpace(title), nil
}
