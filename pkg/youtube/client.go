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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
)

const (
	// DefaultBaseURL is the Data API v3 endpoint.
	DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

	// DefaultWatchBaseURL serves watch pages for the title fallback.
	DefaultWatchBaseURL = "https://www.youtube.com"

	// APIKeyEnv is the environment variable consulted for the API key.
	APIKeyEnv = "YOUTUBE_API_KEY"

	// DefaultMaxResults is the default search page size.
	DefaultMaxResults = 20

	// maxIDsPerCall is the Data API limit for ids and maxResults.
	maxIDsPerCall = 50

	// maxErrorDetail bounds the response body kept in an APIError.
	maxErrorDetail = 2048
)

// Options configures a Client.
type Options struct {
	// APIKey authenticates Data API calls. When empty, the variable named
	// by APIKeyEnv is consulted.
	APIKey string

	// APIKeyEnv overrides the environment variable name.
	APIKeyEnv string

	// BaseURL overrides DefaultBaseURL.
	BaseURL string

	// WatchBaseURL overrides DefaultWatchBaseURL.
	WatchBaseURL string

	// MaxResults is the default search page size (1 to 50).
	MaxResults int

	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the YouTube Data API v3.
type Client struct {
	apiKey       string
	baseURL      string
	watchBaseURL string
	maxResults   int
	http         *http.Client
	logger       *slog.Logger
	now          func() time.Time
}

// New creates a Client. It never fails: a missing key is reported by the
// API methods.
func New(opts Options) *Client {
	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		env := opts.APIKeyEnv
		if env == "" {
			env = APIKeyEnv
		}
		key = strings.TrimSpace(os.Getenv(env))
	}

	c := &Client{
		apiKey:       key,
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		watchBaseURL: strings.TrimRight(opts.WatchBaseURL, "/"),
		maxResults:   clampResults(opts.MaxResults, DefaultMaxResults),
		http:         opts.HTTPClient,
		logger:       opts.Logger,
		now:          time.Now,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.watchBaseURL == "" {
		c.watchBaseURL = DefaultWatchBaseURL
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 20 * time.Second}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// HasCredential reports whether an API key is configured.
func (c *Client) HasCredential() bool {
	return c.apiKey != ""
}

// API response shapes. Only the fields used are declared.

type apiThumbnails struct {
	Default *catalog.Thumbnail `json:"default"`
	Medium  *catalog.Thumbnail `json:"medium"`
	High    *catalog.Thumbnail `json:"high"`
}

func (t apiThumbnails) best() string {
	for _, th := range []*catalog.Thumbnail{t.High, t.Medium, t.Default} {
		if th != nil && th.URL != "" {
			return th.URL
		}
	}
	return ""
}

type apiSnippet struct {
	Title        string        `json:"title"`
	ChannelTitle string        `json:"channelTitle"`
	PublishedAt  string        `json:"publishedAt"`
	Thumbnails   apiThumbnails `json:"thumbnails"`
	ResourceID   struct {
		VideoID string `json:"videoId"`
	} `json:"resourceId"`
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet apiSnippet `json:"snippet"`
	} `json:"items"`
}

type videoDetail struct {
	ID             string     `json:"id"`
	Snippet        apiSnippet `json:"snippet"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
}

type videosResponse struct {
	Items []videoDetail `json:"items"`
}

type playlistsResponse struct {
	Items []struct {
		ID      string     `json:"id"`
		Snippet apiSnippet `json:"snippet"`
	} `json:"items"`
}

type playlistItemsResponse struct {
	Items []struct {
		Snippet apiSnippet `json:"snippet"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

// get performs a GET on an API resource and decodes the JSON body.
func (c *Client) get(ctx context.Context, resource string, params url.Values, out any) error {
	if c.apiKey == "" {
		return ErrMissingCredential
	}
	params.Set("key", c.apiKey)

	endpoint := c.baseURL + "/" + resource + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building %s request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorDetail))
		return &APIError{Status: resp.StatusCode, Detail: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", resource, err)
	}
	return nil
}

// Search returns videos matching query. maxResults of zero uses the
// client default; values are clamped to 1..50. Durations come from a
// follow-up details call; when that call fails the videos are returned
// with a zero duration.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]catalog.Video, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if c.apiKey == "" {
		return nil, ErrMissingCredential
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(clampResults(maxResults, c.maxResults)))

	var resp searchResponse
	if err := c.get(ctx, "search", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return []catalog.Video{}, nil
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}

	details, err := c.videoDetails(ctx, ids, "contentDetails")
	if err != nil {
		c.logger.Warn("video details unavailable, continuing without durations", "error", err)
		details = map[string]videoDetail{}
	}

	videos := make([]catalog.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		id := item.ID.VideoID
		if id == "" {
			continue
		}
		thumb := item.Snippet.Thumbnails.best()
		if thumb == "" {
			thumb = MaxResThumbnailURL(id)
		}
		videos = append(videos, catalog.Video{
			ID: catalog.VideoID{VideoID: id},
			Snippet: catalog.Snippet{
				Title:        item.Snippet.Title,
				ChannelTitle: item.Snippet.ChannelTitle,
				Duration:     durationOrZero(details[id].ContentDetails.Duration),
				UploadDate:   item.Snippet.PublishedAt,
				Thumbnails: catalog.Thumbnails{
					Default: &catalog.Thumbnail{URL: thumb},
					Medium:  &catalog.Thumbnail{URL: thumb},
					High:    catalog.Thumbnail{URL: thumb},
				},
			},
		})
	}

	c.logger.Debug("search complete", "query", query, "results", len(videos))
	return videos, nil
}

// Videos returns full details for ids, in the order given. Unknown ids
// are omitted.
func (c *Client) Videos(ctx context.Context, ids []string) ([]catalog.Video, error) {
	details, err := c.videoDetails(ctx, ids, "snippet,contentDetails")
	if err != nil {
		return nil, err
	}
	videos := make([]catalog.Video, 0, len(ids))
	for _, id := range ids {
		d, ok := details[id]
		if !ok {
			continue
		}
		videos = append(videos, d.video())
	}
	return videos, nil
}

func (d videoDetail) video() catalog.Video {
	thumb := d.Snippet.Thumbnails.best()
	if thumb == "" {
		thumb = MaxResThumbnailURL(d.ID)
	}
	return catalog.Video{
		ID: catalog.VideoID{VideoID: d.ID},
		Snippet: catalog.Snippet{
			Title:        d.Snippet.Title,
			ChannelTitle: d.Snippet.ChannelTitle,
			Duration:     durationOrZero(d.ContentDetails.Duration),
			UploadDate:   d.Snippet.PublishedAt,
			Thumbnails:   catalog.Thumbnails{High: catalog.Thumbnail{URL: thumb}},
		},
	}
}

// videoDetails fetches ids in batches of 50 and indexes them by id.
func (c *Client) videoDetails(ctx context.Context, ids []string, part string) (map[string]videoDetail, error) {
	out := make(map[string]videoDetail, len(ids))
	for start := 0; start < len(ids); start += maxIDsPerCall {
		end := start + maxIDsPerCall
		if end > len(ids) {
			end = len(ids)
		}

		params := url.Values{}
		params.Set("part", part)
		params.Set("id", strings.Join(ids[start:end], ","))

		var resp videosResponse
		if err := c.get(ctx, "videos", params, &resp); err != nil {
			return nil, err
		}
		for _, item := range resp.Items {
			out[item.ID] = item
		}
	}
	return out, nil
}

// ImportedPlaylist is a platform playlist fetched for import.
type ImportedPlaylist struct {
	ID     string
	Title  string
	Videos []catalog.Video
}

// ImportPlaylist fetches the title and every video of the playlist named
// by a URL carrying a list parameter. Pages are followed until the API
// stops returning a page token.
func (c *Client) ImportPlaylist(ctx context.Context, playlistURL string) (*ImportedPlaylist, error) {
	if c.apiKey == "" {
		return nil, ErrMissingCredential
	}
	playlistID, err := ExtractPlaylistID(playlistURL)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", playlistID)

	var meta playlistsResponse
	if err := c.get(ctx, "playlists", params, &meta); err != nil {
		return nil, fmt.Errorf("fetching playlist %s: %w", playlistID, err)
	}
	if len(meta.Items) == 0 {
		return nil, fmt.Errorf("playlist %s: %w", playlistID, ErrNotFound)
	}

	result := &ImportedPlaylist{
		ID:     playlistID,
		Title:  meta.Items[0].Snippet.Title,
		Videos: []catalog.Video{},
	}

	seenTokens := make(map[string]bool)
	pageToken := ""
	for {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("playlistId", playlistID)
		params.Set("maxResults", strconv.Itoa(maxIDsPerCall))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var page playlistItemsResponse
		if err := c.get(ctx, "playlistItems", params, &page); err != nil {
			return nil, fmt.Errorf("fetching items of playlist %s: %w", playlistID, err)
		}

		result.Videos = append(result.Videos, c.resolvePage(ctx, page)...)

		pageToken = page.NextPageToken
		if pageToken == "" || seenTokens[pageToken] {
			break
		}
		seenTokens[pageToken] = true
	}

	c.logger.Debug("playlist fetched", "playlist", playlistID, "title", result.Title, "videos", len(result.Videos))
	return result, nil
}

// resolvePage combines one page of playlist items with their video
// details. Item snippets fill in whatever the details call lacks.
func (c *Client) resolvePage(ctx context.Context, page playlistItemsResponse) []catalog.Video {
	ids := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		if id := item.Snippet.ResourceID.VideoID; id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	details, err := c.videoDetails(ctx, ids, "snippet,contentDetails")
	if err != nil {
		c.logger.Warn("video details unavailable for playlist page", "error", err)
		details = map[string]videoDetail{}
	}

	videos := make([]catalog.Video, 0, len(ids))
	for _, item := range page.Items {
		id := item.Snippet.ResourceID.VideoID
		if id == "" {
			continue
		}
		d := details[id]
		thumb := d.Snippet.Thumbnails.best()
		if thumb == "" {
			thumb = item.Snippet.Thumbnails.best()
		}
		if thumb == "" {
			thumb = MaxResThumbnailURL(id)
		}
		videos = append(videos, catalog.Video{
			ID: catalog.VideoID{VideoID: id},
			Snippet: catalog.Snippet{
				Title:        firstNonEmpty(d.Snippet.Title, item.Snippet.Title),
				ChannelTitle: firstNonEmpty(d.Snippet.ChannelTitle, item.Snippet.ChannelTitle),
				Duration:     durationOrZero(d.ContentDetails.Duration),
				UploadDate:   firstNonEmpty(d.Snippet.PublishedAt, item.Snippet.PublishedAt),
				Thumbnails:   catalog.Thumbnails{High: catalog.Thumbnail{URL: thumb}},
			},
		})
	}
	return videos
}

func clampResults(n, fallback int) int {
	if n <= 0 {
		n = fallback
	}
	if n <= 0 {
		n = DefaultMaxResults
	}
	if n > maxIDsPerCall {
		n = maxIDsPerCall
	}
	return n
}

func durationOrZero(d string) string {
	if d == "" {
		return "PT0S"
	}
	return d
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
