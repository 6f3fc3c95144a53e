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

// Package youtube provides video URL helpers and a small YouTube Data API
// v3 client.
//
// The URL helpers are pure functions and need no credentials:
//
//	id, err := youtube.ExtractVideoID("https://youtu.be/dQw4w9WgXcQ")
//	embed := youtube.EmbedURL(id, 95)  // resumes at 1:35
//	fmt.Println(youtube.FormatDuration("PT1H2M3S")) // 1:02:03
//
// The Client needs an API key, taken from configuration or the
// YOUTUBE_API_KEY environment variable. Without one every API method
// returns ErrMissingCredential.
package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
)

// DeepLinkParam is the query parameter carrying a shared video id.
const DeepLinkParam = "v"

// Thumbnail qualities accepted by ThumbnailURL.
const (
	QualityDefault = "default"
	QualityMedium  = "medium"
	QualityHigh    = "high"
)

// embedParams are appended to every embed URL.
const embedParams = "autoplay=1&modestbranding=1&rel=0&showinfo=0&iv_load_policy=3"

// resumeThreshold is the saved position, in seconds, above which an embed
// URL resumes playback instead of starting from the beginning.
const resumeThreshold = 10

var (
	videoIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/shorts/)([^&\n?#/]+)`),
		regexp.MustCompile(`youtube\.com/watch\?(?:.*&)?v=([^&\n?#]+)`),
	}

	playlistIDPattern = regexp.MustCompile(`[?&]list=([^&\n?#]+)`)

	durationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)
)

// ExtractVideoID returns the video id from a watch, short-link, embed or
// shorts URL.
func ExtractVideoID(rawURL string) (string, error) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(rawURL); m != nil && m[1] != "" {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("%w: no video id in %q", ErrInvalidURL, rawURL)
}

// IsVideoURL reports whether rawURL carries a video id.
func IsVideoURL(rawURL string) bool {
	_, err := ExtractVideoID(rawURL)
	return err == nil
}

// ExtractPlaylistID returns the value of the list parameter.
func ExtractPlaylistID(rawURL string) (string, error) {
	if m := playlistIDPattern.FindStringSubmatch(rawURL); m != nil && m[1] != "" {
		return m[1], nil
	}
	return "", fmt.Errorf("%w: no playlist id in %q", ErrInvalidURL, rawURL)
}

// EmbedURL returns the player embed URL for id. When position exceeds ten
// seconds the URL resumes from the whole second.
func EmbedURL(id string, position float64) string {
	u := "https://www.youtube.com/embed/" + url.PathEscape(id) + "?" + embedParams
	if position > resumeThreshold {
		u += "&start=" + strconv.Itoa(int(position))
	}
	return u
}

// WatchURL returns the platform watch page URL for id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(id)
}

// ThumbnailURL returns the thumbnail image URL for id at a quality.
// Unknown qualities fall back to medium.
func ThumbnailURL(id, quality string) string {
	name := "mqdefault"
	switch quality {
	case QualityDefault:
		name = "default"
	case QualityHigh:
		name = "hqdefault"
	}
	return "https://img.youtube.com/vi/" + id + "/" + name + ".jpg"
}

// MaxResThumbnailURL returns the largest thumbnail URL for id.
func MaxResThumbnailURL(id string) string {
	return "https://i.ytimg.com/vi/" + id + "/maxresdefault.jpg"
}

// ParseDuration converts an ISO 8601 duration such as PT4M13S.
// It reports false when s carries no PT component.
func ParseDuration(s string) (time.Duration, bool) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	sec, _ := strconv.Atoi(m[3])
	return time.Duration(h)*time.Hour + time.Duration(mins)*time.Minute + time.Duration(sec)*time.Second, true
}

// FormatDuration renders an ISO 8601 duration as h:mm:ss, or m:ss when it
// is under an hour. Unparseable input renders as "0:00".
func FormatDuration(s string) string {
	d, ok := ParseDuration(s)
	if !ok {
		return "0:00"
	}
	total := int(d / time.Second)
	h, m, sec := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}

// Placeholder returns a video stub for id with the given title, used
// before (or instead of) fetching real details.
func Placeholder(id, title string, now time.Time) catalog.Video {
	return catalog.Video{
		ID: catalog.VideoID{VideoID: id},
		Snippet: catalog.Snippet{
			Title:        title,
			ChannelTitle: "YouTube",
			Duration:     "PT0S",
			UploadDate:   now.UTC().Format(time.RFC3339),
			Thumbnails: catalog.Thumbnails{
				High: catalog.Thumbnail{URL: MaxResThumbnailURL(id)},
			},
		},
	}
}

// VideoFromURL builds a video stub from a pasted link.
func VideoFromURL(rawURL string, now time.Time) (catalog.Video, error) {
	id, err := ExtractVideoID(rawURL)
	if err != nil {
		return catalog.Video{}, err
	}
	return Placeholder(id, "YouTube Video", now), nil
}

// ShareURL returns the application deep link for id. With no public URL
// configured it returns the platform watch URL.
func ShareURL(publicURL, id string) string {
	if strings.TrimSpace(publicURL) == "" {
		return WatchURL(id)
	}
	u, err := url.Parse(publicURL)
	if err != nil || u.Host == "" {
		return WatchURL(id)
	}
	q := u.Query()
	q.Set(DeepLinkParam, id)
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String()
}

// ParseDeepLink extracts the shared video id from an application URL and
// returns the URL with the parameter removed. ok is false when the URL
// carries no id.
func ParseDeepLink(rawURL string) (id, stripped string, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", rawURL, false
	}
	q := u.Query()
	id = strings.TrimSpace(q.Get(DeepLinkParam))
	if id == "" {
		return "", rawURL, false
	}
	q.Del(DeepLinkParam)
	u.RawQuery = q.Encode()
	return id, u.String(), true
}
