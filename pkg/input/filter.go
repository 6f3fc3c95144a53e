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

package input

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/youtube"
)

// FilterOptions configures link filtering.
type FilterOptions struct {
	IncludeFolders     []string // Only include links in these folders
	ExcludeFolders     []string // Exclude links in these folders
	ExcludeURLPatterns []string // Exclude URLs matching these regex patterns
}

// FilterResult contains the kept links and counts of what was dropped.
type FilterResult struct {
	Links []Link

	// NotVideo counts links that do not point at a platform video.
	NotVideo int

	// Excluded counts video links removed by folder or pattern rules.
	Excluded int

	// Duplicates counts repeated video links.
	Duplicates int
}

// Filter keeps the links that point at a platform video, sets their
// VideoID and drops repeats of the same video. The first occurrence wins.
func Filter(links []Link, opts FilterOptions) (FilterResult, error) {
	var patterns []*regexp.Regexp
	for _, p := range opts.ExcludeURLPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return FilterResult{}, fmt.Errorf("compiling pattern %q: %w", p, err)
		}
		patterns = append(patterns, re)
	}

	seen := make(map[string]bool)
	result := FilterResult{Links: []Link{}}
	for _, l := range links {
		id, err := youtube.ExtractVideoID(l.URL)
		if err != nil {
			result.NotVideo++
			continue
		}
		if excluded(l, opts, patterns) {
			result.Excluded++
			continue
		}
		if seen[id] {
			result.Duplicates++
			continue
		}
		seen[id] = true
		l.VideoID = id
		result.Links = append(result.Links, l)
	}
	return result, nil
}

func excluded(l Link, opts FilterOptions, patterns []*regexp.Regexp) bool {
	folder := strings.Join(l.FolderPath, "/")

	if len(opts.IncludeFolders) > 0 {
		matched := false
		for _, inc := range opts.IncludeFolders {
			if strings.Contains(folder, inc) {
				matched = true
				break
			}
		}
		if !matched {
			return true
		}
	}

	for _, exc := range opts.ExcludeFolders {
		if strings.Contains(folder, exc) {
			return true
		}
	}

	for _, p := range patterns {
		if p.MatchString(l.URL) {
			return true
		}
	}
	return false
}

// Videos converts filtered links into video stubs. The link title is
// used when the source gave one.
func Videos(links []Link, now time.Time) []catalog.Video {
	videos := make([]catalog.Video, 0, len(links))
	for _, l := range links {
		id := l.VideoID
		if id == "" {
			var err error
			if id, err = youtube.ExtractVideoID(l.URL); err != nil {
				continue
			}
		}
		title := strings.TrimSpace(l.Title)
		if title == "" {
			title = "YouTube Video"
		}
		added := now
		if !l.DateAdded.IsZero() {
			added = l.DateAdded
		}
		videos = append(videos, youtube.Placeholder(id, title, added))
	}
	return videos
}
