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

// Package content decodes content files into typed declarations.
//
// A content file is a JSON array of loosely typed items. Each item is
// classified into exactly one declaration:
//
//	{"name": "music", "subgroups": [...]}   NestedGroup
//	{"videos": [...]}                       VideoList
//	{"subgroups": [...]}                    SubgroupList
//	[{...video...}, ...]                    FlatVideos
//	{"id": {"videoId": "..."}, "snippet": ...} SingleVideo
//
// Anything else is Unknown and contributes nothing.
package content

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/source"
	"github.com/cloudygreybeard/vidshelf/pkg/youtube"
)

var (
	// ErrHTML is returned by Decode for an HTML page.
	ErrHTML = errors.New("content is an HTML page")

	// ErrNotArray is returned by Decode for JSON that is not an array.
	ErrNotArray = errors.New("content is not a JSON array")
)

// Item is a classified content declaration. The concrete type is one of
// NestedGroup, VideoList, SubgroupList, FlatVideos, SingleVideo or Unknown.
type Item interface {
	// Kind names the declaration for logging.
	Kind() string
}

// NestedGroup declares subgroups under a named group.
type NestedGroup struct {
	Name      string
	ViewName  string
	Subgroups []catalog.Subgroup
}

// VideoList declares videos through a "videos" key.
type VideoList struct {
	Videos []catalog.Video
}

// SubgroupList declares subgroups without naming a group.
type SubgroupList struct {
	Subgroups []catalog.Subgroup
}

// FlatVideos is a bare array of videos.
type FlatVideos struct {
	Videos []catalog.Video
}

// SingleVideo is one video object.
type SingleVideo struct {
	Video catalog.Video
}

// Unknown is any item with no recognised shape.
type Unknown struct {
	Reason string
}

func (NestedGroup) Kind() string  { return "nested-group" }
func (VideoList) Kind() string    { return "video-list" }
func (SubgroupList) Kind() string { return "subgroup-list" }
func (FlatVideos) Kind() string   { return "flat-videos" }
func (SingleVideo) Kind() string  { return "single-video" }
func (Unknown) Kind() string      { return "unknown" }

// Decode splits a content file into its raw items.
func Decode(data []byte) ([]json.RawMessage, error) {
	if source.IsHTML(data) {
		return nil, ErrHTML
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Classify parses one raw item.
func Classify(raw json.RawMessage) Item {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Unknown{Reason: "empty item"}
	}

	switch raw[0] {
	case '[':
		return FlatVideos{Videos: decodeVideos(raw)}
	case '{':
	default:
		return Unknown{Reason: "not an object or array"}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Unknown{Reason: err.Error()}
	}

	name := stringField(fields, "name")
	if name != "" && isArray(fields["subgroups"]) {
		return NestedGroup{
			Name:      name,
			ViewName:  stringField(fields, "viewName"),
			Subgroups: decodeSubgroups(fields["subgroups"]),
		}
	}
	if isArray(fields["videos"]) {
		return VideoList{Videos: decodeVideos(fields["videos"])}
	}
	if isArray(fields["subgroups"]) {
		return SubgroupList{Subgroups: decodeSubgroups(fields["subgroups"])}
	}

	_, hasID := fields["id"]
	_, hasTitle := fields["title"]
	_, hasURL := fields["url"]
	if hasID || hasTitle || hasURL {
		v, ok := DecodeVideo(raw)
		if !ok {
			return Unknown{Reason: "video without an id"}
		}
		return SingleVideo{Video: v}
	}

	return Unknown{Reason: "no recognised keys"}
}

type rawVideo struct {
	ID           json.RawMessage     `json:"id"`
	VideoID      string              `json:"videoId"`
	URL          string              `json:"url"`
	Title        string              `json:"title"`
	ChannelTitle string              `json:"channelTitle"`
	Duration     string              `json:"duration"`
	UploadDate   string              `json:"uploadDate"`
	Thumbnails   *catalog.Thumbnails `json:"thumbnails"`
	Snippet      *catalog.Snippet    `json:"snippet"`
}

// DecodeVideo decodes one video object. The id comes from id.videoId, a
// string id, a top-level videoId, or the url; ok is false when none
// yields one. Top-level display fields fill gaps in the snippet, and a
// missing thumbnail defaults to the platform's image for the id.
func DecodeVideo(raw json.RawMessage) (catalog.Video, bool) {
	var rv rawVideo
	if err := json.Unmarshal(raw, &rv); err != nil {
		return catalog.Video{}, false
	}

	id := videoID(rv)
	if id == "" {
		return catalog.Video{}, false
	}

	var snippet catalog.Snippet
	if rv.Snippet != nil {
		snippet = *rv.Snippet
	}
	if snippet.Title == "" {
		snippet.Title = rv.Title
	}
	if snippet.ChannelTitle == "" {
		snippet.ChannelTitle = rv.ChannelTitle
	}
	if snippet.Duration == "" {
		snippet.Duration = rv.Duration
	}
	if snippet.UploadDate == "" {
		snippet.UploadDate = rv.UploadDate
	}
	if snippet.Thumbnails.High.URL == "" && rv.Thumbnails != nil {
		snippet.Thumbnails = *rv.Thumbnails
	}
	if snippet.Thumbnails.High.URL == "" {
		snippet.Thumbnails.High.URL = youtube.MaxResThumbnailURL(id)
	}

	return catalog.Video{ID: catalog.VideoID{VideoID: id}, Snippet: snippet}, true
}

func videoID(rv rawVideo) string {
	id := bytes.TrimSpace(rv.ID)
	if len(id) > 0 {
		switch id[0] {
		case '"':
			var s string
			if json.Unmarshal(id, &s) == nil && s != "" {
				return s
			}
		case '{':
			var obj struct {
				VideoID string `json:"videoId"`
			}
			if json.Unmarshal(id, &obj) == nil && obj.VideoID != "" {
				return obj.VideoID
			}
		}
	}
	if rv.VideoID != "" {
		return rv.VideoID
	}
	if rv.URL != "" {
		if extracted, err := youtube.ExtractVideoID(rv.URL); err == nil {
			return extracted
		}
	}
	return ""
}

func decodeVideos(raw json.RawMessage) []catalog.Video {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []catalog.Video{}
	}
	videos := make([]catalog.Video, 0, len(items))
	for _, item := range items {
		if v, ok := DecodeVideo(item); ok {
			videos = append(videos, v)
		}
	}
	return videos
}

func decodeSubgroups(raw json.RawMessage) []catalog.Subgroup {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []catalog.Subgroup{}
	}
	subgroups := make([]catalog.Subgroup, 0, len(items))
	for _, item := range items {
		if sg, ok := decodeSubgroup(item); ok {
			subgroups = append(subgroups, sg)
		}
	}
	return subgroups
}

// decodeSubgroup requires a name; everything else is optional.
func decodeSubgroup(raw json.RawMessage) (catalog.Subgroup, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return catalog.Subgroup{}, false
	}
	name := stringField(fields, "name")
	if name == "" {
		return catalog.Subgroup{}, false
	}

	sg := catalog.Subgroup{
		Name:      name,
		ViewName:  stringField(fields, "viewName"),
		ChannelID: stringField(fields, "channelId"),
		Videos:    []catalog.Video{},
		Subgroups: []catalog.Subgroup{},
	}
	if isArray(fields["videos"]) {
		sg.Videos = decodeVideos(fields["videos"])
	}
	if isArray(fields["subgroups"]) {
		sg.Subgroups = decodeSubgroups(fields["subgroups"])
	}
	return sg, true
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}
