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

// Package playlist manages named, ordered, persisted video playlists with
// watched state and playback positions.
package playlist

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
)

// UnnamedPlaylist is the name given to stored playlists without one.
const UnnamedPlaylist = "Unnamed Playlist"

var (
	ErrNotFound        = errors.New("playlist not found")
	ErrEmptyName       = errors.New("playlist name is empty")
	ErrIndexOutOfRange = errors.New("video index out of range")
	ErrInvalidVideo    = errors.New("video has no id")
	ErrVideoNotFound   = errors.New("video not in playlist")
)

// Playlist is a user-created ordered collection of videos.
type Playlist struct {
	ID        string
	Name      string
	Videos    []catalog.Video
	CreatedAt time.Time

	// WatchedVideos is the set of watched video IDs.
	WatchedVideos map[string]bool

	CurrentVideoIndex int

	// VideoPositions maps a video ID to the last playback position in
	// seconds.
	VideoPositions map[string]float64
}

// IsWatched reports whether videoID is marked watched.
func (p Playlist) IsWatched(videoID string) bool {
	return p.WatchedVideos[videoID]
}

// Position returns the saved playback position of videoID in seconds.
func (p Playlist) Position(videoID string) float64 {
	return p.VideoPositions[videoID]
}

// Current returns the video at CurrentVideoIndex.
func (p Playlist) Current() (catalog.Video, bool) {
	if p.CurrentVideoIndex < 0 || p.CurrentVideoIndex >= len(p.Videos) {
		return catalog.Video{}, false
	}
	return p.Videos[p.CurrentVideoIndex], true
}

// IndexOf returns the position of videoID in the playlist, or -1.
func (p Playlist) IndexOf(videoID string) int {
	for i, v := range p.Videos {
		if v.Key() == videoID {
			return i
		}
	}
	return -1
}

// Watched returns the watched IDs in sorted order.
func (p Playlist) Watched() []string {
	ids := make([]string, 0, len(p.WatchedVideos))
	for id, ok := range p.WatchedVideos {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy.
func (p Playlist) Clone() Playlist {
	out := p
	out.Videos = append([]catalog.Video{}, p.Videos...)
	for i := range out.Videos {
		if th := out.Videos[i].Snippet.Thumbnails.Default; th != nil {
			c := *th
			out.Videos[i].Snippet.Thumbnails.Default = &c
		}
		if th := out.Videos[i].Snippet.Thumbnails.Medium; th != nil {
			c := *th
			out.Videos[i].Snippet.Thumbnails.Medium = &c
		}
	}
	out.WatchedVideos = make(map[string]bool, len(p.WatchedVideos))
	for id, ok := range p.WatchedVideos {
		if ok {
			out.WatchedVideos[id] = true
		}
	}
	out.VideoPositions = make(map[string]float64, len(p.VideoPositions))
	for id, pos := range p.VideoPositions {
		out.VideoPositions[id] = pos
	}
	return out
}

// clampIndex keeps CurrentVideoIndex inside the video list.
func (p *Playlist) clampIndex() {
	if p.CurrentVideoIndex >= len(p.Videos) {
		p.CurrentVideoIndex = len(p.Videos) - 1
	}
	if p.CurrentVideoIndex < 0 {
		p.CurrentVideoIndex = 0
	}
}

// record is the stored form. The watched set is an array of IDs and the
// position map an array of [id, seconds] pairs.
type record struct {
	ID                string          `json:"id"`
	Name              json.RawMessage `json:"name"`
	Videos            json.RawMessage `json:"videos"`
	CreatedAt         string          `json:"createdAt"`
	WatchedVideos     []string        `json:"watchedVideos"`
	CurrentVideoIndex int             `json:"currentVideoIndex"`
	VideoPositions    []positionPair  `json:"videoPositions"`
}

type positionPair struct {
	ID      string
	Seconds float64
}

func (pp positionPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{pp.ID, pp.Seconds})
}

func (pp *positionPair) UnmarshalJSON(data []byte) error {
	var pair []any
	if err := json.Unmarshal(data, &pair); err != nil || len(pair) != 2 {
		return nil
	}
	id, _ := pair[0].(string)
	seconds, _ := pair[1].(float64)
	*pp = positionPair{ID: id, Seconds: seconds}
	return nil
}

// MarshalJSON writes the stored form.
func (p Playlist) MarshalJSON() ([]byte, error) {
	name, err := json.Marshal(p.Name)
	if err != nil {
		return nil, err
	}
	videos := p.Videos
	if videos == nil {
		videos = []catalog.Video{}
	}
	rawVideos, err := json.Marshal(videos)
	if err != nil {
		return nil, err
	}

	positionIDs := make([]string, 0, len(p.VideoPositions))
	for id := range p.VideoPositions {
		positionIDs = append(positionIDs, id)
	}
	sort.Strings(positionIDs)
	positions := make([]positionPair, 0, len(positionIDs))
	for _, id := range positionIDs {
		positions = append(positions, positionPair{ID: id, Seconds: p.VideoPositions[id]})
	}

	created := ""
	if !p.CreatedAt.IsZero() {
		created = p.CreatedAt.UTC().Format(time.RFC3339Nano)
	}

	return json.Marshal(record{
		ID:                p.ID,
		Name:              name,
		Videos:            rawVideos,
		CreatedAt:         created,
		WatchedVideos:     p.Watched(),
		CurrentVideoIndex: p.CurrentVideoIndex,
		VideoPositions:    positions,
	})
}

// UnmarshalJSON reads the stored form. Missing or mistyped fields take
// defaults: a non-string name becomes UnnamedPlaylist, unreadable videos
// an empty list.
func (p *Playlist) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}

	out := Playlist{
		ID:                r.ID,
		Name:              UnnamedPlaylist,
		Videos:            []catalog.Video{},
		WatchedVideos:     make(map[string]bool, len(r.WatchedVideos)),
		CurrentVideoIndex: r.CurrentVideoIndex,
		VideoPositions:    make(map[string]float64, len(r.VideoPositions)),
	}

	var name string
	if err := json.Unmarshal(r.Name, &name); err == nil {
		out.Name = name
	}
	var videos []catalog.Video
	if err := json.Unmarshal(r.Videos, &videos); err == nil && videos != nil {
		out.Videos = videos
	}
	if t, err := time.Parse(time.RFC3339Nano, r.CreatedAt); err == nil {
		out.CreatedAt = t
	}
	for _, id := range r.WatchedVideos {
		if id != "" {
			out.WatchedVideos[id] = true
		}
	}
	for _, pp := range r.VideoPositions {
		if pp.ID != "" {
			out.VideoPositions[pp.ID] = pp.Seconds
		}
	}
	out.clampIndex()

	*p = out
	return nil
}

// Decode reads a stored playlist list. A single stored object is read as
// a one-element list; empty input is an empty list.
func Decode(data []byte) ([]Playlist, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return []Playlist{}, nil
	}
	if strings.HasPrefix(string(trimmed), "{") {
		var p Playlist
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, err
		}
		return []Playlist{p}, nil
	}
	var list []Playlist
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []Playlist{}
	}
	return list, nil
}

// Encode writes a playlist list in the stored form.
func Encode(playlists []Playlist) ([]byte, error) {
	if playlists == nil {
		playlists = []Playlist{}
	}
	return json.MarshalIndent(playlists, "", "  ")
}

// CatalogGroup is the group name AsCatalog files playlists under.
const CatalogGroup = "playlists"

// AsCatalog presents playlists as a catalog with a single group holding
// one subgroup per playlist, so any renderer can export them. Subgroups
// are keyed by playlist ID and labelled with the playlist name.
func AsCatalog(playlists []Playlist) *catalog.Catalog {
	group := catalog.Group{Name: CatalogGroup, ViewName: "Playlists", Subgroups: []catalog.Subgroup{}}
	for _, p := range playlists {
		group.Subgroups = append(group.Subgroups, catalog.Subgroup{
			Name:     p.ID,
			ViewName: p.Name,
			Videos:   append([]catalog.Video{}, p.Videos...),
		})
	}
	return catalog.NewCatalog([]catalog.Group{group}, "playlists")
}
