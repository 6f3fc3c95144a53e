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

// Package catalog provides the core video catalog model.
//
// This package defines the data structures that flow between the content
// loader (which builds the navigation tree from a manifest and content
// files) and everything that consumes it: renderers, search, the HTTP API
// and the playlist manager. It is independent of where content comes from.
//
// # Core Types
//
// Video is a single platform video with display metadata:
//
//	v := catalog.Video{
//	    ID: catalog.VideoID{VideoID: "dQw4w9WgXcQ"},
//	    Snippet: catalog.Snippet{
//	        Title:        "Never Gonna Give You Up",
//	        ChannelTitle: "Rick Astley",
//	        Duration:     "PT3M33S",
//	    },
//	}
//
// Group is a top-level navigation root; Subgroup is a nested node that may
// hold videos, further subgroups, both, or neither:
//
//	music := catalog.Group{
//	    Name: "music",
//	    Subgroups: []catalog.Subgroup{
//	        {Name: "hits", Videos: []catalog.Video{v}},
//	    },
//	}
//
// # Design Principles
//
//  1. Name is identity: siblings are keyed by Name, and merging two
//     same-named nodes unions their content.
//
//  2. Videos are keyed by ID.VideoID: a node never lists the same video
//     twice.
//
//  3. Value semantics: merge functions return new nodes and never modify
//     their inputs, so a loaded Catalog can be shared as a snapshot.
package catalog

import (
	"time"
)

// VideoID wraps the platform video identifier.
type VideoID struct {
	VideoID string `json:"videoId" yaml:"videoId" plist:"videoId"`
}

// Thumbnail is a single thumbnail image reference.
type Thumbnail struct {
	URL string `json:"url" yaml:"url" plist:"url"`
}

// Thumbnails holds the thumbnail variants a source provides.
// High is always expected; Default and Medium are optional.
type Thumbnails struct {
	Default *Thumbnail `json:"default,omitempty" yaml:"default,omitempty" plist:"default,omitempty"`
	Medium  *Thumbnail `json:"medium,omitempty" yaml:"medium,omitempty" plist:"medium,omitempty"`
	High    Thumbnail  `json:"high" yaml:"high" plist:"high"`
}

// Snippet is the display metadata of a video.
type Snippet struct {
	Title        string     `json:"title" yaml:"title" plist:"title"`
	ChannelTitle string     `json:"channelTitle" yaml:"channelTitle" plist:"channelTitle"`
	Duration     string     `json:"duration" yaml:"duration" plist:"duration"` // ISO 8601, e.g. PT4M13S
	UploadDate   string     `json:"uploadDate" yaml:"uploadDate" plist:"uploadDate"`
	Thumbnails   Thumbnails `json:"thumbnails" yaml:"thumbnails" plist:"thumbnails"`
}

// Video represents a single video from any source.
//
// Identity is ID.VideoID; everything in Snippet is display metadata.
type Video struct {
	ID      VideoID `json:"id" yaml:"id" plist:"id"`
	Snippet Snippet `json:"snippet" yaml:"snippet" plist:"snippet"`
}

// Key returns the identity of the video.
func (v Video) Key() string {
	return v.ID.VideoID
}

// Subgroup is a node in the navigation tree.
type Subgroup struct {
	// Name is the merge key among siblings.
	Name string `json:"name" yaml:"name" plist:"name"`

	// ViewName is the display label. Defaults to Name.
	ViewName string `json:"viewName" yaml:"viewName" plist:"viewName"`

	// ChannelID optionally ties the node to a platform channel.
	ChannelID string `json:"channelId" yaml:"channelId" plist:"channelId"`

	// Videos directly attached to this node, unique by VideoID.
	Videos []Video `json:"videos" yaml:"videos" plist:"videos"`

	// Subgroups nested under this node, unique by Name.
	Subgroups []Subgroup `json:"subgroups" yaml:"subgroups" plist:"subgroups"`
}

// Label returns ViewName, falling back to Name.
func (s Subgroup) Label() string {
	if s.ViewName != "" {
		return s.ViewName
	}
	return s.Name
}

// Group is a top-level navigation root.
type Group struct {
	Name string `json:"name" yaml:"name" plist:"name"`

	// ViewName carries a display override from the manifest.
	// Defaults to Name.
	ViewName string `json:"viewName,omitempty" yaml:"viewName,omitempty" plist:"viewName,omitempty"`

	Subgroups []Subgroup `json:"subgroups" yaml:"subgroups" plist:"subgroups"`
}

// Label returns ViewName, falling back to Name.
func (g Group) Label() string {
	if g.ViewName != "" {
		return g.ViewName
	}
	return g.Name
}

// Catalog is a loaded content tree.
//
// A Catalog is treated as an immutable snapshot once built; callers that
// need a modified tree derive a new one with the merge functions.
type Catalog struct {
	// Groups are the navigation roots in manifest order.
	Groups []Group

	// Location is the content location the catalog was loaded from.
	Location string

	// LoadedAt is when the load pass completed.
	LoadedAt time.Time
}

// NewCatalog creates a catalog snapshot from finalized groups.
func NewCatalog(groups []Group, location string) *Catalog {
	return &Catalog{
		Groups:   Finalize(groups),
		Location: location,
		LoadedAt: time.Now(),
	}
}

// Count returns the total number of videos in the catalog.
// A video listed in two different nodes is counted twice.
func (c *Catalog) Count() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, g := range c.Groups {
		total += GroupVideoCount(g)
	}
	return total
}
