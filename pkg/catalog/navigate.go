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

package catalog

import (
	"strings"
)

// Summary describes one entry of a navigation listing.
type Summary struct {
	Name        string `json:"name" yaml:"name"`
	ViewName    string `json:"viewName" yaml:"viewName"`
	Path        string `json:"path" yaml:"path"`
	IsGroup     bool   `json:"isGroup,omitempty" yaml:"isGroup,omitempty"`
	Videos      int    `json:"videos" yaml:"videos"`
	Subgroups   int    `json:"subgroups" yaml:"subgroups"`
	TotalVideos int    `json:"totalVideos" yaml:"totalVideos"`
}

// Crumb is one step of a breadcrumb trail.
type Crumb struct {
	Name  string `json:"name" yaml:"name"`
	Label string `json:"label" yaml:"label"`
	Path  string `json:"path" yaml:"path"`
}

// Node is the result of resolving a navigation path.
type Node struct {
	Path        string     `json:"path" yaml:"path"`
	IsGroup     bool       `json:"isGroup,omitempty" yaml:"isGroup,omitempty"`
	Name        string     `json:"name" yaml:"name"`
	ViewName    string     `json:"viewName" yaml:"viewName"`
	ChannelID   string     `json:"channelId,omitempty" yaml:"channelId,omitempty"`
	Breadcrumbs []Crumb    `json:"breadcrumbs" yaml:"breadcrumbs"`
	Videos      []Video    `json:"videos" yaml:"videos"`
	Subgroups   []Summary  `json:"subgroups" yaml:"subgroups"`
	Children    []Subgroup `json:"-" yaml:"-"`
}

// SplitPath splits a slash-separated navigation path into segments,
// dropping empty ones.
func SplitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// Overview lists the navigation roots with their total video counts.
func Overview(groups []Group) []Summary {
	out := make([]Summary, 0, len(groups))
	for _, g := range groups {
		out = append(out, Summary{
			Name:        g.Name,
			ViewName:    g.Label(),
			Path:        g.Name,
			IsGroup:     true,
			Subgroups:   len(g.Subgroups),
			TotalVideos: GroupVideoCount(g),
		})
	}
	return out
}

// Find resolves a navigation path such as "music/hits/2024".
// The first segment names a group, the rest walk subgroups by name.
func Find(groups []Group, path string) (Node, bool) {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return Node{}, false
	}

	var group *Group
	for i := range groups {
		if groups[i].Name == segments[0] {
			group = &groups[i]
			break
		}
	}
	if group == nil {
		return Node{}, false
	}

	crumbs := []Crumb{{Name: group.Name, Label: group.Label(), Path: group.Name}}
	if len(segments) == 1 {
		return Node{
			Path:        group.Name,
			IsGroup:     true,
			Name:        group.Name,
			ViewName:    group.Label(),
			Breadcrumbs: crumbs,
			Videos:      []Video{},
			Subgroups:   summarize(group.Name, group.Subgroups),
			Children:    group.Subgroups,
		}, true
	}

	children := group.Subgroups
	prefix := group.Name
	var current Subgroup
	for _, seg := range segments[1:] {
		found := false
		for _, sg := range children {
			if sg.Name == seg {
				current = sg
				found = true
				break
			}
		}
		if !found {
			return Node{}, false
		}
		prefix = prefix + "/" + seg
		crumbs = append(crumbs, Crumb{Name: current.Name, Label: current.Label(), Path: prefix})
		children = current.Subgroups
	}

	videos := current.Videos
	if videos == nil {
		videos = []Video{}
	}
	return Node{
		Path:        prefix,
		Name:        current.Name,
		ViewName:    current.Label(),
		ChannelID:   current.ChannelID,
		Breadcrumbs: crumbs,
		Videos:      videos,
		Subgroups:   summarize(prefix, current.Subgroups),
		Children:    current.Subgroups,
	}, true
}

// SubgroupVideoCount counts the videos in sg and all of its descendants.
func SubgroupVideoCount(sg Subgroup) int {
	total := len(sg.Videos)
	for _, child := range sg.Subgroups {
		total += SubgroupVideoCount(child)
	}
	return total
}

// GroupVideoCount counts the videos anywhere below g.
func GroupVideoCount(g Group) int {
	total := 0
	for _, sg := range g.Subgroups {
		total += SubgroupVideoCount(sg)
	}
	return total
}

func summarize(prefix string, subgroups []Subgroup) []Summary {
	out := make([]Summary, 0, len(subgroups))
	for _, sg := range subgroups {
		out = append(out, Summary{
			Name:        sg.Name,
			ViewName:    sg.Label(),
			Path:        prefix + "/" + sg.Name,
			Videos:      len(sg.Videos),
			Subgroups:   len(sg.Subgroups),
			TotalVideos: SubgroupVideoCount(sg),
		})
	}
	return out
}
