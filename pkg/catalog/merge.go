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

// AppendVideos returns a new slice holding dst followed by every video in
// src whose ID is not already present. Videos without an ID are dropped.
// Neither argument is modified.
func AppendVideos(dst []Video, src ...Video) []Video {
	result := make([]Video, 0, len(dst)+len(src))
	seen := make(map[string]bool, len(dst)+len(src))

	for _, list := range [][]Video{dst, src} {
		for _, v := range list {
			key := v.Key()
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			result = append(result, cloneVideo(v))
		}
	}

	return result
}

// Deduplicate removes repeated videos, keeping the first occurrence.
func Deduplicate(videos []Video) []Video {
	return AppendVideos(nil, videos...)
}

// MergeSubgroup merges b into a and returns the result.
//
// Videos are unioned by ID (a's order first), children are merged
// recursively by name, and ViewName/ChannelID keep the first non-empty
// value. The result takes a's Name.
func MergeSubgroup(a, b Subgroup) Subgroup {
	out := Subgroup{
		Name:      a.Name,
		ViewName:  firstNonEmpty(a.ViewName, b.ViewName),
		ChannelID: firstNonEmpty(a.ChannelID, b.ChannelID),
		Videos:    AppendVideos(a.Videos, b.Videos...),
		Subgroups: MergeSubgroups(a.Subgroups, b.Subgroups),
	}
	return out
}

// MergeSubgroups concatenates the lists and collapses same-named entries
// with MergeSubgroup. Order is that of first appearance.
func MergeSubgroups(lists ...[]Subgroup) []Subgroup {
	result := make([]Subgroup, 0)
	index := make(map[string]int)

	for _, list := range lists {
		for _, sg := range list {
			if i, ok := index[sg.Name]; ok {
				result[i] = MergeSubgroup(result[i], sg)
				continue
			}
			index[sg.Name] = len(result)
			result = append(result, copySubgroup(sg))
		}
	}

	return result
}

// MergeGroups concatenates the lists and collapses same-named groups by
// merging their subgroups. Order is that of first appearance.
func MergeGroups(lists ...[]Group) []Group {
	result := make([]Group, 0)
	index := make(map[string]int)

	for _, list := range lists {
		for _, g := range list {
			if i, ok := index[g.Name]; ok {
				existing := result[i]
				result[i] = Group{
					Name:      existing.Name,
					ViewName:  firstNonEmpty(existing.ViewName, g.ViewName),
					Subgroups: MergeSubgroups(existing.Subgroups, g.Subgroups),
				}
				continue
			}
			index[g.Name] = len(result)
			result = append(result, Group{
				Name:      g.Name,
				ViewName:  g.ViewName,
				Subgroups: MergeSubgroups(g.Subgroups),
			})
		}
	}

	return result
}

// Finalize collapses duplicate names at every level, defaults ViewName to
// Name, and replaces nil containers with empty ones so that an empty leaf
// serializes as "videos": [] and "subgroups": [].
func Finalize(groups []Group) []Group {
	merged := MergeGroups(groups)
	for i := range merged {
		if merged[i].ViewName == "" {
			merged[i].ViewName = merged[i].Name
		}
		merged[i].Subgroups = finalizeSubgroups(merged[i].Subgroups)
	}
	return merged
}

func finalizeSubgroups(subgroups []Subgroup) []Subgroup {
	out := make([]Subgroup, len(subgroups))
	for i, sg := range subgroups {
		if sg.ViewName == "" {
			sg.ViewName = sg.Name
		}
		if sg.Videos == nil {
			sg.Videos = []Video{}
		}
		sg.Subgroups = finalizeSubgroups(sg.Subgroups)
		out[i] = sg
	}
	return out
}

// copySubgroup returns a deep copy with videos deduplicated and children
// collapsed, so later merges never write through to the caller's slices.
func copySubgroup(sg Subgroup) Subgroup {
	return Subgroup{
		Name:      sg.Name,
		ViewName:  sg.ViewName,
		ChannelID: sg.ChannelID,
		Videos:    AppendVideos(nil, sg.Videos...),
		Subgroups: MergeSubgroups(sg.Subgroups),
	}
}

func cloneVideo(v Video) Video {
	if v.Snippet.Thumbnails.Default != nil {
		t := *v.Snippet.Thumbnails.Default
		v.Snippet.Thumbnails.Default = &t
	}
	if v.Snippet.Thumbnails.Medium != nil {
		t := *v.Snippet.Thumbnails.Medium
		v.Snippet.Thumbnails.Medium = &t
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
