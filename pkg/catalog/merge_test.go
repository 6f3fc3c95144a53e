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
	"encoding/json"
	"reflect"
	"testing"
)

func vid(id string) Video {
	return Video{ID: VideoID{VideoID: id}, Snippet: Snippet{Title: "title " + id}}
}

func ids(videos []Video) []string {
	out := make([]string, 0, len(videos))
	for _, v := range videos {
		out = append(out, v.Key())
	}
	return out
}

func TestAppendVideos_Dedup(t *testing.T) {
	got := AppendVideos([]Video{vid("a")}, vid("a"), vid("b"))
	if want := []string{"a", "b"}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
}

func TestAppendVideos_DropsEmptyID(t *testing.T) {
	got := AppendVideos(nil, vid(""), vid("x"))
	if want := []string{"x"}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
}

func TestMergeSubgroup_UnionAndMetadata(t *testing.T) {
	a := Subgroup{Name: "hits", Videos: []Video{vid("a")}}
	b := Subgroup{Name: "hits", ViewName: "Top Hits", ChannelID: "UC1", Videos: []Video{vid("a"), vid("b")}}

	got := MergeSubgroup(a, b)
	if want := []string{"a", "b"}; !reflect.DeepEqual(ids(got.Videos), want) {
		t.Fatalf("videos = %v, want %v", ids(got.Videos), want)
	}
	if got.ViewName != "Top Hits" {
		t.Fatalf("viewName = %q, want first non-empty", got.ViewName)
	}
	if got.ChannelID != "UC1" {
		t.Fatalf("channelId = %q", got.ChannelID)
	}

	// first writer wins once both are set
	c := Subgroup{Name: "hits", ViewName: "Other"}
	if again := MergeSubgroup(got, c); again.ViewName != "Top Hits" {
		t.Fatalf("viewName overwritten: %q", again.ViewName)
	}
}

func TestMergeSubgroups_Recursive(t *testing.T) {
	left := []Subgroup{{
		Name: "rock",
		Subgroups: []Subgroup{
			{Name: "80s", Videos: []Video{vid("a")}},
		},
	}}
	right := []Subgroup{{
		Name: "rock",
		Subgroups: []Subgroup{
			{Name: "80s", Videos: []Video{vid("b"), vid("a")}},
			{Name: "90s", Videos: []Video{vid("c")}},
		},
	}}

	got := MergeSubgroups(left, right)
	if len(got) != 1 {
		t.Fatalf("expected 1 subgroup, got %d", len(got))
	}
	children := got[0].Subgroups
	if len(children) != 2 || children[0].Name != "80s" || children[1].Name != "90s" {
		t.Fatalf("unexpected children: %+v", children)
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(ids(children[0].Videos), want) {
		t.Fatalf("80s videos = %v, want %v", ids(children[0].Videos), want)
	}
}

func TestMergeSubgroups_DoesNotMutateInputs(t *testing.T) {
	left := []Subgroup{{Name: "x", Videos: []Video{vid("a")}}}
	right := []Subgroup{{Name: "x", Videos: []Video{vid("b")}}}

	before, _ := json.Marshal(left)
	_ = MergeSubgroups(left, right)
	merged := MergeSubgroups(left, right)
	merged[0].Videos[0].Snippet.Title = "changed"

	after, _ := json.Marshal(left)
	if string(before) != string(after) {
		t.Fatalf("input mutated:\nbefore %s\nafter  %s", before, after)
	}
}

func TestMergeGroups_CollapsesByName(t *testing.T) {
	groups := []Group{
		{Name: "music", Subgroups: []Subgroup{{Name: "hits", Videos: []Video{vid("a")}}}},
		{Name: "talks"},
		{Name: "music", Subgroups: []Subgroup{{Name: "hits", Videos: []Video{vid("b")}}}},
	}

	got := MergeGroups(groups)
	if len(got) != 2 || got[0].Name != "music" || got[1].Name != "talks" {
		t.Fatalf("unexpected groups: %+v", got)
	}
	if len(got[0].Subgroups) != 1 {
		t.Fatalf("expected one hits subgroup, got %d", len(got[0].Subgroups))
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(ids(got[0].Subgroups[0].Videos), want) {
		t.Fatalf("hits videos = %v, want %v", ids(got[0].Subgroups[0].Videos), want)
	}
}

func TestFinalize_EmptyLeafSerializesAsEmptyArrays(t *testing.T) {
	groups := Finalize([]Group{{Name: "docs", Subgroups: []Subgroup{{Name: "empty"}}}})

	leaf := groups[0].Subgroups[0]
	if leaf.ViewName != "empty" {
		t.Fatalf("viewName default = %q", leaf.ViewName)
	}

	data, err := json.Marshal(leaf)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if string(decoded["videos"]) != "[]" || string(decoded["subgroups"]) != "[]" {
		t.Fatalf("expected empty arrays, got %s", data)
	}
}
