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

package output

import (
	"reflect"
	"testing"

	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
)

func video(id, title string) catalog.Video {
	return catalog.Video{ID: catalog.VideoID{VideoID: id}, Snippet: catalog.Snippet{Title: title}}
}

func TestPrepare_SortsWithoutMutating(t *testing.T) {
	c := &catalog.Catalog{Groups: []catalog.Group{
		{Name: "zoo"},
		{Name: "music", Subgroups: []catalog.Subgroup{
			{Name: "rock", Videos: []catalog.Video{video("b", "Zebra"), video("a", "Ürün")}},
			{Name: "jazz"},
		}},
	}}

	got := Prepare(c, RenderOptions{SortAlpha: true})
	if got[0].Name != "music" || got[0].Subgroups[0].Name != "jazz" {
		t.Fatalf("unexpected order %+v", got)
	}
	if rock := got[0].Subgroups[1]; rock.Videos[0].Key() != "a" {
		t.Fatalf("videos should sort diacritic-insensitively: %+v", rock.Videos)
	}

	if c.Groups[0].Name != "zoo" || c.Groups[1].Subgroups[0].Videos[0].Key() != "b" {
		t.Fatal("Prepare modified the catalog")
	}
	if got := Prepare(nil, RenderOptions{}); got == nil || len(got) != 0 {
		t.Fatalf("nil catalog = %#v", got)
	}
}

func TestFlatten(t *testing.T) {
	groups := catalog.Finalize([]catalog.Group{{
		Name: "music",
		Subgroups: []catalog.Subgroup{{
			Name:      "rock",
			ViewName:  "Rock",
			Videos:    []catalog.Video{video("a", "A")},
			Subgroups: []catalog.Subgroup{{Name: "80s", Videos: []catalog.Video{video("b", "")}}},
		}},
	}})

	entries := Flatten(groups)
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	if !reflect.DeepEqual(entries[1].Path, []string{"music", "Rock", "80s"}) {
		t.Fatalf("path = %q", entries[1].Path)
	}
	if VideoTitle(entries[1].Video) != "b" {
		t.Fatal("untitled video should fall back to its id")
	}
}

func TestDetails(t *testing.T) {
	v := video("a", "A")
	v.Snippet.ChannelTitle = "Channel"
	v.Snippet.Duration = "PT1H2M3S"
	if got := Details(v); !reflect.DeepEqual(got, []string{"Channel", "1:02:03"}) {
		t.Fatalf("Details = %q", got)
	}
	if got := Details(video("b", "B")); len(got) != 0 {
		t.Fatalf("Details = %q", got)
	}
}
