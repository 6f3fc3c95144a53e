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

package yaml

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/output"
)

func TestRender(t *testing.T) {
	c := catalog.NewCatalog([]catalog.Group{{
		Name:     "kids",
		ViewName: "Kids",
		Subgroups: []catalog.Subgroup{{
			Name: "songs",
			Videos: []catalog.Video{
				{ID: catalog.VideoID{VideoID: "b"}, Snippet: catalog.Snippet{Title: "Zebra"}},
				{ID: catalog.VideoID{VideoID: "a"}, Snippet: catalog.Snippet{Title: "Ant"}},
			},
		}},
	}}, "https://example.com")

	data, err := New().Render(c, output.RenderOptions{IncludeMetadata: true, SortAlpha: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if doc.Metadata == nil || doc.Metadata.Groups != 1 || doc.Metadata.Total != 2 {
		t.Fatalf("metadata = %+v", doc.Metadata)
	}
	videos := doc.Groups[0].Subgroups[0].Videos
	if doc.Groups[0].ViewName != "Kids" || videos[0].Snippet.Title != "Ant" {
		t.Fatalf("unexpected groups: %+v", doc.Groups)
	}
}

func TestRender_NoMetadata(t *testing.T) {
	data, err := New().Render(&catalog.Catalog{}, output.RenderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Metadata != nil {
		t.Fatal("metadata should be omitted")
	}
}
