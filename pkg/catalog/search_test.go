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

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Çocuk", "cocuk"},
		{"  ÇOCUK  ", "cocuk"},
		{"Işık", "isik"},
		{"İstanbul", "istanbul"},
		{"Ağaç Şarkısı", "agac sarkisi"},
		{"Über Café", "uber cafe"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := NormalizeText(tt.in); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatch_DiacriticAndCaseInsensitive(t *testing.T) {
	if !Match("cocuk", "Çocuk Şarkıları") {
		t.Fatal("expected cocuk to match Çocuk")
	}
	if !Match("ÇOCUK", "cocuk sarkilari") {
		t.Fatal("expected match in the other direction")
	}
	if Match("kedi", "Çocuk Şarkıları") {
		t.Fatal("unexpected match")
	}
}

func TestSearch(t *testing.T) {
	groups := []Group{{
		Name: "kids",
		Subgroups: []Subgroup{
			{
				Name: "songs",
				Videos: []Video{
					{ID: VideoID{VideoID: "1"}, Snippet: Snippet{Title: "Çocuk Şarkısı"}},
					{ID: VideoID{VideoID: "2"}, Snippet: Snippet{Title: "Other", ChannelTitle: "Çocuk TV"}},
					{ID: VideoID{VideoID: "3"}, Snippet: Snippet{Title: "Unrelated"}},
				},
				Subgroups: []Subgroup{{
					Name:   "more",
					Videos: []Video{{ID: VideoID{VideoID: "1"}, Snippet: Snippet{Title: "Çocuk Şarkısı"}}},
				}},
			},
		},
	}}

	got := Search(groups, "cocuk")
	if len(got) != 2 || got[0].Key() != "1" || got[1].Key() != "2" {
		t.Fatalf("unexpected results: %+v", got)
	}

	if got := Search(groups, "   "); len(got) != 0 {
		t.Fatalf("blank query should match nothing, got %d", len(got))
	}
}

func TestFind(t *testing.T) {
	groups := Finalize([]Group{{
		Name: "music",
		Subgroups: []Subgroup{{
			Name:      "rock",
			ViewName:  "Rock",
			Subgroups: []Subgroup{{Name: "80s", Videos: []Video{vid("a"), vid("b")}}},
		}},
	}})

	node, ok := Find(groups, "music/rock/80s")
	if !ok {
		t.Fatal("expected node")
	}
	if node.Path != "music/rock/80s" || len(node.Videos) != 2 {
		t.Fatalf("unexpected node: %+v", node)
	}
	if len(node.Breadcrumbs) != 3 || node.Breadcrumbs[1].Label != "Rock" {
		t.Fatalf("unexpected breadcrumbs: %+v", node.Breadcrumbs)
	}

	root, ok := Find(groups, "/music/")
	if !ok || !root.IsGroup || root.Subgroups[0].TotalVideos != 2 {
		t.Fatalf("unexpected group node: %+v", root)
	}

	if _, ok := Find(groups, "music/jazz"); ok {
		t.Fatal("expected miss")
	}

	overview := Overview(groups)
	if len(overview) != 1 || overview[0].TotalVideos != 2 {
		t.Fatalf("unexpected overview: %+v", overview)
	}
}
