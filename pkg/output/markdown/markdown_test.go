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

package markdown

import (
	"strings"
	"testing"

	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/output"
)

func testCatalog() *catalog.Catalog {
	return catalog.NewCatalog([]catalog.Group{{
		Name:     "music",
		ViewName: "Music",
		Subgroups: []catalog.Subgroup{{
			Name:     "hits",
			ViewName: "Hits",
			Videos: []catalog.Video{{
				ID:      catalog.VideoID{VideoID: "a"},
				Snippet: catalog.Snippet{Title: "Song [live]", ChannelTitle: "Band | Co", Duration: "PT3M33S"},
			}},
			Subgroups: []catalog.Subgroup{{Name: "b-sides"}},
		}},
	}}, "")
}

func render(t *testing.T, style string) string {
	t.Helper()
	opts := output.DefaultRenderOptions()
	opts.IncludeMetadata = false
	opts.Style = style
	data, err := New().Render(testCatalog(), opts)
	if err != nil {
		t.Fatalf("Render(%s): %v", style, err)
	}
	return string(data)
}

func TestRender_Textual(t *testing.T) {
	out := render(t, "")
	for _, want := range []string{
		"# Video Catalog\n",
		"## Music\n",
		"- **Hits**\n",
		"  - [Song \\[live\\]](https://www.youtube.com/watch?v=a) *(Band | Co, 3:33)*\n",
		"  - **b-sides**\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Generated") {
		t.Error("metadata rendered although disabled")
	}
}

func TestRender_Table(t *testing.T) {
	out := render(t, "table")
	for _, want := range []string{
		"| Title | Path | Channel | Duration |\n",
		"| [Song [live]](https://www.youtube.com/watch?v=a) | Hits | Band \\| Co | 3:33 |\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRender_YAML(t *testing.T) {
	out := render(t, "yaml")
	if !strings.Contains(out, "```yaml\ngroups:\n") || !strings.HasSuffix(out, "```\n") {
		t.Fatalf("unexpected yaml block:\n%s", out)
	}
}

func TestConfigureStyle(t *testing.T) {
	a := New()
	_ = a.Configure(output.Config{Options: map[string]interface{}{"style": "table"}})
	data, _ := a.Render(testCatalog(), output.RenderOptions{})
	if !strings.Contains(string(data), "| Title | Path |") {
		t.Fatalf("configured style ignored:\n%s", data)
	}
}
