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

package manifest

import (
	"context"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/cloudygreybeard/vidshelf/pkg/source/dirsrc"
)

func TestParse(t *testing.T) {
	data := []byte(`[
		"music/pop.json",
		"music/rock",
		{"path": "talks", "type": "folder", "name": "Talks & Keynotes"},
		{"path": "talks/keynote.json", "type": "weird"},
		{"path": "docs/readme"},
		{"type": "file"},
		{"path": 42},
		17,
		null,
		""
	]`)

	want := []Entry{
		{Path: "music/pop.json", Type: TypeFile},
		{Path: "music/rock", Type: TypeFolder},
		{Path: "talks", Type: TypeFolder, Name: "Talks & Keynotes"},
		{Path: "talks/keynote.json", Type: TypeFile},
		{Path: "docs/readme", Type: TypeFolder},
	}

	got := Parse(data)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse mismatch\n got %+v\nwant %+v", got, want)
	}
}

func TestParse_NotAnArray(t *testing.T) {
	for _, in := range []string{`{"path": "a"}`, `not json`, ``} {
		if got := Parse([]byte(in)); got != nil {
			t.Errorf("Parse(%q) = %+v, want nil", in, got)
		}
	}
	if got := Parse([]byte(`[]`)); got == nil || len(got) != 0 {
		t.Errorf("Parse([]) = %#v, want empty non-nil", got)
	}
}

func TestNormalize(t *testing.T) {
	in := []Entry{
		{Path: "music/pop.json", Type: TypeFile},
		{Path: "/music/rock", Type: TypeFolder},
		{Path: "/contents/talks", Type: TypeFolder, Name: "Talks"},
	}
	want := []Entry{
		{Path: "/contents/music/pop.json", Type: TypeFile},
		{Path: "/contents/music/rock", Type: TypeFolder},
		{Path: "/contents/talks", Type: TypeFolder, Name: "Talks"},
	}

	got := Normalize(in, "/contents/")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize mismatch\n got %+v\nwant %+v", got, want)
	}
	if in[0].Path != "music/pop.json" {
		t.Fatal("Normalize modified its input")
	}
}

func TestNormalizeRoot(t *testing.T) {
	tests := map[string]string{
		"":           "/contents/",
		"contents":   "/contents/",
		"/data":      "/data/",
		"/contents/": "/contents/",
	}
	for in, want := range tests {
		if got := NormalizeRoot(in); got != want {
			t.Errorf("NormalizeRoot(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRead(t *testing.T) {
	fsys := fstest.MapFS{
		"contents/manifest.json": {Data: []byte(`["a.json", "b"]`)},
		"contents/html.json":     {Data: []byte("<!DOCTYPE html><title>Not Found</title>")},
		"contents/object.json":   {Data: []byte(`{"path": "a"}`)},
	}
	src := dirsrc.NewFS(fsys, "mem")
	ctx := context.Background()

	if got := Read(ctx, src, "/contents/manifest.json", nil); len(got) != 2 {
		t.Fatalf("expected 2 entries, got %+v", got)
	}

	for _, p := range []string{"/contents/missing.json", "/contents/html.json", "/contents/object.json"} {
		got := Read(ctx, src, p, nil)
		if got == nil || len(got) != 0 {
			t.Errorf("Read(%s) = %#v, want empty", p, got)
		}
	}
}
