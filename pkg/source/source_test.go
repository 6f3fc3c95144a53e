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

package source

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"doctype", "<!DOCTYPE html><html></html>", true},
		{"lower doctype", "\n  <!doctype html>", true},
		{"html tag", "<html lang=\"en\">", true},
		{"bom", "\ufeff<!DOCTYPE html>", true},
		{"json array", "[{\"path\": \"a\"}]", false},
		{"json object", "{\"name\": \"x\"}", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHTML([]byte(tt.in)); got != tt.want {
				t.Fatalf("IsHTML(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHTMLTitle(t *testing.T) {
	page := []byte(`<!DOCTYPE html><html><head>
<title>
  Never Gonna   Give You Up - YouTube
</title>
<meta property="og:title" content="Never Gonna Give You Up">
</head><body></body></html>`)

	if got := HTMLTitle(page); got != "Never Gonna Give You Up - YouTube" {
		t.Fatalf("HTMLTitle = %q", got)
	}
	if got := MetaContent(page, "og:title"); got != "Never Gonna Give You Up" {
		t.Fatalf("MetaContent = %q", got)
	}
	if got := MetaContent(page, "og:image"); got != "" {
		t.Fatalf("expected empty meta, got %q", got)
	}
}

func TestStatusError_IsNotFound(t *testing.T) {
	err := fmt.Errorf("loading: %w", &StatusError{URL: "http://x/a.json", StatusCode: 404})
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected 404 to match ErrNotFound")
	}

	err = &StatusError{URL: "http://x/a.json", StatusCode: 500}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("500 should not match ErrNotFound")
	}

	var se *StatusError
	if !errors.As(fmt.Errorf("wrap: %w", err), &se) || se.StatusCode != 500 {
		t.Fatal("expected errors.As to find *StatusError")
	}
}
