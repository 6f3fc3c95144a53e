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

// Package json provides an output adapter for JSON format.
package json

import (
	"encoding/json"

	"github.com/cloudygreybeard/vidshelf/pkg/adapter"
	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/output"
)

func init() {
	adapter.RegisterOutput(New())
}

// Adapter implements output.Adapter for JSON format.
type Adapter struct {
	config output.Config
	indent string
}

// New creates a new JSON adapter.
func New() *Adapter {
	return &Adapter{indent: "  "}
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string {
	return "json"
}

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string {
	return "JSON"
}

// Extensions returns supported file extensions.
func (a *Adapter) Extensions() []string {
	return []string{".json"}
}

// Configure applies configuration to the adapter. The "indent" option
// sets the indentation; an empty string produces compact output.
func (a *Adapter) Configure(cfg output.Config) error {
	a.config = cfg
	if indent, ok := cfg.Options["indent"].(string); ok {
		a.indent = indent
	}
	return nil
}

// Render converts the catalog to JSON. The groups use the same shape as
// content files, so the output can be served back as a content file.
func (a *Adapter) Render(c *catalog.Catalog, opts output.RenderOptions) ([]byte, error) {
	doc := Document{Groups: output.Prepare(c, opts)}
	if opts.IncludeMetadata {
		doc.Metadata = output.NewMetadata(c)
	}
	if a.indent == "" {
		return json.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", a.indent)
}

// Document is the top-level JSON structure.
type Document struct {
	Metadata *output.Metadata `json:"metadata,omitempty"`
	Groups   []catalog.Group  `json:"groups"`
}
