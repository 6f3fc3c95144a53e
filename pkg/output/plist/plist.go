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

// Package plist provides an output adapter for Apple property lists.
package plist

import (
	"fmt"

	"howett.net/plist"

	"github.com/cloudygreybeard/vidshelf/pkg/adapter"
	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/output"
)

func init() {
	adapter.RegisterOutput(New())
}

// Adapter implements output.Adapter for property lists.
type Adapter struct {
	format int
}

// New creates an adapter producing XML property lists.
func New() *Adapter {
	return &Adapter{format: plist.XMLFormat}
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string { return "plist" }

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string { return "Property List" }

// Extensions returns supported file extensions.
func (a *Adapter) Extensions() []string { return []string{".plist"} }

// Configure applies configuration. The "format" option selects "xml"
// (default), "binary" or "openstep".
func (a *Adapter) Configure(cfg output.Config) error {
	name, _ := cfg.Options["format"].(string)
	switch name {
	case "", "xml":
		a.format = plist.XMLFormat
	case "binary":
		a.format = plist.BinaryFormat
	case "openstep":
		a.format = plist.OpenStepFormat
	default:
		return fmt.Errorf("unknown plist format %q", name)
	}
	return nil
}

// Render converts the catalog to a property list.
func (a *Adapter) Render(c *catalog.Catalog, opts output.RenderOptions) ([]byte, error) {
	doc := Document{Groups: output.Prepare(c, opts)}
	if opts.IncludeMetadata {
		doc.Metadata = output.NewMetadata(c)
	}
	if a.format == plist.XMLFormat {
		return plist.MarshalIndent(doc, a.format, "\t")
	}
	return plist.Marshal(doc, a.format)
}

// Document is the top-level property list structure.
type Document struct {
	Metadata *output.Metadata `plist:"metadata,omitempty"`
	Groups   []catalog.Group  `plist:"groups"`
}
