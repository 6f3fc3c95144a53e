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

// Package adapter provides the registry for content sources, link
// importers and catalog renderers.
package adapter

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/cloudygreybeard/vidshelf/pkg/input"
	"github.com/cloudygreybeard/vidshelf/pkg/output"
	"github.com/cloudygreybeard/vidshelf/pkg/source"
)

var (
	inputsMu  sync.RWMutex
	inputs    = make(map[string]input.Adapter)
	outputsMu sync.RWMutex
	outputs   = make(map[string]output.Adapter)
	sourcesMu sync.RWMutex
	sources   = make(map[string]source.Factory)
)

// RegisterInput registers a link importer.
func RegisterInput(adapter input.Adapter) {
	inputsMu.Lock()
	defer inputsMu.Unlock()
	inputs[adapter.Name()] = adapter
}

// RegisterOutput registers a catalog renderer.
func RegisterOutput(adapter output.Adapter) {
	outputsMu.Lock()
	defer outputsMu.Unlock()
	outputs[adapter.Name()] = adapter
}

// RegisterSource registers a source factory for a URL scheme.
// The scheme "file" also serves plain filesystem paths.
func RegisterSource(scheme string, factory source.Factory) {
	sourcesMu.Lock()
	defer sourcesMu.Unlock()
	sources[strings.ToLower(scheme)] = factory
}

// GetInput returns a link importer by name.
func GetInput(name string) (input.Adapter, bool) {
	inputsMu.RLock()
	defer inputsMu.RUnlock()
	a, ok := inputs[name]
	return a, ok
}

// GetOutput returns a renderer by name.
func GetOutput(name string) (output.Adapter, bool) {
	outputsMu.RLock()
	defer outputsMu.RUnlock()
	a, ok := outputs[name]
	return a, ok
}

// OpenSource opens location with the factory registered for its scheme.
// Locations without a scheme, or with a single-letter drive prefix, are
// treated as local paths.
func OpenSource(location string, opts source.Options) (source.Source, error) {
	scheme := "file"
	if u, err := url.Parse(location); err == nil && len(u.Scheme) > 1 {
		scheme = strings.ToLower(u.Scheme)
	}

	sourcesMu.RLock()
	factory, ok := sources[scheme]
	sourcesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no source registered for scheme %q (available: %v)", scheme, ListSources())
	}
	return factory(location, opts)
}

// ListInputs returns all registered importer names.
func ListInputs() []string {
	inputsMu.RLock()
	defer inputsMu.RUnlock()
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListOutputs returns all registered renderer names.
func ListOutputs() []string {
	outputsMu.RLock()
	defer outputsMu.RUnlock()
	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListSources returns all registered source schemes.
func ListSources() []string {
	sourcesMu.RLock()
	defer sourcesMu.RUnlock()
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllInputs returns all registered importers, sorted by name.
func AllInputs() []input.Adapter {
	inputsMu.RLock()
	defer inputsMu.RUnlock()
	adapters := make([]input.Adapter, 0, len(inputs))
	for _, a := range inputs {
		adapters = append(adapters, a)
	}
	sort.Slice(adapters, func(i, j int) bool { return adapters[i].Name() < adapters[j].Name() })
	return adapters
}

// AllOutputs returns all registered renderers, sorted by name.
func AllOutputs() []output.Adapter {
	outputsMu.RLock()
	defer outputsMu.RUnlock()
	adapters := make([]output.Adapter, 0, len(outputs))
	for _, a := range outputs {
		adapters = append(adapters, a)
	}
	sort.Slice(adapters, func(i, j int) bool { return adapters[i].Name() < adapters[j].Name() })
	return adapters
}

// AvailableInputs returns importers that can currently be read.
func AvailableInputs() []input.Adapter {
	var available []input.Adapter
	for _, a := range AllInputs() {
		if a.Available() {
			available = append(available, a)
		}
	}
	return available
}
