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

// Package input provides the Adapter interface for link importers.
//
// Input adapters read links from external sources such as browser
// bookmark stores or OPML files. Each adapter is registered with the
// global registry and can be discovered at runtime. The import command
// keeps only links that point at a platform video and turns them into a
// playlist.
//
// # Implementing an Input Adapter
//
// To create a new input adapter:
//
//  1. Create a new package under pkg/input/
//  2. Implement the Adapter interface
//  3. Register via init() using adapter.RegisterInput()
//  4. Import in cmd/root.go to include in the build
//
// Example:
//
//	package myservice
//
//	func init() {
//	    adapter.RegisterInput(New())
//	}
//
//	type Adapter struct {
//	    config input.Config
//	}
//
//	func New() *Adapter { return &Adapter{} }
//
//	func (a *Adapter) Name() string        { return "myservice" }
//	func (a *Adapter) DisplayName() string { return "My Service" }
//	func (a *Adapter) Available() bool     { return true }
//	func (a *Adapter) Path() string        { return "https://myservice.com" }
//
//	func (a *Adapter) Configure(cfg input.Config) error {
//	    a.config = cfg
//	    return nil
//	}
//
//	func (a *Adapter) ListProfiles() ([]input.ProfileInfo, error) {
//	    return []input.ProfileInfo{{Name: "default", IsDefault: true}}, nil
//	}
//
//	func (a *Adapter) Read(ctx context.Context) ([]input.Link, error) {
//	    return nil, nil
//	}
package input

import (
	"context"
	"time"
)

// Link is a single saved link from any source.
type Link struct {
	// Title is the display name given by the source.
	Title string

	// URL is the link target (required).
	URL string

	// VideoID is the platform video the URL points at. Adapters leave it
	// empty; Filter fills it in.
	VideoID string

	// FolderPath is the folder structure the link was saved under.
	// Example: ["Bookmarks Bar", "Music"]
	FolderPath []string

	// DateAdded is when the link was saved. Zero means unknown.
	DateAdded time.Time

	// Source identifies which input adapter produced this link.
	Source string

	// Profile identifies the profile within the source.
	Profile string
}

// Adapter is the interface for link importers.
type Adapter interface {
	// Name returns the unique adapter identifier used in configuration
	// and command-line flags. Examples: "chrome", "firefox", "opml"
	Name() string

	// DisplayName returns a human-friendly name for UI display.
	DisplayName() string

	// Available returns true if this input source can be read.
	// This method should be fast and not perform network I/O.
	Available() bool

	// Path returns the path or description of what is being read.
	// Used for logging and debugging.
	Path() string

	// Configure applies runtime configuration to the adapter.
	// Called before Read() with user-specified options.
	Configure(cfg Config) error

	// ListProfiles returns available profiles for this source.
	// Returns nil if the source doesn't support multiple profiles.
	ListProfiles() ([]ProfileInfo, error)

	// Read fetches all links from this source.
	// Populate Link.Source with Name() for proper attribution.
	Read(ctx context.Context) ([]Link, error)
}

// Config holds adapter-specific configuration passed at runtime.
type Config struct {
	// Enabled indicates whether this adapter should be used.
	Enabled bool

	// Profile specifies which profile to read.
	// Empty string means read all profiles.
	Profile string

	// CustomPath overrides the default location for this source.
	CustomPath string

	// Options holds adapter-specific key-value options.
	Options map[string]interface{}
}

// ProfileInfo describes an available profile within an input source.
type ProfileInfo struct {
	// Name is the profile identifier (e.g., "Default", "Profile 1").
	Name string

	// Path is the filesystem path for this profile.
	Path string

	// IsDefault indicates if this is the default profile.
	IsDefault bool
}
