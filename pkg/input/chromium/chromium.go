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

// Package chromium provides an input adapter for Chromium-based browsers.
package chromium

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cloudygreybeard/vidshelf/pkg/adapter"
	"github.com/cloudygreybeard/vidshelf/pkg/input"
)

// chromiumPaths maps browser names to their config directories per platform.
var chromiumPaths = map[string]map[string]string{
	"chrome": {
		"linux":   ".config/google-chrome",
		"darwin":  "Library/Application Support/Google/Chrome",
		"windows": "Google/Chrome/User Data",
	},
	"edge": {
		"linux":   ".config/microsoft-edge",
		"darwin":  "Library/Application Support/Microsoft Edge",
		"windows": "Microsoft/Edge/User Data",
	},
	"chromium": {
		"linux":   ".config/chromium",
		"darwin":  "Library/Application Support/Chromium",
		"windows": "Chromium/User Data",
	},
	"brave": {
		"linux":   ".config/BraveSoftware/Brave-Browser",
		"darwin":  "Library/Application Support/BraveSoftware/Brave-Browser",
		"windows": "BraveSoftware/Brave-Browser/User Data",
	},
}

var displayNames = map[string]string{
	"chrome":   "Google Chrome",
	"edge":     "Microsoft Edge",
	"chromium": "Chromium",
	"brave":    "Brave",
}

// Difference between Chrome epoch (1601-01-01) and Unix epoch (1970-01-01) in seconds
const chromeToUnixEpochDelta = 11644473600

func init() {
	adapter.RegisterInput(New("chrome"))
	adapter.RegisterInput(New("edge"))
	adapter.RegisterInput(New("chromium"))
	adapter.RegisterInput(New("brave"))
}

// Adapter implements input.Adapter for Chromium-based browsers.
type Adapter struct {
	browser  string
	home     string
	config   input.Config
	profiles []input.ProfileInfo
}

// New creates a new Chromium adapter for the specified browser.
func New(browser string) *Adapter {
	a := &Adapter{browser: browser}
	a.profiles = a.discoverProfiles()
	return a
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string {
	return a.browser
}

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string {
	if name, ok := displayNames[a.browser]; ok {
		return name
	}
	return cases.Title(language.Und).String(a.browser)
}

// Available returns true if bookmarks are accessible.
func (a *Adapter) Available() bool {
	if a.config.CustomPath != "" {
		_, err := os.Stat(a.config.CustomPath)
		return err == nil
	}
	return len(a.profiles) > 0
}

// Configure applies configuration to the adapter.
func (a *Adapter) Configure(cfg input.Config) error {
	a.config = cfg
	if home, ok := cfg.Options["home"].(string); ok {
		a.home = home
	}
	if cfg.CustomPath == "" {
		a.profiles = a.discoverProfiles()
	}
	return nil
}

// Path returns the path being read.
func (a *Adapter) Path() string {
	if a.config.CustomPath != "" {
		return a.config.CustomPath
	}
	switch len(a.profiles) {
	case 0:
		return a.basePath() + " (no profiles found)"
	case 1:
		return a.profiles[0].Path
	}

	names := make([]string, 0, len(a.profiles))
	for _, p := range a.profiles {
		names = append(names, p.Name)
	}
	return a.basePath() + " [" + strings.Join(names, ", ") + "]"
}

// ListProfiles returns available profiles.
func (a *Adapter) ListProfiles() ([]input.ProfileInfo, error) {
	return append([]input.ProfileInfo(nil), a.profiles...), nil
}

// Read returns all links saved in the browser. With a profile configured
// only that profile is read; "Default" falls back to the first profile.
func (a *Adapter) Read(ctx context.Context) ([]input.Link, error) {
	if a.config.CustomPath != "" {
		return a.readFromPath(a.config.CustomPath, "custom")
	}

	if a.config.Profile != "" {
		for _, p := range a.profiles {
			if p.Name == a.config.Profile {
				return a.readFromPath(p.Path, p.Name)
			}
		}
		if a.config.Profile == "Default" && len(a.profiles) > 0 {
			return a.readFromPath(a.profiles[0].Path, a.profiles[0].Name)
		}
		return nil, fmt.Errorf("%s: profile %q not found", a.browser, a.config.Profile)
	}

	var links []input.Link
	for _, p := range a.profiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := a.readFromPath(p.Path, p.Name)
		if err != nil {
			continue
		}
		links = append(links, found...)
	}
	return links, nil
}

func (a *Adapter) basePath() string {
	relPath, ok := chromiumPaths[a.browser][runtime.GOOS]
	if !ok {
		return ""
	}

	base := a.home
	if base == "" {
		if runtime.GOOS == "windows" {
			base = os.Getenv("LOCALAPPDATA")
		} else {
			base, _ = os.UserHomeDir()
		}
	}
	return filepath.Join(base, relPath)
}

func (a *Adapter) discoverProfiles() []input.ProfileInfo {
	basePath := a.basePath()
	if basePath == "" {
		return nil
	}

	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil
	}

	var profiles []input.ProfileInfo
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || (name != "Default" && !strings.HasPrefix(name, "Profile ")) {
			continue
		}
		bookmarkPath := filepath.Join(basePath, name, "Bookmarks")
		if _, err := os.Stat(bookmarkPath); err == nil {
			profiles = append(profiles, input.ProfileInfo{Name: name, Path: bookmarkPath})
		}
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].Name == "Default" && profiles[j].Name != "Default"
	})
	if len(profiles) > 0 {
		profiles[0].IsDefault = true
	}
	return profiles
}

type chromiumNode struct {
	Type      string         `json:"type"`
	Name      string         `json:"name"`
	URL       string         `json:"url"`
	DateAdded string         `json:"date_added"`
	Children  []chromiumNode `json:"children"`
}

// rootOrder lists the bookmark roots in the order the browser shows them.
var rootOrder = []string{"bookmark_bar", "other", "synced"}

func (a *Adapter) readFromPath(path, profile string) ([]input.Link, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var file struct {
		Roots map[string]json.RawMessage `json:"roots"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var links []input.Link
	for _, key := range rootOrder {
		raw, ok := file.Roots[key]
		if !ok {
			continue
		}
		var node chromiumNode
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if node.Type == "folder" {
			a.parseFolder(node, nil, profile, &links)
		}
	}
	return links, nil
}

func (a *Adapter) parseFolder(node chromiumNode, path []string, profile string, links *[]input.Link) {
	current := path
	if node.Name != "" {
		current = append(append([]string{}, path...), node.Name)
	}

	for _, child := range node.Children {
		switch child.Type {
		case "url":
			*links = append(*links, input.Link{
				Title:      child.Name,
				URL:        child.URL,
				FolderPath: current,
				DateAdded:  parseChromiumDate(child.DateAdded),
				Source:     a.browser,
				Profile:    profile,
			})
		case "folder":
			a.parseFolder(child, current, profile, links)
		}
	}
}

func parseChromiumDate(s string) time.Time {
	micros, err := strconv.ParseInt(s, 10, 64)
	if err != nil || micros == 0 {
		return time.Time{}
	}
	return time.Unix(micros/1000000-chromeToUnixEpochDelta, (micros%1000000)*1000)
}
