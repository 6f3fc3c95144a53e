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

// Package firefox provides an input adapter for Firefox.
package firefox

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cloudygreybeard/vidshelf/pkg/adapter"
	"github.com/cloudygreybeard/vidshelf/pkg/input"
)

// firefoxPaths maps platform to Firefox profiles directory.
var firefoxPaths = map[string]string{
	"linux":   ".mozilla/firefox",
	"darwin":  "Library/Application Support/Firefox/Profiles",
	"windows": "Mozilla/Firefox/Profiles",
}

// tagsRootID is the moz_bookmarks folder holding tag folders.
const tagsRootID int64 = 4

func init() {
	adapter.RegisterInput(New())
}

// Adapter implements input.Adapter for Firefox.
type Adapter struct {
	config  input.Config
	path    string
	profile string
}

// New creates a new Firefox adapter.
func New() *Adapter {
	a := &Adapter{}
	a.path, a.profile = a.findDatabase()
	return a
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string {
	return "firefox"
}

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string {
	return "Mozilla Firefox"
}

// Available returns true if the places database exists.
func (a *Adapter) Available() bool {
	if a.path == "" {
		return false
	}
	_, err := os.Stat(a.path)
	return err == nil
}

// Configure applies configuration to the adapter.
func (a *Adapter) Configure(cfg input.Config) error {
	a.config = cfg
	a.path, a.profile = a.findDatabase()
	return nil
}

// Path returns the database path.
func (a *Adapter) Path() string {
	return a.path
}

// ListProfiles returns available Firefox profiles.
func (a *Adapter) ListProfiles() ([]input.ProfileInfo, error) {
	profilesDir := a.profilesDir()
	if profilesDir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(profilesDir)
	if err != nil {
		return nil, nil
	}

	var profiles []input.ProfileInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		placesPath := filepath.Join(profilesDir, entry.Name(), "places.sqlite")
		if _, err := os.Stat(placesPath); err == nil {
			profiles = append(profiles, input.ProfileInfo{
				Name:      entry.Name(),
				Path:      placesPath,
				IsDefault: entry.Name() == a.profile,
			})
		}
	}
	return profiles, nil
}

// Read returns the video links saved in Firefox. The places database is
// locked while the browser runs, so a copy is queried.
func (a *Adapter) Read(ctx context.Context) ([]input.Link, error) {
	if a.path == "" {
		return nil, nil
	}

	tmp, err := copyToTemp(a.path)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp)

	db, err := sql.Open("sqlite3", "file:"+tmp+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening places database: %w", err)
	}
	defer db.Close()

	return a.readFromDB(ctx, db)
}

func copyToTemp(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "vidshelf-places-*.sqlite")
	if err != nil {
		return "", fmt.Errorf("creating temp copy: %w", err)
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("copying %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func (a *Adapter) profilesDir() string {
	relPath, ok := firefoxPaths[runtime.GOOS]
	if !ok {
		return ""
	}

	var base string
	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
	} else {
		base, _ = os.UserHomeDir()
	}
	return filepath.Join(base, relPath)
}

func (a *Adapter) findDatabase() (string, string) {
	if a.config.CustomPath != "" {
		return a.config.CustomPath, filepath.Base(filepath.Dir(a.config.CustomPath))
	}

	profilesDir := a.profilesDir()
	if profilesDir == "" {
		return "", ""
	}
	if _, err := os.Stat(profilesDir); err != nil {
		return "", ""
	}

	if a.config.Profile != "" {
		return filepath.Join(profilesDir, a.config.Profile, "places.sqlite"), a.config.Profile
	}

	entries, err := os.ReadDir(profilesDir)
	if err != nil {
		return "", ""
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		placesPath := filepath.Join(profilesDir, entry.Name(), "places.sqlite")
		if _, err := os.Stat(placesPath); err == nil {
			return placesPath, entry.Name()
		}
	}
	return "", ""
}

type folder struct {
	parent int64
	title  string
}

func (a *Adapter) readFromDB(ctx context.Context, db *sql.DB) ([]input.Link, error) {
	folders := make(map[int64]folder)

	folderRows, err := db.QueryContext(ctx, "SELECT id, parent, title FROM moz_bookmarks WHERE type = 2")
	if err != nil {
		return nil, fmt.Errorf("querying folders: %w", err)
	}
	for folderRows.Next() {
		var id, parent int64
		var title sql.NullString
		if err := folderRows.Scan(&id, &parent, &title); err != nil {
			continue
		}
		folders[id] = folder{parent: parent, title: title.String}
	}
	folderRows.Close()

	// Only platform hosts are selected; Filter does the exact match.
	rows, err := db.QueryContext(ctx, `
		SELECT b.title, p.url, b.parent, b.dateAdded
		FROM moz_bookmarks b
		JOIN moz_places p ON b.fk = p.id
		WHERE b.type = 1
		  AND p.url IS NOT NULL
		  AND (p.url LIKE '%youtube.com/%' OR p.url LIKE '%youtu.be/%' OR p.url LIKE '%youtube-nocookie.com/%')
		ORDER BY b.parent, b.position, b.id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying bookmarks: %w", err)
	}
	defer rows.Close()

	var links []input.Link
	for rows.Next() {
		var title sql.NullString
		var url string
		var parentID int64
		var dateAdded sql.NullInt64

		if err := rows.Scan(&title, &url, &parentID, &dateAdded); err != nil {
			continue
		}
		if isUnderTagsRoot(parentID, folders) {
			continue
		}

		var added time.Time
		if dateAdded.Valid && dateAdded.Int64 > 0 {
			added = time.Unix(0, dateAdded.Int64*1000)
		}

		links = append(links, input.Link{
			Title:      title.String,
			URL:        url,
			FolderPath: folderPath(parentID, folders),
			DateAdded:  added,
			Source:     "firefox",
			Profile:    a.profile,
		})
	}
	return links, rows.Err()
}

func folderPath(parent int64, folders map[int64]folder) []string {
	var path []string
	for i := 0; i < 64; i++ {
		f, ok := folders[parent]
		if !ok {
			break
		}
		if f.title != "" {
			path = append([]string{f.title}, path...)
		}
		parent = f.parent
	}
	return path
}

func isUnderTagsRoot(folderID int64, folders map[int64]folder) bool {
	current := folderID
	for i := 0; i < 10; i++ {
		if current == tagsRootID {
			return true
		}
		f, ok := folders[current]
		if !ok {
			return false
		}
		current = f.parent
	}
	return false
}
