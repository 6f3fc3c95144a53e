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

// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration.
type Config struct {
	Content ContentConfig `yaml:"content" toml:"content"`
	Storage StorageConfig `yaml:"storage" toml:"storage"`
	YouTube YouTubeConfig `yaml:"youtube" toml:"youtube"`
	Server  ServerConfig  `yaml:"server" toml:"server"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Render  RenderConfig  `yaml:"render" toml:"render"`
	Inputs  InputsConfig  `yaml:"inputs" toml:"inputs"`
	Import  ImportConfig  `yaml:"import" toml:"import"`
}

// ContentConfig locates the manifest and content files.
type ContentConfig struct {
	// Location is a directory or an http(s) base URL.
	Location     string        `yaml:"location" toml:"location"`
	Root         string        `yaml:"root" toml:"root"`
	Manifest     string        `yaml:"manifest" toml:"manifest"`
	Concurrency  int           `yaml:"concurrency" toml:"concurrency"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" toml:"fetch_timeout"`
}

// StorageConfig selects the playlist store.
type StorageConfig struct {
	Backend string `yaml:"backend" toml:"backend"` // memory, file or sqlite
	Path    string `yaml:"path" toml:"path"`
	Key     string `yaml:"key" toml:"key"`
}

// YouTubeConfig configures the Data API client.
type YouTubeConfig struct {
	APIKey     string `yaml:"api_key" toml:"api_key"`
	APIKeyEnv  string `yaml:"api_key_env" toml:"api_key_env"`
	BaseURL    string `yaml:"base_url" toml:"base_url"`
	MaxResults int    `yaml:"max_results" toml:"max_results"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`

	// PublicURL is the application URL used in share links.
	PublicURL string `yaml:"public_url" toml:"public_url"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format" toml:"format"` // text or json
}

// RenderConfig configures catalog rendering.
type RenderConfig struct {
	IncludeMetadata bool   `yaml:"include_metadata" toml:"include_metadata"`
	Sort            bool   `yaml:"sort" toml:"sort"`
	Style           string `yaml:"style" toml:"style"` // textual or table
}

// InputsConfig configures link importers.
type InputsConfig struct {
	Chrome   InputConfig `yaml:"chrome" toml:"chrome"`
	Edge     InputConfig `yaml:"edge" toml:"edge"`
	Firefox  InputConfig `yaml:"firefox" toml:"firefox"`
	Safari   InputConfig `yaml:"safari" toml:"safari"`
	Chromium InputConfig `yaml:"chromium" toml:"chromium"`
	Brave    InputConfig `yaml:"brave" toml:"brave"`
}

// InputConfig configures a single importer.
type InputConfig struct {
	Enabled    bool   `yaml:"enabled" toml:"enabled"`
	Profile    string `yaml:"profile" toml:"profile"`
	CustomPath string `yaml:"custom_path" toml:"custom_path"`
}

// ImportConfig filters imported links.
type ImportConfig struct {
	IncludeFolders []string `yaml:"include_folders" toml:"include_folders"`
	ExcludeFolders []string `yaml:"exclude_folders" toml:"exclude_folders"`
}

// Default returns a configuration with sensible defaults.
func Default() Config {
	return Config{
		Content: ContentConfig{
			Location:     ".",
			Root:         "/contents/",
			Manifest:     "manifest.json",
			Concurrency:  4,
			FetchTimeout: 15 * time.Second,
		},
		Storage: StorageConfig{
			Backend: "file",
			Path:    filepath.Join("~", ".vidshelf", "data"),
			Key:     "video-playlists",
		},
		YouTube: YouTubeConfig{
			APIKeyEnv:  "YOUTUBE_API_KEY",
			MaxResults: 20,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Render: RenderConfig{
			IncludeMetadata: true,
			Style:           "textual",
		},
		Inputs: InputsConfig{
			Chrome:  InputConfig{Enabled: true},
			Edge:    InputConfig{Enabled: true},
			Firefox: InputConfig{Enabled: true},
			Safari:  InputConfig{Enabled: true},
		},
		Import: ImportConfig{
			ExcludeFolders: []string{"Trash"},
		},
	}
}

// Load reads configuration from a file, merging with defaults. Files
// ending in ".toml" are read as TOML, anything else as YAML. A missing
// file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields and ranges.
func (c *Config) Validate() error {
	if c.Content.Concurrency < 0 {
		return fmt.Errorf("content.concurrency must not be negative")
	}
	switch c.Storage.Backend {
	case "", "memory", "file", "sqlite":
	default:
		return fmt.Errorf("storage.backend %q is not one of memory, file, sqlite", c.Storage.Backend)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format %q is not one of text, json", c.Logging.Format)
	}
	switch c.Render.Style {
	case "", "textual", "table":
	default:
		return fmt.Errorf("render.style %q is not one of textual, table", c.Render.Style)
	}
	if c.YouTube.MaxResults < 0 || c.YouTube.MaxResults > 50 {
		return fmt.Errorf("youtube.max_results must be between 0 and 50")
	}
	return nil
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".vidshelf", "config.yaml")
}

// LocalPath returns a local config file path if it exists.
func LocalPath() string {
	paths := []string{
		"vidshelf.yaml",
		"vidshelf.yml",
		".vidshelf.yaml",
		".vidshelf.yml",
		"vidshelf.toml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// GetInputConfig returns the config for a specific importer.
func (c *Config) GetInputConfig(name string) InputConfig {
	switch name {
	case "chrome":
		return c.Inputs.Chrome
	case "edge":
		return c.Inputs.Edge
	case "firefox":
		return c.Inputs.Firefox
	case "safari":
		return c.Inputs.Safari
	case "chromium":
		return c.Inputs.Chromium
	case "brave":
		return c.Inputs.Brave
	default:
		return InputConfig{}
	}
}
