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

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import adapters to trigger init() registration
	_ "github.com/cloudygreybeard/vidshelf/pkg/input/chromium"
	_ "github.com/cloudygreybeard/vidshelf/pkg/input/firefox"
	_ "github.com/cloudygreybeard/vidshelf/pkg/input/opml"
	_ "github.com/cloudygreybeard/vidshelf/pkg/input/safari"
	_ "github.com/cloudygreybeard/vidshelf/pkg/output/json"
	_ "github.com/cloudygreybeard/vidshelf/pkg/output/markdown"
	_ "github.com/cloudygreybeard/vidshelf/pkg/output/opml"
	_ "github.com/cloudygreybeard/vidshelf/pkg/output/plist"
	_ "github.com/cloudygreybeard/vidshelf/pkg/output/yaml"
	_ "github.com/cloudygreybeard/vidshelf/pkg/source/dirsrc"
	_ "github.com/cloudygreybeard/vidshelf/pkg/source/httpsrc"
	_ "github.com/cloudygreybeard/vidshelf/pkg/storage/sqlite"
)

var (
	cfgFile  string
	verbose  bool
	location string
)

var rootCmd = &cobra.Command{
	Use:   "vidshelf",
	Short: "Browse a curated video catalog and manage playlists",
	Long: `vidshelf loads a video catalog described by a manifest and content
files, either from a local directory or an http(s) location, and renders it
in a structured format.

By default, the catalog is rendered to stdout. Use -o/--output to write to a
file.

Output formats:
  - markdown: Nested lists, tables, or embedded YAML
  - json: Structured JSON
  - yaml: Structured YAML
  - opml: OPML outline
  - html: Netscape bookmark file
  - plist: Property list (xml, binary, or openstep via --style)

Examples:
  vidshelf                               # Render ./contents as markdown
  vidshelf -l https://example.com        # Load from a remote location
  vidshelf --format json -o catalog.json # JSON to a file
  vidshelf search cocuk                  # Search the catalog
  vidshelf browse music/rock             # Show one node
  vidshelf playlist create "Road trip"   # Create a playlist
  vidshelf import -b firefox --name Fav  # Playlist from bookmarked videos
  vidshelf serve                         # Run the HTTP API
  vidshelf mcp                           # Run as MCP server
  vidshelf adapters                      # List registered adapters`,
	RunE: runRender,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./vidshelf.yaml or ~/.vidshelf/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output to stderr")
	rootCmd.PersistentFlags().StringVarP(&location, "location", "l", "", "content directory or http(s) base URL (overrides config)")

	rootCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	rootCmd.Flags().Bool("metadata", true, "include metadata header")
	rootCmd.Flags().Bool("details", true, "include channel and duration")
	rootCmd.Flags().Bool("sort", false, "sort alphabetically")
	rootCmd.Flags().String("style", "textual", "output style: textual, table, or yaml (markdown); xml, binary, or openstep (plist)")
	rootCmd.Flags().String("format", "markdown", "output format (see vidshelf adapters)")
	rootCmd.Flags().String("title", "", "document title")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("vidshelf %s (commit: %s, built: %s)\n", Version, Commit, Date))

	// Add subcommands
	rootCmd.AddCommand(adaptersCmd)
}
