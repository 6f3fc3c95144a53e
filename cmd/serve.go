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

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/vidshelf/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Runs vidshelf as an HTTP server exposing the catalog, search, deep links
and playlists as JSON.

Catalog:
  GET  /api/catalog            Full catalog (?format=markdown|json|yaml|opml|html|plist)
  GET  /api/overview           Top-level groups with counts
  GET  /api/browse/{path}      One navigation node
  GET  /api/search?q=          Catalog search
  POST /api/reload             Reload from the content location
  GET  /api/deeplink?v=        Resolve a video reference
  GET  /api/share/{videoID}    Share URL for a video

Playlists:
  GET|POST /api/playlists                  List or create
  POST     /api/playlists/import           Import a YouTube playlist
  GET|PUT|PATCH|DELETE /api/playlists/{id}
  POST     /api/playlists/{id}/next|previous|select|shuffle

YouTube:
  GET  /api/youtube/search?q=  Data API search (needs an API key)

The catalog is loaded once at startup; POST /api/reload refreshes it.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default: server.addr from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	// Handle shutdown gracefully
	ctx, cancel := signalContext()
	defer cancel()

	state, closeState, err := newState(ctx, cfg, logger, true)
	if err != nil {
		return err
	}
	defer closeState()

	if _, err := state.Reload(ctx); err != nil {
		return err
	}
	logger.Info("catalog loaded", "location", cfg.Content.Location, "videos", state.Catalog().Count())

	handler := server.New(state, server.Options{Logger: logger, Version: Version})
	if err := server.ListenAndServe(ctx, cfg.Server.Addr, handler, logger); err != nil {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}
