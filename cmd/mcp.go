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

	"github.com/cloudygreybeard/vidshelf/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as an MCP server",
	Long: `Runs vidshelf as an MCP (Model Context Protocol) server.

The server communicates via JSON-RPC over stdin/stdout, exposing:

Resources:
  - vidshelf://catalog           The catalog in JSON format
  - vidshelf://catalog/markdown  The catalog in Markdown format
  - vidshelf://playlists         All playlists
  - vidshelf://browse/<group>    One top-level group

Tools:
  - reload_catalog    Reload the catalog from its location
  - search_videos     Search the catalog
  - browse            Show one navigation node
  - list_playlists    List playlists
  - create_playlist   Create a playlist
  - add_to_playlist   Add a video URL to a playlist
  - resolve_link      Resolve a video reference or share link

Usage with Claude Desktop or similar MCP clients:

Add to your MCP configuration:

  {
    "mcpServers": {
      "vidshelf": {
        "command": "/path/to/vidshelf",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
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

	server := mcp.NewServer(state, mcp.Options{Version: Version, Logger: logger})

	fmt.Fprintln(os.Stderr, "vidshelf MCP server started")
	return server.Run(ctx)
}
