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
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/vidshelf/pkg/app"
	"github.com/cloudygreybeard/vidshelf/pkg/output"
)

var ytCmd = &cobra.Command{
	Use:   "yt",
	Short: "Search YouTube and resolve video links",
}

var ytSearchCmd = &cobra.Command{
	Use:   "search QUERY...",
	Short: "Search YouTube through the Data API",
	Long: `Searches YouTube for videos. Requires an API key in the config or in the
environment variable named by youtube.api_key_env (default YOUTUBE_API_KEY).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("max")
		asJSON, _ := cmd.Flags().GetBool("json")
		return withState(false, false, func(ctx context.Context, state *app.State) error {
			videos, err := state.YouTube().Search(ctx, strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(videos)
			}
			if len(videos) == 0 {
				fmt.Println("No videos found.")
				return nil
			}
			printVideos(videos)
			return nil
		})
	},
}

var ytLinkCmd = &cobra.Command{
	Use:   "link REF",
	Short: "Resolve a video URL, share link or ID",
	Long: `Resolves a video reference to its metadata and player URLs. REF may be a
watch, short or embed URL, a vidshelf share link (?v=ID), or a bare video ID.
Videos found in the catalog use the catalog metadata.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return withState(false, true, func(ctx context.Context, state *app.State) error {
			link, err := state.ResolveDeepLink(ctx, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(link)
			}
			fmt.Printf("%s  (%s)\n", output.VideoTitle(link.Video), link.Video.Key())
			if details := output.Details(link.Video); len(details) > 0 {
				fmt.Printf("  %s\n", strings.Join(details, ", "))
			}
			fmt.Printf("  Watch: %s\n", link.WatchURL)
			fmt.Printf("  Embed: %s\n", link.EmbedURL)
			fmt.Printf("  Share: %s\n", link.ShareURL)
			return nil
		})
	},
}

func init() {
	ytSearchCmd.Flags().Int("max", 0, "maximum results, 1 to 50 (default: youtube.max_results)")
	ytSearchCmd.Flags().Bool("json", false, "print results as JSON")
	ytLinkCmd.Flags().Bool("json", false, "print the resolved link as JSON")

	ytCmd.AddCommand(ytSearchCmd, ytLinkCmd)
	rootCmd.AddCommand(ytCmd)
}
