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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/vidshelf/pkg/app"
	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/output"
)

var searchCmd = &cobra.Command{
	Use:   "search QUERY...",
	Short: "Search the catalog",
	Long: `Searches video titles and channel names in the catalog.

Matching ignores case and diacritics, so "cocuk" finds "Çocuk".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var browseCmd = &cobra.Command{
	Use:   "browse [PATH]",
	Short: "Show one node of the catalog",
	Long: `Shows the node at a slash-separated path such as "music/rock".
Without a path, lists the top-level groups.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	searchCmd.Flags().Bool("json", false, "print results as JSON")
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = all)")
	browseCmd.Flags().Bool("json", false, "print the node as JSON")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(browseCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	return withState(false, true, func(ctx context.Context, state *app.State) error {
		results, err := state.Search(strings.Join(args, " "))
		if err != nil {
			return err
		}
		if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(results) > limit {
			results = results[:limit]
		}
		logVerbose("Results: %d", len(results))

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(results)
		}
		if len(results) == 0 {
			fmt.Println("No videos found.")
			return nil
		}
		printVideos(results)
		return nil
	})
}

func runBrowse(cmd *cobra.Command, args []string) error {
	return withState(false, true, func(ctx context.Context, state *app.State) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		node, ok := state.Browse(path)
		if !ok {
			return fmt.Errorf("no catalog node at %q", path)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(node)
		}
		printNode(node)
		return nil
	})
}

func printNode(node catalog.Node) {
	if len(node.Breadcrumbs) > 0 {
		labels := make([]string, len(node.Breadcrumbs))
		for i, c := range node.Breadcrumbs {
			labels[i] = c.Label
		}
		fmt.Println(strings.Join(labels, " > "))
		fmt.Println()
	}

	if len(node.Subgroups) > 0 {
		for _, sg := range node.Subgroups {
			label := sg.ViewName
			if label == "" {
				label = sg.Name
			}
			fmt.Printf("  %-30s %4d videos  (%s)\n", label, sg.TotalVideos, sg.Path)
		}
		if len(node.Videos) > 0 {
			fmt.Println()
		}
	}
	printVideos(node.Videos)
}

func printVideos(videos []catalog.Video) {
	for _, v := range videos {
		fmt.Printf("  %-11s  %s\n", v.Key(), output.VideoTitle(v))
		if details := output.Details(v); len(details) > 0 {
			fmt.Printf("  %-11s  %s\n", "", strings.Join(details, ", "))
		}
	}
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
