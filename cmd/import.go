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
	"time"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/vidshelf/pkg/adapter"
	"github.com/cloudygreybeard/vidshelf/pkg/app"
	"github.com/cloudygreybeard/vidshelf/pkg/config"
	"github.com/cloudygreybeard/vidshelf/pkg/input"
)

var inputPreference = []string{"chrome", "firefox", "edge", "safari", "chromium", "brave"}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Create a playlist from bookmarked videos",
	Long: `Reads bookmarks from a browser or a bookmark file, keeps the links that
point at YouTube videos and stores them as a new playlist. Repeated videos
are kept once.

Examples:
  vidshelf import --name Favourites             # First available browser
  vidshelf import -b firefox -p work --name Work
  vidshelf import -b opml -f bookmarks.html --name Saved
  vidshelf import --folder Music --name Music   # Only links under "Music"
  vidshelf import --list                        # List browsers and profiles`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringP("browser", "b", "", "importer to use (default: first available browser)")
	importCmd.Flags().StringP("profile", "p", "", "profile name (default: Default or first found)")
	importCmd.Flags().StringP("file", "f", "", "bookmark file (OPML or Netscape HTML with -b opml)")
	importCmd.Flags().String("name", "", "playlist name (default: <browser> videos)")
	importCmd.Flags().StringSlice("folder", nil, "only import links under these folders")
	importCmd.Flags().StringSlice("exclude-folder", nil, "skip links under these folders")
	importCmd.Flags().StringSlice("exclude-url", nil, "skip URLs matching these regex patterns")
	importCmd.Flags().Bool("dry-run", false, "list the videos without creating a playlist")
	importCmd.Flags().Bool("list", false, "list available browser profiles and exit")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	// Check for list mode
	if list, _ := cmd.Flags().GetBool("list"); list {
		return runListProfiles(cmd)
	}

	cfg, _, err := setup()
	if err != nil {
		return err
	}

	browserFlag, _ := cmd.Flags().GetString("browser")
	profileFlag, _ := cmd.Flags().GetString("profile")
	fileFlag, _ := cmd.Flags().GetString("file")
	if fileFlag != "" && browserFlag == "" {
		browserFlag = "opml"
	}

	ctx, cancel := signalContext()
	defer cancel()

	inp, links, err := readPreferredInput(ctx, cfg, browserFlag, profileFlag, fileFlag)
	if err != nil {
		return err
	}

	// Build filter options from config and flags
	filterOpts := input.FilterOptions{
		IncludeFolders: cfg.Import.IncludeFolders,
		ExcludeFolders: cfg.Import.ExcludeFolders,
	}
	if folders, _ := cmd.Flags().GetStringSlice("folder"); len(folders) > 0 {
		filterOpts.IncludeFolders = folders
	}
	if folders, _ := cmd.Flags().GetStringSlice("exclude-folder"); len(folders) > 0 {
		filterOpts.ExcludeFolders = folders
	}
	filterOpts.ExcludeURLPatterns, _ = cmd.Flags().GetStringSlice("exclude-url")

	result, err := input.Filter(links, filterOpts)
	if err != nil {
		return err
	}
	logVerbose("Links: %d, not video: %d, excluded: %d, duplicates: %d",
		len(links), result.NotVideo, result.Excluded, result.Duplicates)

	if len(result.Links) == 0 {
		return fmt.Errorf("no video bookmarks found in %s", inp.DisplayName())
	}

	videos := input.Videos(result.Links, time.Now())
	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		printVideos(videos)
		return nil
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = inp.DisplayName() + " videos"
	}
	return withState(true, false, func(ctx context.Context, state *app.State) error {
		p, err := state.Playlists().Create(ctx, name, videos...)
		if err != nil {
			return err
		}
		fmt.Printf("Created %s (%s) with %d videos\n", p.Name, p.ID, len(p.Videos))
		return nil
	})
}

func readPreferredInput(ctx context.Context, cfg config.Config, browserFlag, profileFlag, fileFlag string) (input.Adapter, []input.Link, error) {
	var targetInput input.Adapter

	if browserFlag != "" {
		// Specific importer requested
		inp, ok := adapter.GetInput(browserFlag)
		if !ok {
			return nil, nil, fmt.Errorf("unknown browser: %s (available: %v)", browserFlag, adapter.ListInputs())
		}
		targetInput = inp
	} else {
		// Find first available by preference
		for _, name := range inputPreference {
			inp, ok := adapter.GetInput(name)
			if !ok {
				continue
			}
			if !cfg.GetInputConfig(name).Enabled {
				continue
			}
			if inp.Available() {
				targetInput = inp
				break
			}
		}
	}

	if targetInput == nil {
		return nil, nil, fmt.Errorf("no available browser found")
	}

	// Configure the input adapter
	inputCfg := cfg.GetInputConfig(targetInput.Name())
	if profileFlag != "" {
		inputCfg.Profile = profileFlag
	}
	if fileFlag != "" {
		inputCfg.CustomPath = fileFlag
	}

	if err := targetInput.Configure(input.Config{
		Enabled:    true,
		Profile:    inputCfg.Profile,
		CustomPath: inputCfg.CustomPath,
	}); err != nil {
		return nil, nil, fmt.Errorf("configuring %s: %w", targetInput.Name(), err)
	}

	logVerbose("Browser %s: reading from %s", targetInput.Name(), targetInput.Path())

	links, err := targetInput.Read(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("reading from %s: %w", targetInput.Name(), err)
	}
	return targetInput, links, nil
}

func runListProfiles(cmd *cobra.Command) error {
	fmt.Println("Available browser profiles:")
	fmt.Println()

	for _, name := range inputPreference {
		inp, ok := adapter.GetInput(name)
		if !ok {
			continue
		}

		status := "not available"
		if inp.Available() {
			status = "available"
		}

		fmt.Printf("  %s (%s)\n", inp.DisplayName(), status)
		fmt.Printf("    Path: %s\n", inp.Path())

		if inp.Available() {
			profiles, err := inp.ListProfiles()
			if err == nil && len(profiles) > 0 {
				fmt.Printf("    Profiles:\n")
				for _, p := range profiles {
					def := ""
					if p.IsDefault {
						def = " (default)"
					}
					fmt.Printf("      - %s%s\n", p.Name, def)
				}
			}
		}
		fmt.Println()
	}

	return nil
}
