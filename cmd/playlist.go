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
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/vidshelf/pkg/app"
	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/output"
	"github.com/cloudygreybeard/vidshelf/pkg/playlist"
	"github.com/cloudygreybeard/vidshelf/pkg/youtube"
)

var playlistCmd = &cobra.Command{
	Use:     "playlist",
	Aliases: []string{"pl"},
	Short:   "Manage playlists",
	Long: `Creates, edits and plays back playlists kept in the configured store.

A playlist is referenced by its ID or by its name when the name is unique.
Video positions shown by "show" start at 1, as does "select".`,
}

var playlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List playlists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(true, false, func(ctx context.Context, state *app.State) error {
			playlists := state.Playlists().List()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				data, err := playlist.Encode(playlists)
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}
			if len(playlists) == 0 {
				fmt.Println("No playlists.")
				return nil
			}
			for _, p := range playlists {
				fmt.Printf("  %-26s %-30s %3d videos, %d watched\n", p.ID, p.Name, len(p.Videos), len(p.Watched()))
			}
			return nil
		})
	},
}

var playlistShowCmd = &cobra.Command{
	Use:   "show PLAYLIST",
	Short: "Show a playlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(true, false, func(ctx context.Context, state *app.State) error {
			p, err := findPlaylist(state.Playlists(), args[0])
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return printJSON(p)
			}
			printPlaylist(p)
			return nil
		})
	},
}

var playlistCreateCmd = &cobra.Command{
	Use:   "create NAME [URL...]",
	Short: "Create a playlist, optionally from video URLs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(true, len(args) > 1, func(ctx context.Context, state *app.State) error {
			videos, err := lookupVideos(ctx, state, args[1:])
			if err != nil {
				return err
			}
			p, err := state.Playlists().Create(ctx, args[0], videos...)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s (%s) with %d videos\n", p.Name, p.ID, len(p.Videos))
			return nil
		})
	},
}

var playlistImportCmd = &cobra.Command{
	Use:   "import URL",
	Short: "Create a playlist from a YouTube playlist",
	Long: `Fetches every video of a YouTube playlist through the Data API and stores
them as a new playlist. Requires an API key.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		return withState(true, false, func(ctx context.Context, state *app.State) error {
			p, err := state.ImportPlaylist(ctx, args[0], name)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %s (%s) with %d videos\n", p.Name, p.ID, len(p.Videos))
			return nil
		})
	},
}

var playlistAddCmd = &cobra.Command{
	Use:   "add PLAYLIST URL...",
	Short: "Add videos by URL",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(true, true, func(ctx context.Context, state *app.State) error {
			p, err := findPlaylist(state.Playlists(), args[0])
			if err != nil {
				return err
			}
			for _, u := range args[1:] {
				if p, err = state.AddVideoURL(ctx, p.ID, u); err != nil {
					return fmt.Errorf("adding %s: %w", u, err)
				}
			}
			fmt.Printf("%s now has %d videos\n", p.Name, len(p.Videos))
			return nil
		})
	},
}

var playlistRemoveCmd = &cobra.Command{
	Use:   "remove PLAYLIST VIDEO",
	Short: "Remove a video by ID or URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(true, false, func(ctx context.Context, state *app.State) error {
			p, err := findPlaylist(state.Playlists(), args[0])
			if err != nil {
				return err
			}
			p, err = state.Playlists().RemoveVideo(ctx, p.ID, videoRef(args[1]))
			if err != nil {
				return err
			}
			fmt.Printf("%s now has %d videos\n", p.Name, len(p.Videos))
			return nil
		})
	},
}

var playlistDeleteCmd = &cobra.Command{
	Use:   "delete PLAYLIST",
	Short: "Delete a playlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(true, false, func(ctx context.Context, state *app.State) error {
			p, err := findPlaylist(state.Playlists(), args[0])
			if err != nil {
				return err
			}
			if err := state.Playlists().Delete(ctx, p.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", p.Name)
			return nil
		})
	},
}

var playlistRenameCmd = &cobra.Command{
	Use:   "rename PLAYLIST NAME",
	Short: "Rename a playlist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(true, false, func(ctx context.Context, state *app.State) error {
			p, err := findPlaylist(state.Playlists(), args[0])
			if err != nil {
				return err
			}
			p, err = state.Playlists().Rename(ctx, p.ID, args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Renamed to %s\n", p.Name)
			return nil
		})
	},
}

var playlistWatchedCmd = &cobra.Command{
	Use:   "watched PLAYLIST VIDEO",
	Short: "Mark a video watched",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		unset, _ := cmd.Flags().GetBool("unset")
		toggle, _ := cmd.Flags().GetBool("toggle")
		return withState(true, false, func(ctx context.Context, state *app.State) error {
			p, err := findPlaylist(state.Playlists(), args[0])
			if err != nil {
				return err
			}
			id := videoRef(args[1])
			if toggle {
				p, err = state.Playlists().ToggleWatched(ctx, p.ID, id)
			} else {
				p, err = state.Playlists().MarkWatched(ctx, p.ID, id, !unset)
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s watched: %t\n", id, p.IsWatched(id))
			return nil
		})
	},
}

var playlistPositionCmd = &cobra.Command{
	Use:   "position PLAYLIST VIDEO SECONDS",
	Short: "Save the playback position of a video",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		seconds, err := strconv.ParseFloat(args[2], 64)
		if err != nil || seconds < 0 {
			return fmt.Errorf("invalid position %q", args[2])
		}
		return withState(true, false, func(ctx context.Context, state *app.State) error {
			p, err := findPlaylist(state.Playlists(), args[0])
			if err != nil {
				return err
			}
			_, err = state.Playlists().UpdatePosition(ctx, p.ID, videoRef(args[1]), seconds)
			return err
		})
	},
}

var playlistNextCmd = playbackCommand("next PLAYLIST", "Advance to the next video", func(ctx context.Context, m *playlist.Manager, id string, _ []string) (playlist.Playlist, error) {
	return m.Next(ctx, id)
})

var playlistPrevCmd = playbackCommand("prev PLAYLIST", "Step back to the previous video", func(ctx context.Context, m *playlist.Manager, id string, _ []string) (playlist.Playlist, error) {
	return m.Previous(ctx, id)
})

var playlistShuffleCmd = playbackCommand("shuffle PLAYLIST", "Jump to a random video", func(ctx context.Context, m *playlist.Manager, id string, _ []string) (playlist.Playlist, error) {
	return m.Shuffle(ctx, id)
})

var playlistSelectCmd = playbackCommand("select PLAYLIST N", "Jump to the Nth video", func(ctx context.Context, m *playlist.Manager, id string, rest []string) (playlist.Playlist, error) {
	if len(rest) != 1 {
		return playlist.Playlist{}, fmt.Errorf("select needs a video number")
	}
	n, err := strconv.Atoi(rest[0])
	if err != nil {
		return playlist.Playlist{}, fmt.Errorf("invalid video number %q", rest[0])
	}
	return m.Select(ctx, id, n-1)
})

var playlistExportCmd = &cobra.Command{
	Use:   "export [PLAYLIST...]",
	Short: "Render playlists with an output adapter",
	Long: `Renders the named playlists, or all of them, as a catalog with one
entry per playlist.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(true, false, func(ctx context.Context, state *app.State) error {
			selected := state.Playlists().List()
			if len(args) > 0 {
				selected = nil
				for _, ref := range args {
					p, err := findPlaylist(state.Playlists(), ref)
					if err != nil {
						return err
					}
					selected = append(selected, p)
				}
			}

			format, _ := cmd.Flags().GetString("format")
			style, _ := cmd.Flags().GetString("style")
			metadata, _ := cmd.Flags().GetBool("metadata")
			data, err := renderCatalog(playlist.AsCatalog(selected), format, output.RenderOptions{
				IncludeMetadata: metadata,
				IncludeDetails:  true,
				Style:           style,
				Title:           "Playlists",
			}, cmd.Flags().Changed("style"))
			if err != nil {
				return err
			}
			outPath, _ := cmd.Flags().GetString("output")
			return writeOutput(outPath, data)
		})
	},
}

func init() {
	playlistListCmd.Flags().Bool("json", false, "print the stored JSON")
	playlistShowCmd.Flags().Bool("json", false, "print the playlist as JSON")
	playlistImportCmd.Flags().String("name", "", "playlist name (default: the YouTube playlist title)")
	playlistWatchedCmd.Flags().Bool("unset", false, "mark the video unwatched")
	playlistWatchedCmd.Flags().Bool("toggle", false, "flip the watched state")
	playlistExportCmd.Flags().String("format", "markdown", "output format")
	playlistExportCmd.Flags().String("style", "", "output style (adapter-specific)")
	playlistExportCmd.Flags().Bool("metadata", false, "include metadata header")
	playlistExportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	playlistCmd.AddCommand(
		playlistListCmd,
		playlistShowCmd,
		playlistCreateCmd,
		playlistImportCmd,
		playlistAddCmd,
		playlistRemoveCmd,
		playlistDeleteCmd,
		playlistRenameCmd,
		playlistWatchedCmd,
		playlistPositionCmd,
		playlistNextCmd,
		playlistPrevCmd,
		playlistShuffleCmd,
		playlistSelectCmd,
		playlistExportCmd,
	)
	rootCmd.AddCommand(playlistCmd)
}

type playbackFunc func(ctx context.Context, m *playlist.Manager, id string, rest []string) (playlist.Playlist, error)

// playbackCommand builds a command that moves the current video and
// prints what to play next.
func playbackCommand(use, short string, fn playbackFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(true, false, func(ctx context.Context, state *app.State) error {
				p, err := findPlaylist(state.Playlists(), args[0])
				if err != nil {
					return err
				}
				p, err = fn(ctx, state.Playlists(), p.ID, args[1:])
				if err != nil {
					return err
				}
				v, ok := p.Current()
				if !ok {
					return fmt.Errorf("%s has no current video", p.Name)
				}
				fmt.Printf("Now playing %d/%d: %s\n", p.CurrentVideoIndex+1, len(p.Videos), output.VideoTitle(v))
				fmt.Printf("  %s\n", youtube.EmbedURL(v.Key(), p.Position(v.Key())))
				return nil
			})
		},
	}
}

// findPlaylist resolves ref as an ID, then as a unique name.
func findPlaylist(m *playlist.Manager, ref string) (playlist.Playlist, error) {
	if p, err := m.Get(ref); err == nil {
		return p, nil
	}
	var matches []playlist.Playlist
	for _, p := range m.List() {
		if strings.EqualFold(p.Name, strings.TrimSpace(ref)) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return playlist.Playlist{}, fmt.Errorf("%s: %w", ref, playlist.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return playlist.Playlist{}, fmt.Errorf("%d playlists are named %q, use an ID", len(matches), ref)
	}
}

func lookupVideos(ctx context.Context, state *app.State, urls []string) ([]catalog.Video, error) {
	videos := make([]catalog.Video, 0, len(urls))
	for _, u := range urls {
		id, err := youtube.ExtractVideoID(u)
		if err != nil {
			return nil, err
		}
		videos = append(videos, state.LookupVideo(ctx, id))
	}
	return videos, nil
}

// videoRef accepts a bare video ID or any video URL.
func videoRef(ref string) string {
	if id, err := youtube.ExtractVideoID(ref); err == nil {
		return id
	}
	return strings.TrimSpace(ref)
}

func printPlaylist(p playlist.Playlist) {
	fmt.Printf("%s (%s)\n", p.Name, p.ID)
	fmt.Printf("Created %s, %d videos, %d watched\n\n", p.CreatedAt.Local().Format("2006-01-02 15:04"), len(p.Videos), len(p.Watched()))
	for i, v := range p.Videos {
		cur := " "
		if i == p.CurrentVideoIndex {
			cur = ">"
		}
		mark := "[ ]"
		if p.IsWatched(v.Key()) {
			mark = "[x]"
		}
		fmt.Printf("%s %3d. %s %s  (%s)\n", cur, i+1, mark, output.VideoTitle(v), v.Key())
	}
}
