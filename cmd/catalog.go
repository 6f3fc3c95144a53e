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
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/vidshelf/pkg/adapter"
	"github.com/cloudygreybeard/vidshelf/pkg/app"
	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/config"
	"github.com/cloudygreybeard/vidshelf/pkg/loader"
	"github.com/cloudygreybeard/vidshelf/pkg/logging"
	"github.com/cloudygreybeard/vidshelf/pkg/output"
	"github.com/cloudygreybeard/vidshelf/pkg/playlist"
	"github.com/cloudygreybeard/vidshelf/pkg/source"
	"github.com/cloudygreybeard/vidshelf/pkg/storage"
	"github.com/cloudygreybeard/vidshelf/pkg/youtube"
)

func runRender(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	// Apply flag overrides
	applyFlagOverrides(cmd, &cfg)

	ctx, cancel := signalContext()
	defer cancel()

	l, err := newLoader(cfg, logger)
	if err != nil {
		return err
	}
	c, err := l.Load(ctx)
	if err != nil {
		return err
	}
	if len(c.Groups) == 0 {
		return fmt.Errorf("no catalog found at %s", cfg.Content.Location)
	}

	logVerbose("Location: %s", c.Location)
	logVerbose("Groups: %d, videos: %d", len(c.Groups), c.Count())

	format, _ := cmd.Flags().GetString("format")
	title, _ := cmd.Flags().GetString("title")
	details, _ := cmd.Flags().GetBool("details")
	data, err := renderCatalog(c, format, output.RenderOptions{
		IncludeMetadata: cfg.Render.IncludeMetadata,
		IncludeDetails:  details,
		SortAlpha:       cfg.Render.Sort,
		Style:           cfg.Render.Style,
		Title:           title,
	}, cmd.Flags().Changed("style"))
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("output")
	return writeOutput(outPath, data)
}

// renderCatalog renders c with the named output adapter. The plist
// adapter takes its encoding from an explicitly set style.
func renderCatalog(c *catalog.Catalog, format string, opts output.RenderOptions, styleSet bool) ([]byte, error) {
	out, ok := adapter.GetOutput(format)
	if !ok {
		return nil, fmt.Errorf("unknown output format: %s (available: %v)", format, adapter.ListOutputs())
	}

	options := map[string]interface{}{}
	if out.Name() == "plist" {
		if styleSet {
			options["format"] = opts.Style
		}
		opts.Style = ""
	} else if opts.Style != "" {
		options["style"] = opts.Style
	}
	if err := out.Configure(output.Config{Enabled: true, Options: options}); err != nil {
		return nil, fmt.Errorf("configuring %s: %w", format, err)
	}

	data, err := out.Render(c, opts)
	if err != nil {
		return nil, fmt.Errorf("rendering output: %w", err)
	}
	return data, nil
}

func writeOutput(outPath string, data []byte) error {
	if outPath == "" || outPath == "-" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logVerbose("Written to: %s", outPath)
	return nil
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("metadata") {
		cfg.Render.IncludeMetadata, _ = cmd.Flags().GetBool("metadata")
	}
	if cmd.Flags().Changed("sort") {
		cfg.Render.Sort, _ = cmd.Flags().GetBool("sort")
	}
	if cmd.Flags().Changed("style") {
		cfg.Render.Style, _ = cmd.Flags().GetString("style")
	}
}

// setup loads the config, applies the --location override and builds the
// logger.
func setup() (config.Config, *slog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, nil, fmt.Errorf("loading config: %w", err)
	}
	if location != "" {
		cfg.Content.Location = location
	}
	return cfg, logging.New(os.Stderr, cfg.Logging, verbose), nil
}

func newLoader(cfg config.Config, logger *slog.Logger) (*loader.Loader, error) {
	src, err := adapter.OpenSource(cfg.Content.Location, source.Options{
		Timeout: cfg.Content.FetchTimeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	logVerbose("Source %s: %s", src.Name(), src.Location())

	return &loader.Loader{
		Source:      src,
		Root:        cfg.Content.Root,
		Manifest:    cfg.Content.Manifest,
		Concurrency: cfg.Content.Concurrency,
		Logger:      logger,
	}, nil
}

func newYouTube(cfg config.Config, logger *slog.Logger) *youtube.Client {
	return youtube.New(youtube.Options{
		APIKey:     cfg.YouTube.APIKey,
		APIKeyEnv:  cfg.YouTube.APIKeyEnv,
		BaseURL:    cfg.YouTube.BaseURL,
		MaxResults: cfg.YouTube.MaxResults,
		Logger:     logger,
	})
}

// openStore opens the configured playlist store. A sqlite path without
// an extension names a directory and gets a database file inside it.
func openStore(cfg config.Config) (storage.Storage, error) {
	path := cfg.Storage.Path
	if cfg.Storage.Backend == "sqlite" && filepath.Ext(path) == "" {
		path = filepath.Join(path, "vidshelf.db")
	}
	store, err := storage.Open(cfg.Storage.Backend, path)
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}
	return store, nil
}

// newState wires the loader, playlist store and YouTube client into an
// application state. withStore false leaves playlists unavailable. The
// returned close function releases the store.
func newState(ctx context.Context, cfg config.Config, logger *slog.Logger, withStore bool) (*app.State, func(), error) {
	l, err := newLoader(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	opts := app.Options{
		Loader:    l,
		YouTube:   newYouTube(cfg, logger),
		PublicURL: cfg.Server.PublicURL,
		Logger:    logger,
	}
	closeFn := func() {}
	if withStore {
		store, err := openStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		opts.Playlists = playlist.NewManager(ctx, store, playlist.Options{
			Key:    cfg.Storage.Key,
			Logger: logger,
		})
		closeFn = func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing storage", "err", err)
			}
		}
	}
	return app.New(opts), closeFn, nil
}

// withState runs fn against a fresh state. withStore opens the playlist
// store and loadCatalog loads the catalog first, so URLs resolve to
// catalog metadata.
func withState(withStore, loadCatalog bool, fn func(ctx context.Context, state *app.State) error) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	state, closeState, err := newState(ctx, cfg, logger, withStore)
	if err != nil {
		return err
	}
	defer closeState()

	if loadCatalog {
		if _, err := state.Reload(ctx); err != nil {
			return err
		}
	}
	return fn(ctx, state)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

func loadConfig() (config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.LocalPath()
	}
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, err
	}

	return cfg, nil
}

func logVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
