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

// Package loader builds a catalog from a manifest and its content files.
//
// Loading runs the pipeline end to end:
//
//	manifest.Read -> manifest.Normalize -> BuildTree -> fetch + classify -> catalog.Finalize
//
// Fetches may run concurrently, but every declaration is applied in
// manifest order, so identical inputs always produce identical catalogs.
// A missing or malformed file contributes nothing; Load itself only fails
// when its context is cancelled.
package loader

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/content"
	"github.com/cloudygreybeard/vidshelf/pkg/manifest"
	"github.com/cloudygreybeard/vidshelf/pkg/source"
)

// DefaultConcurrency is the number of content files fetched at once.
const DefaultConcurrency = 4

// Loader loads a catalog from a Source.
type Loader struct {
	Source source.Source

	// Root is the content root prefix. Defaults to manifest.DefaultRoot.
	Root string

	// Manifest is the manifest file name under Root.
	// Defaults to manifest.DefaultName.
	Manifest string

	// Concurrency bounds parallel fetches. 1 fetches sequentially.
	Concurrency int

	Logger *slog.Logger
}

// Load runs the full pipeline and returns a finalized catalog.
func (l *Loader) Load(ctx context.Context) (*catalog.Catalog, error) {
	logger := l.logger()
	root := manifest.NormalizeRoot(l.Root)
	name := l.Manifest
	if name == "" {
		name = manifest.DefaultName
	}

	start := time.Now()
	entries := manifest.Normalize(manifest.Read(ctx, l.Source, root+name, logger), root)
	tree := BuildTree(entries, root)

	files, err := l.fetchAll(ctx, tree.Jobs)
	if err != nil {
		return nil, err
	}

	lists := make([][]catalog.Group, 0, len(files)+1)
	lists = append(lists, tree.Groups)
	for i, job := range tree.Jobs {
		lists = append(lists, l.apply(job, files[i]))
	}

	cat := catalog.NewCatalog(catalog.MergeGroups(lists...), l.Source.Location())
	logger.Info("catalog loaded",
		"location", cat.Location,
		"entries", len(entries),
		"files", len(tree.Jobs),
		"groups", len(cat.Groups),
		"videos", cat.Count(),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return cat, nil
}

// fetchAll fetches and decodes every job. Results are indexed like jobs;
// a failed file leaves a nil entry.
func (l *Loader) fetchAll(ctx context.Context, jobs []Job) ([][]content.Item, error) {
	results := make([][]content.Item, len(jobs))

	limit := l.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = l.fetch(gctx, job.File)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (l *Loader) fetch(ctx context.Context, file string) []content.Item {
	logger := l.logger()

	data, err := l.Source.Fetch(ctx, file)
	if err != nil {
		logger.Warn("content file unavailable", "path", file, "error", err)
		return nil
	}

	raw, err := content.Decode(data)
	if err != nil {
		attrs := []any{"path", file, "error", err}
		if source.IsHTML(data) {
			attrs = append(attrs, "title", source.HTMLTitle(data))
		}
		logger.Warn("content file skipped", attrs...)
		return nil
	}

	items := make([]content.Item, 0, len(raw))
	for _, r := range raw {
		items = append(items, content.Classify(r))
	}
	logger.Debug("content file loaded", "path", file, "items", len(items))
	return items
}

// apply turns one file's declarations into groups rooted at the job's
// navigation path.
func (l *Loader) apply(job Job, items []content.Item) []catalog.Group {
	logger := l.logger()
	segments := catalog.SplitPath(job.NavPath)

	var groups []catalog.Group
	for _, item := range items {
		var leaf catalog.Subgroup
		switch it := item.(type) {
		case content.NestedGroup:
			if len(segments) == 0 {
				groups = append(groups, catalog.Group{Name: it.Name, ViewName: it.ViewName, Subgroups: it.Subgroups})
				continue
			}
			leaf.Subgroups = it.Subgroups
		case content.SubgroupList:
			leaf.Subgroups = it.Subgroups
		case content.VideoList:
			leaf.Videos = it.Videos
		case content.FlatVideos:
			leaf.Videos = it.Videos
		case content.SingleVideo:
			leaf.Videos = []catalog.Video{it.Video}
		case content.Unknown:
			logger.Debug("ignoring content item", "path", job.File, "reason", it.Reason)
			continue
		default:
			continue
		}

		if len(segments) == 0 {
			logger.Debug("dropping declaration outside any group", "path", job.File, "kind", item.Kind())
			continue
		}
		if len(segments) == 1 && len(leaf.Videos) > 0 {
			// A group holds subgroups only, so videos land in a subgroup
			// named after the file.
			groups = append(groups, chain([]string{segments[0], fileStem(job.File)}, leaf))
			continue
		}
		groups = append(groups, chain(segments, leaf))
	}
	return groups
}

// fileStem returns the base name of a content path without its extension.
func fileStem(file string) string {
	base := path.Base(file)
	return strings.TrimSuffix(base, path.Ext(base))
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
