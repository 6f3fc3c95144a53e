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

package loader

import (
	"strings"

	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/manifest"
)

// Tree is the skeleton built from a normalized manifest.
type Tree struct {
	// Groups holds one node per folder segment, in manifest order, with
	// no videos yet.
	Groups []catalog.Group

	// Files maps a navigation path to the content files registered
	// against it. The empty path collects files directly under the root.
	Files map[string][]string

	// Paths lists the navigation paths of Files in first-registration
	// order.
	Paths []string

	// Jobs lists every content file with its navigation path, in manifest
	// order.
	Jobs []Job
}

// Job is one content file to fetch.
type Job struct {
	NavPath string
	File    string
}

// BuildTree converts normalized entries into a skeleton tree.
//
// A file entry registers against the segments that contain it, a folder
// entry against all of its segments. The first segment names a group and
// each further segment a subgroup below it. A manifest name overrides the
// display name of the deepest node the entry touches.
func BuildTree(entries []manifest.Entry, root string) Tree {
	root = manifest.NormalizeRoot(root)
	tree := Tree{Files: make(map[string][]string)}

	var chains [][]catalog.Group
	seen := make(map[Job]bool)

	for _, e := range entries {
		segments := catalog.SplitPath(strings.TrimPrefix(e.Path, root))
		if e.IsFile() {
			if len(segments) == 0 {
				continue
			}
			segments = segments[:len(segments)-1]
		}

		if len(segments) > 0 {
			chains = append(chains, []catalog.Group{chain(segments, catalog.Subgroup{ViewName: e.Name})})
		}
		if !e.IsFile() {
			continue
		}

		job := Job{NavPath: strings.Join(segments, "/"), File: e.Path}
		if seen[job] {
			continue
		}
		seen[job] = true

		if _, ok := tree.Files[job.NavPath]; !ok {
			tree.Paths = append(tree.Paths, job.NavPath)
		}
		tree.Files[job.NavPath] = append(tree.Files[job.NavPath], job.File)
		tree.Jobs = append(tree.Jobs, job)
	}

	tree.Groups = catalog.MergeGroups(chains...)
	return tree
}

// chain wraps leaf in the nodes named by segments. The leaf takes the
// last segment as its name; with a single segment the leaf becomes the
// group itself and only its subgroups and display name survive.
func chain(segments []string, leaf catalog.Subgroup) catalog.Group {
	if len(segments) == 1 {
		return catalog.Group{
			Name:      segments[0],
			ViewName:  leaf.ViewName,
			Subgroups: leaf.Subgroups,
		}
	}

	node := leaf
	node.Name = segments[len(segments)-1]
	for i := len(segments) - 2; i >= 1; i-- {
		node = catalog.Subgroup{Name: segments[i], Subgroups: []catalog.Subgroup{node}}
	}
	return catalog.Group{Name: segments[0], Subgroups: []catalog.Subgroup{node}}
}
