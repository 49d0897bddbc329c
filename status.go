// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

package jogen

import (
	"path/filepath"

	"github.com/jogen-vcs/jogen/index"
	"github.com/jogen-vcs/jogen/object"
)

// Diff lists the paths that differ between two directory-object trees.
type Diff struct {
	Added    []string
	Removed  []string
	Modified []string
}

// IsEmpty reports whether the diff contains no changes.
func (d Diff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Modified) == 0
}

// Status re-indexes the workspace and diffs its root hash against HEAD's
// recorded directory, without mutating the filesystem. If HEAD is absent,
// every file in the workspace is reported as added.
func (e *Engine) Status() (Diff, error) {
	workspaceHash, err := index.Capture(e.Store, e.Repo.Root)
	if err != nil {
		return Diff{}, err
	}

	var headDirectoryHash string
	if head, ok, err := e.Refs.ReadHead(); err != nil {
		return Diff{}, err
	} else if ok {
		headSnap, err := e.Store.ReadSnapshot(head)
		if err != nil {
			return Diff{}, err
		}
		headDirectoryHash = headSnap.Directory
	}

	return diffTrees(e.Store, headDirectoryHash, workspaceHash)
}

// diffTrees compares two directory-object hashes and reports the file
// paths added, removed, or modified between them.
func diffTrees(store *object.Store, oldHash, newHash string) (Diff, error) {
	var d Diff
	if oldHash == newHash {
		return d, nil
	}

	oldPaths, err := walkFiles(store, oldHash, "")
	if err != nil {
		return Diff{}, err
	}
	newPaths, err := walkFiles(store, newHash, "")
	if err != nil {
		return Diff{}, err
	}

	for path, hash := range newPaths {
		if oldHashValue, existed := oldPaths[path]; !existed {
			d.Added = append(d.Added, path)
		} else if oldHashValue != hash {
			d.Modified = append(d.Modified, path)
		}
	}
	for path := range oldPaths {
		if _, existed := newPaths[path]; !existed {
			d.Removed = append(d.Removed, path)
		}
	}

	return d, nil
}

// walkFiles returns a map from relative path to blob hash for every
// non-directory entry reachable from the directory object at hash. An
// empty hash (no tree at all) yields an empty map.
func walkFiles(store *object.Store, hash, prefix string) (map[string]string, error) {
	paths := make(map[string]string)
	if hash == "" {
		return paths, nil
	}

	dir, err := store.ReadDirectory(hash)
	if err != nil {
		return nil, err
	}

	for _, entry := range dir.Entries {
		path := entry.Name
		if prefix != "" {
			path = filepath.Join(prefix, entry.Name)
		}

		if entry.Mode == object.ModeDirectory {
			children, err := walkFiles(store, entry.Hash, path)
			if err != nil {
				return nil, err
			}
			for p, h := range children {
				paths[p] = h
			}
			continue
		}

		paths[path] = entry.Hash
	}

	return paths, nil
}
