// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

// Package hydrate reconciles a workspace on disk to match a target directory
// object, given the directory object the workspace is already known to
// match.
package hydrate

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jogen-vcs/jogen/jogenerr"
	"github.com/jogen-vcs/jogen/object"
)

// stats tallies the file-level effects of a Hydrate call, for the summary
// log line emitted once the whole tree has been reconciled.
type stats struct {
	created int
	updated int
	removed int
}

// Hydrate mutates the filesystem at currentPath in place so that it matches
// newHash, assuming it currently matches oldHash. The caller is responsible
// for that precondition; Hydrate does not re-verify it.
func Hydrate(store *object.Store, oldHash, newHash, currentPath string) error {
	if oldHash == newHash {
		return nil
	}

	var s stats
	if err := hydrateTree(store, oldHash, newHash, currentPath, &s); err != nil {
		return err
	}

	slog.Info("[jogen] checkout complete", "created", s.created, "updated", s.updated, "removed", s.removed)
	return nil
}

func hydrateTree(store *object.Store, oldHash, newHash, currentPath string, s *stats) error {
	if oldHash == newHash {
		return nil
	}

	var oldDir object.Directory
	if oldHash != "" {
		d, err := store.ReadDirectory(oldHash)
		if err != nil {
			return err
		}
		oldDir = d
	}

	newDir, err := store.ReadDirectory(newHash)
	if err != nil {
		return err
	}

	remaining := make(map[string]object.Entry, len(oldDir.Entries))
	for _, e := range oldDir.Entries {
		remaining[e.Name] = e
	}

	if err := os.MkdirAll(currentPath, 0o755); err != nil {
		return jogenerr.WrapIo("mkdir", currentPath, err)
	}

	for _, newEntry := range newDir.Entries {
		childPath := filepath.Join(currentPath, newEntry.Name)
		oldEntry, existed := remaining[newEntry.Name]
		delete(remaining, newEntry.Name)

		switch {
		case existed && oldEntry.Mode == newEntry.Mode && oldEntry.Hash == newEntry.Hash:
			// Unchanged; nothing to do.

		case existed && oldEntry.Mode == object.ModeDirectory && newEntry.Mode == object.ModeDirectory:
			if err := hydrateTree(store, oldEntry.Hash, newEntry.Hash, childPath, s); err != nil {
				return err
			}

		case existed:
			if err := remove(oldEntry, childPath); err != nil {
				return err
			}
			if newEntry.Mode == object.ModeDirectory {
				if err := hydrateDirectoryFresh(store, newEntry.Hash, childPath, &stats{}); err != nil {
					return err
				}
			} else if err := writeBlob(store, newEntry, childPath); err != nil {
				return err
			}
			s.updated++

		default:
			if err := hydrateFresh(store, newEntry, childPath, s); err != nil {
				return err
			}
		}
	}

	for _, oldEntry := range remaining {
		if err := remove(oldEntry, filepath.Join(currentPath, oldEntry.Name)); err != nil {
			return err
		}
		s.removed++
	}

	return nil
}

// hydrateFresh materializes an entry that has no counterpart on disk yet.
func hydrateFresh(store *object.Store, entry object.Entry, path string, s *stats) error {
	if entry.Mode == object.ModeDirectory {
		return hydrateDirectoryFresh(store, entry.Hash, path, s)
	}
	if err := writeBlob(store, entry, path); err != nil {
		return err
	}
	s.created++
	return nil
}

func hydrateDirectoryFresh(store *object.Store, hash, path string, s *stats) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return jogenerr.WrapIo("mkdir", path, err)
	}

	dir, err := store.ReadDirectory(hash)
	if err != nil {
		return err
	}

	for _, entry := range dir.Entries {
		if err := hydrateFresh(store, entry, filepath.Join(path, entry.Name), s); err != nil {
			return err
		}
	}
	return nil
}

func writeBlob(store *object.Store, entry object.Entry, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return jogenerr.WrapIo("mkdir", filepath.Dir(path), err)
	}

	data, err := store.ReadBlob(entry.Hash)
	if err != nil {
		return err
	}

	mode := os.FileMode(0o644)
	if entry.Mode == object.ModeExecutable {
		mode = 0o755
	}

	if err := os.WriteFile(path, data, mode); err != nil {
		return jogenerr.WrapIo("write", path, err)
	}
	return nil
}

func remove(entry object.Entry, path string) error {
	if entry.Mode == object.ModeDirectory {
		if err := os.RemoveAll(path); err != nil {
			return jogenerr.WrapIo("remove", path, err)
		}
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return jogenerr.WrapIo("remove", path, err)
	}
	return nil
}
