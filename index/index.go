// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

// Package index walks a workspace and writes the blob and directory objects
// that represent it, producing the hash of its root directory object.
package index

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/jogen-vcs/jogen/jogenerr"
	"github.com/jogen-vcs/jogen/object"
	"github.com/jogen-vcs/jogen/repo"

	"golang.org/x/sync/errgroup"
)

// Capture indexes the directory at path, depth-first and post-order, and
// returns the hash of the directory object representing its recursive
// contents. path itself must be a directory; Capture returns an error for
// anything else (callers indexing a single file should write it as a blob
// directly via the object store).
func Capture(root *object.Store, path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return "", jogenerr.WrapIo("lstat", path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("jogen: index root %s is not a directory", path)
	}
	return indexDirectory(root, path)
}

// skip is returned by indexPath for entries the indexer omits entirely:
// the control directory, and anything that is neither a regular file nor a
// directory (sockets, devices, symlinks).
const skip = ""

// indexPath indexes a single filesystem entry, dispatching on its type. It
// returns skip (the empty string) for paths that contribute nothing to the
// parent directory's entry list.
func indexPath(store *object.Store, path string) (string, error) {
	if filepath.Base(path) == repo.ControlDirName {
		return skip, nil
	}

	info, err := os.Lstat(path)
	if err != nil {
		return skip, jogenerr.WrapIo("lstat", path, err)
	}

	switch {
	case info.Mode().IsRegular():
		return indexFile(store, path)
	case info.IsDir():
		return indexDirectory(store, path)
	default:
		return skip, nil
	}
}

func indexFile(store *object.Store, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return skip, jogenerr.WrapIo("read", path, err)
	}
	hash, err := store.WriteBlob(data)
	if err != nil {
		return skip, err
	}
	return hash, nil
}

func indexDirectory(store *object.Store, path string) (string, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return skip, jogenerr.WrapIo("readdir", path, err)
	}

	hashes := make([]string, len(dirEntries))
	kinds := make([]bool, len(dirEntries)) // true => directory

	var g errgroup.Group
	g.SetLimit(max(1, runtime.GOMAXPROCS(0)))

	for i, de := range dirEntries {
		i, de := i, de
		kinds[i] = de.IsDir()
		g.Go(func() error {
			hash, err := indexPath(store, filepath.Join(path, de.Name()))
			if err != nil {
				return err
			}
			hashes[i] = hash
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return skip, err
	}

	entries := make([]object.Entry, 0, len(dirEntries))
	for i, de := range dirEntries {
		if hashes[i] == skip {
			continue
		}
		mode := object.ModeFile
		if kinds[i] {
			mode = object.ModeDirectory
		}
		entries = append(entries, object.Entry{Mode: mode, Name: de.Name(), Hash: hashes[i]})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	hash, err := store.WriteDirectory(object.Directory{Entries: entries})
	if err != nil {
		return skip, err
	}
	return hash, nil
}
