// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

// Package repo locates and bootstraps Jogen repositories on disk.
//
// A repository is rooted at a directory containing a control directory named
// ControlDirName, mirroring the way Git roots itself on ".git": Init creates
// that directory (refusing if one already exists) and Locate ascends parent
// directories from a working directory until it finds one.
package repo

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jogen-vcs/jogen/config"
	"github.com/jogen-vcs/jogen/jogenerr"
)

// ControlDirName is the name of the per-repository control directory,
// analogous to ".git". The indexer skips any path whose final component
// equals this name.
const ControlDirName = ".jogen"

// ObjectsDirName is the control directory's object store subdirectory.
const ObjectsDirName = "objects"

// Repo is a located, bootstrapped repository rooted at Root.
type Repo struct {
	// Root is the working tree root (the directory containing the control
	// directory), not the control directory itself.
	Root string
}

// ControlDir returns the repository's control directory path.
func (r Repo) ControlDir() string { return filepath.Join(r.Root, ControlDirName) }

// ObjectsDir returns the repository's object store root.
func (r Repo) ObjectsDir() string { return filepath.Join(r.ControlDir(), ObjectsDirName) }

// ConfigPath returns the repository's config.toml path.
func (r Repo) ConfigPath() string { return filepath.Join(r.ControlDir(), "config.toml") }

// Init bootstraps a new repository rooted at root, refusing if a control
// directory is already present.
func Init(root string) (Repo, error) {
	controlDir := filepath.Join(root, ControlDirName)

	if _, err := os.Stat(controlDir); err == nil {
		return Repo{}, &jogenerr.ProjectAlreadyExists{Path: controlDir}
	} else if !os.IsNotExist(err) {
		return Repo{}, jogenerr.WrapIo("stat", controlDir, err)
	}

	objectsDir := filepath.Join(controlDir, ObjectsDirName)
	if err := os.MkdirAll(objectsDir, 0o755); err != nil {
		return Repo{}, jogenerr.WrapIo("mkdir", objectsDir, err)
	}

	r := Repo{Root: root}
	if err := config.Save(r.ConfigPath(), config.New()); err != nil {
		return Repo{}, err
	}

	slog.Info("[jogen] repository initialized", "root", root)
	return r, nil
}

// Locate ascends parent directories starting at dir until it finds one
// containing a control directory, returning the repository rooted there.
func Locate(dir string) (Repo, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Repo{}, fmt.Errorf("jogen: resolve %s: %w", dir, err)
	}

	current := abs
	for {
		candidate := filepath.Join(current, ControlDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return Repo{Root: current}, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return Repo{}, jogenerr.ErrProjectRootNotFound
		}
		current = parent
	}
}
