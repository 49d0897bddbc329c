// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

package jogen

import (
	"github.com/jogen-vcs/jogen/hydrate"
	"github.com/jogen-vcs/jogen/index"
	"github.com/jogen-vcs/jogen/jogenerr"
)

// Checkout reconciles the workspace to match the snapshot at targetHash.
// It refuses with ErrDirtyWorkspace if the workspace does not currently
// match HEAD's recorded directory, since the hydrator trusts that
// precondition and a mismatch means local modifications would silently be
// discarded.
func (e *Engine) Checkout(targetHash string) error {
	headHash, ok, err := e.Refs.ReadHead()
	if err != nil {
		return err
	}

	var currentDirectoryHash string
	if ok {
		headSnap, err := e.Store.ReadSnapshot(headHash)
		if err != nil {
			return err
		}
		currentDirectoryHash = headSnap.Directory

		actual, err := index.Capture(e.Store, e.Repo.Root)
		if err != nil {
			return err
		}
		if actual != currentDirectoryHash {
			return jogenerr.ErrDirtyWorkspace
		}
	}

	targetSnap, err := e.Store.ReadSnapshot(targetHash)
	if err != nil {
		return err
	}

	if err := hydrate.Hydrate(e.Store, currentDirectoryHash, targetSnap.Directory, e.Repo.Root); err != nil {
		return err
	}

	return e.Refs.UpdateHead(targetHash)
}
