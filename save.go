// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

package jogen

import (
	"time"

	"github.com/jogen-vcs/jogen/identity"
	"github.com/jogen-vcs/jogen/index"
	"github.com/jogen-vcs/jogen/object"
)

// Save indexes the workspace, writes a snapshot object recording it as a
// child of the current HEAD, and advances HEAD to the new snapshot. It
// returns the new snapshot's hash.
func (e *Engine) Save(message string, context object.ContextTag) (string, error) {
	directoryHash, err := index.Capture(e.Store, e.Repo.Root)
	if err != nil {
		return "", err
	}

	var parents []string
	if head, ok, err := e.Refs.ReadHead(); err != nil {
		return "", err
	} else if ok {
		parents = []string{head}
	}

	snap := object.Snapshot{
		Directory: directoryHash,
		Parents:   parents,
		Author:    identity.DefaultAuthor(),
		Time:      time.Now().Unix(),
		Context:   context,
		Message:   message,
	}

	hash, err := e.Store.WriteSnapshot(snap)
	if err != nil {
		return "", err
	}

	if err := e.Refs.UpdateHead(hash); err != nil {
		return "", err
	}

	return hash, nil
}
