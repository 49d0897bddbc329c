// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

package jogen

import "github.com/jogen-vcs/jogen/object"

// LogEntry pairs a snapshot with its own hash, since Snapshot itself does
// not carry its content address.
type LogEntry struct {
	Hash     string
	Snapshot object.Snapshot
}

// Log walks the first-parent chain starting at startHash, yielding at most
// limit entries oldest-parent-last. A limit of 0 or less means unbounded;
// traversal stops when a snapshot has no parents.
func Log(store *object.Store, startHash string, limit int) ([]LogEntry, error) {
	var entries []LogEntry

	hash := startHash
	for hash != "" {
		if limit > 0 && len(entries) >= limit {
			break
		}

		snap, err := store.ReadSnapshot(hash)
		if err != nil {
			return nil, err
		}
		entries = append(entries, LogEntry{Hash: hash, Snapshot: snap})

		if len(snap.Parents) == 0 {
			break
		}
		hash = snap.Parents[0]
	}

	return entries, nil
}

// Log walks history starting at the engine's current HEAD.
func (e *Engine) Log(limit int) ([]LogEntry, error) {
	head, ok, err := e.Refs.ReadHead()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return Log(e.Store, head, limit)
}
