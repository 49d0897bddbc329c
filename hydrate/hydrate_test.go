// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

package hydrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jogen-vcs/jogen/index"
	"github.com/jogen-vcs/jogen/object"
)

func buildTree(t *testing.T, store *object.Store, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	hash, err := index.Capture(store, root)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	return hash
}

func TestHydrateAddRemoveModify(t *testing.T) {
	store := object.NewStore(t.TempDir())

	oldHash := buildTree(t, store, map[string]string{"a": "one", "b": "two"})
	newHash := buildTree(t, store, map[string]string{"a": "one", "c": "three"})

	workspace := t.TempDir()
	if err := Hydrate(store, "", oldHash, workspace); err != nil {
		t.Fatalf("initial hydrate: %v", err)
	}
	if err := Hydrate(store, oldHash, newHash, workspace); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}

	rehashed, err := index.Capture(store, workspace)
	if err != nil {
		t.Fatalf("re-Capture: %v", err)
	}
	if rehashed != newHash {
		t.Fatalf("rehashed workspace = %s, want %s", rehashed, newHash)
	}

	if _, err := os.Stat(filepath.Join(workspace, "b")); !os.IsNotExist(err) {
		t.Fatalf("expected b to be removed, stat err = %v", err)
	}
	aContent, err := os.ReadFile(filepath.Join(workspace, "a"))
	if err != nil || string(aContent) != "one" {
		t.Fatalf("a = %q, err %v, want \"one\"", aContent, err)
	}
	cContent, err := os.ReadFile(filepath.Join(workspace, "c"))
	if err != nil || string(cContent) != "three" {
		t.Fatalf("c = %q, err %v, want \"three\"", cContent, err)
	}
}

func TestHydrateNestedDirectoryReplacedByFile(t *testing.T) {
	store := object.NewStore(t.TempDir())

	oldHash := buildTree(t, store, map[string]string{"x/y": "nested"})
	newHash := buildTree(t, store, map[string]string{"x": "flat"})

	workspace := t.TempDir()
	if err := Hydrate(store, "", oldHash, workspace); err != nil {
		t.Fatalf("initial hydrate: %v", err)
	}
	if err := Hydrate(store, oldHash, newHash, workspace); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}

	info, err := os.Stat(filepath.Join(workspace, "x"))
	if err != nil {
		t.Fatalf("stat x: %v", err)
	}
	if info.IsDir() {
		t.Fatal("expected x to be a regular file after hydrate")
	}
}

func TestHydrateNoOpWhenHashesMatch(t *testing.T) {
	store := object.NewStore(t.TempDir())
	hash := buildTree(t, store, map[string]string{"a": "one"})

	workspace := t.TempDir()
	if err := Hydrate(store, "", hash, workspace); err != nil {
		t.Fatalf("initial hydrate: %v", err)
	}
	if err := Hydrate(store, hash, hash, workspace); err != nil {
		t.Fatalf("Hydrate no-op: %v", err)
	}

	rehashed, err := index.Capture(store, workspace)
	if err != nil {
		t.Fatalf("re-Capture: %v", err)
	}
	if rehashed != hash {
		t.Fatalf("rehashed = %s, want %s", rehashed, hash)
	}
}

func TestHydrateExecutableBit(t *testing.T) {
	store := object.NewStore(t.TempDir())

	blobHash, err := store.WriteBlob([]byte("#!/bin/sh\n"))
	if err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}
	dirHash, err := store.WriteDirectory(object.Directory{
		Entries: []object.Entry{{Mode: object.ModeExecutable, Name: "run.sh", Hash: blobHash}},
	})
	if err != nil {
		t.Fatalf("WriteDirectory: %v", err)
	}

	workspace := t.TempDir()
	if err := Hydrate(store, "", dirHash, workspace); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}

	info, err := os.Stat(filepath.Join(workspace, "run.sh"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Fatalf("expected executable bit set, got mode %v", info.Mode())
	}
}
