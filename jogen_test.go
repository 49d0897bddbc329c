// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

package jogen

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jogen-vcs/jogen/jogenerr"
	"github.com/jogen-vcs/jogen/object"
	"github.com/jogen-vcs/jogen/repo"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestInitRefusesIfAlreadyInitialized(t *testing.T) {
	root := t.TempDir()
	if _, err := Init(root); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := Init(root); err == nil {
		t.Fatal("expected error on second Init")
	}
}

func TestOpenLocatesFromSubdirectory(t *testing.T) {
	root := t.TempDir()
	if _, err := Init(root); err != nil {
		t.Fatalf("Init: %v", err)
	}

	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	e, err := Open(sub)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if e.Repo.Root != root {
		t.Fatalf("Repo.Root = %s, want %s", e.Repo.Root, root)
	}
}

func TestOpenFailsOutsideRepository(t *testing.T) {
	if _, err := Open(t.TempDir()); !errors.Is(err, jogenerr.ErrProjectRootNotFound) {
		t.Fatalf("Open = %v, want ErrProjectRootNotFound", err)
	}
}

func TestSaveThenLog(t *testing.T) {
	root := t.TempDir()
	e, err := Init(root)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	writeFile(t, filepath.Join(root, "a.txt"), "one")
	firstHash, err := e.Save("initial commit", object.ContextInitial)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	writeFile(t, filepath.Join(root, "b.txt"), "two")
	secondHash, err := e.Save("add b", object.ContextFeature)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := e.Log(0)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Log returned %d entries, want 2", len(entries))
	}
	if entries[0].Hash != secondHash {
		t.Fatalf("entries[0].Hash = %s, want %s", entries[0].Hash, secondHash)
	}
	if entries[1].Hash != firstHash {
		t.Fatalf("entries[1].Hash = %s, want %s", entries[1].Hash, firstHash)
	}
	if len(entries[1].Snapshot.Parents) != 0 {
		t.Fatalf("expected first snapshot to have no parents, got %v", entries[1].Snapshot.Parents)
	}
}

func TestStatusReportsAddedRemovedModified(t *testing.T) {
	root := t.TempDir()
	e, err := Init(root)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	writeFile(t, filepath.Join(root, "a.txt"), "one")
	writeFile(t, filepath.Join(root, "b.txt"), "two")
	if _, err := e.Save("first", object.ContextInitial); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := os.Remove(filepath.Join(root, "b.txt")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	writeFile(t, filepath.Join(root, "a.txt"), "one-modified")
	writeFile(t, filepath.Join(root, "c.txt"), "three")

	diff, err := e.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if diff.IsEmpty() {
		t.Fatal("expected non-empty diff")
	}
	if len(diff.Added) != 1 || diff.Added[0] != "c.txt" {
		t.Fatalf("Added = %v, want [c.txt]", diff.Added)
	}
	if len(diff.Removed) != 1 || diff.Removed[0] != "b.txt" {
		t.Fatalf("Removed = %v, want [b.txt]", diff.Removed)
	}
	if len(diff.Modified) != 1 || diff.Modified[0] != "a.txt" {
		t.Fatalf("Modified = %v, want [a.txt]", diff.Modified)
	}
}

func TestCheckoutRoundTrip(t *testing.T) {
	root := t.TempDir()
	e, err := Init(root)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	writeFile(t, filepath.Join(root, "a.txt"), "one")
	firstHash, err := e.Save("first", object.ContextInitial)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	writeFile(t, filepath.Join(root, "a.txt"), "two")
	if _, err := e.Save("second", object.ContextFeature); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := e.Checkout(firstHash); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "a.txt"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "one" {
		t.Fatalf("a.txt = %q, want %q", data, "one")
	}

	diff, err := e.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !diff.IsEmpty() {
		t.Fatalf("expected clean workspace after checkout, got %+v", diff)
	}
}

func TestCheckoutRefusesDirtyWorkspace(t *testing.T) {
	root := t.TempDir()
	e, err := Init(root)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	writeFile(t, filepath.Join(root, "a.txt"), "one")
	firstHash, err := e.Save("first", object.ContextInitial)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := e.Save("second", object.ContextFeature); err != nil {
		t.Fatalf("Save: %v", err)
	}

	writeFile(t, filepath.Join(root, "a.txt"), "dirty, uncommitted change")

	err = e.Checkout(firstHash)
	if !errors.Is(err, jogenerr.ErrDirtyWorkspace) {
		t.Fatalf("Checkout = %v, want ErrDirtyWorkspace", err)
	}
}

func TestTrackCreationAndListing(t *testing.T) {
	root := t.TempDir()
	e, err := Init(root)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	writeFile(t, filepath.Join(root, "a.txt"), "one")
	hash, err := e.Save("first", object.ContextInitial)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := e.Refs.CreateTrack("main", hash); err != nil {
		t.Fatalf("CreateTrack: %v", err)
	}

	names, err := e.Refs.ListTracks()
	if err != nil {
		t.Fatalf("ListTracks: %v", err)
	}
	if len(names) != 1 || names[0] != "main" {
		t.Fatalf("ListTracks = %v, want [main]", names)
	}
}

func TestRepoObjectsDirLayout(t *testing.T) {
	root := t.TempDir()
	e, err := Init(root)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	wantObjects := filepath.Join(root, repo.ControlDirName, "objects")
	if e.Repo.ObjectsDir() != wantObjects {
		t.Fatalf("ObjectsDir = %s, want %s", e.Repo.ObjectsDir(), wantObjects)
	}
	if _, err := os.Stat(wantObjects); err != nil {
		t.Fatalf("objects dir missing: %v", err)
	}
}
