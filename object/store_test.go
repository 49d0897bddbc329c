// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreEmptyBlobRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	hash, err := s.WriteBlob(nil)
	if err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}
	if len(hash) != 64 {
		t.Fatalf("hash length = %d, want 64", len(hash))
	}

	path := filepath.Join(s.Root(), hash[:2], hash[2:])
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("object file missing: %v", err)
	}

	kind, payload, err := s.Read(hash)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if kind != KindBlob {
		t.Fatalf("kind = %v, want blob", kind)
	}
	if len(payload) != 0 {
		t.Fatalf("payload = %q, want empty", payload)
	}
}

func TestStoreWriteIsIdempotent(t *testing.T) {
	s := NewStore(t.TempDir())

	data := []byte("hello world")
	hash1, err := s.WriteBlob(data)
	if err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}

	path := filepath.Join(s.Root(), hash1[:2], hash1[2:])
	info1, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	hash2, err := s.WriteBlob(data)
	if err != nil {
		t.Fatalf("second WriteBlob: %v", err)
	}
	if hash1 != hash2 {
		t.Fatalf("hash changed between writes: %s != %s", hash1, hash2)
	}

	info2, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat after second write: %v", err)
	}
	if info1.ModTime() != info2.ModTime() {
		t.Fatalf("object file was rewritten on second write")
	}
}

func TestStoreDirectoryAndSnapshotRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	blobHash, err := s.WriteBlob([]byte("contents"))
	if err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}

	dir := Directory{Entries: []Entry{{Mode: ModeFile, Name: "f.txt", Hash: blobHash}}}
	dirHash, err := s.WriteDirectory(dir)
	if err != nil {
		t.Fatalf("WriteDirectory: %v", err)
	}

	gotDir, err := s.ReadDirectory(dirHash)
	if err != nil {
		t.Fatalf("ReadDirectory: %v", err)
	}
	if len(gotDir.Entries) != 1 || gotDir.Entries[0].Name != "f.txt" {
		t.Fatalf("unexpected directory: %+v", gotDir)
	}

	snap := Snapshot{Directory: dirHash, Author: "a <a@x>", Time: 1, Context: ContextInitial, Message: "first"}
	snapHash, err := s.WriteSnapshot(snap)
	if err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	gotSnap, err := s.ReadSnapshot(snapHash)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if gotSnap.Directory != dirHash || gotSnap.Message != "first" {
		t.Fatalf("unexpected snapshot: %+v", gotSnap)
	}
}

func TestStoreReadMissingObject(t *testing.T) {
	s := NewStore(t.TempDir())
	_, _, err := s.Read("deadbeef")
	if err == nil {
		t.Fatal("expected error for missing object")
	}
}

func TestStoreReadShortHashIsNotFound(t *testing.T) {
	s := NewStore(t.TempDir())
	_, _, err := s.Read("a")
	if err == nil {
		t.Fatal("expected error for short hash")
	}
}

func TestStoreReadTypeMismatch(t *testing.T) {
	s := NewStore(t.TempDir())
	hash, err := s.WriteBlob([]byte("x"))
	if err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}
	if _, err := s.ReadDirectory(hash); err == nil {
		t.Fatal("expected type mismatch error reading blob as directory")
	}
}

func TestStoreFanOutLayout(t *testing.T) {
	s := NewStore(t.TempDir())
	hash, err := s.WriteBlob([]byte("payload"))
	if err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(s.Root(), hash[:2]))
	if err != nil {
		t.Fatalf("ReadDir fan-out: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != hash[2:] {
		t.Fatalf("unexpected fan-out contents: %+v", entries)
	}
}
