// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jogen-vcs/jogen/jogenerr"

	"github.com/google/renameio"
	"github.com/klauspost/compress/zstd"
)

// Store is the on-disk, content-addressed object store. It is rooted at a
// directory (conventionally <repo>/.jogen/objects) and fans objects out
// into two-character subdirectories keyed by the first two hex digits of
// their hash, the way the rest of the example pack's blob stores do.
//
// A Store value wraps only its root path, so it is safe to share across
// goroutines by value or pointer: writes are atomic (temp file + rename)
// and never mutate an existing object file.
type Store struct {
	root string
}

// NewStore returns a Store rooted at the given objects directory. The
// directory is not created here; Write creates fan-out subdirectories
// lazily as needed, and repo.Init is responsible for the top-level
// directory's initial creation.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }

func (s *Store) path(hash string) (string, error) {
	if len(hash) < 2 {
		return "", &jogenerr.ObjectNotFound{Hash: hash}
	}
	return filepath.Join(s.root, hash[:2], hash[2:]), nil
}

// Has reports whether an object with the given hash is already present.
func (s *Store) Has(hash string) bool {
	path, err := s.path(hash)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Write stores payload under the given kind and returns its content hash.
// If an object with that hash already exists, the write is skipped
// entirely (the store is write-once by hash) and the existing hash is
// returned. Otherwise the header-prefixed payload is streamed through a
// Zstandard encoder into a temp file in the fan-out subdirectory and
// atomically renamed into place, so a concurrent reader only ever observes
// a complete, decompressible file or nothing at all.
func (s *Store) Write(kind Kind, payload []byte) (string, error) {
	hash := Hash(kind, payload)

	path, err := s.path(hash)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err == nil {
		slog.Debug("[jogen] object already present, skipping write", "hash", hash, "kind", kind)
		return hash, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", jogenerr.WrapIo("mkdir", dir, err)
	}

	pending, err := renameio.TempFile(dir, path)
	if err != nil {
		return "", jogenerr.WrapIo("create temp file for", path, err)
	}
	defer pending.Cleanup()

	zw, err := zstd.NewWriter(pending)
	if err != nil {
		return "", fmt.Errorf("jogen: create zstd encoder: %w", err)
	}

	header := Header{Version: FormatVersion, Kind: kind, Size: uint64(len(payload))}.Encode()
	if _, err := zw.Write(header[:]); err != nil {
		zw.Close()
		return "", jogenerr.WrapIo("write", path, err)
	}
	if _, err := zw.Write(payload); err != nil {
		zw.Close()
		return "", jogenerr.WrapIo("write", path, err)
	}
	if err := zw.Close(); err != nil {
		return "", jogenerr.WrapIo("finalize compression for", path, err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return "", jogenerr.WrapIo("rename into place", path, err)
	}

	return hash, nil
}

// Read retrieves an object by hash, returning its kind and raw payload.
func (s *Store) Read(hash string) (Kind, []byte, error) {
	path, err := s.path(hash)
	if err != nil {
		return 0, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil, &jogenerr.ObjectNotFound{Hash: hash}
		}
		return 0, nil, jogenerr.WrapIo("open", path, err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return 0, nil, &jogenerr.ObjectCorrupt{Hash: hash, Reason: fmt.Sprintf("not a zstd frame: %v", err)}
	}
	defer zr.Close()

	plaintext, err := io.ReadAll(zr)
	if err != nil {
		return 0, nil, &jogenerr.ObjectCorrupt{Hash: hash, Reason: fmt.Sprintf("decompress: %v", err)}
	}

	if len(plaintext) < HeaderSize {
		return 0, nil, &jogenerr.ObjectCorrupt{Hash: hash, Reason: "header too short"}
	}

	header, err := DecodeHeader(plaintext[:HeaderSize])
	if err != nil {
		return 0, nil, &jogenerr.ObjectCorrupt{Hash: hash, Reason: err.Error()}
	}
	if header.Version != FormatVersion {
		return 0, nil, &jogenerr.ObjectCorrupt{Hash: hash, Reason: "unsupported version"}
	}

	payload := plaintext[HeaderSize:]
	if uint64(len(payload)) != header.Size {
		return 0, nil, &jogenerr.ObjectCorrupt{Hash: hash, Reason: "size mismatch"}
	}

	return header.Kind, payload, nil
}

// WriteBlob stores raw file content verbatim and returns its hash.
func (s *Store) WriteBlob(data []byte) (string, error) {
	return s.Write(KindBlob, data)
}

// ReadBlob reads back a blob's raw content, failing if the hash names an
// object of a different kind.
func (s *Store) ReadBlob(hash string) ([]byte, error) {
	kind, payload, err := s.Read(hash)
	if err != nil {
		return nil, err
	}
	if kind != KindBlob {
		return nil, &jogenerr.ObjectCorrupt{Hash: hash, Reason: fmt.Sprintf("expected blob, got %s", kind)}
	}
	return payload, nil
}

// WriteDirectory serializes and stores a Directory object.
func (s *Store) WriteDirectory(d Directory) (string, error) {
	payload, err := d.Serialize()
	if err != nil {
		return "", err
	}
	return s.Write(KindDirectory, payload)
}

// ReadDirectory reads back and parses a Directory object.
func (s *Store) ReadDirectory(hash string) (Directory, error) {
	kind, payload, err := s.Read(hash)
	if err != nil {
		return Directory{}, err
	}
	if kind != KindDirectory {
		return Directory{}, &jogenerr.ObjectCorrupt{Hash: hash, Reason: fmt.Sprintf("expected directory, got %s", kind)}
	}
	return ParseDirectory(payload)
}

// WriteSnapshot serializes and stores a Snapshot object.
func (s *Store) WriteSnapshot(snap Snapshot) (string, error) {
	return s.Write(KindSnapshot, snap.Serialize())
}

// ReadSnapshot reads back and parses a Snapshot object.
func (s *Store) ReadSnapshot(hash string) (Snapshot, error) {
	kind, payload, err := s.Read(hash)
	if err != nil {
		return Snapshot{}, err
	}
	if kind != KindSnapshot {
		return Snapshot{}, &jogenerr.ObjectCorrupt{Hash: hash, Reason: fmt.Sprintf("expected snapshot, got %s", kind)}
	}
	return ParseSnapshot(payload)
}
