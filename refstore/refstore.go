// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

// Package refstore reads and writes the reference files that track commit
// history: HEAD and the named tracks under refs/tracks/.
package refstore

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jogen-vcs/jogen/jogenerr"

	"github.com/google/renameio"
)

const (
	headFileName   = "HEAD"
	refsDirName    = "refs"
	tracksDirName  = "tracks"
	symbolicPrefix = "ref: "
)

// Store manages the reference files under a repository's control directory.
type Store struct {
	root string
}

// NewStore returns a Store rooted at the repository's control directory
// (the directory containing HEAD and refs/).
func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) headPath() string {
	return filepath.Join(s.root, headFileName)
}

func (s *Store) refPath(name string) string {
	return filepath.Join(s.root, refsDirName, filepath.FromSlash(name))
}

func (s *Store) trackPath(name string) string {
	return s.refPath(filepath.Join(tracksDirName, name))
}

func (s *Store) tracksDir() string {
	return filepath.Join(s.root, refsDirName, tracksDirName)
}

func readTrimmed(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, jogenerr.WrapIo("read", path, err)
	}
	return strings.TrimRight(string(data), "\n"), true, nil
}

func writeAtomic(path, contents string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return jogenerr.WrapIo("mkdir", filepath.Dir(path), err)
	}
	if err := renameio.WriteFile(path, []byte(contents+"\n"), 0o644); err != nil {
		return jogenerr.WrapIo("write", path, err)
	}
	return nil
}

// ReadHead returns the hash HEAD currently resolves to. If HEAD is symbolic
// ("ref: refs/tracks/<name>"), the named track is resolved (one level of
// indirection). The second return value is false if HEAD is absent.
func (s *Store) ReadHead() (string, bool, error) {
	raw, ok, err := readTrimmed(s.headPath())
	if err != nil || !ok {
		return "", ok, err
	}

	if track, isSymbolic := parseSymbolic(raw); isSymbolic {
		hash, ok, err := readTrimmed(s.trackPath(track))
		if err != nil {
			return "", false, err
		}
		return hash, ok, nil
	}

	return raw, true, nil
}

// UpdateHead writes hash to the reference HEAD currently points to: the
// named track if HEAD is symbolic, or HEAD directly if it is absent or
// already a direct hash.
func (s *Store) UpdateHead(hash string) error {
	raw, ok, err := readTrimmed(s.headPath())
	if err != nil {
		return err
	}

	if ok {
		if track, isSymbolic := parseSymbolic(raw); isSymbolic {
			return writeAtomic(s.trackPath(track), hash)
		}
	}

	return writeAtomic(s.headPath(), hash)
}

// ReadRef returns the trimmed contents of refs/<name>, or false if absent.
func (s *Store) ReadRef(name string) (string, bool, error) {
	return readTrimmed(s.refPath(name))
}

// CreateTrack creates refs/tracks/<name> pointing at hash, failing with
// ErrAlreadyExists if the track is already present.
func (s *Store) CreateTrack(name, hash string) error {
	path := s.trackPath(name)
	if _, err := os.Stat(path); err == nil {
		return jogenerr.ErrAlreadyExists
	} else if !os.IsNotExist(err) {
		return jogenerr.WrapIo("stat", path, err)
	}
	return writeAtomic(path, hash)
}

// ListTracks returns the sorted, ASCII-ascending names of tracks under
// refs/tracks/, excluding dot-prefixed entries.
func (s *Store) ListTracks() ([]string, error) {
	entries, err := os.ReadDir(s.tracksDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, jogenerr.WrapIo("readdir", s.tracksDir(), err)
	}

	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// CurrentTrack returns the track name HEAD symbolically points to, or false
// if HEAD is absent or a direct hash.
func (s *Store) CurrentTrack() (string, bool, error) {
	raw, ok, err := readTrimmed(s.headPath())
	if err != nil || !ok {
		return "", false, err
	}
	track, isSymbolic := parseSymbolic(raw)
	return track, isSymbolic, nil
}

// SetHeadToTrack points HEAD at refs/tracks/<name> symbolically.
func (s *Store) SetHeadToTrack(name string) error {
	return writeAtomic(s.headPath(), symbolicPrefix+refsDirName+"/"+tracksDirName+"/"+name)
}

func parseSymbolic(raw string) (track string, ok bool) {
	const prefix = symbolicPrefix + refsDirName + "/" + tracksDirName + "/"
	if !strings.HasPrefix(raw, prefix) {
		return "", false
	}
	return raw[len(prefix):], true
}
