// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jogen-vcs/jogen/jogenerr"
)

// EntryMode is the compact in-memory tag for a directory entry's type. The
// numeric values mirror the source implementation's octal tags (regular
// file, executable, directory) but the authoritative, bit-stable form is
// the ASCII wire encoding produced by EntryMode.wire.
type EntryMode uint8

const (
	// ModeFile is a regular, non-executable file.
	ModeFile EntryMode = 0o1

	// ModeExecutable is a regular file with the executable bit set.
	ModeExecutable EntryMode = 0o2

	// ModeDirectory is a subdirectory.
	ModeDirectory EntryMode = 0o4
)

const (
	wireModeFile       = "100644"
	wireModeExecutable = "100755"
	wireModeDirectory  = "040000"
)

func (m EntryMode) String() string {
	switch m {
	case ModeFile:
		return "file"
	case ModeExecutable:
		return "executable"
	case ModeDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

func (m EntryMode) wire() (string, error) {
	switch m {
	case ModeFile:
		return wireModeFile, nil
	case ModeExecutable:
		return wireModeExecutable, nil
	case ModeDirectory:
		return wireModeDirectory, nil
	default:
		return "", fmt.Errorf("invalid entry mode %d", m)
	}
}

func modeFromWire(raw string) (EntryMode, error) {
	switch raw {
	case wireModeFile:
		return ModeFile, nil
	case wireModeExecutable:
		return ModeExecutable, nil
	case wireModeDirectory:
		return ModeDirectory, nil
	default:
		return 0, &jogenerr.InvalidEntryMode{Raw: raw}
	}
}

// Entry is a single named child of a Directory: its type, its name, and the
// hash of the object it references (a blob for files/executables, another
// directory object for subdirectories).
type Entry struct {
	Mode EntryMode
	Name string
	Hash string // 64-character lowercase hex
}

// Directory is the in-memory form of a directory object: an unordered set
// of entries. Serialize sorts by name before emission so that two
// Directory values with the same entries always produce the same bytes
// regardless of append order.
type Directory struct {
	Entries []Entry
}

// Serialize renders the directory in its canonical, bit-exact wire form:
// for each entry sorted by name, `ASCII-mode SP name NUL hash-32-raw-bytes`.
func (d Directory) Serialize() ([]byte, error) {
	entries := append([]Entry(nil), d.Entries...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	var buf strings.Builder
	for _, e := range entries {
		if !utf8.ValidString(e.Name) {
			return nil, &jogenerr.ObjectCorrupt{Reason: fmt.Sprintf("non-UTF-8 entry name %q", e.Name)}
		}
		if strings.ContainsRune(e.Name, 0) || strings.ContainsRune(e.Name, '/') {
			return nil, &jogenerr.ObjectCorrupt{Reason: fmt.Sprintf("invalid entry name %q", e.Name)}
		}

		wireMode, err := e.Mode.wire()
		if err != nil {
			return nil, &jogenerr.ObjectCorrupt{Reason: err.Error()}
		}

		raw, err := hex.DecodeString(e.Hash)
		if err != nil || len(raw) != 32 {
			return nil, &jogenerr.ObjectCorrupt{Reason: fmt.Sprintf("invalid entry hash %q", e.Hash)}
		}

		buf.WriteString(wireMode)
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		buf.Write(raw)
	}

	return []byte(buf.String()), nil
}

// ParseDirectory parses a directory payload produced by Serialize. The
// returned entries are in the canonical sort-by-name order the payload was
// written in, so a round trip of parse-then-serialize reproduces the
// original bytes exactly.
func ParseDirectory(payload []byte) (Directory, error) {
	var entries []Entry

	for len(payload) > 0 {
		sp := bytes.IndexByte(payload, ' ')
		if sp < 0 {
			return Directory{}, &jogenerr.ObjectCorrupt{Reason: "directory entry missing mode separator"}
		}
		mode, err := modeFromWire(string(payload[:sp]))
		if err != nil {
			return Directory{}, err
		}
		payload = payload[sp+1:]

		nul := bytes.IndexByte(payload, 0)
		if nul < 0 {
			return Directory{}, &jogenerr.ObjectCorrupt{Reason: "directory entry missing name terminator"}
		}
		name := string(payload[:nul])
		if !utf8.Valid(payload[:nul]) {
			return Directory{}, &jogenerr.ObjectCorrupt{Reason: "non-UTF-8 entry name"}
		}
		payload = payload[nul+1:]

		if len(payload) < 32 {
			return Directory{}, &jogenerr.ObjectCorrupt{Reason: "directory entry truncated hash"}
		}
		hash := hex.EncodeToString(payload[:32])
		payload = payload[32:]

		entries = append(entries, Entry{Mode: mode, Name: name, Hash: hash})
	}

	return Directory{Entries: entries}, nil
}
