// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

// Package object implements jogen's content-addressed object model: the
// binary header envelope, the three object kinds (blob, directory,
// snapshot), BLAKE3 content hashing, and the compressed on-disk store.
//
// # Design
//
// Every object is addressed by a BLAKE3-256 hash taken over its 10-byte
// header followed by its payload. Objects are immutable once written: the
// store never rewrites an existing file, which makes every write
// idempotent and every read safe to run concurrently with other writes.
//
// # Wire Format
//
// The header is fixed at 10 bytes: a format version, a 1-byte kind tag, and
// an 8-byte little-endian payload length. Blob payloads are raw file bytes.
// Directory payloads are a sorted, fixed-layout list of entries. Snapshot
// payloads are UTF-8 text: a small header block of key/value lines, a blank
// line, then a free-form message. See Serialize/Parse on each type for the
// exact byte layout, which is a wire-level contract — changing it
// invalidates every object already written by a prior version.
package object

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/jogen-vcs/jogen/jogenerr"
	"github.com/zeebo/blake3"
)

// Kind identifies which of the three object variants a payload holds.
type Kind uint8

const (
	// KindBlob is a raw file content object.
	KindBlob Kind = 1

	// KindDirectory is a sorted list of named child entries.
	KindDirectory Kind = 2

	// KindSnapshot is a commit: a directory hash, parent hashes, and
	// metadata.
	KindSnapshot Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindBlob:
		return "blob"
	case KindDirectory:
		return "directory"
	case KindSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// FormatVersion is the current object header version. A stored object with
// any other version byte is corrupt as far as this implementation is
// concerned.
const FormatVersion uint8 = 1

// HeaderSize is the fixed size, in bytes, of the object header that
// precedes every payload.
const HeaderSize = 10

// Header is the 10-byte envelope written before every object payload:
// version (1 byte), kind (1 byte), payload size (8 bytes, little-endian).
type Header struct {
	Version uint8
	Kind    Kind
	Size    uint64
}

// Encode renders the header as its fixed 10-byte wire form.
func (h Header) Encode() [HeaderSize]byte {
	var buf [HeaderSize]byte
	buf[0] = h.Version
	buf[1] = byte(h.Kind)
	binary.LittleEndian.PutUint64(buf[2:10], h.Size)
	return buf
}

// DecodeHeader parses the fixed 10-byte header form. It does not validate
// the version or kind; callers check those against the context they expect
// (Store.Read checks the version, and Store.ReadBlob, ReadDirectory and
// ReadSnapshot check the kind).
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, &jogenerr.ObjectCorrupt{Reason: "header too short"}
	}
	return Header{
		Version: b[0],
		Kind:    Kind(b[1]),
		Size:    binary.LittleEndian.Uint64(b[2:10]),
	}, nil
}

// Hash computes the 64-character lowercase hex BLAKE3-256 digest of a
// kind's header concatenated with its payload. This is the sole identity of
// every object in the store: two objects with the same kind and payload
// bytes produce the same hash and share one on-disk file.
func Hash(kind Kind, payload []byte) string {
	header := Header{Version: FormatVersion, Kind: kind, Size: uint64(len(payload))}.Encode()

	h := blake3.New()
	h.Write(header[:])
	h.Write(payload)

	return hex.EncodeToString(h.Sum(nil))
}
