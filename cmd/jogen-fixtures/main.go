// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jogen-vcs/jogen/index"
	"github.com/jogen-vcs/jogen/object"
)

// Fixture captures a deterministic workspace capture as JSON, so other
// language implementations of the object model can check their own
// serialization against a known-good root hash.
type Fixture struct {
	Name        string            `json:"name"`
	RootHashHex string            `json:"root_hash_hex"`
	Objects     map[string]string `json:"objects"` // hash -> hex-encoded envelope (header + payload)
	Notes       string            `json:"notes,omitempty"`
}

func main() {
	outDir := flag.String("out", "testdata/fixtures", "output directory for fixtures")
	flag.Parse()

	tmpWorkspace, err := os.MkdirTemp("", "jogen-fixtures-workspace")
	if err != nil {
		fmt.Fprintf(os.Stderr, "tmpdir: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(tmpWorkspace)

	if err := seedWorkspace(tmpWorkspace); err != nil {
		fmt.Fprintf(os.Stderr, "seed workspace: %v\n", err)
		os.Exit(1)
	}

	storeDir, err := os.MkdirTemp("", "jogen-fixtures-objects")
	if err != nil {
		fmt.Fprintf(os.Stderr, "tmpdir: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(storeDir)

	store := object.NewStore(storeDir)
	rootHash, err := index.Capture(store, tmpWorkspace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "capture: %v\n", err)
		os.Exit(1)
	}

	objects, err := collectObjects(store, storeDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "collect objects: %v\n", err)
		os.Exit(1)
	}

	fixture := Fixture{
		Name:        "basic_workspace",
		RootHashHex: rootHash,
		Objects:     objects,
		Notes:       "Generated from a deterministic synthetic workspace.",
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(1)
	}

	path := filepath.Join(*outDir, fixture.Name+".json")
	data, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal %s: %v\n", fixture.Name, err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
		os.Exit(1)
	}
}

// collectObjects walks the fan-out object directory and re-encodes each
// object's header+payload envelope as hex, the pre-compression form other
// implementations would compare bit-for-bit.
func collectObjects(store *object.Store, storeDir string) (map[string]string, error) {
	objects := make(map[string]string)

	err := filepath.Walk(storeDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		hash := filepath.Base(filepath.Dir(path)) + filepath.Base(path)
		kind, payload, err := store.Read(hash)
		if err != nil {
			return err
		}

		header := object.Header{Version: object.FormatVersion, Kind: kind, Size: uint64(len(payload))}.Encode()
		envelope := append(header[:], payload...)
		objects[hash] = hex.EncodeToString(envelope)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return objects, nil
}

func seedWorkspace(root string) error {
	if err := os.MkdirAll(filepath.Join(root, "src"), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte("# Test"), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(root, "src", "main.go"), []byte("package main"), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(root, "src", "lib.go"), []byte("package main\n\nfunc foo() {}"), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(root, "script.sh"), []byte("#!/bin/bash\necho hi"), 0o755); err != nil {
		return err
	}
	return nil
}
