// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

// Package config reads and writes a repository's config.toml.
package config

import (
	"os"
	"strings"

	"github.com/jogen-vcs/jogen/jogenerr"

	"github.com/BurntSushi/toml"
	"github.com/google/renameio"
	"github.com/google/uuid"
)

// Core holds the [core] table of config.toml.
type Core struct {
	// Version is the on-disk repository format version. Currently always 1.
	Version int `toml:"version"`

	// ID uniquely identifies this repository instance. It has no
	// semantic meaning to the engine; it exists so tooling can tell two
	// checkouts of the same history apart.
	ID string `toml:"id"`
}

// Config is the full contents of config.toml.
type Config struct {
	Core Core `toml:"core"`
}

// FormatVersion is the current config.toml format version.
const FormatVersion = 1

// New returns the configuration written by a fresh repo.Init.
func New() Config {
	return Config{Core: Core{Version: FormatVersion, ID: uuid.NewString()}}
}

// Load reads and parses a config.toml file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &jogenerr.Config{Path: path, Err: err}
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, &jogenerr.Config{Path: path, Err: err}
	}
	return cfg, nil
}

// Save serializes cfg and writes it atomically to path.
func Save(path string, cfg Config) error {
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(&cfg); err != nil {
		return &jogenerr.Config{Path: path, Err: err}
	}

	if err := renameio.WriteFile(path, []byte(buf.String()), 0o644); err != nil {
		return jogenerr.WrapIo("write", path, err)
	}
	return nil
}
