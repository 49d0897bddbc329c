// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

// Package identity resolves the author string snapshots are written with
// when the caller does not supply one explicitly.
package identity

import (
	"fmt"
	"os"
	"os/user"
)

// DefaultAuthor returns a git-like "name <user@host>" string built from the
// current OS user and hostname. Either half falls back to "unknown" if it
// cannot be determined, so the result is always non-empty.
func DefaultAuthor() string {
	name := currentUser()
	return fmt.Sprintf("%s <%s@%s>", name, name, hostname())
}

func currentUser() string {
	u, err := user.Current()
	if err != nil || u.Username == "" {
		return "unknown"
	}
	return u.Username
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return "unknown"
	}
	return h
}
