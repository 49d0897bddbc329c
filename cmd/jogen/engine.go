// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/jogen-vcs/jogen"
)

// openEngine opens the repository containing the current working
// directory.
func openEngine() (*jogen.Engine, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return jogen.Open(dir)
}
