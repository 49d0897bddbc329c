// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"path/filepath"

	"github.com/jogen-vcs/jogen"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "bootstrap a new repository",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		if _, err := jogen.Init(abs); err != nil {
			return err
		}

		fmt.Printf("initialized repository at %s\n", abs)
		return nil
	},
}
