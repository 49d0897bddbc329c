// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "show paths that differ from HEAD",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}

		diff, err := e.Status()
		if err != nil {
			return err
		}

		if diff.IsEmpty() {
			fmt.Println("workspace matches HEAD")
			return nil
		}

		var totalBytes uint64
		for _, path := range diff.Added {
			fmt.Printf("added:    %s\n", path)
			totalBytes += sizeOf(e.Repo.Root, path)
		}
		for _, path := range diff.Modified {
			fmt.Printf("modified: %s\n", path)
			totalBytes += sizeOf(e.Repo.Root, path)
		}
		for _, path := range diff.Removed {
			fmt.Printf("removed:  %s\n", path)
		}

		fmt.Printf("%s across %d path(s)\n", humanize.Bytes(totalBytes), len(diff.Added)+len(diff.Modified)+len(diff.Removed))
		return nil
	},
}

func sizeOf(root, relPath string) uint64 {
	info, err := os.Stat(filepath.Join(root, relPath))
	if err != nil {
		return 0
	}
	return uint64(info.Size())
}
