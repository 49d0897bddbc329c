// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "show the snapshot chain starting at HEAD",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}

		entries, err := e.Log(historyLimit)
		if err != nil {
			return err
		}

		for _, entry := range entries {
			when := time.Unix(entry.Snapshot.Time, 0).UTC().Format(time.RFC3339)
			fmt.Printf("%s  %-8s %s  %s\n", entry.Hash[:12], entry.Snapshot.Context, when, firstLine(entry.Snapshot.Message))
		}
		return nil
	},
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "maximum number of snapshots to show (0 = unbounded)")
}
