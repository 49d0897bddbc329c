// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var trackCreateCmd = &cobra.Command{
	Use:   "track-create <name> <hash>",
	Short: "create a named track pointing at a snapshot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		return e.Refs.CreateTrack(args[0], args[1])
	},
}

var trackListCmd = &cobra.Command{
	Use:   "track-list",
	Short: "list tracks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}

		names, err := e.Refs.ListTracks()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}
