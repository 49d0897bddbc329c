// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/jogen-vcs/jogen/object"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var hashObjectKind string

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object <path>",
	Short: "hash and write a file's contents as an object of the given kind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		kind, err := parseKind(hashObjectKind)
		if err != nil {
			return err
		}

		hash, err := e.Store.Write(kind, data)
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n", hash, humanize.Bytes(uint64(len(data))))
		return nil
	},
}

var catFileCmd = &cobra.Command{
	Use:   "cat-file <hash>",
	Short: "print an object's raw payload to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}

		_, payload, err := e.Store.Read(args[0])
		if err != nil {
			return err
		}

		_, err = os.Stdout.Write(payload)
		return err
	},
}

var readDirectoryCmd = &cobra.Command{
	Use:   "read-directory <hash>",
	Short: "list a directory object's entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}

		dir, err := e.Store.ReadDirectory(args[0])
		if err != nil {
			return err
		}

		for _, entry := range dir.Entries {
			fmt.Printf("%s\t%s\t%s\n", entry.Mode, entry.Hash, entry.Name)
		}
		return nil
	},
}

var readSnapshotCmd = &cobra.Command{
	Use:   "read-snapshot <hash>",
	Short: "print a snapshot object's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}

		snap, err := e.Store.ReadSnapshot(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("directory %s\n", snap.Directory)
		for _, parent := range snap.Parents {
			fmt.Printf("parent %s\n", parent)
		}
		fmt.Printf("author %s\n", snap.Author)
		fmt.Printf("time %d\n", snap.Time)
		fmt.Printf("context %s\n\n%s\n", snap.Context, snap.Message)
		return nil
	},
}

func parseKind(s string) (object.Kind, error) {
	switch s {
	case "blob":
		return object.KindBlob, nil
	case "directory":
		return object.KindDirectory, nil
	case "snapshot":
		return object.KindSnapshot, nil
	default:
		return 0, fmt.Errorf("jogen: unrecognized object kind %q", s)
	}
}

func init() {
	hashObjectCmd.Flags().StringVar(&hashObjectKind, "kind", "blob", "object kind: blob, directory, or snapshot")
}
