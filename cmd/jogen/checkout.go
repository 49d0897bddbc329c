// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout <hash>",
	Short: "reconcile the workspace to match a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}

		if err := e.Checkout(args[0]); err != nil {
			return err
		}

		fmt.Printf("checked out %s\n", args[0])
		return nil
	},
}
