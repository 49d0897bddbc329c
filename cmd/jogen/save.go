// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/jogen-vcs/jogen"
	"github.com/jogen-vcs/jogen/object"

	"github.com/spf13/cobra"
)

var saveContext string

var saveCmd = &cobra.Command{
	Use:   "save <message>",
	Short: "index the workspace and record it as a new snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}

		context, ok := validContextTag(saveContext)
		if !ok {
			return fmt.Errorf("jogen: unrecognized context tag %q", saveContext)
		}

		hash, err := e.Save(args[0], context)
		if err != nil {
			return err
		}

		fmt.Println(hash)
		return nil
	},
}

func validContextTag(s string) (object.ContextTag, bool) {
	tag := object.ContextTag(s)
	switch tag {
	case object.ContextFeature, object.ContextFix, object.ContextRefactor,
		object.ContextDocs, object.ContextChore, object.ContextMerge, object.ContextInitial:
		return tag, true
	default:
		return "", false
	}
}

func init() {
	saveCmd.Flags().StringVar(&saveContext, "context", string(object.ContextChore), "context tag for this snapshot")
}
