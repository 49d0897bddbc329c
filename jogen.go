// Copyright 2025 StrongDM Inc
// SPDX-License-Identifier: Apache-2.0

// Package jogen is a content-addressed version-control engine: a local
// object store, a workspace indexer, a tree-diff hydrator, and a reference
// store, composed into save/checkout/status/log operations over a single
// repository.
package jogen

import (
	"github.com/jogen-vcs/jogen/config"
	"github.com/jogen-vcs/jogen/object"
	"github.com/jogen-vcs/jogen/refstore"
	"github.com/jogen-vcs/jogen/repo"
)

// Engine ties together a located repository and the object/reference
// stores rooted inside its control directory. It is the entry point for
// every operation in this package.
type Engine struct {
	Repo   repo.Repo
	Store  *object.Store
	Refs   *refstore.Store
	Config config.Config
}

// Open locates the repository containing dir (ascending parent
// directories, per repo.Locate) and opens its object and reference stores.
func Open(dir string) (*Engine, error) {
	r, err := repo.Locate(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(r.ConfigPath())
	if err != nil {
		return nil, err
	}

	return &Engine{
		Repo:   r,
		Store:  object.NewStore(r.ObjectsDir()),
		Refs:   refstore.NewStore(r.ControlDir()),
		Config: cfg,
	}, nil
}

// Init bootstraps a new repository at root and returns an Engine open on it.
func Init(root string) (*Engine, error) {
	r, err := repo.Init(root)
	if err != nil {
		return nil, err
	}
	return Open(r.Root)
}
