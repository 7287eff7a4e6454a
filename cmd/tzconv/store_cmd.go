// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/cosnicolaou/timezone/rulestore"
	"github.com/cosnicolaou/timezone/zone"
)

type StoreFlags struct {
	CatalogFlags
	LoggingFlags
	File        string `subcmd:"file,,file to save the rules to or load them from"`
	DSN         string `subcmd:"dsn,,MySQL data source name, the rules are stored in the database rather than a file when specified"`
	Table       string `subcmd:"table,zone_rules,database table used to store the rules"`
	CreateTable bool   `subcmd:"create-table,false,create the database table if it does not exist"`
}

type Store struct {
	out io.Writer
}

func (s *Store) open(ctx context.Context, fv *StoreFlags, name string) (rulestore.Store, func(), error) {
	switch {
	case len(fv.DSN) > 0:
		db, err := rulestore.OpenSQL(ctx, rulestore.SQLConfig{DSN: fv.DSN, Table: fv.Table}, name)
		if err != nil {
			return nil, func() {}, err
		}
		if fv.CreateTable {
			if err := db.CreateTable(ctx); err != nil {
				db.Close()
				return nil, func() {}, err
			}
		}
		return db, func() { db.Close() }, nil
	case len(fv.File) > 0:
		return rulestore.NewFile(fv.File), func() {}, nil
	}
	return nil, func() {}, fmt.Errorf("one of --file or --dsn must be specified")
}

func (s *Store) Save(ctx context.Context, flags any, args []string) error {
	fv := flags.(*StoreFlags)
	ctx, cleanup, err := setupLogging(ctx, &fv.LoggingFlags)
	if err != nil {
		return err
	}
	defer cleanup()
	cat, err := loadCatalog(ctx, &fv.CatalogFlags)
	if err != nil {
		return err
	}
	z, err := cat.Zone(args[0])
	if err != nil {
		return err
	}
	store, closer, err := s.open(ctx, fv, args[0])
	if err != nil {
		return err
	}
	defer closer()
	if err := rulestore.SaveZone(ctx, store, z); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "saved %v to %v\n", z.Name(), store)
	return nil
}

func (s *Store) Load(ctx context.Context, flags any, args []string) error {
	fv := flags.(*StoreFlags)
	ctx, cleanup, err := setupLogging(ctx, &fv.LoggingFlags)
	if err != nil {
		return err
	}
	defer cleanup()
	store, closer, err := s.open(ctx, fv, args[0])
	if err != nil {
		return err
	}
	defer closer()
	z, err := rulestore.LoadZone(ctx, store, zone.WithName(args[0]))
	if err != nil {
		return fmt.Errorf("failed to load %v from %v: %w", args[0], store, err)
	}
	dst, std := z.Rules()
	fmt.Fprintf(s.out, "zone: %v\n", z.Name())
	fmt.Fprintf(s.out, "dst: %v\n", dst)
	fmt.Fprintf(s.out, "std: %v\n", std)
	fmt.Fprintf(s.out, "posix: %v\n", z.POSIX())
	return nil
}
