// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rulestore

import (
	"context"
	"fmt"

	"github.com/cosnicolaou/timezone/internal/logging"
	"github.com/cosnicolaou/timezone/rules"
	"github.com/cosnicolaou/timezone/zone"
)

func storeName(store Store) string {
	if s, ok := store.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", store)
}

// WriteRules encodes and saves the supplied rules to store.
func WriteRules(ctx context.Context, store Store, dst, std rules.Rule) error {
	logger := logging.LoggerFromContext(ctx).With("mod", "rulestore")
	data, err := MarshalRules(dst, std)
	if err == nil {
		err = store.Save(ctx, data)
	}
	logging.WriteStore(logger, logging.LogSave, storeName(store), len(data), dst, std, err)
	return err
}

// ReadRules loads and decodes a pair of rules from store.
func ReadRules(ctx context.Context, store Store) (dst, std rules.Rule, err error) {
	logger := logging.LoggerFromContext(ctx).With("mod", "rulestore")
	var data []byte
	data, err = store.Load(ctx)
	if err == nil {
		dst, std, err = UnmarshalRules(data)
	}
	logging.WriteStore(logger, logging.LogLoad, storeName(store), len(data), dst, std, err)
	return
}

// SaveZone saves the rules for z to store.
func SaveZone(ctx context.Context, store Store, z *zone.Zone) error {
	dst, std := z.Rules()
	return WriteRules(ctx, store, dst, std)
}

// LoadZone creates a new Zone using rules loaded from store.
func LoadZone(ctx context.Context, store Store, opts ...zone.Option) (*zone.Zone, error) {
	dst, std, err := ReadRules(ctx, store)
	if err != nil {
		return nil, err
	}
	return zone.New(dst, std, opts...), nil
}
