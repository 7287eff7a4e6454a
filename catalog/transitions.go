// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package catalog

import (
	"context"
	"fmt"

	"cloudeng.io/sync/errgroup"
	"github.com/cosnicolaou/timezone/zone"
)

type yearKey struct {
	zone string
	year int
}

// ZoneTransitions represents the transitions for a single zone and year.
type ZoneTransitions struct {
	Zone     string
	Observed bool
	zone.Transitions
}

// TransitionTable returns the transitions for every zone in the catalog
// for each of the years from fromYear to toYear inclusive, ordered by
// zone and then year. The zones are evaluated concurrently and the
// results are cached.
func (c *Catalog) TransitionTable(ctx context.Context, fromYear, toYear int) ([]ZoneTransitions, error) {
	if toYear < fromYear {
		return nil, fmt.Errorf("invalid year range: %v:%v", fromYear, toYear)
	}
	nyears := toYear - fromYear + 1
	table := make([]ZoneTransitions, len(c.specs)*nyears)
	var g errgroup.T
	for i, spec := range c.specs {
		g.Go(func() error {
			z := zone.New(spec.DST, spec.STD, zone.WithName(spec.Name), zone.WithLogger(c.logger))
			observed := z.Observed()
			for y := range nyears {
				if err := ctx.Err(); err != nil {
					return err
				}
				year := fromYear + y
				key := yearKey{zone: spec.Name, year: year}
				tr, ok := c.cache.GetIfPresent(key)
				if !ok {
					tr = z.Transitions(year)
					c.cache.Set(key, tr)
				}
				table[i*nyears+y] = ZoneTransitions{
					Zone:        spec.Name,
					Observed:    observed,
					Transitions: tr,
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return table, nil
}

// CachedTransitions returns the number of transitions currently cached.
func (c *Catalog) CachedTransitions() int {
	return c.cache.EstimatedSize()
}
