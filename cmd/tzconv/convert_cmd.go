// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"io"
	"time"

	"github.com/cosnicolaou/timezone/rules"
	"github.com/cosnicolaou/timezone/zone"
	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type ConvertFlags struct {
	CatalogFlags
	LoggingFlags
	Zone string `subcmd:"zone,us-eastern,the zone to convert to or from"`
}

type Convert struct {
	out io.Writer
}

var (
	dstColor = color.New(color.FgYellow)
	stdColor = color.New(color.Reset)
	title    = cases.Title(language.English)
)

func (c *Convert) setup(ctx context.Context, fv *ConvertFlags) (*zone.Zone, func(), error) {
	ctx, cleanup, err := setupLogging(ctx, &fv.LoggingFlags)
	if err != nil {
		return nil, cleanup, err
	}
	cat, err := loadCatalog(ctx, &fv.CatalogFlags)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	z, err := cat.Zone(fv.Zone)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return z, cleanup, nil
}

func (c *Convert) print(from, to time.Time, regime zone.Regime) {
	col := stdColor
	if regime == zone.DST {
		col = dstColor
	}
	col.Fprintf(c.out, "%v -> %v (%v)\n",
		from.Format(time.RFC3339Nano), to.Format(time.RFC3339Nano+" MST"), title.String(regime.String()))
}

func (c *Convert) ToLocal(ctx context.Context, flags any, args []string) error {
	fv := flags.(*ConvertFlags)
	z, cleanup, err := c.setup(ctx, fv)
	if err != nil {
		return err
	}
	defer cleanup()
	for _, arg := range args {
		t, err := parseTime(arg)
		if err != nil {
			return err
		}
		t = t.UTC()
		_, regime := z.ToLocalRule(rules.InstantFromTime(t))
		c.print(t, z.ToLocalTime(t), regime)
	}
	return nil
}

func (c *Convert) ToUTC(ctx context.Context, flags any, args []string) error {
	fv := flags.(*ConvertFlags)
	z, cleanup, err := c.setup(ctx, fv)
	if err != nil {
		return err
	}
	defer cleanup()
	for _, arg := range args {
		t, err := parseTime(arg)
		if err != nil {
			return err
		}
		regime := zone.Standard
		if z.LocalIsDST(rules.WallClock(t)) {
			regime = zone.DST
		}
		r := z.Rule(regime)
		local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
			time.FixedZone(r.Abbrev, r.Offset*rules.SecondsPerMinute))
		c.print(local, z.ToUTCTime(t), regime)
	}
	return nil
}
