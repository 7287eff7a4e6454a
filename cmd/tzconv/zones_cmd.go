// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"slices"

	"cloudeng.io/datetime"
	"github.com/cosnicolaou/timezone/catalog"
	"github.com/jedib0t/go-pretty/v6/table"
)

type ZonesFlags struct {
	CatalogFlags
	TSV bool `subcmd:"tsv,false,print the table in tab separated values"`
}

type TransitionsFlags struct {
	ZonesFlags
	DateRange string `subcmd:"date-range,,date range in <month>/<day>/<year>:<month>/<day>/<year> format, the transitions for every year in the range are displayed"`
}

type Zones struct {
	out io.Writer
}

func (z *Zones) render(tsv bool, tw table.Writer) {
	if tsv {
		fmt.Fprintln(z.out, tw.RenderTSV())
		return
	}
	fmt.Fprintln(z.out, tw.Render())
}

func (z *Zones) List(ctx context.Context, flags any, _ []string) error {
	fv := flags.(*ZonesFlags)
	cat, err := loadCatalog(ctx, &fv.CatalogFlags)
	if err != nil {
		return err
	}
	tm := tableManager{}
	z.render(fv.TSV, tm.Zones(cat))
	return nil
}

func (z *Zones) Transitions(ctx context.Context, flags any, args []string) error {
	fv := flags.(*TransitionsFlags)
	cat, err := loadCatalog(ctx, &fv.CatalogFlags)
	if err != nil {
		return err
	}
	var period datetime.CalendarDateRange
	if len(fv.DateRange) == 0 {
		today := datetime.CalendarDateFromTime(timeNow())
		period = datetime.NewCalendarDateRange(today, today)
	} else if err := period.Parse(fv.DateRange); err != nil {
		return err
	}
	for _, name := range args {
		if _, ok := cat.Lookup(name); !ok {
			return fmt.Errorf("unknown zone: %q", name)
		}
	}
	rows, err := cat.TransitionTable(ctx, period.From().Year(), period.To().Year())
	if err != nil {
		return err
	}
	if len(args) > 0 {
		rows = slices.DeleteFunc(rows, func(zt catalog.ZoneTransitions) bool {
			return !slices.Contains(args, zt.Zone)
		})
	}
	tm := tableManager{}
	z.render(fv.TSV, tm.Transitions(cat, rows))
	return nil
}
