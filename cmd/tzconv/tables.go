// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/cosnicolaou/timezone/catalog"
	"github.com/cosnicolaou/timezone/internal/logging"
	"github.com/cosnicolaou/timezone/rules"
	"github.com/jedib0t/go-pretty/v6/table"
)

type tableManager struct{}

func (tm tableManager) Zones(cat *catalog.Catalog) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Zone", "POSIX", "Daylight Saving Time", "Standard Time"})
	for _, name := range cat.Names() {
		z, err := cat.Zone(name)
		if err != nil {
			continue
		}
		dst, std := z.Rules()
		dstRule := dst.String()
		if !z.Observed() {
			dstRule = "not observed"
		}
		tw.AppendRow(table.Row{name, z.POSIX(), dstRule, std.String()})
	}
	return tw
}

func localTransition(i rules.Instant, abbrev string) string {
	return fmt.Sprintf("%v %v", i, abbrev)
}

func (tm tableManager) Transitions(cat *catalog.Catalog, rows []catalog.ZoneTransitions) table.Writer {
	tw := table.NewWriter()
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
	})
	tw.AppendHeader(table.Row{"Zone", "Year", "DST Starts (UTC)", "DST Starts (Local)", "STD Starts (UTC)", "STD Starts (Local)"})
	prev := ""
	for _, row := range rows {
		if prev != "" && row.Zone != prev {
			tw.AppendSeparator()
		}
		prev = row.Zone
		if !row.Observed {
			tw.AppendRow(table.Row{row.Zone, row.Year, "-", "-", "-", "-"})
			continue
		}
		spec, _ := cat.Lookup(row.Zone)
		// Daylight saving time starts at a standard time wall clock
		// and ends at a daylight saving time wall clock.
		tw.AppendRow(table.Row{row.Zone, row.Year,
			row.DSTStartUTC,
			localTransition(row.DSTStartLocal, spec.STD.Abbrev),
			row.STDStartUTC,
			localTransition(row.STDStartLocal, spec.DST.Abbrev),
		})
	}
	return tw
}

func (tm tableManager) RefreshSummary(rec *logging.RefreshRecorder) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Zone", "UTC Refreshes", "Local Refreshes", "Years"})
	for _, zs := range rec.Zones() {
		years := fmt.Sprintf("%v", zs.FirstYear)
		if zs.FirstYear != zs.LastYear {
			years = fmt.Sprintf("%v-%v", zs.FirstYear, zs.LastYear)
		}
		tw.AppendRow(table.Row{zs.Zone, zs.UTC, zs.Local, years})
	}
	return tw
}

func (tm tableManager) RecentRefreshes(rec *logging.RefreshRecorder) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Zone", "Domain", "Year", "DST Starts (UTC)", "STD Starts (UTC)"})
	for rr := range rec.Recent() {
		tw.AppendRow(table.Row{rr.Zone, rr.Domain, rr.Year, rr.DSTUTC, rr.STDUTC})
	}
	return tw
}
