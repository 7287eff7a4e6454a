// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/cosnicolaou/timezone/internal/logging"
)

type LogFlags struct {
	Zone   string `subcmd:"zone,,only display refreshes for the specified zone"`
	Recent int    `subcmd:"recent,10,number of the most recent refreshes to display"`
	TSV    bool   `subcmd:"tsv,false,print the tables in tab separated values"`
}

type Log struct {
	out io.Writer
}

func (l *Log) render(title, lines string) {
	fmt.Fprintln(l.out, title)
	fmt.Fprintln(l.out, lines)
}

func (l *Log) Refreshes(ctx context.Context, flags any, args []string) error {
	fv := flags.(*LogFlags)
	readers, cleanup, err := openInput(args)
	if err != nil {
		return err
	}
	defer cleanup()
	rec := logging.NewRefreshRecorder(fv.Recent)
	for i, rd := range readers {
		sc := logging.NewScanner(rd)
		for le := range sc.Entries() {
			if err := ctx.Err(); err != nil {
				return err
			}
			rr, ok := logging.RecordFromEntry(le)
			if !ok {
				continue
			}
			if len(fv.Zone) > 0 && rr.Zone != fv.Zone {
				continue
			}
			rec.Add(rr)
		}
		if err := sc.Err(); err != nil {
			if len(args) > 0 {
				return fmt.Errorf("%v: %w", args[i], err)
			}
			return err
		}
	}
	tm := tableManager{}
	summary, recent := tm.RefreshSummary(rec), tm.RecentRefreshes(rec)
	if fv.TSV {
		l.render("Zones", summary.RenderTSV())
		l.render("Recent", recent.RenderTSV())
		return nil
	}
	l.render("Zones", summary.Render())
	l.render("Recent", recent.Render())
	return nil
}
