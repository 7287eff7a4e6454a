// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"os"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/subcmd"
)

const cmdSpec = `name: tzconv
summary: tzconv converts times between UTC and the local time of zones that observe daylight saving time
commands:
  - name: convert
    summary: convert times to or from UTC
    commands:
      - name: to-local
        summary: convert UTC times to local time
        arguments:
          - <utc-time>...
      - name: to-utc
        summary: convert local times to UTC
        arguments:
          - <local-time>...
  - name: zones
    summary: query/inspect the configured zones
    commands:
      - name: list
        summary: list the zones and their rules
      - name: transitions
        summary: display the transitions for every zone for a range of dates
        arguments:
          - <zone>...
  - name: store
    summary: save or load the rules for a zone to or from persistent storage
    commands:
      - name: save
        summary: save the rules for the named zone
        arguments:
          - <zone>
      - name: load
        summary: load and display the rules saved for the named zone
        arguments:
          - <zone>
  - name: logs
    summary: query/inspect the log files
    commands:
      - name: refreshes
        summary: summarise the transition recalculations recorded in log files
        arguments:
          - <log-files>...
`

func cli() *subcmd.CommandSetYAML {
	cmd := subcmd.MustFromYAML(cmdSpec)

	convert := &Convert{out: os.Stdout}
	cmd.Set("convert", "to-local").MustRunner(convert.ToLocal, &ConvertFlags{})
	cmd.Set("convert", "to-utc").MustRunner(convert.ToUTC, &ConvertFlags{})

	zones := &Zones{out: os.Stdout}
	cmd.Set("zones", "list").MustRunner(zones.List, &ZonesFlags{})
	cmd.Set("zones", "transitions").MustRunner(zones.Transitions, &TransitionsFlags{})

	store := &Store{out: os.Stdout}
	cmd.Set("store", "save").MustRunner(store.Save, &StoreFlags{})
	cmd.Set("store", "load").MustRunner(store.Load, &StoreFlags{})

	log := &Log{out: os.Stdout}
	cmd.Set("logs", "refreshes").MustRunner(log.Refreshes, &LogFlags{})
	return cmd
}

var errInterrupt = errors.New("interrupt")

func main() {
	ctx := context.Background()
	ctx, cancel := context.WithCancelCause(ctx)
	cmdutil.HandleSignals(func() { cancel(errInterrupt) }, os.Interrupt)
	err := cli().Dispatch(ctx)
	if context.Cause(ctx) == errInterrupt {
		cmdutil.Exit("%v", errInterrupt)
	}
	if err != nil {
		cmdutil.Exit("%v", err)
	}
}
