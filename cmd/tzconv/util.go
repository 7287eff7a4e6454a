// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"cloudeng.io/logging/ctxlog"
	"github.com/cosnicolaou/timezone/catalog"
	"github.com/cosnicolaou/timezone/internal/logging"
)

type CatalogFlags struct {
	ConfigFile string `subcmd:"config,,path to a file containing zone definitions, the builtin zones are used if not specified"`
}

type LoggingFlags struct {
	LogFile string `subcmd:"log-file,,write JSON log records to the specified file, use - for stderr"`
}

// loadCatalog returns the catalog specified by fv, or the builtin
// catalog if no configuration file is specified.
func loadCatalog(ctx context.Context, fv *CatalogFlags) (*catalog.Catalog, error) {
	opts := []catalog.Option{catalog.WithLogger(logging.LoggerFromContext(ctx))}
	if len(fv.ConfigFile) == 0 {
		return catalog.Builtin(opts...), nil
	}
	cat, err := catalog.ParseConfigFile(ctx, fv.ConfigFile, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse zone config file: %q: %w", fv.ConfigFile, err)
	}
	return cat, nil
}

// setupLogging returns a context carrying a JSON logger that writes to
// the specified file, the logger discards all output if no file is given.
func setupLogging(ctx context.Context, fv *LoggingFlags) (context.Context, func(), error) {
	var w io.Writer = io.Discard
	cleanup := func() {}
	switch fv.LogFile {
	case "":
	case "-":
		w = os.Stderr
	default:
		f, err := os.OpenFile(fv.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return ctx, cleanup, err
		}
		w = f
		cleanup = func() { f.Close() }
	}
	ctx = ctxlog.NewJSONLogger(ctx, w, &slog.HandlerOptions{Level: slog.LevelDebug})
	ctx = logging.ContextWithLogger(ctx, ctxlog.Logger(ctx))
	return ctx, cleanup, nil
}

var timeNow = time.Now

var timeFormats = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
}

// parseTime parses val using any of the supported formats, times
// without an explicit offset are parsed as UTC.
func parseTime(val string) (time.Time, error) {
	for _, f := range timeFormats {
		if t, err := time.Parse(f, val); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time: %q, use RFC3339 or 2006-01-02[T15:04[:05]]", val)
}

func openInput(args []string) ([]io.Reader, func(), error) {
	if len(args) == 0 {
		return []io.Reader{os.Stdin}, func() {}, nil
	}
	var files []*os.File
	cleanup := func() {
		for _, f := range files {
			f.Close()
		}
	}
	readers := make([]io.Reader, 0, len(args))
	for _, arg := range args {
		f, err := os.Open(arg)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		files = append(files, f)
		readers = append(readers, f)
	}
	return readers, cleanup, nil
}
