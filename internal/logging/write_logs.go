// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package logging

import (
	"context"
	"io"
	"log/slog"

	"github.com/cosnicolaou/timezone/rules"
)

const (
	LogRefresh = "refresh"
	LogSave    = "save"
	LogLoad    = "load"
)

const (
	DomainUTC   = "utc"
	DomainLocal = "local"
)

// WriteRefresh logs the recalculation of a zone's cached transitions for
// the specified year, triggered by a query in the specified domain
// (DomainUTC or DomainLocal).
func WriteRefresh(l *slog.Logger, zone, domain string, year int, dstUTC, stdUTC, dstLocal, stdLocal rules.Instant) {
	l.Info(LogRefresh,
		"zone", zone,
		"domain", domain,
		"year", year,
		"dst-utc", int64(dstUTC),
		"std-utc", int64(stdUTC),
		"dst-local", int64(dstLocal),
		"std-local", int64(stdLocal))
}

// WriteStore logs the result of saving (LogSave) or loading (LogLoad)
// a pair of rules to or from a store.
func WriteStore(l *slog.Logger, msg, store string, nbytes int, dst, std rules.Rule, err error) {
	if err != nil {
		l.Warn(msg, "store", store, "bytes", nbytes, "err", err)
		return
	}
	l.Info(msg,
		"store", store,
		"bytes", nbytes,
		"dst", dst.Compact(),
		"std", std.Compact())
}

type ctxKey string

// ContextWithLogger returns a new context with the given logger.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey("logger"), logger)
}

// Discard is a logger that discards all output.
var Discard = slog.New(slog.NewJSONHandler(io.Discard, nil))

// LoggerFromContext returns the logger from the given context.
// If no logger is set, it returns a discard logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey("logger")).(*slog.Logger)
	if !ok || l == nil {
		return Discard
	}
	return l
}
