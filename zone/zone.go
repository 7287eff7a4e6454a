// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package zone provides conversion between UTC and the local time of a
// zone that observes daylight saving time according to a pair of yearly
// transition rules, one for the start of daylight saving time and one for
// the start of standard time.
//
// The instants at which the transitions occur are computed for a single
// year at a time and cached; the cache is recomputed whenever a query
// refers to a different year. A Zone may be safely shared between
// goroutines.
package zone

import (
	"fmt"
	"log/slog"
	"sync"

	"cloudeng.io/errors"
	"github.com/cosnicolaou/timezone/internal/logging"
	"github.com/cosnicolaou/timezone/rules"
)

// Regime identifies the rule, standard or daylight saving time, that
// applies to an instant.
type Regime int

const (
	Standard Regime = iota
	DST
)

func (r Regime) String() string {
	if r == DST {
		return "daylight saving time"
	}
	return "standard time"
}

// Option represents an option to New.
type Option func(o *options)

type options struct {
	logger *slog.Logger
	name   string
}

// WithLogger sets the logger to be used to log cache refreshes.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithName sets the name of the zone, it is used for logging and display
// purposes only.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// Transitions represents the instants, in both UTC and local time, at
// which daylight saving and standard time start in a given year.
type Transitions struct {
	Year          int
	DSTStartUTC   rules.Instant
	STDStartUTC   rules.Instant
	DSTStartLocal rules.Instant
	STDStartLocal rules.Instant
}

func (t Transitions) String() string {
	return fmt.Sprintf("%v: dst %v (%v local), std %v (%v local)", t.Year,
		t.DSTStartUTC, t.DSTStartLocal, t.STDStartUTC, t.STDStartLocal)
}

// Zone converts between UTC and local time for a zone defined by a
// daylight saving time rule and a standard time rule. A zone that does
// not observe daylight saving time is created by supplying the same rule
// for both.
type Zone struct {
	options
	dst, std rules.Rule

	mu    sync.Mutex
	valid bool
	cache Transitions
}

// New creates a new Zone using the supplied rules. The rules are not
// validated, see NewValidated.
func New(dst, std rules.Rule, opts ...Option) *Zone {
	z := &Zone{dst: dst, std: std}
	for _, fn := range opts {
		fn(&z.options)
	}
	if z.logger == nil {
		z.logger = logging.Discard
	}
	z.logger = z.logger.With("mod", "zone")
	return z
}

// NewValidated is like New except that both rules are validated first.
func NewValidated(dst, std rules.Rule, opts ...Option) (*Zone, error) {
	var errs errors.M
	if err := dst.Validate(); err != nil {
		errs.Append(fmt.Errorf("dst: %w", err))
	}
	if err := std.Validate(); err != nil {
		errs.Append(fmt.Errorf("std: %w", err))
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return New(dst, std, opts...), nil
}

// Name returns the name of the zone, if any.
func (z *Zone) Name() string {
	return z.name
}

// Rules returns copies of the zone's daylight saving and standard time rules.
func (z *Zone) Rules() (dst, std rules.Rule) {
	return z.dst, z.std
}

// Rule returns a copy of the rule for the specified regime.
func (z *Zone) Rule(r Regime) rules.Rule {
	if r == DST {
		return z.dst
	}
	return z.std
}

// Observed returns true if the zone observes daylight saving time, ie.
// its rules differ other than in their abbreviations.
func (z *Zone) Observed() bool {
	return !z.dst.Equal(z.std)
}

// Transitions returns the transitions for the specified year.
func (z *Zone) Transitions(year int) Transitions {
	z.mu.Lock()
	defer z.mu.Unlock()
	if !z.valid || z.cache.Year != year {
		z.refreshLocked(year, logging.DomainUTC)
	}
	return z.cache
}

// calculate returns the transitions for year.
func (z *Zone) calculate(year int) Transitions {
	dstLocal := z.dst.Resolve(year)
	stdLocal := z.std.Resolve(year)
	// The daylight saving time transition is specified in terms of
	// standard time and vice versa.
	return Transitions{
		Year:          year,
		DSTStartUTC:   dstLocal.AddMinutes(-z.std.Offset),
		STDStartUTC:   stdLocal.AddMinutes(-z.dst.Offset),
		DSTStartLocal: dstLocal,
		STDStartLocal: stdLocal,
	}
}

func (z *Zone) refreshLocked(year int, domain string) {
	z.cache = z.calculate(year)
	z.valid = true
	c := z.cache
	logging.WriteRefresh(z.logger, z.name, domain, year,
		c.DSTStartUTC, c.STDStartUTC, c.DSTStartLocal, c.STDStartLocal)
}

// utcTransitions returns the cached transitions, refreshing them if the
// year of utc differs from the year of the cached DST start in UTC.
func (z *Zone) utcTransitions(utc rules.Instant) Transitions {
	year := utc.Year()
	z.mu.Lock()
	defer z.mu.Unlock()
	if !z.valid || z.cache.DSTStartUTC.Year() != year {
		z.refreshLocked(year, logging.DomainUTC)
	}
	return z.cache
}

// localTransitions is like utcTransitions but for local time.
func (z *Zone) localTransitions(local rules.Instant) Transitions {
	year := local.Year()
	z.mu.Lock()
	defer z.mu.Unlock()
	if !z.valid || z.cache.DSTStartLocal.Year() != year {
		z.refreshLocked(year, logging.DomainLocal)
	}
	return z.cache
}
