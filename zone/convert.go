// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zone

import (
	"time"

	"github.com/cosnicolaou/timezone/rules"
)

// inDST returns true if t falls within daylight saving time given the
// start of daylight saving time (a) and of standard time (b). In the
// southern hemisphere daylight saving time starts later in the year than
// standard time and hence spans the year boundary.
func inDST(a, b, t rules.Instant) bool {
	if b > a {
		return t >= a && t < b
	}
	return !(t >= b && t < a)
}

// UTCIsDST returns true if utc falls within daylight saving time.
func (z *Zone) UTCIsDST(utc rules.Instant) bool {
	c := z.utcTransitions(utc)
	if c.DSTStartUTC == c.STDStartUTC {
		return false
	}
	return inDST(c.DSTStartUTC, c.STDStartUTC, utc)
}

// LocalIsDST returns true if the local time falls within daylight
// saving time.
func (z *Zone) LocalIsDST(local rules.Instant) bool {
	c := z.localTransitions(local)
	if c.DSTStartUTC == c.STDStartUTC {
		return false
	}
	return inDST(c.DSTStartLocal, c.STDStartLocal, local)
}

// ToLocal converts utc to local time.
func (z *Zone) ToLocal(utc rules.Instant) rules.Instant {
	local, _ := z.ToLocalRule(utc)
	return local
}

// ToLocalRule converts utc to local time and returns the regime that
// was applied, use Rule to obtain the rule itself.
func (z *Zone) ToLocalRule(utc rules.Instant) (rules.Instant, Regime) {
	if z.UTCIsDST(utc) {
		return utc.AddMinutes(z.dst.Offset), DST
	}
	return utc.AddMinutes(z.std.Offset), Standard
}

// ToUTC converts local to UTC. The conversion is ambiguous around the
// transitions: local times that fall within the hour skipped at the start
// of daylight saving time are converted using the daylight saving offset
// even though they never occur, and those that occur twice at the start of
// standard time are converted as the first, daylight saving time,
// occurrence.
func (z *Zone) ToUTC(local rules.Instant) rules.Instant {
	if z.LocalIsDST(local) {
		return local.AddMinutes(-z.dst.Offset)
	}
	return local.AddMinutes(-z.std.Offset)
}

// Abbrev returns the abbreviation of the rule that applies to utc.
func (z *Zone) Abbrev(utc rules.Instant) string {
	_, r := z.ToLocalRule(utc)
	return z.Rule(r).Abbrev
}

// ToLocalTime converts t to local time, the returned time.Time has a
// fixed location named for the abbreviation of the applicable rule.
// Sub-second precision is retained.
func (z *Zone) ToLocalTime(t time.Time) time.Time {
	utc := rules.InstantFromTime(t)
	_, regime := z.ToLocalRule(utc)
	r := z.Rule(regime)
	loc := time.FixedZone(r.Abbrev, r.Offset*rules.SecondsPerMinute)
	return t.In(loc)
}

// ToUTCTime interprets the wall-clock fields of t, ignoring its
// location, as local time in this zone and returns the corresponding
// time in UTC. Sub-second precision is retained.
func (z *Zone) ToUTCTime(t time.Time) time.Time {
	utc := z.ToUTC(rules.WallClock(t))
	return utc.Time().Add(time.Duration(t.Nanosecond()))
}
