// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rules

import "time"

const (
	SecondsPerMinute = 60
	SecondsPerHour   = 60 * SecondsPerMinute
	SecondsPerDay    = 24 * SecondsPerHour
)

// Instant is a point on a timeline measured in seconds since 1970-01-01
// 00:00:00. An Instant carries no timezone, it is interpreted as either
// UTC or local wall-clock time by its user.
type Instant int64

// NewInstant returns the Instant for the specified civil date and time
// using the proleptic Gregorian calendar. Out of range values are
// normalized, eg. month 13 is January of the following year.
func NewInstant(year int, month Month, day, hour, minute, second int) Instant {
	return Instant(time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC).Unix())
}

// InstantFromTime returns the Instant for t, ie. seconds since the
// Unix epoch, discarding any sub-second component.
func InstantFromTime(t time.Time) Instant {
	return Instant(t.Unix())
}

// WallClock returns the Instant for the wall-clock (civil) fields of t,
// ignoring its location. It is used to obtain a local Instant from a
// time.Time whose fields represent local time.
func WallClock(t time.Time) Instant {
	return NewInstant(t.Year(), Month(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}

// Time returns the Instant as a time.Time in UTC.
func (i Instant) Time() time.Time {
	return time.Unix(int64(i), 0).UTC()
}

// Year returns the calendar year of the Instant.
func (i Instant) Year() int {
	return i.Time().Year()
}

// Weekday returns the day of the week of the Instant, Sunday is 1.
func (i Instant) Weekday() Weekday {
	return Weekday(i.Time().Weekday()) + 1
}

// AddDays returns the Instant n days later (or earlier when n is negative).
func (i Instant) AddDays(n int) Instant {
	return i + Instant(n)*SecondsPerDay
}

// AddMinutes returns the Instant n minutes later (or earlier when n is negative).
func (i Instant) AddMinutes(n int) Instant {
	return i + Instant(n)*SecondsPerMinute
}

func (i Instant) String() string {
	return i.Time().Format("2006-01-02T15:04:05")
}
