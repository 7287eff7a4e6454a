// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rules

import (
	"cloudeng.io/datetime"
)

// Resolve returns the Instant at which rule r fires in the specified year.
// The returned Instant has no offset applied, it is the local wall-clock
// time of the transition and the caller decides which timeline it belongs
// to. Fields outside of their documented ranges produce an unspecified,
// but non-panicking, result; use Validate to detect them.
func Resolve(r Rule, year int) Instant {
	month, week := r.Month, r.Week
	if week == Last {
		// Find the first occurrence in the following month and back up
		// by a week.
		if month++; month > December {
			month = January
			year++
		}
		week = First
	}
	first := NewInstant(year, month, 1, 0, 0, 0)
	days := 7*(int(week)-1) + (int(r.DOW)-int(first.Weekday())+7)%7
	if r.Week == Last {
		days -= 7
	}
	return first.AddDays(days) + Instant(r.Hour)*SecondsPerHour
}

// Resolve is a convenience for Resolve(r, year).
func (r Rule) Resolve(year int) Instant {
	return Resolve(r, year)
}

// Date returns the calendar date on which the rule fires in the
// specified year.
func (r Rule) Date(year int) datetime.CalendarDate {
	return datetime.CalendarDateFromTime(Resolve(r, year).Time())
}
