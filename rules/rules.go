// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package rules provides support for recurring, yearly, daylight saving
// time transition rules of the form 'the second Sunday of March at 2AM'
// and for resolving them to an absolute instant for any given year.
package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// Week is the week of the month that a rule applies to, with Last
// representing the last occurrence of a weekday in the month.
type Week uint8

const (
	Last Week = iota
	First
	Second
	Third
	Fourth
)

// Weekday is the day of the week with Sunday as 1 and Saturday as 7.
type Weekday uint8

const (
	Sunday Weekday = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// Month is the month of the year with January as 1.
type Month uint8

const (
	January Month = iota + 1
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

// MaxAbbrevLen is the maximum length of a rule's abbreviation.
const MaxAbbrevLen = 5

// Rule describes the point in each year at which a time regime, daylight
// saving or standard time, starts. The Offset is the offset from UTC, in
// minutes, that applies once the rule has fired. The Abbrev is for display
// purposes only and is never used when comparing rules.
type Rule struct {
	Abbrev string
	Week   Week
	DOW    Weekday
	Month  Month
	Hour   int
	Offset int
}

// Equal returns true if r and o describe the same transition and offset,
// ignoring their abbreviations.
func (r Rule) Equal(o Rule) bool {
	return r.Week == o.Week && r.DOW == o.DOW && r.Month == o.Month &&
		r.Hour == o.Hour && r.Offset == o.Offset
}

func (r Rule) String() string {
	return fmt.Sprintf("%v: %v %v of %v at %02d:00 (UTC%v)", r.Abbrev, r.Week, r.DOW, r.Month, r.Hour, FormatOffset(r.Offset))
}

// FormatOffset formats an offset in minutes as +HH:MM or -HH:MM.
func FormatOffset(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}

var weekNames = []string{"last", "first", "second", "third", "fourth"}

func (w Week) String() string {
	if int(w) < len(weekNames) {
		return weekNames[w]
	}
	return "week(" + strconv.Itoa(int(w)) + ")"
}

var weekdayNames = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

func (d Weekday) String() string {
	if d >= Sunday && d <= Saturday {
		return weekdayNames[d-1]
	}
	return "weekday(" + strconv.Itoa(int(d)) + ")"
}

var monthNames = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

func (m Month) String() string {
	if m >= January && m <= December {
		return monthNames[m-1]
	}
	return "month(" + strconv.Itoa(int(m)) + ")"
}

// lookup returns the index of val in names, matching on the first three
// characters so that 'sunday' and 'September' are accepted, or val as an
// integer if it is numeric.
func lookup(names []string, val string) (int, bool) {
	val = strings.ToLower(strings.TrimSpace(val))
	if n, err := strconv.Atoi(val); err == nil {
		return n, true
	}
	for i, n := range names {
		if val == n || (len(val) >= 3 && strings.HasPrefix(val, n)) {
			return i, true
		}
	}
	return 0, false
}

// ParseWeek parses a week name (last, first, second, third, fourth) or number.
func ParseWeek(val string) (Week, error) {
	n, ok := lookup(weekNames, val)
	if !ok || n < 0 || n > 255 {
		return 0, fmt.Errorf("invalid week: %q", val)
	}
	return Week(n), nil
}

// ParseWeekday parses a weekday name (sun, monday etc) or number (1 for Sunday).
func ParseWeekday(val string) (Weekday, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
		if n < 0 || n > 255 {
			return 0, fmt.Errorf("invalid weekday: %q", val)
		}
		return Weekday(n), nil
	}
	n, ok := lookup(weekdayNames, val)
	if !ok {
		return 0, fmt.Errorf("invalid weekday: %q", val)
	}
	return Weekday(n + 1), nil
}

// ParseMonth parses a month name (jan, february etc) or number (1 for January).
func ParseMonth(val string) (Month, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
		if n < 0 || n > 255 {
			return 0, fmt.Errorf("invalid month: %q", val)
		}
		return Month(n), nil
	}
	n, ok := lookup(monthNames, val)
	if !ok {
		return 0, fmt.Errorf("invalid month: %q", val)
	}
	return Month(n + 1), nil
}
