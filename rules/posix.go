// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rules

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// defaultPOSIXHour is the transition time assumed by POSIX TZ strings
// when none is specified.
const defaultPOSIXHour = 2

// POSIX returns the rule in the 'M' format used by POSIX TZ strings,
// ie. M<month>.<week>.<day> with an optional /<hour> suffix. The POSIX
// format uses 5 for the last week and 0 for Sunday. The hour is omitted
// when it is the POSIX default of 2AM.
func (r Rule) POSIX() string {
	week := int(r.Week)
	if r.Week == Last {
		week = 5
	}
	s := fmt.Sprintf("M%d.%d.%d", r.Month, week, int(r.DOW)-1)
	if r.Hour != defaultPOSIXHour {
		s += "/" + strconv.Itoa(r.Hour)
	}
	return s
}

// ParsePOSIX parses a transition in the POSIX 'M' format, for example
// M3.2.0/2 or M10.5.0. The time, if present, must be a whole number of
// hours (eg. 3, 03:00, -1 or 26:00:00). Julian day forms are not
// supported. The returned Rule has no abbreviation and a zero offset.
func ParsePOSIX(val string) (Rule, error) {
	if !strings.HasPrefix(val, "M") {
		return Rule{}, fmt.Errorf("unsupported POSIX rule, only M<month>.<week>.<day> is supported: %q", val)
	}
	date, tod, hasTime := strings.Cut(val[1:], "/")
	parts := strings.Split(date, ".")
	if len(parts) != 3 {
		return Rule{}, fmt.Errorf("invalid POSIX rule, expected M<month>.<week>.<day>: %q", val)
	}
	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Rule{}, fmt.Errorf("invalid POSIX rule: %q: %w", val, err)
		}
		fields[i] = n
	}
	month, week, day := fields[0], fields[1], fields[2]
	switch {
	case month < 1 || month > 12:
		return Rule{}, fmt.Errorf("invalid POSIX rule, month out of range: %q", val)
	case week < 1 || week > 5:
		return Rule{}, fmt.Errorf("invalid POSIX rule, week out of range: %q", val)
	case day < 0 || day > 6:
		return Rule{}, fmt.Errorf("invalid POSIX rule, day out of range: %q", val)
	}
	r := Rule{
		Week:  Week(week),
		DOW:   Weekday(day + 1),
		Month: Month(month),
		Hour:  defaultPOSIXHour,
	}
	if week == 5 {
		r.Week = Last
	}
	if hasTime {
		hour, err := parsePOSIXHour(tod)
		if err != nil {
			return Rule{}, fmt.Errorf("invalid POSIX rule time: %q: %w", val, err)
		}
		r.Hour = hour
	}
	return r, nil
}

func parsePOSIXHour(val string) (int, error) {
	parts := strings.Split(val, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("too many fields: %q", val)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	if hour < -167 || hour > 167 {
		return 0, fmt.Errorf("hour out of range: %v", hour)
	}
	for _, p := range parts[1:] {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, err
		}
		if n != 0 {
			return 0, fmt.Errorf("only whole hours are supported: %q", val)
		}
	}
	return hour, nil
}

// POSIXOffset formats an offset, in minutes east of UTC, using the POSIX
// convention of hours west of UTC, eg. -300 is formatted as 5 and 570
// as -9:30.
func POSIXOffset(minutes int) string {
	west := -minutes
	sign := ""
	if west < 0 {
		sign = "-"
		west = -west
	}
	if m := west % 60; m != 0 {
		return fmt.Sprintf("%s%d:%02d", sign, west/60, m)
	}
	return fmt.Sprintf("%s%d", sign, west/60)
}

// POSIXAbbrev returns the abbreviation in a form suitable for use in a
// POSIX TZ string. Abbreviations that are not at least three alphabetic
// characters are quoted with <>, and an empty abbreviation is replaced
// by the numeric offset, eg. <+0530> or <-03>.
func POSIXAbbrev(abbrev string, minutes int) string {
	if len(abbrev) == 0 {
		sign := "+"
		if minutes < 0 {
			sign = "-"
			minutes = -minutes
		}
		if m := minutes % 60; m != 0 {
			return fmt.Sprintf("<%s%02d%02d>", sign, minutes/60, m)
		}
		return fmt.Sprintf("<%s%02d>", sign, minutes/60)
	}
	alpha := len(abbrev) >= 3
	for _, c := range abbrev {
		if !unicode.IsLetter(c) {
			alpha = false
			break
		}
	}
	if alpha {
		return abbrev
	}
	return "<" + abbrev + ">"
}
