// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zone

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cosnicolaou/timezone/rules"
)

// POSIX returns the zone as a POSIX TZ string, eg. EST5EDT,M3.2.0,M11.1.0.
// The daylight saving time offset is omitted when it is one hour ahead of
// standard time and the daylight saving time portion is omitted altogether
// when the zone does not observe daylight saving time.
func (z *Zone) POSIX() string {
	var out strings.Builder
	out.WriteString(rules.POSIXAbbrev(z.std.Abbrev, z.std.Offset))
	out.WriteString(rules.POSIXOffset(z.std.Offset))
	if !z.Observed() {
		return out.String()
	}
	out.WriteString(rules.POSIXAbbrev(z.dst.Abbrev, z.dst.Offset))
	if z.dst.Offset != z.std.Offset+60 {
		out.WriteString(rules.POSIXOffset(z.dst.Offset))
	}
	out.WriteByte(',')
	out.WriteString(z.dst.POSIX())
	out.WriteByte(',')
	out.WriteString(z.std.POSIX())
	return out.String()
}

var posixTZ = regexp.MustCompile(`^(?<StdName>[[:alpha:]]{3,}|<[[:alnum:]+-]+>)` +
	`(?<StdOffset>[-+]?[0-9]+(?::[0-9]+){0,2})` +
	`(?:(?<DstName>[[:alpha:]]{3,}|<[[:alnum:]+-]+>)` +
	`(?<DstOffset>[-+]?[0-9]+(?::[0-9]+){0,2})?` +
	`,(?<StartRule>[^,]+),(?<EndRule>[^,]+))?$`)

// ParsePOSIX creates a Zone from a POSIX TZ string such as
// EST5EDT,M3.2.0,M11.1.0 or AEST-10AEDT,M10.1.0,M4.1.0/3. Only the
// M<month>.<week>.<day> form of transition rule is supported and a zone
// that observes daylight saving time must specify both of its rules.
func ParsePOSIX(tz string, opts ...Option) (*Zone, error) {
	m := posixTZ.FindStringSubmatch(tz)
	if m == nil {
		return nil, fmt.Errorf("invalid or unsupported POSIX TZ string: %q", tz)
	}
	group := func(name string) string {
		return m[posixTZ.SubexpIndex(name)]
	}
	stdOffset, err := parsePOSIXOffset(group("StdOffset"))
	if err != nil {
		return nil, fmt.Errorf("invalid standard time offset: %q: %w", tz, err)
	}
	std := rules.Rule{
		Abbrev: unquoteAbbrev(group("StdName")),
		Week:   rules.First,
		DOW:    rules.Sunday,
		Month:  rules.January,
		Offset: stdOffset,
	}
	if len(group("DstName")) == 0 {
		return New(std, std, opts...), nil
	}
	dstOffset := stdOffset + 60
	if o := group("DstOffset"); len(o) > 0 {
		if dstOffset, err = parsePOSIXOffset(o); err != nil {
			return nil, fmt.Errorf("invalid daylight saving time offset: %q: %w", tz, err)
		}
	}
	dst, err := rules.ParsePOSIX(group("StartRule"))
	if err != nil {
		return nil, err
	}
	dst.Abbrev, dst.Offset = unquoteAbbrev(group("DstName")), dstOffset
	end, err := rules.ParsePOSIX(group("EndRule"))
	if err != nil {
		return nil, err
	}
	end.Abbrev, end.Offset = std.Abbrev, std.Offset
	return New(dst, end, opts...), nil
}

func unquoteAbbrev(a string) string {
	return strings.TrimSuffix(strings.TrimPrefix(a, "<"), ">")
}

// parsePOSIXOffset parses [+-]hh[:mm[:ss]], expressed as hours west of
// UTC, and returns the offset in minutes east of UTC.
func parsePOSIXOffset(val string) (int, error) {
	sign := -1
	switch {
	case strings.HasPrefix(val, "-"):
		sign = 1
		val = val[1:]
	case strings.HasPrefix(val, "+"):
		val = val[1:]
	}
	parts := strings.Split(val, ":")
	minutes := 0
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, err
		}
		switch i {
		case 0:
			minutes = n * 60
		case 1:
			if n > 59 {
				return 0, fmt.Errorf("minutes out of range: %v", n)
			}
			minutes += n
		}
	}
	return sign * minutes, nil
}
