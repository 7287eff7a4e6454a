// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package rulestore provides persistence for the pair of rules that define
// a zone. Each rule is encoded as a fixed size record and the pair is
// stored as the daylight saving time rule followed by the standard time
// rule. Storage backends implement the Store interface.
package rulestore

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/cosnicolaou/timezone/rules"
)

// The record layout is:
//
//	0-5   abbreviation, NUL padded
//	6     week
//	7     day of week
//	8     month
//	9     hour
//	10-11 offset in minutes, little endian int16
const (
	abbrevSize = rules.MaxAbbrevLen + 1
	RecordSize = abbrevSize + 4 + 2
	PairSize   = 2 * RecordSize
)

// AppendRule appends the encoded form of r to buf.
func AppendRule(buf []byte, r rules.Rule) ([]byte, error) {
	if len(r.Abbrev) > rules.MaxAbbrevLen {
		return buf, fmt.Errorf("abbreviation %q is longer than %v characters", r.Abbrev, rules.MaxAbbrevLen)
	}
	if strings.IndexByte(r.Abbrev, 0) >= 0 {
		return buf, fmt.Errorf("abbreviation %q contains a NUL", r.Abbrev)
	}
	if r.Hour < 0 || r.Hour > math.MaxUint8 {
		return buf, fmt.Errorf("hour %v cannot be encoded", r.Hour)
	}
	if r.Offset < math.MinInt16 || r.Offset > math.MaxInt16 {
		return buf, fmt.Errorf("offset %v cannot be encoded", r.Offset)
	}
	var abbrev [abbrevSize]byte
	copy(abbrev[:], r.Abbrev)
	buf = append(buf, abbrev[:]...)
	buf = append(buf, byte(r.Week), byte(r.DOW), byte(r.Month), byte(r.Hour))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(int16(r.Offset)))
	return buf, nil
}

// MarshalRule returns the encoded form of r.
func MarshalRule(r rules.Rule) ([]byte, error) {
	return AppendRule(make([]byte, 0, RecordSize), r)
}

// UnmarshalRule decodes a single rule from the start of buf.
func UnmarshalRule(buf []byte) (rules.Rule, error) {
	if len(buf) < RecordSize {
		return rules.Rule{}, fmt.Errorf("rule record requires %v bytes, got %v: %w", RecordSize, len(buf), io.ErrUnexpectedEOF)
	}
	abbrev := buf[:abbrevSize]
	if n := strings.IndexByte(string(abbrev), 0); n >= 0 {
		abbrev = abbrev[:n]
	}
	return rules.Rule{
		Abbrev: string(abbrev),
		Week:   rules.Week(buf[6]),
		DOW:    rules.Weekday(buf[7]),
		Month:  rules.Month(buf[8]),
		Hour:   int(buf[9]),
		Offset: int(int16(binary.LittleEndian.Uint16(buf[10:12]))),
	}, nil
}

// MarshalRules returns the encoded form of the daylight saving time rule
// followed by the standard time rule.
func MarshalRules(dst, std rules.Rule) ([]byte, error) {
	buf := make([]byte, 0, PairSize)
	buf, err := AppendRule(buf, dst)
	if err != nil {
		return nil, fmt.Errorf("dst: %w", err)
	}
	buf, err = AppendRule(buf, std)
	if err != nil {
		return nil, fmt.Errorf("std: %w", err)
	}
	return buf, nil
}

// UnmarshalRules decodes the pair of rules encoded by MarshalRules.
func UnmarshalRules(buf []byte) (dst, std rules.Rule, err error) {
	if len(buf) < PairSize {
		err = fmt.Errorf("rule records require %v bytes, got %v: %w", PairSize, len(buf), io.ErrUnexpectedEOF)
		return
	}
	if dst, err = UnmarshalRule(buf); err != nil {
		return
	}
	std, err = UnmarshalRule(buf[RecordSize:])
	return
}
