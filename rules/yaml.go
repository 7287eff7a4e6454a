// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rules

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse parses the compact form of a rule: a POSIX 'M' format transition,
// an abbreviation and an offset, eg. "M3.2.0/2 EDT -240" or
// "M10.5.0/3 CET +01:00". The offset is either in minutes or [+-]HH:MM.
func Parse(val string) (Rule, error) {
	fields := strings.Fields(val)
	if len(fields) != 3 {
		return Rule{}, fmt.Errorf("invalid rule, expected '<posix-rule> <abbrev> <offset>': %q", val)
	}
	r, err := ParsePOSIX(fields[0])
	if err != nil {
		return Rule{}, err
	}
	offset, err := ParseOffset(fields[2])
	if err != nil {
		return Rule{}, err
	}
	r.Abbrev = fields[1]
	r.Offset = offset
	return r, nil
}

// Compact returns the rule in the form accepted by Parse.
func (r Rule) Compact() string {
	return fmt.Sprintf("%s %s %d", r.POSIX(), r.Abbrev, r.Offset)
}

// ParseOffset parses an offset from UTC expressed either as an integer
// number of minutes or as [+-]HH:MM. An empty string is a zero offset.
func ParseOffset(val string) (int, error) {
	val = strings.TrimSpace(val)
	if len(val) == 0 {
		return 0, nil
	}
	if n, err := strconv.Atoi(val); err == nil {
		return n, nil
	}
	sign := 1
	switch {
	case strings.HasPrefix(val, "-"):
		sign = -1
		val = val[1:]
	case strings.HasPrefix(val, "+"):
		val = val[1:]
	}
	h, m, ok := strings.Cut(val, ":")
	if !ok {
		return 0, fmt.Errorf("invalid offset: %q", val)
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, fmt.Errorf("invalid offset hours: %q: %w", val, err)
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid offset minutes: %q", val)
	}
	return sign * (hours*60 + minutes), nil
}

type ruleConfig struct {
	Abbrev string `yaml:"abbrev"`
	Week   string `yaml:"week"`
	DOW    string `yaml:"dow"`
	Month  string `yaml:"month"`
	Hour   int    `yaml:"hour"`
	Offset string `yaml:"offset"`
}

type ruleYAML struct {
	Abbrev string `yaml:"abbrev"`
	Week   string `yaml:"week"`
	DOW    string `yaml:"dow"`
	Month  string `yaml:"month"`
	Hour   int    `yaml:"hour"`
	Offset int    `yaml:"offset"`
}

// UnmarshalYAML implements yaml.Unmarshaler. A rule may be specified either
// as a scalar in the form accepted by Parse or as a mapping with abbrev,
// week, dow, month, hour and offset fields where week, dow and month may
// be names or numbers.
func (r *Rule) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p, err := Parse(node.Value)
		if err != nil {
			return err
		}
		*r = p
		return nil
	}
	var cfg ruleConfig
	if err := node.Decode(&cfg); err != nil {
		return err
	}
	week, err := ParseWeek(cfg.Week)
	if err != nil {
		return err
	}
	dow, err := ParseWeekday(cfg.DOW)
	if err != nil {
		return err
	}
	month, err := ParseMonth(cfg.Month)
	if err != nil {
		return err
	}
	offset, err := ParseOffset(cfg.Offset)
	if err != nil {
		return err
	}
	*r = Rule{
		Abbrev: cfg.Abbrev,
		Week:   week,
		DOW:    dow,
		Month:  month,
		Hour:   cfg.Hour,
		Offset: offset,
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler using the mapping form with
// named week, day of week and month values.
func (r Rule) MarshalYAML() (any, error) {
	return ruleYAML{
		Abbrev: r.Abbrev,
		Week:   r.Week.String(),
		DOW:    r.DOW.String(),
		Month:  r.Month.String(),
		Hour:   r.Hour,
		Offset: r.Offset,
	}, nil
}
