// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rules_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/cosnicolaou/timezone/rules"
	"gopkg.in/yaml.v3"
)

var (
	usEDT = rules.Rule{Abbrev: "EDT", Week: rules.Second, DOW: rules.Sunday, Month: rules.March, Hour: 2, Offset: -240}
	usEST = rules.Rule{Abbrev: "EST", Week: rules.First, DOW: rules.Sunday, Month: rules.November, Hour: 2, Offset: -300}
	cet   = rules.Rule{Abbrev: "CET", Week: rules.Last, DOW: rules.Sunday, Month: rules.October, Hour: 3, Offset: 60}
)

func TestNames(t *testing.T) {
	for i, tc := range []struct {
		got, want string
	}{
		{rules.Last.String(), "last"},
		{rules.Fourth.String(), "fourth"},
		{rules.Week(7).String(), "week(7)"},
		{rules.Sunday.String(), "sun"},
		{rules.Saturday.String(), "sat"},
		{rules.Weekday(0).String(), "weekday(0)"},
		{rules.January.String(), "jan"},
		{rules.December.String(), "dec"},
		{rules.Month(13).String(), "month(13)"},
		{rules.FormatOffset(-240), "-04:00"},
		{rules.FormatOffset(570), "+09:30"},
		{usEDT.String(), "EDT: second sun of mar at 02:00 (UTC-04:00)"},
	} {
		if tc.got != tc.want {
			t.Errorf("%v: got %v, want %v", i, tc.got, tc.want)
		}
	}

	for i, tc := range []struct {
		val   string
		week  rules.Week
		valid bool
	}{
		{"last", rules.Last, true},
		{"Second", rules.Second, true},
		{"3", rules.Third, true},
		{"fifth", 0, false},
	} {
		w, err := rules.ParseWeek(tc.val)
		if (err == nil) != tc.valid {
			t.Errorf("%v: unexpected error state: %v", i, err)
		}
		if got, want := w, tc.week; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
	}

	for i, tc := range []struct {
		val string
		dow rules.Weekday
	}{
		{"sun", rules.Sunday},
		{"Sunday", rules.Sunday},
		{"FRI", rules.Friday},
		{"7", rules.Saturday},
	} {
		d, err := rules.ParseWeekday(tc.val)
		if err != nil {
			t.Errorf("%v: %v", i, err)
		}
		if got, want := d, tc.dow; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
	}
	if _, err := rules.ParseWeekday("xx"); err == nil {
		t.Errorf("expected an error")
	}

	for i, tc := range []struct {
		val   string
		month rules.Month
	}{
		{"mar", rules.March},
		{"September", rules.September},
		{"11", rules.November},
	} {
		m, err := rules.ParseMonth(tc.val)
		if err != nil {
			t.Errorf("%v: %v", i, err)
		}
		if got, want := m, tc.month; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
	}
	if _, err := rules.ParseMonth("smarch"); err == nil {
		t.Errorf("expected an error")
	}
}

func TestEqual(t *testing.T) {
	other := usEST
	other.Abbrev = "XYZ"
	if !usEST.Equal(other) {
		t.Errorf("abbreviations should not be compared")
	}
	other.Hour = 3
	if usEST.Equal(other) {
		t.Errorf("rules with different hours should differ")
	}
}

func TestValidate(t *testing.T) {
	for _, r := range []rules.Rule{usEDT, usEST, cet} {
		if err := r.Validate(); err != nil {
			t.Errorf("%v: %v", r, err)
		}
	}
	bad := rules.Rule{Abbrev: "TOOLONG", Week: 5, DOW: 0, Month: 13, Hour: 24, Offset: 25 * 60}
	err := bad.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, frag := range []string{"abbreviation", "week 5", "day of week 0", "month 13", "hour 24", "offset 1500"} {
		if !strings.Contains(err.Error(), frag) {
			t.Errorf("%q does not contain %q", err.Error(), frag)
		}
	}
	if !strings.Contains(err.Error(), rules.ErrInvalidRule.Error()) {
		t.Errorf("%q does not contain %q", err.Error(), rules.ErrInvalidRule)
	}
}

func TestPOSIX(t *testing.T) {
	for i, tc := range []struct {
		rule rules.Rule
		want string
	}{
		{usEDT, "M3.2.0"},
		{usEST, "M11.1.0"},
		{cet, "M10.5.0/3"},
		{rules.Rule{Week: rules.First, DOW: rules.Saturday, Month: rules.April, Hour: 0}, "M4.1.6/0"},
	} {
		if got, want := tc.rule.POSIX(), tc.want; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		r, err := rules.ParsePOSIX(tc.want)
		if err != nil {
			t.Errorf("%v: %v", i, err)
			continue
		}
		r.Abbrev, r.Offset = tc.rule.Abbrev, tc.rule.Offset
		if got, want := r, tc.rule; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
	}

	for i, tc := range []struct {
		val  string
		hour int
	}{
		{"M3.5.0/1", 1},
		{"M3.5.0/01:00:00", 1},
		{"M9.1.6/24", 24},
		{"M3.5.0/-1", -1},
		{"M3.4.4/26", 26},
	} {
		r, err := rules.ParsePOSIX(tc.val)
		if err != nil {
			t.Errorf("%v: %v", i, err)
			continue
		}
		if got, want := r.Hour, tc.hour; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
	}

	for _, val := range []string{
		"J365", "0/0", "M3.2", "M13.1.0", "M3.6.0", "M3.1.7", "M3.1.0/2:30", "Mx.1.0", "M3.1.0/1:2:3:4",
	} {
		if _, err := rules.ParsePOSIX(val); err == nil {
			t.Errorf("%v: expected an error", val)
		}
	}

	for i, tc := range []struct {
		minutes int
		offset  string
		abbrev  string
	}{
		{-300, "5", "<-05>"},
		{0, "0", "<+00>"},
		{60, "-1", "<+01>"},
		{570, "-9:30", "<+0930>"},
		{-210, "3:30", "<-0330>"},
	} {
		if got, want := rules.POSIXOffset(tc.minutes), tc.offset; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		if got, want := rules.POSIXAbbrev("", tc.minutes), tc.abbrev; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
	}
	if got, want := rules.POSIXAbbrev("AEST", 600), "AEST"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := rules.POSIXAbbrev("+03", 180), "<+03>"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	for i, tc := range []struct {
		val  string
		want rules.Rule
	}{
		{"M3.2.0/2 EDT -240", usEDT},
		{"M11.1.0 EST -05:00", usEST},
		{"M10.5.0/3 CET +01:00", cet},
	} {
		r, err := rules.Parse(tc.val)
		if err != nil {
			t.Errorf("%v: %v", i, err)
			continue
		}
		if got, want := r, tc.want; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		rt, err := rules.Parse(r.Compact())
		if err != nil {
			t.Errorf("%v: %v", i, err)
			continue
		}
		if got, want := rt, tc.want; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
	}
	for _, val := range []string{"M3.2.0 EDT", "M3.2.0 EDT x", "M3.2.0 EDT 04:xx", "J10 EDT -240"} {
		if _, err := rules.Parse(val); err == nil {
			t.Errorf("%v: expected an error", val)
		}
	}
}

const rulesYAML = `
mapping:
  abbrev: EDT
  week: second
  dow: sunday
  month: mar
  hour: 2
  offset: -240
numeric:
  abbrev: EST
  week: 1
  dow: 1
  month: 11
  hour: 2
  offset: "-05:00"
compact: M10.5.0/3 CET 60
`

func TestYAML(t *testing.T) {
	var cfg struct {
		Mapping rules.Rule `yaml:"mapping"`
		Numeric rules.Rule `yaml:"numeric"`
		Compact rules.Rule `yaml:"compact"`
	}
	if err := yaml.Unmarshal([]byte(rulesYAML), &cfg); err != nil {
		t.Fatal(err)
	}
	if got, want := cfg.Mapping, usEDT; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := cfg.Numeric, usEST; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := cfg.Compact, cet; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	out, err := yaml.Marshal(cfg.Mapping)
	if err != nil {
		t.Fatal(err)
	}
	var rt rules.Rule
	if err := yaml.Unmarshal(out, &rt); err != nil {
		t.Fatal(err)
	}
	if got, want := rt, usEDT; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	var bad rules.Rule
	if err := yaml.Unmarshal([]byte("week: fifth\ndow: sun\nmonth: mar\n"), &bad); err == nil {
		t.Errorf("expected an error")
	}
}
