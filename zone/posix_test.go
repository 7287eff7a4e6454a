// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zone_test

import (
	"testing"

	"github.com/cosnicolaou/timezone/rules"
	"github.com/cosnicolaou/timezone/zone"
)

func TestPOSIX(t *testing.T) {
	lhDST := rules.Rule{Week: rules.First, DOW: rules.Sunday, Month: rules.October, Hour: 2, Offset: 660}
	lhSTD := rules.Rule{Week: rules.First, DOW: rules.Sunday, Month: rules.April, Hour: 2, Offset: 630}
	for i, tc := range []struct {
		dst, std rules.Rule
		want     string
	}{
		{usEDT, usEST, "EST5EDT,M3.2.0,M11.1.0"},
		{ceCEST, ceCET, "CET-1CEST,M3.5.0,M10.5.0/3"},
		{ukBST, ukGMT, "GMT0BST,M3.5.0/1,M10.5.0"},
		{ausAEDT, ausAEST, "AEST-10AEDT,M10.1.0,M4.1.0/3"},
		{usMST, usMST, "MST7"},
		{lhDST, lhSTD, "<+1030>-10:30<+11>-11,M10.1.0,M4.1.0"},
	} {
		z := zone.New(tc.dst, tc.std)
		if got, want := z.POSIX(), tc.want; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		pz, err := zone.ParsePOSIX(tc.want)
		if err != nil {
			t.Errorf("%v: %v", i, err)
			continue
		}
		if got, want := pz.POSIX(), tc.want; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		if got, want := pz.Observed(), z.Observed(); got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		for year := 2020; year < 2030; year++ {
			if !z.Observed() {
				break
			}
			if got, want := pz.Transitions(year), z.Transitions(year); got != want {
				t.Errorf("%v: got %v, want %v", i, got, want)
			}
		}
	}

	z, err := zone.ParsePOSIX("EST5EDT4,M3.2.0/2,M11.1.0/02:00:00", zone.WithName("us-eastern"))
	if err != nil {
		t.Fatal(err)
	}
	dst, std := z.Rules()
	if got, want := dst, usEDT; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := std, usEST; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := z.Name(), "us-eastern"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	for _, tz := range []string{
		"", "EST", "5EST", "EST5EDT", "EST5EDT,M3.2.0", "EST5EDT,J60,M11.1.0",
		"EST5EDT,M3.2.0,M11.1.9", "ES5", "EST5:99EDT,M3.2.0,M11.1.0",
	} {
		if _, err := zone.ParsePOSIX(tz); err == nil {
			t.Errorf("%q: expected an error", tz)
		}
	}
}
