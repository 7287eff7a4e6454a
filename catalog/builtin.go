// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package catalog

import "github.com/cosnicolaou/timezone/rules"

var (
	ausAEDT = rules.Rule{Abbrev: "AEDT", Week: rules.First, DOW: rules.Sunday, Month: rules.October, Hour: 2, Offset: 660}
	ausAEST = rules.Rule{Abbrev: "AEST", Week: rules.First, DOW: rules.Sunday, Month: rules.April, Hour: 3, Offset: 600}

	ceCEST = rules.Rule{Abbrev: "CEST", Week: rules.Last, DOW: rules.Sunday, Month: rules.March, Hour: 2, Offset: 120}
	ceCET  = rules.Rule{Abbrev: "CET", Week: rules.Last, DOW: rules.Sunday, Month: rules.October, Hour: 3, Offset: 60}

	ukBST = rules.Rule{Abbrev: "BST", Week: rules.Last, DOW: rules.Sunday, Month: rules.March, Hour: 1, Offset: 60}
	ukGMT = rules.Rule{Abbrev: "GMT", Week: rules.Last, DOW: rules.Sunday, Month: rules.October, Hour: 2, Offset: 0}
)

// usRules returns the US rules for daylight saving and standard time
// for the specified standard time offset.
func usRules(dstAbbrev, stdAbbrev string, stdOffset int) (dst, std rules.Rule) {
	dst = rules.Rule{Abbrev: dstAbbrev, Week: rules.Second, DOW: rules.Sunday, Month: rules.March, Hour: 2, Offset: stdOffset + 60}
	std = rules.Rule{Abbrev: stdAbbrev, Week: rules.First, DOW: rules.Sunday, Month: rules.November, Hour: 2, Offset: stdOffset}
	return
}

// BuiltinSpecs returns the specifications of the builtin zones.
func BuiltinSpecs() []ZoneSpec {
	usEDT, usEST := usRules("EDT", "EST", -300)
	usCDT, usCST := usRules("CDT", "CST", -360)
	usMDT, usMST := usRules("MDT", "MST", -420)
	usPDT, usPST := usRules("PDT", "PST", -480)
	return []ZoneSpec{
		{Name: "aus-eastern", DST: ausAEDT, STD: ausAEST},
		{Name: "central-europe", DST: ceCEST, STD: ceCET},
		{Name: "uk", DST: ukBST, STD: ukGMT},
		{Name: "us-eastern", DST: usEDT, STD: usEST},
		{Name: "us-central", DST: usCDT, STD: usCST},
		{Name: "us-mountain", DST: usMDT, STD: usMST},
		{Name: "arizona", DST: usMST, STD: usMST},
		{Name: "us-pacific", DST: usPDT, STD: usPST},
	}
}

// Builtin returns a Catalog containing zones for eastern Australia,
// central Europe, the UK and the continental US.
func Builtin(opts ...Option) *Catalog {
	c, err := New(BuiltinSpecs(), opts...)
	if err != nil {
		panic(err)
	}
	return c
}
