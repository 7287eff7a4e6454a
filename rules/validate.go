// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rules

import (
	"fmt"

	"cloudeng.io/errors"
)

// ErrInvalidRule is wrapped by all errors returned by Validate.
var ErrInvalidRule = errors.New("invalid rule")

// MaxOffset is the largest magnitude, in minutes, of a valid offset.
const MaxOffset = 24 * 60

// Validate returns an error describing every field of r that is outside
// of its documented range. Resolve and the zone conversions never call
// Validate, it is provided for callers that want bounded behaviour.
func (r Rule) Validate() error {
	var errs errors.M
	if len(r.Abbrev) > MaxAbbrevLen {
		errs.Append(fmt.Errorf("%w: abbreviation %q is longer than %v characters", ErrInvalidRule, r.Abbrev, MaxAbbrevLen))
	}
	if r.Week > Fourth {
		errs.Append(fmt.Errorf("%w: week %d is not in the range 0-4", ErrInvalidRule, r.Week))
	}
	if r.DOW < Sunday || r.DOW > Saturday {
		errs.Append(fmt.Errorf("%w: day of week %d is not in the range 1-7", ErrInvalidRule, r.DOW))
	}
	if r.Month < January || r.Month > December {
		errs.Append(fmt.Errorf("%w: month %d is not in the range 1-12", ErrInvalidRule, r.Month))
	}
	if r.Hour < 0 || r.Hour > 23 {
		errs.Append(fmt.Errorf("%w: hour %d is not in the range 0-23", ErrInvalidRule, r.Hour))
	}
	if r.Offset < -MaxOffset || r.Offset > MaxOffset {
		errs.Append(fmt.Errorf("%w: offset %d minutes exceeds +/- %v", ErrInvalidRule, r.Offset, MaxOffset))
	}
	return errs.Err()
}
