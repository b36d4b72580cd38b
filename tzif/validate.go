package tzif

import (
	"errors"
	"fmt"
)

// Validate cross-checks a decoded file against the count constraints of
// RFC 8536 section 3.1 that the wire format itself cannot enforce. It is
// advisory: Decode accepts files that fail these checks, since real
// zoneinfo trees contain marginal files that remain usable.
//
// All findings are reported, joined into a single error.
func Validate(f File) error {
	var (
		errs   []error
		header = f.Header
		body   = f.Body
	)

	// Isutcnt
	if header.Isutcnt != 0 && header.Isutcnt != header.Typecnt {
		errs = append(errs, fmt.Errorf("invalid isutcnt (%d): must be 0 or equal to typecnt (%d)", header.Isutcnt, header.Typecnt))
	}
	if len(body.UTLocal) != int(header.Isutcnt) {
		errs = append(errs, fmt.Errorf("invalid isutcnt: header = %d, data = %d", header.Isutcnt, len(body.UTLocal)))
	}

	// Isstdcnt
	if header.Isstdcnt != 0 && header.Isstdcnt != header.Typecnt {
		errs = append(errs, fmt.Errorf("invalid isstdcnt (%d): must be 0 or equal to typecnt (%d)", header.Isstdcnt, header.Typecnt))
	}
	if len(body.StandardWall) != int(header.Isstdcnt) {
		errs = append(errs, fmt.Errorf("invalid isstdcnt: header = %d, data = %d", header.Isstdcnt, len(body.StandardWall)))
	}

	// Leapcnt
	if len(body.LeapSeconds) != int(header.Leapcnt) {
		errs = append(errs, fmt.Errorf("invalid leapcnt: header = %d, data = %d", header.Leapcnt, len(body.LeapSeconds)))
	}

	// Timecnt
	if len(body.TransitionTimes) != int(header.Timecnt) {
		errs = append(errs, fmt.Errorf("invalid timecnt: header = %d, transition times = %d", header.Timecnt, len(body.TransitionTimes)))
	}
	if times, types := len(body.TransitionTimes), len(body.TransitionTypes); times != types {
		errs = append(errs, fmt.Errorf("inconsistent transitions: transition times = %d, transition types = %d", times, types))
	}
	for i, t := range body.TransitionTypes {
		if int(t) >= len(body.LocalTimeTypes) {
			errs = append(errs, fmt.Errorf("transition %d references local time type %d of %d", i, t, len(body.LocalTimeTypes)))
		}
	}

	// Typecnt
	if header.Typecnt == 0 {
		errs = append(errs, fmt.Errorf("invalid typecnt: must not be zero"))
	}
	if len(body.LocalTimeTypes) != int(header.Typecnt) {
		errs = append(errs, fmt.Errorf("invalid typecnt: header = %d, data = %d", header.Typecnt, len(body.LocalTimeTypes)))
	}

	// Charcnt
	if header.Charcnt == 0 {
		errs = append(errs, fmt.Errorf("invalid charcnt: must not be zero"))
	}
	if len(body.Designations) != int(header.Charcnt) {
		errs = append(errs, fmt.Errorf("invalid charcnt: header = %d, data = %d", header.Charcnt, len(body.Designations)))
	}
	if n := len(body.Designations); n > 0 && body.Designations[n-1] != 0 {
		errs = append(errs, fmt.Errorf("invalid time zone designations: missing null terminator"))
	}

	return errors.Join(errs...)
}
