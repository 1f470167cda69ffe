// Package result defines the immutable probe outcome record that travels
// from the probers through the sink into the durable store.
package result

import (
	"fmt"
	"time"
)

// TimeFormat is the millisecond-precision timestamp layout used when
// persisting records.
const TimeFormat = "2006-01-02 15:04:05.000"

// Record is a single probe outcome. A prober creates it the moment a
// reachability check completes; it is never mutated afterwards.
type Record struct {
	Target     string
	ObservedAt time.Time
	Success    bool
}

// FormatBool renders the success flag with the store literal.
func FormatBool(success bool) string {
	if success {
		return "True"
	}
	return "False"
}

// ParseBool parses the success flag from a store literal. Unlike
// strconv.ParseBool it accepts only the True/False spellings, so a
// malformed flag surfaces as a data error instead of being coerced.
func ParseBool(s string) (bool, error) {
	switch s {
	case "True", "true":
		return true, nil
	case "False", "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid success flag %q", s)
}
