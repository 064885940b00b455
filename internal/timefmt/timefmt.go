// Package timefmt handles the MM:SS.mmm clip timestamps returned by the
// analysis service and the offset arithmetic applied during reassembly.
package timefmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse converts an "MM:SS.mmm" (or "MM:SS") timestamp into seconds.
// Minute values of 60 and above are accepted; the service occasionally
// emits them and they still carry a well-defined number of seconds.
func Parse(ts string) (float64, error) {
	parts := strings.SplitN(strings.TrimSpace(ts), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", ts)
	}

	minutes, err := strconv.Atoi(parts[0])
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("invalid minutes in timestamp %q", ts)
	}

	seconds, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("invalid seconds in timestamp %q", ts)
	}

	return float64(minutes)*60 + seconds, nil
}

// Format renders seconds as "MM:SS.mmm", rounded to millisecond precision.
func Format(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	sec = math.Round(sec*1000) / 1000

	minutes := int(sec) / 60
	remainder := sec - float64(minutes*60)
	return fmt.Sprintf("%02d:%06.3f", minutes, remainder)
}

// AddOffset shifts a timestamp by offset seconds and re-renders it.
// Timestamps that cannot be parsed are returned unchanged so a malformed
// value from the service never aborts reassembly.
func AddOffset(ts string, offset float64) string {
	if ts == "" {
		return ts
	}
	sec, err := Parse(ts)
	if err != nil {
		return ts
	}
	return Format(sec + offset)
}
