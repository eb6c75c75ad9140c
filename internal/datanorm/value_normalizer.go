package datanorm

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDate      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dayFirstDate = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	slashISODate = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`)
	decimal      = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
)

// NormalizeDate converts the supported date layouts to YYYY-MM-DD.
//
//	YYYY-MM-DD  -> unchanged
//	DD/MM/YYYY  -> YYYY-MM-DD
//	YYYY/MM/DD  -> YYYY-MM-DD
//
// Layouts are recognised by shape only; the calendar is not validated. Any
// other input is returned trimmed but otherwise untouched.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if isoDate.MatchString(s) {
		return s
	}
	if m := dayFirstDate.FindStringSubmatch(s); m != nil {
		return m[3] + "-" + m[2] + "-" + m[1]
	}
	if slashISODate.MatchString(s) {
		return strings.ReplaceAll(s, "/", "-")
	}
	return s
}

// NormalizeBoolean reports whether raw is one of "true", "1" or "yes",
// ignoring case and surrounding whitespace. Everything else is false.
func NormalizeBoolean(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// NormalizeNumber parses raw as a finite float64 in plain decimal notation.
// It returns nil for empty input, "n/a" in any case, NaN and infinities, hex
// or underscored literals, and anything else that does not parse.
func NormalizeNumber(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" || !decimal.MatchString(s) {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ParseClock parses a wall-clock time of the form HH:MM or HH:MM:SS and
// returns it as an offset from midnight.
func ParseClock(raw string) (time.Duration, bool) {
	s := strings.TrimSpace(raw)
	for _, layout := range []string{"15:04", "15:04:05"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, true
		}
	}
	return 0, false
}

// hoursBetween returns the length of a start/end clock range in hours, or nil
// when either side is unparsable or the range is not positive.
func hoursBetween(start, end string) *float64 {
	from, ok := ParseClock(start)
	if !ok {
		return nil
	}
	to, ok := ParseClock(end)
	if !ok || to <= from {
		return nil
	}
	h := (to - from).Hours()
	return &h
}
