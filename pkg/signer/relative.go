package signer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseRelative resolves a relative time expression against now.
//
// Supported forms:
//
//	"now"
//	Go durations: "-24h", "+90m", "1h30m"
//	unit phrases: "-24 hours", "+10 seconds", "1 day 2 hours", "2 weeks ago"
//
// Day, week, month and year units use calendar arithmetic.
func parseRelative(expr string, now time.Time) (time.Time, error) {
	e := strings.ToLower(strings.TrimSpace(expr))
	switch e {
	case "":
		return time.Time{}, fmt.Errorf("%w: empty validity window expression", ErrInvalidInput)
	case "now":
		return now, nil
	}

	if d, err := time.ParseDuration(e); err == nil {
		return now.Add(d), nil
	}

	fields := strings.Fields(e)
	sign := 1
	if fields[len(fields)-1] == "ago" {
		sign = -1
		fields = fields[:len(fields)-1]
	}
	if len(fields) == 0 || len(fields)%2 != 0 {
		return time.Time{}, fmt.Errorf("%w: cannot parse validity window %q", ErrInvalidInput, expr)
	}

	t := now
	for i := 0; i < len(fields); i += 2 {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: cannot parse validity window %q: bad amount %q", ErrInvalidInput, expr, fields[i])
		}
		n *= sign

		switch strings.TrimSuffix(fields[i+1], "s") {
		case "sec", "second":
			t = t.Add(time.Duration(n) * time.Second)
		case "min", "minute":
			t = t.Add(time.Duration(n) * time.Minute)
		case "hour":
			t = t.Add(time.Duration(n) * time.Hour)
		case "day":
			t = t.AddDate(0, 0, n)
		case "week":
			t = t.AddDate(0, 0, 7*n)
		case "month":
			t = t.AddDate(0, n, 0)
		case "year":
			t = t.AddDate(n, 0, 0)
		default:
			return time.Time{}, fmt.Errorf("%w: cannot parse validity window %q: unknown unit %q", ErrInvalidInput, expr, fields[i+1])
		}
	}
	return t, nil
}
