// Package timeutil parses the compact reading-window syntax used by
// `shelf report --last`.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is used when no window is given.
const DefaultWindow = "1w"

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
)

type unit struct {
	label   string
	size    time.Duration
	aliases []string
}

// units are ordered largest first; FormatWindow relies on it.
var units = []unit{
	{label: "mo", size: month, aliases: []string{"mo", "mon", "month", "months"}},
	{label: "w", size: week, aliases: []string{"w", "wk", "wks", "week", "weeks"}},
	{label: "d", size: day, aliases: []string{"d", "day", "days"}},
	{label: "h", size: time.Hour, aliases: []string{"h", "hr", "hrs", "hour", "hours"}},
}

var (
	segment = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)\s*`)
	aliases = func() map[string]time.Duration {
		m := make(map[string]time.Duration)
		for _, u := range units {
			for _, a := range u.aliases {
				m[a] = u.size
			}
		}
		return m
	}()
)

// ParseWindow reads windows like "1w", "3d" or "1mo2w" and returns the
// duration plus its canonical label. Empty input means DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	if rest == "" {
		rest = DefaultWindow
	}

	var total time.Duration
	for rest != "" {
		m := segment.FindStringSubmatch(rest)
		if m == nil {
			return 0, "", fmt.Errorf("timeutil: invalid window segment %q", strings.TrimSpace(rest))
		}
		n, err := strconv.ParseInt(m[1], 10, 32)
		if err != nil {
			return 0, "", fmt.Errorf("timeutil: invalid window value %q: %w", m[1], err)
		}
		size, ok := aliases[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("timeutil: unsupported window unit %q", m[2])
		}
		total += time.Duration(n) * size
		rest = rest[len(m[0]):]
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("timeutil: window must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders d with the largest units first. Remainders below an
// hour are dropped.
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, u := range units {
		if d < u.size {
			continue
		}
		n := d / u.size
		d -= n * u.size
		fmt.Fprintf(&b, "%d%s", n, u.label)
	}
	if b.Len() == 0 {
		return "0h"
	}
	return b.String()
}

// Since returns the start of a window ending at now.
func Since(now time.Time, window time.Duration) time.Time {
	return now.Add(-window)
}
