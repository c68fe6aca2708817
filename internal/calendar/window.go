// Package calendar computes padded query windows over UTC-stored timestamps
// and re-filters the fetched rows to exact calendar days.
package calendar

import (
	"errors"
	"strings"
	"time"
)

const (
	day       = 24 * time.Hour
	WeekLen   = 7
	dayLayout = "2006-01-02"
)

// ErrMalformedDate is returned when an anchor date cannot be parsed.
var ErrMalformedDate = errors.New("malformed date")

var anchorLayouts = []string{
	dayLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
}

// Window is a closed [Start, End] interval used for the store range query.
type Window struct {
	Start time.Time
	End   time.Time
}

// ParseAnchor parses a YYYY-MM-DD date or an RFC 3339 timestamp. Values
// without an offset are read as UTC.
func ParseAnchor(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMalformedDate
	}
	for _, layout := range anchorLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrMalformedDate
}

// Midnight truncates t to 00:00 of its UTC calendar day.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDay(d0 time.Time) time.Time {
	return d0.Add(day - time.Millisecond)
}

// DayWindow pads the anchor's UTC day by one day on each side.
func DayWindow(anchor time.Time) Window {
	d0 := Midnight(anchor)
	return Window{
		Start: d0.Add(-day),
		End:   endOfDay(d0).Add(day),
	}
}

// WeekWindow covers the seven UTC days starting at the anchor, padded by one
// day on each side.
func WeekWindow(anchor time.Time) Window {
	d0 := Midnight(anchor)
	d6 := d0.AddDate(0, 0, WeekLen-1)
	return Window{
		Start: d0.Add(-day),
		End:   endOfDay(d6).Add(day),
	}
}
