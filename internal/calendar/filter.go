package calendar

import (
	"time"

	"github.com/aminekebichi/MyDay/internal/models"
)

// DaySet is a set of canonical YYYY-MM-DD keys.
type DaySet map[string]struct{}

// Has reports whether key is in the set.
func (s DaySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// DayKey returns the UTC calendar date of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// SingleDay returns a set holding only the anchor's UTC date.
func SingleDay(anchor time.Time) DaySet {
	return DaySet{DayKey(anchor): {}}
}

// WeekDays returns the seven consecutive UTC dates starting at the anchor.
func WeekDays(anchor time.Time) DaySet {
	set := make(DaySet, WeekLen)
	d := Midnight(anchor)
	for i := 0; i < WeekLen; i++ {
		set[DayKey(d)] = struct{}{}
		d = d.AddDate(0, 0, 1)
	}
	return set
}

// FilterDays keeps the items whose UTC calendar date is in days. Input order
// is preserved and the result is never nil.
func FilterDays(items []*models.Item, days DaySet) []*models.Item {
	out := make([]*models.Item, 0, len(items))
	for _, item := range items {
		if days.Has(DayKey(item.Date)) {
			out = append(out, item)
		}
	}
	return out
}

// FilterDay keeps the items scheduled on the anchor's UTC calendar date.
func FilterDay(items []*models.Item, anchor time.Time) []*models.Item {
	return FilterDays(items, SingleDay(anchor))
}
