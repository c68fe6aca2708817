package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aminekebichi/MyDay/internal/models"
)

func item(id string, date time.Time) *models.Item {
	return &models.Item{ID: id, Date: date}
}

func ids(items []*models.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestDayKey(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	assert.Equal(t, "2026-03-01", DayKey(time.Date(2026, 2, 28, 21, 0, 0, 0, loc)))
	assert.Equal(t, "2026-02-28", DayKey(time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)))
}

func TestFilterDayDropsPaddingArtifacts(t *testing.T) {
	target := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	candidates := []*models.Item{
		item("prev-late", time.Date(2026, 2, 27, 23, 0, 0, 0, time.UTC)),
		item("midnight", target),
		item("afternoon", target.Add(15*time.Hour)),
		item("next-early", time.Date(2026, 3, 1, 0, 30, 0, 0, time.UTC)),
		item("last-ms", target.Add(24*time.Hour-time.Millisecond)),
	}

	got := FilterDay(candidates, target.Add(11*time.Hour))
	assert.Equal(t, []string{"midnight", "afternoon", "last-ms"}, ids(got))
}

func TestFilterDayPreservesOrder(t *testing.T) {
	target := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	candidates := []*models.Item{
		item("c", target.Add(3*time.Hour)),
		item("x", target.Add(-time.Hour)),
		item("a", target.Add(1*time.Hour)),
		item("b", target.Add(2*time.Hour)),
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids(FilterDay(candidates, target)))
}

func TestFilterIsIdempotent(t *testing.T) {
	start := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	var candidates []*models.Item
	for h := -48; h < 24*9; h += 5 {
		candidates = append(candidates, item(start.Add(time.Duration(h)*time.Hour).Format(time.RFC3339), start.Add(time.Duration(h)*time.Hour)))
	}

	days := WeekDays(start)
	once := FilterDays(candidates, days)
	twice := FilterDays(once, days)
	assert.Equal(t, ids(once), ids(twice))

	single := FilterDay(candidates, start)
	assert.Equal(t, ids(single), ids(FilterDay(single, start)))
}

func TestWeekDays(t *testing.T) {
	days := WeekDays(time.Date(2026, 2, 25, 18, 0, 0, 0, time.UTC))
	assert.Len(t, days, 7)
	for _, k := range []string{"2026-02-25", "2026-02-26", "2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02", "2026-03-03"} {
		assert.True(t, days.Has(k), k)
	}
	assert.False(t, days.Has("2026-02-24"))
	assert.False(t, days.Has("2026-03-04"))
}

func TestFilterDaysWeekUnionMatchesPerDayFilter(t *testing.T) {
	start := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	var candidates []*models.Item
	for h := -30; h < 24*8+30; h += 7 {
		ts := start.Add(time.Duration(h) * time.Hour)
		candidates = append(candidates, item(ts.Format(time.RFC3339), ts))
	}

	week := ids(FilterDays(candidates, WeekDays(start)))

	var union []string
	for _, c := range candidates {
		for d := 0; d < WeekLen; d++ {
			if len(FilterDay([]*models.Item{c}, start.AddDate(0, 0, d))) == 1 {
				union = append(union, c.ID)
			}
		}
	}
	assert.Equal(t, union, week)
}

func TestFilterDaysEmptyInputIsNotNil(t *testing.T) {
	got := FilterDays(nil, WeekDays(time.Now()))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
