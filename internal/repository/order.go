package repository

import (
	"sort"

	"github.com/aminekebichi/MyDay/internal/models"
)

// lessFor mirrors the ORDER BY clauses used by the SQL store.
func lessFor(order Order) func(a, b *models.Item) bool {
	return func(a, b *models.Item) bool {
		if order == OrderWeek && !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
			return ra > rb
		}
		switch {
		case a.Time == nil && b.Time != nil:
			return true
		case a.Time != nil && b.Time == nil:
			return false
		case a.Time != nil && b.Time != nil && !a.Time.Equal(*b.Time):
			return a.Time.Before(*b.Time)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	}
}

func sortItems(items []*models.Item, order Order) {
	less := lessFor(order)
	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})
}
