package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aminekebichi/MyDay/internal/models"
)

// ErrNotFound is returned by mutations that matched no row.
var ErrNotFound = errors.New("record not found")

// Order selects the sort applied by QueryRange.
type Order int

const (
	// OrderDay sorts by priority descending, then time of day ascending.
	OrderDay Order = iota
	// OrderWeek sorts by date ascending, then priority descending, then time.
	OrderWeek
)

func (o Order) String() string {
	switch o {
	case OrderDay:
		return "day"
	case OrderWeek:
		return "week"
	default:
		return "unknown"
	}
}

type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	// GetByID returns nil, nil when no item has the id.
	GetByID(ctx context.Context, id string) (*models.Item, error)
	// QueryRange returns the user's items with start <= date <= end in the
	// requested order. Items without a time sort first; remaining ties
	// break on creation time then id.
	QueryRange(ctx context.Context, userID string, start, end time.Time, order Order) ([]*models.Item, error)
	// Update and Delete only touch a row owned by item.UserID / userID.
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, userID, id string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	// GetBySessionToken returns nil, nil when no user holds the token.
	GetBySessionToken(ctx context.Context, token string) (*models.User, error)
}
