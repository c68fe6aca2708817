package repository

import (
	"context"
	"sync"
	"time"

	"github.com/aminekebichi/MyDay/internal/models"
)

// MemoryRepository keeps users and items in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	items    map[string]models.Item
	users    map[string]models.User
	sessions map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items:    make(map[string]models.Item),
		users:    make(map[string]models.User),
		sessions: make(map[string]string),
	}
}

func (r *MemoryRepository) Close() error {
	return nil
}

func (r *MemoryRepository) Migrate(ctx context.Context) error {
	return nil
}

func (r *MemoryRepository) Create(ctx context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = cloneItem(*item)
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	out := cloneItem(item)
	return &out, nil
}

func (r *MemoryRepository) QueryRange(ctx context.Context, userID string, start, end time.Time, order Order) ([]*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.Item
	for _, item := range r.items {
		if item.UserID != userID || item.Date.Before(start) || item.Date.After(end) {
			continue
		}
		c := cloneItem(item)
		out = append(out, &c)
	}
	sortItems(out, order)
	return out, nil
}

func (r *MemoryRepository) Update(ctx context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[item.ID]
	if !ok || existing.UserID != item.UserID {
		return ErrNotFound
	}
	r.items[item.ID] = cloneItem(*item)
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[id]
	if !ok || existing.UserID != userID {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// Users returns a UserRepository view over the same storage.
func (r *MemoryRepository) Users() UserRepository {
	return memoryUsers{r}
}

type memoryUsers struct {
	r *MemoryRepository
}

func (u memoryUsers) Create(ctx context.Context, user *models.User) error {
	u.r.mu.Lock()
	defer u.r.mu.Unlock()
	u.r.users[user.ID] = *user
	if user.SessionToken != "" {
		u.r.sessions[user.SessionToken] = user.ID
	}
	return nil
}

func (u memoryUsers) GetBySessionToken(ctx context.Context, token string) (*models.User, error) {
	u.r.mu.RLock()
	defer u.r.mu.RUnlock()
	id, ok := u.r.sessions[token]
	if !ok {
		return nil, nil
	}
	user := u.r.users[id]
	return &user, nil
}

func cloneItem(in models.Item) models.Item {
	out := in
	out.Time = cloneTime(in.Time)
	out.RecurrenceEndDate = cloneTime(in.RecurrenceEndDate)
	out.CompletedAt = cloneTime(in.CompletedAt)
	out.Notes = cloneString(in.Notes)
	out.AttendeeName = cloneString(in.AttendeeName)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
