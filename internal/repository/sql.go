package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aminekebichi/MyDay/internal/models"
)

type dialect struct {
	name          string
	timestampType string
	numbered      bool
}

// rebind rewrites ? placeholders as $1, $2, ... for dialects that need it.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SQLRepository stores users and items through database/sql.
type SQLRepository struct {
	db      *sql.DB
	dialect dialect
}

func (r *SQLRepository) Close() error {
	return r.db.Close()
}

const itemColumns = `id, user_id, title, type, priority, date, time_of_day, recurrence,
	recurrence_end_date, notes, attendee_name, completed_at, created_at, updated_at`

const priorityRank = `CASE priority WHEN 'CRITICAL' THEN 3 WHEN 'IMPORTANT' THEN 2 WHEN 'ROUTINE' THEN 1 ELSE 0 END`

var orderClauses = map[Order]string{
	OrderDay:  priorityRank + ` DESC, CASE WHEN time_of_day IS NULL THEN 0 ELSE 1 END, time_of_day ASC, created_at ASC, id ASC`,
	OrderWeek: `date ASC, ` + priorityRank + ` DESC, CASE WHEN time_of_day IS NULL THEN 0 ELSE 1 END, time_of_day ASC, created_at ASC, id ASC`,
}

func (r *SQLRepository) Migrate(ctx context.Context) error {
	ts := r.dialect.timestampType
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			session_token TEXT UNIQUE,
			created_at ` + ts + ` NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			type TEXT NOT NULL,
			priority TEXT NOT NULL,
			date ` + ts + ` NOT NULL,
			time_of_day ` + ts + `,
			recurrence TEXT NOT NULL DEFAULT 'NONE',
			recurrence_end_date ` + ts + `,
			notes TEXT,
			attendee_name TEXT,
			completed_at ` + ts + `,
			created_at ` + ts + ` NOT NULL,
			updated_at ` + ts + ` NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS items_user_date_idx ON items (user_id, date)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate %s schema: %w", r.dialect.name, err)
		}
	}
	return nil
}

func (r *SQLRepository) Create(ctx context.Context, item *models.Item) error {
	query := r.dialect.rebind(`INSERT INTO items (` + itemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.UserID, item.Title, string(item.Type), string(item.Priority),
		item.Date.UTC(), nullTime(item.Time), string(item.Recurrence),
		nullTime(item.RecurrenceEndDate), nullString(item.Notes), nullString(item.AttendeeName),
		nullTime(item.CompletedAt), item.CreatedAt.UTC(), item.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	query := r.dialect.rebind(`SELECT ` + itemColumns + ` FROM items WHERE id = ?`)
	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (r *SQLRepository) QueryRange(ctx context.Context, userID string, start, end time.Time, order Order) ([]*models.Item, error) {
	clause, ok := orderClauses[order]
	if !ok {
		return nil, fmt.Errorf("unsupported order %d", order)
	}
	query := r.dialect.rebind(`SELECT ` + itemColumns + ` FROM items
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY ` + clause)
	rows, err := r.db.QueryContext(ctx, query, userID, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *SQLRepository) Update(ctx context.Context, item *models.Item) error {
	query := r.dialect.rebind(`UPDATE items SET title = ?, type = ?, priority = ?, date = ?, time_of_day = ?,
		recurrence = ?, recurrence_end_date = ?, notes = ?, attendee_name = ?, completed_at = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`)
	result, err := r.db.ExecContext(ctx, query,
		item.Title, string(item.Type), string(item.Priority), item.Date.UTC(), nullTime(item.Time),
		string(item.Recurrence), nullTime(item.RecurrenceEndDate), nullString(item.Notes),
		nullString(item.AttendeeName), nullTime(item.CompletedAt), item.UpdatedAt.UTC(),
		item.ID, item.UserID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return affectedOne(result)
}

func (r *SQLRepository) Delete(ctx context.Context, userID, id string) error {
	query := r.dialect.rebind(`DELETE FROM items WHERE id = ? AND user_id = ?`)
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return affectedOne(result)
}

// Users returns a UserRepository over the same database.
func (r *SQLRepository) Users() UserRepository {
	return sqlUsers{r}
}

type sqlUsers struct {
	r *SQLRepository
}

func (u sqlUsers) Create(ctx context.Context, user *models.User) error {
	query := u.r.dialect.rebind(`INSERT INTO users (id, display_name, session_token, created_at) VALUES (?, ?, ?, ?)`)
	var token sql.NullString
	if user.SessionToken != "" {
		token = sql.NullString{String: user.SessionToken, Valid: true}
	}
	if _, err := u.r.db.ExecContext(ctx, query, user.ID, user.DisplayName, token, user.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (u sqlUsers) GetBySessionToken(ctx context.Context, token string) (*models.User, error) {
	query := u.r.dialect.rebind(`SELECT id, display_name, session_token, created_at FROM users WHERE session_token = ?`)
	user := &models.User{}
	var st sql.NullString
	err := u.r.db.QueryRowContext(ctx, query, token).Scan(&user.ID, &user.DisplayName, &st, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by session: %w", err)
	}
	user.SessionToken = st.String
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	item := &models.Item{}
	var (
		itemType, priority, recurrence string
		tm, recurrenceEnd, completedAt sql.NullTime
		notes, attendee                sql.NullString
	)
	err := row.Scan(&item.ID, &item.UserID, &item.Title, &itemType, &priority, &item.Date, &tm,
		&recurrence, &recurrenceEnd, &notes, &attendee, &completedAt, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.Type = models.ItemType(itemType)
	item.Priority = models.Priority(priority)
	item.Recurrence = models.Recurrence(recurrence)
	item.Date = item.Date.UTC()
	item.CreatedAt = item.CreatedAt.UTC()
	item.UpdatedAt = item.UpdatedAt.UTC()
	item.Time = timePtr(tm)
	item.RecurrenceEndDate = timePtr(recurrenceEnd)
	item.CompletedAt = timePtr(completedAt)
	item.Notes = stringPtr(notes)
	item.AttendeeName = stringPtr(attendee)
	return item, nil
}

func affectedOne(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
