package repository

import (
	"context"
	"fmt"
)

// Store is a backend that serves both items and users.
type Store interface {
	ItemRepository
	Users() UserRepository
	Migrate(ctx context.Context) error
	Close() error
}

// Open connects to the backend named by driver: "postgres", "sqlite3" or
// "memory".
func Open(driver, dsn string) (Store, error) {
	var (
		repo *SQLRepository
		err  error
	)
	switch driver {
	case "postgres":
		repo, err = NewPostgresRepository(dsn)
	case "sqlite3", "sqlite":
		repo, err = NewSQLiteRepository(dsn)
	case "memory":
		return NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}
	if err != nil {
		return nil, err
	}
	return repo, nil
}
