package repository

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// go-sqlite3 only parses columns declared TIMESTAMP/DATETIME/DATE back into
// time.Time.
var sqliteDialect = dialect{name: "sqlite3", timestampType: "TIMESTAMP"}

// NewSQLiteRepository opens a SQLite database at source (a path, a file: URI
// or ":memory:"). Foreign keys are enabled and writes go through a single
// connection.
func NewSQLiteRepository(source string) (*SQLRepository, error) {
	db, err := sql.Open("sqlite3", source)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err = db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return &SQLRepository{db: db, dialect: sqliteDialect}, nil
}
