package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// ErrNotFound keeps storage-specific 404s consistent across drivers.
var ErrNotFound = errors.New("record not found")

// Dialect names the SQL flavor behind a DB.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DB wraps *sql.DB with the dialect it was opened for, so stores can write
// portable SQL with ? placeholders and rebind for PostgreSQL.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects to the configured database. A postgres:// URL selects the
// PostgreSQL driver; anything else is treated as a SQLite file path
// (":memory:" included). SQLite gets a single connection because the
// embedded engine does not tolerate concurrent writers.
func Open(databaseURL string) (*DB, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		db, err := sql.Open("postgres", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return &DB{DB: db, Dialect: DialectPostgres}, nil
	}

	db, err := sql.Open("sqlite", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return &DB{DB: db, Dialect: DialectSQLite}, nil
}

// Rebind converts ? placeholders to $1..$n when the dialect needs it.
func (d *DB) Rebind(query string) string {
	if d.Dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
