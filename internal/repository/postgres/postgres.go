// Package postgres implements domain.Database on PostgreSQL via lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/msomdec/waitlist-backend/internal/domain"
	"github.com/msomdec/waitlist-backend/internal/repository/postgres/migrations"
)

// Options carries the structured connection parameters. DSN assembly
// stays in this package so callers never handle driver syntax.
type Options struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string // "disable", "require", "verify-full", etc.
}

// DB is the PostgreSQL-backed implementation of domain.Database.
type DB struct {
	SqlDB   *sql.DB
	signups *SignupRepository
}

// New opens a connection pool to the database described by opts and
// verifies connectivity. The pool pings dead connections out on reuse,
// so a dropped connection is replaced rather than surfaced to callers.
func New(opts Options) (*DB, error) {
	if opts.Host == "" || opts.Database == "" {
		return nil, fmt.Errorf("postgres: Host and Database are required")
	}
	port := opts.Port
	if port == "" {
		port = "5432"
	}
	sslMode := opts.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		opts.Host, port, opts.User, opts.Password, opts.Database, sslMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	d := &DB{SqlDB: db}
	d.signups = NewSignupRepository(d)
	return d, nil
}

// Migrate applies all pending schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, db.SqlDB)
}

// Close closes all pooled connections.
func (db *DB) Close() error {
	return db.SqlDB.Close()
}

// Signups returns the signup repository backed by this database.
func (db *DB) Signups() domain.SignupRepository {
	return db.signups
}

var _ domain.Database = (*DB)(nil)
