package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when a statement addressed a tour that does not exist.
	ErrNotFound = errors.New("tour not found")
	// ErrUnavailable wraps connection-class failures talking to the store.
	ErrUnavailable = errors.New("database unavailable")
)

type DB struct {
	*sqlx.DB
	dialect string
}

// Options configures Open.
type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// ConnectAttempts bounds the startup ping loop; values below 1 mean one try.
	ConnectAttempts int
	ConnectInterval time.Duration
	AutoMigrate     bool
}

// Open connects to the store, waits until it answers a ping and, when asked,
// creates the Tours table.
func Open(ctx context.Context, o Options) (*DB, error) {
	dialect, err := dialectOf(o.Driver)
	if err != nil {
		return nil, err
	}
	xdb, err := sqlx.Open(o.Driver, o.DSN)
	if err != nil {
		return nil, err
	}
	if o.MaxOpenConns > 0 {
		xdb.SetMaxOpenConns(o.MaxOpenConns)
	}
	if o.MaxIdleConns > 0 {
		xdb.SetMaxIdleConns(o.MaxIdleConns)
	}
	if o.ConnMaxLifetime > 0 {
		xdb.SetConnMaxLifetime(o.ConnMaxLifetime)
	}

	if err := ping(ctx, xdb, o.ConnectAttempts, o.ConnectInterval); err != nil {
		_ = xdb.Close()
		return nil, err
	}

	d := &DB{DB: xdb, dialect: dialect}
	if o.AutoMigrate {
		if err := d.EnsureSchema(ctx); err != nil {
			_ = xdb.Close()
			return nil, err
		}
	}
	return d, nil
}

func ping(ctx context.Context, xdb *sqlx.DB, attempts int, interval time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = xdb.PingContext(ctx); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func (d *DB) Close() error { return d.DB.Close() }

// Dialect reports the schema dialect chosen from the driver name.
func (d *DB) Dialect() string { return d.dialect }

func dialectOf(driverName string) (string, error) {
	switch driverName {
	case "mysql":
		return "mysql", nil
	case "pgx":
		return "postgres", nil
	case "sqlite3":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driverName)
	}
}

// EnsureSchema creates the Tours table if it is missing.
func (d *DB) EnsureSchema(ctx context.Context) error {
	if _, err := d.ExecContext(ctx, schema[d.dialect]); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}

var schema = map[string]string{
	"mysql": `CREATE TABLE IF NOT EXISTS Tours (
		tour_id BIGINT AUTO_INCREMENT PRIMARY KEY,
		tour_name VARCHAR(255) NULL,
		description TEXT NULL,
		destination VARCHAR(255) NULL,
		itinerary TEXT NULL,
		highlights TEXT NULL,
		start_date DATETIME NULL,
		end_date DATETIME NULL,
		price DECIMAL(19,4) NULL,
		available_seats INT NULL,
		tour_type VARCHAR(100) NULL,
		image_url TEXT NULL,
		rating DOUBLE NULL,
		reviews_count INT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	"postgres": `CREATE TABLE IF NOT EXISTS Tours (
		tour_id BIGSERIAL PRIMARY KEY,
		tour_name TEXT NULL,
		description TEXT NULL,
		destination TEXT NULL,
		itinerary TEXT NULL,
		highlights TEXT NULL,
		start_date TIMESTAMPTZ NULL,
		end_date TIMESTAMPTZ NULL,
		price NUMERIC(19,4) NULL,
		available_seats INTEGER NULL,
		tour_type TEXT NULL,
		image_url TEXT NULL,
		rating DOUBLE PRECISION NULL,
		reviews_count INTEGER NULL
	)`,

	"sqlite": `CREATE TABLE IF NOT EXISTS Tours (
		tour_id INTEGER PRIMARY KEY AUTOINCREMENT,
		tour_name TEXT NULL,
		description TEXT NULL,
		destination TEXT NULL,
		itinerary TEXT NULL,
		highlights TEXT NULL,
		start_date DATETIME NULL,
		end_date DATETIME NULL,
		price DECIMAL(19,4) NULL,
		available_seats INTEGER NULL,
		tour_type TEXT NULL,
		image_url TEXT NULL,
		rating REAL NULL,
		reviews_count INTEGER NULL
	)`,
}

// classify maps driver errors onto the package sentinels.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if isConnErr(err) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

func isConnErr(err error) bool {
	// context.DeadlineExceeded satisfies net.Error; a slow statement is not a lost connection.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}
