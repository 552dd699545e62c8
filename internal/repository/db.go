package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialects the repository layer supports. The default store is an embedded
// sqlite file; a postgres:// DSN opens through pgx instead.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

type Config struct {
	DSN         string
	DialTimeout time.Duration
	TxTimeout   time.Duration
}

// DB is the explicitly constructed storage handle: opened at process start,
// closed at shutdown, passed into the repositories that need it.
type DB struct {
	sql       *sql.DB
	dialect   string
	txTimeout time.Duration
}

// Open connects to the store named by the DSN and verifies connectivity.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dialect := DialectSQLite
	driver := "sqlite"
	dsn := cfg.DSN
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialect = DialectPostgres
		driver = "pgx"
	} else {
		dsn = sqliteDSN(dsn)
	}

	logger.Info("db.open", "dialect", dialect)
	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		logger.Error("db.open.failed", "dialect", dialect, "error", err)
		return nil, err
	}
	if dialect == DialectSQLite {
		// modernc sqlite opens a fresh database per connection for :memory:
		// DSNs, and file DSNs serialize writers anyway.
		sqlDB.SetMaxOpenConns(1)
	}

	pingCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := sqlDB.PingContext(pingCtx); err != nil {
		logger.Error("db.ping.failed", "dialect", dialect, "error", err)
		_ = sqlDB.Close()
		return nil, err
	}

	logger.Info("db.open.ok", "dialect", dialect)
	return &DB{sql: sqlDB, dialect: dialect, txTimeout: cfg.TxTimeout}, nil
}

// sqliteDSN appends the foreign-key pragma to a sqlite path or DSN.
func sqliteDSN(dsn string) string {
	const pragma = "_pragma=foreign_keys(1)"
	if strings.Contains(dsn, "?") {
		return dsn + "&" + pragma
	}
	return dsn + "?" + pragma
}

// Close closes the database connection gracefully.
func (d *DB) Close(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := d.sql.Close(); err != nil {
		logger.Error("db.close.failed", "error", err)
		return
	}
	logger.Info("db.close.ok")
}

// Dialect reports which store the handle is connected to.
func (d *DB) Dialect() string {
	return d.dialect
}

// HealthCheck pings the store to catch DSN issues early.
func (d *DB) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return d.sql.PingContext(ctx)
}
