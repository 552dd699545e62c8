package repository

import (
	"context"
	"fmt"
	"log/slog"
)

// Dates are stored as ISO-8601 text in both dialects so one scan path serves
// sqlite and postgres alike.
var sqliteDDL = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_name TEXT,
		sector TEXT,
		country TEXT,
		region TEXT,
		status TEXT,
		start_date TEXT,
		end_date TEXT,
		description TEXT,
		created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	)`,
	`CREATE TABLE IF NOT EXISTS financial_data (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL REFERENCES projects(id),
		capex REAL,
		opex TEXT,
		irr REAL,
		npv REAL,
		currency TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS environmental_data (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL REFERENCES projects(id),
		co2e_reduction TEXT,
		carbon_intensity TEXT,
		lifecycle_emissions TEXT,
		emissions_profile TEXT,
		data_source TEXT NOT NULL
	)`,
}

var postgresDDL = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id BIGSERIAL PRIMARY KEY,
		project_name TEXT,
		sector TEXT,
		country TEXT,
		region TEXT,
		status TEXT,
		start_date TEXT,
		end_date TEXT,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS financial_data (
		id BIGSERIAL PRIMARY KEY,
		project_id BIGINT NOT NULL REFERENCES projects(id),
		capex DOUBLE PRECISION,
		opex TEXT,
		irr DOUBLE PRECISION,
		npv DOUBLE PRECISION,
		currency TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS environmental_data (
		id BIGSERIAL PRIMARY KEY,
		project_id BIGINT NOT NULL REFERENCES projects(id),
		co2e_reduction TEXT,
		carbon_intensity TEXT,
		lifecycle_emissions TEXT,
		emissions_profile TEXT,
		data_source TEXT NOT NULL
	)`,
}

// Migrate creates the three tables if they do not exist.
func Migrate(ctx context.Context, db *DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	ddl := sqliteDDL
	if db.dialect == DialectPostgres {
		ddl = postgresDDL
	}
	for _, stmt := range ddl {
		if _, err := db.sql.ExecContext(ctx, stmt); err != nil {
			logger.Error("db.migrate.failed", "error", err)
			return fmt.Errorf("migrate schema: %w", err)
		}
	}
	logger.Info("db.migrate.ok", "dialect", db.dialect)
	return nil
}
