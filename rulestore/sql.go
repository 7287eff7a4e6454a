// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rulestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/cosnicolaou/timezone/internal/logging"
	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql"
)

// SQLConfig represents the configuration of a SQL store.
type SQLConfig struct {
	DSN             string        `yaml:"dsn"`
	Table           string        `yaml:"table"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	Attempts        uint          `yaml:"attempts"`
}

// DefaultTable is the table used when SQLConfig.Table is not set.
const DefaultTable = "zone_rules"

// SQL is a Store that saves the rules for a named zone to a row in a
// MySQL table. Failed operations are retried with a jittered backoff.
type SQL struct {
	db       *sqlx.DB
	table    string
	zone     string
	attempts uint
	delay    time.Duration
	logger   *slog.Logger
}

// OpenSQL opens the database specified by cfg and returns a Store for
// the rules of the named zone.
func OpenSQL(ctx context.Context, cfg SQLConfig, zone string) (*SQL, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("db dsn is empty")
	}
	db, err := sqlx.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	s := NewSQL(db, cfg.Table, zone)
	if cfg.Attempts > 0 {
		s.attempts = cfg.Attempts
	}
	s.logger = logging.LoggerFromContext(ctx).With("mod", "rulestore", "store", s.String())
	if err := s.retry(ctx, func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQL returns a Store for the rules of the named zone using an
// existing database connection.
func NewSQL(db *sqlx.DB, table, zone string) *SQL {
	if table == "" {
		table = DefaultTable
	}
	return &SQL{
		db:       db,
		table:    table,
		zone:     zone,
		attempts: 5,
		delay:    100 * time.Millisecond,
		logger:   logging.Discard,
	}
}

func (s *SQL) String() string {
	return "sql:" + s.table + "/" + s.zone
}

// Close closes the underlying database connection.
func (s *SQL) Close() error {
	return s.db.Close()
}

// CreateTable creates the table used to store rules if it does not
// already exist.
func (s *SQL) CreateTable(ctx context.Context) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		name VARCHAR(64) NOT NULL PRIMARY KEY,
		data VARBINARY(%d) NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`, s.table, PairSize)
	return s.retry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, stmt)
		return err
	})
}

// Save implements Store.
func (s *SQL) Save(ctx context.Context, data []byte) error {
	stmt := fmt.Sprintf(`
		INSERT INTO %s (name, data) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE data = VALUES(data)`, s.table)
	return s.retry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, stmt, s.zone, data)
		return err
	})
}

// Load implements Store, it returns ErrNotFound if there is no row
// for the zone.
func (s *SQL) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	query := fmt.Sprintf(`SELECT data FROM %s WHERE name = ?`, s.table)
	err := s.retry(ctx, func() error {
		err := s.db.GetContext(ctx, &data, query, s.zone)
		if errors.Is(err, sql.ErrNoRows) {
			return retry.Unrecoverable(fmt.Errorf("%v: %w", s, ErrNotFound))
		}
		return err
	})
	return data, err
}

func (s *SQL) retry(ctx context.Context, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.MaxDelay(5*time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Debug("retrying", "attempt", n+1, "err", err)
		}),
	)
}
