// Package sqldb streams transactions out of a SQL table.
//
// The query must yield four columns in the order type, client, tx, amount, already
// sorted in arrival order. PostgreSQL (lib/pq) and SQLite (mattn/go-sqlite3) drivers
// are registered by this package.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sheikh-saqib/payments-ledger-replay/internal/ingest"
	interfaces "github.com/sheikh-saqib/payments-ledger-replay/internal/interfaces"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"

	DefaultQuery = `SELECT type, client, tx, amount FROM transactions ORDER BY id`
)

type Source struct {
	db     *sql.DB
	ownsDB bool
	rows   *sql.Rows
	query  string
	record int
}

// Open connects to dsn using driver and prepares a Source that runs query lazily on the first Next.
func Open(ctx context.Context, driver, dsn, query string) (*Source, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("can not open database : %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("can not connect with database : %w", err)
	}

	s := NewSource(db, query)
	s.ownsDB = true
	return s, nil
}

// NewSource reads from an existing connection pool. Close does not close db.
func NewSource(db *sql.DB, query string) *Source {
	if query == "" {
		query = DefaultQuery
	}
	return &Source{
		db:    db,
		query: query,
	}
}

func (s *Source) Next(ctx context.Context) (models.Transaction, error) {
	if s.rows == nil {
		rows, err := s.db.QueryContext(ctx, s.query)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("failed to query transactions : %w", err)
		}
		s.rows = rows
	}

	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return models.Transaction{}, fmt.Errorf("error reading rows after record %d: %w", s.record, err)
		}
		return models.Transaction{}, io.EOF
	}
	s.record++

	var (
		kind, client, tx string
		amount           sql.NullString
	)
	if err := s.rows.Scan(&kind, &client, &tx, &amount); err != nil {
		return models.Transaction{}, fmt.Errorf("%w: record %d: %v", ingest.ErrMalformedRecord, s.record, err)
	}

	txn, err := ingest.ParseRecord(kind, client, tx, amount.String)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("error parsing record %d: %w", s.record, err)
	}
	return txn, nil
}

func (s *Source) Close() error {
	var err error
	if s.rows != nil {
		err = s.rows.Close()
	}
	if s.ownsDB {
		if cerr := s.db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

var _ interfaces.TransactionSource = (*Source)(nil)
