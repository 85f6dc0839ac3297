// Package store provides a Postgres-backed fixing feed for production use,
// where historical fixings are maintained in a rates database rather than
// embedded fixtures.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/meenmo/credlib/marketdata"
)

// PostgresFixingStore implements marketdata.FixingFeed over a fixings table:
//
//	CREATE TABLE fixings (
//	    series   TEXT        NOT NULL,
//	    fixed_at TIMESTAMPTZ NOT NULL,
//	    rate     DOUBLE PRECISION NOT NULL,
//	    PRIMARY KEY (series, fixed_at)
//	);
type PostgresFixingStore struct {
	db     *sql.DB
	series string
	log    *logrus.Logger
}

// Open connects to Postgres with the lib/pq driver and targets one fixing series.
func Open(dsn, series string, log *logrus.Logger) (*PostgresFixingStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("store.Open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store.Open: ping: %w", err)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PostgresFixingStore{db: db, series: series, log: log}, nil
}

// NewPostgresFixingStore wraps an existing connection pool.
func NewPostgresFixingStore(db *sql.DB, series string, log *logrus.Logger) *PostgresFixingStore {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PostgresFixingStore{db: db, series: series, log: log}
}

// RateOn looks up the fixing at the exact timestamp. Database failures are
// logged and reported as a miss; the fallback chain in marketdata decides
// whether the miss is fatal.
func (s *PostgresFixingStore) RateOn(ts time.Time) (float64, bool) {
	var rate float64
	err := s.db.QueryRow(
		`SELECT rate FROM fixings WHERE series = $1 AND fixed_at = $2`,
		s.series, ts.UTC(),
	).Scan(&rate)
	if err == sql.ErrNoRows {
		return 0, false
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"series":   s.series,
			"fixed_at": ts.Format(time.RFC3339),
		}).WithError(err).Error("fixing lookup failed")
		return 0, false
	}
	return rate, true
}

// Store inserts or updates one fixing.
func (s *PostgresFixingStore) Store(ts time.Time, rate float64) error {
	_, err := s.db.Exec(
		`INSERT INTO fixings (series, fixed_at, rate) VALUES ($1, $2, $3)
		 ON CONFLICT (series, fixed_at) DO UPDATE SET rate = EXCLUDED.rate`,
		s.series, ts.UTC(), rate,
	)
	if err != nil {
		return fmt.Errorf("store.Store: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *PostgresFixingStore) Close() error {
	return s.db.Close()
}

var _ marketdata.FixingFeed = (*PostgresFixingStore)(nil)
