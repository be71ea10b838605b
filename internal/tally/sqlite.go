/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package tally

import (
	"database/sql"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const (
	createSamplingTable = `CREATE TABLE IF NOT EXISTS sampling (
		entry INTEGER PRIMARY KEY,
		cnt   INTEGER NOT NULL DEFAULT 0
	)`
	upsertSampling = `INSERT INTO sampling (entry, cnt) VALUES (?, ?)
		ON CONFLICT(entry) DO UPDATE SET cnt = cnt + excluded.cnt`
	selectSampling = `SELECT entry, cnt FROM sampling`
)

type sqliteTally struct {
	db       *sql.DB
	batch    int
	buffered int
	pending  map[uint64]uint64
	total    uint64
}

// NewSQLite returns a Tally that stores counts in the sampling table of the
// SQLite database at dsn. Observations are buffered and upserted in one
// transaction every batch additions.
func NewSQLite(dsn string, batch int) (Tally, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "while opening sqlite tally at %s", dsn)
	}
	// Every connection to ":memory:" gets its own database.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(createSamplingTable); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "while creating sampling table")
	}
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	return &sqliteTally{
		db:      db,
		batch:   batch,
		pending: make(map[uint64]uint64),
	}, nil
}

func (s *sqliteTally) Add(rank uint64) error {
	s.pending[rank]++
	s.total++
	s.buffered++
	if s.buffered >= s.batch {
		return s.flush()
	}
	return nil
}

func (s *sqliteTally) flush() error {
	if len(s.pending) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "while starting tally batch")
	}
	stmt, err := tx.Prepare(upsertSampling)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "while preparing tally upsert")
	}
	for rank, cnt := range s.pending {
		if _, err := stmt.Exec(int64(rank), int64(cnt)); err != nil {
			stmt.Close()
			tx.Rollback()
			return errors.Wrapf(err, "while upserting rank %d", rank)
		}
	}
	stmt.Close()
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "while committing tally batch")
	}
	s.pending = make(map[uint64]uint64)
	s.buffered = 0
	return nil
}

func (s *sqliteTally) Counts() ([]Count, error) {
	if err := s.flush(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(selectSampling)
	if err != nil {
		return nil, errors.Wrap(err, "while reading tally")
	}
	defer rows.Close()

	var out []Count
	for rows.Next() {
		var rank, cnt int64
		if err := rows.Scan(&rank, &cnt); err != nil {
			return nil, errors.Wrap(err, "while scanning tally row")
		}
		out = append(out, Count{Rank: uint64(rank), Count: uint64(cnt)})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "while iterating tally")
	}
	// Ranks from 2^63 up are stored as negative integers, so the order of
	// the table is not the order of the ranks.
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

func (s *sqliteTally) Total() uint64 { return s.total }

func (s *sqliteTally) Close() error {
	return s.db.Close()
}
