/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

// Package tally aggregates drawn ranks into per-rank counts.
package tally

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const (
	// KindCounter keeps counts in a Go map.
	KindCounter = "counter"
	// KindSQLite keeps counts in an in-memory SQLite table.
	KindSQLite = "sqlite"

	// DefaultBatchSize is the number of ranks buffered before a store that
	// writes in batches flushes them.
	DefaultBatchSize = 100000
)

// Count is the number of times a rank was observed.
type Count struct {
	Rank  uint64
	Count uint64
}

// Tally accumulates observed ranks. Implementations are not safe for
// concurrent use.
type Tally interface {
	// Add records one observation of rank.
	Add(rank uint64) error
	// Counts returns the per-rank counts ordered by rank. Ranks that were
	// never observed are omitted.
	Counts() ([]Count, error)
	// Total returns the number of observations recorded so far.
	Total() uint64
	Close() error
}

// Open returns a Tally of the given kind.
func Open(kind string, batch int) (Tally, error) {
	switch strings.ToLower(kind) {
	case "", KindCounter:
		return NewMemory(), nil
	case KindSQLite:
		return NewSQLite(":memory:", batch)
	default:
		return nil, errors.Errorf("unknown tally storage %q, expected %q or %q",
			kind, KindCounter, KindSQLite)
	}
}

type memory struct {
	counts map[uint64]uint64
	total  uint64
}

// NewMemory returns a map backed Tally.
func NewMemory() Tally {
	return &memory{counts: make(map[uint64]uint64)}
}

func (m *memory) Add(rank uint64) error {
	m.counts[rank]++
	m.total++
	return nil
}

func (m *memory) Counts() ([]Count, error) {
	out := make([]Count, 0, len(m.counts))
	for rank, cnt := range m.counts {
		out = append(out, Count{Rank: rank, Count: cnt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

func (m *memory) Total() uint64 { return m.total }

func (m *memory) Close() error { return nil }
