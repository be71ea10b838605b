/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package tally

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var observations = []uint64{3, 1, 1, 7, 3, 1, 2, 1000000, 1}

var expectedCounts = []Count{
	{Rank: 1, Count: 4},
	{Rank: 2, Count: 1},
	{Rank: 3, Count: 2},
	{Rank: 7, Count: 1},
	{Rank: 1000000, Count: 1},
}

func runTallyTest(t *testing.T, tl Tally) {
	defer func() { require.NoError(t, tl.Close()) }()

	counts, err := tl.Counts()
	require.NoError(t, err)
	require.Empty(t, counts)
	require.Zero(t, tl.Total())

	for _, rank := range observations {
		require.NoError(t, tl.Add(rank))
	}
	require.Equal(t, uint64(len(observations)), tl.Total())

	counts, err = tl.Counts()
	require.NoError(t, err)
	require.Equal(t, expectedCounts, counts)

	// Counts can be read more than once and keeps accumulating afterwards.
	require.NoError(t, tl.Add(2))
	counts, err = tl.Counts()
	require.NoError(t, err)
	require.Equal(t, Count{Rank: 2, Count: 2}, counts[1])
	require.Equal(t, uint64(len(observations)+1), tl.Total())
}

func TestMemory(t *testing.T) {
	runTallyTest(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	for _, batch := range []int{1, 2, 4, DefaultBatchSize} {
		tl, err := NewSQLite(":memory:", batch)
		require.NoError(t, err)
		runTallyTest(t, tl)
	}
}

func TestSQLiteFile(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "tally.db")
	tl, err := NewSQLite(dsn, 3)
	require.NoError(t, err)
	runTallyTest(t, tl)
}

func TestOpen(t *testing.T) {
	for _, kind := range []string{"", KindCounter, "COUNTER"} {
		tl, err := Open(kind, 0)
		require.NoError(t, err)
		_, ok := tl.(*memory)
		require.True(t, ok, "kind %q", kind)
		require.NoError(t, tl.Close())
	}

	tl, err := Open(KindSQLite, 0)
	require.NoError(t, err)
	s, ok := tl.(*sqliteTally)
	require.True(t, ok)
	require.Equal(t, DefaultBatchSize, s.batch)
	require.NoError(t, tl.Close())

	_, err = Open("duckdb", 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duckdb")
}

func TestSQLiteRanksAboveMaxInt64(t *testing.T) {
	tl, err := NewSQLite(":memory:", 2)
	require.NoError(t, err)
	defer func() { require.NoError(t, tl.Close()) }()

	for _, rank := range []uint64{1<<63 + 5, 1, math.MaxUint64, 1<<63 + 5, 1 << 62} {
		require.NoError(t, tl.Add(rank))
	}
	counts, err := tl.Counts()
	require.NoError(t, err)
	require.Equal(t, []Count{
		{Rank: 1, Count: 1},
		{Rank: 1 << 62, Count: 1},
		{Rank: 1<<63 + 5, Count: 2},
		{Rank: math.MaxUint64, Count: 1},
	}, counts)
}
