/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package randvar

import (
	"sort"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/zipfian"
	"github.com/stretchr/testify/require"
)

func TestScrambled(t *testing.T) {
	_, err := NewScrambled(100, 1)
	require.True(t, errors.Is(err, zipfian.ErrInvalidParameter))

	const size = 1000
	s, err := NewScrambled(size, 1.5)
	require.NoError(t, err)

	rng := NewSeededRand(4)
	counts := make(map[uint64]int)
	for i := 0; i < 20000; i++ {
		k := s.Uint64(rng)
		require.True(t, k >= 1 && k <= size, "drew %d", k)
		counts[k]++
	}

	// The skew survives hashing, it just no longer sits at rank 1.
	freqs := make([]int, 0, len(counts))
	for _, c := range counts {
		freqs = append(freqs, c)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(freqs)))
	require.Greater(t, freqs[0], 20000/4)

	// The same rank always maps to the same key.
	a, b := NewSeededRand(9), NewSeededRand(9)
	for i := 0; i < 100; i++ {
		require.Equal(t, s.Uint64(a), s.Uint64(b))
	}
}
