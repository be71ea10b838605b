/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package zipfian

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/dgraph-io/zipfian/internal/fit"
)

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func drawCounts(t *testing.T, g Generator, size uint64, n int, seed uint64) []uint64 {
	t.Helper()
	rng := newTestRand(seed)
	counts := make([]uint64, size)
	for i := 0; i < n; i++ {
		k := g.Uint64(rng)
		require.True(t, k >= 1 && k <= size, "rank %d outside [1, %d]", k, size)
		counts[k-1]++
	}
	return counts
}

func TestNewSamplerValidation(t *testing.T) {
	tests := []struct {
		name     string
		size     uint64
		exponent float64
		param    string
	}{
		{"size-zero", 0, 1.5, "size"},
		{"exponent-one", 10, 1.0, "exponent"},
		{"exponent-below-one", 10, 0.99, "exponent"},
		{"exponent-zero", 10, 0, "exponent"},
		{"exponent-negative", 10, -2, "exponent"},
		{"exponent-nan", 10, math.NaN(), "exponent"},
		{"exponent-inf", 10, math.Inf(1), "exponent"},
		{"exponent-neg-inf", 10, math.Inf(-1), "exponent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z, err := NewSampler(tt.size, tt.exponent)
			require.Error(t, err)
			require.Nil(t, z)
			require.True(t, errors.Is(err, ErrInvalidParameter), "got %v", err)
			require.Contains(t, err.Error(), tt.param)
		})
	}

	for _, exponent := range []float64{1.0000000001, 1.01, 1.5, 2, 10, 100} {
		for _, size := range []uint64{1, 2, 1000, 1 << 40, math.MaxUint64} {
			_, err := NewSampler(size, exponent)
			require.NoError(t, err, "size=%d exponent=%v", size, exponent)
		}
	}
}

func TestSamplerConstructionIsPure(t *testing.T) {
	for _, exponent := range []float64{1.1, 1.5, 2.5} {
		a, err := NewSampler(123456, exponent)
		require.NoError(t, err)
		b, err := NewSampler(123456, exponent)
		require.NoError(t, err)
		require.Equal(t, a, b)
		require.Equal(t, math.Float64bits(a.hIntegralX1), math.Float64bits(b.hIntegralX1))
		require.Equal(t, math.Float64bits(a.hIntegralNumElements), math.Float64bits(b.hIntegralNumElements))
	}
}

func TestSamplerConstants(t *testing.T) {
	z, err := NewSampler(1000, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), z.Size())
	require.Equal(t, 2.0, z.Exponent())

	// With q = 2, H(x) = 1 - 1/x.
	require.InDelta(t, (1-1/1.5)-1, z.hIntegralX1, 1e-12)
	require.InDelta(t, 1-1/1000.5, z.hIntegralNumElements, 1e-12)
	require.True(t, z.hIntegralNumElements > z.hIntegralX1)
	require.False(t, math.IsNaN(z.s) || math.IsInf(z.s, 0))
}

func TestSamplerSizeOne(t *testing.T) {
	for _, exponent := range []float64{1.0001, 1.5, 7} {
		z, err := NewSampler(1, exponent)
		require.NoError(t, err)

		rng := newTestRand(7)
		ref := newTestRand(7)
		for i := 0; i < 10000; i++ {
			require.Equal(t, uint64(1), z.Sample(rng))
		}
		// No randomness was consumed.
		require.Equal(t, ref.Uint64(), rng.Uint64())
	}
}

func TestSamplerBounds(t *testing.T) {
	sizes := []uint64{2, 3, 10, 1000, 1 << 32, 1<<53 + 1, math.MaxUint64}
	exponents := []float64{1.000000001, 1.001, 1.1, 1.5, 3, 20, 200}
	for _, size := range sizes {
		for _, exponent := range exponents {
			z, err := NewSampler(size, exponent)
			require.NoError(t, err)
			rng := newTestRand(size ^ math.Float64bits(exponent))
			for i := 0; i < 2000; i++ {
				k := z.Sample(rng)
				require.True(t, k >= 1 && k <= size,
					"size=%d exponent=%v drew %d", size, exponent, k)
			}
		}
	}
}

func TestSamplerMatchesCDF(t *testing.T) {
	const (
		size    = 10
		samples = 100000
	)
	for _, exponent := range []float64{1.000000001, 1.2, 3} {
		t.Run(fmt.Sprintf("exponent=%v", exponent), func(t *testing.T) {
			probs, err := Probabilities(size, exponent)
			require.NoError(t, err)
			z, err := NewSampler(size, exponent)
			require.NoError(t, err)
			c, err := NewCDFSampler(size, exponent)
			require.NoError(t, err)

			rejection := drawCounts(t, z, size, samples, 1)
			table := drawCounts(t, c, size, samples, 2)
			for i, p := range probs {
				require.InDelta(t, p, float64(rejection[i])/samples, 0.01, "rank %d", i+1)
				require.InDelta(t, p, float64(table[i])/samples, 0.01, "rank %d", i+1)
				require.InDelta(t, float64(table[i])/samples, float64(rejection[i])/samples, 0.015,
					"rank %d", i+1)
			}
		})
	}
}

func TestSamplerGoodnessOfFit(t *testing.T) {
	const (
		size     = 1000
		exponent = 1.5
		samples  = 200000
	)
	z, err := NewSampler(size, exponent)
	require.NoError(t, err)
	probs, err := Probabilities(size, exponent)
	require.NoError(t, err)

	counts := drawCounts(t, z, size, samples, 42)
	report, err := fit.Compare(counts, probs)
	require.NoError(t, err)
	require.Equal(t, uint64(samples), report.Samples)
	require.Greater(t, report.PValue, 1e-4, "chi-square %.2f with %d df",
		report.ChiSquare, report.DegreesOfFreedom)
	require.Less(t, report.TVD, 0.03)

	require.InDelta(t, probs[0], float64(counts[0])/samples, 0.005)
	// Rank 1 dominates rank 1000 by orders of magnitude.
	require.Greater(t, counts[0], 1000*(counts[size-1]+1))
}

func TestSamplerSkewIncreasesWithExponent(t *testing.T) {
	const (
		size    = 1000
		samples = 50000
	)
	prev := -1.0
	for _, exponent := range []float64{1.1, 1.5, 2.5} {
		z, err := NewSampler(size, exponent)
		require.NoError(t, err)
		counts := drawCounts(t, z, size, samples, 3)
		ones := float64(counts[0]) / samples
		require.Greater(t, ones, prev, "exponent %v", exponent)
		prev = ones
	}
}

func TestSamplerAcceptanceRate(t *testing.T) {
	for _, exponent := range []float64{1.01, 1.5, 3} {
		z, err := NewSampler(1000000, exponent)
		require.NoError(t, err)
		rng := newTestRand(11)
		var trials int
		const samples = 100000
		for i := 0; i < samples; i++ {
			_, n := z.SampleTrials(rng)
			require.GreaterOrEqual(t, n, 1)
			trials += n
		}
		require.Less(t, float64(trials)/samples, 1.25, "exponent %v", exponent)
	}
}

func TestSamplerConcurrent(t *testing.T) {
	z, err := NewSampler(1000, 1.3)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			rng := newTestRand(seed)
			for j := 0; j < 10000; j++ {
				k := z.Sample(rng)
				if k < 1 || k > 1000 {
					panic(fmt.Sprintf("rank %d out of range", k))
				}
			}
		}(uint64(i))
	}
	wg.Wait()
}

func BenchmarkSampler(b *testing.B) {
	for _, exponent := range []float64{1.01, 1.5, 3} {
		b.Run(fmt.Sprintf("exponent=%v", exponent), func(b *testing.B) {
			z, err := NewSampler(10000000, exponent)
			require.NoError(b, err)
			rng := newTestRand(1)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				z.Sample(rng)
			}
		})
	}
}

func BenchmarkSamplerParallel(b *testing.B) {
	z, err := NewSampler(10000000, 1.5)
	require.NoError(b, err)
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		rng := newTestRand(uint64(rand.Int63()))
		for pb.Next() {
			z.Sample(rng)
		}
	})
}
