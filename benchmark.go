/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package zipfian

import (
	"sync/atomic"
	"time"

	"golang.org/x/exp/rand"
)

// Generator models a random variable whose draws are computed from a
// caller-owned random source.
type Generator interface {
	Uint64(rng *rand.Rand) uint64
}

// benchSink keeps the results of timed draws observable.
var benchSink uint64

// Benchmark draws count values from g using rng and returns the elapsed
// wall-clock time measured on the monotonic clock. A count of zero or less
// returns 0 without touching rng.
func Benchmark(g Generator, rng *rand.Rand, count int) time.Duration {
	if count <= 0 {
		return 0
	}
	var sink uint64
	start := time.Now()
	for i := 0; i < count; i++ {
		sink += g.Uint64(rng)
	}
	elapsed := time.Since(start)
	atomic.AddUint64(&benchSink, sink)
	return elapsed
}

// BenchmarkMillis is Benchmark reported in whole milliseconds.
func BenchmarkMillis(g Generator, rng *rand.Rand, count int) int64 {
	return Benchmark(g, rng, count).Milliseconds()
}
