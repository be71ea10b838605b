/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package y

import (
	"expvar"
)

var (
	// These are cumulative

	// numSamples has cumulative number of ranks drawn
	numSamples *expvar.Int
	// numRejections has cumulative number of rejected candidates
	numRejections *expvar.Int
	// numBenchmarkRuns is the number of timed benchmark runs
	numBenchmarkRuns *expvar.Int
	// benchmarkNanos has cumulative time spent in timed runs
	benchmarkNanos *expvar.Int
	// numSamplesByDist has the number of ranks drawn per distribution kind
	numSamplesByDist *expvar.Map
)

// These variables are global and have cumulative values for the process.
func init() {
	numSamples = expvar.NewInt("zipfian_samples_total")
	numRejections = expvar.NewInt("zipfian_rejections_total")
	numBenchmarkRuns = expvar.NewInt("zipfian_benchmark_runs_total")
	benchmarkNanos = expvar.NewInt("zipfian_benchmark_nanos_total")
	numSamplesByDist = expvar.NewMap("zipfian_samples_by_dist_total")
}

func NumSamplesAdd(enabled bool, dist string, val int64) {
	addInt(enabled, numSamples, val)
	addToMap(enabled, numSamplesByDist, dist, val)
}

func NumRejectionsAdd(enabled bool, val int64) {
	addInt(enabled, numRejections, val)
}

func NumBenchmarkRunsAdd(enabled bool, val int64) {
	addInt(enabled, numBenchmarkRuns, val)
}

func BenchmarkNanosAdd(enabled bool, val int64) {
	addInt(enabled, benchmarkNanos, val)
}

// NumSamplesGet returns the cumulative number of ranks drawn, or 0 when
// metrics are disabled.
func NumSamplesGet(enabled bool) int64 {
	if !enabled {
		return 0
	}
	return numSamples.Value()
}

func addInt(enabled bool, metric *expvar.Int, val int64) {
	if !enabled {
		return
	}

	metric.Add(val)
}

func addToMap(enabled bool, metric *expvar.Map, key string, val int64) {
	if !enabled {
		return
	}

	metric.Add(key, val)
}
