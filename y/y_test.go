/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package y

import (
	"bytes"
	"context"
	"expvar"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/trace"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, false)
	l.Infof("drew %d ranks", 10)
	l.Warningf("slow")
	l.Errorf("failed: %v", "boom")
	l.Debugf("hidden")

	out := buf.String()
	require.Contains(t, out, "zipfbench ")
	require.Contains(t, out, "INFO: drew 10 ranks")
	require.Contains(t, out, "WARNING: slow")
	require.Contains(t, out, "ERROR: failed: boom")
	require.NotContains(t, out, "hidden")

	buf.Reset()
	NewLogger(&buf, true).Debugf("shown %s", "now")
	require.Contains(t, buf.String(), "DEBUG: shown now")

	require.NotNil(t, DefaultLogger())
}

func TestMetrics(t *testing.T) {
	before := numSamples.Value()
	NumSamplesAdd(false, "zipf", 7)
	require.Equal(t, before, numSamples.Value())
	require.Zero(t, NumSamplesGet(false))

	NumSamplesAdd(true, "zipf", 7)
	NumSamplesAdd(true, "uniform", 3)
	require.Equal(t, before+10, NumSamplesGet(true))
	require.Equal(t, int64(7), numSamplesByDist.Get("zipf").(*expvar.Int).Value())
	require.Equal(t, int64(3), numSamplesByDist.Get("uniform").(*expvar.Int).Value())

	runs, nanos, rejections := numBenchmarkRuns.Value(), benchmarkNanos.Value(), numRejections.Value()
	NumBenchmarkRunsAdd(true, 1)
	BenchmarkNanosAdd(true, 1500)
	NumRejectionsAdd(true, 4)
	NumRejectionsAdd(false, 100)
	require.Equal(t, runs+1, numBenchmarkRuns.Value())
	require.Equal(t, nanos+1500, benchmarkNanos.Value())
	require.Equal(t, rejections+4, numRejections.Value())
}

func TestFixedDuration(t *testing.T) {
	require.Equal(t, "05s", FixedDuration(5*time.Second))
	require.Equal(t, "02m03s", FixedDuration(2*time.Minute+3*time.Second))
	require.Equal(t, "01h00m09s", FixedDuration(time.Hour+9*time.Second+300*time.Millisecond))
}

func TestTrace(t *testing.T) {
	// Without a trace in the context this is a no-op.
	Trace(context.Background(), "ignored %d", 1)

	tr := trace.New("zipfian.test", "trace")
	defer tr.Finish()
	Trace(trace.NewContext(context.Background(), tr), "recorded %d", 2)
}
