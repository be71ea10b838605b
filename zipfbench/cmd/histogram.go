// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/codahale/hdrhistogram"
)

// Per-draw latencies outside this range are clamped.
const (
	minDrawLatency = time.Nanosecond
	maxDrawLatency = time.Second
)

func newDrawHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(minDrawLatency.Nanoseconds(), maxDrawLatency.Nanoseconds(), 2)
}

// workerHistogram collects the per-draw latency of one worker's batches.
// Each worker owns one so that recording never contends with other workers,
// only with the ticker.
type workerHistogram struct {
	batch int
	mu    struct {
		sync.Mutex
		current *hdrhistogram.Histogram
	}
}

// Record adds one timed batch, recorded as the mean cost of a draw in it.
func (w *workerHistogram) Record(elapsed time.Duration) {
	perDraw := (elapsed + time.Duration(w.batch/2)) / time.Duration(w.batch)
	if perDraw < minDrawLatency {
		perDraw = minDrawLatency
	} else if perDraw > maxDrawLatency {
		perDraw = maxDrawLatency
	}

	w.mu.Lock()
	err := w.mu.current.RecordValue(perDraw.Nanoseconds())
	w.mu.Unlock()

	if err != nil {
		// Values are clamped to the histogram range above.
		panic(fmt.Sprintf("recording draw latency %s: %s", perDraw, err))
	}
}

func (w *workerHistogram) swap() *hdrhistogram.Histogram {
	w.mu.Lock()
	defer w.mu.Unlock()
	h := w.mu.current
	w.mu.current = newDrawHistogram()
	return h
}

// drawTick summarizes the batches completed since the previous tick.
type drawTick struct {
	// PerDraw holds one value per batch completed in this tick: the mean
	// draw latency of that batch.
	PerDraw *hdrhistogram.Histogram
	// Cumulative is PerDraw merged over all ticks so far.
	Cumulative *hdrhistogram.Histogram
	// Draws is the number of draws completed in this tick.
	Draws int64
	// Elapsed is the time since the previous tick. The tick covers
	// [Now-Elapsed, Now).
	Elapsed time.Duration
	Now     time.Time
}

// DrawsPerSec is the draw rate over the tick.
func (t drawTick) DrawsPerSec() float64 {
	if t.Elapsed <= 0 {
		return 0
	}
	return float64(t.Draws) / t.Elapsed.Seconds()
}

// drawRecorder hands out worker histograms and merges them on every tick.
type drawRecorder struct {
	batch int
	mu    struct {
		sync.Mutex
		workers []*workerHistogram
	}

	prevTick   time.Time
	cumulative *hdrhistogram.Histogram
}

func newDrawRecorder(batch int) *drawRecorder {
	return &drawRecorder{
		batch:      batch,
		prevTick:   time.Now(),
		cumulative: newDrawHistogram(),
	}
}

// Worker registers and returns the histogram of a new worker.
func (r *drawRecorder) Worker() *workerHistogram {
	w := &workerHistogram{batch: r.batch}
	w.mu.current = newDrawHistogram()

	r.mu.Lock()
	r.mu.workers = append(r.mu.workers, w)
	r.mu.Unlock()
	return w
}

// Tick collects everything recorded since the previous call. It must not be
// called concurrently with itself.
func (r *drawRecorder) Tick() drawTick {
	r.mu.Lock()
	workers := append([]*workerHistogram(nil), r.mu.workers...)
	r.mu.Unlock()

	merged := newDrawHistogram()
	for _, w := range workers {
		merged.Merge(w.swap())
	}
	r.cumulative.Merge(merged)

	now := time.Now()
	tick := drawTick{
		PerDraw:    merged,
		Cumulative: r.cumulative,
		Draws:      merged.TotalCount() * int64(r.batch),
		Elapsed:    now.Sub(r.prevTick),
		Now:        now,
	}
	r.prevTick = now
	return tick
}
