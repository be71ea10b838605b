/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/ristretto/z"
	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
	"golang.org/x/net/trace"

	"github.com/dgraph-io/zipfian"
	"github.com/dgraph-io/zipfian/y"
)

var throughputCmd = &cobra.Command{
	Use:   "throughput",
	Short: "Draws from concurrent workers for a fixed duration.",
	Long: `
This command shares one sampler between --concurrency workers. Each worker
owns its random source and times batches of --batch draws. Every second the
per-draw latency percentiles and the aggregate draw rate are printed; a summary
follows when --duration elapses or the process is interrupted.
`,
	Args: cobra.NoArgs,
	RunE: runThroughput,
}

var throughputConfig struct {
	concurrency int
	duration    time.Duration
	batch       int
}

func init() {
	RootCmd.AddCommand(throughputCmd)
	throughputCmd.Flags().IntVarP(&throughputConfig.concurrency, "concurrency", "c", 1,
		"number of concurrent workers")
	throughputCmd.Flags().DurationVarP(&throughputConfig.duration, "duration", "d", 10*time.Second,
		"the duration to run (0, run until interrupted)")
	throughputCmd.Flags().IntVar(&throughputConfig.batch, "batch", 1000,
		"draws per timed batch")
}

func runThroughput(cmd *cobra.Command, args []string) error {
	if throughputConfig.concurrency < 1 {
		return errors.Errorf("--concurrency should be at least 1, got %d",
			throughputConfig.concurrency)
	}
	if throughputConfig.batch < 1 {
		return errors.Errorf("--batch should be at least 1, got %d", throughputConfig.batch)
	}
	batch := throughputConfig.batch

	closer := z.NewCloser(0)
	tr := trace.New("zipfbench.throughput", dist.String())
	defer tr.Finish()
	ctx := trace.NewContext(closer.Ctx(), tr)

	fmt.Printf("dist %s\nconcurrency %d\nbatch %d\n", dist, throughputConfig.concurrency, batch)

	rec := newDrawRecorder(batch)
	var draws uint64
	for i := 0; i < throughputConfig.concurrency; i++ {
		closer.AddRunning(1)
		go drawWorker(closer, newRand(i), rec.Worker(), batch, &draws)
	}
	y.Trace(ctx, "started %d workers", throughputConfig.concurrency)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	done := make(chan os.Signal, 3)
	signal.Notify(done, os.Interrupt)
	defer signal.Stop(done)

	var timeout <-chan time.Time
	if throughputConfig.duration > 0 {
		timeout = time.After(throughputConfig.duration)
	}

	start := time.Now()
	for ticks := 0; ; {
		select {
		case <-ticker.C:
			if ticks%20 == 0 {
				fmt.Println("_elapsed______draws/sec__draw(p50)__draw(p95)__draw(p99)__draw(mean)")
			}
			ticks++
			tick := rec.Tick()
			h := tick.PerDraw
			fmt.Printf("%8s %14s %10s %10s %10s %11.2f\n",
				y.FixedDuration(time.Since(start)),
				humanize.Comma(int64(tick.DrawsPerSec())),
				time.Duration(h.ValueAtQuantile(50)),
				time.Duration(h.ValueAtQuantile(95)),
				time.Duration(h.ValueAtQuantile(99)),
				h.Mean())

		case <-done:
			y.Trace(ctx, "interrupted")
			return finishThroughput(closer, rec, start, &draws)

		case <-timeout:
			y.Trace(ctx, "duration elapsed")
			return finishThroughput(closer, rec, start, &draws)
		}
	}
}

func drawWorker(c *z.Closer, rng *rand.Rand, hist *workerHistogram, batch int, draws *uint64) {
	defer c.Done()
	for {
		select {
		case <-c.HasBeenClosed():
			return
		default:
			elapsed := zipfian.Benchmark(dist.Generator, rng, batch)
			hist.Record(elapsed)
			atomic.AddUint64(draws, uint64(batch))
			y.NumSamplesAdd(metricsEnabled, dist.Kind(), int64(batch))
		}
	}
}

func finishThroughput(c *z.Closer, rec *drawRecorder, start time.Time, draws *uint64) error {
	c.SignalAndWait()
	elapsed := time.Since(start)
	total := atomic.LoadUint64(draws)

	h := rec.Tick().Cumulative
	fmt.Println("\n_elapsed_______draws(total)______draws/sec__draw(mean)__draw(p50)__draw(p99)")
	fmt.Printf("%8s %18s %14s %11.2f %10s %10s\n",
		y.FixedDuration(elapsed),
		humanize.Comma(int64(total)),
		humanize.Comma(int64(float64(total)/elapsed.Seconds())),
		h.Mean(),
		time.Duration(h.ValueAtQuantile(50)),
		time.Duration(h.ValueAtQuantile(99)))
	return nil
}
