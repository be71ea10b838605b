/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package cmd

import (
	"fmt"
	"math"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/sugawarayuuta/sonnet"

	"github.com/dgraph-io/zipfian"
	"github.com/dgraph-io/zipfian/y"
)

var benchCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Times a fixed number of draws from the distribution.",
	Long: `
This command draws --count ranks from the distribution given by --dist,
--runs times in a row, and reports the elapsed time of every run in
milliseconds together with the per-draw cost. With --out the results are
also written as a JSON report.
`,
	Args: cobra.NoArgs,
	RunE: runBenchmark,
}

var benchConfig struct {
	count int
	runs  int
	out   string
}

type benchMetadata struct {
	Dist      string  `json:"dist"`
	Kind      string  `json:"kind"`
	Size      uint64  `json:"size"`
	Exponent  float64 `json:"exponent"`
	Count     int     `json:"count"`
	Runs      int     `json:"runs"`
	Seed      uint64  `json:"seed"`
	Timestamp string  `json:"timestamp"`
}

type benchResults struct {
	RunsMillis  []int64 `json:"runs_ms"`
	MeanNsPerOp float64 `json:"mean_ns_per_op"`
	MinNsPerOp  float64 `json:"min_ns_per_op"`
	MaxNsPerOp  float64 `json:"max_ns_per_op"`
	OpsPerSec   float64 `json:"ops_per_sec"`
}

type benchReport struct {
	Metadata benchMetadata `json:"metadata"`
	Results  benchResults  `json:"results"`
}

func init() {
	RootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntVarP(&benchConfig.count, "count", "n", 1000000,
		"number of draws per run")
	benchCmd.Flags().IntVar(&benchConfig.runs, "runs", 5,
		"number of timed runs")
	benchCmd.Flags().StringVarP(&benchConfig.out, "out", "o", "",
		"write a JSON report to this file")
}

func nsPerOp(elapsed time.Duration, count int) float64 {
	if count <= 0 {
		return 0
	}
	return float64(elapsed.Nanoseconds()) / float64(count)
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	if benchConfig.count < 0 {
		return errors.Errorf("--count should not be negative, got %d", benchConfig.count)
	}
	if benchConfig.runs < 1 {
		return errors.Errorf("--runs should be at least 1, got %d", benchConfig.runs)
	}

	report := benchReport{
		Metadata: benchMetadata{
			Dist:      dist.String(),
			Kind:      dist.Kind(),
			Size:      dist.Size(),
			Exponent:  dist.Exponent(),
			Count:     benchConfig.count,
			Runs:      benchConfig.runs,
			Seed:      seed,
			Timestamp: time.Now().Format(time.RFC3339),
		},
	}
	res := &report.Results
	res.MinNsPerOp = math.MaxFloat64

	rng := newRand(0)
	var total time.Duration
	for i := 0; i < benchConfig.runs; i++ {
		elapsed := zipfian.Benchmark(dist.Generator, rng, benchConfig.count)
		total += elapsed
		y.NumBenchmarkRunsAdd(metricsEnabled, 1)
		y.BenchmarkNanosAdd(metricsEnabled, elapsed.Nanoseconds())
		y.NumSamplesAdd(metricsEnabled, dist.Kind(), int64(benchConfig.count))

		perOp := nsPerOp(elapsed, benchConfig.count)
		res.RunsMillis = append(res.RunsMillis, elapsed.Milliseconds())
		res.MinNsPerOp = math.Min(res.MinNsPerOp, perOp)
		res.MaxNsPerOp = math.Max(res.MaxNsPerOp, perOp)
		fmt.Printf("run %d: %d ms, %.2f ns/op\n", i+1, elapsed.Milliseconds(), perOp)
	}
	draws := benchConfig.count * benchConfig.runs
	res.MeanNsPerOp = nsPerOp(total, draws)
	if total > 0 {
		res.OpsPerSec = float64(draws) / total.Seconds()
	}

	fmt.Println("*********************************************************")
	fmt.Printf("%s: %s draws in %s, %.2f ns/op (min %.2f, max %.2f), %s\n",
		dist, humanize.Comma(int64(draws)), y.FixedDuration(total),
		res.MeanNsPerOp, res.MinNsPerOp, res.MaxNsPerOp,
		humanize.SIWithDigits(res.OpsPerSec, 2, "ops/s"))
	fmt.Println("*********************************************************")
	if metricsEnabled {
		logger.Infof("%s draws recorded by this process",
			humanize.Comma(y.NumSamplesGet(metricsEnabled)))
	}

	if benchConfig.out == "" {
		return nil
	}
	return writeJSON(benchConfig.out, report)
}

func writeJSON(path string, v interface{}) error {
	buf, err := sonnet.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "while encoding report")
	}
	w, err := createOutput(path)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(buf, '\n')); err != nil {
		w.Close()
		return errors.Wrapf(err, "while writing %s", path)
	}
	return w.Close()
}
