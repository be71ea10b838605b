/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package cmd

import (
	"fmt"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dgraph-io/zipfian/internal/tally"
	"github.com/dgraph-io/zipfian/y"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Draws ranks and writes how often each one came up.",
	Long: `
This command draws --samples ranks from --dist, counts them with the
selected --storage and writes a CSV with the columns entry,cnt,rel_freq.
With --buckets the ranks are folded into that many equal-width buckets.
An --out ending in .zst is zstd compressed, one ending in .sz is snappy
compressed, and "-" writes to stdout. Without --out the file is named
results_<kind>_<timestamp>.csv.
`,
	Args: cobra.NoArgs,
	RunE: runSample,
}

var sampleConfig struct {
	samples uint64
	storage string
	batch   int
	buckets int
	out     string
}

func init() {
	RootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().Uint64VarP(&sampleConfig.samples, "samples", "n", 1000000,
		"number of ranks to draw")
	sampleCmd.Flags().StringVar(&sampleConfig.storage, "storage", tally.KindCounter,
		"where counts are kept: counter or sqlite")
	sampleCmd.Flags().IntVar(&sampleConfig.batch, "batch", tally.DefaultBatchSize,
		"draws buffered between sqlite upserts")
	sampleCmd.Flags().IntVar(&sampleConfig.buckets, "buckets", 0,
		"fold ranks into this many buckets (0 writes one row per rank)")
	sampleCmd.Flags().StringVarP(&sampleConfig.out, "out", "o", "",
		"output file, - for stdout")
}

func runSample(cmd *cobra.Command, args []string) (rerr error) {
	t, err := tally.Open(sampleConfig.storage, sampleConfig.batch)
	if err != nil {
		return err
	}
	defer func() {
		rerr = y.CombineErrors(rerr, t.Close())
	}()

	rng := newRand(0)
	start := time.Now()
	for i := uint64(0); i < sampleConfig.samples; i++ {
		if err := t.Add(dist.Uint64(rng)); err != nil {
			return y.Wrapf(err, "while tallying draw %d", i)
		}
	}
	y.NumSamplesAdd(metricsEnabled, dist.Kind(), int64(sampleConfig.samples))
	logger.Infof("Drew %s ranks from %s in %s using %s storage",
		humanize.Comma(int64(sampleConfig.samples)), dist, time.Since(start), sampleConfig.storage)

	counts, err := t.Counts()
	if err != nil {
		return err
	}
	logger.Debugf("%d distinct ranks observed", len(counts))

	out := sampleConfig.out
	if out == "" {
		out = fmt.Sprintf("results_%s_%s.csv", dist.Kind(), time.Now().Format("2006-01-02-15-04"))
	}
	w, err := createOutput(out)
	if err != nil {
		return err
	}
	if err := tally.WriteCSV(w, counts, t.Total(), dist.Size(), sampleConfig.buckets); err != nil {
		w.Close()
		return y.Wrapf(err, "while writing %s", out)
	}
	if err := w.Close(); err != nil {
		return y.Wrapf(err, "while closing %s", out)
	}
	if out != "-" {
		logger.Infof("Wrote %s", out)
	}
	return nil
}
