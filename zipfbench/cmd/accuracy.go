/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package cmd

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dgraph-io/zipfian"
	"github.com/dgraph-io/zipfian/internal/fit"
	"github.com/dgraph-io/zipfian/internal/randvar"
	"github.com/dgraph-io/zipfian/internal/tally"
	"github.com/dgraph-io/zipfian/y"
)

var accuracyCmd = &cobra.Command{
	Use:   "accuracy",
	Short: "Compares drawn ranks with the exact Zipf probabilities.",
	Long: `
This command draws --samples ranks from --dist and compares their
frequencies with the exact probability mass function: total variation
distance, Kullback-Leibler divergence, the largest per-rank difference and a
chi-square goodness-of-fit test. For the rejection-inversion sampler the
number of rejected candidates is reported as well. Sizes are limited to the
table limit of the exact distribution.
`,
	Args: cobra.NoArgs,
	RunE: runAccuracy,
}

var accuracyConfig struct {
	samples uint64
}

func init() {
	RootCmd.AddCommand(accuracyCmd)
	accuracyCmd.Flags().Uint64VarP(&accuracyConfig.samples, "samples", "n", 1000000,
		"number of ranks to draw")
}

// expectedExponent returns the exponent of the pmf the distribution should
// follow.
func expectedExponent() (float64, error) {
	switch dist.Kind() {
	case randvar.KindUniform:
		return 0, nil
	case randvar.KindScrambled:
		return 0, errors.New("scrambled ranks have no closed form distribution to compare with")
	default:
		return dist.Exponent(), nil
	}
}

func runAccuracy(cmd *cobra.Command, args []string) error {
	if accuracyConfig.samples == 0 {
		return errors.New("--samples should be at least 1")
	}
	exponent, err := expectedExponent()
	if err != nil {
		return err
	}
	probs, err := zipfian.Probabilities(dist.Size(), exponent)
	if err != nil {
		return err
	}

	t := tally.NewMemory()
	defer t.Close()

	rng := newRand(0)
	sampler, isRejection := dist.Generator.(*zipfian.Sampler)
	var trials uint64
	for i := uint64(0); i < accuracyConfig.samples; i++ {
		var k uint64
		if isRejection {
			var n int
			k, n = sampler.SampleTrials(rng)
			trials += uint64(n)
		} else {
			k = dist.Uint64(rng)
		}
		if err := t.Add(k); err != nil {
			return err
		}
	}
	y.NumSamplesAdd(metricsEnabled, dist.Kind(), int64(accuracyConfig.samples))

	counts, err := t.Counts()
	if err != nil {
		return err
	}
	dense, err := fit.Dense(counts, dist.Size())
	if err != nil {
		return err
	}
	report, err := fit.Compare(dense, probs)
	if err != nil {
		return err
	}

	fmt.Printf("dist                 %s\n", dist)
	fmt.Printf("samples              %s\n", humanize.Comma(int64(report.Samples)))
	fmt.Printf("total variation      %.6f\n", report.TVD)
	fmt.Printf("kl divergence        %.6f\n", report.KL)
	fmt.Printf("max abs diff         %.6f\n", report.MaxAbsDiff)
	fmt.Printf("chi-square           %.2f (df %d)\n", report.ChiSquare, report.DegreesOfFreedom)
	fmt.Printf("p-value              %.4f\n", report.PValue)
	fmt.Printf("p(1) observed/exact  %.6f / %.6f\n",
		float64(dense[0])/float64(report.Samples), probs[0])
	if isRejection && trials > 0 {
		rejections := trials - accuracyConfig.samples
		y.NumRejectionsAdd(metricsEnabled, int64(rejections))
		fmt.Printf("rejections           %s (%.4f%% of candidates)\n",
			humanize.Comma(int64(rejections)), 100*float64(rejections)/float64(trials))
	}
	return nil
}
