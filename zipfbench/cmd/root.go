/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package cmd

import (
	"fmt"
	"net/http"
	_ "net/http/pprof" //nolint:gosec
	"os"

	"github.com/spf13/cobra"
	"go.opencensus.io/zpages"
	"golang.org/x/exp/rand"

	"github.com/dgraph-io/zipfian/internal/randvar"
	"github.com/dgraph-io/zipfian/y"
)

var (
	dist      = randvar.NewFlag("zipf:1000000/1.5")
	seed      uint64
	verbose   bool
	debugAddr string

	logger         = y.DefaultLogger()
	metricsEnabled bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "zipfbench",
	Short: "Draws Zipf distributed ranks and measures how fast that is.",
	Long: `
zipfbench samples ranks in [1, N] where rank k is drawn with probability
proportional to k^-s, and benchmarks the samplers.

The --dist flag takes [<kind>:]<size>[/<exponent>], kind being one of
"zipf" (rejection-inversion, the default), "cdf" (cumulative table),
"marsaglia" (five level lookup tables), "condensed" (sparse cumulative
index), "crease" (plain rejection), "ycsb" (Gray et al. approximation),
"scrambled" (hashed zipf ranks) or "uniform". For example "zipf:1000/1.2" draws ranks 1..1000 with
exponent 1.2.
`,
	PersistentPreRunE: validateRootCmdArgs,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().Var(dist, "dist",
		"distribution [{zipf,cdf,marsaglia,condensed,crease,ycsb,scrambled,uniform}:]size[/exponent]")
	RootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0,
		"seed of the random sources (0 seeds from the clock)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
	RootCmd.PersistentFlags().StringVar(&debugAddr, "debug-addr", "",
		"serve pprof, expvar, x/net/trace and zpages on this address")
}

func validateRootCmdArgs(cmd *cobra.Command, args []string) error {
	logger = y.NewLogger(os.Stderr, verbose)
	if debugAddr != "" {
		metricsEnabled = true
		startDebugServer(debugAddr)
	}
	logger.Debugf("distribution %s (kind=%s size=%d exponent=%v)",
		dist, dist.Kind(), dist.Size(), dist.Exponent())
	return nil
}

func startDebugServer(addr string) {
	zpages.Handle(nil, "/z")
	go func() {
		logger.Infof("Listening for /debug HTTP requests at: %s", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			logger.Errorf("debug server stopped: %v", err)
		}
	}()
}

// newRand returns the random source for worker i. With a fixed --seed every
// worker gets a distinct but reproducible stream.
func newRand(i int) *rand.Rand {
	if seed == 0 {
		return randvar.NewRand()
	}
	return randvar.NewSeededRand(seed + uint64(i))
}
