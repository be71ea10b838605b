/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

// Package fit measures how far an empirical rank histogram is from a
// theoretical probability mass function.
package fit

import (
	"math"

	"github.com/dgraph-io/zipfian/internal/tally"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// minExpected is the smallest expected count a chi-square bin may have.
	// Adjacent ranks are pooled until they reach it.
	minExpected = 5.0
	// klSmoothing is added to both distributions so that ranks that were
	// never drawn do not make the divergence infinite.
	klSmoothing = 1e-12
)

// Report summarizes the distance between observed and expected frequencies.
type Report struct {
	Samples uint64
	// TVD is the total variation distance, half the L1 distance.
	TVD float64
	// KL is the Kullback-Leibler divergence of observed from expected.
	KL float64
	// MaxAbsDiff is the largest per-rank frequency difference.
	MaxAbsDiff float64
	// ChiSquare is Pearson's statistic over pooled bins.
	ChiSquare        float64
	DegreesOfFreedom int
	// PValue is the probability of a statistic at least as large as
	// ChiSquare if the samples came from probs.
	PValue float64
}

// Compare computes a Report for counts, where counts[i] is the number of
// draws of rank i+1, against probs, where probs[i] is P(i+1).
func Compare(counts []uint64, probs []float64) (Report, error) {
	var r Report
	if len(counts) != len(probs) {
		return r, errors.Errorf("counts cover %d ranks, probabilities %d",
			len(counts), len(probs))
	}
	for _, c := range counts {
		r.Samples += c
	}
	if r.Samples == 0 {
		return r, errors.New("no samples to compare")
	}

	n := float64(r.Samples)
	var obs, exp []float64
	var pendingObs, pendingExp float64
	for i, p := range probs {
		freq := float64(counts[i]) / n
		diff := math.Abs(freq - p)
		r.TVD += diff
		if diff > r.MaxAbsDiff {
			r.MaxAbsDiff = diff
		}
		r.KL += (freq + klSmoothing) * math.Log((freq+klSmoothing)/(p+klSmoothing))

		pendingObs += float64(counts[i])
		pendingExp += p * n
		if pendingExp >= minExpected {
			obs = append(obs, pendingObs)
			exp = append(exp, pendingExp)
			pendingObs, pendingExp = 0, 0
		}
	}
	if pendingExp > 0 || pendingObs > 0 {
		if len(exp) > 0 {
			obs[len(obs)-1] += pendingObs
			exp[len(exp)-1] += pendingExp
		} else {
			obs = append(obs, pendingObs)
			exp = append(exp, pendingExp)
		}
	}
	r.TVD /= 2

	for i := range obs {
		if exp[i] == 0 {
			continue
		}
		d := obs[i] - exp[i]
		r.ChiSquare += d * d / exp[i]
	}
	r.DegreesOfFreedom = len(obs) - 1
	r.PValue = 1
	if r.DegreesOfFreedom > 0 {
		r.PValue = distuv.ChiSquared{K: float64(r.DegreesOfFreedom)}.Survival(r.ChiSquare)
	}
	return r, nil
}

// Dense expands sparse per-rank counts into a slice indexed by rank-1.
func Dense(counts []tally.Count, size uint64) ([]uint64, error) {
	out := make([]uint64, size)
	for _, c := range counts {
		if c.Rank < 1 || c.Rank > size {
			return nil, errors.Errorf("rank %d outside [1, %d]", c.Rank, size)
		}
		out[c.Rank-1] += c.Count
	}
	return out, nil
}
