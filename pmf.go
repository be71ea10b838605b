/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package zipfian

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Harmonic computes the generalized harmonic number
// H(n, s) = (1/1)^s + (1/2)^s + ... + (1/n)^s.
// Terms are added from the smallest one upwards to limit rounding error.
func Harmonic(n uint64, exponent float64) float64 {
	var sum float64
	for i := n; i >= 1; i-- {
		sum += math.Pow(float64(i), -exponent)
	}
	return sum
}

// Probabilities returns the normalized probability mass function of the
// Zipf distribution over [1, size]. Element k-1 holds P(k). Unlike the
// samplers it accepts any finite exponent >= 0, an exponent of 0 giving the
// uniform distribution, since the sum is finite for a finite population.
func Probabilities(size uint64, exponent float64) ([]float64, error) {
	if size < 1 || size > MaxTableSize {
		return nil, errors.Wrapf(ErrInvalidParameter,
			"size %d: must be in [1, %d]", errors.Safe(size), errors.Safe(MaxTableSize))
	}
	if math.IsNaN(exponent) || math.IsInf(exponent, 0) || exponent < 0 {
		return nil, errors.Wrapf(ErrInvalidParameter,
			"exponent %v: must be finite and not negative", errors.Safe(exponent))
	}
	probs := make([]float64, size)
	var sum float64
	for i := size; i >= 1; i-- {
		probs[i-1] = math.Pow(float64(i), -exponent)
		sum += probs[i-1]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs, nil
}
