/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

// Sampler implements the rejection-inversion method from
// [1]: "Rejection-Inversion to Generate Variates from Monotone Discrete
// Distributions" by Hörmann and Derflinger, ACM TOMACS 1996.

package zipfian

import (
	"math"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/rand"
)

// maxRejections bounds the number of consecutive rejected candidates. The
// expected number of candidates per sample is close to one, so reaching it
// means the constants are broken rather than that the draw was unlucky.
const maxRejections = 1 << 24

// Sampler draws ranks in [1, size] where the probability of rank k is
// proportional to k^-exponent. Unlike rand.Zipf it never materializes a
// table and accepts any exponent greater than one. A Sampler is immutable,
// so it may be shared between goroutines as long as each goroutine brings
// its own *rand.Rand.
type Sampler struct {
	// Supplied constants.
	size     uint64
	exponent float64
	// Internally computed constants.
	hat                  hat
	hIntegralX1          float64
	hIntegralNumElements float64
	s                    float64
}

var _ Generator = (*Sampler)(nil)

// NewSampler constructs a Sampler for ranks [1, size] with the given
// exponent. Returns an error wrapping ErrInvalidParameter when size is zero
// or the exponent is not a finite number greater than 1.
func NewSampler(size uint64, exponent float64) (*Sampler, error) {
	if err := validate(size, exponent); err != nil {
		return nil, err
	}
	z := &Sampler{
		size:     size,
		exponent: exponent,
		hat:      hat{q: exponent},
	}
	// The mass of rank 1 is h(1) = 1 while the hat only covers [1.5, ...)
	// through its integral, so the interval is extended by h(1) below 1.5.
	z.hIntegralX1 = z.hat.integral(1.5) - 1
	z.hIntegralNumElements = z.hat.integral(float64(size) + 0.5)
	z.s = 2 - z.hat.integralInverse(z.hat.integral(2.5)-z.hat.h(2))
	return z, nil
}

// Size returns the number of ranks.
func (z *Sampler) Size() uint64 { return z.size }

// Exponent returns the skew exponent.
func (z *Sampler) Exponent() float64 { return z.exponent }

// Sample draws a rank in [1, size]. A sampler of size 1 always returns 1
// and does not touch rng.
func (z *Sampler) Sample(rng *rand.Rand) uint64 {
	k, _ := z.SampleTrials(rng)
	return k
}

// Uint64 implements Generator.
func (z *Sampler) Uint64(rng *rand.Rand) uint64 {
	k, _ := z.SampleTrials(rng)
	return k
}

// SampleTrials draws a rank like Sample and also returns the number of
// candidates that were generated to obtain it.
func (z *Sampler) SampleTrials(rng *rand.Rand) (uint64, int) {
	if z.size == 1 {
		return 1, 0
	}
	n := float64(z.size)
	for trials := 1; trials <= maxRejections; trials++ {
		u := rng.Float64()
		x := z.hIntegralX1 + u*(z.hIntegralNumElements-z.hIntegralX1)
		kReal := z.hat.integralInverse(x)
		k := math.Floor(kReal + 0.5)
		if k < 1 {
			k = 1
		} else if k > n {
			k = n
		}
		// Candidates close enough to the rounding point are always under the
		// pmf; the rest are compared against the hat mass left of k+0.5.
		if k-kReal <= z.s || x >= z.hat.integral(k+0.5)-z.hat.h(k) {
			// float64(size) rounds up for sizes beyond 2^53.
			rank := uint64(k)
			if rank > z.size {
				rank = z.size
			}
			return rank, trials
		}
	}
	panic(errors.AssertionFailedf(
		"zipf sampler rejected %d candidates in a row (size=%d exponent=%v)",
		errors.Safe(maxRejections), errors.Safe(z.size), errors.Safe(z.exponent)))
}
