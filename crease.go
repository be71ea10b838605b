/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package zipfian

import (
	"math"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/rand"
)

// CreaseSampler draws Zipf ranks by plain rejection sampling under a hat
// that is flat on [0, 1) and follows x^-exponent beyond. Rank k owns the
// interval [k-1, k) of the hat, so rank 1 is always accepted and rank k is
// accepted with probability (x/k)^exponent. It needs no table, but rejects
// more candidates than Sampler.
type CreaseSampler struct {
	size     uint64
	exponent float64
	hat      hat
	// total is the area under the hat over [0, size).
	total float64
}

var _ Generator = (*CreaseSampler)(nil)

// NewCreaseSampler constructs a CreaseSampler with the same parameter
// domain as NewSampler.
func NewCreaseSampler(size uint64, exponent float64) (*CreaseSampler, error) {
	if err := validate(size, exponent); err != nil {
		return nil, err
	}
	c := &CreaseSampler{size: size, exponent: exponent, hat: hat{q: exponent}}
	c.total = 1 + c.hat.integral(float64(size))
	return c, nil
}

// Size returns the number of ranks.
func (c *CreaseSampler) Size() uint64 { return c.size }

// Exponent returns the skew exponent.
func (c *CreaseSampler) Exponent() float64 { return c.exponent }

// Sample draws a rank in [1, size]. A sampler of size 1 always returns 1
// and does not touch rng.
func (c *CreaseSampler) Sample(rng *rand.Rand) uint64 {
	if c.size == 1 {
		return 1
	}
	n := float64(c.size)
	for trials := 0; trials < maxRejections; trials++ {
		pt := rng.Float64() * c.total
		x := pt
		if pt > 1 {
			x = c.hat.integralInverse(pt - 1)
		}
		k := math.Floor(x + 1)
		if k < 1 {
			k = 1
		} else if k > n {
			k = n
		}
		if k == 1 || rng.Float64() < math.Exp(c.exponent*math.Log(x/k)) {
			rank := uint64(k)
			if rank > c.size {
				rank = c.size
			}
			return rank
		}
	}
	panic(errors.AssertionFailedf(
		"crease sampler rejected %d candidates in a row (size=%d exponent=%v)",
		errors.Safe(maxRejections), errors.Safe(c.size), errors.Safe(c.exponent)))
}

// Uint64 implements Generator.
func (c *CreaseSampler) Uint64(rng *rand.Rand) uint64 {
	return c.Sample(rng)
}
