/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package zipfian

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"
)

// CDFSampler draws Zipf ranks by inverting a precomputed cumulative table.
// It costs O(size) memory and O(log size) per draw, and serves as the
// reference against which Sampler is checked.
type CDFSampler struct {
	size     uint64
	exponent float64
	cdf      []float64
}

var _ Generator = (*CDFSampler)(nil)

// NewCDFSampler builds the cumulative table for ranks [1, size]. Sizes
// above MaxTableSize are rejected with ErrInvalidParameter.
func NewCDFSampler(size uint64, exponent float64) (*CDFSampler, error) {
	if err := validateTable(size, exponent); err != nil {
		return nil, err
	}
	cdf := make([]float64, size)
	var sum float64
	for i := range cdf {
		sum += math.Pow(float64(i+1), -exponent)
		cdf[i] = sum
	}
	return &CDFSampler{size: size, exponent: exponent, cdf: cdf}, nil
}

// Size returns the number of ranks.
func (c *CDFSampler) Size() uint64 { return c.size }

// Exponent returns the skew exponent.
func (c *CDFSampler) Exponent() float64 { return c.exponent }

// Sample draws a rank in [1, size].
func (c *CDFSampler) Sample(rng *rand.Rand) uint64 {
	u := rng.Float64() * c.cdf[len(c.cdf)-1]
	i := sort.SearchFloat64s(c.cdf, u)
	if i >= len(c.cdf) {
		i = len(c.cdf) - 1
	}
	return uint64(i) + 1
}

// Uint64 implements Generator.
func (c *CDFSampler) Uint64(rng *rand.Rand) uint64 {
	return c.Sample(rng)
}
