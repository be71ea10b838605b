/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package zipfian

import (
	"sort"

	"golang.org/x/exp/rand"
)

// condensedDelta is the minimum cumulative mass between two index entries.
const condensedDelta = 1e-8

type condensedEntry struct {
	rank uint64
	cdf  float64
}

// CondensedSampler inverts a sparse cumulative index. The index keeps one
// entry per condensedDelta of mass, so the long tail of a skewed
// distribution collapses into few entries. A draw binary searches the index
// and then scans the ranks between two neighbouring entries.
type CondensedSampler struct {
	size     uint64
	exponent float64
	probs    []float64
	index    []condensedEntry
}

var _ Generator = (*CondensedSampler)(nil)

// NewCondensedSampler builds the index for ranks [1, size]. Sizes above
// MaxTableSize are rejected with ErrInvalidParameter.
func NewCondensedSampler(size uint64, exponent float64) (*CondensedSampler, error) {
	if err := validateTable(size, exponent); err != nil {
		return nil, err
	}
	probs, err := Probabilities(size, exponent)
	if err != nil {
		return nil, err
	}

	c := &CondensedSampler{size: size, exponent: exponent, probs: probs}
	var cum, last float64
	for i, p := range probs {
		cum += p
		rank := uint64(i) + 1
		if cum-last >= condensedDelta || rank == size {
			c.index = append(c.index, condensedEntry{rank: rank, cdf: cum})
			last = cum
		}
	}
	return c, nil
}

// Size returns the number of ranks.
func (c *CondensedSampler) Size() uint64 { return c.size }

// Exponent returns the skew exponent.
func (c *CondensedSampler) Exponent() float64 { return c.exponent }

// Sample draws a rank in [1, size].
func (c *CondensedSampler) Sample(rng *rand.Rand) uint64 {
	u := rng.Float64()
	i := sort.Search(len(c.index), func(i int) bool { return c.index[i].cdf >= u })
	if i == len(c.index) {
		// u landed in the rounding gap above the final cumulative sum.
		i--
	}

	var from uint64 = 1
	var cum float64
	if i > 0 {
		from = c.index[i-1].rank + 1
		cum = c.index[i-1].cdf
	}
	to := c.index[i].rank
	for k := from; k < to; k++ {
		cum += c.probs[k-1]
		if cum >= u {
			return k
		}
	}
	return to
}

// Uint64 implements Generator.
func (c *CondensedSampler) Uint64(rng *rand.Rand) uint64 {
	return c.Sample(rng)
}
