/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

// MarsagliaSampler implements the condensed table lookup from
// [1]: "Fast Generation of Discrete Random Variables" by Marsaglia, Tsang
// and Wang, Journal of Statistical Software 11(3), 2004.

package zipfian

import (
	"golang.org/x/exp/rand"
)

const (
	// Probabilities are quantized to multiples of 2^-marsagliaBits and split
	// into five base-64 digits, one table per digit.
	marsagliaBits   = 30
	marsagliaTotal  = 1 << marsagliaBits
	marsagliaLevels = 5
)

// MarsagliaSampler draws Zipf ranks with one uniform 30-bit integer and at
// most five comparisons. Each rank's probability is rounded to a multiple of
// 2^-30, so ranks rarer than that are never drawn.
type MarsagliaSampler struct {
	size     uint64
	exponent float64
	// single is set when one rank carries all of the quantized mass.
	single uint64
	tables [marsagliaLevels][]uint32
	bounds [marsagliaLevels - 1]uint32
}

var _ Generator = (*MarsagliaSampler)(nil)

// NewMarsagliaSampler builds the five lookup tables for ranks [1, size].
// Sizes above MaxMarsagliaSize are rejected with ErrInvalidParameter.
func NewMarsagliaSampler(size uint64, exponent float64) (*MarsagliaSampler, error) {
	if err := validateLimit(size, exponent, MaxMarsagliaSize); err != nil {
		return nil, err
	}
	probs, err := Probabilities(size, exponent)
	if err != nil {
		return nil, err
	}

	weights := make([]int64, size)
	var sum int64
	var maxIdx int
	for i, p := range probs {
		weights[i] = int64(p*marsagliaTotal + 0.5)
		sum += weights[i]
		if weights[i] > weights[maxIdx] {
			maxIdx = i
		}
	}
	// Rounding leaves the sum a little off; the largest weight absorbs it.
	weights[maxIdx] += marsagliaTotal - sum

	m := &MarsagliaSampler{size: size, exponent: exponent}
	if weights[maxIdx] == marsagliaTotal {
		m.single = uint64(maxIdx) + 1
		return m, nil
	}

	var lens [marsagliaLevels]int
	for _, w := range weights {
		for level := range lens {
			lens[level] += marsagliaDigit(w, level)
		}
	}
	for level, n := range lens {
		m.tables[level] = make([]uint32, 0, n)
	}
	for i, w := range weights {
		for level := range m.tables {
			for d := marsagliaDigit(w, level); d > 0; d-- {
				m.tables[level] = append(m.tables[level], uint32(i+1))
			}
		}
	}

	var bound uint32
	for level := range m.bounds {
		bound += uint32(len(m.tables[level])) << marsagliaShift(level)
		m.bounds[level] = bound
	}
	return m, nil
}

// marsagliaShift is the number of low bits one entry of the table at level
// stands for.
func marsagliaShift(level int) uint {
	return uint(marsagliaBits - 6*(level+1))
}

// marsagliaDigit returns the base-64 digit of w that the table at level
// stores, the most significant one at level 0.
func marsagliaDigit(w int64, level int) int {
	return int((w >> marsagliaShift(level)) & 63)
}

// Size returns the number of ranks.
func (m *MarsagliaSampler) Size() uint64 { return m.size }

// Exponent returns the skew exponent.
func (m *MarsagliaSampler) Exponent() float64 { return m.exponent }

// Sample draws a rank in [1, size]. When one rank holds all of the quantized
// mass it is returned without touching rng.
func (m *MarsagliaSampler) Sample(rng *rand.Rand) uint64 {
	if m.single != 0 {
		return m.single
	}
	j := rng.Uint32() >> (32 - marsagliaBits)
	switch {
	case j < m.bounds[0]:
		return uint64(m.tables[0][j>>marsagliaShift(0)])
	case j < m.bounds[1]:
		return uint64(m.tables[1][(j-m.bounds[0])>>marsagliaShift(1)])
	case j < m.bounds[2]:
		return uint64(m.tables[2][(j-m.bounds[1])>>marsagliaShift(2)])
	case j < m.bounds[3]:
		return uint64(m.tables[3][(j-m.bounds[2])>>marsagliaShift(3)])
	default:
		return uint64(m.tables[4][j-m.bounds[3]])
	}
}

// Uint64 implements Generator.
func (m *MarsagliaSampler) Uint64(rng *rand.Rand) uint64 {
	return m.Sample(rng)
}
