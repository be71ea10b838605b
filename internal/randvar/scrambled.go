/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package randvar

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
	"github.com/dgraph-io/zipfian"
	"golang.org/x/exp/rand"
)

// Scrambled draws Zipf ranks and hashes them over [1, size], so that the
// popular items are spread across the key space instead of clustering at
// the low end. Hash collisions merge ranks, so the frequencies are only
// approximately Zipf.
type Scrambled struct {
	zipf *zipfian.Sampler
	size uint64
}

// NewScrambled constructs a Scrambled generator over [1, size].
func NewScrambled(size uint64, exponent float64) (*Scrambled, error) {
	z, err := zipfian.NewSampler(size, exponent)
	if err != nil {
		return nil, err
	}
	return &Scrambled{zipf: z, size: size}, nil
}

// Uint64 returns a scrambled Zipf rank in [1, size].
func (g *Scrambled) Uint64(rng *rand.Rand) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], g.zipf.Sample(rng))
	return xxhash.Sum64(buf[:])%g.size + 1
}
