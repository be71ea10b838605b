/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package randvar

import (
	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/zipfian"
	"golang.org/x/exp/rand"
)

// Uniform is a random number generator that generates draws from a uniform
// distribution over [1, size]. It is the baseline against which the cost of
// skewed generators is measured.
type Uniform struct {
	size uint64
}

// NewUniform constructs a new Uniform generator over [1, size].
func NewUniform(size uint64) (*Uniform, error) {
	if size < 1 {
		return nil, errors.Wrapf(zipfian.ErrInvalidParameter,
			"size %d: must be at least 1", errors.Safe(size))
	}
	return &Uniform{size: size}, nil
}

// Uint64 returns a random Uint64 between 1 and size, drawn from a uniform
// distribution.
func (g *Uniform) Uint64(rng *rand.Rand) uint64 {
	return rng.Uint64n(g.size) + 1
}
