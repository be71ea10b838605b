/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package randvar

import (
	"time"

	"golang.org/x/exp/rand"
)

// NewRand creates a new random number generator seeded with the current time.
func NewRand() *rand.Rand {
	return NewSeededRand(uint64(time.Now().UnixNano()))
}

// NewSeededRand creates a new random number generator with a fixed seed, for
// reproducible runs.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
