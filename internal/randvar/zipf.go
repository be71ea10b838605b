// Copyright 2017 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License. See the AUTHORS file
// for names of contributors.
//
// YCSB implements the Zipfian Random Number Generator from
// [1]: "Quickly Generating Billion-Record Synthetic Databases"
// by Gray, Sundaresan, Englert, Baclawski, and Weinberger, SIGMOD 1994.

package randvar

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/zipfian"
	"golang.org/x/exp/rand"
)

const (
	// See https://github.com/brianfrankcooper/YCSB/blob/f886c1e7988f8f4965cb88a1fe2f6bad2c61b56d/core/src/main/java/com/yahoo/ycsb/generator/ScrambledZipfianGenerator.java#L33-L35
	defaultMax   = 10000000000
	defaultTheta = 0.99
	defaultZetaN = 26.46902820178302
)

// YCSB is the approximate Zipf generator used by the YCSB benchmark. It
// precomputes zeta(size, theta) in O(size) and then draws in O(1) without
// rejection, at the cost of only approximating the Zipf mass beyond the
// first two ranks.
type YCSB struct {
	// Supplied constants.
	theta float64
	size  uint64
	// Internally computed constants.
	alpha, zeta2 float64
	halfPowTheta float64
	eta, zetaN   float64
}

// NewYCSB constructs a new YCSB generator over [1, size]. Returns an error
// if the parameters are outside the accepted range.
func NewYCSB(size uint64, theta float64) (*YCSB, error) {
	if size < 1 {
		return nil, errors.Wrapf(zipfian.ErrInvalidParameter,
			"size %d: must be at least 1", errors.Safe(size))
	}
	if math.IsNaN(theta) || math.IsInf(theta, 0) || theta <= 0.0 || theta == 1.0 {
		return nil, errors.Wrapf(zipfian.ErrInvalidParameter,
			"theta %v: 0 < theta, and theta != 1", errors.Safe(theta))
	}

	z := &YCSB{
		size:  size,
		theta: theta,
	}

	// Compute hidden parameters.
	z.zeta2 = computeZetaFromScratch(2, theta)
	z.halfPowTheta = 1.0 + math.Pow(0.5, z.theta)
	z.zetaN = computeZetaFromScratch(size, theta)
	z.alpha = 1.0 / (1.0 - theta)
	z.eta = (1 - math.Pow(2.0/float64(size), 1.0-theta)) / (1.0 - z.zeta2/z.zetaN)
	return z, nil
}

// The function zeta computes the value
// zeta(n, theta) = (1/1)^theta + (1/2)^theta + (1/3)^theta + ... + (1/n)^theta
func computeZetaFromScratch(n uint64, theta float64) float64 {
	if n == defaultMax && theta == defaultTheta {
		// Precomputed value, borrowed from ScrambledZipfianGenerator.java. This is
		// quite slow to calculate from scratch due to the large n value.
		return defaultZetaN
	}
	var sum float64
	for i := uint64(1); i <= n; i++ {
		sum += 1.0 / math.Pow(float64(i), theta)
	}
	return sum
}

// Uint64 draws a new value between 1 and size, with probabilities
// approximately according to the Zipf distribution.
func (z *YCSB) Uint64(rng *rand.Rand) uint64 {
	if z.size == 1 {
		return 1
	}
	u := rng.Float64()
	uz := u * z.zetaN
	if uz < 1.0 {
		return 1
	}
	if uz < z.halfPowTheta {
		return 2
	}
	result := 1 + uint64(float64(z.size)*math.Pow(z.eta*u-z.eta+1.0, z.alpha))
	if result > z.size {
		result = z.size
	}
	return result
}
