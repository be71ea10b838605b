/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

/*
Package zipfian draws integers from a Zipf distribution over [1, N] and
measures how fast it does so.

Sampler uses rejection-inversion and needs O(1) memory regardless of N.
CDFSampler inverts a cumulative table and exists as a reference for small N.
MarsagliaSampler, CondensedSampler and CreaseSampler are the table lookup,
sparse table and plain rejection alternatives it is benchmarked against.
None owns a random source: every draw takes the caller's *rand.Rand, so a
single sampler can be shared by goroutines that each hold their own source.

	z, err := zipfian.NewSampler(1000000, 1.2)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(1))
	rank := z.Sample(rng)
	elapsed := zipfian.Benchmark(z, rng, 1000000)
*/
package zipfian
