/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package tally

import (
	"bufio"
	"fmt"
	"io"
)

// WriteCSV writes counts as "entry,cnt,rel_freq" rows, rel_freq being the
// count divided by total. With buckets > 0 the ranks [1, size] are split
// into that many ranges of equal width and each row describes one range,
// numbered from 0.
func WriteCSV(w io.Writer, counts []Count, total, size uint64, buckets int) error {
	bw := bufio.NewWriter(w)
	relFreq := func(c uint64) float64 {
		if total == 0 {
			return 0
		}
		return float64(c) / float64(total)
	}

	fmt.Fprintf(bw, "entry,cnt,rel_freq\n")
	if buckets <= 0 || size == 0 {
		for _, c := range counts {
			fmt.Fprintf(bw, "%d,%d,%.9f\n", c.Rank, c.Count, relFreq(c.Count))
		}
		return bw.Flush()
	}

	if uint64(buckets) > size {
		buckets = int(size)
	}
	// Rounds up without overflowing for sizes near math.MaxUint64.
	width := size / uint64(buckets)
	if size%uint64(buckets) != 0 {
		width++
	}
	sums := make([]uint64, buckets)
	for _, c := range counts {
		if c.Rank == 0 {
			continue
		}
		b := (c.Rank - 1) / width
		if b >= uint64(buckets) {
			b = uint64(buckets) - 1
		}
		sums[b] += c.Count
	}
	for i, sum := range sums {
		fmt.Fprintf(bw, "%d,%d,%.9f\n", i, sum, relFreq(sum))
	}
	return bw.Flush()
}
