/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package zipfian

import (
	"math"

	"github.com/cockroachdb/errors"
)

// ErrInvalidParameter is returned when a sampler is constructed with a size
// or exponent outside the accepted range. The returned error wraps it, so
// callers should test with errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

// MaxTableSize is the largest population a table based sampler will
// materialize.
const MaxTableSize = 1 << 24

// MaxMarsagliaSize is the largest population MarsagliaSampler accepts. Its
// lowest level table may hold up to 63 entries per rank.
const MaxMarsagliaSize = 1 << 20

func validate(size uint64, exponent float64) error {
	if size < 1 {
		return errors.Wrapf(ErrInvalidParameter,
			"size %d: must be at least 1", errors.Safe(size))
	}
	if math.IsNaN(exponent) || math.IsInf(exponent, 0) {
		return errors.Wrapf(ErrInvalidParameter,
			"exponent %v: must be finite", errors.Safe(exponent))
	}
	if exponent <= 1.0 {
		return errors.Wrapf(ErrInvalidParameter,
			"exponent %v: must be greater than 1.0", errors.Safe(exponent))
	}
	return nil
}

func validateTable(size uint64, exponent float64) error {
	return validateLimit(size, exponent, MaxTableSize)
}

func validateLimit(size uint64, exponent float64, limit uint64) error {
	if err := validate(size, exponent); err != nil {
		return err
	}
	if size > limit {
		return errors.Wrapf(ErrInvalidParameter,
			"size %d: exceeds table limit %d", errors.Safe(size), errors.Safe(limit))
	}
	return nil
}
