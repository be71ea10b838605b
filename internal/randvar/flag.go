// Copyright 2019 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package randvar

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/zipfian"
)

// Distribution kinds accepted by Flag.
const (
	KindZipf      = "zipf"
	KindCDF       = "cdf"
	KindYCSB      = "ycsb"
	KindScrambled = "scrambled"
	KindUniform   = "uniform"
	KindMarsaglia = "marsaglia"
	KindCondensed = "condensed"
	KindCrease    = "crease"

	// DefaultExponent is used when a spec omits the exponent.
	DefaultExponent = 1.5
)

var randVarRE = regexp.MustCompile(
	`^(?:(zipf|cdf|ycsb|scrambled|uniform|marsaglia|condensed|crease):)?(\d+)(?:/([0-9.eE+-]+))?$`)

// Flag provides a command line flag interface for specifying the
// distribution to draw from: [<kind>:]<size>[/<exponent>].
type Flag struct {
	zipfian.Generator
	kind     string
	size     uint64
	exponent float64
	spec     string
}

// NewFlag creates a new Flag initialized with the specified spec.
func NewFlag(spec string) *Flag {
	f := &Flag{}
	if err := f.Set(spec); err != nil {
		panic(err)
	}
	return f
}

func (f *Flag) String() string {
	return f.spec
}

// Type implements the Flag.Value interface.
func (f *Flag) Type() string {
	return "dist"
}

// Kind returns the distribution kind.
func (f *Flag) Kind() string { return f.kind }

// Size returns the number of ranks.
func (f *Flag) Size() uint64 { return f.size }

// Exponent returns the skew exponent; it is meaningless for uniform.
func (f *Flag) Exponent() float64 { return f.exponent }

// Set implements the Flag.Value interface.
func (f *Flag) Set(spec string) error {
	m := randVarRE.FindStringSubmatch(strings.ToLower(spec))
	if m == nil {
		return errors.Errorf("invalid distribution spec: %s", errors.Safe(spec))
	}

	size, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid size in %s", errors.Safe(spec))
	}
	kind := m[1]
	if kind == "" {
		kind = KindZipf
	}
	exponent := DefaultExponent
	if kind == KindYCSB {
		exponent = defaultTheta
	}
	if m[3] != "" {
		exponent, err = strconv.ParseFloat(m[3], 64)
		if err != nil {
			return errors.Wrapf(err, "invalid exponent in %s", errors.Safe(spec))
		}
	}

	var g zipfian.Generator
	switch kind {
	case KindZipf:
		g, err = zipfian.NewSampler(size, exponent)
	case KindCDF:
		g, err = zipfian.NewCDFSampler(size, exponent)
	case KindYCSB:
		g, err = NewYCSB(size, exponent)
	case KindScrambled:
		g, err = NewScrambled(size, exponent)
	case KindUniform:
		g, err = NewUniform(size)
	case KindMarsaglia:
		g, err = zipfian.NewMarsagliaSampler(size, exponent)
	case KindCondensed:
		g, err = zipfian.NewCondensedSampler(size, exponent)
	case KindCrease:
		g, err = zipfian.NewCreaseSampler(size, exponent)
	default:
		return errors.Errorf("unknown distribution: %s", errors.Safe(kind))
	}
	if err != nil {
		return err
	}

	f.Generator = g
	f.kind = kind
	f.size = size
	f.exponent = exponent
	f.spec = spec
	return nil
}
