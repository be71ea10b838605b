// Copyright 2019 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package randvar

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/zipfian"
	"github.com/stretchr/testify/require"
)

func TestFlag(t *testing.T) {
	testCases := []struct {
		spec     string
		kind     string
		size     uint64
		exponent float64
	}{
		{"1000", KindZipf, 1000, DefaultExponent},
		{"zipf:1000/2", KindZipf, 1000, 2},
		{"ZIPF:10/1.01", KindZipf, 10, 1.01},
		{"cdf:500/1.2", KindCDF, 500, 1.2},
		{"ycsb:100", KindYCSB, 100, 0.99},
		{"ycsb:100/0.5", KindYCSB, 100, 0.5},
		{"scrambled:100/1.1", KindScrambled, 100, 1.1},
		{"uniform:50", KindUniform, 50, DefaultExponent},
		{"zipf:18446744073709551615/1.5", KindZipf, 18446744073709551615, 1.5},
		{"zipf:1000/1.5e0", KindZipf, 1000, 1.5},
		{"marsaglia:1000/1.3", KindMarsaglia, 1000, 1.3},
		{"condensed:1000", KindCondensed, 1000, DefaultExponent},
		{"crease:18446744073709551615/2", KindCrease, 18446744073709551615, 2},
	}
	for _, c := range testCases {
		t.Run(c.spec, func(t *testing.T) {
			f := NewFlag(c.spec)
			require.Equal(t, c.spec, f.String())
			require.Equal(t, c.kind, f.Kind())
			require.Equal(t, c.size, f.Size())
			require.Equal(t, c.exponent, f.Exponent())
			require.NotNil(t, f.Generator)

			rng := NewSeededRand(1)
			for i := 0; i < 100; i++ {
				k := f.Uint64(rng)
				require.True(t, k >= 1 && k <= c.size, "drew %d", k)
			}
		})
	}

	f := NewFlag("zipf:100/1.5")
	_, ok := f.Generator.(*zipfian.Sampler)
	require.True(t, ok)
	require.Equal(t, "dist", f.Type())
}

func TestFlagErrors(t *testing.T) {
	for _, spec := range []string{"", "zipf", "latest:10", "zipf:-1", "zipf:10/abc", "10-20", "zipf:99999999999999999999"} {
		f := &Flag{}
		require.Error(t, f.Set(spec), "spec %q", spec)
	}

	for _, spec := range []string{"zipf:0", "zipf:10/1", "zipf:10/0.5", "ycsb:10/1", "cdf:100000000", "marsaglia:2000000", "condensed:10/1", "crease:0"} {
		f := &Flag{}
		err := f.Set(spec)
		require.True(t, errors.Is(err, zipfian.ErrInvalidParameter), "spec %q: %v", spec, err)
	}

	// A failed Set leaves the previous value in place.
	f := NewFlag("uniform:10")
	require.Error(t, f.Set("zipf:0"))
	require.Equal(t, "uniform:10", f.String())
	require.Equal(t, KindUniform, f.Kind())

	require.Panics(t, func() { NewFlag("bogus") })
}
