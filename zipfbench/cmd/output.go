/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"

	"github.com/dgraph-io/zipfian/y"
)

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// compressedFile closes the compressing writer before the file under it.
type compressedFile struct {
	io.WriteCloser
	f *os.File
}

func (c *compressedFile) Close() error {
	return y.CombineErrors(c.WriteCloser.Close(), c.f.Close())
}

// createOutput opens path for writing. "-" is stdout; a ".zst" suffix
// compresses with zstd and ".sz" with the snappy framing format.
func createOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, y.Wrapf(err, "while creating %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		enc, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, y.Wrapf(err, "while creating zstd writer")
		}
		return &compressedFile{WriteCloser: enc, f: f}, nil
	case ".sz":
		return &compressedFile{WriteCloser: snappy.NewBufferedWriter(f), f: f}, nil
	default:
		return f, nil
	}
}
