// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package grin compresses and decompresses files in the grin format. The
// codec itself lives in package github.com/grinutil/grin/compress/grin; this
// package only manages the files around it.
package grin

import (
	"os"

	"github.com/pkg/errors"

	codec "github.com/grinutil/grin/compress/grin"
)

// Ext is the conventional extension of grin files.
const Ext = ".grin"

// CompressFile compresses the file in into the file out, creating or
// truncating it. The input is read twice; an *os.File is rewound in between.
// A partially written out is left in place on error.
func CompressFile(in, out string, opts ...codec.Option) (stats codec.Stats, err error) {
	src, err := os.Open(in)
	if err != nil {
		return stats, errors.WithStack(err)
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return stats, errors.WithStack(err)
	}
	defer func() {
		if cerr := dst.Close(); err == nil && cerr != nil {
			err = errors.WithStack(cerr)
		}
	}()
	return codec.CompressWithStats(src, dst, opts...)
}

// DecompressFile decompresses the grin file in into the file out, creating or
// truncating it. A partially written out is left in place on error.
func DecompressFile(in, out string, opts ...codec.Option) (err error) {
	src, err := os.Open(in)
	if err != nil {
		return errors.WithStack(err)
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if cerr := dst.Close(); err == nil && cerr != nil {
			err = errors.WithStack(cerr)
		}
	}()
	return codec.Decompress(src, dst, opts...)
}
