// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package grin

import (
	"io"

	"github.com/grinutil/grin/compress/grin/internal/bitio"
)

// Resetter resets a reader returned by NewReader to read from a new source.
type Resetter interface {
	Reset(r io.Reader) error
}

// NewReader returns a decompressor reading the grin stream in r. The header
// is read by the first call to Read. The returned reader implements
// Resetter.
func NewReader(r io.Reader, opts ...Option) io.ReadCloser {
	f := &decompressor{cfg: newConfig(opts)}
	f.br = bitio.NewReaderSize(r, f.cfg.bufferSize)
	return f
}

type decompressor struct {
	cfg    config
	br     *bitio.Reader
	dec    decoder
	header bool
	err    error
}

func (f *decompressor) Reset(under io.Reader) error {
	f.br.Reset(under)
	f.dec = decoder{}
	f.header = false
	f.err = nil
	return nil
}

func (f *decompressor) Read(b []byte) (n int, err error) {
	if f.err != nil {
		return 0, f.err
	}
	if !f.header {
		tree, err := readHeader(f.br)
		if err != nil {
			f.err = err
			return 0, err
		}
		f.dec = newDecoder(f.br, tree)
		f.header = true
	}
	for n < len(b) {
		c, err := f.dec.next()
		if err != nil {
			f.err = err
			if n > 0 {
				// Report the error with the next call.
				return n, nil
			}
			return 0, err
		}
		b[n] = c
		n++
	}
	return n, nil
}

func (f *decompressor) Close() error {
	return nil
}
