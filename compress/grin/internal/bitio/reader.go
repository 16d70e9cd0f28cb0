// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package bitio

import (
	"bufio"
	"io"

	xbitio "github.com/icza/bitio"
	"github.com/pkg/errors"
)

// Reader reads bits most significant bit first.
type Reader struct {
	br   *xbitio.Reader
	buf  *bufio.Reader // in use
	own  *bufio.Reader // allocated here, reused by Reset
	size int
}

func NewReader(under io.Reader) *Reader {
	return NewReaderSize(under, DefaultBufferSize)
}

// NewReaderSize returns a Reader whose byte buffer holds at least size bytes.
// A *bufio.Reader is read directly, whatever its size.
func NewReaderSize(under io.Reader, size int) *Reader {
	r := &Reader{size: size}
	if ur, ok := under.(*bufio.Reader); ok {
		r.buf = ur
	} else {
		r.own = bufio.NewReaderSize(under, size)
		r.buf = r.own
	}
	r.br = xbitio.NewReader(r.buf)
	return r
}

// Reset discards buffered bytes and bits and reads from under, reusing the
// byte buffer when possible.
func (r *Reader) Reset(under io.Reader) {
	switch ur, ok := under.(*bufio.Reader); {
	case ok:
		r.buf = ur
	case r.own == nil:
		r.own = bufio.NewReaderSize(under, r.size)
		r.buf = r.own
	default:
		r.own.Reset(under)
		r.buf = r.own
	}
	r.br = xbitio.NewReader(r.buf)
}

func (r *Reader) ReadBit() (uint8, error) {
	v, err := r.ReadBits(1)
	return uint8(v), err
}

// ReadBits reads n bits and returns them as the low bits of the result, the
// first bit read being the most significant. It returns ErrExhausted when the
// input ends before n bits are available.
func (r *Reader) ReadBits(n uint8) (uint32, error) {
	if n > MaxBits {
		return 0, ErrTooManyBits
	}
	if n == 0 {
		return 0, nil
	}
	v, err := r.br.ReadBits(n)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, ErrExhausted
		}
		return 0, errors.Wrap(err, "bitio: read")
	}
	return uint32(v), nil
}
