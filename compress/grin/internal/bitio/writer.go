// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package bitio provides the MSB-first bit reader and writer used by the grin
// format. Both sides keep at most one partial byte of state; byte level
// buffering is done with bufio.
package bitio

import (
	"bufio"
	"io"

	xbitio "github.com/icza/bitio"
	"github.com/pkg/errors"
)

// MaxBits is the widest value accepted by WriteBits and ReadBits.
const MaxBits = 32

// DefaultBufferSize is the bufio size used by NewReader and NewWriter.
const DefaultBufferSize = 64 * 1024

var (
	// ErrExhausted is returned when fewer bits remain than were requested.
	ErrExhausted = errors.New("bitio: input exhausted")
	// ErrTooManyBits is returned for a bit count above MaxBits.
	ErrTooManyBits = errors.New("bitio: bit count exceeds 32")
	ErrClosed = errors.New("bitio: write on closed writer")
)

// Writer packs bits into bytes, most significant bit first.
type Writer struct {
	buf    *bufio.Writer
	bw     *xbitio.Writer
	err    error // first write error, returned by every later call
	closed bool
}

func NewWriter(under io.Writer) *Writer {
	return NewWriterSize(under, DefaultBufferSize)
}

// NewWriterSize returns a Writer whose byte buffer holds at least size bytes.
func NewWriterSize(under io.Writer, size int) *Writer {
	buf := bufio.NewWriterSize(under, size)
	return &Writer{
		buf: buf,
		bw:  xbitio.NewWriter(buf),
	}
}

func (w *Writer) WriteBit(bit uint8) error {
	if err := w.check(); err != nil {
		return err
	}
	if err := w.bw.WriteBool(bit&1 == 1); err != nil {
		w.err = errors.Wrap(err, "bitio: write")
	}
	return w.err
}

// WriteBits writes the n lowest bits of v, highest of them first.
func (w *Writer) WriteBits(v uint32, n uint8) error {
	if n > MaxBits {
		return ErrTooManyBits
	}
	if err := w.check(); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	if err := w.bw.WriteBits(uint64(v), n); err != nil {
		w.err = errors.Wrap(err, "bitio: write")
	}
	return w.err
}

func (w *Writer) check() error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return ErrClosed
	}
	return nil
}

// Close pads the last partial byte with zero bits and flushes everything to
// the underlying writer, which is left open. Calling Close again is a no-op
// that returns the first error seen.
func (w *Writer) Close() error {
	if w.closed {
		return w.err
	}
	w.closed = true
	if w.err != nil {
		return w.err
	}
	if err := w.bw.Close(); err != nil {
		w.err = errors.Wrap(err, "bitio: close")
		return w.err
	}
	if err := w.buf.Flush(); err != nil {
		w.err = errors.Wrap(err, "bitio: flush")
	}
	return w.err
}
