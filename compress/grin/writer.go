// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package grin

import (
	"bytes"
	"io"

	"github.com/grinutil/grin/compress/grin/internal/bitio"
)

// Writer is an io.WriteCloser compressing everything written to it. The code
// depends on the whole input, so data is held in memory and encoded to the
// underlying writer by Close.
type Writer struct {
	under  io.Writer
	cfg    config
	buf    bytes.Buffer
	stats  Stats
	err    error
	closed bool
}

// NewWriter returns a Writer compressing to under.
func NewWriter(under io.Writer, opts ...Option) *Writer {
	return &Writer{under: under, cfg: newConfig(opts)}
}

// Write buffers data. It fails only after Close or a failed Close.
func (w *Writer) Write(data []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.closed {
		return 0, errWriteAfterClose
	}
	return w.buf.Write(data)
}

// Close compresses the buffered data to the underlying writer, which is left
// open.
func (w *Writer) Close() error {
	if w.closed {
		return w.err
	}
	w.closed = true
	if w.err != nil {
		return w.err
	}
	freqs, err := countFrequencies(bitio.NewReaderSize(bytes.NewReader(w.buf.Bytes()), w.cfg.bufferSize))
	if err != nil {
		w.err = err
		return err
	}
	w.stats, w.err = encode(freqs, &w.buf, w.under, w.cfg)
	w.buf.Reset()
	return w.err
}

// Reset discards buffered data and state and writes to under from now on.
func (w *Writer) Reset(under io.Writer) {
	w.under = under
	w.buf.Reset()
	w.stats = Stats{}
	w.err = nil
	w.closed = false
}

// Stats reports the last completed Close.
func (w *Writer) Stats() Stats {
	return w.stats
}
