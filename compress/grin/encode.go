// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package grin

import (
	"io"

	"github.com/pkg/errors"

	"github.com/grinutil/grin/compress/grin/internal/bitio"
	"github.com/grinutil/grin/compress/grin/internal/huffman"
)

// Stats describes one compression run.
type Stats struct {
	InputBytes  uint64
	OutputBytes uint64
	Symbols     int    // distinct byte values in the input
	HeaderBits  uint64 // magic and serialized tree
	BodyBits    uint64 // codes, including the EOF code
}

// Ratio returns OutputBytes / InputBytes, or 0 for empty input.
func (s Stats) Ratio() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.OutputBytes) / float64(s.InputBytes)
}

// Compress writes the grin encoding of src to dst. The source is read twice,
// once to count byte frequencies and once to encode, and is rewound in
// between to the position it had when Compress was called.
func Compress(src io.ReadSeeker, dst io.Writer, opts ...Option) error {
	_, err := CompressWithStats(src, dst, opts...)
	return err
}

// CompressWithStats is Compress, also reporting sizes.
func CompressWithStats(src io.ReadSeeker, dst io.Writer, opts ...Option) (Stats, error) {
	cfg := newConfig(opts)
	start, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return Stats{}, errors.Wrap(err, "grin: locate input")
	}
	freqs, err := countFrequencies(bitio.NewReaderSize(src, cfg.bufferSize))
	if err != nil {
		return Stats{}, err
	}
	if _, err := src.Seek(start, io.SeekStart); err != nil {
		return Stats{}, errors.Wrap(err, "grin: rewind input")
	}
	return encode(freqs, src, dst, cfg)
}

// encode takes ownership of freqs.
func encode(freqs Frequencies, src io.Reader, dst io.Writer, cfg config) (stats Stats, err error) {
	stats.Symbols = len(freqs)
	for _, c := range freqs {
		stats.InputBytes += c
	}
	if len(freqs) == 0 {
		// Empty input still needs a two leaf tree.
		freqs[0] = 0
	}
	freqs.AddEOF()

	tree, err := huffman.Build(freqs)
	if err != nil {
		return stats, err
	}
	codes := tree.Codes()

	cw := &countWriter{w: dst}
	bw := bitio.NewWriterSize(cw, cfg.bufferSize)
	defer func() {
		if cerr := bw.Close(); err == nil {
			err = cerr
		}
		stats.OutputBytes = cw.n
	}()

	if err = writeHeader(bw, tree); err != nil {
		return stats, err
	}
	if err = encodeBody(bitio.NewReaderSize(src, cfg.bufferSize), bw, codes); err != nil {
		return stats, err
	}
	stats.HeaderBits = magicBits + tree.SerializedBits()
	stats.BodyBits = codes.Cost(freqs)
	return stats, nil
}

// encodeBody writes the code of every byte of br followed by the EOF code.
func encodeBody(br *bitio.Reader, bw *bitio.Writer, codes huffman.EncodingMap) error {
	for {
		v, err := br.ReadBits(8)
		if errors.Is(err, bitio.ErrExhausted) {
			break
		}
		if err != nil {
			return errors.WithMessage(err, "grin: read input")
		}
		code, ok := codes[Symbol(v)]
		if !ok {
			return errors.Errorf("grin: byte %#02x was not counted, input changed between passes", v)
		}
		if err := code.Write(bw); err != nil {
			return err
		}
	}
	return codes[EOF].Write(bw)
}

type countWriter struct {
	w io.Writer
	n uint64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += uint64(n)
	return n, err
}
