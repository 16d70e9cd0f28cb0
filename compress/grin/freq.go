// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package grin

import (
	"io"

	"github.com/pkg/errors"

	"github.com/grinutil/grin/compress/grin/internal/bitio"
	"github.com/grinutil/grin/compress/grin/internal/huffman"
)

type (
	// Symbol is a byte value or EOF.
	Symbol = huffman.Symbol
	// Frequencies maps symbols to occurrence counts.
	Frequencies = huffman.Frequencies
)

// EOF is the end-of-stream symbol.
const EOF = huffman.EOF

// CountFrequencies reads r to the end and counts every byte value. EOF is not
// included; callers add it before building a tree.
func CountFrequencies(r io.Reader) (Frequencies, error) {
	return countFrequencies(bitio.NewReader(r))
}

func countFrequencies(br *bitio.Reader) (Frequencies, error) {
	var counts [256]uint64
	for {
		v, err := br.ReadBits(8)
		if errors.Is(err, bitio.ErrExhausted) {
			break
		}
		if err != nil {
			return nil, errors.WithMessage(err, "grin: count input")
		}
		counts[v]++
	}

	freqs := make(Frequencies)
	for b, c := range counts {
		if c != 0 {
			freqs[Symbol(b)] = c
		}
	}
	return freqs, nil
}
