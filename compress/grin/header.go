// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package grin implements the grin compressed format: a static Huffman code
// over the 256 byte values plus an end-of-stream symbol.
//
// A grin stream is the 32 bit Magic, the serialized Huffman tree and the
// coded body, all written most significant bit first. The body ends with the
// code of the end-of-stream symbol; the final byte is padded with zero bits.
package grin

import (
	"github.com/pkg/errors"

	"github.com/grinutil/grin/compress/grin/internal/bitio"
	"github.com/grinutil/grin/compress/grin/internal/huffman"
)

// Magic starts every grin stream.
const Magic uint32 = 0x00000736

const magicBits = 32

func writeHeader(w *bitio.Writer, tree *huffman.Tree) error {
	if err := w.WriteBits(Magic, magicBits); err != nil {
		return err
	}
	return tree.Serialize(w)
}

// readHeader checks the magic number before reading a single bit of the tree.
func readHeader(r *bitio.Reader) (*huffman.Tree, error) {
	magic, err := r.ReadBits(magicBits)
	if err != nil {
		if errors.Is(err, bitio.ErrExhausted) {
			return nil, errors.Wrap(ErrFormat, "short header")
		}
		return nil, err
	}
	if magic != Magic {
		return nil, errors.Wrapf(ErrFormat, "magic %#08x", magic)
	}
	return huffman.Deserialize(r)
}
