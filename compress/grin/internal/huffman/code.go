// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import (
	"strings"

	"github.com/grinutil/grin/compress/grin/internal/bitio"
)

// Code is a root-to-leaf path: 0 for left, 1 for right. Codes can be longer
// than any machine word, so the path is kept in MaxBits wide chunks, first
// bit most significant.
type Code struct {
	chunks []uint32
	n      int
}

type EncodingMap map[Symbol]Code

func newCode(path []uint8) Code {
	c := Code{n: len(path)}
	for start := 0; start < len(path); start += bitio.MaxBits {
		end := start + bitio.MaxBits
		if end > len(path) {
			end = len(path)
		}
		var chunk uint32
		for _, b := range path[start:end] {
			chunk = chunk<<1 | uint32(b)
		}
		c.chunks = append(c.chunks, chunk)
	}
	return c
}

func (c Code) Len() int {
	return c.n
}

func (c Code) chunkLen(i int) int {
	if i < len(c.chunks)-1 {
		return bitio.MaxBits
	}
	return c.n - i*bitio.MaxBits
}

// Bit returns bit i, counting from the root.
func (c Code) Bit(i int) uint8 {
	k := i / bitio.MaxBits
	shift := c.chunkLen(k) - 1 - i%bitio.MaxBits
	return uint8(c.chunks[k]>>shift) & 1
}

func (c Code) Write(w *bitio.Writer) error {
	for i, chunk := range c.chunks {
		if err := w.WriteBits(chunk, uint8(c.chunkLen(i))); err != nil {
			return err
		}
	}
	return nil
}

func (c Code) String() string {
	var sb strings.Builder
	sb.Grow(c.n)
	for i := 0; i < c.n; i++ {
		sb.WriteByte('0' + c.Bit(i))
	}
	return sb.String()
}

// Cost returns the number of bits needed to code every occurrence in freqs.
// Symbols without a code are ignored.
func (m EncodingMap) Cost(freqs Frequencies) uint64 {
	var bits uint64
	for s, count := range freqs {
		if c, ok := m[s]; ok {
			bits += count * uint64(c.Len())
		}
	}
	return bits
}

func buildCodes(root Node) EncodingMap {
	codes := make(EncodingMap)
	path := make([]uint8, 0, maxInternal)
	var walk func(n Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *Leaf:
			codes[n.Symbol] = newCode(path)
		case *Internal:
			path = append(path, 0)
			walk(n.Left)
			path[len(path)-1] = 1
			walk(n.Right)
			path = path[:len(path)-1]
		}
	}
	walk(root)
	return codes
}
