// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package huffman builds, serializes and walks the static Huffman trees of
// the grin format. The alphabet has 257 symbols: the 256 byte values and EOF.
package huffman

import "github.com/pkg/errors"

// Symbol is a byte value (0-255) or EOF.
type Symbol uint16

const (
	// EOF marks the logical end of a stream. It never appears in output.
	EOF Symbol = 256
	// SymbolBits is the width of a symbol in a serialized tree.
	SymbolBits = 9

	maxLeaves   = 257
	maxInternal = maxLeaves - 1
)

var (
	// ErrConstruction is returned when a tree is built from fewer than two
	// symbols.
	ErrConstruction = errors.New("huffman: at least two symbols are required")
	// ErrCorruptTree is returned when a serialized tree is truncated or
	// malformed.
	ErrCorruptTree = errors.New("huffman: corrupt tree")
)

// Frequencies maps symbols to occurrence counts.
type Frequencies map[Symbol]uint64

func (f Frequencies) AddEOF() {
	f[EOF]++
}

// Node is either a *Leaf or an *Internal node.
type Node interface {
	node()
}

type Leaf struct {
	Symbol Symbol
}

// Internal owns its children.
type Internal struct {
	Left  Node
	Right Node
}

func (*Leaf) node()     {}
func (*Internal) node() {}

// Tree is an immutable Huffman tree together with its encoding map.
type Tree struct {
	root  Node
	codes EncodingMap
}

func newTree(root Node) *Tree {
	return &Tree{root: root, codes: buildCodes(root)}
}

func (t *Tree) Root() Node {
	return t.root
}

// Codes must not be modified.
func (t *Tree) Codes() EncodingMap {
	return t.codes
}

func (t *Tree) Leaves() int {
	return len(t.codes)
}

// Equal reports whether a and b have the same shape and the same symbols at
// the same positions.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *Leaf:
		b, ok := b.(*Leaf)
		return ok && a.Symbol == b.Symbol
	case *Internal:
		b, ok := b.(*Internal)
		return ok && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	}
	return false
}
