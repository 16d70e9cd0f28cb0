// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import (
	"github.com/pkg/errors"

	"github.com/grinutil/grin/compress/grin/internal/bitio"
)

// Serialize writes t in pre-order. A leaf is written as bit 0 followed by its
// SymbolBits wide symbol, an internal node as bit 1 followed by its left and
// right subtrees. The encoding carries no length: its end follows from its
// shape.
func (t *Tree) Serialize(w *bitio.Writer) error {
	return serialize(w, t.root)
}

func serialize(w *bitio.Writer, n Node) error {
	switch n := n.(type) {
	case *Leaf:
		if err := w.WriteBit(0); err != nil {
			return err
		}
		return w.WriteBits(uint32(n.Symbol), SymbolBits)
	case *Internal:
		if err := w.WriteBit(1); err != nil {
			return err
		}
		if err := serialize(w, n.Left); err != nil {
			return err
		}
		return serialize(w, n.Right)
	}
	return errors.Errorf("huffman: unexpected node %T", n)
}

// SerializedBits returns the length of the serialized tree in bits.
func (t *Tree) SerializedBits() uint64 {
	leaves := uint64(t.Leaves())
	return leaves*(1+SymbolBits) + leaves - 1
}

// Deserialize reads a tree written by Serialize, consuming exactly its bits.
// Besides truncation, ErrCorruptTree is returned for trees Serialize cannot
// produce: symbols above EOF, repeated symbols, a lone leaf as root, too many
// nodes or no EOF leaf.
func Deserialize(r *bitio.Reader) (*Tree, error) {
	d := deserializer{r: r}
	root, err := d.node()
	if err != nil {
		return nil, err
	}
	if _, ok := root.(*Leaf); ok {
		return nil, errors.Wrap(ErrCorruptTree, "root is a leaf")
	}
	if !d.seen[EOF] {
		return nil, errors.Wrap(ErrCorruptTree, "no EOF leaf")
	}
	return newTree(root), nil
}

type deserializer struct {
	r        *bitio.Reader
	seen     [maxLeaves]bool
	internal int
}

func (d *deserializer) node() (Node, error) {
	bit, err := d.r.ReadBit()
	if err != nil {
		return nil, d.fail(err)
	}
	if bit == 0 {
		v, err := d.r.ReadBits(SymbolBits)
		if err != nil {
			return nil, d.fail(err)
		}
		if v > uint32(EOF) {
			return nil, errors.Wrapf(ErrCorruptTree, "symbol %d out of range", v)
		}
		if d.seen[v] {
			return nil, errors.Wrapf(ErrCorruptTree, "symbol %d repeated", v)
		}
		d.seen[v] = true
		return &Leaf{Symbol: Symbol(v)}, nil
	}

	d.internal++
	if d.internal > maxInternal {
		return nil, errors.Wrap(ErrCorruptTree, "too many internal nodes")
	}
	left, err := d.node()
	if err != nil {
		return nil, err
	}
	right, err := d.node()
	if err != nil {
		return nil, err
	}
	return &Internal{Left: left, Right: right}, nil
}

func (d *deserializer) fail(err error) error {
	if errors.Is(err, bitio.ErrExhausted) {
		return errors.Wrap(ErrCorruptTree, "unexpected end of input")
	}
	return err
}
