// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package grin

import (
	"io"

	"github.com/pkg/errors"

	"github.com/grinutil/grin/compress/grin/internal/bitio"
	"github.com/grinutil/grin/compress/grin/internal/huffman"
)

type decodeState uint8

const (
	stateTraversing decodeState = iota // walking from the root towards a leaf
	stateEmitted                       // a byte was returned, restart at the root
	stateDone                          // EOF leaf reached
)

// decoder walks the tree one bit at a time.
type decoder struct {
	r     *bitio.Reader
	root  huffman.Node
	state decodeState
}

func newDecoder(r *bitio.Reader, tree *huffman.Tree) decoder {
	return decoder{r: r, root: tree.Root()}
}

// next returns the next byte of the body, or io.EOF once the EOF code has
// been read. Running out of input before that is ErrCorruptStream.
func (d *decoder) next() (byte, error) {
	if d.state == stateDone {
		return 0, io.EOF
	}
	d.state = stateTraversing
	n := d.root
	for {
		switch node := n.(type) {
		case *huffman.Internal:
			bit, err := d.r.ReadBit()
			if err != nil {
				if errors.Is(err, bitio.ErrExhausted) {
					return 0, errors.Wrap(ErrCorruptStream, "unexpected end of input")
				}
				return 0, err
			}
			if bit == 0 {
				n = node.Left
			} else {
				n = node.Right
			}
		case *huffman.Leaf:
			if node.Symbol == EOF {
				d.state = stateDone
				return 0, io.EOF
			}
			d.state = stateEmitted
			return byte(node.Symbol), nil
		default:
			return 0, errors.Errorf("grin: unexpected node %T", n)
		}
	}
}

// Decompress decodes the grin stream in src and writes the result to dst.
// Bytes decoded before an error are written; removing them is up to the
// caller.
func Decompress(src io.Reader, dst io.Writer, opts ...Option) error {
	cfg := newConfig(opts)
	r := NewReader(src, opts...)
	defer r.Close()
	_, err := io.CopyBuffer(outputWriter{dst}, r, make([]byte, cfg.bufferSize))
	return err
}

// outputWriter tags errors of the sink. It deliberately has no ReadFrom, so
// io.Copy keeps source and sink errors apart.
type outputWriter struct {
	w io.Writer
}

func (o outputWriter) Write(p []byte) (int, error) {
	n, err := o.w.Write(p)
	if err != nil {
		err = errors.Wrap(err, "grin: write output")
	}
	return n, err
}
