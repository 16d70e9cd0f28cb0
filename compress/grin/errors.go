// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package grin

import (
	"github.com/pkg/errors"

	"github.com/grinutil/grin/compress/grin/internal/huffman"
)

var (
	// ErrFormat is returned when a stream does not start with Magic.
	ErrFormat = errors.New("grin: not a grin stream")
	// ErrCorruptStream is returned when the body ends before the EOF code.
	ErrCorruptStream = errors.New("grin: corrupt stream")
	// ErrCorruptTree is returned when the serialized tree is truncated or
	// malformed.
	ErrCorruptTree = huffman.ErrCorruptTree
	// ErrConstruction is returned when a tree would have fewer than two
	// leaves.
	ErrConstruction = huffman.ErrConstruction
)

var errWriteAfterClose = errors.New("grin: write after close")
