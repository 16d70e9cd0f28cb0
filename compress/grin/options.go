// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package grin

import "github.com/grinutil/grin/compress/grin/internal/bitio"

const minBufferSize = 16

type config struct {
	bufferSize int
}

// Option configures Compress, Decompress, NewReader and NewWriter.
type Option func(*config)

// WithBufferSize sets the size of the buffers placed in front of the source
// and the sink. Sizes below 16 bytes select the default of 64 KiB.
func WithBufferSize(n int) Option {
	return func(c *config) {
		c.bufferSize = n
	}
}

func newConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.bufferSize < minBufferSize {
		cfg.bufferSize = bitio.DefaultBufferSize
	}
	return cfg
}
