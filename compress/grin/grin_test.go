// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package grin

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func opticks(t testing.TB) (data []byte) {
	data, _ = os.ReadFile(filepath.Join(runtime.GOROOT(), "src", "testdata", "Isaac.Newton-Opticks.txt"))
	if data == nil {
		t.Skip("skip for no test data file")
	}
	return data
}

func compress(t testing.TB, data []byte, opts ...Option) []byte {
	buf := bytes.NewBuffer(nil)
	require.NoError(t, Compress(bytes.NewReader(data), buf, opts...))
	return buf.Bytes()
}

func decompress(t testing.TB, data []byte, opts ...Option) []byte {
	buf := bytes.NewBuffer(nil)
	require.NoError(t, Decompress(bytes.NewReader(data), buf, opts...))
	return buf.Bytes()
}

func allBytes() []byte {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func TestRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	random := make([]byte, 100_000)
	rnd.Read(random)
	skewed := make([]byte, 50_000)
	for i := range skewed {
		skewed[i] = byte(int(rnd.ExpFloat64()*4) & 0xff)
	}

	cases := map[string][]byte{
		"empty":     {},
		"one byte":  {0x00},
		"one 0xff":  {0xff},
		"two bytes": {0x01, 0x02},
		"repeated":  bytes.Repeat([]byte{0x41}, 1000),
		"all bytes": allBytes(),
		"text":      []byte("the quick brown fox jumped over the lazy dog"),
		"random":    random,
		"skewed":    skewed,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			got := decompress(t, compress(t, data))
			require.True(t, bytes.Equal(data, got), "round trip mismatch, %d vs %d bytes", len(data), len(got))
		})
	}
}

func TestRoundTripBufferSizes(t *testing.T) {
	data := bytes.Repeat([]byte("abracadabra, "), 3000)
	for _, size := range []int{0, 1, 16, 17, 4096} {
		got := decompress(t, compress(t, data, WithBufferSize(size)), WithBufferSize(size))
		require.Equal(t, data, got, "buffer size %d", size)
	}
}

func TestRoundTripOpticks(t *testing.T) {
	data := opticks(t)
	compressed := compress(t, data)
	require.Less(t, len(compressed), len(data))
	require.Equal(t, data, decompress(t, compressed))
}

func TestCompressEmpty(t *testing.T) {
	// magic, tree (1 0 0x000 0 0x100) and the one bit EOF code.
	require.Equal(t, []byte{0x00, 0x00, 0x07, 0x36, 0x80, 0x08, 0x04}, compress(t, nil))
	require.Empty(t, decompress(t, compress(t, nil)))
}

func TestCompressRepeatedByte(t *testing.T) {
	data := bytes.Repeat([]byte{0x41}, 1000)
	buf := bytes.NewBuffer(nil)
	stats, err := CompressWithStats(bytes.NewReader(data), buf)
	require.NoError(t, err)

	require.Equal(t, Stats{
		InputBytes:  1000,
		OutputBytes: 132,
		Symbols:     1,
		HeaderBits:  32 + 21,
		BodyBits:    1001,
	}, stats)
	require.Equal(t, 132, buf.Len())
	require.InDelta(t, 0.132, stats.Ratio(), 1e-9)

	got := decompress(t, buf.Bytes())
	require.Len(t, got, 1000)
	require.Equal(t, data, got)
}

func TestCompressAllBytes(t *testing.T) {
	data := allBytes()
	buf := bytes.NewBuffer(nil)
	stats, err := CompressWithStats(bytes.NewReader(data), buf)
	require.NoError(t, err)
	require.Equal(t, 256, stats.Symbols)
	// 257 leaves, 256 internal nodes.
	require.Equal(t, uint64(32+257*10+256), stats.HeaderBits)
	require.Equal(t, (stats.HeaderBits+stats.BodyBits+7)/8, stats.OutputBytes)
	require.Equal(t, data, decompress(t, buf.Bytes()))
}

func TestCountFrequencies(t *testing.T) {
	freqs, err := CountFrequencies(bytes.NewReader([]byte("abracadabra")))
	require.NoError(t, err)
	require.Equal(t, Frequencies{'a': 5, 'b': 2, 'r': 2, 'c': 1, 'd': 1}, freqs)
	require.NotContains(t, freqs, EOF)

	freqs, err = CountFrequencies(bytes.NewReader(nil))
	require.NoError(t, err)
	require.Empty(t, freqs)
}

func TestDecompressBadMagic(t *testing.T) {
	data := compress(t, []byte("hello, hello"))
	copy(data, []byte{0xde, 0xad, 0xbe, 0xef})
	err := Decompress(bytes.NewReader(data), bytes.NewBuffer(nil))
	require.ErrorIs(t, err, ErrFormat)

	// Nothing follows the magic: reading the tree would be ErrCorruptTree.
	err = Decompress(bytes.NewReader([]byte{0x00, 0x00, 0x07, 0x37}), bytes.NewBuffer(nil))
	require.ErrorIs(t, err, ErrFormat)
	require.NotErrorIs(t, err, ErrCorruptTree)

	for _, short := range [][]byte{nil, {0x00, 0x00, 0x07}} {
		err = Decompress(bytes.NewReader(short), bytes.NewBuffer(nil))
		require.ErrorIs(t, err, ErrFormat)
	}
}

func TestDecompressTruncatedTree(t *testing.T) {
	data := compress(t, []byte("hello, hello"))
	err := Decompress(bytes.NewReader(data[:6]), bytes.NewBuffer(nil))
	require.ErrorIs(t, err, ErrCorruptTree)
}

func TestDecompressTruncatedBody(t *testing.T) {
	data := bytes.Repeat([]byte("mississippi "), 100)
	compressed := compress(t, data)
	out := bytes.NewBuffer(nil)
	err := Decompress(bytes.NewReader(compressed[:len(compressed)-1]), out)
	require.ErrorIs(t, err, ErrCorruptStream)
	// What was decoded before the cut is kept.
	require.NotZero(t, out.Len())
	require.Equal(t, data[:out.Len()], out.Bytes())
}

func TestDecompressIgnoresTrailingData(t *testing.T) {
	data := []byte("trailing garbage is never read")
	compressed := append(compress(t, data), 0xff, 0xff, 0xff)
	require.Equal(t, data, decompress(t, compressed))
}

var (
	errSink   = errors.New("sink failed")
	errSource = errors.New("source failed")
)

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errSink }

type failSeeker struct {
	*bytes.Reader
}

func (failSeeker) Seek(int64, int) (int64, error) { return 0, errSource }

type failReadSeeker struct{}

func (failReadSeeker) Read([]byte) (int, error)       { return 0, errSource }
func (failReadSeeker) Seek(int64, int) (int64, error) { return 0, nil }

func TestCompressFromOffset(t *testing.T) {
	cases := []struct {
		data   string
		offset int64
	}{
		{"abab", 2},
		{"HDRpayload-payload", 3},
		{"skip all of it", 14},
	}
	for _, c := range cases {
		src := bytes.NewReader([]byte(c.data))
		_, err := src.Seek(c.offset, io.SeekStart)
		require.NoError(t, err)

		buf := bytes.NewBuffer(nil)
		stats, err := CompressWithStats(src, buf)
		require.NoError(t, err, c.data)
		want := []byte(c.data[c.offset:])
		require.Equal(t, uint64(len(want)), stats.InputBytes, c.data)
		require.True(t, bytes.Equal(want, decompress(t, buf.Bytes())), c.data)
	}
}

func TestCompressIOErrors(t *testing.T) {
	data := bytes.Repeat([]byte("some data "), 1000)

	err := Compress(bytes.NewReader(data), failWriter{}, WithBufferSize(16))
	require.ErrorIs(t, err, errSink)

	err = Compress(failSeeker{bytes.NewReader(data)}, bytes.NewBuffer(nil))
	require.ErrorIs(t, err, errSource)

	err = Compress(failReadSeeker{}, bytes.NewBuffer(nil))
	require.ErrorIs(t, err, errSource)
}

func TestDecompressIOErrors(t *testing.T) {
	data := compress(t, bytes.Repeat([]byte("some data "), 1000))
	err := Decompress(bytes.NewReader(data), failWriter{})
	require.ErrorIs(t, err, errSink)
}

// changingSource returns different data after being rewound.
type changingSource struct {
	*bytes.Reader
	second []byte
}

func (c *changingSource) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekStart {
		c.Reader = bytes.NewReader(c.second)
	}
	return 0, nil
}

func TestCompressInputChanged(t *testing.T) {
	src := &changingSource{Reader: bytes.NewReader([]byte("aaaa")), second: []byte("aaab")}
	err := Compress(src, bytes.NewBuffer(nil))
	require.Error(t, err)
	require.Contains(t, err.Error(), "input changed")
}

func BenchmarkCompress(b *testing.B) {
	data := opticks(b)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Compress(bytes.NewReader(data), bytes.NewBuffer(nil))
	}
}

func BenchmarkDecompress(b *testing.B) {
	data := opticks(b)
	compressed := compress(b, data)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Decompress(bytes.NewReader(compressed), bytes.NewBuffer(nil))
	}
}
