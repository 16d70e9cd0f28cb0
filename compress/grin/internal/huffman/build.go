// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import (
	"container/heap"
	"sort"

	"github.com/pkg/errors"
)

type weighted struct {
	node  Node
	count uint64
	seq   int
}

// nodeQueue is a min-heap ordered by count, then by creation sequence.
type nodeQueue []weighted

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].count != q[j].count {
		return q[i].count < q[j].count
	}
	return q[i].seq < q[j].seq
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(weighted)) }

func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := old[len(old)-1]
	*q = old[:len(old)-1]
	return n
}

// Build constructs the Huffman tree for freqs. The two lowest counts are
// merged repeatedly, the first one removed becoming the left child.
//
// Equal counts are taken in creation order: leaves in ascending symbol order,
// then internal nodes in the order they were merged. The same frequencies
// therefore always give the same tree.
//
// The caller is responsible for adding EOF; Build returns ErrConstruction if
// freqs has fewer than two entries.
func Build(freqs Frequencies) (*Tree, error) {
	if len(freqs) < 2 {
		return nil, ErrConstruction
	}
	if len(freqs) > maxLeaves {
		return nil, errors.Wrapf(ErrConstruction, "%d symbols", len(freqs))
	}

	symbols := make([]int, 0, len(freqs))
	for s := range freqs {
		if s > EOF {
			return nil, errors.Wrapf(ErrConstruction, "symbol %d out of range", s)
		}
		symbols = append(symbols, int(s))
	}
	sort.Ints(symbols)

	q := make(nodeQueue, 0, len(symbols))
	seq := 0
	for _, s := range symbols {
		q = append(q, weighted{
			node:  &Leaf{Symbol: Symbol(s)},
			count: freqs[Symbol(s)],
			seq:   seq,
		})
		seq++
	}
	heap.Init(&q)

	for q.Len() > 1 {
		left := heap.Pop(&q).(weighted)
		right := heap.Pop(&q).(weighted)
		heap.Push(&q, weighted{
			node:  &Internal{Left: left.node, Right: right.node},
			count: left.count + right.count,
			seq:   seq,
		})
		seq++
	}
	return newTree(q[0].node), nil
}
