// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package ripindex implements an inverted index over the dataset's
// transactions, answering "how many transactions contain superset S?"
// for arbitrary itemsets S.
package ripindex

import (
	"sort"

	"github.com/cpearce/riptree/lib/rip/ripprim"
)

// Counter is the read side of the index; it is what the rule
// generation and filtering phases consume.
type Counter interface {
	NumTransactions() uint32
	Count(s ripprim.ItemSet) uint32
}

// Index maps each item to the ascending-sorted list of ids of the
// transactions containing it.  Insertion is single-threaded; once
// built the Index is read-only and safe to share across workers.
type Index struct {
	postings        map[ripprim.Item][]uint32
	numTransactions uint32
}

var _ Counter = (*Index)(nil)

func New() *Index {
	return &Index{
		postings: make(map[ripprim.Item][]uint32),
	}
}

// Insert assigns the next transaction id and appends it to each
// member item's posting list.
func (idx *Index) Insert(txn ripprim.ItemSet) {
	tid := idx.numTransactions
	idx.numTransactions++
	for _, item := range txn {
		idx.postings[item] = append(idx.postings[item], tid)
	}
}

func (idx *Index) NumTransactions() uint32 {
	return idx.numTransactions
}

// Count returns the number of transactions that contain every item in
// s.  The posting lists are intersected shortest-first, bailing out
// as soon as the running intersection goes empty; Count(∅) is the
// total number of transactions.
func (idx *Index) Count(s ripprim.ItemSet) uint32 {
	if len(s) == 0 {
		return idx.numTransactions
	}
	lists := make([][]uint32, len(s))
	for i, item := range s {
		list, ok := idx.postings[item]
		if !ok {
			return 0
		}
		lists[i] = list
	}
	sort.Slice(lists, func(i, j int) bool {
		return len(lists[i]) < len(lists[j])
	})
	running := lists[0]
	for _, list := range lists[1:] {
		running = intersectSorted(running, list)
		if len(running) == 0 {
			return 0
		}
	}
	return uint32(len(running))
}

func (idx *Index) Support(s ripprim.ItemSet) float64 {
	return float64(idx.Count(s)) / float64(idx.numTransactions)
}

func intersectSorted(a, b []uint32) []uint32 {
	ret := make([]uint32, 0, len(a))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case b[j] < a[i]:
			j++
		default:
			ret = append(ret, a[i])
			i++
			j++
		}
	}
	return ret
}
