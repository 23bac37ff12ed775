// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package ripprim

import (
	"sort"
)

// ItemCountMap tallies per-item occurrence counts over the dataset.
type ItemCountMap map[Item]uint32

func (m ItemCountMap) Increment(item Item, by uint32) {
	m[item] += by
}

func (m ItemCountMap) Get(item Item) uint32 {
	return m[item]
}

// Total is the sum of all counts, i.e. the total number of item
// occurrences in the dataset.
func (m ItemCountMap) Total() uint64 {
	var total uint64
	for _, count := range m {
		total += uint64(count)
	}
	return total
}

func (m ItemCountMap) Max() uint32 {
	var max uint32
	for _, count := range m {
		if count > max {
			max = count
		}
	}
	return max
}

type SortOrder int

const (
	SortAscending SortOrder = iota
	SortDescending
)

// SortByFrequency orders items in-place by their global frequency,
// ties broken by ascending Item so that equal-count items land in a
// fixed order on every run.
func SortByFrequency(items []Item, counts ItemCountMap, order SortOrder) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if counts[a] != counts[b] {
			if order == SortAscending {
				return counts[a] < counts[b]
			}
			return counts[a] > counts[b]
		}
		return a < b
	})
}
