// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package riprare

import (
	"github.com/cpearce/riptree/lib/containers"
	"github.com/cpearce/riptree/lib/maps"
	"github.com/cpearce/riptree/lib/rip/ripprim"
)

// Pareto labels as rare the lowest-frequency items that together
// account for (just over) 25% of all item occurrences.
//
// Items are walked in ascending count order (ascending item id within
// a count), accumulating the running occurrence total; an item is
// included while the total is below the threshold, or while its count
// equals the previous included item's count.  The tie rule means all
// items of an equal count are either all in or all out, so the result
// does not depend on map iteration order.
func Pareto(counts ripprim.ItemCountMap) containers.Set[ripprim.Item] {
	threshold := counts.Total() / 4

	items := maps.Keys(counts)
	ripprim.SortByFrequency(items, counts, ripprim.SortAscending)

	rare := make(containers.Set[ripprim.Item])
	var sum uint64
	var prevCount uint32
	for _, item := range items {
		count := counts.Get(item)
		if sum >= threshold && !(len(rare) > 0 && count == prevCount) {
			break
		}
		rare.Insert(item)
		prevCount = count
		sum += uint64(count)
	}
	return rare
}
