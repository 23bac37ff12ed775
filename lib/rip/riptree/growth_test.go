// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package riptree_test

import (
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpearce/riptree/lib/containers"
	"github.com/cpearce/riptree/lib/rip/ripindex"
	"github.com/cpearce/riptree/lib/rip/ripprim"
	"github.com/cpearce/riptree/lib/rip/riptree"
)

// HARM's census2.csv test dataset.
var census2 = [][]string{
	{"a", "b", "c"},
	{"d", "b", "c"},
	{"a", "b", "e"},
	{"f", "g", "c"},
	{"d", "g", "e"},
	{"f", "b", "c"},
	{"f", "b", "c"},
	{"a", "b", "e"},
	{"a", "b", "c"},
	{"a", "b", "e"},
	{"a", "b", "e"},
}

func loadCensus2(itemizer *ripprim.Itemizer) (*ripindex.Index, *riptree.Tree) {
	counts := make(ripprim.ItemCountMap)
	txns := make([]ripprim.ItemSet, len(census2))
	for i, line := range census2 {
		items := make([]ripprim.Item, len(line))
		for j, str := range line {
			items[j] = itemizer.IdOf(str)
		}
		txns[i] = ripprim.NewItemSet(items...)
		for _, item := range txns[i] {
			counts.Increment(item, 1)
		}
	}

	index := ripindex.New()
	tree := riptree.New()
	for _, txn := range txns {
		index.Insert(txn)
		sorted := txn.Clone()
		ripprim.SortByFrequency(sorted, counts, ripprim.SortDescending)
		tree.Insert(sorted, 1)
	}
	return index, tree
}

func TestMineCountsMatchIndex(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)
	itemizer := ripprim.NewItemizer()
	index, tree := loadCensus2(itemizer)

	itemsets, err := riptree.Mine(ctx, tree, index, nil)
	require.NoError(t, err)
	require.NotEmpty(t, itemsets)

	// No duplicate itemsets, and every count is the itemset's
	// superset count in the full dataset.
	seen := make(map[ripprim.ItemSetKey]struct{})
	for _, itemset := range itemsets {
		key := itemset.Items.Key()
		require.NotContains(t, seen, key, "itemset %v emitted twice", itemset.Items)
		seen[key] = struct{}{}
		require.Equal(t, index.Count(itemset.Items), itemset.Count,
			"itemset %v", itemset.Items)
	}

	byKey := func(strs ...string) ripprim.FrequentItemSet {
		items := make([]ripprim.Item, len(strs))
		for i, str := range strs {
			items[i] = itemizer.IdOf(str)
		}
		set := ripprim.NewItemSet(items...)
		for _, itemset := range itemsets {
			if itemset.Items.Key() == set.Key() {
				return itemset
			}
		}
		return ripprim.FrequentItemSet{}
	}

	assert.Equal(t, uint32(6), byKey("a", "b").Count)
	assert.Equal(t, uint32(4), byKey("a", "b", "e").Count)
	assert.Equal(t, uint32(1), byKey("d", "g", "e").Count)
	assert.Equal(t, uint32(9), byKey("b").Count)
	assert.Equal(t, uint32(2), byKey("f", "b", "c").Count)
}

func TestMineRareAnchored(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)
	itemizer := ripprim.NewItemizer()
	index, tree := loadCensus2(itemizer)

	rare := containers.NewSet(itemizer.IdOf("f"), itemizer.IdOf("g"))
	itemsets, err := riptree.Mine(ctx, tree, index, rare)
	require.NoError(t, err)
	require.NotEmpty(t, itemsets)

	for _, itemset := range itemsets {
		anchored := false
		for _, item := range itemset.Items {
			if rare.Has(item) {
				anchored = true
				break
			}
		}
		require.True(t, anchored, "itemset %v has no rare item", itemset.Items)
		require.Equal(t, index.Count(itemset.Items), itemset.Count)
	}
}
