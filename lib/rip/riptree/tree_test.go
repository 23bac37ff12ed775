// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package riptree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpearce/riptree/lib/rip/ripprim"
)

func TestTreeInsert(t *testing.T) {
	t.Parallel()
	tree := New()
	assert.True(t, tree.IsEmpty())

	// Transactions already ordered by descending global
	// frequency; 1 is the most frequent item.
	tree.Insert([]ripprim.Item{1, 2, 3}, 1)
	tree.Insert([]ripprim.Item{1, 2}, 1)
	tree.Insert([]ripprim.Item{1, 4}, 1)
	tree.Insert([]ripprim.Item{2, 3}, 2)

	assert.False(t, tree.IsEmpty())
	// Paths: 1-2-3, 1-2, 1-4, 2-3 share nodes 1, 1/2, 1/2/3,
	// 1/4, 2, 2/3.
	assert.Equal(t, 6, tree.NumNodes())

	assert.Equal(t, uint32(3), tree.ItemCount(1))
	assert.Equal(t, uint32(4), tree.ItemCount(2))
	assert.Equal(t, uint32(3), tree.ItemCount(3))
	assert.Equal(t, uint32(1), tree.ItemCount(4))
	assert.Equal(t, uint32(0), tree.ItemCount(9))

	assert.ElementsMatch(t,
		[]ripprim.Item{1, 2, 3, 4},
		tree.HeaderItems())
}

// Every node carrying item i must be reachable from the header table
// by following the homonym chain, and non-leaf counts must equal the
// sum of their children's counts after a full weight-1 build of
// distinct-path transactions.
func TestTreeInvariants(t *testing.T) {
	t.Parallel()
	tree := New()
	txns := [][]ripprim.Item{
		{1, 2, 3},
		{1, 2, 4},
		{1, 3},
		{2, 3},
		{2, 4},
		{1, 2, 3},
	}
	for _, txn := range txns {
		tree.Insert(txn, 1)
	}

	// Header chains partition the item-carrying nodes.
	chained := 0
	for _, item := range tree.HeaderItems() {
		for ref := tree.headOf(item); ref != nilRef; ref = tree.arena[ref].nextHomonym {
			require.Equal(t, item, tree.arena[ref].item)
			chained++
		}
	}
	assert.Equal(t, tree.NumNodes(), chained)

	for ref := rootRef + 1; int(ref) < len(tree.arena); ref++ {
		node := tree.arena[ref]

		// Parent refs are consistent with the child maps.
		require.Equal(t, ref, tree.arena[node.parent].children[node.item])

		// Non-leaf counts equal the sum of their children's counts.
		if len(node.children) > 0 {
			var childSum uint32
			for _, child := range node.children {
				childSum += tree.arena[child].count
			}
			require.Equal(t, node.count, childSum)
		}
	}
}

func TestTreeWeightedInsert(t *testing.T) {
	t.Parallel()
	tree := New()
	tree.Insert([]ripprim.Item{1, 2}, 3)
	tree.Insert([]ripprim.Item{1}, 2)
	assert.Equal(t, uint32(5), tree.ItemCount(1))
	assert.Equal(t, uint32(3), tree.ItemCount(2))
}
