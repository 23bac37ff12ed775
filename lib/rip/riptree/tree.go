// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package riptree implements the RIP-tree — a prefix tree of
// frequency-sorted transactions that contain at least one rare item —
// and the recursive conditional-tree mining over it.
package riptree

import (
	"github.com/cpearce/riptree/lib/maps"
	"github.com/cpearce/riptree/lib/rip/ripprim"
)

// NodeRef is a stable index into a Tree's node arena.  Using indices
// for the parent and header-chain back-references (rather than
// pointers that would own their target) keeps the node graph acyclic
// from the garbage collector's point of view.
type NodeRef int32

const nilRef NodeRef = -1

// rootRef is the arena index of the root; the root carries
// ripprim.RootItem and no parent.
const rootRef NodeRef = 0

type node struct {
	item  ripprim.Item
	count uint32

	parent   NodeRef
	children map[ripprim.Item]NodeRef
	// nextHomonym chains together all nodes carrying the same
	// item; the chain is rooted at the Tree's header table.
	nextHomonym NodeRef
}

type Tree struct {
	arena  []node
	header map[ripprim.Item]NodeRef
}

func New() *Tree {
	return &Tree{
		arena: []node{{
			item:        ripprim.RootItem,
			parent:      nilRef,
			nextHomonym: nilRef,
		}},
		header: make(map[ripprim.Item]NodeRef),
	}
}

// Insert adds a transaction to the tree with the given weight.  The
// items must already be ordered by descending global frequency;
// Insert descends from the root, creating nodes as needed and adding
// the weight to every node on the path.
func (t *Tree) Insert(items []ripprim.Item, weight uint32) {
	cur := rootRef
	for _, item := range items {
		child, ok := t.arena[cur].children[item]
		if !ok {
			child = NodeRef(len(t.arena))
			head, haveHead := t.header[item]
			if !haveHead {
				head = nilRef
			}
			t.arena = append(t.arena, node{
				item:        item,
				parent:      cur,
				nextHomonym: head,
			})
			t.header[item] = child
			if t.arena[cur].children == nil {
				t.arena[cur].children = make(map[ripprim.Item]NodeRef)
			}
			t.arena[cur].children[item] = child
		}
		t.arena[child].count += weight
		cur = child
	}
}

// IsEmpty reports whether no transaction has been inserted.
func (t *Tree) IsEmpty() bool {
	return len(t.arena) == 1
}

// NumNodes returns the number of item-carrying nodes.
func (t *Tree) NumNodes() int {
	return len(t.arena) - 1
}

// HeaderItems returns the set of distinct items present in the tree,
// in unspecified order.
func (t *Tree) HeaderItems() []ripprim.Item {
	return maps.Keys(t.header)
}

// ItemCount sums the node counts along an item's header chain, i.e.
// the weighted number of tree transactions containing the item.
func (t *Tree) ItemCount(item ripprim.Item) uint32 {
	var total uint32
	for ref := t.headOf(item); ref != nilRef; ref = t.arena[ref].nextHomonym {
		total += t.arena[ref].count
	}
	return total
}

func (t *Tree) headOf(item ripprim.Item) NodeRef {
	if head, ok := t.header[item]; ok {
		return head
	}
	return nilRef
}

// depthOf counts the item-carrying ancestors strictly above the node.
func (t *Tree) depthOf(ref NodeRef) int {
	depth := 0
	for p := t.arena[ref].parent; p != nilRef && p != rootRef; p = t.arena[p].parent {
		depth++
	}
	return depth
}
