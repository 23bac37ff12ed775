// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package ripprim

import (
	"strings"

	"github.com/cpearce/riptree/lib/slices"
)

// ItemSet is a set of Items, represented canonically as the strictly
// ascending sorted vector of its distinct members.  The zero value is
// the empty set.
type ItemSet []Item

// NewItemSet returns the canonical ItemSet holding the given items;
// the argument slice is not retained.
func NewItemSet(items ...Item) ItemSet {
	set := make(ItemSet, len(items))
	copy(set, items)
	slices.Sort(set)
	// collapse duplicates
	out := set[:0]
	for i, item := range set {
		if i == 0 || item != set[i-1] {
			out = append(out, item)
		}
	}
	return out
}

// Key returns a string usable as a map key identifying the set.  Two
// ItemSets have equal Keys exactly when they hold the same items.
type ItemSetKey string

func (s ItemSet) Key() ItemSetKey {
	var ret strings.Builder
	ret.Grow(4 * len(s))
	for _, item := range s {
		ret.WriteByte(byte(item))
		ret.WriteByte(byte(item >> 8))
		ret.WriteByte(byte(item >> 16))
		ret.WriteByte(byte(item >> 24))
	}
	return ItemSetKey(ret.String())
}

func (s ItemSet) Clone() ItemSet {
	ret := make(ItemSet, len(s))
	copy(ret, s)
	return ret
}

func (s ItemSet) Contains(item Item) bool {
	for _, member := range s {
		if member == item {
			return true
		}
		if member > item {
			return false
		}
	}
	return false
}

// Union merge-walks two canonical ItemSets.
func (s ItemSet) Union(o ItemSet) ItemSet {
	ret := make(ItemSet, 0, len(s)+len(o))
	a, b := 0, 0
	for a < len(s) && b < len(o) {
		switch {
		case s[a] < o[b]:
			ret = append(ret, s[a])
			a++
		case o[b] < s[a]:
			ret = append(ret, o[b])
			b++
		default:
			ret = append(ret, s[a])
			a++
			b++
		}
	}
	ret = append(ret, s[a:]...)
	ret = append(ret, o[b:]...)
	return ret
}

// Intersection merge-walks two canonical ItemSets.
func (s ItemSet) Intersection(o ItemSet) ItemSet {
	ret := make(ItemSet, 0, slices.Min(len(s), len(o)))
	a, b := 0, 0
	for a < len(s) && b < len(o) {
		switch {
		case s[a] < o[b]:
			a++
		case o[b] < s[a]:
			b++
		default:
			ret = append(ret, s[a])
			a++
			b++
		}
	}
	return ret
}

// WithItem returns the canonical union of s and {item}; s itself is
// unmodified.
func (s ItemSet) WithItem(item Item) ItemSet {
	ret := make(ItemSet, 0, len(s)+1)
	inserted := false
	for _, member := range s {
		if !inserted && item < member {
			ret = append(ret, item)
			inserted = true
		}
		if member == item {
			inserted = true
		}
		ret = append(ret, member)
	}
	if !inserted {
		ret = append(ret, item)
	}
	return ret
}

// SplitOutItem partitions s into (s \ {item}, {item}).
func (s ItemSet) SplitOutItem(item Item) (antecedent, consequent ItemSet) {
	antecedent = make(ItemSet, 0, len(s)-1)
	for _, member := range s {
		if member != item {
			antecedent = append(antecedent, member)
		}
	}
	return antecedent, ItemSet{item}
}

// FrequentItemSet is an ItemSet together with the number of
// transactions in the original dataset that are supersets of it.
type FrequentItemSet struct {
	Items ItemSet
	Count uint32
}
