// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package ripprim

import (
	"fmt"
)

// Itemizer is a bijection between item strings and dense Items.  It
// is not thread-safe; it is only ever driven by the single-threaded
// input passes.
type Itemizer struct {
	ids map[string]Item
	// strs[id] is the string for Item(id); strs[0] is the unused
	// root sentinel.
	strs []string
}

func NewItemizer() *Itemizer {
	return &Itemizer{
		ids:  make(map[string]Item),
		strs: []string{""},
	}
}

// IdOf returns the Item for the given string, assigning the next
// unused Item if the string has not been seen before.
func (z *Itemizer) IdOf(str string) Item {
	if id, ok := z.ids[str]; ok {
		return id
	}
	id := Item(len(z.strs))
	z.ids[str] = id
	z.strs = append(z.strs, str)
	return id
}

// StrOf is the inverse of IdOf.  It panics if the Item was never
// assigned; an Item that didn't come out of IdOf is a bug.
func (z *Itemizer) StrOf(item Item) string {
	if item == RootItem || int(item) >= len(z.strs) {
		panic(fmt.Errorf("ripprim.Itemizer.StrOf: item %d was never assigned", item))
	}
	return z.strs[item]
}

// MaxItem returns the largest Item assigned so far, or 0 if none
// have been.
func (z *Itemizer) MaxItem() Item {
	return Item(len(z.strs) - 1)
}
