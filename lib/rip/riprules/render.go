// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package riprules

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cpearce/riptree/lib/rip/ripprim"
)

// Render prints the rule as `a1 a2 ==> c1`, resolving items back to
// their dataset strings.  Within each side the strings sort
// numerically when every one of them parses as a non-negative
// integer, and lexicographically otherwise, so rendering is stable
// across runs no matter what order the ids were assigned in.
func (r Rule) Render(itemizer *ripprim.Itemizer) string {
	return renderSide(r.Antecedent, itemizer) + " ==> " + renderSide(r.Consequent, itemizer)
}

func renderSide(items ripprim.ItemSet, itemizer *ripprim.Itemizer) string {
	strs := make([]string, len(items))
	for i, item := range items {
		strs[i] = itemizer.StrOf(item)
	}
	SortRendered(strs)
	return strings.Join(strs, " ")
}

// SortRendered sorts item strings numerically if they all parse as
// non-negative integers, and lexicographically otherwise.
func SortRendered(strs []string) {
	allNumeric := true
	for _, str := range strs {
		if _, err := strconv.ParseUint(str, 10, 32); err != nil {
			allNumeric = false
			break
		}
	}
	if allNumeric {
		sort.Slice(strs, func(i, j int) bool {
			a, _ := strconv.ParseUint(strs[i], 10, 32)
			b, _ := strconv.ParseUint(strs[j], 10, 32)
			return a < b
		})
		return
	}
	sort.Strings(strs)
}
