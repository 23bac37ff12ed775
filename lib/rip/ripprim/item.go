// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package ripprim implements the primitive types that the rest of the
// miner is built on: dense item identifiers, canonical itemsets, and
// per-item occurrence counts.
package ripprim

// Item identifies a distinct item string in the dataset.  Items are
// assigned densely starting at 1, in first-seen order; 0 is reserved
// as the sentinel carried by a tree root.
type Item uint32

const RootItem Item = 0
