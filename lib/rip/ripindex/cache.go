// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package ripindex

import (
	"github.com/cpearce/riptree/lib/containers"
	"github.com/cpearce/riptree/lib/rip/ripprim"
)

// CachingCounter wraps an Index with an ARC cache of superset counts.
// The rule phases re-count the same antecedents and consequents over
// and over (once per rule they participate in), so memoizing is worth
// a lot more than it costs.  Safe for concurrent use.
type CachingCounter struct {
	inner *Index
	cache *containers.LRUCache[ripprim.ItemSetKey, uint32]
}

var _ Counter = (*CachingCounter)(nil)

func NewCachingCounter(inner *Index, size int) *CachingCounter {
	return &CachingCounter{
		inner: inner,
		cache: containers.NewLRUCache[ripprim.ItemSetKey, uint32](size),
	}
}

func (cc *CachingCounter) NumTransactions() uint32 {
	return cc.inner.NumTransactions()
}

func (cc *CachingCounter) Count(s ripprim.ItemSet) uint32 {
	key := s.Key()
	if count, ok := cc.cache.Get(key); ok {
		return count
	}
	count := cc.inner.Count(s)
	cc.cache.Add(key, count)
	return count
}
