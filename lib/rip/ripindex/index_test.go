// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package ripindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpearce/riptree/lib/rip/ripindex"
	"github.com/cpearce/riptree/lib/rip/ripprim"
)

func buildIndex(txns ...ripprim.ItemSet) *ripindex.Index {
	idx := ripindex.New()
	for _, txn := range txns {
		idx.Insert(txn)
	}
	return idx
}

func TestIndexCount(t *testing.T) {
	t.Parallel()
	idx := buildIndex(
		ripprim.ItemSet{1, 2, 3},
		ripprim.ItemSet{1, 2},
		ripprim.ItemSet{3},
		ripprim.ItemSet{1, 3},
	)

	assert.Equal(t, uint32(4), idx.NumTransactions())
	assert.Equal(t, uint32(4), idx.Count(nil))
	assert.Equal(t, uint32(3), idx.Count(ripprim.ItemSet{1}))
	assert.Equal(t, uint32(2), idx.Count(ripprim.ItemSet{2}))
	assert.Equal(t, uint32(3), idx.Count(ripprim.ItemSet{3}))
	assert.Equal(t, uint32(2), idx.Count(ripprim.ItemSet{1, 2}))
	assert.Equal(t, uint32(1), idx.Count(ripprim.ItemSet{1, 2, 3}))
	assert.Equal(t, uint32(0), idx.Count(ripprim.ItemSet{2, 3, 9}))
	assert.Equal(t, uint32(0), idx.Count(ripprim.ItemSet{9}))

	assert.Equal(t, 0.5, idx.Support(ripprim.ItemSet{1, 2}))
}

// Count(S ∪ {i}) can never exceed Count(S).
func TestIndexMonotonicity(t *testing.T) {
	t.Parallel()
	idx := buildIndex(
		ripprim.ItemSet{1, 2, 3, 4},
		ripprim.ItemSet{1, 2, 4},
		ripprim.ItemSet{2, 3},
		ripprim.ItemSet{1, 4},
		ripprim.ItemSet{4},
	)
	for _, base := range []ripprim.ItemSet{
		nil,
		{1},
		{2, 3},
		{1, 2, 4},
	} {
		for item := ripprim.Item(1); item <= 5; item++ {
			require.LessOrEqual(t,
				idx.Count(base.WithItem(item)),
				idx.Count(base),
				"base=%v item=%v", base, item)
		}
	}
}

func TestCachingCounter(t *testing.T) {
	t.Parallel()
	idx := buildIndex(
		ripprim.ItemSet{1, 2},
		ripprim.ItemSet{1},
	)
	cc := ripindex.NewCachingCounter(idx, 16)
	assert.Equal(t, uint32(2), cc.NumTransactions())
	for i := 0; i < 3; i++ {
		assert.Equal(t, idx.Count(ripprim.ItemSet{1, 2}), cc.Count(ripprim.ItemSet{1, 2}))
		assert.Equal(t, idx.Count(ripprim.ItemSet{1}), cc.Count(ripprim.ItemSet{1}))
		assert.Equal(t, idx.Count(ripprim.ItemSet{9}), cc.Count(ripprim.ItemSet{9}))
	}
}
