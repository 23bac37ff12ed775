// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package riprare_test

import (
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpearce/riptree/lib/containers"
	"github.com/cpearce/riptree/lib/rip/ripprim"
	"github.com/cpearce/riptree/lib/rip/riprare"
)

func TestParetoBasic(t *testing.T) {
	t.Parallel()
	// Total is 40, so the threshold is 10.  The walk takes the
	// 1-count and 4-count items outright, takes the 15-count
	// item because the running total (5) is still under the
	// threshold when it is considered, and stops at the 20-count
	// item.
	counts := ripprim.ItemCountMap{
		1: 15,
		2: 4,
		3: 1,
		4: 20,
	}
	rare := riprare.Pareto(counts)
	assert.Equal(t, containers.NewSet[ripprim.Item](1, 2, 3), rare)
}

// All items of a tied count are in or all are out, so the result
// can't depend on map iteration order.
func TestParetoTiePreservation(t *testing.T) {
	t.Parallel()
	counts := ripprim.ItemCountMap{
		1: 100,
		2: 30,
		3: 30,
		4: 30,
		5: 30,
	}
	// Threshold is ⌊220/4⌋ = 55: items 2 and 3 are taken under
	// it, and items 4 and 5 ride along on the tie even though
	// the running total has already crossed it.
	rare := riprare.Pareto(counts)
	assert.Equal(t, containers.NewSet[ripprim.Item](2, 3, 4, 5), rare)
}

func TestParetoDeterminism(t *testing.T) {
	t.Parallel()
	counts := ripprim.ItemCountMap{
		1: 7, 2: 7, 3: 7, 4: 7, 5: 7, 6: 7, 7: 7, 8: 7,
		9: 50, 10: 50, 11: 1,
	}
	want := riprare.Pareto(counts)
	for i := 0; i < 20; i++ {
		require.Equal(t, want, riprare.Pareto(counts))
	}
}

func TestParetoTinyDataset(t *testing.T) {
	t.Parallel()
	// With a total under 4 the threshold is 0 and nothing
	// qualifies; the caller treats that as a data error.
	rare := riprare.Pareto(ripprim.ItemCountMap{1: 1})
	assert.Empty(t, rare)
}

func TestGaussianDeterministicUnderSeed(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)
	counts := ripprim.ItemCountMap{1: 30, 2: 10, 3: 1, 4: 25}
	a, err := riprare.Gaussian(ctx, counts, 30, 4, 42)
	require.NoError(t, err)
	b, err := riprare.Gaussian(ctx, counts, 30, 4, 42)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGaussianNoFalseRares(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)
	// Two items each present in every one of 50 transactions: a
	// uniform synthetic dataset can't beat an item's actual
	// count by ε in all 100 runs at once.
	counts := ripprim.ItemCountMap{1: 50, 2: 50}
	rare, err := riprare.Gaussian(ctx, counts, 50, 2, 1)
	require.NoError(t, err)
	assert.Empty(t, rare)
}

func TestContainsRare(t *testing.T) {
	t.Parallel()
	rare := containers.NewSet[ripprim.Item](3)
	assert.True(t, riprare.ContainsRare(ripprim.ItemSet{1, 3, 5}, rare))
	assert.False(t, riprare.ContainsRare(ripprim.ItemSet{1, 5}, rare))
	assert.False(t, riprare.ContainsRare(nil, rare))
}

func TestMethodFlag(t *testing.T) {
	t.Parallel()
	var flag riprare.MethodFlag
	require.NoError(t, flag.Set("pareto"))
	assert.Equal(t, riprare.MethodPareto, flag.Method)
	require.NoError(t, flag.Set("gaussian"))
	assert.Equal(t, riprare.MethodGaussian, flag.Method)
	assert.Error(t, flag.Set("quantile"))
	assert.Equal(t, "gaussian", flag.String())
}
