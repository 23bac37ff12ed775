// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package riprules_test

import (
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpearce/riptree/lib/containers"
	"github.com/cpearce/riptree/lib/rip/ripindex"
	"github.com/cpearce/riptree/lib/rip/ripprim"
	"github.com/cpearce/riptree/lib/rip/riprules"
	"github.com/cpearce/riptree/lib/rip/ripstat"
	"github.com/cpearce/riptree/lib/textui"
)

// A rare item co-occurring once with each of 30 antecedents in 1,000
// transactions produces 30 high-confidence, high-lift rules that are
// all statistical noise: each rule's Fisher p-value (0.002) fails
// the Bonferroni-corrected threshold 0.05/30.
func TestFamilyWisePrunesSpuriousRules(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	const numAntecedents = 30
	itemizer := ripprim.NewItemizer()
	antecedents := make([]ripprim.Item, numAntecedents)
	for i := range antecedents {
		antecedents[i] = itemizer.IdOf(textui.Sprintf("x%d", i))
	}
	r := itemizer.IdOf("r")
	z := itemizer.IdOf("z")

	index := ripindex.New()
	// One transaction holding the rare item and all 30 common
	// items...
	index.Insert(ripprim.NewItemSet(append(append([]ripprim.Item(nil), antecedents...), r)...))
	// ...one more occurrence of each common item on its own...
	for _, item := range antecedents {
		index.Insert(ripprim.ItemSet{item})
	}
	// ...and filler to bring the dataset to 1,000 transactions.
	for index.NumTransactions() < 1000 {
		index.Insert(ripprim.ItemSet{z})
	}

	itemsets := []ripprim.FrequentItemSet{
		{Items: ripprim.ItemSet{r}, Count: index.Count(ripprim.ItemSet{r})},
	}
	for _, item := range antecedents {
		itemsets = append(itemsets,
			ripprim.FrequentItemSet{
				Items: ripprim.ItemSet{item},
				Count: index.Count(ripprim.ItemSet{item}),
			},
			ripprim.FrequentItemSet{
				Items: ripprim.NewItemSet(item, r),
				Count: index.Count(ripprim.NewItemSet(item, r)),
			})
	}

	rules, err := riprules.Generate(ctx, itemsets, index, 0.05, 1.0,
		containers.NewSet(r))
	require.NoError(t, err)
	// Confidence 0.5 and lift 500: every rule clears the
	// thresholds on its own.
	require.Len(t, rules, numAntecedents)
	for _, rule := range rules {
		assert.Equal(t, 0.5, rule.Confidence)
		assert.Equal(t, ripprim.ItemSet{r}, rule.Consequent)
	}

	tbl := ripstat.NewLnFactTable(index.NumTransactions())
	counter := ripindex.NewCachingCounter(index, 1024)
	kept := riprules.FilterFamilyWise(ctx, rules, counter, tbl, itemizer)
	assert.Empty(t, kept)
}

// A strong association in a family of one sails through.
func TestFamilyWiseKeepsSignificantRules(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	itemizer := ripprim.NewItemizer()
	x := itemizer.IdOf("x")
	r := itemizer.IdOf("r")
	z := itemizer.IdOf("z")

	index := ripindex.New()
	// x and r co-occur 20 times in a 1,000-transaction dataset
	// and never apart.
	for i := 0; i < 20; i++ {
		index.Insert(ripprim.NewItemSet(x, r))
	}
	for index.NumTransactions() < 1000 {
		index.Insert(ripprim.ItemSet{z})
	}

	rules := []riprules.Rule{{
		Antecedent: ripprim.ItemSet{x},
		Consequent: ripprim.ItemSet{r},
		Confidence: 1.0,
		Lift:       50.0,
		Support:    0.02,
	}}
	tbl := ripstat.NewLnFactTable(index.NumTransactions())
	counter := ripindex.NewCachingCounter(index, 1024)
	kept := riprules.FilterFamilyWise(ctx, rules, counter, tbl, itemizer)
	require.Len(t, kept, 1)
	assert.Equal(t, rules[0].Antecedent, kept[0].Antecedent)
}
