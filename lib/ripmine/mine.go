// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package ripmine orchestrates a whole mining run: two passes over
// the dataset, rarity classification, RIP-growth, rule generation
// and filtering, and writing the results out.
package ripmine

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/datawire/dlib/dlog"

	"github.com/cpearce/riptree/lib/containers"
	"github.com/cpearce/riptree/lib/csvio"
	"github.com/cpearce/riptree/lib/rip/ripindex"
	"github.com/cpearce/riptree/lib/rip/ripprim"
	"github.com/cpearce/riptree/lib/rip/riprare"
	"github.com/cpearce/riptree/lib/rip/riprules"
	"github.com/cpearce/riptree/lib/rip/ripstat"
	"github.com/cpearce/riptree/lib/rip/riptree"
	"github.com/cpearce/riptree/lib/textui"
)

type Config struct {
	InputPath  string
	OutputPath string
	// ItemsetsPath, if non-empty, is where to additionally write
	// the mined frequent itemsets as JSON.
	ItemsetsPath string

	Method        riprare.Method
	MinConfidence float64
	MinLift       float64

	DisableFamilyWise bool
	LogRareItems      bool

	// Seed is the base PRNG seed for the gaussian method.
	Seed int64
}

// Mine runs the whole pipeline for one dataset.
func Mine(ctx context.Context, cfg Config) error {
	start := time.Now()
	dlog.Infof(ctx, "mining dataset %q...", cfg.InputPath)
	phase := func(name string) context.Context {
		return dlog.WithField(ctx, "riptree.phase", name)
	}

	// Pass 1: count item frequencies.
	timer := time.Now()
	itemizer := ripprim.NewItemizer()
	counts, numTransactions, err := countItems(cfg.InputPath, itemizer)
	if err != nil {
		return err
	}
	if numTransactions == 0 {
		return fmt.Errorf("dataset %q contains no transactions", cfg.InputPath)
	}
	dlog.Infof(phase("count"), "first pass: counted %v distinct items over %v transactions in %.2fs",
		len(counts), numTransactions, time.Since(timer).Seconds())

	// Classify items as rare/common.
	timer = time.Now()
	var rare containers.Set[ripprim.Item]
	switch cfg.Method {
	case riprare.MethodPareto:
		rare = riprare.Pareto(counts)
	case riprare.MethodGaussian:
		rare, err = riprare.Gaussian(phase("classify"), counts, numTransactions, itemizer.MaxItem(), cfg.Seed)
		if err != nil {
			return err
		}
	}
	if len(rare) == 0 {
		return fmt.Errorf("the %v method found no rare items in %q; nothing to mine", cfg.Method, cfg.InputPath)
	}
	dlog.Infof(phase("classify"), "classified %v of %v items as rare (%v method) in %.2fs",
		len(rare), len(counts), cfg.Method, time.Since(timer).Seconds())
	if cfg.LogRareItems {
		printRareItems(os.Stdout, rare, itemizer)
	}

	// Pass 2: build the transaction index and the RIP-tree.
	timer = time.Now()
	index, tree, err := buildTree(phase("build"), cfg.InputPath, itemizer, counts, rare, numTransactions)
	if err != nil {
		return err
	}
	dlog.Infof(phase("build"), "second pass: built index and a %v-node tree in %.2fs",
		tree.NumNodes(), time.Since(timer).Seconds())

	timer = time.Now()
	lnTable := ripstat.NewLnFactTable(numTransactions)
	dlog.Infof(phase("build"), "built log-factorial table for [0,%v] in %.2fs",
		numTransactions, time.Since(timer).Seconds())

	// Recursive RIP-growth.
	timer = time.Now()
	itemsets, err := riptree.Mine(phase("growth"), tree, index, rare)
	if err != nil {
		return err
	}
	dlog.Infof(phase("growth"), "RIP-growth found %v frequent itemsets in %.2fs",
		len(itemsets), time.Since(timer).Seconds())
	if cfg.ItemsetsPath != "" {
		if err := writeItemsets(cfg.ItemsetsPath, itemsets, itemizer, numTransactions); err != nil {
			return err
		}
	}

	// Derive and filter rules.
	timer = time.Now()
	counter := ripindex.NewCachingCounter(index, textui.Tunable(65536))
	rules, err := riprules.Generate(phase("rules"), itemsets, counter, cfg.MinConfidence, cfg.MinLift, rare)
	if err != nil {
		return err
	}
	dlog.Infof(phase("rules"), "generated %v rules in %.2fs", len(rules), time.Since(timer).Seconds())

	if !cfg.DisableFamilyWise {
		timer = time.Now()
		kept := riprules.FilterFamilyWise(phase("rules"), rules, counter, lnTable, itemizer)
		dlog.Infof(phase("rules"), "family-wise filter kept %v of %v rules in %.2fs",
			len(kept), len(rules), time.Since(timer).Seconds())
		rules = kept
	}

	timer = time.Now()
	if err := writeRules(cfg.OutputPath, rules, itemizer); err != nil {
		return err
	}
	dlog.Infof(phase("write"), "wrote %v rules to %q in %.2fs",
		len(rules), cfg.OutputPath, time.Since(timer).Seconds())

	dlog.Infof(ctx, "total runtime %.2fs", time.Since(start).Seconds())
	return nil
}

// countItems makes the first pass of the dataset, tallying per-item
// occurrence counts and the transaction count.
func countItems(path string, itemizer *ripprim.Itemizer) (ripprim.ItemCountMap, uint32, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = file.Close() }()

	counts := make(ripprim.ItemCountMap)
	var numTransactions uint32
	reader := csvio.NewTransactionReader(file, itemizer)
	for txn, ok := reader.Next(); ok; txn, ok = reader.Next() {
		numTransactions++
		for _, item := range txn {
			counts.Increment(item, 1)
		}
	}
	if err := reader.Err(); err != nil {
		return nil, 0, err
	}
	return counts, numTransactions, nil
}

type buildStats struct {
	Transactions textui.Portion[uint32]
}

func (s buildStats) String() string {
	return textui.Sprintf("inserted %v transactions", s.Transactions)
}

// buildTree makes the second pass: every transaction goes into the
// inverted index, and the transactions carrying at least one rare
// item additionally go into the tree, re-sorted by descending global
// frequency.
func buildTree(ctx context.Context, path string, itemizer *ripprim.Itemizer, counts ripprim.ItemCountMap, rare containers.Set[ripprim.Item], numTransactions uint32) (*ripindex.Index, *riptree.Tree, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = file.Close() }()

	progress := textui.NewProgress[buildStats](ctx, dlog.LogLevelDebug, textui.Tunable(1*time.Second))
	defer progress.Done()

	index := ripindex.New()
	tree := riptree.New()
	reader := csvio.NewTransactionReader(file, itemizer)
	for txn, ok := reader.Next(); ok; txn, ok = reader.Next() {
		index.Insert(txn)
		progress.Set(buildStats{Transactions: textui.Portion[uint32]{
			N: index.NumTransactions(),
			D: numTransactions,
		}})
		if !riprare.ContainsRare(txn, rare) {
			continue
		}
		ripprim.SortByFrequency(txn, counts, ripprim.SortDescending)
		tree.Insert(txn, 1)
	}
	if err := reader.Err(); err != nil {
		return nil, nil, err
	}
	return index, tree, nil
}
