// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package riptree

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"

	"github.com/cpearce/riptree/lib/containers"
	"github.com/cpearce/riptree/lib/rip/ripindex"
	"github.com/cpearce/riptree/lib/rip/ripprim"
	"github.com/cpearce/riptree/lib/slices"
	"github.com/cpearce/riptree/lib/textui"
)

type growthStats struct {
	Itemsets int64
}

func (s growthStats) String() string {
	return textui.Sprintf("found %v frequent itemsets", s.Itemsets)
}

type miner struct {
	index *ripindex.Index
	// rare == nil accepts every candidate; otherwise a candidate
	// is accepted only once a rare item anchors it.
	rare containers.Set[ripprim.Item]

	pathBufs containers.SlicePool[ripprim.Item]
	emitted  atomic.Int64
}

// Mine runs RIP-growth over a fully built tree and returns the
// deduplicated frequent itemsets.  Each itemset's Count is its
// superset count in the full dataset (recounted against the index),
// not its weight in whatever conditional projection it was found in.
//
// The fan-out over the root tree's header items runs in parallel;
// each worker owns the conditional trees it builds, and only the
// resulting itemsets cross back.
func Mine(ctx context.Context, tree *Tree, index *ripindex.Index, rare containers.Set[ripprim.Item]) ([]ripprim.FrequentItemSet, error) {
	m := &miner{
		index: index,
		rare:  rare,
	}

	progress := textui.NewProgress[growthStats](ctx, dlog.LogLevelDebug, textui.Tunable(1*time.Second))
	defer progress.Done()
	progress.Set(growthStats{})

	items := tree.HeaderItems()
	results := make(map[ripprim.ItemSetKey]ripprim.FrequentItemSet)
	var resultsMu sync.Mutex

	queue := make(chan ripprim.Item)
	grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{})
	grp.Go("enqueue", func(ctx context.Context) error {
		defer close(queue)
		for _, item := range items {
			select {
			case queue <- item:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	numWorkers := slices.Min(runtime.GOMAXPROCS(0), slices.Max(len(items), 1))
	for worker := 0; worker < numWorkers; worker++ {
		grp.Go(textui.Sprintf("grow-%d", worker), func(ctx context.Context) error {
			local := make(map[ripprim.ItemSetKey]ripprim.FrequentItemSet)
			for item := range queue {
				if err := m.grow(ctx, tree, nil, false, item, local); err != nil {
					return err
				}
				progress.Set(growthStats{Itemsets: m.emitted.Load()})
			}
			resultsMu.Lock()
			for key, itemset := range local {
				if _, seen := results[key]; !seen {
					results[key] = itemset
				}
			}
			resultsMu.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	ret := make([]ripprim.FrequentItemSet, 0, len(results))
	for _, itemset := range results {
		ret = append(ret, itemset)
	}
	return ret, nil
}

// grow handles one header item of one (conditional) tree: emit the
// candidate `path ∪ {item}` if a rare item anchors it, project the
// item's conditional tree, and recurse into it with the extended
// path.  Recursion below the parallel top level is sequential.
func (m *miner) grow(ctx context.Context, tree *Tree, path ripprim.ItemSet, pathHasRare bool, item ripprim.Item, out map[ripprim.ItemSetKey]ripprim.FrequentItemSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	candidate := path.WithItem(item)
	anchored := m.rare == nil || pathHasRare || m.rare.Has(item)
	if anchored {
		key := candidate.Key()
		if _, seen := out[key]; !seen {
			out[key] = ripprim.FrequentItemSet{
				Items: candidate,
				Count: m.index.Count(candidate),
			}
			m.emitted.Add(1)
		}
	}

	cond := m.conditionalTree(tree, item)
	if cond.IsEmpty() {
		return nil
	}
	condHasRare := pathHasRare || (m.rare != nil && m.rare.Has(item))
	for _, next := range cond.HeaderItems() {
		if err := m.grow(ctx, cond, candidate, condHasRare, next, out); err != nil {
			return err
		}
	}
	return nil
}

// conditionalTree builds the conditional pattern base of an item: for
// every node on the item's header chain, the root-to-parent prefix
// path weighted by that node's count.
func (m *miner) conditionalTree(tree *Tree, item ripprim.Item) *Tree {
	cond := New()
	for ref := tree.headOf(item); ref != nilRef; ref = tree.arena[ref].nextHomonym {
		depth := tree.depthOf(ref)
		if depth == 0 {
			continue
		}
		prefix := m.pathBufs.Get(depth)
		at := depth - 1
		for p := tree.arena[ref].parent; p != nilRef && p != rootRef; p = tree.arena[p].parent {
			prefix[at] = tree.arena[p].item
			at--
		}
		cond.Insert(prefix, tree.arena[ref].count)
		m.pathBufs.Put(prefix)
	}
	return cond
}
