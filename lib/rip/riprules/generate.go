// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package riprules

import (
	"context"
	"runtime"
	"sync"

	"github.com/datawire/dlib/dgroup"

	"github.com/cpearce/riptree/lib/containers"
	"github.com/cpearce/riptree/lib/rip/ripindex"
	"github.com/cpearce/riptree/lib/rip/ripprim"
	"github.com/cpearce/riptree/lib/slices"
	"github.com/cpearce/riptree/lib/textui"
)

// Generate derives the candidate rules of every frequent itemset with
// ≥2 members and keeps the ones clearing the confidence and lift
// thresholds.  The result is deduplicated on rule identity.
//
// When rare is non-nil (the normal mining path), only rules whose
// consequent is a single rare item split out of the itemset are
// generated.  When rare is nil the full generator runs: singleton
// consequents split out of every member, then level-wise merging of
// parent-rule pairs until no new rule passes.
//
// Candidate generation fans out across itemsets; deduplication
// happens at the reduction.
func Generate(ctx context.Context, itemsets []ripprim.FrequentItemSet, counter ripindex.Counter, minConfidence, minLift float64, rare containers.Set[ripprim.Item]) ([]Rule, error) {
	supp := NewSupportLookup(itemsets, counter)

	results := make(map[ruleKey]Rule)
	var resultsMu sync.Mutex

	queue := make(chan ripprim.FrequentItemSet)
	grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{})
	grp.Go("enqueue", func(ctx context.Context) error {
		defer close(queue)
		for _, itemset := range itemsets {
			if len(itemset.Items) < 2 {
				continue
			}
			select {
			case queue <- itemset:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	numWorkers := slices.Min(runtime.GOMAXPROCS(0), slices.Max(len(itemsets), 1))
	for worker := 0; worker < numWorkers; worker++ {
		grp.Go(textui.Sprintf("rules-%d", worker), func(ctx context.Context) error {
			local := make(map[ruleKey]Rule)
			for itemset := range queue {
				if err := ctx.Err(); err != nil {
					return err
				}
				if rare != nil {
					rareConsequentRules(itemset.Items, supp, minConfidence, minLift, rare, local)
				} else {
					allRules(itemset.Items, supp, minConfidence, minLift, local)
				}
			}
			resultsMu.Lock()
			for key, rule := range local {
				results[key] = rule
			}
			resultsMu.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	ret := make([]Rule, 0, len(results))
	for _, rule := range results {
		ret = append(ret, rule)
	}
	return ret, nil
}

// rareConsequentRules emits `(itemset \ {r}) ==> {r}` for each rare
// member r.
func rareConsequentRules(items ripprim.ItemSet, supp SupportLookup, minConfidence, minLift float64, rare containers.Set[ripprim.Item], out map[ruleKey]Rule) {
	for _, item := range items {
		if !rare.Has(item) {
			continue
		}
		antecedent, consequent := items.SplitOutItem(item)
		if rule, ok := makeRule(antecedent, consequent, supp, minConfidence, minLift); ok {
			out[rule.key()] = rule
		}
	}
}

// allRules is the unrestricted generator the rare-consequent form is
// derived from: first-level candidates split out every member as a
// singleton consequent, and each following level merges pairs of the
// previous level's rules (antecedent intersection, consequent union)
// until a level yields nothing new.
func allRules(items ripprim.ItemSet, supp SupportLookup, minConfidence, minLift float64, out map[ruleKey]Rule) {
	var candidates []Rule
	for _, item := range items {
		antecedent, consequent := items.SplitOutItem(item)
		if rule, ok := makeRule(antecedent, consequent, supp, minConfidence, minLift); ok {
			candidates = append(candidates, rule)
			out[rule.key()] = rule
		}
	}

	for len(candidates) > 0 {
		var next []Rule
		for i := 0; i < len(candidates); i++ {
			for j := i + 1; j < len(candidates); j++ {
				rule, ok := mergeRules(candidates[i], candidates[j], supp, minConfidence, minLift)
				if !ok {
					continue
				}
				if _, seen := out[rule.key()]; seen {
					continue
				}
				out[rule.key()] = rule
				next = append(next, rule)
			}
		}
		candidates = next
	}
}
