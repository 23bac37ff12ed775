// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package riprules derives association rules from mined frequent
// itemsets and filters them down to the significant ones.
package riprules

import (
	"github.com/cpearce/riptree/lib/rip/ripindex"
	"github.com/cpearce/riptree/lib/rip/ripprim"
)

// Rule is an association `Antecedent ==> Consequent`.  Two Rules are
// the same rule exactly when both sides match; the confidence, lift,
// and support are attributes of the rule, not part of its identity.
type Rule struct {
	Antecedent ripprim.ItemSet
	Consequent ripprim.ItemSet

	Confidence float64
	Lift       float64
	Support    float64
}

type ruleKey struct {
	antecedent ripprim.ItemSetKey
	consequent ripprim.ItemSetKey
}

func (r Rule) key() ruleKey {
	return ruleKey{
		antecedent: r.Antecedent.Key(),
		consequent: r.Consequent.Key(),
	}
}

// SupportLookup resolves an itemset to its support in the dataset.
// The mined frequent itemsets answer most lookups out of a hash map;
// anything not among them (a rare-anchored mining run doesn't emit a
// rule antecedent that has no rare item of its own) falls back to a
// raw superset count against the index.
type SupportLookup struct {
	known   map[ripprim.ItemSetKey]float64
	counter ripindex.Counter
}

func NewSupportLookup(itemsets []ripprim.FrequentItemSet, counter ripindex.Counter) SupportLookup {
	known := make(map[ripprim.ItemSetKey]float64, len(itemsets))
	numTransactions := float64(counter.NumTransactions())
	for _, itemset := range itemsets {
		known[itemset.Items.Key()] = float64(itemset.Count) / numTransactions
	}
	return SupportLookup{
		known:   known,
		counter: counter,
	}
}

// Get returns an itemset's support, or ok=false for an itemset that
// no transaction contains.
func (l SupportLookup) Get(s ripprim.ItemSet) (float64, bool) {
	if sup, ok := l.known[s.Key()]; ok {
		return sup, true
	}
	count := l.counter.Count(s)
	if count == 0 {
		return 0, false
	}
	return float64(count) / float64(l.counter.NumTransactions()), true
}

// makeRule builds `antecedent ==> consequent` if every involved
// itemset has known support and the rule clears the confidence and
// lift thresholds.
func makeRule(antecedent, consequent ripprim.ItemSet, supp SupportLookup, minConfidence, minLift float64) (Rule, bool) {
	if len(antecedent) == 0 || len(consequent) == 0 {
		return Rule{}, false
	}
	acSup, ok := supp.Get(antecedent.Union(consequent))
	if !ok {
		return Rule{}, false
	}
	aSup, ok := supp.Get(antecedent)
	if !ok {
		return Rule{}, false
	}
	confidence := acSup / aSup
	if confidence < minConfidence {
		return Rule{}, false
	}
	cSup, ok := supp.Get(consequent)
	if !ok {
		return Rule{}, false
	}
	lift := acSup / (aSup * cSup)
	if lift < minLift {
		return Rule{}, false
	}
	return Rule{
		Antecedent: antecedent,
		Consequent: consequent,
		Confidence: confidence,
		Lift:       lift,
		Support:    acSup,
	}, true
}

// mergeRules combines two parent rules into the candidate whose
// antecedent is the intersection of the parents' antecedents and
// whose consequent is the union of their consequents.
func mergeRules(a, b Rule, supp SupportLookup, minConfidence, minLift float64) (Rule, bool) {
	return makeRule(
		a.Antecedent.Intersection(b.Antecedent),
		a.Consequent.Union(b.Consequent),
		supp, minConfidence, minLift)
}
