// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package riprules

import (
	"context"

	"github.com/datawire/dlib/dlog"

	"github.com/cpearce/riptree/lib/rip/ripindex"
	"github.com/cpearce/riptree/lib/rip/ripprim"
	"github.com/cpearce/riptree/lib/rip/ripstat"
)

// FamilyWiseAlpha is the family-wise significance level; each family
// of rules sharing a consequent splits it Bonferroni-style.
const FamilyWiseAlpha = 0.05

// FilterFamilyWise keeps only the rules whose antecedent/consequent
// association is statistically significant under family-wise error
// control with Bonferroni correction: a rule survives iff its Fisher
// exact p-value is below FamilyWiseAlpha/k, where k is the number of
// input rules sharing the rule's consequent.
//
// The p-values are computed from raw transaction counts out of the
// index, not from the mined itemset supports.  A rule whose p-value
// cannot be computed is dropped with a warning rather than aborting
// the run.
func FilterFamilyWise(ctx context.Context, rules []Rule, counter ripindex.Counter, tbl ripstat.LnFactTable, itemizer *ripprim.Itemizer) []Rule {
	familySize := make(map[ripprim.ItemSetKey]int)
	for _, rule := range rules {
		familySize[rule.Consequent.Key()]++
	}

	numTransactions := counter.NumTransactions()
	ret := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		ab := counter.Count(rule.Antecedent.Union(rule.Consequent))
		a := counter.Count(rule.Antecedent)
		b := counter.Count(rule.Consequent)
		pv, err := ripstat.Pval(ab, a, b, numTransactions, tbl)
		if err != nil {
			dlog.Warnf(ctx, "skipping rule %q: %v", rule.Render(itemizer), err)
			continue
		}
		if pv < FamilyWiseAlpha/float64(familySize[rule.Consequent.Key()]) {
			ret = append(ret, rule)
		}
	}
	return ret
}
