// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package ripstat implements the exact statistics behind the
// family-wise rule filter: a log-factorial table and the one-sided
// Fisher exact test driven off it.
package ripstat

import (
	"fmt"
	"math"
)

// LnFactTable holds ln(k!) for every k in [0, n].  All p-value
// arithmetic happens in log space off this table, so counts up to
// n = 10⁶ stay exact where naive factorials would have overflowed at
// k = 171.
type LnFactTable []float64

func NewLnFactTable(n uint32) LnFactTable {
	tbl := make(LnFactTable, n+1)
	tbl[0] = 0
	for k := uint32(1); k <= n; k++ {
		tbl[k] = tbl[k-1] + math.Log(float64(k))
	}
	return tbl
}

func (tbl LnFactTable) LnFact(k uint32) float64 {
	return tbl[k]
}

// lnChoose is ln(n choose k).
func (tbl LnFactTable) lnChoose(n, k uint32) float64 {
	return tbl[n] - tbl[k] - tbl[n-k]
}

// Pval returns the one-sided (right-tail) Fisher exact test
// probability that a 2×2 contingency table with marginals a and b,
// joint count ab, and total n arose by chance under independence:
// the hypergeometric probability of observing ab or any greater joint
// count.
//
// The tail terms are each computed in log space and only
// exponentiated for the final accumulation, which uses Kahan
// compensation.
func Pval(ab, a, b, n uint32, tbl LnFactTable) (float64, error) {
	switch {
	case uint32(len(tbl)) < n+1:
		return 0, fmt.Errorf("ripstat.Pval: table holds [0,%d] but n=%d", len(tbl)-1, n)
	case a > n || b > n || ab > a || ab > b:
		return 0, fmt.Errorf("ripstat.Pval: inconsistent contingency counts ab=%d a=%d b=%d n=%d", ab, a, b, n)
	}

	lnDenom := tbl.lnChoose(n, b)

	// k transactions contain both sides: C(a,k)·C(n−a,b−k)/C(n,b).
	// b−k ≤ n−a bounds k from below; min(a,b) bounds it from above.
	kMin := ab
	if a+b > n && a+b-n > kMin {
		kMin = a + b - n
	}
	kMax := a
	if b < a {
		kMax = b
	}

	var sum, comp float64
	for k := kMin; k <= kMax; k++ {
		term := math.Exp(tbl.lnChoose(a, k) + tbl.lnChoose(n-a, b-k) - lnDenom)
		y := term - comp
		t := sum + y
		comp = (t - sum) - y
		sum = t
	}
	if math.IsNaN(sum) || math.IsInf(sum, 0) {
		return 0, fmt.Errorf("ripstat.Pval: tail sum is not finite for ab=%d a=%d b=%d n=%d", ab, a, b, n)
	}
	if sum > 1 {
		sum = 1
	}
	return sum, nil
}
