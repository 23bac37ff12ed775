// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package ripmine

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"git.lukeshu.com/go/lowmemjson"

	"github.com/cpearce/riptree/lib/containers"
	"github.com/cpearce/riptree/lib/rip/ripprim"
	"github.com/cpearce/riptree/lib/rip/riprules"
)

func printRareItems(w io.Writer, rare containers.Set[ripprim.Item], itemizer *ripprim.Itemizer) {
	strs := make([]string, 0, len(rare))
	for item := range rare {
		strs = append(strs, itemizer.StrOf(item))
	}
	riprules.SortRendered(strs)
	fmt.Fprintf(w, "rare items:")
	for _, str := range strs {
		fmt.Fprintf(w, " %s", str)
	}
	fmt.Fprintln(w)
}

// RulesHeader is the literal first line of the rules output file.
const RulesHeader = "Antecedent => Consequent, Confidence, Lift, Support"

func writeRules(path string, rules []riprules.Rule, itemizer *ripprim.Itemizer) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if _err := file.Close(); err == nil && _err != nil {
			err = _err
		}
	}()
	buffer := bufio.NewWriter(file)
	defer func() {
		if _err := buffer.Flush(); err == nil && _err != nil {
			err = _err
		}
	}()

	lines := make([]string, len(rules))
	for i, rule := range rules {
		lines[i] = fmt.Sprintf("%s, %v, %v, %v",
			rule.Render(itemizer), rule.Confidence, rule.Lift, rule.Support)
	}
	// The line order isn't part of the contract; sorting just
	// makes runs diffable.
	sort.Strings(lines)

	if _, err := fmt.Fprintln(buffer, RulesHeader); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(buffer, line); err != nil {
			return err
		}
	}
	return nil
}

type jsonItemset struct {
	Items   []string `json:"items"`
	Count   uint32   `json:"count"`
	Support float64  `json:"support"`
}

func writeItemsets(path string, itemsets []ripprim.FrequentItemSet, itemizer *ripprim.Itemizer, numTransactions uint32) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if _err := file.Close(); err == nil && _err != nil {
			err = _err
		}
	}()
	buffer := bufio.NewWriter(file)
	defer func() {
		if _err := buffer.Flush(); err == nil && _err != nil {
			err = _err
		}
	}()

	out := make([]jsonItemset, len(itemsets))
	for i, itemset := range itemsets {
		strs := make([]string, len(itemset.Items))
		for j, item := range itemset.Items {
			strs[j] = itemizer.StrOf(item)
		}
		riprules.SortRendered(strs)
		out[i] = jsonItemset{
			Items:   strs,
			Count:   itemset.Count,
			Support: float64(itemset.Count) / float64(numTransactions),
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return fmt.Sprint(out[i].Items) < fmt.Sprint(out[j].Items)
	})

	return lowmemjson.Encode(&lowmemjson.ReEncoder{
		Out: buffer,

		Indent:                "\t",
		ForceTrailingNewlines: true,
		CompactIfUnder:        120,
	}, out)
}
