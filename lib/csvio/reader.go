// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package csvio reads transactional datasets: one transaction per
// line, items comma-separated.
package csvio

import (
	"bufio"
	"io"
	"strings"

	"github.com/cpearce/riptree/lib/containers"
	"github.com/cpearce/riptree/lib/rip/ripprim"
	"github.com/cpearce/riptree/lib/slices"
	"github.com/cpearce/riptree/lib/textui"
)

// TransactionReader yields one canonical ItemSet per non-blank input
// line.  Whitespace around items is trimmed, and duplicate items on a
// line collapse to a single member.
type TransactionReader struct {
	scanner  *bufio.Scanner
	itemizer *ripprim.Itemizer
}

func NewTransactionReader(r io.Reader, itemizer *ripprim.Itemizer) *TransactionReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, textui.Tunable(64*1024*1024)) // max line length
	return &TransactionReader{
		scanner:  scanner,
		itemizer: itemizer,
	}
}

// Next returns the next transaction, or ok=false at end of input (or
// on error; check .Err()).
func (tr *TransactionReader) Next() (txn ripprim.ItemSet, ok bool) {
	for tr.scanner.Scan() {
		seen := make(containers.Set[ripprim.Item])
		for _, field := range strings.Split(tr.scanner.Text(), ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			seen.Insert(tr.itemizer.IdOf(field))
		}
		if len(seen) == 0 {
			continue
		}
		txn = make(ripprim.ItemSet, 0, len(seen))
		for item := range seen {
			txn = append(txn, item)
		}
		slices.Sort(txn)
		return txn, true
	}
	return nil, false
}

func (tr *TransactionReader) Err() error {
	return tr.scanner.Err()
}
