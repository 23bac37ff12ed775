// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package csvio_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpearce/riptree/lib/csvio"
	"github.com/cpearce/riptree/lib/rip/ripprim"
)

func readAll(t *testing.T, input string) ([]ripprim.ItemSet, *ripprim.Itemizer) {
	t.Helper()
	itemizer := ripprim.NewItemizer()
	reader := csvio.NewTransactionReader(strings.NewReader(input), itemizer)
	var txns []ripprim.ItemSet
	for txn, ok := reader.Next(); ok; txn, ok = reader.Next() {
		txns = append(txns, txn)
	}
	require.NoError(t, reader.Err())
	return txns, itemizer
}

func TestTransactionReader(t *testing.T) {
	t.Parallel()
	txns, itemizer := readAll(t, "a,b,c\nc,a\n")
	require.Len(t, txns, 2)
	assert.Equal(t, ripprim.ItemSet{1, 2, 3}, txns[0])
	assert.Equal(t, ripprim.ItemSet{1, 3}, txns[1])
	assert.Equal(t, "a", itemizer.StrOf(1))
	assert.Equal(t, "c", itemizer.StrOf(3))
}

func TestTransactionReaderTrimsAndCollapses(t *testing.T) {
	t.Parallel()
	txns, itemizer := readAll(t, "  a , b ,a\nb , , b\n")
	require.Len(t, txns, 2)
	assert.Equal(t, ripprim.NewItemSet(itemizer.IdOf("a"), itemizer.IdOf("b")), txns[0])
	assert.Equal(t, ripprim.ItemSet{itemizer.IdOf("b")}, txns[1])
}

func TestTransactionReaderSkipsBlankLines(t *testing.T) {
	t.Parallel()
	txns, _ := readAll(t, "\n\na,b\n   \n\nc\n\n")
	require.Len(t, txns, 2)

	txns, _ = readAll(t, "")
	assert.Empty(t, txns)
}
