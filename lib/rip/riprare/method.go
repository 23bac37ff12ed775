// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package riprare labels each item of a dataset as "rare" or
// "common"; the miner only grows itemsets that are anchored by a rare
// item.
package riprare

import (
	"fmt"

	"github.com/spf13/pflag"
)

type Method int

const (
	MethodGaussian Method = iota
	MethodPareto
)

// String implements fmt.Stringer.
func (m Method) String() string {
	switch m {
	case MethodGaussian:
		return "gaussian"
	case MethodPareto:
		return "pareto"
	default:
		panic(fmt.Errorf("invalid rarity method: %#v", int(m)))
	}
}

// MethodFlag plumbs a Method through a CLI flag.
type MethodFlag struct {
	Method Method
}

var _ pflag.Value = (*MethodFlag)(nil)

// Type implements pflag.Value.
func (mf *MethodFlag) Type() string { return "mode" }

// Set implements pflag.Value.
func (mf *MethodFlag) Set(str string) error {
	switch str {
	case "gaussian":
		mf.Method = MethodGaussian
	case "pareto":
		mf.Method = MethodPareto
	default:
		return fmt.Errorf("invalid rarity method: %q (must be either 'gaussian' or 'pareto')", str)
	}
	return nil
}

// String implements pflag.Value.
func (mf *MethodFlag) String() string { return mf.Method.String() }
