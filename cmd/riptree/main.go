// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Command riptree mines association rules whose consequent is a rare
// item from a transactional CSV dataset.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"
	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/cpearce/riptree/lib/profile"
	"github.com/cpearce/riptree/lib/rip/riprare"
	"github.com/cpearce/riptree/lib/ripmine"
	"github.com/cpearce/riptree/lib/textui"
)

func main() {
	logLevelFlag := textui.LogLevelFlag{
		Level: dlog.LogLevelInfo,
	}
	var methodFlag riprare.MethodFlag
	var cfg ripmine.Config

	argparser := &cobra.Command{
		Use:   "riptree [flags]",
		Short: "Mine rare-consequent association rules from a transactional dataset",
		Long: "" +
			"riptree reads a CSV dataset (one transaction per line, items\n" +
			"comma-separated), labels low-frequency items as rare, and mines\n" +
			"`antecedent ==> consequent` rules whose consequent is a rare item,\n" +
			"tagged with confidence, lift, and support.",

		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),

		SilenceErrors: true, // main() will handle this after .ExecuteContext() returns
		SilenceUsage:  true, // our FlagErrorFunc will handle it

		CompletionOptions: cobra.CompletionOptions{ //nolint:exhaustivestruct
			DisableDefaultCmd: true,
		},
	}
	argparser.SetFlagErrorFunc(cliutil.FlagErrorFunc)
	argparser.SetHelpTemplate(cliutil.HelpTemplate)

	argparser.Flags().Var(&logLevelFlag, "verbosity", "set the verbosity")
	argparser.Flags().StringVar(&cfg.InputPath, "input", "", "input dataset in CSV format, at `file_path`")
	if err := argparser.MarkFlagFilename("input"); err != nil {
		panic(err)
	}
	if err := argparser.MarkFlagRequired("input"); err != nil {
		panic(err)
	}
	argparser.Flags().StringVar(&cfg.OutputPath, "output", "", "`file_path` in which to store output rules")
	if err := argparser.MarkFlagFilename("output"); err != nil {
		panic(err)
	}
	if err := argparser.MarkFlagRequired("output"); err != nil {
		panic(err)
	}
	argparser.Flags().Var(&methodFlag, "max-support", "method used to decide which items are rare; either 'gaussian' or 'pareto'")
	if err := argparser.MarkFlagRequired("max-support"); err != nil {
		panic(err)
	}
	argparser.Flags().Float64Var(&cfg.MinConfidence, "min-confidence", 0, "minimum rule confidence threshold, in range [0,1]")
	if err := argparser.MarkFlagRequired("min-confidence"); err != nil {
		panic(err)
	}
	argparser.Flags().Float64Var(&cfg.MinLift, "min-lift", 1.0, "minimum rule lift threshold, in range [1,∞)")
	argparser.Flags().BoolVar(&cfg.DisableFamilyWise, "disable-family-wise-rule-filtering", false,
		"keep rules that fail the family-wise (Bonferroni-corrected) significance filter")
	argparser.Flags().BoolVar(&cfg.LogRareItems, "log-rare-items", false, "print the rare-item set to stdout")
	argparser.Flags().StringVar(&cfg.ItemsetsPath, "output-itemsets", "", "also write the frequent itemsets as JSON to `file_path`")
	if err := argparser.MarkFlagFilename("output-itemsets"); err != nil {
		panic(err)
	}
	argparser.Flags().Int64Var(&cfg.Seed, "seed", 1,
		"base PRNG seed for the gaussian method; a fixed seed labels deterministically for a fixed worker count")

	stopProfiling := profile.AddProfileFlags(argparser.Flags(), "profile.")

	argparser.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg.Method = methodFlag.Method
		if cfg.MinConfidence < 0 || cfg.MinConfidence > 1 {
			return cliutil.FlagErrorFunc(cmd, fmt.Errorf("--min-confidence must be in range [0,1], got %v", cfg.MinConfidence))
		}
		if cfg.MinLift < 1 {
			return cliutil.FlagErrorFunc(cmd, fmt.Errorf("--min-lift must be in range [1,∞), got %v", cfg.MinLift))
		}

		ctx := dlog.WithLogger(cmd.Context(), textui.NewLogger(os.Stderr, logLevelFlag.Level))
		dlog.Tracef(ctx, "config:\n%s", spew.Sdump(cfg))

		grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{
			EnableSignalHandling: true,
		})
		grp.Go("mine", func(ctx context.Context) error {
			return ripmine.Mine(ctx, cfg)
		})
		return grp.Wait()
	}

	err := argparser.ExecuteContext(context.Background())
	if _err := stopProfiling(); err == nil {
		err = _err
	}
	if err != nil {
		textui.Fprintf(os.Stderr, "%v: error: %v\n", argparser.CommandPath(), err)
		os.Exit(1)
	}
}
