package cmd

import (
	"context"

	"github.com/oneconcern/bommon/pkg/diff"
	"github.com/oneconcern/bommon/pkg/tree"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare two BOM trees",
	Long: `Compares the libraries and releases found at the same locations in two BOM trees.

Lines start with:
  ! when the library or release differs
  - when it is only in the first BOM
  + when it is only in the second BOM

When the BOMs are in different projects or variants, libraries and releases of the top-level variants are
paired by libtype only.`,
	Example: `% bommon diff --project i10 --variant ar_lib --bom REL1 --second-bom REL2 --include-files
# Project/IP           BOM 1          BOM 2
# i10/ar_lib           REL1           REL2
# Project/IP/Deliverable Lib/Rel/BOM Lib/Rel/BOM
! i10/ar_lib/rtl       dev/REL1/REL1  dev/REL2/REL2
! i10/ar_lib/rtl:rtl/top.v
! Library              dev            dev
! Version              4              5`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, logger, err := paramsToBOMStore(ctx, bommonFlags)
		if err != nil {
			wrapFatalln("create stores", err)
			return
		}

		secondProject, secondVariant := bommonFlags.diff.secondProject, bommonFlags.diff.secondVariant
		if secondProject == "" {
			secondProject = bommonFlags.location.project
		}
		if secondVariant == "" {
			secondVariant = bommonFlags.location.variant
		}
		first, firstRoot, err := tree.Load(ctx, store,
			bommonFlags.location.project, bommonFlags.location.variant, bommonFlags.bom.name,
			treeOptions(bommonFlags, logger)...)
		if err != nil {
			wrapFatalln("load first BOM", err)
			return
		}
		second, secondRoot, err := tree.Load(ctx, store,
			secondProject, secondVariant, bommonFlags.diff.secondBOM,
			treeOptions(bommonFlags, logger)...)
		if err != nil {
			wrapFatalln("load second BOM", err)
			return
		}

		opts, err := diffOptions(bommonFlags, store, logger)
		if err != nil {
			wrapFatalln("prepare comparison", err)
			return
		}
		comparison, err := diff.New(first, firstRoot, second, secondRoot, opts...)
		if err != nil {
			wrapFatalln("prepare comparison", err)
			return
		}
		report, err := comparison.Run(ctx)
		if err != nil {
			wrapFatalln("compare BOMs", err)
			return
		}

		if bommonFlags.diff.json {
			out, err := report.Summary().JSON()
			if err != nil {
				wrapFatalln("render summary", err)
				return
			}
			_, _ = cmd.OutOrStdout().Write(append(out, '\n'))
			return
		}
		err = report.Write(cmd.OutOrStdout(),
			diff.SortByLibtype(bommonFlags.diff.sortByLibtype),
			diff.Color(bommonFlags.diff.color),
		)
		if err != nil {
			wrapFatalln("render report", err)
			return
		}
	},
}

func init() {
	addLocationFlags(diffCmd)
	requireFlags(diffCmd, addSecondBOMFlag(diffCmd))
	addSecondProjectFlag(diffCmd)
	addSecondVariantFlag(diffCmd)
	addIgnoreConfigNamesFlag(diffCmd)
	addIncludeFilesFlag(diffCmd)
	addDiffSortByLibtypeFlag(diffCmd)
	addDiffJSONFlag(diffCmd)
	addColorFlag(diffCmd)
	addVariantsFlag(diffCmd)
	addDiffLibtypesFlag(diffCmd)
	rootCmd.AddCommand(diffCmd)
}
