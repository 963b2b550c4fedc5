package cmd

import (
	"context"
	"fmt"

	"github.com/oneconcern/bommon/pkg/diff"
	"github.com/spf13/cobra"
)

var bomSearch = &cobra.Command{
	Use:   "search",
	Short: "Find BOMs, libraries or releases in a BOM tree",
	Long: `Finds the BOMs of a tree matching project and variant regular expressions.
With --libtype-filter, libraries and releases are searched instead.`,
	Example: `% bommon bom search --project i10 --variant ar_lib --bom dev --variant-filter '_lib$' --libtype-filter 'rtl|oa'
i10/ar_lib/rtl/dev
i10/io_lib/oa/dev/REL2`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		t, root, _, err := loadBOM(ctx, bommonFlags)
		if err != nil {
			wrapFatalln("load BOM", err)
			return
		}
		var libtype *string
		if cmd.Flags().Changed("libtype-filter") {
			libtype = &bommonFlags.bom.libtypeFilter
		}
		found, err := t.Search(root, bommonFlags.bom.projectFilter, bommonFlags.bom.variantFilter, libtype)
		if err != nil {
			wrapFatalln("search", err)
			return
		}
		for _, k := range found {
			fmt.Fprintln(cmd.OutOrStdout(), k.FullName())
		}
	},
}

var bomDot = &cobra.Command{
	Use:     "dot",
	Short:   "Print the graph of the BOMs of a tree, in the dot language",
	Example: `% bommon bom dot --project i10 --variant ar_lib --bom dev | dot -Tpng -o dev.png`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		t, root, _, err := loadBOM(ctx, bommonFlags)
		if err != nil {
			wrapFatalln("load BOM", err)
			return
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "digraph bom {")
		for _, line := range t.Dot(root) {
			fmt.Fprintln(out, "  "+line)
		}
		fmt.Fprintln(out, "}")
	},
}

var bomDump = &cobra.Command{
	Use:   "dump",
	Short: "Print the libraries and releases of a BOM tree by location",
	Long: `Prints a line per location (project/variant/libtype), followed by the library and release found there.
Two dumps may be compared with a textual diff tool.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		t, root, _, err := loadBOM(ctx, bommonFlags)
		if err != nil {
			wrapFatalln("load BOM", err)
			return
		}
		d := diff.Decompose(t, root, nil, nil)
		if err = diff.WriteDump(cmd.OutOrStdout(), d, bommonFlags.bom.sortByLibtype); err != nil {
			wrapFatalln("dump BOM", err)
			return
		}
	},
}

var bomList = &cobra.Command{
	Use:   "list",
	Short: "List the BOMs of a variant",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, _, err := paramsToBOMStore(ctx, bommonFlags)
		if err != nil {
			wrapFatalln("create stores", err)
			return
		}
		configs, err := store.ListConfigs(ctx, bommonFlags.location.project, bommonFlags.location.variant)
		if err != nil {
			wrapFatalln("list BOMs", err)
			return
		}
		for _, config := range configs {
			fmt.Fprintln(cmd.OutOrStdout(), config)
		}
	},
}

func init() {
	addLocationFlags(bomSearch)
	addProjectFilterFlag(bomSearch)
	addVariantFilterFlag(bomSearch)
	addLibtypeFilterFlag(bomSearch)
	bomCmd.AddCommand(bomSearch)

	addLocationFlags(bomDot)
	bomCmd.AddCommand(bomDot)

	addLocationFlags(bomDump)
	addDumpSortByLibtypeFlag(bomDump)
	bomCmd.AddCommand(bomDump)

	requireFlags(bomList, addProjectFlag(bomList), addVariantFlag(bomList))
	bomCmd.AddCommand(bomList)
}
