package cmd

import (
	"context"
	"fmt"

	"github.com/oneconcern/bommon/pkg/tree"
	"github.com/spf13/cobra"
)

var bomClone = &cobra.Command{
	Use:   "clone",
	Short: "Copy a BOM under a new name",
	Long: `Creates a new BOM holding the same libraries, releases and BOMs as an existing one.
Nothing below the BOM is cloned: see clone-tree.`,
	Example: `% bommon bom clone --project i10 --variant ar_lib --bom REL1 --name dev2`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		t, root, _, err := loadBOM(ctx, bommonFlags)
		if err != nil {
			wrapFatalln("load BOM", err)
			return
		}
		clone, err := t.Clone(ctx, root, bommonFlags.bom.target, false)
		if err != nil {
			wrapFatalln("clone BOM", err)
			return
		}
		if err = saveBOM(ctx, t, clone, true); err != nil {
			wrapFatalln("save clone", err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), clone.FullName())
	},
}

var bomCloneTree = &cobra.Command{
	Use:   "clone-tree",
	Short: "Copy a BOM and the mutable BOMs below it under a new name",
	Long: `Clones a BOM and every mutable BOM below it. The clones replace the originals throughout the new tree.

Libraries and releases are kept, unless --clone-simple is set: they are then branched into new libraries.
Immutable BOMs and releases are kept, unless --clone-immutable is set.
Every target name is checked before anything is cloned.`,
	Example: `% bommon bom clone-tree --project i10 --variant ar_lib --bom dev --name feature --clone-simple`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		t, root, _, err := loadBOM(ctx, bommonFlags)
		if err != nil {
			wrapFatalln("load BOM", err)
			return
		}
		clone, err := t.CloneTree(ctx, root, bommonFlags.bom.target,
			tree.CloneSimple(bommonFlags.bom.cloneSimple),
			tree.CloneImmutable(bommonFlags.bom.cloneImmutable),
			tree.ReuseExisting(bommonFlags.bom.reuseExisting),
		)
		if err != nil {
			wrapFatalln("clone BOM tree", err)
			return
		}
		if err = saveBOM(ctx, t, clone, false); err != nil {
			wrapFatalln("save clone", err)
			return
		}
		fmt.Fprint(cmd.OutOrStdout(), t.Report(clone))
	},
}

func init() {
	addLocationFlags(bomClone)
	requireFlags(bomClone, addTargetNameFlag(bomClone))
	bomCmd.AddCommand(bomClone)

	addLocationFlags(bomCloneTree)
	requireFlags(bomCloneTree, addTargetNameFlag(bomCloneTree))
	addCloneSimpleFlag(bomCloneTree)
	addCloneImmutableFlag(bomCloneTree)
	addReuseExistingFlag(bomCloneTree)
	bomCmd.AddCommand(bomCloneTree)
}
