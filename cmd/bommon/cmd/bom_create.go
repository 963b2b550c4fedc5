package cmd

import (
	"context"

	"github.com/oneconcern/bommon/pkg/tree"
	"github.com/spf13/cobra"
)

var bomCreate = &cobra.Command{
	Use:   "create",
	Short: "Create a BOM",
	Example: `% bommon bom create --project i10 --variant ar_lib --bom dev \
    --include i10/ar_lib/rtl/dev,i10/ar_lib/ipspec/dev/REL1,i10/io_lib/dev`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, logger, err := paramsToBOMStore(ctx, bommonFlags)
		if err != nil {
			wrapFatalln("create stores", err)
			return
		}
		t := tree.New(store, treeOptions(bommonFlags, logger)...)
		root, err := t.NewComposite(bommonFlags.location.project, bommonFlags.location.variant, bommonFlags.bom.name, bommonFlags.description)
		if err != nil {
			wrapFatalln("create BOM", err)
			return
		}
		for _, fullName := range bommonFlags.bom.include {
			child, err := t.LoadFullName(ctx, fullName)
			if err != nil {
				wrapFatalln("load "+fullName, err)
				return
			}
			if err = t.AddChild(root, child); err != nil {
				wrapFatalln("add "+fullName, err)
				return
			}
		}
		if err = saveBOM(ctx, t, root, false); err != nil {
			wrapFatalln("save BOM", err)
			return
		}
	},
}

var bomAdd = &cobra.Command{
	Use:     "add <full name>...",
	Short:   "Add libraries, releases or BOMs to a BOM",
	Example: `% bommon bom add --project i10 --variant ar_lib --bom dev i10/ar_lib/oa/dev i10/io_lib/REL2`,
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		t, root, _, err := loadBOM(ctx, bommonFlags)
		if err != nil {
			wrapFatalln("load BOM", err)
			return
		}
		for _, fullName := range args {
			child, err := t.LoadFullName(ctx, fullName)
			if err != nil {
				wrapFatalln("load "+fullName, err)
				return
			}
			if err = t.AddChild(root, child); err != nil {
				wrapFatalln("add "+fullName, err)
				return
			}
		}
		if err = saveBOM(ctx, t, root, true); err != nil {
			wrapFatalln("save BOM", err)
			return
		}
	},
}

var bomRemove = &cobra.Command{
	Use:     "remove <full name>...",
	Short:   "Remove libraries, releases or BOMs from a BOM",
	Example: `% bommon bom remove --project i10 --variant ar_lib --bom dev i10/ar_lib/oa/dev`,
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		t, root, _, err := loadBOM(ctx, bommonFlags)
		if err != nil {
			wrapFatalln("load BOM", err)
			return
		}
		for _, fullName := range args {
			child, err := tree.KeyFromFullName(fullName)
			if err != nil {
				wrapFatalln("invalid name "+fullName, err)
				return
			}
			if !t.RemoveChild(root, child) {
				infoLogger.Printf("warning: %s is not in %s", fullName, root)
			}
		}
		if err = saveBOM(ctx, t, root, true); err != nil {
			wrapFatalln("save BOM", err)
			return
		}
	},
}

func init() {
	addLocationFlags(bomCreate)
	addDescriptionFlag(bomCreate)
	addIncludeFlag(bomCreate)
	bomCmd.AddCommand(bomCreate)

	addLocationFlags(bomAdd)
	bomCmd.AddCommand(bomAdd)

	addLocationFlags(bomRemove)
	bomCmd.AddCommand(bomRemove)
}
