package cmd

import (
	"context"

	"github.com/oneconcern/bommon/pkg/tree"
	"github.com/spf13/cobra"
)

var bomProperty = &cobra.Command{
	Use:   "property",
	Short: "Commands to manage the properties of a BOM",
}

func updateProperty(update func(*tree.Tree, tree.Key) error) {
	ctx := context.Background()
	t, root, _, err := loadBOM(ctx, bommonFlags)
	if err != nil {
		wrapFatalln("load BOM", err)
		return
	}
	if err = update(t, root); err != nil {
		wrapFatalln("update property", err)
		return
	}
	if err = saveBOM(ctx, t, root, true); err != nil {
		wrapFatalln("save BOM", err)
		return
	}
}

var bomPropertySet = &cobra.Command{
	Use:     "set",
	Short:   "Set a property of a BOM",
	Example: `% bommon bom property set --project i10 --variant ar_lib --bom dev --property owner --value jdoe`,
	Run: func(cmd *cobra.Command, args []string) {
		updateProperty(func(t *tree.Tree, root tree.Key) error {
			return t.SetProperty(root, bommonFlags.bom.property, bommonFlags.bom.value)
		})
	},
}

var bomPropertyUnset = &cobra.Command{
	Use:     "unset",
	Short:   "Remove a property from a BOM",
	Example: `% bommon bom property unset --project i10 --variant ar_lib --bom dev --property owner`,
	Run: func(cmd *cobra.Command, args []string) {
		updateProperty(func(t *tree.Tree, root tree.Key) error {
			return t.RemoveProperty(root, bommonFlags.bom.property)
		})
	},
}

func init() {
	addLocationFlags(bomPropertySet)
	requireFlags(bomPropertySet, addPropertyFlag(bomPropertySet))
	addValueFlag(bomPropertySet)
	bomProperty.AddCommand(bomPropertySet)

	addLocationFlags(bomPropertyUnset)
	requireFlags(bomPropertyUnset, addPropertyFlag(bomPropertyUnset))
	bomProperty.AddCommand(bomPropertyUnset)

	bomCmd.AddCommand(bomProperty)
}
