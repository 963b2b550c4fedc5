package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Commands to manage projects",
	Long:  `A project groups variants (IPs). Each variant enables some libtypes (deliverables).`,
}

var projectCreate = &cobra.Command{
	Use:     "create",
	Short:   "Create a project",
	Example: `% bommon project create --project i10 --description "a test chip"`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, _, err := paramsToBOMStore(ctx, bommonFlags)
		if err != nil {
			wrapFatalln("create stores", err)
			return
		}
		if err = store.CreateProject(ctx, bommonFlags.location.project, bommonFlags.description); err != nil {
			wrapFatalln("create project", err)
			return
		}
	},
}

var variantCmd = &cobra.Command{
	Use:   "variant",
	Short: "Commands to manage variants",
}

var variantCreate = &cobra.Command{
	Use:     "create",
	Short:   "Create a variant in a project",
	Example: `% bommon variant create --project i10 --variant ar_lib --libtypes rtl,ipspec,oa`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, _, err := paramsToBOMStore(ctx, bommonFlags)
		if err != nil {
			wrapFatalln("create stores", err)
			return
		}
		err = store.CreateVariant(ctx, bommonFlags.location.project, bommonFlags.location.variant,
			bommonFlags.description, bommonFlags.variant.libtypes...)
		if err != nil {
			wrapFatalln("create variant", err)
			return
		}
	},
}

func init() {
	requireFlags(projectCreate, addProjectFlag(projectCreate))
	addDescriptionFlag(projectCreate)
	projectCmd.AddCommand(projectCreate)
	rootCmd.AddCommand(projectCmd)

	requireFlags(variantCreate,
		addProjectFlag(variantCreate),
		addVariantFlag(variantCreate),
	)
	addLibtypesFlag(variantCreate)
	addDescriptionFlag(variantCreate)
	variantCmd.AddCommand(variantCreate)
	rootCmd.AddCommand(variantCmd)
}
