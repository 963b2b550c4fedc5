package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Commands to manage libraries",
	Long: `A library is a line of development of a libtype in a variant.
Files are added to the head of a library. Releases freeze the head of a library.`,
}

var libraryCreate = &cobra.Command{
	Use:   "create",
	Short: "Create a library",
	Long:  `Creates a library, optionally branched from the files of another library or release.`,
	Example: `% bommon library create --project i10 --variant ar_lib --libtype rtl --library dev
% bommon library create --project i10 --variant ar_lib --libtype rtl --library feature --from-library dev --from-release REL1`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, _, err := paramsToBOMStore(ctx, bommonFlags)
		if err != nil {
			wrapFatalln("create stores", err)
			return
		}
		err = store.CreateLibrary(ctx,
			bommonFlags.location.project, bommonFlags.location.variant, bommonFlags.location.libtype,
			bommonFlags.simple.library, bommonFlags.description,
			bommonFlags.simple.srcLibrary, bommonFlags.simple.srcRelease)
		if err != nil {
			wrapFatalln("create library", err)
			return
		}
	},
}

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Commands to manage releases",
}

var releaseCreate = &cobra.Command{
	Use:     "create",
	Short:   "Freeze the head of a library into a release",
	Example: `% bommon release create --project i10 --variant ar_lib --libtype rtl --library dev --release REL1`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, _, err := paramsToBOMStore(ctx, bommonFlags)
		if err != nil {
			wrapFatalln("create stores", err)
			return
		}
		err = store.CreateRelease(ctx,
			bommonFlags.location.project, bommonFlags.location.variant, bommonFlags.location.libtype,
			bommonFlags.simple.library, bommonFlags.simple.release, bommonFlags.description,
			bommonFlags.simple.srcRelease)
		if err != nil {
			wrapFatalln("create release", err)
			return
		}
	},
}

func init() {
	requireFlags(libraryCreate,
		addProjectFlag(libraryCreate),
		addVariantFlag(libraryCreate),
		addLibtypeFlag(libraryCreate),
		addLibraryFlag(libraryCreate),
	)
	addDescriptionFlag(libraryCreate)
	addFromLibraryFlag(libraryCreate)
	addFromReleaseFlag(libraryCreate)
	libraryCmd.AddCommand(libraryCreate)
	rootCmd.AddCommand(libraryCmd)

	requireFlags(releaseCreate,
		addProjectFlag(releaseCreate),
		addVariantFlag(releaseCreate),
		addLibtypeFlag(releaseCreate),
		addLibraryFlag(releaseCreate),
		addReleaseFlag(releaseCreate),
	)
	addDescriptionFlag(releaseCreate)
	addFromReleaseFlag(releaseCreate)
	releaseCmd.AddCommand(releaseCreate)
	rootCmd.AddCommand(releaseCmd)
}
