package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
)

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Commands to manage the files of libraries",
	Long: `Files are versioned in the head of a library. A file version is designated by its path:
project/variant/libtype/library/filename#version`,
}

var fileAdd = &cobra.Command{
	Use:     "add",
	Short:   "Add a new version of a file to a library",
	Example: `% bommon file add --project i10 --variant ar_lib --libtype rtl --library dev --path ./rtl/top.v --name rtl/top.v`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, _, err := paramsToBOMStore(ctx, bommonFlags)
		if err != nil {
			wrapFatalln("create stores", err)
			return
		}
		name := bommonFlags.file.name
		if name == "" {
			name = filepath.Base(bommonFlags.file.path)
		}
		f, err := os.Open(bommonFlags.file.path)
		if err != nil {
			wrapFatalln("open file", err)
			return
		}
		defer func() {
			_ = f.Close()
		}()
		file, err := store.AddFile(ctx,
			bommonFlags.location.project, bommonFlags.location.variant, bommonFlags.location.libtype,
			bommonFlags.simple.library, name, f)
		if err != nil {
			wrapFatalln("add file", err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), file.Path())
	},
}

var fileList = &cobra.Command{
	Use:   "list",
	Short: "List the files of a library or release",
	Example: `% bommon file list --project i10 --variant ar_lib --libtype rtl --library dev --release REL1
i10/ar_lib/rtl/dev/rtl/top.v#4 , 1.2kB , text`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, _, err := paramsToBOMStore(ctx, bommonFlags)
		if err != nil {
			wrapFatalln("create stores", err)
			return
		}
		files, err := store.ListFiles(ctx,
			bommonFlags.location.project, bommonFlags.location.variant, bommonFlags.location.libtype,
			bommonFlags.simple.library, bommonFlags.simple.release)
		if err != nil {
			wrapFatalln("list files", err)
			return
		}
		names := make([]string, 0, len(files))
		for name := range files {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			f := files[name]
			fmt.Fprintf(cmd.OutOrStdout(), "%s , %s , %s\n", f.Path(), units.HumanSize(float64(f.Size)), f.Type)
		}
	},
}

var fileDiff = &cobra.Command{
	Use:     "diff <file#version> <file#version>",
	Short:   "Show the differences between two file versions",
	Example: `% bommon file diff i10/ar_lib/rtl/dev/rtl/top.v#4 i10/ar_lib/rtl/dev/rtl/top.v#5`,
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, _, err := paramsToBOMStore(ctx, bommonFlags)
		if err != nil {
			wrapFatalln("create stores", err)
			return
		}
		d, err := store.FileDiff(ctx, args[0], args[1])
		if err != nil {
			wrapFatalln("compare files", err)
			return
		}
		fmt.Fprint(cmd.OutOrStdout(), d)
	},
}

func init() {
	requireFlags(fileAdd,
		addProjectFlag(fileAdd),
		addVariantFlag(fileAdd),
		addLibtypeFlag(fileAdd),
		addLibraryFlag(fileAdd),
		addFilePathFlag(fileAdd),
	)
	addFileNameFlag(fileAdd)
	fileCmd.AddCommand(fileAdd)

	requireFlags(fileList,
		addProjectFlag(fileList),
		addVariantFlag(fileList),
		addLibtypeFlag(fileList),
		addLibraryFlag(fileList),
	)
	addReleaseFlag(fileList)
	fileCmd.AddCommand(fileList)

	fileCmd.AddCommand(fileDiff)
	rootCmd.AddCommand(fileCmd)
}
