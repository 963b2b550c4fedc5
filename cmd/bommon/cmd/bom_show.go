package cmd

import (
	"context"
	"fmt"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/oneconcern/bommon/pkg/tree"
	"github.com/spf13/cobra"
)

// bomJSON is the json rendition of a BOM tree
type bomJSON struct {
	Name        string            `json:"name"`
	Kind        string            `json:"kind"`
	Description string            `json:"description,omitempty"`
	Properties  map[string]string `json:"properties,omitempty"`
	Children    []bomJSON         `json:"children,omitempty"`
}

func toBOMJSON(t *tree.Tree, key tree.Key, noHierarchy bool, depth int) bomJSON {
	b := bomJSON{
		Name:        key.FullName(),
		Kind:        key.Kind.String(),
		Description: t.Description(key),
		Properties:  t.Properties(key),
	}
	if noHierarchy && depth > 0 {
		return b
	}
	for _, child := range t.Children(key) {
		b.Children = append(b.Children, toBOMJSON(t, child, noHierarchy, depth+1))
	}
	return b
}

var bomShow = &cobra.Command{
	Use:   "show",
	Short: "Show a BOM tree",
	Example: `% bommon bom show --project i10 --variant ar_lib --bom dev
i10/ar_lib/dev
	i10/ar_lib/ipspec/dev/REL1
	i10/ar_lib/rtl/dev
	i10/io_lib/dev
		i10/io_lib/rtl/dev`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		t, root, _, err := loadBOM(ctx, bommonFlags)
		if err != nil {
			wrapFatalln("load BOM", err)
			return
		}
		if bommonFlags.bom.json {
			enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err = enc.Encode(toBOMJSON(t, root, bommonFlags.bom.noHierarchy, 0)); err != nil {
				wrapFatalln("render BOM", err)
			}
			return
		}
		fmt.Fprint(cmd.OutOrStdout(), t.Report(root,
			tree.ShowLibraries(bommonFlags.bom.libraries),
			tree.NoHierarchy(bommonFlags.bom.noHierarchy),
		))
	},
}

var bomValidate = &cobra.Command{
	Use:   "validate",
	Short: "Check that a BOM and every BOM below may be saved",
	Long: `Reports every problem found in a BOM tree: location clashes, libraries of another variant,
mutable objects in immutable BOMs, invalid names and objects missing from the store.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		t, root, _, err := loadBOM(ctx, bommonFlags)
		if err != nil {
			wrapFatalln("load BOM", err)
			return
		}
		messages := make(map[string]struct{})
		for _, k := range t.FlattenTree(root) {
			problems, err := t.Validate(ctx, k)
			if err != nil {
				wrapFatalln("validate "+k.FullName(), err)
				return
			}
			for _, problem := range problems {
				messages[problem.Error()] = struct{}{}
			}
		}
		if len(messages) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", root.FullName())
			return
		}
		sorted := make([]string, 0, len(messages))
		for msg := range messages {
			sorted = append(sorted, msg)
		}
		sort.Strings(sorted)
		for _, msg := range sorted {
			fmt.Fprintln(cmd.OutOrStdout(), msg)
		}
		wrapFatalln(fmt.Sprintf("%s is invalid", root.FullName()), fmt.Errorf("%d problem(s)", len(sorted)))
	},
}

func init() {
	addLocationFlags(bomShow)
	addShowLibrariesFlag(bomShow)
	addNoHierarchyFlag(bomShow)
	addBOMJSONFlag(bomShow)
	bomCmd.AddCommand(bomShow)

	addLocationFlags(bomValidate)
	bomCmd.AddCommand(bomValidate)
}
