package cmd

import (
	"context"

	"github.com/oneconcern/bommon/pkg/errors"
	"github.com/oneconcern/bommon/pkg/tree"
	"github.com/oneconcern/bommon/pkg/tree/status"
	"github.com/spf13/cobra"
)

var bomCmd = &cobra.Command{
	Use:   "bom",
	Short: "Commands to manage BOMs",
	Long: `A BOM is a composite configuration: it holds at most one library or release per location
(project/variant/libtype), and other BOMs.

BOMs named like releases (REL*, snap-*, PREL*) are immutable: they may not hold mutable BOMs or libraries.`,
}

// addLocationFlags adds the flags designating a BOM and marks them as required
func addLocationFlags(cmd *cobra.Command) {
	requireFlags(cmd,
		addProjectFlag(cmd),
		addVariantFlag(cmd),
		addBOMFlag(cmd),
	)
}

// saveBOM persists a BOM, reporting every validation problem before failing
func saveBOM(ctx context.Context, t *tree.Tree, key tree.Key, shallow bool) error {
	err := t.Save(ctx, key, shallow)
	if errors.Is(err, status.ErrValidationFailed) {
		for _, problem := range tree.Problems(err) {
			infoLogger.Println(problem)
		}
	}
	return err
}

func init() {
	rootCmd.AddCommand(bomCmd)
}
