package commands

import (
	"context"

	"buildcrafter/internal/batch"
	"buildcrafter/lib/osutil"

	"github.com/spf13/cobra"
)

var (
	importData *string
	importKind *string
)

func init() {
	importData = importCmd.Flags().String("data", "", "The extracted JSON file to import, defaults to the kind's output file.")
	importKind = importCmd.Flags().String("kind", "weapon", "The kind of the imported items: weapon or armor.")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import [--kind weapon|armor] [--data <items.json>]",
	Short: "Replaces the catalog's items of a kind with an extracted JSON file.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		kind := cfg.kind(*importKind)

		file := kind.Output
		if *importData != "" {
			file = *importData
		}
		list, err := batch.ReadJSONFile(file)
		if err != nil {
			osutil.Fatal("failed to read items", err)
		}

		saveToCatalog(context.Background(), cfg.Store, kind.Name, list)
	},
}
