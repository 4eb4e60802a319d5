package commands

import (
	"errors"
	"fmt"
	"os"

	"buildcrafter/internal/batch"
	"buildcrafter/internal/items"
	"buildcrafter/internal/store"
	"buildcrafter/lib/osutil"

	"github.com/spf13/cobra"
)

var showKind *string

func init() {
	showKind = showCmd.Flags().String("kind", "weapon", "The kind of the item: weapon or armor.")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <id> [--kind weapon|armor]",
	Short: "Prints one catalog item as JSON.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig()
		kind := cfg.kind(*showKind)

		catalog, err := store.Open(ctx, cfg.Store)
		if err != nil {
			osutil.Fatal("failed to open catalog", err)
		}
		defer catalog.Close()

		item, err := catalog.GetItem(ctx, kind.Name, args[0])
		if errors.Is(err, store.ErrNotFound) {
			osutil.Fatal("unknown item", fmt.Errorf("no %s with id %q in the catalog", kind.Name, args[0]))
		}
		if err != nil {
			osutil.Fatal("failed to read item", err)
		}

		err = batch.WriteJSON(os.Stdout, []items.Item{item})
		if err != nil {
			osutil.Fatal("failed to print item", err)
		}
	},
}
