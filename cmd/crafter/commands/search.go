package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"buildcrafter/internal/batch"
	"buildcrafter/internal/items"
	"buildcrafter/internal/store"
	"buildcrafter/lib/osutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	searchSlot   *string
	searchLimit  *int
	searchData   *[]string
	searchKind   *string
	searchEffect *string
)

func init() {
	searchSlot = searchCmd.Flags().String("slot", "", "Only list items for this equipment slot.")
	searchLimit = searchCmd.Flags().Int("limit", 20, "The maximum number of results, 0 lists everything.")
	searchData = searchCmd.Flags().StringSlice("data", nil, "Extracted JSON files to search, the catalog is used when empty.")
	searchKind = searchCmd.Flags().String("kind", "", "Only search the catalog for this kind of item.")
	searchEffect = searchCmd.Flags().String("effect", "", "Only list items with an effect of this type, like attack_rate.")
	rootCmd.AddCommand(searchCmd)
}

func loadItems(ctx context.Context, cfg Config) []items.Item {
	if len(*searchData) == 0 {
		catalog, err := store.Open(ctx, cfg.Store)
		if err != nil {
			osutil.Fatal("failed to open catalog", err)
		}
		defer catalog.Close()

		var list []items.Item
		if *searchEffect != "" {
			list, err = catalog.ItemsWithEffect(ctx, *searchKind, *searchEffect)
		} else {
			list, err = catalog.ListItems(ctx, *searchKind)
		}
		if err != nil {
			osutil.Fatal("failed to list items", err)
		}
		return list
	}

	var list []items.Item
	for _, file := range *searchData {
		fileItems, err := batch.ReadJSONFile(file)
		if err != nil {
			osutil.Fatal("failed to read items", err)
		}
		list = append(list, fileItems...)
	}
	return list
}

func levelRange(item items.Item) string {
	if item.MinLevel == nil {
		return "-"
	}
	if *item.MinLevel == items.Deref(item.MaxLevel) {
		return fmt.Sprint(*item.MinLevel)
	}
	return fmt.Sprintf("%d-%d", *item.MinLevel, items.Deref(item.MaxLevel))
}

func orDash(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}

var searchCmd = &cobra.Command{
	Use:   "search [query] [--slot <slot>] [--effect <type>] [--data <items.json>]",
	Short: "Searches extracted items by name.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		list := loadItems(cmd.Context(), cfg)

		query := strings.Join(args, " ")
		results := items.Search(list, query, items.SearchOptions{
			Slot:   *searchSlot,
			Effect: *searchEffect,
			Limit:  *searchLimit,
		})

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Name", "Kind", "Slot", "Rarity", "Levels", "Set bonus", "Match"})
		for _, r := range results {
			setBonus := "-"
			if r.Item.SetBonus != nil {
				setBonus = fmt.Sprintf("%d set: %s", r.Item.SetBonus.PiecesRequired, r.Item.SetBonus.Bonus)
			}
			t.AppendRow(table.Row{
				r.Item.Name,
				r.Item.Kind,
				orDash(r.Item.Slot),
				orDash(r.Item.Rarity),
				levelRange(r.Item),
				setBonus,
				fmt.Sprintf("%.2f", r.Similarity),
			})
		}
		t.AppendFooter(table.Row{"", "", "", "", "", "Results", len(results)})
		t.Render()
	},
}
