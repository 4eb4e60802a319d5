package commands

import (
	"log/slog"
	"os"

	"buildcrafter/lib/osutil"

	"github.com/spf13/cobra"
)

var fetchOut *string

func init() {
	fetchOut = fetchCmd.Flags().String("out", "page.html", "The file to write the page html to.")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch </wiki/Page> [--out <page.html>]",
	Short: "Downloads the html of one wiki page, useful for debugging extraction offline.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		body := fetchPage(cmd, cfg, args[0])

		err := os.WriteFile(*fetchOut, body, 0644)
		if err != nil {
			osutil.Fatal("failed to write page", err)
		}
		slog.Info("page written", "file", *fetchOut, "bytes", len(body))
	},
}
