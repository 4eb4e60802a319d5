package commands

import (
	"log/slog"
	"os"

	"buildcrafter/internal/source"
	"buildcrafter/internal/telemetry"
	"buildcrafter/lib/osutil"

	"github.com/spf13/cobra"
)

var linksOut *string

func init() {
	linksOut = linksCmd.Flags().String("out", "links.json", "The JSON file to write the item paths to.")
	rootCmd.AddCommand(linksCmd)
}

// readPage reads a page from disk when target is a file and fetches it from
// the wiki otherwise.
func readPage(cmd *cobra.Command, cfg Config, target string) []byte {
	if osutil.FileExists(target) {
		body, err := os.ReadFile(target)
		if err != nil {
			osutil.Fatal("failed to read page", err)
		}
		return body
	}

	return fetchPage(cmd, cfg, target)
}

func fetchPage(cmd *cobra.Command, cfg Config, path string) []byte {
	err := source.ValidatePath(path, cfg.PathPrefix)
	if err != nil {
		osutil.Fatal("not a wiki path", err)
	}
	body, err := source.NewHTTPSource(cfg.http(0), telemetry.SlogAPI{}).FetchPage(cmd.Context(), path)
	if err != nil {
		osutil.Fatal("failed to fetch page", err)
	}
	return body
}

var linksCmd = &cobra.Command{
	Use:   "links <index.html | /wiki/Index_Page> [--out <links.json>]",
	Short: "Lists the item pages linked from an item index page.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		body := readPage(cmd, cfg, args[0])

		links, err := source.HarvestLinksHTML(cmd.Context(), body, cfg.baseUrl(), cfg.PathPrefix)
		if err != nil {
			osutil.Fatal("failed to parse page", err)
		}
		err = source.WritePaths(*linksOut, links)
		if err != nil {
			osutil.Fatal("failed to write links", err)
		}
		slog.Info("links written", "file", *linksOut, "count", len(links))
	},
}
