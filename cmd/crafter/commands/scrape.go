package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"buildcrafter/internal/batch"
	"buildcrafter/internal/extract"
	"buildcrafter/internal/items"
	"buildcrafter/internal/source"
	"buildcrafter/internal/store"
	"buildcrafter/internal/telemetry"
	"buildcrafter/lib/osutil"
	libtelemetry "buildcrafter/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	scrapeKind     *string
	scrapePages    *string
	scrapePaths    *string
	scrapeOut      *string
	scrapeNoImages *bool
	scrapeDb       *bool
)

func init() {
	scrapeKind = scrapeCmd.Flags().String("kind", "weapon", "The kind of items to extract: weapon or armor.")
	scrapePages = scrapeCmd.Flags().String("pages", "", "A JSON object of wiki path to page html, read instead of fetching pages.")
	scrapePaths = scrapeCmd.Flags().String("paths", "", "A JSON array of wiki paths, defaults to the kind's link file.")
	scrapeOut = scrapeCmd.Flags().String("out", "", "The output JSON file, defaults to the kind's output file.")
	scrapeNoImages = scrapeCmd.Flags().Bool("no-images", false, "Do not download item pictures.")
	scrapeDb = scrapeCmd.Flags().Bool("db", false, "Also write the items to the catalog database.")
	rootCmd.AddCommand(scrapeCmd)
}

func scrapeSources(cfg Config, kind extract.Kind, tel telemetry.API) (source.PageSource, []string) {
	if *scrapePages != "" {
		pages, err := source.LoadPageMap(*scrapePages)
		if err != nil {
			osutil.Fatal("failed to read page map", err)
		}
		if *scrapePaths == "" {
			return pages, pages.Paths()
		}
		paths, err := source.ReadPaths(*scrapePaths)
		if err != nil {
			osutil.Fatal("failed to read paths", err)
		}
		return pages, paths
	}

	input := kind.Input
	if *scrapePaths != "" {
		input = *scrapePaths
	}
	paths, err := source.ReadPaths(input)
	if err != nil {
		osutil.Fatal("failed to read paths", err)
	}
	return source.NewHTTPSource(cfg.http(kind.RequestDelay), tel), paths
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--kind weapon|armor] [--pages <pages.json>] [--db]",
	Short: "Extracts every item page of a kind and writes the items as JSON.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig()
		kind := cfg.kind(*scrapeKind)
		tel := telemetry.SlogAPI{}

		libtelemetry.InstrumentPerfStats(ctx, 30*time.Second)

		pages, paths := scrapeSources(cfg, kind, tel)

		var images source.ImageDownloader
		if !*scrapeNoImages {
			images = source.NewImageFetcher(cfg.http(0), cfg.ImageDir, tel)
		}

		driver := batch.NewDriver(
			batch.Config{PathPrefix: cfg.PathPrefix},
			pages,
			images,
			extract.NewExtractor(kind, cfg.baseUrl(), tel),
			tel,
		)

		slog.Info("scraping", "kind", kind.Name, "pages", len(paths))
		t1 := time.Now()
		result, err := driver.Run(ctx, paths)
		if errors.Is(err, context.Canceled) {
			slog.Warn("scrape interrupted, writing what was extracted so far")
		} else if err != nil {
			osutil.Fatal("scrape failed", err)
		}
		slog.Info("scraping time", "seconds", time.Since(t1).Seconds())

		out := kind.Output
		if *scrapeOut != "" {
			out = *scrapeOut
		}
		err = batch.WriteJSONFile(out, result.Items)
		if err != nil {
			osutil.Fatal("failed to write items", err)
		}
		slog.Info("items written", "file", out, "count", len(result.Items))

		if *scrapeDb {
			saveToCatalog(context.Background(), cfg.Store, kind.Name, result.Items)
		}

		result.Summary.Render(os.Stdout)
	},
}

func saveToCatalog(ctx context.Context, cfg store.Config, kind string, list []items.Item) {
	catalog, err := store.Open(ctx, cfg)
	if err != nil {
		osutil.Fatal("failed to open catalog", err)
	}
	defer catalog.Close()

	err = catalog.SaveItems(ctx, kind, list)
	if err != nil {
		osutil.Fatal("failed to save items", err)
	}
	slog.Info("catalog updated", "kind", kind, "count", len(list))
}
