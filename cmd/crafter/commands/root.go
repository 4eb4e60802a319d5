package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"buildcrafter/internal/telemetry"
	libtelemetry "buildcrafter/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	debug      *bool
	dumpHttp   *string
	exporters  libtelemetry.Telemetry
)

var rootCmd = &cobra.Command{
	Use:   "crafter",
	Short: "crafter extracts item data from the wiki for the build planner.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*debug)

		var err error
		exporters, err = libtelemetry.SetupFromEnv(cmd.Context(), "crafter")
		if err != nil {
			slog.Warn("telemetry disabled", "err", err)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		err := exporters.Shutdown(context.Background())
		if err != nil {
			slog.Warn("telemetry shutdown", "err", err)
		}
	},
}

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "crafter.json5", "The config file, a crafter.local.json5 next to it overrides it.")
	debug = rootCmd.PersistentFlags().Bool("debug", false, "Print debug logs.")
	dumpHttp = rootCmd.PersistentFlags().String("dump-http", "", "A directory to write every http response to, for debugging.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
