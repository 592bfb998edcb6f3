package commands

import (
	"context"
	"log/slog"
	"os"
	"time"
	"wishlist-stock/lib/restyutil"
	"wishlist-stock/lib/serviceutil"
	"wishlist-stock/lib/telemetry"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

type globals struct {
	verbose    bool
	configPath string
	dumpHttp   string

	tel telemetry.Telemetry
}

func (g *globals) config() (Config, error) {
	return readConfig(g.configPath)
}

func (g *globals) dump() (restyutil.InstrumentOutput, error) {
	return newDumpOutput(g.dumpHttp)
}

func initSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger.With("run_id", uuid.NewString()))
}

// NewRootCommand builds the CLI. The returned shutdown func flushes
// telemetry and must be called once the command has finished.
func NewRootCommand() (*cobra.Command, func()) {
	g := &globals{}

	root := &cobra.Command{
		Use:           "wishlist-stock",
		Short:         "Finds which Hardcover wish list books are in stock at nearby Half Price Books stores.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initSlog(g.verbose)

			tel, err := telemetry.SetupFromEnv(cmd.Context(), "wishlist-stock")
			if err != nil {
				slog.Warn("failed to set up telemetry, continuing without it", "err", err)
				return nil
			}
			g.tel = tel
			if tel.Enabled() {
				telemetry.InstrumentPerfStats(cmd.Context(), time.Second*5)
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log debug output.")
	root.PersistentFlags().StringVar(&g.configPath, "config", "config.json5", "The json5 config file, merged with its .local variant if present.")
	root.PersistentFlags().StringVar(&g.dumpHttp, "dump-http", "", "Write every HTTP exchange into this directory.")

	root.AddCommand(
		newCheckCommand(g),
		newPromptCommand(g),
		newStoresCommand(g),
		newWishlistCommand(g),
	)

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		err := g.tel.Shutdown(ctx)
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	}
	return root, shutdown
}

func ExecuteContext(ctx context.Context) {
	root, shutdown := NewRootCommand()
	err := root.ExecuteContext(ctx)
	shutdown()
	if err != nil {
		serviceutil.Fatal("wishlist-stock failed", err)
	}
}
