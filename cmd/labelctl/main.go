package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agenthands/knetlabel/internal/config"
	"github.com/agenthands/knetlabel/internal/core"
	"github.com/agenthands/knetlabel/internal/driver"
	"github.com/agenthands/knetlabel/internal/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "labelctl",
		Short:         "Resolve display labels for knowledge graph concepts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringP("config", "c", "", "path to a TOML config file")

	root.AddCommand(newLabelCmd(), newImportCmd(), newRelabelCmd())
	return root
}

// loadConfig reads --config (or the defaults), then the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// connect opens the graph store for commands that need one. The returned
// close func releases the driver and flushes the logger.
func connect(ctx context.Context, cfg *config.Config) (*core.Labeler, func(), error) {
	lg, err := logger.New(cfg.Logging.Mode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph, lg)
	if err != nil {
		lg.Sync()
		return nil, nil, err
	}
	closeFn := func() {
		if err := d.Close(context.Background()); err != nil {
			lg.Warn("failed to close driver", "error", err)
		}
		lg.Sync()
	}
	return core.NewLabeler(d, cfg, lg), closeFn, nil
}
