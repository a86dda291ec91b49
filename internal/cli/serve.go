package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salah-times/internal/config"
	"github.com/smokyabdulrahman/salah-times/internal/logging"
	"github.com/smokyabdulrahman/salah-times/internal/server"
)

var flagAddress string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the prayer times HTTP service",
		Long: "Serve the resolution pipeline over HTTP.\n\n" +
			"Configuration comes from .env, then $SALAH_CONFIG or configs/server.yaml,\n" +
			"then environment variables (HTTP_ADDRESS, DATASET_DIR, REDIS_ADDR, ...).",
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&flagAddress, "address", "", "Listen address (overrides HTTP_ADDRESS)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}
	if flagAddress != "" {
		cfg.HTTP.Address = flagAddress
	}
	if FlagLogLevel != "" {
		cfg.Log.Level = FlagLogLevel
	}

	log := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Pretty)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
