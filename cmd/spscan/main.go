package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"spscan/infrastructure/config"
	"spscan/logging"
)

func main() {
	loadEnvironment()

	cfg := config.LoadAppConfigFromEnv()
	logger := logging.NewLogger(cfg.Logging)
	logging.SetDefault(logger)

	root := newRootCmd(cfg)
	if err := root.Execute(); err != nil {
		logger.Error("Command failed", "error", err.Error())
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.AppConfig) *cobra.Command {
	root := &cobra.Command{
		Use:           "spscan",
		Short:         "SharePoint permission risk scanner",
		Long:          "spscan audits access-control state on SharePoint sites and emits a normalized risk report: broad grants, external identities, ownership escalation, and governance hygiene.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newScanCmd(cfg))
	root.AddCommand(newServeCmd(cfg))
	return root
}

func loadEnvironment() {
	if err := godotenv.Load(); err == nil {
		println("Loaded configuration from .env file")
	}
}
