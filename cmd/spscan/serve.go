package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/spf13/cobra"

	"spscan/database"
	"spscan/infrastructure/config"
	"spscan/infrastructure/reportstore"
	"spscan/interfaces/web/handlers"
	"spscan/logging"
)

func newServeCmd(cfg *config.AppConfig) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored scan reports over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Default()

			db, err := database.New(*cfg.Database, logger)
			if err != nil {
				return fmt.Errorf("open scan-history database: %w", err)
			}
			defer db.Close()

			store := reportstore.New(db)

			httpLogger := httplog.NewLogger("spscan", httplog.Options{
				JSON:     true,
				LogLevel: slog.LevelInfo,
				Concise:  true,
			})

			r := chi.NewRouter()
			r.Use(middleware.Recoverer)
			r.Use(httplog.RequestLogger(httpLogger))
			handlers.NewReportHandlers(store).RegisterRoutes(r)

			server := &http.Server{
				Addr:              addr,
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}

			logger.Info("Serving scan history", "addr", addr, "db_path", cfg.Database.Path)
			return server.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", cfg.HTTPAddr, "listen address")
	return cmd
}
