package main

import (
	"context"
	"fmt"

	"github.com/koltyakov/gosip/api"
	"github.com/spf13/cobra"

	"spscan/application"
	"spscan/database"
	"spscan/domain/scan"
	"spscan/infrastructure/config"
	"spscan/infrastructure/reportstore"
	"spscan/infrastructure/spclient"
	"spscan/logging"
	"spscan/render"
	"spscan/spauth"
)

func newScanCmd(cfg *config.AppConfig) *cobra.Command {
	var (
		siteURL         string
		sitesCSV        string
		internalDomains []string
		maxItems        int
		pageSize        int
		outputDir       string
		persist         bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan one or more sites and write risk reports",
		Example: `  spscan scan --site https://contoso.sharepoint.com/sites/finance --internal-domain contoso.com -o ./out
  spscan scan --sites-csv sites.csv --internal-domain contoso.com --internal-domain contoso.de -o ./out
  spscan scan --site https://contoso.sharepoint.com/sites/hr --max-items 10000 --page-size 500 -o ./out --persist`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (siteURL == "") == (sitesCSV == "") {
				return fmt.Errorf("exactly one of --site or --sites-csv is required")
			}

			sites := []string{siteURL}
			if sitesCSV != "" {
				var err error
				sites, err = application.ReadSitesCSV(sitesCSV)
				if err != nil {
					return err
				}
			}

			authCfg, err := spauth.FromEnv()
			if err != nil {
				return err
			}

			var store *reportstore.Store
			if persist {
				db, err := database.New(*cfg.Database, logging.Default())
				if err != nil {
					return fmt.Errorf("open scan-history database: %w", err)
				}
				defer db.Close()
				store = reportstore.New(db)
			}

			orchestrator := application.NewOrchestrator(gosipConnector(authCfg), store)
			runDir, reports, err := orchestrator.Run(cmd.Context(), application.Options{
				Sites:           sites,
				OutputDir:       outputDir,
				InternalDomains: internalDomains,
				MaxItemsToScan:  maxItems,
				PageSize:        pageSize,
				Thresholds:      render.DefaultThresholds(),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Run complete → %s (%d/%d sites scanned)\n",
				runDir, len(reports), len(sites))
			return nil
		},
	}

	cmd.Flags().StringVar(&siteURL, "site", "", "site URL to scan")
	cmd.Flags().StringVar(&sitesCSV, "sites-csv", "", "CSV file with a SiteUrl column")
	cmd.Flags().StringArrayVar(&internalDomains, "internal-domain", nil, "email domain treated as internal (repeatable)")
	cmd.Flags().IntVar(&maxItems, "max-items", scan.DefaultMaxItemsToScan, "global item scan budget")
	cmd.Flags().IntVar(&pageSize, "page-size", scan.DefaultPageSize, "items requested per page")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "./out", "directory for run artifacts")
	cmd.Flags().BoolVar(&persist, "persist", false, "save reports to the scan-history database")

	return cmd
}

// gosipConnector establishes an authenticated session per site and verifies
// it by reading the root web before any scanning begins.
func gosipConnector(authCfg spauth.Config) application.Connector {
	return func(ctx context.Context, siteURL string) (spclient.SiteClient, error) {
		authClient, err := spauth.NewClient(authCfg, siteURL)
		if err != nil {
			return nil, err
		}
		client := spclient.NewGosipClient(api.NewSP(authClient))
		if _, err := client.Web(ctx); err != nil {
			return nil, fmt.Errorf("establish session: %w", err)
		}
		return client, nil
	}
}
