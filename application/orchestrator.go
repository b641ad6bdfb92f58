package application

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"spscan/domain/scan"
	"spscan/infrastructure/reportstore"
	"spscan/infrastructure/scanner"
	"spscan/infrastructure/spclient"
	"spscan/logging"
	"spscan/render"
)

// Connector establishes a content-store session for one site. A returned
// error is a connectivity fault: the site is skipped, never partially scanned.
type Connector func(ctx context.Context, siteURL string) (spclient.SiteClient, error)

// Options configures one orchestrator run across one or more sites.
type Options struct {
	Sites           []string
	OutputDir       string
	InternalDomains []string
	MaxItemsToScan  int
	PageSize        int
	Thresholds      render.Thresholds
}

// Orchestrator loops the scan engine over a list of sites, writing report
// artifacts into a timestamped run directory and optionally persisting each
// report to the scan-history store. The engine itself stays single-site; all
// multi-site concerns live here.
type Orchestrator struct {
	connect Connector
	store   *reportstore.Store // optional; nil disables persistence
	logger  *logging.Logger
}

// NewOrchestrator creates an orchestrator. store may be nil.
func NewOrchestrator(connect Connector, store *reportstore.Store) *Orchestrator {
	return &Orchestrator{
		connect: connect,
		store:   store,
		logger:  logging.Default().WithComponent("orchestrator"),
	}
}

// Run scans every configured site. Per-site failures are logged and skipped;
// the run only errors when no sites were supplied or the run directory cannot
// be created. Returns the run directory and the reports that completed.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (string, []*scan.Report, error) {
	if len(opts.Sites) == 0 {
		return "", nil, fmt.Errorf("no sites provided")
	}

	runDir := filepath.Join(opts.OutputDir, time.Now().Format("2006-01-02_15-04-05"))
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("create run directory: %w", err)
	}

	var reports []*scan.Report
	for _, siteURL := range opts.Sites {
		if ctx.Err() != nil {
			return runDir, reports, fmt.Errorf("run canceled: %w", ctx.Err())
		}

		report, err := o.scanSite(ctx, siteURL, opts)
		if err != nil {
			o.logger.ScanError("Site scan failed, continuing with next site", err, siteURL)
			continue
		}
		reports = append(reports, report)

		siteDir := filepath.Join(runDir, "site-"+sanitizeSiteName(siteURL))
		o.writeArtifacts(siteDir, report, opts.Thresholds)

		if o.store != nil {
			if _, err := o.store.Save(ctx, report); err != nil {
				o.logger.ScanError("Failed to persist scan report", err, siteURL)
			}
		}
	}

	o.logger.Info("Run complete", "run_dir", runDir, "sites_scanned", len(reports), "sites_requested", len(opts.Sites))
	return runDir, reports, nil
}

// scanSite connects to one site and runs the engine against it.
func (o *Orchestrator) scanSite(ctx context.Context, siteURL string, opts Options) (*scan.Report, error) {
	client, err := o.connect(ctx, siteURL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	cfg := &scan.Config{
		SiteURL:         siteURL,
		InternalDomains: opts.InternalDomains,
		MaxItemsToScan:  opts.MaxItemsToScan,
		PageSize:        opts.PageSize,
	}
	return scanner.New(client, cfg).Run(ctx)
}

// writeArtifacts writes audit.json, report.md, and report.html for one site.
// Write faults are warned and swallowed: the in-memory report is already
// complete and is still returned to the caller.
func (o *Orchestrator) writeArtifacts(siteDir string, report *scan.Report, thresholds render.Thresholds) {
	if err := os.MkdirAll(siteDir, 0o755); err != nil {
		o.logger.Warn("Failed to create site directory", "dir", siteDir, "error", err.Error())
		return
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		o.logger.Warn("Failed to encode report JSON", "site_url", report.Site, "error", err.Error())
	} else if err := os.WriteFile(filepath.Join(siteDir, "audit.json"), payload, 0o644); err != nil {
		o.logger.Warn("Failed to write audit.json", "dir", siteDir, "error", err.Error())
	}

	ratings := render.Analyze(report, thresholds)
	md := render.Markdown(report, ratings)
	if err := os.WriteFile(filepath.Join(siteDir, "report.md"), []byte(md), 0o644); err != nil {
		o.logger.Warn("Failed to write report.md", "dir", siteDir, "error", err.Error())
	}

	page, err := render.HTML(report, md)
	if err != nil {
		o.logger.Warn("Failed to render report.html", "site_url", report.Site, "error", err.Error())
	} else if err := os.WriteFile(filepath.Join(siteDir, "report.html"), []byte(page), 0o644); err != nil {
		o.logger.Warn("Failed to write report.html", "dir", siteDir, "error", err.Error())
	}
}

var unsafeSiteChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// sanitizeSiteName turns a site URL into a filesystem-safe directory suffix.
func sanitizeSiteName(siteURL string) string {
	return unsafeSiteChars.ReplaceAllString(strings.Trim(siteURL, "/"), "_")
}
