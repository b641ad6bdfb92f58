package scanner

import (
	"context"
	"fmt"
	"strings"

	"spscan/domain/scan"
	"spscan/domain/sharepoint"
	"spscan/infrastructure/spclient"
	"spscan/logging"
)

// Engine walks one site's permission state and accumulates metrics and
// findings into a versioned report. It processes exactly one site per Run and
// retains no state across invocations.
//
// Traversal is single-threaded and best-effort: collection-enumeration faults
// are logged and treated as empty results, per-list streaming faults abandon
// the remainder of that list only, and per-item property-read faults default
// the unreadable value and move on. Only a connectivity fault (no usable
// session) aborts the scan.
type Engine struct {
	client spclient.SiteClient
	config *scan.Config
	logger *logging.Logger
}

// New creates a scan engine for one site. The config is validated (with
// defaults applied) on Run.
func New(client spclient.SiteClient, config *scan.Config) *Engine {
	return &Engine{
		client: client,
		config: config,
		logger: logging.Default().WithComponent("scan_engine"),
	}
}

// Run executes the scan and returns the assembled report.
func (e *Engine) Run(ctx context.Context) (*scan.Report, error) {
	if e.client == nil {
		return nil, fmt.Errorf("site client cannot be nil")
	}
	if err := e.config.ValidateAndSetDefaults(scan.DefaultApiConstraints()); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	e.logger.Scan("Starting permission scan", e.config.SiteURL,
		"max_items", e.config.MaxItemsToScan,
		"page_size", e.config.PageSize,
		"internal_domains", len(e.config.InternalDomains))

	acc := scan.NewAccumulator(e.config.SiteURL)

	// Web-scope findings come first so finding order reflects discovery order.
	e.scanWebAssignments(ctx, acc)
	e.scanGroups(ctx, acc)
	e.scanLists(ctx, acc)

	report := scan.Assemble(e.config, acc)

	e.logger.Scan("Completed permission scan", e.config.SiteURL,
		"total_lists", report.Metrics.TotalLists,
		"total_items_scanned", report.Metrics.TotalItemsScanned,
		"unique_items", report.Metrics.ItemsWithUniquePermissions,
		"external_users", report.Metrics.ExternalUsers,
		"findings", len(report.Findings))

	return report, nil
}

// scanWebAssignments runs the web-scope pass: broad-grant principals and
// direct user assignments at web scope.
func (e *Engine) scanWebAssignments(ctx context.Context, acc *scan.Accumulator) {
	assignments, err := e.client.WebRoleAssignments(ctx)
	if err != nil {
		e.logger.Warn("Failed to read web role assignments, treating as none",
			"site_url", e.config.SiteURL,
			"error", err.Error())
		return
	}

	for _, ra := range assignments {
		if isBroadGrantTitle(ra.Member.Title) {
			acc.Metrics.AnyoneOrEveryoneAtWeb = true
			acc.AddFinding(scan.SeverityCritical,
				"'Anyone/Everyone' access detected at web scope", e.config.SiteURL)
		}
		if ra.Member.IsUser() {
			acc.Metrics.WebDirectAssignments++
		}
	}
}

// scanGroups runs the group hygiene pass: groups whose owner title is absent
// or blank after trimming count as orphaned.
func (e *Engine) scanGroups(ctx context.Context, acc *scan.Accumulator) {
	groups, err := e.client.SiteGroups(ctx)
	if err != nil {
		e.logger.Warn("Failed to enumerate site groups, treating as none",
			"site_url", e.config.SiteURL,
			"error", err.Error())
		return
	}

	for _, g := range groups {
		if strings.TrimSpace(g.OwnerTitle) == "" {
			acc.Metrics.OrphanedGroups++
		}
	}
}

// scanLists discovers the site's non-hidden lists and streams their items
// through the inspector under the global item budget.
func (e *Engine) scanLists(ctx context.Context, acc *scan.Accumulator) {
	lists, err := e.client.NonHiddenLists(ctx)
	if err != nil {
		e.logger.Warn("Failed to enumerate lists, treating as none",
			"site_url", e.config.SiteURL,
			"error", err.Error())
		return
	}

	acc.Metrics.TotalLists = len(lists)

	for _, list := range lists {
		if acc.BudgetReached(e.config.MaxItemsToScan) {
			e.logger.Info("Item scan budget reached, skipping remaining lists",
				"site_url", e.config.SiteURL,
				"budget", e.config.MaxItemsToScan)
			return
		}
		if list.IsEmpty() {
			e.logger.Debug("Skipping empty list", "list_title", list.Title)
			continue
		}
		e.scanListItems(ctx, list, acc)
	}
}

// scanListItems drives the pager for one list. A page-fetch failure abandons
// the remainder of this list and records no count for what was not retrieved.
func (e *Engine) scanListItems(ctx context.Context, list *sharepoint.List, acc *scan.Accumulator) {
	pager := e.client.ListItemPager(ctx, list, e.config.PageSize)

	for {
		items, more, err := pager.NextPage(ctx)
		if err != nil {
			e.logger.Warn("Failed to retrieve item page, abandoning rest of list",
				"list_title", list.Title,
				"error", err.Error())
			return
		}

		for _, item := range items {
			// Budget is checked per item so a page already in hand is not
			// processed past the limit.
			if acc.BudgetReached(e.config.MaxItemsToScan) {
				return
			}
			e.inspectItem(ctx, list, item, acc)
		}

		if !more {
			return
		}
		// The budget can also be hit exactly on a page boundary; no further
		// pages are requested once the counter reaches it.
		if acc.BudgetReached(e.config.MaxItemsToScan) {
			return
		}
	}
}

// isBroadGrantTitle matches principal titles that grant access to effectively
// everyone. Case-insensitive substring match on "Everyone"/"Anyone"; the
// heuristic is intentionally this blunt and is covered by tests.
func isBroadGrantTitle(title string) bool {
	t := strings.ToLower(title)
	return strings.Contains(t, "everyone") || strings.Contains(t, "anyone")
}
