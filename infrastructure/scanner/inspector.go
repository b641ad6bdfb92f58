package scanner

import (
	"context"
	"strings"

	"spscan/domain/scan"
	"spscan/domain/sharepoint"
)

// fullControlLevel is matched as a raw substring of the permission-level
// name. The match is locale/tenant-naming dependent; kept as-is rather than
// replaced with a rights-mask check, since that is the behavior being audited
// against.
const fullControlLevel = "Full Control"

// inspectItem examines one item: unique-permission flag, then (only if
// unique) its role assignments. Every visited item produces exactly one
// detail row and advances the shared scanned-item counter, regardless of
// read failures along the way.
func (e *Engine) inspectItem(ctx context.Context, list *sharepoint.List, item *sharepoint.Item, acc *scan.Accumulator) {
	unique, err := e.client.HasUniquePermissions(ctx, item)
	if err != nil {
		// Fail toward under-counting: an unreadable flag is treated as "no".
		e.logger.Debug("Failed to read unique-permissions flag, assuming inherited",
			"list_title", list.Title,
			"item_url", item.URL,
			"error", err.Error())
		unique = false
	}

	if unique {
		acc.Metrics.ItemsWithUniquePermissions++
		e.inspectItemAssignments(ctx, list, item, acc)
	}

	acc.AddDetail(list.Title, item.URL, unique)
	acc.Metrics.TotalItemsScanned++
}

// inspectItemAssignments classifies each assignee of a unique-permission item
// and flags external identities holding Full Control. The external/internal
// classification is computed once per assignment and reused across all of
// that assignment's permission-level bindings.
func (e *Engine) inspectItemAssignments(ctx context.Context, list *sharepoint.List, item *sharepoint.Item, acc *scan.Accumulator) {
	assignments, err := e.client.ItemRoleAssignments(ctx, item)
	if err != nil {
		e.logger.Warn("Failed to read item role assignments",
			"list_title", list.Title,
			"item_url", item.URL,
			"error", err.Error())
		return
	}

	for _, ra := range assignments {
		isExternal := false
		// Without a resolvable email the external check is skipped for this
		// assignee; true external owners lacking one go under-reported.
		if ra.Member.IsUser() && ra.Member.Email != "" {
			isExternal = !scan.IsInternalEmail(ra.Member.Email, e.config.InternalDomains)
		}
		if isExternal {
			acc.Metrics.ExternalUsers++
			e.logger.Debug("External identity on item",
				"principal", ra.Member.GetDisplayName(),
				"item", item.GetDisplayName())
		}

		for _, role := range ra.Roles {
			if strings.Contains(role, fullControlLevel) && isExternal {
				acc.AddFinding(scan.SeverityCritical,
					"External identity with Full Control on item", list.URL)
				acc.Metrics.ExternalOwnerPresent = true
			}
		}
	}
}
