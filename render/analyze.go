package render

import (
	"fmt"

	"spscan/domain/scan"
)

// Thresholds configures the risk ratings derived from scan metrics.
type Thresholds struct {
	// Critical
	AnyoneOrEveryone bool
	ExternalOwner    bool
	// High
	DirectWebPerms         bool
	UniqueItemsGreaterThan int
	// Medium
	ExternalIdentitiesAtLeast int
	GroupWithoutOwner         bool
}

// DefaultThresholds returns the default risk-rating thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		AnyoneOrEveryone:          true,
		ExternalOwner:             true,
		DirectWebPerms:            true,
		UniqueItemsGreaterThan:    250,
		ExternalIdentitiesAtLeast: 10,
		GroupWithoutOwner:         true,
	}
}

// Analyze rates a report's metrics against thresholds and returns derived
// findings for the rendered summary. This is presentation-side rating; the
// report's own findings come from the engine and are not modified here.
func Analyze(report *scan.Report, t Thresholds) []scan.Finding {
	m := report.Metrics
	var findings []scan.Finding

	if t.AnyoneOrEveryone && m.AnyoneOrEveryoneAtWeb {
		findings = append(findings, scan.Finding{
			Level:   scan.SeverityCritical,
			Message: "'Anyone/Everyone' access detected at web/site scope.",
		})
	}
	if t.ExternalOwner && m.ExternalOwnerPresent {
		findings = append(findings, scan.Finding{
			Level:   scan.SeverityCritical,
			Message: "Guest/external user with Owner role detected.",
		})
	}
	if t.DirectWebPerms && m.WebDirectAssignments > 0 {
		findings = append(findings, scan.Finding{
			Level:   scan.SeverityHigh,
			Message: fmt.Sprintf("Direct user permissions at web scope: %d", m.WebDirectAssignments),
		})
	}
	if m.ItemsWithUniquePermissions > t.UniqueItemsGreaterThan {
		findings = append(findings, scan.Finding{
			Level:   scan.SeverityHigh,
			Message: fmt.Sprintf("Items with unique permissions: %d", m.ItemsWithUniquePermissions),
		})
	}
	if m.ExternalUsers >= t.ExternalIdentitiesAtLeast {
		findings = append(findings, scan.Finding{
			Level:   scan.SeverityMedium,
			Message: fmt.Sprintf("External identities with item-level access: %d", m.ExternalUsers),
		})
	}
	if t.GroupWithoutOwner && m.OrphanedGroups > 0 {
		findings = append(findings, scan.Finding{
			Level:   scan.SeverityMedium,
			Message: fmt.Sprintf("SharePoint groups without owners: %d", m.OrphanedGroups),
		})
	}

	return findings
}
