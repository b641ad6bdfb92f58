package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spscan/domain/scan"
)

func reportWithMetrics(m scan.Metrics) *scan.Report {
	return &scan.Report{
		Version: scan.SchemaVersion,
		Site:    m.SiteURL,
		Metrics: m,
	}
}

func TestAnalyze_CleanReportHasNoRatings(t *testing.T) {
	findings := Analyze(reportWithMetrics(scan.Metrics{}), DefaultThresholds())
	assert.Empty(t, findings)
}

func TestAnalyze_CriticalRatings(t *testing.T) {
	findings := Analyze(reportWithMetrics(scan.Metrics{
		AnyoneOrEveryoneAtWeb: true,
		ExternalOwnerPresent:  true,
	}), DefaultThresholds())

	require.Len(t, findings, 2)
	assert.Equal(t, scan.SeverityCritical, findings[0].Level)
	assert.Equal(t, "'Anyone/Everyone' access detected at web/site scope.", findings[0].Message)
	assert.Equal(t, scan.SeverityCritical, findings[1].Level)
	assert.Equal(t, "Guest/external user with Owner role detected.", findings[1].Message)
}

func TestAnalyze_DirectWebPermissions(t *testing.T) {
	findings := Analyze(reportWithMetrics(scan.Metrics{
		WebDirectAssignments: 4,
	}), DefaultThresholds())

	require.Len(t, findings, 1)
	assert.Equal(t, scan.SeverityHigh, findings[0].Level)
	assert.Equal(t, "Direct user permissions at web scope: 4", findings[0].Message)
}

func TestAnalyze_UniqueItemsThreshold(t *testing.T) {
	tests := []struct {
		name    string
		unique  int
		flagged bool
	}{
		{"at threshold", 250, false},
		{"above threshold", 251, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := Analyze(reportWithMetrics(scan.Metrics{
				ItemsWithUniquePermissions: tt.unique,
			}), DefaultThresholds())

			if !tt.flagged {
				assert.Empty(t, findings)
				return
			}
			require.Len(t, findings, 1)
			assert.Equal(t, scan.SeverityHigh, findings[0].Level)
			assert.Equal(t, "Items with unique permissions: 251", findings[0].Message)
		})
	}
}

func TestAnalyze_ExternalIdentitiesThreshold(t *testing.T) {
	tests := []struct {
		name     string
		external int
		flagged  bool
	}{
		{"below threshold", 9, false},
		{"at threshold", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := Analyze(reportWithMetrics(scan.Metrics{
				ExternalUsers: tt.external,
			}), DefaultThresholds())

			if !tt.flagged {
				assert.Empty(t, findings)
				return
			}
			require.Len(t, findings, 1)
			assert.Equal(t, scan.SeverityMedium, findings[0].Level)
			assert.Equal(t, "External identities with item-level access: 10", findings[0].Message)
		})
	}
}

func TestAnalyze_OrphanedGroups(t *testing.T) {
	findings := Analyze(reportWithMetrics(scan.Metrics{
		OrphanedGroups: 2,
	}), DefaultThresholds())

	require.Len(t, findings, 1)
	assert.Equal(t, scan.SeverityMedium, findings[0].Level)
	assert.Equal(t, "SharePoint groups without owners: 2", findings[0].Message)
}

func TestAnalyze_DisabledThresholds(t *testing.T) {
	thresholds := Thresholds{
		AnyoneOrEveryone:          false,
		ExternalOwner:             false,
		DirectWebPerms:            false,
		UniqueItemsGreaterThan:    1 << 30,
		ExternalIdentitiesAtLeast: 1 << 30,
		GroupWithoutOwner:         false,
	}
	findings := Analyze(reportWithMetrics(scan.Metrics{
		AnyoneOrEveryoneAtWeb:      true,
		ExternalOwnerPresent:       true,
		WebDirectAssignments:       5,
		ItemsWithUniquePermissions: 1000,
		ExternalUsers:              50,
		OrphanedGroups:             3,
	}), thresholds)

	assert.Empty(t, findings)
}
