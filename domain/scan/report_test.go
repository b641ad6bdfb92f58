package scan

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	cfg := &Config{
		SiteURL:         "https://contoso.sharepoint.com/sites/finance",
		InternalDomains: []string{"contoso.com"},
	}
	acc := NewAccumulator(cfg.SiteURL)
	acc.Metrics.TotalLists = 3
	acc.Metrics.TotalItemsScanned = 7
	acc.AddDetail("Documents", "https://contoso.sharepoint.com/sites/finance/Shared Documents/budget.xlsx", true)
	acc.AddFinding(SeverityCritical, "External identity with Full Control on item", "https://contoso.sharepoint.com/sites/finance/Shared Documents")

	before := time.Now().UTC()
	report := Assemble(cfg, acc)
	after := time.Now().UTC()

	assert.Equal(t, SchemaVersion, report.Version)
	assert.Equal(t, cfg.SiteURL, report.Site)
	assert.Equal(t, cfg.SiteURL, report.Metrics.SiteURL)
	assert.Equal(t, 3, report.Metrics.TotalLists)
	assert.Equal(t, 7, report.Metrics.TotalItemsScanned)
	assert.Len(t, report.Details, 1)
	assert.Len(t, report.Findings, 1)
	assert.Empty(t, report.Notes)

	// Timestamp is captured at assembly time.
	assert.False(t, report.Metrics.ScannedAt.Before(before))
	assert.False(t, report.Metrics.ScannedAt.After(after))
}

func TestAssemble_NoInternalDomainsNote(t *testing.T) {
	cfg := &Config{SiteURL: "https://contoso.sharepoint.com/sites/finance"}
	report := Assemble(cfg, NewAccumulator(cfg.SiteURL))

	require.Len(t, report.Notes, 1)
	assert.Contains(t, report.Notes[0], "internal domains not provided")
}

func TestReport_JSONFieldNames(t *testing.T) {
	cfg := &Config{
		SiteURL:         "https://contoso.sharepoint.com/sites/finance",
		InternalDomains: []string{"contoso.com"},
	}
	acc := NewAccumulator(cfg.SiteURL)
	acc.Metrics.ItemsWithUniquePermissions = 1
	acc.AddDetail("Documents", "https://contoso.sharepoint.com/doc.docx", true)
	acc.AddFinding(SeverityCritical, "'Anyone/Everyone' access detected at web scope", cfg.SiteURL)
	acc.AddFinding(SeverityHigh, "a finding without a path", "")

	payload, err := json.Marshal(Assemble(cfg, acc))
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &decoded))
	for _, key := range []string{"version", "site", "metrics", "notes", "details", "findings"} {
		assert.Contains(t, decoded, key)
	}

	var metrics map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(decoded["metrics"], &metrics))
	for _, key := range []string{
		"siteUrl", "scannedAt",
		"itemsWithUniquePermissions", "externalUsers",
		"webDirectAssignments", "orphanedGroups",
		"anyoneOrEveryoneAtWeb", "externalOwnerPresent",
		"totalLists", "totalItemsScanned",
	} {
		assert.Contains(t, metrics, key)
	}

	var details []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(decoded["details"], &details))
	require.Len(t, details, 1)
	assert.Contains(t, details[0], "list")
	assert.Contains(t, details[0], "url")
	assert.Contains(t, details[0], "unique")

	var findings []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(decoded["findings"], &findings))
	require.Len(t, findings, 2)
	assert.Contains(t, findings[0], "level")
	assert.Contains(t, findings[0], "message")
	assert.Contains(t, findings[0], "path")
	// An empty path is omitted rather than serialized as "".
	assert.NotContains(t, findings[1], "path")
}

func TestReport_EmptyScanSerializesArrays(t *testing.T) {
	cfg := &Config{
		SiteURL:         "https://contoso.sharepoint.com/sites/finance",
		InternalDomains: []string{"contoso.com"},
	}
	payload, err := json.Marshal(Assemble(cfg, NewAccumulator(cfg.SiteURL)))
	require.NoError(t, err)

	assert.Contains(t, string(payload), `"details":[]`)
	assert.Contains(t, string(payload), `"findings":[]`)
	assert.Contains(t, string(payload), `"notes":[]`)
}

func TestReport_JSONRoundTrip(t *testing.T) {
	cfg := &Config{
		SiteURL:         "https://contoso.sharepoint.com/sites/finance",
		InternalDomains: []string{"contoso.com"},
	}
	acc := NewAccumulator(cfg.SiteURL)
	acc.Metrics.ExternalUsers = 2
	acc.Metrics.ExternalOwnerPresent = true
	acc.AddDetail("Documents", "https://contoso.sharepoint.com/doc.docx", true)
	acc.AddFinding(SeverityCritical, "External identity with Full Control on item", "https://contoso.sharepoint.com/lists/docs")
	original := Assemble(cfg, acc)

	payload, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, original.Version, decoded.Version)
	assert.Equal(t, original.Site, decoded.Site)
	assert.Equal(t, original.Details, decoded.Details)
	assert.Equal(t, original.Findings, decoded.Findings)
	assert.Equal(t, original.Metrics.ExternalUsers, decoded.Metrics.ExternalUsers)
	assert.True(t, original.Metrics.ScannedAt.Equal(decoded.Metrics.ScannedAt))
}

func TestAccumulator_BudgetReached(t *testing.T) {
	acc := NewAccumulator("https://contoso.sharepoint.com/sites/finance")

	assert.False(t, acc.BudgetReached(1))
	acc.Metrics.TotalItemsScanned = 1
	assert.True(t, acc.BudgetReached(1))
	assert.False(t, acc.BudgetReached(2))
}
