package reportstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spscan/database"
	"spscan/domain/scan"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.New(database.Config{
		Path:          filepath.Join(t.TempDir(), "spscan.db"),
		MaxOpenConns:  1,
		BusyTimeoutMs: 5000,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func testReport(site string) *scan.Report {
	return &scan.Report{
		Version: scan.SchemaVersion,
		Site:    site,
		Metrics: scan.Metrics{
			SiteURL:                    site,
			ScannedAt:                  time.Date(2026, 8, 25, 10, 30, 0, 123456789, time.UTC),
			ItemsWithUniquePermissions: 2,
			ExternalUsers:              1,
			TotalLists:                 3,
			TotalItemsScanned:          120,
		},
		Notes:   []string{},
		Details: []scan.DetailRow{{List: "Documents", URL: site + "/doc.docx", Unique: true}},
		Findings: []scan.Finding{
			{Level: scan.SeverityCritical, Message: "External identity with Full Control on item", Path: site + "/Documents"},
		},
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	report := testReport("https://contoso.sharepoint.com/sites/finance")

	id, err := store.Save(context.Background(), report)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	loaded, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, report.Version, loaded.Version)
	assert.Equal(t, report.Site, loaded.Site)
	assert.Equal(t, report.Details, loaded.Details)
	assert.Equal(t, report.Findings, loaded.Findings)
	assert.Equal(t, report.Metrics.TotalItemsScanned, loaded.Metrics.TotalItemsScanned)
	assert.True(t, report.Metrics.ScannedAt.Equal(loaded.Metrics.ScannedAt))
}

func TestStore_List_MostRecentFirst(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save(context.Background(), testReport("https://contoso.sharepoint.com/sites/finance"))
	require.NoError(t, err)
	second, err := store.Save(context.Background(), testReport("https://contoso.sharepoint.com/sites/hr"))
	require.NoError(t, err)

	summaries, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, second, summaries[0].ID)
	assert.Equal(t, "https://contoso.sharepoint.com/sites/hr", summaries[0].SiteURL)
	assert.Equal(t, first, summaries[1].ID)
	assert.False(t, summaries[0].ScannedAt.IsZero())
}

func TestStore_List_Empty(t *testing.T) {
	store := newTestStore(t)

	summaries, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summaries)
	assert.NotNil(t, summaries)
}

func TestStore_Get_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), 999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
